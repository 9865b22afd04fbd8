package predicate

// Handle is a storage-backed set of matching entity identifiers.
// Implementations must not mutate their receiver or argument.
type Handle interface {
	Count() int
	All() []uint32
	Union(other Handle) Handle
	Intersect(other Handle) Handle
	Except(other Handle) Handle
}

// Predicate is either Empty or Bound to a Handle.
// The zero value is Empty.
type Predicate struct {
	h Handle
}

// Empty matches nothing.
var Empty = Predicate{}

// Bound wraps a storage handle. A nil handle yields Empty.
func Bound(h Handle) Predicate {
	return Predicate{h: h}
}

// IsEmpty reports whether p is the Empty variant.
//
// A Bound predicate over an empty set is not Empty; it still has Count() == 0.
func (p Predicate) IsEmpty() bool {
	return p.h == nil
}

// Handle returns the underlying storage handle, or nil for Empty.
func (p Predicate) Handle() Handle {
	return p.h
}

// Count returns the number of matching entities.
func (p Predicate) Count() int {
	if p.h == nil {
		return 0
	}
	return p.h.Count()
}

// All returns the matching entity identifiers in ascending order.
func (p Predicate) All() []uint32 {
	if p.h == nil {
		return nil
	}
	return p.h.All()
}

// Union returns p ∪ other. If either side is Empty the other is returned unchanged.
func (p Predicate) Union(other Predicate) Predicate {
	switch {
	case p.h == nil:
		return other
	case other.h == nil:
		return p
	default:
		return Predicate{h: p.h.Union(other.h)}
	}
}

// Intersect returns p ∩ other. Empty on either side yields Empty.
func (p Predicate) Intersect(other Predicate) Predicate {
	if p.h == nil || other.h == nil {
		return Empty
	}
	return Predicate{h: p.h.Intersect(other.h)}
}

// Except returns p \ other. Empty on the right leaves p unchanged.
func (p Predicate) Except(other Predicate) Predicate {
	switch {
	case p.h == nil:
		return Empty
	case other.h == nil:
		return p
	default:
		return Predicate{h: p.h.Except(other.h)}
	}
}
