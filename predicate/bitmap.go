package predicate

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
)

// Bitmap implements Handle with a 32-bit Roaring Bitmap.
// A Bitmap is immutable once handed out: set operations allocate new bitmaps.
type Bitmap struct {
	rb *roaring.Bitmap
}

var _ Handle = (*Bitmap)(nil)

// NewBitmap creates a bitmap holding ids.
func NewBitmap(ids ...uint32) *Bitmap {
	return &Bitmap{rb: roaring.BitmapOf(ids...)}
}

// FromRoaring wraps rb without copying. The caller must not mutate rb afterwards.
func FromRoaring(rb *roaring.Bitmap) *Bitmap {
	if rb == nil {
		rb = roaring.New()
	}
	return &Bitmap{rb: rb}
}

// Contains reports whether id is in the bitmap.
func (b *Bitmap) Contains(id uint32) bool {
	return b.rb.Contains(id)
}

// Count implements Handle.
func (b *Bitmap) Count() int {
	return int(b.rb.GetCardinality())
}

// All implements Handle.
func (b *Bitmap) All() []uint32 {
	return b.rb.ToArray()
}

// Iterator yields ids in ascending order.
func (b *Bitmap) Iterator() iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		it := b.rb.Iterator()
		for it.HasNext() {
			if !yield(it.Next()) {
				return
			}
		}
	}
}

// Union implements Handle.
func (b *Bitmap) Union(other Handle) Handle {
	return &Bitmap{rb: roaring.Or(b.rb, asRoaring(other))}
}

// Intersect implements Handle.
func (b *Bitmap) Intersect(other Handle) Handle {
	return &Bitmap{rb: roaring.And(b.rb, asRoaring(other))}
}

// Except implements Handle.
func (b *Bitmap) Except(other Handle) Handle {
	return &Bitmap{rb: roaring.AndNot(b.rb, asRoaring(other))}
}

// asRoaring converts a foreign handle by materializing its ids.
func asRoaring(h Handle) *roaring.Bitmap {
	if bm, ok := h.(*Bitmap); ok {
		return bm.rb
	}
	return roaring.BitmapOf(h.All()...)
}
