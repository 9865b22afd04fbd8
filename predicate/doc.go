// Package predicate provides the composable match-set handle that category
// handlers return and the query compiler combines.
//
// A Predicate is either Empty (matches nothing) or Bound to a Handle supplied
// by the storage layer. Set operations on Empty short-circuit without touching
// storage:
//
//	p := predicate.Bound(predicate.NewBitmap(1, 2, 3))
//	p.Intersect(predicate.Empty).IsEmpty() // true
//	p.Union(predicate.Empty) == p          // same handle
//
// Bitmap is the Roaring Bitmap backed Handle used by the in-memory store.
package predicate
