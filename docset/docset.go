// Package docset implements DocIdSet: a compact sorted-unique set of
// internal document identifiers with O(|S|+|T|) set algebra. It is
// backed by a compressed roaring bitmap, whose run-container merges
// give exactly the merge-walk behavior the containing index relies on.
package docset

import (
	"github.com/RoaringBitmap/roaring"

	"github.com/gcbaptista/docsearch/model"
)

// DocIdSet is a sorted set of model.DocId values. The zero value is an
// empty set; every method and set operation accepts it.
type DocIdSet struct {
	bm *roaring.Bitmap
}

// Empty returns an empty DocIdSet.
func Empty() DocIdSet {
	return DocIdSet{bm: roaring.New()}
}

// Singleton returns a DocIdSet containing exactly d.
func Singleton(d model.DocId) DocIdSet {
	s := Empty()
	s.bm.Add(uint32(d))
	return s
}

// FromList builds a DocIdSet from an unordered slice of ids.
func FromList(ids []model.DocId) DocIdSet {
	s := Empty()
	for _, d := range ids {
		s.bm.Add(uint32(d))
	}
	return s
}

// Null reports whether the set is empty.
func (s DocIdSet) Null() bool {
	return s.bm == nil || s.bm.IsEmpty()
}

// Size returns the number of elements in the set.
func (s DocIdSet) Size() int {
	if s.bm == nil {
		return 0
	}
	return int(s.bm.GetCardinality())
}

// Member reports whether d is in the set.
func (s DocIdSet) Member(d model.DocId) bool {
	if s.bm == nil {
		return false
	}
	return s.bm.Contains(uint32(d))
}

// ToList returns the set's elements in ascending order.
func (s DocIdSet) ToList() []model.DocId {
	if s.bm == nil {
		return nil
	}
	raw := s.bm.ToArray()
	out := make([]model.DocId, len(raw))
	for i, v := range raw {
		out[i] = model.DocId(v)
	}
	return out
}

// Insert returns a new set containing d in addition to every member of
// s. s is left unmodified.
func (s DocIdSet) Insert(d model.DocId) DocIdSet {
	ns := s.clone()
	ns.bm.Add(uint32(d))
	return ns
}

// Delete returns a new set containing every member of s except d. s is
// left unmodified.
func (s DocIdSet) Delete(d model.DocId) DocIdSet {
	ns := s.clone()
	ns.bm.Remove(uint32(d))
	return ns
}

func (s DocIdSet) clone() DocIdSet {
	if s.bm == nil {
		return Empty()
	}
	return DocIdSet{bm: s.bm.Clone()}
}

// Union returns the set of ids present in a or b.
func Union(a, b DocIdSet) DocIdSet {
	out := a.clone()
	if b.bm != nil {
		out.bm.Or(b.bm)
	}
	return out
}

// Intersection returns the set of ids present in both a and b.
func Intersection(a, b DocIdSet) DocIdSet {
	out := a.clone()
	if b.bm != nil {
		out.bm.And(b.bm)
	} else {
		out.bm = roaring.New()
	}
	return out
}

// Difference returns the set of ids present in a but not in b.
func Difference(a, b DocIdSet) DocIdSet {
	out := a.clone()
	if b.bm != nil {
		out.bm.AndNot(b.bm)
	}
	return out
}

// Invariant reports whether the set's internal representation is
// sorted and unique. A roaring bitmap is structurally sorted-unique by
// construction, so this is always true for any DocIdSet built through
// this package's constructors; it is exposed for property tests that
// exercise the contract spec §3 invariant 3 describes.
func (s DocIdSet) Invariant() bool {
	if s.bm == nil {
		return true
	}
	list := s.ToList()
	for i := 1; i < len(list); i++ {
		if list[i-1] >= list[i] {
			return false
		}
	}
	return true
}
