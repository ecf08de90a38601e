package docset

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gcbaptista/docsearch/model"
)

func TestEmptyAndSingleton(t *testing.T) {
	e := Empty()
	assert.True(t, e.Null())
	assert.Equal(t, 0, e.Size())

	s := Singleton(model.DocId(7))
	assert.False(t, s.Null())
	assert.Equal(t, 1, s.Size())
	assert.True(t, s.Member(7))
	assert.False(t, s.Member(8))
}

func TestInsertDeleteAreFunctional(t *testing.T) {
	base := Singleton(model.DocId(1))
	withTwo := base.Insert(2)

	assert.True(t, base.Member(1))
	assert.False(t, base.Member(2), "Insert must not mutate the receiver")
	assert.True(t, withTwo.Member(1))
	assert.True(t, withTwo.Member(2))

	withoutOne := withTwo.Delete(1)
	assert.True(t, withTwo.Member(1), "Delete must not mutate the receiver")
	assert.False(t, withoutOne.Member(1))
	assert.True(t, withoutOne.Member(2))
}

func TestSetAlgebra(t *testing.T) {
	a := FromList([]model.DocId{1, 2, 3})
	b := FromList([]model.DocId{2, 3, 4})

	assert.Equal(t, []model.DocId{1, 2, 3, 4}, Union(a, b).ToList())
	assert.Equal(t, []model.DocId{2, 3}, Intersection(a, b).ToList())
	assert.Equal(t, []model.DocId{1}, Difference(a, b).ToList())
	assert.Equal(t, []model.DocId{4}, Difference(b, a).ToList())
}

func TestToListIsSortedUnique(t *testing.T) {
	s := FromList([]model.DocId{5, 1, 3, 1, 5, 2})
	assert.Equal(t, []model.DocId{1, 2, 3, 5}, s.ToList())
	assert.True(t, s.Invariant())
}

func TestDifferenceWithEmptyRHS(t *testing.T) {
	a := FromList([]model.DocId{1, 2})
	assert.Equal(t, a.ToList(), Difference(a, Empty()).ToList())
	assert.True(t, Intersection(a, Empty()).Null())
}
