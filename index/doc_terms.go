package index

import "github.com/gcbaptista/docsearch/model"

// DocTermIds holds, for one document, the ordered (duplicates allowed)
// sequence of term ids in each field, plus a per-field occurrence count
// precomputed for O(1) term-frequency lookup. It is immutable once
// created: insertDoc builds a fresh DocTermIds on every insert/update
// and discards the old one (spec §4.2).
type DocTermIds struct {
	byField [][]model.TermId
	counts  []map[model.TermId]int
}

// NewDocTermIds materializes a DocTermIds for a schema with numFields
// fields, calling get once per field in ordinal order (spec §4.4 step 2:
// "memoise docTerms ... avoid re-evaluating per-field list").
func NewDocTermIds(numFields int, get func(model.Field) []model.TermId) *DocTermIds {
	d := &DocTermIds{
		byField: make([][]model.TermId, numFields),
		counts:  make([]map[model.TermId]int, numFields),
	}
	for i := 0; i < numFields; i++ {
		ids := get(model.Field(i))
		d.byField[i] = ids
		counts := make(map[model.TermId]int, len(ids))
		for _, id := range ids {
			counts[id]++
		}
		d.counts[i] = counts
	}
	return d
}

// FieldLength returns the number of term occurrences (with duplicates)
// in field f.
func (d *DocTermIds) FieldLength(f model.Field) int {
	if int(f) < 0 || int(f) >= len(d.byField) {
		return 0
	}
	return len(d.byField[f])
}

// FieldElems returns the ordered term id sequence for field f.
func (d *DocTermIds) FieldElems(f model.Field) []model.TermId {
	if int(f) < 0 || int(f) >= len(d.byField) {
		return nil
	}
	return d.byField[f]
}

// FieldTermCount returns how many times term id i occurs in field f.
func (d *DocTermIds) FieldTermCount(f model.Field, i model.TermId) int {
	if int(f) < 0 || int(f) >= len(d.counts) {
		return 0
	}
	return d.counts[f][i]
}

// Terms returns the set of distinct term ids across every field,
// deduplicated. Used by insertDoc/deleteDoc to diff old vs. new term
// sets (spec §4.4 step 4).
func (d *DocTermIds) Terms() map[model.TermId]struct{} {
	out := make(map[model.TermId]struct{})
	for _, ids := range d.byField {
		for _, id := range ids {
			out[id] = struct{}{}
		}
	}
	return out
}
