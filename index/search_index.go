// Package index implements SearchIndex: the inverted index of bidirectional
// term<->document maps described in spec §4.4, plus the per-document side
// tables (DocTermIds, DocFeatVals) a ranker reads at query time.
package index

import (
	"sync"
	"unicode/utf8"

	"github.com/google/btree"

	"github.com/gcbaptista/docsearch/config"
	"github.com/gcbaptista/docsearch/docset"
	internalerrors "github.com/gcbaptista/docsearch/internal/errors"
	"github.com/gcbaptista/docsearch/model"
)

// DebugInvariantChecks, when true, makes InsertDoc and DeleteDoc verify
// every structural invariant before returning and panic with an
// InvariantViolationError if one fails. Off by default: the checks walk
// the whole index and are meant for tests and development, not
// production request paths.
var DebugInvariantChecks = false

const btreeDegree = 32

// termItem is the btree element ordering terms lexicographically by
// their raw string value; it is also how the ordered term->id direction
// of the bidirectional map is represented.
type termItem struct {
	term model.Term
	id   model.TermId
}

func (a termItem) Less(than btree.Item) bool {
	return a.term < than.(termItem).term
}

// docInfo is the per-document payload kept on the doc side of the index.
type docInfo struct {
	key   model.DocKey
	terms *DocTermIds
	feats *DocFeatVals
}

// TermPosting pairs a term id with its posting set, returned by prefix
// lookups so a caller can recover which term each set of documents
// matched under.
type TermPosting struct {
	TermId model.TermId
	Term   model.Term
	Docs   docset.DocIdSet
}

// SearchIndex is the inverted index of spec §4.4. The zero value is not
// usable; construct with NewSearchIndex. Every exported method is safe
// for concurrent use: readers take an RLock, insertDoc/deleteDoc take
// the exclusive Lock for the whole operation (spec §5's concurrency
// model generalizes the original "return a new index" contract to
// in-place mutation behind a lock, the idiom this codebase's other
// stateful services already use).
type SearchIndex struct {
	mu sync.RWMutex

	schema *config.Schema

	terms    *btree.BTree                 // ordered model.Term -> termItem{term, id}
	termText map[model.TermId]model.Term  // reverse direction: id -> term
	postings map[model.TermId]docset.DocIdSet

	docs    map[model.DocId]*docInfo
	docKeys map[model.DocKey]model.DocId

	nextTermId model.TermId
	nextDocId  model.DocId

	// fieldLenSum[f] is the running sum of FieldLength(f) across every
	// indexed document, maintained incrementally so avgFieldLength is
	// O(1) to read instead of a full corpus scan per query.
	fieldLenSum []int64
}

// NewSearchIndex builds an empty SearchIndex for the given schema.
func NewSearchIndex(schema *config.Schema) *SearchIndex {
	return &SearchIndex{
		schema:      schema,
		terms:       btree.New(btreeDegree),
		termText:    make(map[model.TermId]model.Term),
		postings:    make(map[model.TermId]docset.DocIdSet),
		docs:        make(map[model.DocId]*docInfo),
		docKeys:     make(map[model.DocKey]model.DocId),
		fieldLenSum: make([]int64, len(schema.Fields)),
	}
}

// DocCount returns the number of distinct documents currently indexed.
func (si *SearchIndex) DocCount() int {
	si.mu.RLock()
	defer si.mu.RUnlock()
	return len(si.docs)
}

// TermCount returns the number of distinct terms currently indexed.
func (si *SearchIndex) TermCount() int {
	si.mu.RLock()
	defer si.mu.RUnlock()
	return len(si.termText)
}

// AvgFieldLength returns the mean FieldLength(f) across every indexed
// document, or 0 if no document has been indexed yet. With an average
// of 0 every document's length in f is also 0, so B_f is 0/0 = NaN and
// the ranker skips field f entirely (spec §4.5).
func (si *SearchIndex) AvgFieldLength(f model.Field) float32 {
	si.mu.RLock()
	defer si.mu.RUnlock()
	if int(f) < 0 || int(f) >= len(si.fieldLenSum) || len(si.docs) == 0 {
		return 0
	}
	return float32(si.fieldLenSum[f]) / float32(len(si.docs))
}

// LookupTerm returns the term id and posting set for an exact term, if
// indexed.
func (si *SearchIndex) LookupTerm(t model.Term) (model.TermId, docset.DocIdSet, bool) {
	si.mu.RLock()
	defer si.mu.RUnlock()
	item := si.terms.Get(termItem{term: t})
	if item == nil {
		return 0, docset.DocIdSet{}, false
	}
	ti := item.(termItem)
	return ti.id, si.postings[ti.id], true
}

// LookupTermsByPrefix returns the posting set of every term whose raw
// string starts with prefix, ordered lexicographically. An empty prefix
// matches nothing (spec §4.4 treats the empty string as not a
// meaningful prefix query; callers wanting the whole vocabulary should
// ascend the index directly).
func (si *SearchIndex) LookupTermsByPrefix(prefix model.Term) []TermPosting {
	si.mu.RLock()
	defer si.mu.RUnlock()
	if prefix == "" {
		return nil
	}

	var out []TermPosting
	iter := func(item btree.Item) bool {
		ti := item.(termItem)
		out = append(out, TermPosting{TermId: ti.id, Term: ti.term, Docs: si.postings[ti.id]})
		return true
	}

	upper, unbounded := prefixUpperBound(prefix)
	if unbounded {
		si.terms.AscendGreaterOrEqual(termItem{term: prefix}, iter)
	} else {
		si.terms.AscendRange(termItem{term: prefix}, termItem{term: upper}, iter)
	}
	return out
}

// prefixUpperBound computes prefix's exclusive upper bound for a
// lexicographic range scan (spec §4.4): strip trailing runes equal to
// the maximum codepoint, then increment the last remaining rune by one.
// If every rune in prefix is already the maximum codepoint there is no
// finite upper bound, and the scan must run unbounded to the end of the
// ordered map instead.
func prefixUpperBound(prefix model.Term) (model.Term, bool) {
	runes := []rune(string(prefix))
	i := len(runes) - 1
	for i >= 0 && runes[i] == utf8.MaxRune {
		i--
	}
	if i < 0 {
		return "", true
	}
	runes[i]++
	return model.Term(string(runes[:i+1])), false
}

// LookupTermId returns the posting set for a term id known to exist.
// Panics with an InvariantViolationError if it does not: a TermId only
// ever reaches caller code (e.g. via DocTermIds) because some document
// was indexed under it, which makes a missing postings entry a bug
// inside the index rather than a condition a caller can hit validly.
func (si *SearchIndex) LookupTermId(i model.TermId) docset.DocIdSet {
	si.mu.RLock()
	defer si.mu.RUnlock()
	s, ok := si.postings[i]
	if !ok {
		panic(internalerrors.NewInvariantViolationError("postings has no entry for a term id reachable from an indexed document"))
	}
	return s
}

// GetTerm returns the raw string a term id was allocated for.
func (si *SearchIndex) GetTerm(i model.TermId) (model.Term, bool) {
	si.mu.RLock()
	defer si.mu.RUnlock()
	t, ok := si.termText[i]
	return t, ok
}

// GetTermId returns the id allocated to an exact term string.
func (si *SearchIndex) GetTermId(t model.Term) (model.TermId, bool) {
	si.mu.RLock()
	defer si.mu.RUnlock()
	item := si.terms.Get(termItem{term: t})
	if item == nil {
		return 0, false
	}
	return item.(termItem).id, true
}

// LookupDocId returns everything stored for an internal document id.
func (si *SearchIndex) LookupDocId(d model.DocId) (model.DocKey, *DocTermIds, *DocFeatVals, bool) {
	si.mu.RLock()
	defer si.mu.RUnlock()
	info, ok := si.docs[d]
	if !ok {
		return "", nil, nil, false
	}
	return info.key, info.terms, info.feats, true
}

// LookupDocKey resolves an external document key to its term table.
func (si *SearchIndex) LookupDocKey(k model.DocKey) (model.DocId, *DocTermIds, *DocFeatVals, bool) {
	si.mu.RLock()
	defer si.mu.RUnlock()
	d, ok := si.docKeys[k]
	if !ok {
		return 0, nil, nil, false
	}
	info := si.docs[d]
	return d, info.terms, info.feats, true
}

// InsertDoc inserts a new document or replaces the document currently
// stored under key k, and returns its internal DocId (spec §4.4). docTerms
// supplies, for every field ordinal, the already-extracted term sequence
// for that field; docFeats supplies, for every feature ordinal, that
// feature's raw value. Both are total over the schema's field/feature
// ordinals: InsertDoc treats a missing entry the same as an empty slice
// or zero value.
func (si *SearchIndex) InsertDoc(k model.DocKey, docTerms map[model.Field][]model.Term, docFeats map[model.Feature]float32) model.DocId {
	si.mu.Lock()
	defer si.mu.Unlock()

	d, isUpdate := si.docKeys[k]
	if !isUpdate {
		d = si.nextDocId
		si.nextDocId++
		si.docKeys[k] = d
	}

	numFields := len(si.schema.Fields)

	newTermSet := make(map[model.Term]struct{})
	for f := 0; f < numFields; f++ {
		for _, t := range docTerms[model.Field(f)] {
			newTermSet[t] = struct{}{}
		}
	}

	var oldInfo *docInfo
	if isUpdate {
		oldInfo = si.docs[d]
	}

	if oldInfo != nil {
		oldTermSet := si.rawTermSet(oldInfo.terms)
		for t := range oldTermSet {
			if _, stillPresent := newTermSet[t]; !stillPresent {
				si.deleteTermToDocIdEntry(t, d)
			}
		}
		for t := range newTermSet {
			if _, wasPresent := oldTermSet[t]; !wasPresent {
				si.insertTermToDocIdEntry(t, d)
			}
		}
	} else {
		for t := range newTermSet {
			si.insertTermToDocIdEntry(t, d)
		}
	}

	// Every raw term above now has a live termMap entry, so resolving
	// ids here cannot miss.
	newTerms := NewDocTermIds(numFields, func(f model.Field) []model.TermId {
		raws := docTerms[f]
		if len(raws) == 0 {
			return nil
		}
		ids := make([]model.TermId, len(raws))
		for i, t := range raws {
			item := si.terms.Get(termItem{term: t})
			ids[i] = item.(termItem).id
		}
		return ids
	})
	newFeats := NewDocFeatVals(len(si.schema.Features), func(phi model.Feature) float32 {
		return docFeats[phi]
	})

	for f := 0; f < numFields; f++ {
		var oldLen int
		if oldInfo != nil {
			oldLen = oldInfo.terms.FieldLength(model.Field(f))
		}
		si.fieldLenSum[f] += int64(newTerms.FieldLength(model.Field(f)) - oldLen)
	}

	si.docs[d] = &docInfo{key: k, terms: newTerms, feats: newFeats}

	if DebugInvariantChecks {
		if violation := si.checkInvariants(); violation != "" {
			panic(internalerrors.NewInvariantViolationError(violation))
		}
	}
	return d
}

// DeleteDoc removes the document stored under key k. It reports whether
// a document was actually present.
func (si *SearchIndex) DeleteDoc(k model.DocKey) bool {
	si.mu.Lock()
	defer si.mu.Unlock()

	d, ok := si.docKeys[k]
	if !ok {
		return false
	}
	info := si.docs[d]

	for t := range si.rawTermSet(info.terms) {
		si.deleteTermToDocIdEntry(t, d)
	}

	for f := 0; f < len(si.schema.Fields); f++ {
		si.fieldLenSum[f] -= int64(info.terms.FieldLength(model.Field(f)))
	}

	delete(si.docs, d)
	delete(si.docKeys, k)

	if DebugInvariantChecks {
		if violation := si.checkInvariants(); violation != "" {
			panic(internalerrors.NewInvariantViolationError(violation))
		}
	}
	return true
}

// rawTermSet recovers the distinct raw term strings referenced by a
// DocTermIds, via the reverse termText map. Caller must hold si.mu.
func (si *SearchIndex) rawTermSet(dt *DocTermIds) map[model.Term]struct{} {
	out := make(map[model.Term]struct{})
	for id := range dt.Terms() {
		if t, ok := si.termText[id]; ok {
			out[t] = struct{}{}
		}
	}
	return out
}

// insertTermToDocIdEntry records that document d contains term t,
// allocating a fresh TermId the first time t is seen (spec §4.4).
// Caller must hold si.mu for writing.
func (si *SearchIndex) insertTermToDocIdEntry(t model.Term, d model.DocId) {
	if item := si.terms.Get(termItem{term: t}); item != nil {
		ti := item.(termItem)
		si.postings[ti.id] = si.postings[ti.id].Insert(d)
		return
	}
	id := si.nextTermId
	si.nextTermId++
	si.terms.ReplaceOrInsert(termItem{term: t, id: id})
	si.termText[id] = t
	si.postings[id] = docset.Singleton(d)
}

// deleteTermToDocIdEntry removes document d from term t's posting set,
// freeing t's TermId entirely once its posting set becomes empty (spec
// §4.4: TermIds are never recycled, but an emptied term is dropped from
// both map directions so TermCount reflects only live vocabulary).
// Caller must hold si.mu for writing.
func (si *SearchIndex) deleteTermToDocIdEntry(t model.Term, d model.DocId) {
	item := si.terms.Get(termItem{term: t})
	if item == nil {
		return
	}
	ti := item.(termItem)
	remaining := si.postings[ti.id].Delete(d)
	if remaining.Null() {
		si.terms.Delete(termItem{term: t})
		delete(si.termText, ti.id)
		delete(si.postings, ti.id)
		return
	}
	si.postings[ti.id] = remaining
}

// checkInvariants walks the whole index and returns a description of
// the first violated invariant found, or "" if all six hold (spec §3).
// Caller must hold si.mu.
func (si *SearchIndex) checkInvariants() string {
	// 1. termMap and termIdMap agree: every btree entry's id resolves
	// back to the same term via termText, and has a postings entry.
	violation := ""
	si.terms.Ascend(func(item btree.Item) bool {
		ti := item.(termItem)
		if rt, ok := si.termText[ti.id]; !ok || rt != ti.term {
			violation = "termMap and termIdMap disagree on term id"
			return false
		}
		if _, ok := si.postings[ti.id]; !ok {
			violation = "term id present in termMap has no postings entry"
			return false
		}
		return true
	})
	if violation != "" {
		return violation
	}
	if len(si.termText) != si.terms.Len() || len(si.postings) != si.terms.Len() {
		return "termMap, termIdMap, and postings have different sizes"
	}

	// 2. docKeyMap and docIdMap agree.
	if len(si.docKeys) != len(si.docs) {
		return "docKeyMap and docIdMap have different sizes"
	}
	for k, d := range si.docKeys {
		info, ok := si.docs[d]
		if !ok || info.key != k {
			return "docKeyMap and docIdMap disagree on a document"
		}
	}

	// 3. Every posting set is sorted-unique and bounded by nextDocId;
	// every term id bounded by nextTermId.
	for id, set := range si.postings {
		if !set.Invariant() {
			return "a posting set is not sorted-unique"
		}
		for _, d := range set.ToList() {
			if d >= si.nextDocId {
				return "a posting set references a DocId beyond nextDocId"
			}
		}
		if id >= si.nextTermId {
			return "a term id is beyond nextTermId"
		}
	}
	for d := range si.docs {
		if d >= si.nextDocId {
			return "a stored DocId is beyond nextDocId"
		}
	}

	// 4 & 5. Every (term id, doc) posting pair is backed by an actual
	// occurrence in that document's term table, and every term id a
	// document's DocTermIds references is a live index entry.
	for id, set := range si.postings {
		for _, d := range set.ToList() {
			info, ok := si.docs[d]
			if !ok {
				return "a posting references a DocId with no docIdMap entry"
			}
			found := false
			for f := 0; f < len(si.schema.Fields); f++ {
				if info.terms.FieldTermCount(model.Field(f), id) > 0 {
					found = true
					break
				}
			}
			if !found {
				return "a posting references a document that has no occurrence of the term"
			}
		}
	}
	for _, info := range si.docs {
		for id := range info.terms.Terms() {
			if _, ok := si.termText[id]; !ok {
				return "a document references a term id with no termIdMap entry"
			}
		}
	}

	return ""
}
