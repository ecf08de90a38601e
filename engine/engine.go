// Package engine implements the search engine facade of spec §6: the
// single entry point composing a schema, an inverted index, a BM25F
// ranker context, and the text extraction pipeline.
package engine

import (
	"sort"

	"github.com/gcbaptista/docsearch/config"
	"github.com/gcbaptista/docsearch/extract"
	"github.com/gcbaptista/docsearch/index"
	"github.com/gcbaptista/docsearch/model"
	"github.com/gcbaptista/docsearch/ranking"
)

// FieldInput is one field's raw value presented to InsertDoc. Exactly
// one of Text or Markup is meaningful, selected by the field's
// config.FieldKind in the schema: SynopsisField reads Text directly;
// DescriptionField reads Markup (the documentation-comment parser that
// produces a model.Doc from raw source is out of scope, per spec §1).
type FieldInput struct {
	Text   string
	Markup model.Doc
}

// Hit is one scored result of a query.
type Hit struct {
	Key   model.DocKey
	Score float32
}

// ExplainedHit pairs a document key with its full score breakdown.
type ExplainedHit struct {
	Key         model.DocKey
	Explanation ranking.Explanation
}

// Engine is the search engine facade. The zero value is not usable;
// construct with New.
type Engine struct {
	schema *config.Schema
	index  *index.SearchIndex
}

// New builds an empty Engine for schema. schema must already satisfy
// Validate.
func New(schema *config.Schema) *Engine {
	return &Engine{
		schema: schema,
		index:  index.NewSearchIndex(schema),
	}
}

// InsertDoc inserts a new document or replaces the one currently stored
// under key, extracting index terms from fields per the schema's field
// kinds and storing features verbatim (spec §6).
func (e *Engine) InsertDoc(key model.DocKey, fields map[string]FieldInput, features map[string]float32) model.DocId {
	docTerms := make(map[model.Field][]model.Term, len(e.schema.Fields))
	for i, spec := range e.schema.Fields {
		input, present := fields[spec.Name]
		if !present {
			continue
		}
		switch spec.Kind {
		case config.SynopsisField:
			docTerms[model.Field(i)] = extract.ExtractSynopsisTerms(e.schema.Stopwords, input.Text)
		case config.DescriptionField:
			markup := input.Markup
			if markup == nil {
				markup = model.DocEmpty{}
			}
			docTerms[model.Field(i)] = extract.ExtractDescriptionTerms(e.schema.Stopwords, markup, e.schema.MonospacedMaxLen)
		}
	}

	docFeats := make(map[model.Feature]float32, len(e.schema.Features))
	for i, spec := range e.schema.Features {
		if v, present := features[spec.Name]; present {
			docFeats[model.Feature(i)] = v
		}
	}

	return e.index.InsertDoc(key, docTerms, docFeats)
}

// DeleteDoc removes the document stored under key. It reports whether
// a document was actually present.
func (e *Engine) DeleteDoc(key model.DocKey) bool {
	return e.index.DeleteDoc(key)
}

// queryTermIds extracts and resolves a query string into the TermIds
// actually present in the index, deduplicated. Query terms with no
// index entry contribute nothing and are silently dropped, matching
// spec §7's "malformed query strings yield an empty result set" policy
// generalized to "unmatched terms yield no contribution."
func (e *Engine) queryTermIds(queryString string) []model.TermId {
	terms := extract.ExtractSynopsisTerms(e.schema.Stopwords, queryString)
	seen := make(map[model.TermId]struct{}, len(terms))
	var ids []model.TermId
	for _, t := range terms {
		id, ok := e.index.GetTermId(t)
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

// candidateDocs returns every DocId containing at least one of termIds.
func (e *Engine) candidateDocs(termIds []model.TermId) []model.DocId {
	seen := make(map[model.DocId]struct{})
	var out []model.DocId
	for _, id := range termIds {
		for _, d := range e.index.LookupTermId(id).ToList() {
			if _, dup := seen[d]; dup {
				continue
			}
			seen[d] = struct{}{}
			out = append(out, d)
		}
	}
	return out
}

// Query scores every document containing at least one term of
// queryString and returns the topK highest-scoring hits, ordered by
// descending score with ascending DocKey as a deterministic tiebreak
// (spec §6).
func (e *Engine) Query(queryString string, topK int) []Hit {
	termIds := e.queryTermIds(queryString)
	if len(termIds) == 0 {
		return nil
	}

	ctx := index.NewQueryContext(e.index, e.schema)
	candidates := e.candidateDocs(termIds)

	hits := make([]Hit, 0, len(candidates))
	for _, d := range candidates {
		key, terms, feats, ok := e.index.LookupDocId(d)
		if !ok {
			continue
		}
		doc := index.NewQueryDoc(terms, feats)
		hits = append(hits, Hit{Key: key, Score: ranking.Score(ctx, doc, termIds)})
	}

	sortHits(hits)
	if topK >= 0 && topK < len(hits) {
		hits = hits[:topK]
	}
	return hits
}

// QueryExplain computes the full score breakdown for every document
// matching queryString, in the same order Query would rank them.
func (e *Engine) QueryExplain(queryString string) []ExplainedHit {
	termIds := e.queryTermIds(queryString)
	if len(termIds) == 0 {
		return nil
	}

	ctx := index.NewQueryContext(e.index, e.schema)
	candidates := e.candidateDocs(termIds)

	hits := make([]ExplainedHit, 0, len(candidates))
	for _, d := range candidates {
		key, terms, feats, ok := e.index.LookupDocId(d)
		if !ok {
			continue
		}
		doc := index.NewQueryDoc(terms, feats)
		hits = append(hits, ExplainedHit{Key: key, Explanation: ranking.Explain(ctx, doc, termIds)})
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Explanation.OverallScore != hits[j].Explanation.OverallScore {
			return hits[i].Explanation.OverallScore > hits[j].Explanation.OverallScore
		}
		return hits[i].Key < hits[j].Key
	})
	return hits
}

func sortHits(hits []Hit) {
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].Key < hits[j].Key
	})
}

// ResolveTerm returns the raw string a term id was allocated for,
// letting callers (e.g. the HTTP layer) render an Explanation's
// TermId-keyed maps back into human-readable terms.
func (e *Engine) ResolveTerm(id model.TermId) (model.Term, bool) {
	return e.index.GetTerm(id)
}

// LookupDoc returns whether key is currently indexed.
func (e *Engine) LookupDoc(key model.DocKey) (model.DocId, bool) {
	d, _, _, ok := e.index.LookupDocKey(key)
	return d, ok
}

// DocCount returns the number of indexed documents.
func (e *Engine) DocCount() int { return e.index.DocCount() }

// TermCount returns the number of distinct indexed terms.
func (e *Engine) TermCount() int { return e.index.TermCount() }

// Schema returns the schema the engine was constructed with.
func (e *Engine) Schema() *config.Schema { return e.schema }
