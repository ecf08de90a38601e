package index

import (
	"github.com/gcbaptista/docsearch/config"
	"github.com/gcbaptista/docsearch/model"
	"github.com/gcbaptista/docsearch/ranking"
)

// QueryContext adapts a SearchIndex snapshot plus its schema into a
// ranking.Context. It keeps no copy of corpus statistics: every call to
// NumDocsTotal, NumDocsWithTerm, or AvgFieldLength reads the index live,
// so a write made while a query is being scored changes the statistics
// that query sees part-way through.
type QueryContext struct {
	si     *SearchIndex
	schema *config.Schema
}

var _ ranking.Context = (*QueryContext)(nil)

// NewQueryContext builds a ranking.Context view over si using schema's
// BM25F parameters.
func NewQueryContext(si *SearchIndex, schema *config.Schema) *QueryContext {
	return &QueryContext{si: si, schema: schema}
}

func (c *QueryContext) NumFields() int   { return len(c.schema.Fields) }
func (c *QueryContext) NumFeatures() int { return len(c.schema.Features) }
func (c *QueryContext) ParamK1() float32 { return c.schema.ParamK1 }

func (c *QueryContext) ParamB(f model.Field) float32      { return c.schema.Fields[f].ParamB }
func (c *QueryContext) FieldWeight(f model.Field) float32 { return c.schema.Fields[f].Weight }
func (c *QueryContext) AvgFieldLength(f model.Field) float32 {
	return c.si.AvgFieldLength(f)
}

func (c *QueryContext) NumDocsTotal() int { return c.si.DocCount() }
func (c *QueryContext) NumDocsWithTerm(t model.TermId) int {
	return c.si.LookupTermId(t).Size()
}

func (c *QueryContext) FeatureWeight(phi model.Feature) float32 {
	return c.schema.Features[phi].Weight
}

func (c *QueryContext) FeatureFunction(phi model.Feature) ranking.FeatureFunc {
	spec := c.schema.Features[phi]
	return ranking.FeatureFunc{Kind: spec.Function, Lambda: spec.Lambda, Lambda2: spec.Lambda2}
}

// QueryDoc adapts one document's DocTermIds/DocFeatVals into a
// ranking.Doc.
type QueryDoc struct {
	terms *DocTermIds
	feats *DocFeatVals
}

var _ ranking.Doc = (*QueryDoc)(nil)

// NewQueryDoc builds a ranking.Doc view over one document's stored term
// and feature tables.
func NewQueryDoc(terms *DocTermIds, feats *DocFeatVals) *QueryDoc {
	return &QueryDoc{terms: terms, feats: feats}
}

func (d *QueryDoc) FieldLength(f model.Field) int { return d.terms.FieldLength(f) }
func (d *QueryDoc) FieldTermFrequency(f model.Field, t model.TermId) int {
	return d.terms.FieldTermCount(f, t)
}
func (d *QueryDoc) FeatureValue(phi model.Feature) float32 { return d.feats.Lookup(phi) }
