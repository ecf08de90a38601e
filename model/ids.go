// Package model defines the identifiers and document shapes shared by the
// index, ranking, and extraction packages.
package model

// DocKey is a caller-chosen identifier for a document. It must be unique
// within an index for the lifetime of the document.
type DocKey string

// DocId is a dense internal document identifier, allocated monotonically
// by a SearchIndex and never reused within the index's lifetime.
type DocId uint32

// TermId is a dense internal term identifier, allocated monotonically.
// It is freed (removed from the index's maps) when the term's posting
// set becomes empty, but the numeric value itself is never recycled.
type TermId uint32

// Term is a normalized (case-folded, stemmed) string used as the
// canonical index key for a word.
type Term string

// Field identifies one of a schema's searchable text fields by ordinal
// position in config.Schema.Fields. The set of valid Field values is
// fixed when the schema is constructed.
type Field int

// Feature identifies one of a schema's non-term numeric features by
// ordinal position in config.Schema.Features.
type Feature int
