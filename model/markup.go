package model

// Doc is a node of a documentation markup tree, as produced by an
// external comment parser and consumed here only for text extraction.
// The grammar mirrors a typical documentation-comment AST: paragraphs,
// emphasis, lists, definition lists, code, and links.
type Doc interface {
	isDoc()
}

// DocEmpty contributes no text.
type DocEmpty struct{}

// DocString is a literal run of text.
type DocString struct {
	Text string
}

// DocParagraph wraps a block of inline content.
type DocParagraph struct {
	Inner Doc
}

// DocAppend concatenates two subtrees in order.
type DocAppend struct {
	A, B Doc
}

// DocIdentifier names a single code identifier (e.g. a function or type
// name mentioned in prose); it contributes as one token, never broken
// up by the word tokenizer, though the ) - / fragment split still
// applies to it.
type DocIdentifier struct {
	Name string
}

// DocModule names a module path; it contributes no text (module names
// are noise for ranking purposes, not vocabulary).
type DocModule struct {
	Name string
}

// DocEmphasis wraps emphasized inline content.
type DocEmphasis struct {
	Inner Doc
}

// DocMonospaced is an inline code span. Spans longer than the schema's
// configured MonospacedMaxLen are dropped as likely multi-word code
// rather than vocabulary (see config.Schema.MonospacedMaxLen).
type DocMonospaced struct {
	Text string
}

// DocUnorderedList and DocOrderedList contribute the concatenation of
// their items' contributions.
type DocUnorderedList struct {
	Items []Doc
}

type DocOrderedList struct {
	Items []Doc
}

// DocDefPair is one (term, definition) pair of a DocDefList; both sides
// contribute.
type DocDefPair struct {
	Term Doc
	Def  Doc
}

type DocDefList struct {
	Pairs []DocDefPair
}

// DocCodeBlock is a fenced code block; it contributes no text.
type DocCodeBlock struct {
	Code string
}

// DocHyperlink contributes its Label's text, if present; the URL never
// contributes.
type DocHyperlink struct {
	URL   string
	Label Doc // nil if the link has no label
}

// DocPicture and DocAName contribute no text.
type DocPicture struct {
	URL string
}

type DocAName struct {
	Name string
}

func (DocEmpty) isDoc()         {}
func (DocString) isDoc()        {}
func (DocParagraph) isDoc()     {}
func (DocAppend) isDoc()        {}
func (DocIdentifier) isDoc()    {}
func (DocModule) isDoc()        {}
func (DocEmphasis) isDoc()      {}
func (DocMonospaced) isDoc()    {}
func (DocUnorderedList) isDoc() {}
func (DocOrderedList) isDoc()   {}
func (DocDefList) isDoc()       {}
func (DocCodeBlock) isDoc()     {}
func (DocHyperlink) isDoc()     {}
func (DocPicture) isDoc()       {}
func (DocAName) isDoc()         {}
