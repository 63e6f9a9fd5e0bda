// Package doc provides a small document model for width-aware pretty
// printing. Documents are composed from text, concatenation, groups,
// indentation, and line breaks, then rendered against a column budget.
//
// The model follows the classic Wadler design: a [Group] is rendered
// on one line ("flat") when its flattened width fits into the current
// line budget, and falls back to its multi-line ("broken") form
// otherwise. [IfFlat] selects different content for the two forms and
// is only meaningful inside a group. [Column] gives a document access
// to the column at which it will be emitted, which callers use for
// content-independent chunking.
//
// Rendering is deterministic: output depends only on the document, the
// width, and the ribbon ratio.
package doc

// Doc is a composable layout document. The zero value is not useful;
// build documents with the package constructors.
type Doc interface {
	isDoc()
}

type (
	textDoc   string
	concatDoc []Doc
	groupDoc  struct{ d Doc }
	ifFlatDoc struct{ then, els Doc }
	lineDoc   struct{}
	hardDoc   struct{}
	nestDoc   struct {
		indent int
		d      Doc
	}
	columnDoc struct{ f func(col int) Doc }
)

func (textDoc) isDoc()   {}
func (concatDoc) isDoc() {}
func (groupDoc) isDoc()  {}
func (ifFlatDoc) isDoc() {}
func (lineDoc) isDoc()   {}
func (hardDoc) isDoc()   {}
func (nestDoc) isDoc()   {}
func (columnDoc) isDoc() {}

// Empty is the document that renders nothing.
var Empty Doc = textDoc("")

// Line renders as a single space when flat and as a line break when
// broken.
var Line Doc = lineDoc{}

// HardLine always renders as a line break. A group containing a
// HardLine outside an [IfFlat] flat branch can never be flat.
var HardLine Doc = hardDoc{}

// Text returns a document rendering s verbatim. s must not contain
// newlines; use [Line] or [HardLine] for breaks.
func Text(s string) Doc { return textDoc(s) }

// Concat joins documents in sequence.
func Concat(ds ...Doc) Doc { return concatDoc(ds) }

// Group marks d as a unit that is rendered flat when it fits the
// remaining line budget and broken otherwise.
func Group(d Doc) Doc { return groupDoc{d} }

// IfFlat renders then when the enclosing group is flat and els when it
// is broken. At the top level, outside any group, els is used.
func IfFlat(then, els Doc) Doc { return ifFlatDoc{then, els} }

// Nest renders d with the indentation of subsequent lines increased by
// indent columns.
func Nest(indent int, d Doc) Doc { return nestDoc{indent, d} }

// Column calls f with the current output column when the document is
// reached, and renders the returned document in its place.
func Column(f func(col int) Doc) Doc { return columnDoc{f} }

// Join interleaves sep between the given documents.
func Join(sep Doc, ds ...Doc) Doc {
	if len(ds) == 0 {
		return Empty
	}
	out := make(concatDoc, 0, 2*len(ds)-1)
	for i, d := range ds {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, d)
	}
	return out
}
