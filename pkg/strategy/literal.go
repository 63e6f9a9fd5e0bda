package strategy

import (
	"github.com/spf13/pflag"

	"github.com/resfold/resfold/pkg/doc"
	"github.com/resfold/resfold/pkg/resource"
	"github.com/resfold/resfold/pkg/subenc"
)

// SingleLiteral renders the whole tree as one nested data literal
// bound to a single name, suitable for embedding in a program that
// consumes the tree at run time.
//
// When leaves of two or more distinct sub-encoding tags occur in the
// tree, each leaf's content is wrapped in a discriminated tag so the
// heterogeneous values can share one container type: open polymorphic
// variants by default, or a generated closed sum type with
// --closed-sum. With at most one distinct tag, content is rendered
// bare. The tag choice is global, so a full collection pass over the
// tree runs before any output is emitted.
type SingleLiteral struct{}

// Name implements [Strategy].
func (SingleLiteral) Name() string { return "single-literal" }

// Description implements [Strategy].
func (SingleLiteral) Description() string {
	return "the whole tree as one embeddable data literal"
}

// RegisterFlags implements [Strategy].
func (SingleLiteral) RegisterFlags(fs *pflag.FlagSet, opts *Options) {
	fs.BoolVar(&opts.ClosedSum, "closed-sum", false,
		"declare a closed sum type for heterogeneous leaf content instead of open variant tags")
}

type tagInfo struct {
	tag      string
	typeName string
}

// Output implements [Strategy].
func (s SingleLiteral) Output(tree resource.Tree, opts Options) error {
	// Collection pass: resolve every leaf once and gather the set of
	// distinct content tags in document order.
	plan := make(map[*resource.File]subenc.Resolution)
	var tags []tagInfo
	seen := make(map[string]bool)
	resource.Walk(tree, func(_ []string, n resource.Node) bool {
		f, ok := n.(*resource.File)
		if !ok {
			return true
		}
		res := resolveLeaf(f, opts)
		plan[f] = res
		tag, typeName := contentTag(res)
		if !seen[tag] {
			seen[tag] = true
			tags = append(tags, tagInfo{tag, typeName})
		}
		return true
	})
	wrapped := len(tags) >= 2

	var parts []doc.Doc
	if wrapped && opts.ClosedSum {
		parts = append(parts, s.sumTypeDecl(tags), doc.HardLine, doc.HardLine)
	}
	parts = append(parts,
		doc.Text("let root = "),
		s.listDoc(tree, plan, wrapped, opts),
	)
	return render(opts.Out, doc.Concat(parts...), opts)
}

func (SingleLiteral) sumTypeDecl(tags []tagInfo) doc.Doc {
	parts := []doc.Doc{doc.Text("type content =")}
	for _, t := range tags {
		parts = append(parts, doc.Nest(2, doc.Concat(
			doc.HardLine,
			doc.Text("| "+t.tag+" of "+t.typeName),
		)))
	}
	return doc.Concat(parts...)
}

// listDoc renders an ordered node sequence as a list literal. Error
// nodes become inline comments and take no separator of their own.
func (s SingleLiteral) listDoc(nodes []resource.Node, plan map[*resource.File]subenc.Resolution, wrapped bool, opts Options) doc.Doc {
	var seq []doc.Doc
	hasEntry := false
	for _, n := range nodes {
		if e, ok := n.(*resource.Error); ok {
			if len(seq) > 0 {
				seq = append(seq, doc.Line)
			}
			seq = append(seq, commentDoc(e.Message))
			continue
		}
		if hasEntry {
			seq = append(seq, doc.Text(" ;"), doc.Line)
		} else if len(seq) > 0 {
			seq = append(seq, doc.Line)
		}
		seq = append(seq, s.entryDoc(n, plan, wrapped, opts))
		hasEntry = true
	}
	if len(seq) == 0 {
		return doc.Text("[]")
	}
	all := append([]doc.Doc{doc.Text("[ ")}, seq...)
	all = append(all, doc.Text(" ]"))
	return doc.Group(doc.Nest(2, doc.Concat(all...)))
}

func (s SingleLiteral) entryDoc(n resource.Node, plan map[*resource.File]subenc.Resolution, wrapped bool, opts Options) doc.Doc {
	switch n := n.(type) {
	case *resource.Dir:
		return doc.Concat(
			doc.Text("Dir ("),
			nameLit(n.Name, opts),
			doc.Text(", "),
			s.listDoc(n.Children, plan, wrapped, opts),
			doc.Text(")"),
		)
	case *resource.File:
		return doc.Concat(
			doc.Text("File ("),
			nameLit(n.Name, opts),
			doc.Text(", "),
			s.contentDoc(n, plan[n], wrapped, opts),
			doc.Text(")"),
		)
	}
	return doc.Empty
}

func (SingleLiteral) contentDoc(f *resource.File, res subenc.Resolution, wrapped bool, opts Options) doc.Doc {
	v := valueDoc(f, res, opts)
	if !wrapped {
		return v
	}
	tag, _ := contentTag(res)
	if opts.ClosedSum {
		return doc.Concat(doc.Text(tag+" "), v)
	}
	return doc.Concat(doc.Text("`"+tag+" "), v)
}
