package strategy

import (
	"io"

	"github.com/spf13/pflag"

	"github.com/resfold/resfold/pkg/doc"
	"github.com/resfold/resfold/pkg/errors"
	"github.com/resfold/resfold/pkg/format"
	"github.com/resfold/resfold/pkg/resource"
)

// Bindings renders each resource as a language-level binding:
// directories become nested modules, leaves become named values, and
// absorbed scan errors become comments.
type Bindings struct{}

// Name implements [Strategy].
func (Bindings) Name() string { return "bindings" }

// Description implements [Strategy].
func (Bindings) Description() string {
	return "OCaml source with one binding per resource, nested in modules"
}

// RegisterFlags implements [Strategy]. The bindings strategy has no
// flags beyond the shared ones.
func (Bindings) RegisterFlags(*pflag.FlagSet, *Options) {}

// Output implements [Strategy].
func (Bindings) Output(tree resource.Tree, opts Options) error {
	docs := make([]doc.Doc, 0, len(tree))
	for _, n := range tree {
		docs = append(docs, bindingNode(n, opts))
	}
	d := doc.Join(doc.HardLine, docs...)
	if err := render(opts.Out, d, opts); err != nil {
		return err
	}
	return nil
}

func bindingNode(n resource.Node, opts Options) doc.Doc {
	switch n := n.(type) {
	case *resource.Dir:
		children := make([]doc.Doc, 0, len(n.Children))
		for _, c := range n.Children {
			children = append(children, bindingNode(c, opts))
		}
		if len(children) == 0 {
			return doc.Concat(
				doc.Text("module "+format.ModuleIdent(n.Name)+" = struct"),
				doc.Text(" end"),
			)
		}
		return doc.Concat(
			doc.Text("module "+format.ModuleIdent(n.Name)+" = struct"),
			doc.Nest(2, doc.Concat(
				doc.HardLine,
				doc.Join(doc.HardLine, children...),
			)),
			doc.HardLine,
			doc.Text("end"),
		)
	case *resource.File:
		res := resolveLeaf(n, opts)
		return doc.Concat(
			doc.Text("let "+format.ValueIdent(n.Name)+" = "),
			valueDoc(n, res, opts),
		)
	case *resource.Error:
		return commentDoc(n.Message)
	}
	return doc.Empty
}

// render streams a completed document to the sink, followed by a final
// newline. Sink failures are fatal.
func render(w io.Writer, d doc.Doc, opts Options) error {
	if err := doc.Render(w, opts.Width, ribbon, d); err != nil {
		return errors.Wrap(errors.ErrCodeSinkFailed, err, "write output")
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return errors.Wrap(errors.ErrCodeSinkFailed, err, "write output")
	}
	return nil
}
