package strategy

import (
	"strings"

	"github.com/resfold/resfold/pkg/doc"
	"github.com/resfold/resfold/pkg/format"
	"github.com/resfold/resfold/pkg/resource"
	"github.com/resfold/resfold/pkg/subenc"
)

// rawEnc is the fallback rendering for leaves without a usable
// sub-encoding.
var rawEnc = subenc.Raw{}

// resolveLeaf resolves a leaf against the sub-encoding registry,
// logging the two fallback states. A missing plugin is the documented
// default path and logs at debug level only; a parse failure may hide
// real corruption and is surfaced as a warning before falling back.
func resolveLeaf(f *resource.File, opts Options) subenc.Resolution {
	res := subenc.Resolve(opts.SubEncodings, f.Name, f.Data)
	switch res.State {
	case subenc.StateParseFailed:
		opts.Logger.Warn("sub-encoding parse failed, falling back to raw bytes",
			"resource", f.Name, "encoding", res.Enc.Name(), "err", res.Err)
	case subenc.StateNoPlugin:
		opts.Logger.Debug("no sub-encoding, rendering raw bytes", "resource", f.Name)
	}
	return res
}

// valueDoc lays out the leaf's content from a resolution: the parsed
// value through its sub-encoding, or the escaped raw bytes.
func valueDoc(f *resource.File, res subenc.Resolution, opts Options) doc.Doc {
	if res.State == subenc.StateParsed {
		return res.Enc.Render(res.Value, opts.Width)
	}
	return format.Escape(f.Data, opts.Width)
}

// contentTag returns the constructor label and type hint describing
// the leaf's rendered form.
func contentTag(res subenc.Resolution) (tag, typeName string) {
	if res.State == subenc.StateParsed {
		return res.Enc.Tag(), res.Enc.TypeName()
	}
	return rawEnc.Tag(), rawEnc.TypeName()
}

// commentDoc renders an absorbed scan error as an inert comment.
func commentDoc(msg string) doc.Doc {
	// The comment closer must not appear inside the comment body.
	msg = strings.ReplaceAll(msg, "*)", "* )")
	return doc.Text("(* " + msg + " *)")
}

// nameLit renders a resource name as a quoted string literal.
func nameLit(name string, opts Options) doc.Doc {
	return format.Escape([]byte(name), opts.Width)
}
