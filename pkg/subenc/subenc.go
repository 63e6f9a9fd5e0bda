// Package subenc provides pluggable sub-encodings: decoders that parse
// a resource's bytes into a structured value and render that value
// into the output document model. Sub-encodings are bound to
// lower-cased file extensions in a registry populated once at process
// start; a leaf whose extension has no binding falls back to raw-byte
// rendering.
//
// Lookup and parsing are kept as distinct outcomes: a missing plugin,
// a plugin whose parse failed, and a successful parse are three
// explicit states (see [Resolve]), so parse failures can be surfaced
// instead of being silently folded into the fallback path.
package subenc

import (
	"sort"

	"github.com/resfold/resfold/pkg/doc"
	"github.com/resfold/resfold/pkg/resource"
)

// SubEncoding is a pluggable structured decoder for one class of leaf
// content. Implementations must be stateless; they are registered once
// and looked up per leaf.
type SubEncoding interface {
	// Name is the catalog name used to select the encoding on the
	// command line and in config files (e.g. "lines").
	Name() string

	// Tag is the constructor label used when heterogeneous leaf
	// content is wrapped in a discriminated tag (e.g. "Lines").
	Tag() string

	// TypeName is the textual type hint for the parsed value in the
	// generated grammar (e.g. "string list").
	TypeName() string

	// Parse decodes the payload into a structured value. A failure is
	// not fatal to rendering; callers fall back to raw bytes.
	Parse(data []byte) (any, error)

	// Render lays out a value previously returned by Parse. width is
	// the column budget applied to embedded literals.
	Render(v any, width int) doc.Doc
}

// Registry is a flat, insertion-ordered association from file
// extension to sub-encoding. It is populated before rendering begins
// and must not be mutated concurrently with lookups; rendering only
// reads it.
type Registry struct {
	order []string
	byExt map[string]SubEncoding
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byExt: make(map[string]SubEncoding)}
}

// Register binds ext to enc. Registering an already-bound extension
// overrides the earlier binding; there is no removal.
func (r *Registry) Register(ext string, enc SubEncoding) {
	if _, ok := r.byExt[ext]; !ok {
		r.order = append(r.order, ext)
	}
	r.byExt[ext] = enc
}

// Lookup returns the sub-encoding bound to ext.
func (r *Registry) Lookup(ext string) (SubEncoding, bool) {
	enc, ok := r.byExt[ext]
	return enc, ok
}

// Extensions lists the bound extensions in registration order.
func (r *Registry) Extensions() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// State classifies the outcome of resolving a leaf against a registry.
type State int

const (
	// StateNoPlugin means no sub-encoding is bound to the leaf's
	// extension (or the leaf has none). This is the documented default
	// path to raw-byte rendering, not an error.
	StateNoPlugin State = iota

	// StateParseFailed means a sub-encoding was found but could not
	// parse the payload. Rendering falls back to raw bytes; callers
	// should surface the failure, since it may hide real corruption.
	StateParseFailed

	// StateParsed means the sub-encoding parsed the payload.
	StateParsed
)

// Resolution is the explicit result of [Resolve].
type Resolution struct {
	State State
	Enc   SubEncoding // nil in StateNoPlugin
	Value any         // set in StateParsed
	Err   error       // set in StateParseFailed
}

// Resolve looks up the sub-encoding for a leaf name and, when one is
// bound, parses the payload.
func Resolve(reg *Registry, name string, data []byte) Resolution {
	ext := resource.Ext(name)
	if ext == "" {
		return Resolution{State: StateNoPlugin}
	}
	enc, ok := reg.Lookup(ext)
	if !ok {
		return Resolution{State: StateNoPlugin}
	}
	v, err := enc.Parse(data)
	if err != nil {
		return Resolution{State: StateParseFailed, Enc: enc, Err: err}
	}
	return Resolution{State: StateParsed, Enc: enc, Value: v}
}

// ByName returns a built-in sub-encoding from the catalog.
func ByName(name string) (SubEncoding, bool) {
	enc, ok := catalog[name]
	return enc, ok
}

// Names lists the catalog in sorted order, for help output.
func Names() []string {
	out := make([]string, 0, len(catalog))
	for n := range catalog {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
