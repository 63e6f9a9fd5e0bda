// Package strategy implements resfold's output strategies: pluggable
// top-level renderings of a whole resource tree. The built-in
// strategies are "bindings" (one OCaml binding per resource, nested in
// modules), "single-literal" (the whole tree as one data literal), and
// "reproduce-files" (byte-for-byte re-materialization on disk).
//
// Strategies live in a registry keyed by name, populated once at
// process start and read-only during rendering. Each strategy
// contributes its own flag schema and is invoked exactly once with a
// completed tree.
package strategy

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/resfold/resfold/pkg/errors"
	"github.com/resfold/resfold/pkg/resource"
	"github.com/resfold/resfold/pkg/subenc"
)

// DefaultWidth is the column budget used when none is configured.
const DefaultWidth = 80

// ribbon is the fixed ribbon ratio applied to all document rendering.
const ribbon = 0.8

// Options carries the configuration shared by all strategies plus the
// strategy-specific settings bound by [Strategy.RegisterFlags].
type Options struct {
	// Width is the column budget for wrapping. Must be at least 8.
	Width int

	// ClosedSum selects a closed sum type over open polymorphic-
	// variant tags for heterogeneous leaf content (single-literal
	// strategy only).
	ClosedSum bool

	// OutputDir is the base directory for materialized output
	// (reproduce-files strategy only). Created if absent.
	OutputDir string

	// Out is the output sink for text-producing strategies.
	// Defaults to standard output.
	Out io.Writer

	// SubEncodings maps file extensions to registered sub-encodings.
	// Leaves without a match fall back to raw-byte rendering.
	SubEncodings *subenc.Registry

	// Logger receives absorbed scan errors and fallback notices.
	Logger *log.Logger
}

// Validate checks option values, returning a configuration error
// before any output is produced.
func (o *Options) Validate() error {
	if o.Width < 8 {
		return errors.New(errors.ErrCodeInvalidWidth, "width must be at least 8, got %d", o.Width)
	}
	return nil
}

func (o *Options) setDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Out == nil {
		o.Out = os.Stdout
	}
	if o.SubEncodings == nil {
		o.SubEncodings = subenc.NewRegistry()
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
}

// Strategy is a pluggable output mode for a whole resource tree.
type Strategy interface {
	// Name is the registry key used to select the strategy.
	Name() string

	// Description is one line of help text.
	Description() string

	// RegisterFlags contributes the strategy's flag schema, binding
	// flags to fields of opts.
	RegisterFlags(fs *pflag.FlagSet, opts *Options)

	// Output renders the tree once, writing to the configured sink.
	// Sink failures are fatal; there is no partial-output guarantee.
	Output(tree resource.Tree, opts Options) error
}

// Registry is a flat, insertion-ordered association from strategy name
// to strategy. Later registration under the same name overrides
// earlier. Registration happens at process start and is never mutated
// concurrently with use.
type Registry struct {
	order  []string
	byName map[string]Strategy
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Strategy)}
}

// Builtin returns a registry with the built-in strategies registered.
func Builtin() *Registry {
	r := NewRegistry()
	r.Register(Bindings{})
	r.Register(SingleLiteral{})
	r.Register(Files{})
	return r
}

// Register adds s under its name, overriding any earlier entry.
func (r *Registry) Register(s Strategy) {
	name := s.Name()
	if _, ok := r.byName[name]; !ok {
		r.order = append(r.order, name)
	}
	r.byName[name] = s
}

// Lookup returns the strategy registered under name.
func (r *Registry) Lookup(name string) (Strategy, bool) {
	s, ok := r.byName[name]
	return s, ok
}

// All lists the registered strategies in registration order.
func (r *Registry) All() []Strategy {
	out := make([]Strategy, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byName[name])
	}
	return out
}

// Run validates opts, applies defaults, and invokes the named
// strategy. Unknown names are a configuration error.
func (r *Registry) Run(name string, tree resource.Tree, opts Options) error {
	s, ok := r.Lookup(name)
	if !ok {
		return errors.New(errors.ErrCodeInvalidStrategy, "unknown strategy %q", name)
	}
	opts.setDefaults()
	if err := opts.Validate(); err != nil {
		return err
	}
	return s.Output(tree, opts)
}
