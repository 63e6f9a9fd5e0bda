package strategy

import (
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/resfold/resfold/pkg/errors"
	"github.com/resfold/resfold/pkg/resource"
)

// Files reproduces the resource tree on disk: one real directory per
// directory node and one real file per leaf, byte for byte, under the
// configured output directory. Absorbed scan errors are logged and do
// not abort their siblings; sink failures (permissions, disk full, a
// path that exists as the wrong type) are fatal.
type Files struct{}

// Name implements [Strategy].
func (Files) Name() string { return "reproduce-files" }

// Description implements [Strategy].
func (Files) Description() string {
	return "write the resources back to disk as real files"
}

// RegisterFlags implements [Strategy].
func (Files) RegisterFlags(fs *pflag.FlagSet, opts *Options) {
	fs.StringVar(&opts.OutputDir, "output-dir", ".",
		"base directory for materialized output (created if absent)")
}

// Output implements [Strategy].
func (f Files) Output(tree resource.Tree, opts Options) error {
	base := opts.OutputDir
	if base == "" {
		base = "."
	}
	if err := os.MkdirAll(base, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeSinkFailed, err, "create output directory %s", base)
	}
	return f.writeNodes(tree, base, opts)
}

func (f Files) writeNodes(nodes []resource.Node, dir string, opts Options) error {
	for _, n := range nodes {
		switch n := n.(type) {
		case *resource.Dir:
			if err := errors.ValidateEntryName(n.Name); err != nil {
				return err
			}
			sub := filepath.Join(dir, n.Name)
			if err := os.MkdirAll(sub, 0o755); err != nil {
				return errors.Wrap(errors.ErrCodeSinkFailed, err, "create directory %s", sub)
			}
			if err := f.writeNodes(n.Children, sub, opts); err != nil {
				return err
			}
		case *resource.File:
			if err := errors.ValidateEntryName(n.Name); err != nil {
				return err
			}
			path := filepath.Join(dir, n.Name)
			if err := os.WriteFile(path, n.Data, 0o644); err != nil {
				return errors.Wrap(errors.ErrCodeSinkFailed, err, "write file %s", path)
			}
			opts.Logger.Debug("wrote file", "path", path, "bytes", len(n.Data))
		case *resource.Error:
			opts.Logger.Warn("scan error", "message", n.Message)
		}
	}
	return nil
}
