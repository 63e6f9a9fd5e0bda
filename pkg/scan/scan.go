// Package scan builds resource trees from the filesystem. Per-entry
// failures (unreadable files, permission errors) are absorbed into the
// tree as error nodes so one bad entry never aborts a scan; only a
// failure to read the root itself is returned as an error.
//
// Entries are visited in the sorted order returned by os.ReadDir, so a
// scan of the same directory state always yields the same tree.
package scan

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/resfold/resfold/pkg/errors"
	"github.com/resfold/resfold/pkg/resource"
)

// Options controls a scan.
type Options struct {
	// Exts, when non-empty, restricts scanned leaves to names with one
	// of these lower-cased extensions (without the dot).
	Exts []string

	// KeepEmptyDirs keeps directories with no surviving children in
	// the tree. By default they are pruned.
	KeepEmptyDirs bool

	// Logger receives per-entry debug output. Defaults to the package
	// default logger.
	Logger *log.Logger
}

// Scan reads the tree rooted at path. A directory root contributes its
// entries as the tree's top-level nodes; a file root yields a
// single-leaf tree.
func Scan(path string, opts Options) (resource.Tree, error) {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeScanFailed, err, "stat %s", path)
	}
	if !info.IsDir() {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeScanFailed, err, "read %s", path)
		}
		return resource.Tree{&resource.File{Name: filepath.Base(path), Data: data}}, nil
	}
	return scanDir(path, opts), nil
}

func scanDir(dir string, opts Options) []resource.Node {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return []resource.Node{&resource.Error{Message: err.Error()}}
	}

	var nodes []resource.Node
	for _, e := range entries {
		path := filepath.Join(dir, e.Name())
		switch {
		case e.Type()&os.ModeSymlink != 0:
			// Symlinks are not followed: a link pointing back up the
			// tree would make the scan cyclic.
			opts.Logger.Debug("skipping symlink", "path", path)
		case e.IsDir():
			children := scanDir(path, opts)
			if len(children) == 0 && !opts.KeepEmptyDirs {
				opts.Logger.Debug("pruning empty directory", "path", path)
				continue
			}
			nodes = append(nodes, &resource.Dir{Name: e.Name(), Children: children})
		case !e.Type().IsRegular():
			opts.Logger.Debug("skipping special file", "path", path)
		case !extAllowed(e.Name(), opts.Exts):
			opts.Logger.Debug("skipping filtered extension", "path", path)
		default:
			data, err := os.ReadFile(path)
			if err != nil {
				nodes = append(nodes, &resource.Error{Message: err.Error()})
				continue
			}
			nodes = append(nodes, &resource.File{Name: e.Name(), Data: data})
		}
	}
	return nodes
}

func extAllowed(name string, exts []string) bool {
	if len(exts) == 0 {
		return true
	}
	ext := resource.Ext(name)
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}
