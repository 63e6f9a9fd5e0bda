// Package resource defines the in-memory tree of named resources that
// resfold renders. A tree is an ordered sequence of nodes: directories
// owning their children, files owning their payload bytes, and error
// nodes carrying scan failures that were absorbed instead of aborting
// the scan.
//
// Trees are finite, acyclic, and immutable once built. Order is
// render-significant and preserved from the scan.
package resource

import "strings"

// Node is one entry in a resource tree. The three implementations are
// [*Dir], [*File], and [*Error].
type Node interface {
	// Label returns the node's name as scanned, or a short description
	// for error nodes. Used for logging and tree listings.
	Label() string

	isNode()
}

// Tree is an ordered sequence of top-level nodes. No single root node
// is required.
type Tree []Node

// Dir is a named directory owning an ordered sequence of children.
type Dir struct {
	Name     string
	Children []Node
}

// File is a named leaf owning its payload. The payload is immutable
// once the node is constructed.
type File struct {
	Name string
	Data []byte
}

// Error records a scan failure absorbed into the tree. It carries no
// payload and renders as an inert comment or log line.
type Error struct {
	Message string
}

func (d *Dir) Label() string   { return d.Name }
func (f *File) Label() string  { return f.Name }
func (e *Error) Label() string { return "error: " + e.Message }

func (*Dir) isNode()   {}
func (*File) isNode()  {}
func (*Error) isNode() {}

// Ext returns the lower-cased extension of a resource name: the text
// after the final dot. Names without a dot, or ending in a dot, have
// no extension and return "".
func Ext(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i < 0 || i == len(name)-1 {
		return ""
	}
	return strings.ToLower(name[i+1:])
}

// Walk visits every node of the tree in depth-first document order,
// calling fn with each node and its path of enclosing directory names.
// Walk stops early and returns false if fn returns false.
func Walk(t Tree, fn func(path []string, n Node) bool) bool {
	return walk(t, nil, fn)
}

func walk(nodes []Node, path []string, fn func(path []string, n Node) bool) bool {
	for _, n := range nodes {
		if !fn(path, n) {
			return false
		}
		if d, ok := n.(*Dir); ok {
			if !walk(d.Children, append(path, d.Name), fn) {
				return false
			}
		}
	}
	return true
}

// Stats summarizes a tree for progress output.
type Stats struct {
	Dirs   int
	Files  int
	Errors int
	Bytes  int64
}

// Count tallies the nodes of a tree.
func Count(t Tree) Stats {
	var s Stats
	Walk(t, func(_ []string, n Node) bool {
		switch n := n.(type) {
		case *Dir:
			s.Dirs++
		case *File:
			s.Files++
			s.Bytes += int64(len(n.Data))
		case *Error:
			s.Errors++
		}
		return true
	})
	return s
}
