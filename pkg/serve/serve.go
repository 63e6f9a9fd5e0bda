// Package serve exposes a scanned resource tree over HTTP for
// previewing what an embedding will contain: every leaf is served at
// its relative path with its exact bytes, directories render a plain
// listing, and /api/tree returns a JSON index of the whole tree.
//
// The tree is read-only while the server runs; handlers never mutate
// it, so no locking is needed.
package serve

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/resfold/resfold/pkg/resource"
)

// Server serves one immutable resource tree.
type Server struct {
	tree   resource.Tree
	logger *log.Logger
}

// NewHandler builds the HTTP handler for a tree.
func NewHandler(tree resource.Tree, logger *log.Logger) http.Handler {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{tree: tree, logger: logger}

	r := chi.NewRouter()
	r.Use(s.logRequests)
	r.Get("/api/tree", s.handleIndex)
	r.Get("/*", s.handleResource)
	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path,
			"duration", time.Since(start).Round(time.Microsecond))
	})
}

// indexEntry is the JSON shape of one tree node.
type indexEntry struct {
	Name     string       `json:"name,omitempty"`
	Type     string       `json:"type"` // "dir", "file", or "error"
	Size     int          `json:"size,omitempty"`
	Message  string       `json:"message,omitempty"`
	Children []indexEntry `json:"children,omitempty"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(buildIndex(s.tree)); err != nil {
		s.logger.Error("encode tree index", "err", err)
	}
}

func buildIndex(nodes []resource.Node) []indexEntry {
	out := make([]indexEntry, 0, len(nodes))
	for _, n := range nodes {
		switch n := n.(type) {
		case *resource.Dir:
			out = append(out, indexEntry{Name: n.Name, Type: "dir", Children: buildIndex(n.Children)})
		case *resource.File:
			out = append(out, indexEntry{Name: n.Name, Type: "file", Size: len(n.Data)})
		case *resource.Error:
			out = append(out, indexEntry{Type: "error", Message: n.Message})
		}
	}
	return out
}

func (s *Server) handleResource(w http.ResponseWriter, r *http.Request) {
	rel := strings.Trim(path.Clean("/"+chi.URLParam(r, "*")), "/")
	if rel == "" || rel == "." {
		s.listing(w, "/", s.tree)
		return
	}

	nodes := []resource.Node(s.tree)
	parts := strings.Split(rel, "/")
	for i, part := range parts {
		n := findNode(nodes, part)
		if n == nil {
			http.NotFound(w, r)
			return
		}
		last := i == len(parts)-1
		switch n := n.(type) {
		case *resource.Dir:
			if last {
				s.listing(w, "/"+rel+"/", n.Children)
				return
			}
			nodes = n.Children
		case *resource.File:
			if !last {
				http.NotFound(w, r)
				return
			}
			s.serveFile(w, n)
			return
		}
	}
}

func findNode(nodes []resource.Node, name string) resource.Node {
	for _, n := range nodes {
		switch n := n.(type) {
		case *resource.Dir:
			if n.Name == name {
				return n
			}
		case *resource.File:
			if n.Name == name {
				return n
			}
		}
	}
	return nil
}

func (s *Server) serveFile(w http.ResponseWriter, f *resource.File) {
	ct := mime.TypeByExtension(path.Ext(f.Name))
	if ct == "" {
		ct = http.DetectContentType(f.Data)
	}
	w.Header().Set("Content-Type", ct)
	w.Header().Set("Content-Length", fmt.Sprint(len(f.Data)))
	if _, err := w.Write(f.Data); err != nil {
		s.logger.Error("write response", "resource", f.Name, "err", err)
	}
}

func (s *Server) listing(w http.ResponseWriter, dir string, nodes []resource.Node) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "%s\n", dir)
	for _, n := range nodes {
		switch n := n.(type) {
		case *resource.Dir:
			fmt.Fprintf(w, "  %s/\n", n.Name)
		case *resource.File:
			fmt.Fprintf(w, "  %s (%d bytes)\n", n.Name, len(n.Data))
		case *resource.Error:
			fmt.Fprintf(w, "  ! %s\n", n.Message)
		}
	}
}
