package resource

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExt(t *testing.T) {
	tests := []struct {
		name string
		arg  string
		want string
	}{
		{"simple", "logo.png", "png"},
		{"upper-cased", "README.TXT", "txt"},
		{"multiple dots", "archive.tar.gz", "gz"},
		{"no dot", "Makefile", ""},
		{"trailing dot", "weird.", ""},
		{"leading dot only", ".gitignore", "gitignore"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Ext(tt.arg); got != tt.want {
				t.Errorf("Ext(%q) = %q, want %q", tt.arg, got, tt.want)
			}
		})
	}
}

func sampleTree() Tree {
	return Tree{
		&File{Name: "top.txt", Data: []byte("abc")},
		&Dir{Name: "sub", Children: []Node{
			&File{Name: "inner.bin", Data: []byte{1, 2}},
			&Error{Message: "permission denied"},
			&Dir{Name: "deep", Children: []Node{
				&File{Name: "leaf", Data: nil},
			}},
		}},
	}
}

func TestWalkOrderAndPaths(t *testing.T) {
	var visited []string
	Walk(sampleTree(), func(path []string, n Node) bool {
		visited = append(visited, strings.Join(append(append([]string{}, path...), n.Label()), "/"))
		return true
	})

	want := []string{
		"top.txt",
		"sub",
		"sub/inner.bin",
		"sub/error: permission denied",
		"sub/deep",
		"sub/deep/leaf",
	}
	if diff := cmp.Diff(want, visited); diff != "" {
		t.Errorf("walk order mismatch (-want +got):\n%s", diff)
	}
}

func TestWalkEarlyStop(t *testing.T) {
	var visited int
	done := Walk(sampleTree(), func(_ []string, n Node) bool {
		visited++
		return n.Label() != "sub"
	})
	if done {
		t.Error("Walk() = true, want false after early stop")
	}
	if visited != 2 {
		t.Errorf("visited = %d, want 2", visited)
	}
}

func TestCount(t *testing.T) {
	got := Count(sampleTree())
	want := Stats{Dirs: 2, Files: 3, Errors: 1, Bytes: 5}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Count() mismatch (-want +got):\n%s", diff)
	}
}
