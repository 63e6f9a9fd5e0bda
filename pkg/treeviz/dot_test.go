package treeviz

import (
	"strings"
	"testing"

	"github.com/resfold/resfold/pkg/resource"
)

func TestToDOT(t *testing.T) {
	tree := resource.Tree{
		&resource.Dir{Name: "assets", Children: []resource.Node{
			&resource.File{Name: "logo.png", Data: []byte{1, 2, 3}},
			&resource.Error{Message: "permission denied"},
		}},
	}

	dot := ToDOT(tree)

	wantFragments := []string{
		"digraph resources {",
		"rankdir=LR;",
		`n1 [label="assets/"];`,
		`n2 [shape=note, label="logo.png\n3 bytes"];`,
		"n1 -> n2;",
		`fillcolor=lightgrey, label="permission denied"];`,
		"n1 -> n3 [style=dashed];",
	}
	for _, want := range wantFragments {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT output missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOTEmptyTree(t *testing.T) {
	dot := ToDOT(nil)
	if !strings.HasPrefix(dot, "digraph resources {") || !strings.HasSuffix(dot, "}\n") {
		t.Errorf("DOT output malformed:\n%s", dot)
	}
}

func TestToDOTSequentialIDs(t *testing.T) {
	tree := resource.Tree{
		&resource.File{Name: "a", Data: nil},
		&resource.File{Name: "b", Data: nil},
		&resource.File{Name: "c", Data: nil},
	}
	dot := ToDOT(tree)
	for _, id := range []string{"n1 ", "n2 ", "n3 "} {
		if !strings.Contains(dot, "  "+id) {
			t.Errorf("DOT output missing node %q:\n%s", id, dot)
		}
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00">`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50">`
	if got != want {
		t.Errorf("normalizeViewBox() = %q, want %q", got, want)
	}

	// SVG without a viewBox is passed through untouched.
	plain := []byte(`<svg width="10">`)
	if got := string(normalizeViewBox(plain)); got != string(plain) {
		t.Errorf("normalizeViewBox() = %q, want unchanged", got)
	}
}
