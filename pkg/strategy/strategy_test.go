package strategy

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	"github.com/resfold/resfold/pkg/errors"
	"github.com/resfold/resfold/pkg/resource"
	"github.com/resfold/resfold/pkg/subenc"
)

func testOptions(out io.Writer) Options {
	return Options{
		Width:        80,
		Out:          out,
		SubEncodings: subenc.NewRegistry(),
		Logger:       log.New(io.Discard),
	}
}

func runStrategy(t *testing.T, name string, tree resource.Tree, opts Options) string {
	t.Helper()
	var buf bytes.Buffer
	opts.Out = &buf
	if err := Builtin().Run(name, tree, opts); err != nil {
		t.Fatalf("Run(%q) error = %v", name, err)
	}
	return buf.String()
}

func TestBuiltinRegistry(t *testing.T) {
	r := Builtin()
	var names []string
	for _, s := range r.All() {
		names = append(names, s.Name())
	}
	want := []string{"bindings", "single-literal", "reproduce-files"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("registry order mismatch (-want +got):\n%s", diff)
	}
}

func TestRunUnknownStrategy(t *testing.T) {
	err := Builtin().Run("nope", nil, testOptions(io.Discard))
	if !errors.Is(err, errors.ErrCodeInvalidStrategy) {
		t.Errorf("Run(nope) error = %v, want INVALID_STRATEGY", err)
	}
}

func TestRunRejectsNarrowWidth(t *testing.T) {
	opts := testOptions(io.Discard)
	opts.Width = 4
	err := Builtin().Run("bindings", nil, opts)
	if !errors.Is(err, errors.ErrCodeInvalidWidth) {
		t.Errorf("Run() error = %v, want INVALID_WIDTH", err)
	}
}

func TestBindings(t *testing.T) {
	tree := resource.Tree{
		&resource.Dir{Name: "root", Children: []resource.Node{
			&resource.File{Name: "a.txt", Data: []byte("hello\n")},
			&resource.File{Name: "b.bin", Data: []byte{0x00, 0x01, 0xFF}},
		}},
	}

	got := runStrategy(t, "bindings", tree, testOptions(nil))
	want := "module Root = struct\n" +
		"  let a_txt = \"hello\\n\"\n" +
		"  let b_bin = \"\\x00\\x01\\xFF\"\n" +
		"end\n"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestBindingsEmptyDir(t *testing.T) {
	tree := resource.Tree{&resource.Dir{Name: "empty"}}
	if got := runStrategy(t, "bindings", tree, testOptions(nil)); got != "module Empty = struct end\n" {
		t.Errorf("output = %q", got)
	}
}

func TestBindingsErrorComment(t *testing.T) {
	tree := resource.Tree{&resource.Error{Message: "disk *) gone"}}
	if got := runStrategy(t, "bindings", tree, testOptions(nil)); got != "(* disk * ) gone *)\n" {
		t.Errorf("output = %q", got)
	}
}

func TestBindingsSubEncoding(t *testing.T) {
	tree := resource.Tree{
		&resource.File{Name: "words.txt", Data: []byte("alpha\nbeta\n")},
	}
	opts := testOptions(nil)
	opts.SubEncodings.Register("txt", subenc.Lines{})

	got := runStrategy(t, "bindings", tree, opts)
	want := "let words_txt = [ \"alpha\" ; \"beta\" ]\n"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestSingleLiteralHomogeneous(t *testing.T) {
	tree := resource.Tree{
		&resource.File{Name: "a.txt", Data: []byte("x")},
		&resource.File{Name: "b.bin", Data: []byte{0x00}},
	}

	// A single distinct content tag: values are rendered bare.
	got := runStrategy(t, "single-literal", tree, testOptions(nil))
	want := "let root = [ File (\"a.txt\", \"x\") ; File (\"b.bin\", \"\\x00\") ]\n"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestSingleLiteralEmptyTree(t *testing.T) {
	if got := runStrategy(t, "single-literal", nil, testOptions(nil)); got != "let root = []\n" {
		t.Errorf("output = %q", got)
	}
}

func TestSingleLiteralErrorComment(t *testing.T) {
	tree := resource.Tree{&resource.Error{Message: "boom"}}
	if got := runStrategy(t, "single-literal", tree, testOptions(nil)); got != "let root = [ (* boom *) ]\n" {
		t.Errorf("output = %q", got)
	}
}

func TestSingleLiteralOpenTags(t *testing.T) {
	tree := resource.Tree{
		&resource.File{Name: "n.int", Data: []byte("42")},
		&resource.File{Name: "b.bin", Data: []byte{0x00}},
	}
	opts := testOptions(nil)
	opts.Width = 120
	opts.SubEncodings.Register("int", subenc.Int{})

	// Two distinct tags: every value is wrapped, open variants by default.
	got := runStrategy(t, "single-literal", tree, opts)
	want := "let root = [ File (\"n.int\", `Int 42) ; File (\"b.bin\", `Raw \"\\x00\") ]\n"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestSingleLiteralClosedSum(t *testing.T) {
	tree := resource.Tree{
		&resource.File{Name: "n.int", Data: []byte("42")},
		&resource.File{Name: "b.bin", Data: []byte{0x00}},
	}
	opts := testOptions(nil)
	opts.Width = 120
	opts.ClosedSum = true
	opts.SubEncodings.Register("int", subenc.Int{})

	got := runStrategy(t, "single-literal", tree, opts)
	want := "type content =\n" +
		"  | Int of int\n" +
		"  | Raw of string\n" +
		"\n" +
		"let root = [ File (\"n.int\", Int 42) ; File (\"b.bin\", Raw \"\\x00\") ]\n"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestSingleLiteralNestedDir(t *testing.T) {
	tree := resource.Tree{
		&resource.Dir{Name: "sub", Children: []resource.Node{
			&resource.File{Name: "a", Data: []byte("x")},
		}},
	}
	got := runStrategy(t, "single-literal", tree, testOptions(nil))
	want := "let root = [ Dir (\"sub\", [ File (\"a\", \"x\") ]) ]\n"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestSingleLiteralParseFailureFallsBack(t *testing.T) {
	tree := resource.Tree{
		&resource.File{Name: "bad.int", Data: []byte("oops")},
	}
	opts := testOptions(nil)
	opts.SubEncodings.Register("int", subenc.Int{})

	// The failed parse falls back to raw bytes; with only one distinct
	// tag left, no wrapping happens.
	got := runStrategy(t, "single-literal", tree, opts)
	want := "let root = [ File (\"bad.int\", \"oops\") ]\n"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestFallbackMatchesUnboundExtension(t *testing.T) {
	opts := testOptions(nil)
	opts.SubEncodings.Register("int", subenc.Int{})

	// An unbound extension and no extension at all take the same
	// raw-rendering path.
	unbound := runStrategy(t, "bindings",
		resource.Tree{&resource.File{Name: "data.zzz", Data: []byte("v")}}, opts)
	noExt := runStrategy(t, "bindings",
		resource.Tree{&resource.File{Name: "data", Data: []byte("v")}}, opts)

	if unbound != "let data_zzz = \"v\"\n" {
		t.Errorf("unbound output = %q", unbound)
	}
	if noExt != "let data = \"v\"\n" {
		t.Errorf("no-extension output = %q", noExt)
	}
}

func TestReproduceFiles(t *testing.T) {
	tree := resource.Tree{
		&resource.File{Name: "top.bin", Data: []byte{0xDE, 0xAD}},
		&resource.Dir{Name: "sub", Children: []resource.Node{
			&resource.File{Name: "inner.txt", Data: []byte("hello\n")},
			&resource.Error{Message: "unreadable"},
		}},
	}

	opts := testOptions(io.Discard)
	opts.OutputDir = filepath.Join(t.TempDir(), "out")
	if err := Builtin().Run("reproduce-files", tree, opts); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	top, err := os.ReadFile(filepath.Join(opts.OutputDir, "top.bin"))
	if err != nil {
		t.Fatalf("read top.bin: %v", err)
	}
	if !bytes.Equal(top, []byte{0xDE, 0xAD}) {
		t.Errorf("top.bin = %v", top)
	}

	inner, err := os.ReadFile(filepath.Join(opts.OutputDir, "sub", "inner.txt"))
	if err != nil {
		t.Fatalf("read sub/inner.txt: %v", err)
	}
	if string(inner) != "hello\n" {
		t.Errorf("inner.txt = %q", inner)
	}
}

func TestReproduceFilesRejectsUnsafeNames(t *testing.T) {
	tests := []struct {
		name string
		tree resource.Tree
	}{
		{"separator in file name", resource.Tree{&resource.File{Name: "a/b", Data: nil}}},
		{"dotdot dir", resource.Tree{&resource.Dir{Name: ".."}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := testOptions(io.Discard)
			opts.OutputDir = t.TempDir()
			err := Builtin().Run("reproduce-files", tt.tree, opts)
			if !errors.Is(err, errors.ErrCodeInvalidPath) {
				t.Errorf("Run() error = %v, want INVALID_PATH", err)
			}
		})
	}
}
