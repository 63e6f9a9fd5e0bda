package cli

import (
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestRenderCommandWritesFile(t *testing.T) {
	src := t.TempDir()
	if err := os.WriteFile(filepath.Join(src, "a.txt"), []byte("hello\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(t.TempDir(), "out.ml")

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs([]string{"render", src, "--output", out, "--strategy", "bindings"})
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)

	if err := root.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if want := "let a_txt = \"hello\\n\"\n"; string(got) != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestRenderCommandRejectsUnknownStrategy(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs([]string{"render", t.TempDir(), "--strategy", "nope"})
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)

	if err := root.Execute(); err == nil {
		t.Error("Execute() expected error for unknown strategy")
	}
}
