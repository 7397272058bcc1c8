package walker

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("// test\n"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestWalker_Walk(t *testing.T) {
	root := t.TempDir()
	for _, p := range []string{
		"b/Second.cs",
		"a/First.cs",
		"a/notes.txt",
		"Top.cs",
		"bind/Generated.cs",
		"Bind/Generated.cs",
		"binding/Kept.cs",
		"a/.git/Hook.cs",
		"Upper.CS",
	} {
		writeFile(t, filepath.Join(root, p))
	}

	w := New([]string{".cs"}, []string{"bind", "Bind", "BIND", ".git", ".svn", "node_modules"})
	files, err := w.Walk(root)
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}

	var rel []string
	for _, f := range files {
		r, _ := filepath.Rel(root, f)
		rel = append(rel, filepath.ToSlash(r))
	}

	want := []string{"Top.cs", "a/First.cs", "b/Second.cs", "binding/Kept.cs"}
	if diff := cmp.Diff(want, rel); diff != "" {
		t.Errorf("Walk mismatch (-want +got):\n%s", diff)
	}
}

func TestWalker_WalkRootErrors(t *testing.T) {
	w := New([]string{".cs"}, nil)

	if _, err := w.Walk(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for missing root")
	}

	file := filepath.Join(t.TempDir(), "file.cs")
	writeFile(t, file)
	if _, err := w.Walk(file); err == nil {
		t.Error("expected error when root is a file")
	}
}

func TestWalker_Subdirs(t *testing.T) {
	root := t.TempDir()
	for _, p := range []string{"Draw/A.cs", "Battle/B.cs", "BIND/C.cs", "Explore/.keep"} {
		writeFile(t, filepath.Join(root, p))
	}
	writeFile(t, filepath.Join(root, "Loose.cs"))

	w := New([]string{".cs"}, []string{"BIND"})
	dirs, err := w.Subdirs(root)
	if err != nil {
		t.Fatalf("Subdirs failed: %v", err)
	}

	want := []string{"Battle", "Draw", "Explore"}
	if diff := cmp.Diff(want, dirs); diff != "" {
		t.Errorf("Subdirs mismatch (-want +got):\n%s", diff)
	}
	if !w.Ignored("BIND") || w.Ignored("bind") {
		t.Error("ignore names should match exactly")
	}
}
