package assets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestResolvePriority(t *testing.T) {
	low := t.TempDir()
	high := t.TempDir()
	writeFile(t, filepath.Join(low, "sand_color.png"), "low")
	writeFile(t, filepath.Join(high, "sand_color.png"), "high")

	m := NewManager(low, high)
	data, path, err := m.Load("sand_color.png")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if string(data) != "high" {
		t.Errorf("got %q from %s, want the last root to win", data, path)
	}
}

func TestResolveExtensionFallback(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "sand_disp.jpg"), "jpg")

	m := NewManager(dir)
	tests := []string{"sand_disp", "sand_disp.png", "sand_disp.jpg"}
	for _, name := range tests {
		t.Run(name, func(t *testing.T) {
			path, err := m.Resolve(name)
			if err != nil {
				t.Fatalf("Resolve(%q) failed: %v", name, err)
			}
			if filepath.Base(path) != "sand_disp.jpg" {
				t.Errorf("Resolve(%q) = %s, want sand_disp.jpg", name, path)
			}
		})
	}
}

func TestResolveMissing(t *testing.T) {
	m := NewManager(t.TempDir(), filepath.Join(t.TempDir(), "does-not-exist"))
	for _, name := range []string{"", "sand_normal.png", "/no/such/file.png"} {
		if _, err := m.Resolve(name); !errors.Is(err, ErrNotFound) {
			t.Errorf("Resolve(%q) error = %v, want ErrNotFound", name, err)
		}
	}
}

func TestResolveIgnoresDirectories(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "sand_color.png"), 0755); err != nil {
		t.Fatal(err)
	}
	m := NewManager(dir)
	if _, err := m.Resolve("sand_color.png"); !errors.Is(err, ErrNotFound) {
		t.Errorf("directory resolved as asset: %v", err)
	}
}

func TestLoadCaches(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.png")
	writeFile(t, path, "first")

	m := NewManager(dir)
	if _, _, err := m.Load("a.png"); err != nil {
		t.Fatal(err)
	}
	writeFile(t, path, "second")
	data, _, err := m.Load("a.png")
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "first" {
		t.Errorf("got %q, want cached bytes", data)
	}
	hits, misses := m.Cache().Stats()
	if hits != 1 || misses != 1 {
		t.Errorf("stats = %d hits, %d misses, want 1 and 1", hits, misses)
	}

	m.Invalidate("a.png")
	data, _, _ = m.Load("a.png")
	if string(data) != "second" {
		t.Errorf("got %q after Invalidate, want fresh bytes", data)
	}

	writeFile(t, path, "third")
	m.Close()
	data, _, _ = m.Load("a.png")
	if string(data) != "third" {
		t.Errorf("got %q after Close, want fresh bytes", data)
	}
}

func TestAbsolutePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.bmp")
	writeFile(t, path, "bmp")
	m := NewManager()
	got, err := m.Resolve(path)
	if err != nil || got != path {
		t.Errorf("Resolve(%s) = %s, %v", path, got, err)
	}
}

func TestListAndRoots(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "one.png"), "1")
	writeFile(t, filepath.Join(dir, "sub", "two.png"), "2")

	m := NewManager()
	m.AddRoot("")
	m.AddRoot(dir)
	if roots := m.Roots(); len(roots) != 1 {
		t.Fatalf("roots = %v, want one", roots)
	}
	files := m.List()
	if len(files) != 1 || filepath.Base(files[0]) != "one.png" {
		t.Errorf("List() = %v, want [one.png]", files)
	}
}

func TestListedFilesLoadWithRelativeRoot(t *testing.T) {
	t.Chdir(t.TempDir())
	writeFile(t, filepath.Join("assets", "sand_color.png"), "sand")

	m := NewManager("assets")
	files := m.List()
	if len(files) != 1 {
		t.Fatalf("List() = %v, want one file", files)
	}
	data, path, err := m.Load(files[0])
	if err != nil {
		t.Fatalf("Load(%q): %v", files[0], err)
	}
	if string(data) != "sand" {
		t.Errorf("data = %q, want %q", data, "sand")
	}
	if path != files[0] {
		t.Errorf("path = %q, want %q", path, files[0])
	}

	// Names relative to a root still resolve through the roots.
	if _, _, err := m.Load("sand_color.png"); err != nil {
		t.Errorf("Load(sand_color.png): %v", err)
	}
}
