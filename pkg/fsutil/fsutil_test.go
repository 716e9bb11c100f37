package fsutil_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/gotbl/pkg/fsutil"
)

func TestReadFile(t *testing.T) {
	t.Parallel()

	t.Run("reads file content", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "loot.tbl")
		content := []byte("#loot\n1.0: gold\n")

		if err := os.WriteFile(path, content, 0644); err != nil {
			t.Fatalf("setup: %v", err)
		}

		ctx := context.Background()
		got, err := fsutil.ReadFile(ctx, path)
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}
		if string(got) != string(content) {
			t.Errorf("content = %q, want %q", got, content)
		}
	})

	t.Run("categorizes missing file", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		_, err := fsutil.ReadFile(ctx, filepath.Join(t.TempDir(), "absent.tbl"))

		if !errors.Is(err, fsutil.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("categorizes directory", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		_, err := fsutil.ReadFile(ctx, t.TempDir())

		if !errors.Is(err, fsutil.ErrIsDirectory) {
			t.Errorf("expected ErrIsDirectory, got %v", err)
		}
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if _, err := fsutil.ReadFile(ctx, "anypath"); err == nil {
			t.Fatal("expected error for cancelled context")
		}
	})
}

func TestExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "present.tbl")
	if err := os.WriteFile(path, []byte("#t\n1: x\n"), 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	if !fsutil.Exists(path) {
		t.Error("Exists() = false for existing file")
	}
	if !fsutil.Exists(dir) {
		t.Error("Exists() = false for existing directory")
	}
	if fsutil.Exists(filepath.Join(dir, "absent.tbl")) {
		t.Error("Exists() = true for missing path")
	}
}
