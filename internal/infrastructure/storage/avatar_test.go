package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestStore(t *testing.T, maxSize int64) *AvatarStore {
	t.Helper()
	store, err := NewAvatarStore(t.TempDir(), "/uploads", maxSize)
	if err != nil {
		t.Fatalf("NewAvatarStore: %v", err)
	}
	return store
}

func TestAvatarStore_Save(t *testing.T) {
	store := newTestStore(t, 1024)

	url, err := store.Save(strings.NewReader("fake png bytes"), "me.PNG")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasPrefix(url, "/uploads/") || !strings.HasSuffix(url, ".png") {
		t.Fatalf("unexpected url %q", url)
	}
	if strings.Contains(url, "me") {
		t.Fatalf("original name leaked into stored name: %q", url)
	}

	stored, err := os.ReadFile(filepath.Join(store.dir, filepath.Base(url)))
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if string(stored) != "fake png bytes" {
		t.Fatalf("content mismatch: %q", stored)
	}
}

func TestAvatarStore_RejectsUnsupportedType(t *testing.T) {
	store := newTestStore(t, 1024)

	for _, name := range []string{"script.sh", "page.html", "noext", "double.png.exe"} {
		if _, err := store.Save(strings.NewReader("x"), name); err != ErrUnsupportedType {
			t.Fatalf("%s: expected ErrUnsupportedType, got %v", name, err)
		}
	}
}

func TestAvatarStore_RejectsOversize(t *testing.T) {
	store := newTestStore(t, 10)

	if _, err := store.Save(strings.NewReader(strings.Repeat("a", 11)), "big.png"); err != ErrFileTooLarge {
		t.Fatalf("expected ErrFileTooLarge, got %v", err)
	}

	// Exactly at the limit is fine.
	if _, err := store.Save(strings.NewReader(strings.Repeat("a", 10)), "ok.png"); err != nil {
		t.Fatalf("at-limit save failed: %v", err)
	}

	// Nothing partial may remain from the rejected upload.
	entries, err := os.ReadDir(store.dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 stored file, found %d", len(entries))
	}
}
