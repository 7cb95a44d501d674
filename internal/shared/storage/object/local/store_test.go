package local

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPutWritesUnderBaseDir(t *testing.T) {
	dir := t.TempDir()
	store := New(dir)

	body := "%PDF-1.4 fake"
	if err := store.Put(context.Background(), "resumes/2026/01/02/id-cv.pdf", "application/pdf", int64(len(body)), strings.NewReader(body)); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(dir, "resumes", "2026", "01", "02", "id-cv.pdf"))
	if err != nil {
		t.Fatalf("read archived file: %v", err)
	}
	if string(got) != body {
		t.Fatalf("unexpected content %q", got)
	}
}

func TestPutRejectsTraversal(t *testing.T) {
	store := New(t.TempDir())
	for _, key := range []string{"../escape.pdf", "/abs.pdf", ""} {
		if err := store.Put(context.Background(), key, "application/pdf", -1, strings.NewReader("x")); err == nil {
			t.Fatalf("expected error for key %q", key)
		}
	}
}

func TestPutShortWriteRemovesFile(t *testing.T) {
	dir := t.TempDir()
	store := New(dir)

	if err := store.Put(context.Background(), "a.pdf", "application/pdf", 10, strings.NewReader("abc")); err == nil {
		t.Fatalf("expected short write error")
	}
	if _, err := os.Stat(filepath.Join(dir, "a.pdf")); !os.IsNotExist(err) {
		t.Fatalf("expected partial file removed, stat err=%v", err)
	}
}
