package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewKey(t *testing.T) {
	tests := []struct {
		name    string
		wantExt string
	}{
		{name: "report.PDF", wantExt: ".pdf"},
		{name: "scan.final.png", wantExt: ".png"},
		{name: "noext", wantExt: ""},
		{name: "weird.p df", wantExt: ""},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			key := NewKey(test.name)
			if !strings.HasSuffix(key, test.wantExt) || !ValidKey(key) {
				t.Errorf("unexpected key %q", key)
			}
		})
	}
}

func TestValidKey(t *testing.T) {
	for _, key := range []string{"", "../etc/passwd", "a/b", ".hidden", "a..b"} {
		if ValidKey(key) {
			t.Errorf("expected %q to be rejected", key)
		}
	}
}

func TestDiskStore(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(filepath.Join(dir, "records"))
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	stored, err := store.Save(ctx, "k1.txt", strings.NewReader("hello"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if stored.URL != "" {
		t.Errorf("disk files are served by the app, got URL %q", stored.URL)
	}
	if _, err := store.Save(ctx, "k1.txt", strings.NewReader("again")); err == nil {
		t.Errorf("expected overwrite to fail")
	}

	rc, err := store.Open(ctx, "k1.txt")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	body, _ := io.ReadAll(rc)
	rc.Close()
	if string(body) != "hello" {
		t.Errorf("unexpected body %q", body)
	}

	if err := store.Delete(ctx, "k1.txt"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := store.Delete(ctx, "k1.txt"); err != nil {
		t.Errorf("second delete should be a no-op, got %v", err)
	}
	if _, err := store.Open(ctx, "k1.txt"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := store.Open(ctx, "../k1.txt"); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("expected ErrInvalidKey, got %v", err)
	}
}

func TestEncryptedStore(t *testing.T) {
	dir := t.TempDir()
	disk, err := NewDiskStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	store, err := NewEncryptedStore(disk, "secret")
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	plaintext := []byte("blood pressure 120/80")

	if _, err := store.Save(ctx, "bp.txt", bytes.NewReader(plaintext)); err != nil {
		t.Fatalf("save: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "bp.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Contains(raw, plaintext) {
		t.Errorf("file stored in clear text")
	}

	rc, err := store.Open(ctx, "bp.txt")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	got, _ := io.ReadAll(rc)
	if !bytes.Equal(got, plaintext) {
		t.Errorf("unexpected plaintext %q", got)
	}

	other, _ := NewEncryptedStore(disk, "other")
	if _, err := other.Open(ctx, "bp.txt"); err == nil {
		t.Errorf("expected decryption with the wrong key to fail")
	}
}
