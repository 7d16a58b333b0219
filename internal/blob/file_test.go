package blob

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func TestFileStoreRoundTrip(t *testing.T) {
	store := NewFileStore(t.TempDir())
	ctx := context.Background()

	payload := []byte(`[{"lat":35.1,"lng":129.0,"timestamp":1}]`)
	if err := store.Write(ctx, "requests.json", payload); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := store.Read(ctx, "requests.json")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("round trip mismatch: %q != %q", got, payload)
	}

	ok, err := store.Exists(ctx, "requests.json")
	if err != nil || !ok {
		t.Fatalf("exists = %v, %v; want true, nil", ok, err)
	}
}

func TestFileStoreMissingKey(t *testing.T) {
	store := NewFileStore(t.TempDir())
	ctx := context.Background()

	if _, err := store.Read(ctx, "absent.json"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	ok, err := store.Exists(ctx, "absent.json")
	if err != nil || ok {
		t.Fatalf("exists = %v, %v; want false, nil", ok, err)
	}
}

func TestFileStoreCreatesParentDirectories(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)
	ctx := context.Background()

	key := "nested/deeper/catalog.json"
	if err := store.Write(ctx, key, []byte("[]")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := store.Read(ctx, key); err != nil {
		t.Fatalf("read back: %v", err)
	}
	// key maps onto the filesystem path under the base dir
	if _, err := store.Read(ctx, filepath.ToSlash(key)); err != nil {
		t.Fatalf("slash key: %v", err)
	}
}

func TestFileStoreWriteReplacesWholeObject(t *testing.T) {
	store := NewFileStore(t.TempDir())
	ctx := context.Background()

	if err := store.Write(ctx, "k", []byte("first version, longer")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := store.Write(ctx, "k", []byte("second")); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	got, err := store.Read(ctx, "k")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != "second" {
		t.Fatalf("expected full replacement, got %q", got)
	}
}

func TestMemStoreIsolatesReturnedBytes(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	if err := store.Write(ctx, "k", []byte("abc")); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, _ := store.Read(ctx, "k")
	got[0] = 'X'
	again, _ := store.Read(ctx, "k")
	if string(again) != "abc" {
		t.Fatalf("stored bytes were mutated through a read: %q", again)
	}
}
