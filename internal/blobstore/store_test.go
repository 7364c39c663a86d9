package blobstore

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/ticketbase-dev/ticketbase/internal/models"
	"github.com/ticketbase-dev/ticketbase/internal/testutils"
)

func TestSaveAndOpenRoundTrip(t *testing.T) {
	gdb := testutils.SetupDB(t)
	store := NewStore(gdb)
	ctx := context.Background()

	// Larger than one chunk so the reader has to walk multiple rows.
	data := bytes.Repeat([]byte("abcdefgh"), 80*1024) // 640 KiB

	if err := store.Save(ctx, "conf.jpg", "image/jpeg", data); err != nil {
		t.Fatalf("save: %v", err)
	}

	reader, err := store.Open(ctx, "conf.jpg")
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	if reader.ContentType() != "image/jpeg" {
		t.Fatalf("content type = %q, want image/jpeg", reader.ContentType())
	}
	if reader.Size() != int64(len(data)) {
		t.Fatalf("size = %d, want %d", reader.Size(), len(data))
	}

	got, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Fatalf("read back %d bytes, content mismatch", len(got))
	}

	var chunks int64
	gdb.Model(&models.BlobChunk{}).Count(&chunks)
	if chunks != 3 {
		t.Fatalf("chunk rows = %d, want 3", chunks)
	}
}

func TestOpenMissing(t *testing.T) {
	store := NewStore(testutils.SetupDB(t))

	_, err := store.Open(context.Background(), "nope.jpg")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestSaveSameNameReplaces(t *testing.T) {
	gdb := testutils.SetupDB(t)
	store := NewStore(gdb)
	ctx := context.Background()

	if err := store.Save(ctx, "poster.jpg", "image/jpeg", bytes.Repeat([]byte{1}, 300*1024)); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := store.Save(ctx, "poster.jpg", "image/jpeg", []byte("replaced")); err != nil {
		t.Fatalf("second save: %v", err)
	}

	reader, err := store.Open(ctx, "poster.jpg")
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	got, _ := io.ReadAll(reader)
	if string(got) != "replaced" {
		t.Fatalf("content = %q, want %q", got, "replaced")
	}

	var blobs int64
	gdb.Model(&models.Blob{}).Count(&blobs)
	if blobs != 1 {
		t.Fatalf("blob rows = %d, want 1", blobs)
	}

	// Old chunks must be gone, not orphaned.
	var chunks int64
	gdb.Model(&models.BlobChunk{}).Count(&chunks)
	if chunks != 1 {
		t.Fatalf("chunk rows = %d, want 1", chunks)
	}
}

func TestSaveEmptyBlob(t *testing.T) {
	store := NewStore(testutils.SetupDB(t))
	ctx := context.Background()

	if err := store.Save(ctx, "empty.jpg", "image/jpeg", nil); err != nil {
		t.Fatalf("save: %v", err)
	}

	reader, err := store.Open(ctx, "empty.jpg")
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	got, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("read %d bytes, want 0", len(got))
	}
}
