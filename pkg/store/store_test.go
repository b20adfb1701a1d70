package store

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNewSnapshot(t *testing.T) {
	s1 := NewSnapshot("main", []byte(`{"nodes":[]}`))
	s2 := NewSnapshot("main", []byte(`{"nodes":[]}`))

	if s1.ID == "" || s1.ID == s2.ID {
		t.Errorf("snapshot IDs should be unique and non-empty: %q, %q", s1.ID, s2.ID)
	}
	if s1.Name != "main" {
		t.Errorf("Name = %q, want %q", s1.Name, "main")
	}
	if s1.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore error: %v", err)
	}
	defer s.Close(ctx)

	snap := NewSnapshot("daily", []byte(`{"nodes":[{"id":"a"}],"wires":[]}`))
	if err := s.Put(ctx, snap); err != nil {
		t.Fatalf("Put error: %v", err)
	}

	got, err := s.Get(ctx, snap.ID)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.Name != snap.Name || string(got.Graph) != string(snap.Graph) {
		t.Errorf("Get = %+v, want %+v", got, snap)
	}
}

func TestFileStoreGetMissing(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore error: %v", err)
	}

	_, err = s.Get(ctx, "no-such-id")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get error = %v, want ErrNotFound", err)
	}
}

func TestFileStorePutInvalid(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore error: %v", err)
	}

	if err := s.Put(ctx, &Snapshot{Name: "no-id"}); !errors.Is(err, ErrInvalidSnapshot) {
		t.Errorf("Put error = %v, want ErrInvalidSnapshot", err)
	}
	if err := s.Put(ctx, nil); !errors.Is(err, ErrInvalidSnapshot) {
		t.Errorf("Put(nil) error = %v, want ErrInvalidSnapshot", err)
	}
}

func TestFileStoreListSortsNewestFirst(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore error: %v", err)
	}

	old := NewSnapshot("old", []byte("{}"))
	old.CreatedAt = time.Now().Add(-time.Hour)
	fresh := NewSnapshot("fresh", []byte("{}"))

	for _, snap := range []*Snapshot{old, fresh} {
		if err := s.Put(ctx, snap); err != nil {
			t.Fatalf("Put error: %v", err)
		}
	}

	snaps, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(snaps) != 2 {
		t.Fatalf("List returned %d snapshots, want 2", len(snaps))
	}
	if snaps[0].Name != "fresh" || snaps[1].Name != "old" {
		t.Errorf("List order = [%s, %s], want [fresh, old]", snaps[0].Name, snaps[1].Name)
	}
}

func TestFileStoreDelete(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore error: %v", err)
	}

	snap := NewSnapshot("gone", []byte("{}"))
	if err := s.Put(ctx, snap); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	if err := s.Delete(ctx, snap.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, err := s.Get(ctx, snap.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after Delete = %v, want ErrNotFound", err)
	}

	// Deleting twice is fine.
	if err := s.Delete(ctx, snap.ID); err != nil {
		t.Errorf("second Delete error: %v", err)
	}
}
