package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/BruksfildServices01/pitstop-servix/internal/backend"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore(time.Hour)
	ctx := context.Background()

	in := &Session{ID: "abc", Token: "tok", User: &backend.User{ID: 7, Name: "Asha"}}
	if err := s.Save(ctx, in); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	in.User.Name = "mutated"

	out, err := s.Get(ctx, "abc")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if out.Token != "tok" || out.User.Name != "Asha" {
		t.Fatalf("stored session must be isolated from caller changes, got %+v", out.User)
	}

	if err := s.Delete(ctx, "abc"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := s.Get(ctx, "abc"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	s := NewMemoryStore(time.Minute)
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	_ = s.Save(context.Background(), &Session{ID: "abc"})

	now = now.Add(2 * time.Minute)
	if _, err := s.Get(context.Background(), "abc"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected expired session to be gone, got %v", err)
	}
}

func TestMemoryStoreSweepsAtMostOncePerInterval(t *testing.T) {
	s := NewMemoryStore(time.Minute)
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	ctx := context.Background()

	_ = s.Save(ctx, &Session{ID: "old"})

	now = now.Add(2 * time.Minute)
	_ = s.Save(ctx, &Session{ID: "a"})
	if _, ok := s.entries["old"]; ok {
		t.Fatal("expected the first save after the interval to sweep expired entries")
	}

	_ = s.Save(ctx, &Session{ID: "b"})
	now = now.Add(90 * time.Second)
	_ = s.Save(ctx, &Session{ID: "c"})
	if len(s.entries) != 1 {
		t.Fatalf("expected only the fresh session after the next sweep, got %d entries", len(s.entries))
	}
}

func TestMemoryStoreSkipsSweepWithinInterval(t *testing.T) {
	s := NewMemoryStore(10 * time.Second)
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	ctx := context.Background()

	_ = s.Save(ctx, &Session{ID: "x"})

	now = now.Add(20 * time.Second)
	_ = s.Save(ctx, &Session{ID: "y"})
	if len(s.entries) != 2 {
		t.Fatalf("expected no sweep within the interval, got %d entries", len(s.entries))
	}
	if _, err := s.Get(ctx, "x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expired session must still read as missing, got %v", err)
	}
}

func TestPopFlash(t *testing.T) {
	s := &Session{Flash: &Flash{Kind: FlashSuccess, Message: "done"}}
	if f := s.PopFlash(); f == nil || f.Message != "done" {
		t.Fatalf("unexpected flash %+v", f)
	}
	if s.PopFlash() != nil {
		t.Fatal("flash must be cleared after pop")
	}
}
