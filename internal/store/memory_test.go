package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/robalobadob/magicnumbers/internal/catalog"
	"github.com/robalobadob/magicnumbers/internal/game"
)

func newRun() *game.Run {
	return game.NewRun(catalog.MustDefault().Phases()[0], nil, nil)
}

func TestMemory_SaveGetDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	r := newRun()

	if _, err := s.Get(ctx, r.ID()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get before Save error = %v, want ErrNotFound", err)
	}
	if err := s.Save(ctx, r); err != nil {
		t.Fatal(err)
	}
	got, err := s.Get(ctx, r.ID())
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got != r {
		t.Error("Get returned a different run")
	}
	if err := s.Delete(ctx, r.ID()); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Get(ctx, r.ID()); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after Delete error = %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, "missing"); err != nil {
		t.Errorf("Delete missing error = %v", err)
	}
}

func TestMemory_Prune(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	a, b := newRun(), newRun()
	_ = s.Save(ctx, a)
	_ = s.Save(ctx, b)

	if n := s.Prune(time.Now(), time.Hour); n != 0 {
		t.Errorf("Prune of fresh runs dropped %d", n)
	}
	if n := s.Prune(time.Now().Add(2*time.Hour), time.Hour); n != 2 {
		t.Errorf("Prune of stale runs dropped %d, want 2", n)
	}
	if _, err := s.Get(ctx, a.ID()); !errors.Is(err, ErrNotFound) {
		t.Errorf("pruned run still present: %v", err)
	}
}

func TestMemory_Concurrent(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r := newRun()
			_ = s.Save(ctx, r)
			if _, err := s.Get(ctx, r.ID()); err != nil {
				t.Errorf("Get error: %v", err)
			}
		}()
	}
	wg.Wait()
}
