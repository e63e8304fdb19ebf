package registry

import (
	"context"
	"errors"
	"sync"
	"testing"
)

// memStore is an in-memory Store with an optional write failure switch.
type memStore struct {
	mu         sync.Mutex
	values     map[string]string
	failWrites bool
	writes     int
}

func newMemStore() *memStore {
	return &memStore{values: make(map[string]string)}
}

func (s *memStore) Read(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *memStore) Write(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWrites {
		return errors.New("disk full")
	}
	s.values[key] = value
	s.writes++
	return nil
}

func (s *memStore) Close() {}

func (s *memStore) value(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[key]
}

func loaded(t *testing.T, st *memStore, seed []string) *Registry {
	t.Helper()
	r := New(st, nil)
	if err := r.Load(context.Background(), seed); err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	return r
}

func items(t *testing.T, r *Registry) []string {
	t.Helper()
	got, err := r.Items()
	if err != nil {
		t.Fatalf("Items() unexpected error: %v", err)
	}
	return got
}

func TestAdd(t *testing.T) {
	ctx := context.Background()
	st := newMemStore()
	r := loaded(t, st, nil)

	if err := r.Add(ctx, "Blue Gem"); err != nil {
		t.Fatalf("Add() unexpected error: %v", err)
	}
	if err := r.Add(ctx, "Red Gem"); err != nil {
		t.Fatalf("Add() unexpected error: %v", err)
	}

	got := items(t, r)
	if len(got) != 2 || got[0] != "Blue Gem" || got[1] != "Red Gem" {
		t.Errorf("Items() = %v, want [Blue Gem Red Gem]", got)
	}
	if v := st.value("ITEMS"); v != "Blue Gem,Red Gem" {
		t.Errorf("persisted value = %q, want %q", v, "Blue Gem,Red Gem")
	}
}

func TestAddDuplicate(t *testing.T) {
	ctx := context.Background()
	st := newMemStore()
	r := loaded(t, st, []string{"Blue Gem"})

	err := r.Add(ctx, "Blue Gem")
	if !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("Add() error = %v, want ErrAlreadyExists", err)
	}

	got := items(t, r)
	if len(got) != 1 {
		t.Errorf("Items() = %v, want unchanged single item", got)
	}
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	st := newMemStore()
	r := loaded(t, st, []string{"Blue Gem", "Red Gem", "Green Gem"})

	if err := r.Remove(ctx, "Red Gem"); err != nil {
		t.Fatalf("Remove() unexpected error: %v", err)
	}

	got := items(t, r)
	if len(got) != 2 || got[0] != "Blue Gem" || got[1] != "Green Gem" {
		t.Errorf("Items() = %v, want [Blue Gem Green Gem]", got)
	}
	if v := st.value("ITEMS"); v != "Blue Gem,Green Gem" {
		t.Errorf("persisted value = %q, want %q", v, "Blue Gem,Green Gem")
	}
}

func TestRemoveMissing(t *testing.T) {
	ctx := context.Background()
	st := newMemStore()
	r := loaded(t, st, []string{"Blue Gem"})

	err := r.Remove(ctx, "Red Gem")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Remove() error = %v, want ErrNotFound", err)
	}

	if got := items(t, r); len(got) != 1 {
		t.Errorf("Items() = %v, want unchanged single item", got)
	}
}

func TestFailedPersistLeavesMemoryUnchanged(t *testing.T) {
	ctx := context.Background()
	st := newMemStore()
	r := loaded(t, st, []string{"Blue Gem"})

	st.failWrites = true

	if err := r.Add(ctx, "Red Gem"); err == nil {
		t.Fatal("Add() expected error, got nil")
	}
	if err := r.Remove(ctx, "Blue Gem"); err == nil {
		t.Fatal("Remove() expected error, got nil")
	}

	got := items(t, r)
	if len(got) != 1 || got[0] != "Blue Gem" {
		t.Errorf("Items() = %v, want [Blue Gem]", got)
	}
}

func TestLoadFromStoreIgnoresSeed(t *testing.T) {
	st := newMemStore()
	st.values["ITEMS"] = "Stored Item,Another Item"

	r := loaded(t, st, []string{"Seed Item"})

	got := items(t, r)
	if len(got) != 2 || got[0] != "Stored Item" || got[1] != "Another Item" {
		t.Errorf("Items() = %v, want store contents", got)
	}
}

func TestLoadSeedsEmptyStore(t *testing.T) {
	st := newMemStore()
	r := loaded(t, st, []string{"Blue Gem", "Blue Gem", "Red Gem"})

	got := items(t, r)
	if len(got) != 2 || got[0] != "Blue Gem" || got[1] != "Red Gem" {
		t.Errorf("Items() = %v, want deduplicated seed", got)
	}
	if v := st.value("ITEMS"); v != "Blue Gem,Red Gem" {
		t.Errorf("persisted value = %q, want %q", v, "Blue Gem,Red Gem")
	}
}

func TestItemsSnapshotIsDetached(t *testing.T) {
	ctx := context.Background()
	st := newMemStore()
	r := loaded(t, st, []string{"Blue Gem", "Red Gem"})

	snap := items(t, r)
	snap[0] = "mutated"

	if got := items(t, r); got[0] != "Blue Gem" {
		t.Errorf("Items() = %v, snapshot mutation leaked into registry", got)
	}

	// A snapshot taken before a mutation is unaffected by it.
	before := items(t, r)
	if err := r.Remove(ctx, "Red Gem"); err != nil {
		t.Fatalf("Remove() unexpected error: %v", err)
	}
	if len(before) != 2 {
		t.Errorf("earlier snapshot changed length: %v", before)
	}
}

func TestConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	st := newMemStore()
	r := loaded(t, st, []string{"Base Item"})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				got, err := r.Items()
				if err != nil {
					t.Errorf("Items() unexpected error: %v", err)
					return
				}
				if len(got) == 0 {
					t.Error("Items() returned empty list mid-mutation")
					return
				}
			}
		}()
	}

	for j := 0; j < 50; j++ {
		_ = r.Add(ctx, "Churn Item")
		_ = r.Remove(ctx, "Churn Item")
	}
	wg.Wait()
}
