package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/mabiwatch/mabiwatch/internal/store"
)

var (
	// ErrAlreadyExists is returned by Add for an item already monitored.
	ErrAlreadyExists = errors.New("item already monitored")

	// ErrNotFound is returned by Remove for an item not monitored.
	ErrNotFound = errors.New("item not monitored")
)

// Registry is the ordered, duplicate-free set of monitored item names.
type Registry struct {
	store  store.Store
	logger *slog.Logger

	mu    sync.Mutex
	items []string
}

// New creates a Registry backed by st. Call Load before first use.
func New(st store.Store, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		store:  st,
		logger: logger,
	}
}

// Load hydrates the in-memory list from the store. When the store holds no
// list yet, seed is deduplicated, persisted, and used instead.
func (r *Registry) Load(ctx context.Context, seed []string) error {
	value, ok, err := r.store.Read(ctx, store.ItemsKey)
	if err != nil {
		return fmt.Errorf("load items: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if !ok || value == "" {
		if len(seed) == 0 {
			r.items = nil
			return nil
		}
		seeded := dedupe(seed)
		if err := r.store.Write(ctx, store.ItemsKey, join(seeded)); err != nil {
			return fmt.Errorf("seed items: %w", err)
		}
		r.items = seeded
		r.logger.Info("item registry seeded", "count", len(seeded))
		return nil
	}

	r.items = split(value)
	r.logger.Info("item registry loaded", "count", len(r.items))
	return nil
}

// Items returns a snapshot of the current list in insertion order. The
// returned slice is the caller's to keep.
func (r *Registry) Items() ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, len(r.items))
	copy(out, r.items)
	return out, nil
}

// Add appends item to the list. The updated list is persisted before the
// in-memory copy changes, so a failed write leaves the registry untouched.
func (r *Registry) Add(ctx context.Context, item string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if slices.Contains(r.items, item) {
		return ErrAlreadyExists
	}

	next := append(slices.Clone(r.items), item)
	if err := r.store.Write(ctx, store.ItemsKey, join(next)); err != nil {
		return fmt.Errorf("persist items: %w", err)
	}

	r.items = next
	r.logger.Info("item added", "item", item, "count", len(next))
	return nil
}

// Remove deletes item from the list, persisting before commit like Add.
func (r *Registry) Remove(ctx context.Context, item string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := slices.Index(r.items, item)
	if idx < 0 {
		return ErrNotFound
	}

	next := slices.Delete(slices.Clone(r.items), idx, idx+1)
	if err := r.store.Write(ctx, store.ItemsKey, join(next)); err != nil {
		return fmt.Errorf("persist items: %w", err)
	}

	r.items = next
	r.logger.Info("item removed", "item", item, "count", len(next))
	return nil
}

func join(items []string) string {
	return strings.Join(items, ",")
}

func split(value string) []string {
	var items []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}

func dedupe(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if !slices.Contains(out, it) {
			out = append(out, it)
		}
	}
	return out
}
