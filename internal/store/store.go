// Package store provides durable key-value persistence for the item
// registry, with a dotenv-file backend and a PostgreSQL backend.
package store

import "context"

// ItemsKey is the key under which the registry persists its item list.
// The file backend stores it as a plain ITEMS=... line, so the store file
// doubles as a valid .env fragment.
const ItemsKey = "ITEMS"

// Store is a durable key-value store for small text values. Write must
// commit before returning so a crash after a successful mutation cannot
// lose it.
type Store interface {
	Read(ctx context.Context, key string) (value string, ok bool, err error)
	Write(ctx context.Context, key, value string) error
	Close()
}
