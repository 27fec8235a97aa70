package repository

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("section not found")

// Repository provides typed access to the keyed section collection: one
// document per section, addressed by section name. Writes are whole-document
// replaces; the store never sees partial-field updates.
type Repository interface {
	// Get returns the stored document for the section, without its key field.
	Get(ctx context.Context, section string) (map[string]interface{}, error)
	// Set replaces (or creates) the section document atomically.
	Set(ctx context.Context, section string, doc map[string]interface{}) error
	// Count reports how many section documents exist. Zero means the
	// collection has never been seeded.
	Count(ctx context.Context) (int64, error)
}
