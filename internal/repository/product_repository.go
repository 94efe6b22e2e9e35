package repository

import (
	"context"

	"product-service/internal/models"
)

// ProductRepository is the storage contract shared by the Mongo and Cosmos
// backends. Absent products are reported as a nil pointer, not an error;
// errors are reserved for storage-engine failures.
//
// Both backends assign ids the same way: next id = 1 + max(existing ids),
// or 1 on an empty scope, computed by a max-query. The read and the write
// are separate round-trips, so two concurrent Add calls can be handed the
// same id. That race is an accepted limitation of the id policy, not a bug;
// callers must not paper over it with locking.
type ProductRepository interface {
	// GetAll returns every product in the active scope, storage keys stripped.
	GetAll(ctx context.Context) ([]models.Product, error)
	// GetOne returns the product with the given id, or nil if none matches.
	GetOne(ctx context.Context, id int) (*models.Product, error)
	// Add assigns the next id (overriding any client-supplied one), persists
	// the product and returns it with the id filled in.
	Add(ctx context.Context, product models.Product) (*models.Product, error)
	// Update replaces the whole document matching product.ID. Returns nil if
	// no document matched.
	Update(ctx context.Context, product models.Product) (*models.Product, error)
	// Delete removes the product with the given id. False means no match.
	Delete(ctx context.Context, id int) (bool, error)
	// Count returns the number of products in the active scope.
	Count(ctx context.Context) (int64, error)
	// SeedMany bulk-inserts products as given, ids included. Used once at
	// startup when the scope is empty.
	SeedMany(ctx context.Context, products []models.Product) error
}
