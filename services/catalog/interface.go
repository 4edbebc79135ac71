package catalog

import (
	"context"
	"errors"

	"workshopcart/models"
)

// ErrItemNotFound is returned when an item id is not in the inventory.
var ErrItemNotFound = errors.New("item not found in inventory")

// CatalogService exposes the inventory to the cart.
type CatalogService interface {
	List(ctx context.Context) ([]models.CatalogItem, error)
	Get(ctx context.Context, id string) (models.CatalogItem, error)
}

// Cache stores an inventory snapshot. A miss is (nil, false, nil).
type Cache interface {
	Load(ctx context.Context) ([]models.CatalogItem, bool, error)
	Store(ctx context.Context, items []models.CatalogItem) error
}
