package catalog

import (
	"context"
	"fmt"

	"workshopcart/models"
	"workshopcart/services/gateway"

	"go.uber.org/zap"
)

// DefaultCatalogService reads the inventory through a cache.
type DefaultCatalogService struct {
	Fetcher gateway.InventoryFetcher
	Cache   Cache
	Logger  *zap.Logger
}

func NewDefaultCatalogService(fetcher gateway.InventoryFetcher, cache Cache, logger *zap.Logger) *DefaultCatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultCatalogService{Fetcher: fetcher, Cache: cache, Logger: logger}
}

// List returns the cached inventory, fetching it on a miss.
func (s *DefaultCatalogService) List(ctx context.Context) ([]models.CatalogItem, error) {
	if s.Cache != nil {
		items, ok, err := s.Cache.Load(ctx)
		if err != nil {
			s.Logger.Warn("catalog cache read failed", zap.Error(err))
		} else if ok {
			return items, nil
		}
	}

	return s.Refresh(ctx)
}

// Refresh fetches the inventory and replaces the cached snapshot.
func (s *DefaultCatalogService) Refresh(ctx context.Context) ([]models.CatalogItem, error) {
	items, err := s.Fetcher.FetchInventory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch inventory: %w", err)
	}

	if s.Cache != nil {
		if err := s.Cache.Store(ctx, items); err != nil {
			s.Logger.Warn("catalog cache write failed", zap.Error(err))
		}
	}
	s.Logger.Debug("catalog refreshed", zap.Int("items", len(items)))
	return items, nil
}

// Get looks up a single item by id.
func (s *DefaultCatalogService) Get(ctx context.Context, id string) (models.CatalogItem, error) {
	items, err := s.List(ctx)
	if err != nil {
		return models.CatalogItem{}, err
	}
	for _, it := range items {
		if it.ID == id {
			return it, nil
		}
	}
	return models.CatalogItem{}, fmt.Errorf("%w: %s", ErrItemNotFound, id)
}
