// File: utils/constants.go
package utils

// SessionCachePrefix is the prefix used for Redis cart session keys.
const SessionCachePrefix = "cart:session:"

// CatalogCacheKey holds the cached inventory snapshot.
const CatalogCacheKey = "catalog:inventory"

// MaxLineQuantity is the UX ceiling for a single cart line.
const MaxLineQuantity = 10

// DeclineItemID is the synthetic line sent when a workshop declines all materials.
const DeclineItemID = "Nothing Please"
