package handlers

import (
	"net/http"

	"workshopcart/models"
	"workshopcart/services/catalog"
	"workshopcart/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type InventoryHandler struct {
	Catalog catalog.CatalogService
}

func NewInventoryHandler(svc catalog.CatalogService) *InventoryHandler {
	return &InventoryHandler{Catalog: svc}
}

// inventoryItem adds the parsed price to the backend's record shape.
type inventoryItem struct {
	models.CatalogItem
	PriceCents int64 `json:"priceCents"`
}

// ListInventory handles GET /api/inventory.
func (h *InventoryHandler) ListInventory(c *gin.Context) {
	items, err := h.Catalog.List(c.Request.Context())
	if err != nil {
		getLogger(c).Error("ListInventory: failed to fetch inventory", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{
			"message": "inventory unavailable",
			"details": err.Error(),
			"items":   []inventoryItem{},
		})
		return
	}

	out := make([]inventoryItem, 0, len(items))
	for _, it := range items {
		out = append(out, inventoryItem{CatalogItem: it, PriceCents: it.PriceCents})
	}
	c.JSON(http.StatusOK, gin.H{"items": out, "count": len(out)})
}

// HealthHandler reports liveness and redis reachability.
type HealthHandler struct{}

// Health handles GET /health.
func (h *HealthHandler) Health(c *gin.Context) {
	status := utils.CheckHealth(c.Request.Context(), utils.RedisClients())
	code := http.StatusOK
	if !status.Healthy() {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{"status": status, "message": "Hi, I'm the workshop cart"})
}
