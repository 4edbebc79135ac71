// File: workshopcart/handlers/bundle.go
package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Inventory endpoints
	ListInventory gin.HandlerFunc

	// Cart session endpoints
	InitiateSession gin.HandlerFunc
	GetSession      gin.HandlerFunc
	AddItem         gin.HandlerFunc
	SetQuantity     gin.HandlerFunc
	RemoveItem      gin.HandlerFunc
	UpdateField     gin.HandlerFunc
	Submit          gin.HandlerFunc

	// Health
	Health gin.HandlerFunc
}

// NewHandlerBundle wires every handler of the service.
func NewHandlerBundle(cart *CartHandler, inventory *InventoryHandler, health *HealthHandler) *HandlerBundle {
	return &HandlerBundle{
		ListInventory:   inventory.ListInventory,
		InitiateSession: cart.InitiateSession,
		GetSession:      cart.GetSession,
		AddItem:         cart.AddItem,
		SetQuantity:     cart.SetQuantity,
		RemoveItem:      cart.RemoveItem,
		UpdateField:     cart.UpdateField,
		Submit:          cart.Submit,
		Health:          health.Health,
	}
}
