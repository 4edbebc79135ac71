package routes

import (
	"net/http"
	"time"

	"workshopcart/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterInventoryRoutes registers catalog endpoints.
func RegisterInventoryRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/api/inventory", hb.ListInventory)
}

// RegisterSessionRoutes sets up the endpoints for cart sessions.
func RegisterSessionRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	sessions := r.Group("/api/sessions")
	{
		sessions.POST("", hb.InitiateSession)
		sessions.GET("/:sessionID", hb.GetSession)
		sessions.POST("/:sessionID/items", hb.AddItem)
		sessions.PUT("/:sessionID/items/:itemID", hb.SetQuantity)
		sessions.DELETE("/:sessionID/items/:itemID", hb.RemoveItem)
		sessions.PATCH("/:sessionID/form", hb.UpdateField)
		sessions.POST("/:sessionID/submit", hb.Submit)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.Health)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, origins []string) {
	r.Use(cors.New(corsConfig(origins)))

	RegisterHealthRoute(r, hb)
	RegisterInventoryRoutes(r, hb)
	RegisterSessionRoutes(r, hb)
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 1 && origins[0] == "*" {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
