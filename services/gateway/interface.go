package gateway

import (
	"context"

	"workshopcart/models"
)

// InventoryFetcher supplies the inventory catalog.
type InventoryFetcher interface {
	FetchInventory(ctx context.Context) ([]models.CatalogItem, error)
}

// SubmissionChecker answers whether a workshop code already submitted a cart.
type SubmissionChecker interface {
	CheckSubmitted(ctx context.Context, code string) (bool, error)
}

// EmailSender delivers a completed cart to the backend.
type EmailSender interface {
	SendEmail(ctx context.Context, payload models.SubmissionPayload) (models.SendAck, error)
}

// Gateway is the full remote backend.
type Gateway interface {
	InventoryFetcher
	SubmissionChecker
	EmailSender
}
