package workshop

import (
	"context"

	"workshopcart/services/session"
)

// CartSessionService manages one visitor's cart from link-open to submit.
type CartSessionService interface {
	InitiateSession(ctx context.Context, cfg session.SessionConfig) (*SessionView, error)
	GetSession(ctx context.Context, sessionID string) (*SessionView, error)
	AddItem(ctx context.Context, sessionID, itemID string) (*SessionView, error)
	SetQuantity(ctx context.Context, sessionID, itemID string, quantity int) (*SessionView, error)
	RemoveItem(ctx context.Context, sessionID, itemID string) (*SessionView, error)
	UpdateField(ctx context.Context, sessionID, field, value string) (*SessionView, error)
	Submit(ctx context.Context, sessionID string) (*SessionView, error)
}
