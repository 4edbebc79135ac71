package workshop

import (
	"time"

	"workshopcart/models"
	"workshopcart/services/cart"
	"workshopcart/services/submission"
)

// CartSession is everything one visitor's link-open owns.
type CartSession struct {
	ID        string              `json:"id"`
	State     models.SessionState `json:"state"`
	Cart      *cart.Store         `json:"cart"`
	Form      *submission.Form    `json:"form"`
	CreatedAt time.Time           `json:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt"`
}

func newCartSession(id string, state models.SessionState, now time.Time) *CartSession {
	return &CartSession{
		ID:        id,
		State:     state,
		Cart:      cart.NewStore(),
		Form:      submission.NewForm(state.Title),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// SessionView is what the front end renders.
type SessionView struct {
	SessionID string              `json:"sessionId"`
	State     models.SessionState `json:"state"`
	Lines     []models.CartLine   `json:"lines"`
	Subtotal  string              `json:"subtotal"`
	Count     int                 `json:"count"`
	Form      models.FormData     `json:"form"`
	CanSubmit bool                `json:"canSubmit"`
	Confirmed bool                `json:"confirmed"`
	LastError string              `json:"lastError,omitempty"`
	InFlight  bool                `json:"inFlight,omitempty"`
}

func (s *CartSession) view(inFlight bool) *SessionView {
	return &SessionView{
		SessionID: s.ID,
		State:     s.State,
		Lines:     s.Cart.Lines(),
		Subtotal:  s.Cart.Subtotal(),
		Count:     s.Cart.Count(),
		Form:      s.Form.Data(),
		CanSubmit: s.State.CartEnabled() && s.Form.IsComplete() && !inFlight,
		Confirmed: s.Form.Confirmed,
		LastError: s.Form.LastError,
		InFlight:  inFlight,
	}
}
