package models

// SessionView is the mutually exclusive render mode of a cart session.
type SessionView string

const (
	ViewNoCode     SessionView = "no_code"
	ViewDecline    SessionView = "decline"
	ViewChecking   SessionView = "checking"
	ViewLocked     SessionView = "locked"
	ViewAccessible SessionView = "accessible"
)

// Terminal reports whether no further transition can leave this view.
func (v SessionView) Terminal() bool {
	return v != ViewChecking
}

// SessionState is resolved once per visit from the entry link.
type SessionState struct {
	Code        string      `json:"code"`
	Title       string      `json:"title"`
	Accessible  bool        `json:"accessible"`
	Locked      bool        `json:"locked"`
	DeclineMode bool        `json:"declineMode"`
	View        SessionView `json:"view"`
}

// CartEnabled reports whether cart and contact interaction is allowed.
func (s SessionState) CartEnabled() bool {
	return s.View == ViewAccessible && s.Accessible && !s.Locked
}
