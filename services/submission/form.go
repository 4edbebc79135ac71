package submission

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"workshopcart/models"
	"workshopcart/services/cart"
	"workshopcart/services/gateway"
)

const (
	FieldWorkshopTitle = "workshopTitle"
	FieldName          = "name"
	FieldEmail         = "email"
)

// SendFailedMessage is shown to the visitor when the cart could not be sent.
const SendFailedMessage = "We could not send your cart. Please try again."

var emailPattern = regexp.MustCompile(`^(([^<>()\[\]\\.,;:\s@"]+(\.[^<>()\[\]\\.,;:\s@"]+)*)|(".+"))@((\[[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\])|(([a-zA-Z\-0-9]+\.)+[a-zA-Z]{2,}))$`)

// ValidEmail reports whether email is a syntactically valid address.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(strings.ToLower(email))
}

// Form holds the contact fields of a cart submission.
type Form struct {
	WorkshopTitle string `json:"workshopTitle"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Confirmed     bool   `json:"confirmed"`
	LastError     string `json:"lastError,omitempty"`
}

func NewForm(title string) *Form {
	return &Form{WorkshopTitle: title}
}

// SyncTitle copies the session title into the form.
func (f *Form) SyncTitle(title string) {
	f.WorkshopTitle = title
}

// UpdateField sets one field and dismisses any confirmation or error banner.
func (f *Form) UpdateField(name, value string) error {
	switch name {
	case FieldWorkshopTitle:
		f.WorkshopTitle = value
	case FieldName:
		f.Name = value
	case FieldEmail:
		f.Email = value
	default:
		return &FieldError{Field: name}
	}
	f.Confirmed = false
	f.LastError = ""
	return nil
}

// IsComplete gates the submit action.
func (f *Form) IsComplete() bool {
	return f.WorkshopTitle != "" && f.Name != "" && ValidEmail(f.Email)
}

func (f *Form) Data() models.FormData {
	return models.FormData{
		WorkshopTitle: f.WorkshopTitle,
		Name:          f.Name,
		Email:         f.Email,
	}
}

func (f *Form) reset() {
	f.WorkshopTitle = ""
	f.Name = ""
	f.Email = ""
}

// BuildPayload assembles the send-email body from the cart and the form.
// Items are identified by display name, which is what the backend mails out.
func (f *Form) BuildPayload(code string, c *cart.Store) models.SubmissionPayload {
	lines := c.Lines()
	items := make([]models.PayloadItem, 0, len(lines))
	for _, l := range lines {
		id := l.DisplayName
		if id == "" {
			id = l.ItemID
		}
		items = append(items, models.PayloadItem{ID: id, Quantity: l.Quantity})
	}
	return models.SubmissionPayload{
		Code:     code,
		Items:    items,
		Subtotal: c.Subtotal(),
		FormData: f.Data(),
	}
}

// Submit sends the cart. On success the form is reset, the cart cleared and
// Confirmed set; on failure cart and fields are left for a retry and
// LastError carries a message for the visitor.
func (f *Form) Submit(ctx context.Context, code string, c *cart.Store, sender gateway.EmailSender) error {
	if !f.IsComplete() {
		return ErrIncomplete
	}
	if _, err := sender.SendEmail(ctx, f.BuildPayload(code, c)); err != nil {
		f.Confirmed = false
		f.LastError = SendFailedMessage
		return fmt.Errorf("%w: %w", ErrSendFailed, err)
	}
	f.Confirmed = true
	f.LastError = ""
	f.reset()
	c.Clear()
	return nil
}
