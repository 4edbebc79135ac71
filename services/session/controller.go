package session

import (
	"context"
	"time"

	"workshopcart/models"
	"workshopcart/services/gateway"
	"workshopcart/utils"

	"go.uber.org/zap"
)

// Controller resolves the state of a visit exactly once.
type Controller struct {
	Checker gateway.SubmissionChecker
	Sender  gateway.EmailSender
	Logger  *zap.Logger
	// DeclineTimeout bounds the detached decline notification.
	DeclineTimeout time.Duration
}

func NewController(checker gateway.SubmissionChecker, sender gateway.EmailSender, logger *zap.Logger, declineTimeout time.Duration) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		Checker:        checker,
		Sender:         sender,
		Logger:         logger,
		DeclineTimeout: declineTimeout,
	}
}

// Resolve derives the session state from cfg. A missing code and decline
// mode never touch the submission check; otherwise the check runs once and
// any failure is treated as "not yet submitted".
func (c *Controller) Resolve(ctx context.Context, cfg SessionConfig) models.SessionState {
	state := models.SessionState{
		Code:  cfg.Code,
		Title: SlugToTitle(cfg.Code),
		View:  models.ViewChecking,
	}

	if !cfg.HasCode() {
		state.Title = ""
		state.View = models.ViewNoCode
		return state
	}

	if cfg.Decline {
		state.DeclineMode = true
		state.View = models.ViewDecline
		go c.notifyDecline(DeclinePayload(cfg.Code))
		return state
	}

	submitted, err := c.Checker.CheckSubmitted(ctx, cfg.Code)
	switch {
	case err != nil:
		c.Logger.Warn("submission check failed, allowing cart", zap.String("code", cfg.Code), zap.Error(err))
		state.Accessible = true
		state.View = models.ViewAccessible
	case submitted:
		state.Locked = true
		state.View = models.ViewLocked
	default:
		state.Accessible = true
		state.View = models.ViewAccessible
	}
	return state
}

// notifyDecline is fire-and-forget: the decline screen does not depend on it.
func (c *Controller) notifyDecline(payload models.SubmissionPayload) {
	ctx := context.Background()
	if c.DeclineTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.DeclineTimeout)
		defer cancel()
	}
	if _, err := c.Sender.SendEmail(ctx, payload); err != nil {
		c.Logger.Error("decline notification failed", zap.String("code", payload.Code), zap.Error(err))
		return
	}
	c.Logger.Info("decline notification sent", zap.String("code", payload.Code))
}

// DeclinePayload is the synthetic submission sent when a workshop needs no
// materials. All contact fields, the workshop title included, stay empty.
func DeclinePayload(code string) models.SubmissionPayload {
	return models.SubmissionPayload{
		Code:     code,
		Items:    []models.PayloadItem{{ID: utils.DeclineItemID, Quantity: 1}},
		Subtotal: utils.FormatCents(0),
		FormData: models.FormData{},
	}
}
