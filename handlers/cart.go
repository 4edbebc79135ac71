package handlers

import (
	"errors"
	"io"
	"net/http"

	"workshopcart/services/catalog"
	"workshopcart/services/gateway"
	"workshopcart/services/session"
	"workshopcart/services/submission"
	"workshopcart/services/workshop"
	"workshopcart/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CartHandler exposes the cart session service over HTTP.
type CartHandler struct {
	Svc workshop.CartSessionService
}

func NewCartHandler(svc workshop.CartSessionService) *CartHandler {
	return &CartHandler{Svc: svc}
}

// InitiateSession handles POST /api/sessions. The entry link comes either as
// {"entryUrl": "..."} or as the request's own query string.
func (h *CartHandler) InitiateSession(c *gin.Context) {
	var body struct {
		EntryURL string `json:"entryUrl"`
	}
	if c.Request.Body != nil && c.Request.Body != http.NoBody {
		if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
			utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
			return
		}
	}

	cfg := session.ConfigFromQuery(c.Request.URL.Query())
	if body.EntryURL != "" {
		parsed, err := session.ConfigFromURL(body.EntryURL)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid entry url", err.Error())
			return
		}
		cfg = parsed
	}

	view, err := h.Svc.InitiateSession(c.Request.Context(), cfg)
	if err != nil {
		h.fail(c, "InitiateSession", err, nil)
		return
	}
	c.JSON(http.StatusCreated, view)
}

// GetSession handles GET /api/sessions/:sessionID.
func (h *CartHandler) GetSession(c *gin.Context) {
	view, err := h.Svc.GetSession(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.fail(c, "GetSession", err, nil)
		return
	}
	c.JSON(http.StatusOK, view)
}

// AddItem handles POST /api/sessions/:sessionID/items.
func (h *CartHandler) AddItem(c *gin.Context) {
	var body struct {
		ItemID string `json:"itemId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	view, err := h.Svc.AddItem(c.Request.Context(), c.Param("sessionID"), body.ItemID)
	if err != nil {
		h.fail(c, "AddItem", err, nil)
		return
	}
	c.JSON(http.StatusOK, view)
}

// SetQuantity handles PUT /api/sessions/:sessionID/items/:itemID.
func (h *CartHandler) SetQuantity(c *gin.Context) {
	var body struct {
		Quantity *int `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	view, err := h.Svc.SetQuantity(c.Request.Context(), c.Param("sessionID"), c.Param("itemID"), *body.Quantity)
	if err != nil {
		h.fail(c, "SetQuantity", err, nil)
		return
	}
	c.JSON(http.StatusOK, view)
}

// RemoveItem handles DELETE /api/sessions/:sessionID/items/:itemID.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	view, err := h.Svc.RemoveItem(c.Request.Context(), c.Param("sessionID"), c.Param("itemID"))
	if err != nil {
		h.fail(c, "RemoveItem", err, nil)
		return
	}
	c.JSON(http.StatusOK, view)
}

// UpdateField handles PATCH /api/sessions/:sessionID/form.
func (h *CartHandler) UpdateField(c *gin.Context) {
	var body struct {
		Field string `json:"field" binding:"required,oneof=workshopTitle name email"`
		Value string `json:"value"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	view, err := h.Svc.UpdateField(c.Request.Context(), c.Param("sessionID"), body.Field, body.Value)
	if err != nil {
		h.fail(c, "UpdateField", err, nil)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Submit handles POST /api/sessions/:sessionID/submit.
func (h *CartHandler) Submit(c *gin.Context) {
	view, err := h.Svc.Submit(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.fail(c, "Submit", err, view)
		return
	}
	c.JSON(http.StatusOK, view)
}

// fail maps service errors to HTTP statuses. When the service returned a
// view alongside the error it is sent back so the page can show lastError.
func (h *CartHandler) fail(c *gin.Context, op string, err error, view *workshop.SessionView) {
	status, message := statusFor(err)
	logger := getLogger(c)
	if status >= http.StatusInternalServerError {
		logger.Error(op+": request failed", zap.Error(err))
	} else {
		logger.Debug(op+": request rejected", zap.Int("status", status), zap.Error(err))
	}

	if view != nil {
		c.AbortWithStatusJSON(status, gin.H{
			"message": message,
			"details": err.Error(),
			"session": view,
		})
		return
	}
	c.AbortWithStatusJSON(status, utils.ErrorResponse{Message: message, Details: err.Error()})
}

func statusFor(err error) (int, string) {
	var fieldErr *submission.FieldError
	var gwErr *gateway.Error
	switch {
	case errors.Is(err, workshop.ErrSessionNotFound):
		return http.StatusNotFound, "session not found"
	case errors.Is(err, catalog.ErrItemNotFound):
		return http.StatusNotFound, "item not found"
	case errors.Is(err, workshop.ErrCartUnavailable):
		return http.StatusForbidden, "cart is not available for this link"
	case errors.Is(err, workshop.ErrSubmissionInFlight):
		return http.StatusConflict, "submission in progress"
	case errors.Is(err, submission.ErrIncomplete):
		return http.StatusUnprocessableEntity, "form is incomplete"
	case errors.As(err, &fieldErr):
		return http.StatusBadRequest, "unknown form field"
	case errors.Is(err, submission.ErrSendFailed):
		return http.StatusBadGateway, submission.SendFailedMessage
	case errors.As(err, &gwErr):
		return http.StatusBadGateway, "upstream request failed"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}
