package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"workshopcart/models"
	"workshopcart/services/catalog"
	"workshopcart/services/gateway"
	"workshopcart/services/session"
	"workshopcart/services/workshop"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type backendStub struct {
	submitted atomic.Bool
	failSend  atomic.Bool
	sends     atomic.Int32
	checks    atomic.Int32
}

func (b *backendStub) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":1,"Item":"Arduino Uno","Price":"$25.00"},{"id":2,"Item":"LED","Price":"$0.25"}]`))
	})
	mux.HandleFunc("/api/v1/check/", func(w http.ResponseWriter, r *http.Request) {
		b.checks.Add(1)
		json.NewEncoder(w).Encode(models.CheckResponse{Status: b.submitted.Load()})
	})
	mux.HandleFunc("/api/v1/send-email", func(w http.ResponseWriter, r *http.Request) {
		b.sends.Add(1)
		if b.failSend.Load() {
			http.Error(w, "smtp down", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusAccepted)
		w.Write([]byte(`{"status_code":202}`))
	})
	return mux
}

func newTestRouter(t *testing.T, b *backendStub) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	srv := httptest.NewServer(b.handler())
	t.Cleanup(srv.Close)

	logger := zap.NewNop()
	client := gateway.NewClient(srv.URL+"/api/v1", 2*time.Second, logger)
	ctrl := session.NewController(client, client, logger, 2*time.Second)
	cat := catalog.NewDefaultCatalogService(client, catalog.NewMemoryCache(time.Minute), logger)
	svc := workshop.NewDefaultCartSessionService(ctrl, cat, client, workshop.NewMemorySessionStore(time.Hour), logger)

	bundle := NewHandlerBundle(NewCartHandler(svc), NewInventoryHandler(cat), &HealthHandler{})
	r := gin.New()
	r.GET("/health", bundle.Health)
	r.GET("/api/inventory", bundle.ListInventory)
	r.POST("/api/sessions", bundle.InitiateSession)
	r.GET("/api/sessions/:sessionID", bundle.GetSession)
	r.POST("/api/sessions/:sessionID/items", bundle.AddItem)
	r.PUT("/api/sessions/:sessionID/items/:itemID", bundle.SetQuantity)
	r.DELETE("/api/sessions/:sessionID/items/:itemID", bundle.RemoveItem)
	r.PATCH("/api/sessions/:sessionID/form", bundle.UpdateField)
	r.POST("/api/sessions/:sessionID/submit", bundle.Submit)
	return r
}

func do(t *testing.T, r *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, workshop.SessionView) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var view workshop.SessionView
	_ = json.Unmarshal(w.Body.Bytes(), &view)
	return w, view
}

func TestInventory(t *testing.T) {
	r := newTestRouter(t, &backendStub{})
	w, _ := do(t, r, http.MethodGet, "/api/inventory", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Items []map[string]any `json:"items"`
		Count int              `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Count)
	assert.Equal(t, "Arduino Uno", body.Items[0]["Item"])
	assert.Equal(t, "$25.00", body.Items[0]["Price"])
	assert.EqualValues(t, 2500, body.Items[0]["priceCents"])
}

func TestFullCartFlow(t *testing.T) {
	b := &backendStub{}
	r := newTestRouter(t, b)

	w, v := do(t, r, http.MethodPost, "/api/sessions", map[string]string{"entryUrl": "https://cart.example/?code=intro-to-arduino"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, models.ViewAccessible, v.State.View)
	assert.Equal(t, "Intro To Arduino", v.Form.WorkshopTitle)
	base := "/api/sessions/" + v.SessionID

	w, v = do(t, r, http.MethodPost, base+"/items", map[string]string{"itemId": "1"})
	require.Equal(t, http.StatusOK, w.Code)
	w, v = do(t, r, http.MethodPost, base+"/items", map[string]string{"itemId": "1"})
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, v.Lines, 1)
	assert.Equal(t, 2, v.Lines[0].Quantity)

	w, v = do(t, r, http.MethodPut, base+"/items/1", map[string]int{"quantity": 15})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 10, v.Lines[0].Quantity)
	assert.Equal(t, "250.00", v.Subtotal)

	w, _ = do(t, r, http.MethodPost, base+"/submit", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Zero(t, b.sends.Load())

	w, _ = do(t, r, http.MethodPatch, base+"/form", map[string]string{"field": "phone", "value": "1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	do(t, r, http.MethodPatch, base+"/form", map[string]string{"field": "name", "value": "Ana"})
	w, v = do(t, r, http.MethodPatch, base+"/form", map[string]string{"field": "email", "value": "a@b.co"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, v.CanSubmit)

	w, v = do(t, r, http.MethodPost, base+"/submit", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, v.Confirmed)
	assert.Empty(t, v.Lines)
	assert.Equal(t, int32(1), b.sends.Load())
}

func TestSubmitFailureReturnsSessionWithError(t *testing.T) {
	b := &backendStub{}
	b.failSend.Store(true)
	r := newTestRouter(t, b)

	_, v := do(t, r, http.MethodPost, "/api/sessions?code=intro", nil)
	base := "/api/sessions/" + v.SessionID
	do(t, r, http.MethodPost, base+"/items", map[string]string{"itemId": "2"})
	do(t, r, http.MethodPatch, base+"/form", map[string]string{"field": "name", "value": "Ana"})
	do(t, r, http.MethodPatch, base+"/form", map[string]string{"field": "email", "value": "a@b.co"})

	w, _ := do(t, r, http.MethodPost, base+"/submit", nil)
	require.Equal(t, http.StatusBadGateway, w.Code)

	var body struct {
		Message string               `json:"message"`
		Session workshop.SessionView `json:"session"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Session.LastError)
	assert.Len(t, body.Session.Lines, 1)
	assert.Equal(t, "Ana", body.Session.Form.Name)
}

func TestLockedAndNoCodeSessions(t *testing.T) {
	b := &backendStub{}
	b.submitted.Store(true)
	r := newTestRouter(t, b)

	w, v := do(t, r, http.MethodPost, "/api/sessions?code=intro", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, models.ViewLocked, v.State.View)
	assert.True(t, v.State.Locked)

	w, _ = do(t, r, http.MethodPost, "/api/sessions/"+v.SessionID+"/items", map[string]string{"itemId": "1"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, v = do(t, r, http.MethodPost, "/api/sessions", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, models.ViewNoCode, v.State.View)
	assert.Empty(t, v.State.Title)
}

func TestDeclineLink(t *testing.T) {
	b := &backendStub{}
	b.failSend.Store(true)
	r := newTestRouter(t, b)

	w, v := do(t, r, http.MethodPost, "/api/sessions?code=intro&nothingplease=1", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, models.ViewDecline, v.State.View)

	require.Eventually(t, func() bool { return b.sends.Load() == 1 }, 2*time.Second, 5*time.Millisecond)
	assert.Zero(t, b.checks.Load())

	w, v = do(t, r, http.MethodGet, "/api/sessions/"+v.SessionID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.ViewDecline, v.State.View)
}

func TestInitiateSessionChunkedBody(t *testing.T) {
	r := newTestRouter(t, &backendStub{})

	// A reader of unknown length leaves ContentLength at -1, as with chunked uploads.
	body := io.MultiReader(strings.NewReader(`{"entryUrl":"https://cart.example/?code=robotics-101"}`))
	req := httptest.NewRequest(http.MethodPost, "/api/sessions", body)
	req.Header.Set("Content-Type", "application/json")
	require.Equal(t, int64(-1), req.ContentLength)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var v workshop.SessionView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	assert.Equal(t, "robotics-101", v.State.Code)
	assert.Equal(t, models.ViewAccessible, v.State.View)
}

func TestInitiateSessionEmptyBody(t *testing.T) {
	r := newTestRouter(t, &backendStub{})

	req := httptest.NewRequest(http.MethodPost, "/api/sessions?code=intro", io.MultiReader())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var v workshop.SessionView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	assert.Equal(t, "intro", v.State.Code)
}

func TestUnknownSession(t *testing.T) {
	r := newTestRouter(t, &backendStub{})
	w, _ := do(t, r, http.MethodGet, "/api/sessions/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthWithoutRedis(t *testing.T) {
	r := newTestRouter(t, &backendStub{})
	w, _ := do(t, r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
