package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"workshopcart/models"

	"go.uber.org/zap"
)

const maxErrorBody = 512

// Client talks JSON over HTTP to the inventory / submission backend.
// Every call issues exactly one request; there are no retries.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// WithHTTPClient swaps the underlying transport client.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.http = hc
	return c
}

// FetchInventory handles GET {base}.
func (c *Client) FetchInventory(ctx context.Context) ([]models.CatalogItem, error) {
	var items []models.CatalogItem
	if _, err := c.do(ctx, "inventory", http.MethodGet, c.baseURL, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// CheckSubmitted handles GET {base}/check/{code}.
func (c *Client) CheckSubmitted(ctx context.Context, code string) (bool, error) {
	var resp models.CheckResponse
	endpoint := c.baseURL + "/check/" + url.PathEscape(code)
	if _, err := c.do(ctx, "check", http.MethodGet, endpoint, nil, &resp); err != nil {
		return false, err
	}
	return resp.Status, nil
}

// SendEmail handles POST {base}/send-email.
func (c *Client) SendEmail(ctx context.Context, payload models.SubmissionPayload) (models.SendAck, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return models.SendAck{}, newError("send-email", 0, fmt.Errorf("encode payload: %w", err))
	}

	var ack models.SendAck
	status, err := c.do(ctx, "send-email", http.MethodPost, c.baseURL+"/send-email", body, &ack)
	if err != nil {
		return models.SendAck{}, err
	}
	if ack.StatusCode != 0 && (ack.StatusCode < 200 || ack.StatusCode > 299) {
		return ack, newError("send-email", status, fmt.Errorf("%w: body status_code %d", ErrNotAcknowledged, ack.StatusCode))
	}
	return ack, nil
}

func (c *Client) do(ctx context.Context, op, method, endpoint string, body []byte, out any) (int, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return 0, newError(op, 0, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("gateway request failed", zap.String("op", op), zap.Error(err))
		return 0, newError(op, 0, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("gateway response",
		zap.String("op", op),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return resp.StatusCode, newError(op, resp.StatusCode, fmt.Errorf("unexpected response: %s", strings.TrimSpace(string(snippet))))
	}

	if out == nil {
		return resp.StatusCode, nil
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, newError(op, resp.StatusCode, fmt.Errorf("read body: %w", err))
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return resp.StatusCode, nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return resp.StatusCode, newError(op, resp.StatusCode, fmt.Errorf("decode body: %w", err))
	}
	return resp.StatusCode, nil
}
