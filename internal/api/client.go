// Package api is the HTTP client for the remote expense store and its
// receipt-OCR endpoint. It maps transport and status failures onto the
// core failure taxonomy and never retries on its own.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/google/uuid"

	"spendlog/internal/core"
	"spendlog/internal/log"
)

const (
	expensesPath = "/expenses/"
	summaryPath  = "/insights/summary"
	receiptPath  = "/upload/receipt"
)

// Client talks to the expense service. All requests carry the session's
// bearer credential and a request id for log correlation.
type Client struct {
	httpClient *http.Client
	baseURL    string
	tokens     TokenSource
	logger     *log.Logger
}

var (
	_ ExpenseService = (*Client)(nil)
	_ SummaryService = (*Client)(nil)
	_ ReceiptService = (*Client)(nil)
)

func NewClient(baseURL string, tokens TokenSource, httpClient *http.Client, logger *log.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		tokens:     tokens,
		logger:     logger.WithComponent(log.ComponentAPI),
	}
}

func (c *Client) ListExpenses(ctx context.Context) ([]core.Expense, error) {
	resp, err := c.do(ctx, http.MethodGet, expensesPath, nil, "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp); err != nil {
		return nil, err
	}
	var expenses []core.Expense
	if err := json.NewDecoder(resp.Body).Decode(&expenses); err != nil {
		return nil, fmt.Errorf("decode expense list: %w", err)
	}
	return expenses, nil
}

func (c *Client) CreateExpense(ctx context.Context, p core.Payload) (core.Expense, error) {
	return c.sendPayload(ctx, http.MethodPost, expensesPath, p)
}

func (c *Client) UpdateExpense(ctx context.Context, id string, p core.Payload) (core.Expense, error) {
	return c.sendPayload(ctx, http.MethodPut, expensesPath+id, p)
}

func (c *Client) sendPayload(ctx context.Context, method, path string, p core.Payload) (core.Expense, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return core.Expense{}, fmt.Errorf("encode payload: %w", err)
	}
	resp, err := c.do(ctx, method, path, bytes.NewReader(body), "application/json")
	if err != nil {
		return core.Expense{}, err
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp); err != nil {
		return core.Expense{}, err
	}
	var e core.Expense
	if err := json.NewDecoder(resp.Body).Decode(&e); err != nil {
		return core.Expense{}, fmt.Errorf("decode expense: %w", err)
	}
	return e, nil
}

func (c *Client) DeleteExpense(ctx context.Context, id string) error {
	resp, err := c.do(ctx, http.MethodDelete, expensesPath+id, nil, "")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return c.checkStatus(resp)
}

func (c *Client) Summary(ctx context.Context) (core.DashboardSummary, error) {
	resp, err := c.do(ctx, http.MethodGet, summaryPath, nil, "")
	if err != nil {
		return core.DashboardSummary{}, err
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp); err != nil {
		return core.DashboardSummary{}, err
	}
	var s core.DashboardSummary
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		return core.DashboardSummary{}, fmt.Errorf("decode summary: %w", err)
	}
	return s, nil
}

func (c *Client) UploadReceipt(ctx context.Context, filename string, image io.Reader) (Extraction, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return Extraction{}, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, image); err != nil {
		return Extraction{}, fmt.Errorf("copy image data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return Extraction{}, fmt.Errorf("close multipart writer: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, receiptPath, &buf, writer.FormDataContentType())
	if err != nil {
		return Extraction{}, err
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp); err != nil {
		return Extraction{}, err
	}
	var x Extraction
	if err := json.NewDecoder(resp.Body).Decode(&x); err != nil {
		return Extraction{}, fmt.Errorf("decode extraction: %w", err)
	}
	return x, nil
}

// do attaches auth and correlation headers, sends the request and maps
// transport failure onto ErrUnreachable. Status handling is the caller's
// job via checkStatus.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Response, error) {
	token, ok := c.tokens.Token(ctx)
	if !ok {
		return nil, core.ErrUnauthorized
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "Request failed",
			"method", method,
			"path", path,
			log.FieldRequestID, requestID,
			log.FieldError, err)
		return nil, fmt.Errorf("%w: %v", core.ErrUnreachable, err)
	}

	c.logger.DebugContext(ctx, "Request completed",
		"method", method,
		"path", path,
		log.FieldRequestID, requestID,
		log.FieldStatusCode, resp.StatusCode,
		log.FieldDuration, time.Since(start).Milliseconds())
	return resp, nil
}

// checkStatus maps non-2xx responses onto the failure taxonomy. The server
// responds FastAPI-style with a "detail" message on failures.
func (c *Client) checkStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return core.ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return core.ErrNotFound
	default:
		var payload struct {
			Detail string `json:"detail"`
		}
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if err := json.Unmarshal(body, &payload); err != nil || payload.Detail == "" {
			payload.Detail = string(bytes.TrimSpace(body))
		}
		return &core.ServerError{Status: resp.StatusCode, Message: payload.Detail}
	}
}
