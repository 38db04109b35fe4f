package forms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Client wraps the form provider's REST API: create a form, then insert all
// items in a single batch request.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

type ClientConfig struct {
	BaseURL string // default https://forms.googleapis.com/v1
	Token   string
	Timeout time.Duration
}

func NewClient(cfg ClientConfig, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://forms.googleapis.com/v1"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      cfg.Token,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

// IsConfigured reports whether an API token is set.
func (c *Client) IsConfigured() bool {
	return c.token != ""
}

type createFormRequest struct {
	Info formInfo `json:"info"`
}

type formInfo struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

type createFormResponse struct {
	FormID string `json:"formId"`
}

type batchUpdateRequest struct {
	Requests []itemRequest `json:"requests"`
}

type itemRequest struct {
	CreateItem createItem `json:"createItem"`
}

type createItem struct {
	Item     Item     `json:"item"`
	Location location `json:"location"`
}

type location struct {
	Index int `json:"index"`
}

// CreateForm creates a fresh form resource and returns its external id.
func (c *Client) CreateForm(ctx context.Context, title, description string) (string, error) {
	body := createFormRequest{Info: formInfo{Title: title, Description: description}}
	raw, err := c.post(ctx, "/forms", body)
	if err != nil {
		return "", fmt.Errorf("create form: %w", err)
	}

	var resp createFormResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", fmt.Errorf("parse create form response: %w", err)
	}
	if resp.FormID == "" {
		return "", fmt.Errorf("create form response missing formId")
	}

	c.logger.Info("forms.create.ok", "form_id", resp.FormID, "title", title)
	return resp.FormID, nil
}

// BatchCreateItems inserts all items in one batch request, each located at
// its sequence index. Called with an empty slice it does nothing: a form may
// legitimately exist with zero questions.
func (c *Client) BatchCreateItems(ctx context.Context, formID string, items []Item) error {
	if len(items) == 0 {
		return nil
	}

	req := batchUpdateRequest{Requests: make([]itemRequest, 0, len(items))}
	for i, item := range items {
		req.Requests = append(req.Requests, itemRequest{
			CreateItem: createItem{Item: item, Location: location{Index: i}},
		})
	}

	if _, err := c.post(ctx, "/forms/"+formID+":batchUpdate", req); err != nil {
		return fmt.Errorf("batch insert items: %w", err)
	}

	c.logger.Info("forms.batch_insert.ok", "form_id", formID, "items", len(items))
	return nil
}

func (c *Client) post(ctx context.Context, path string, body any) ([]byte, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("provider http error: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("provider status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	return raw, nil
}
