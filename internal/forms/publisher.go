package forms

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// PublishError wraps a provider failure; the underlying provider message is
// retained verbatim for diagnosis.
type PublishError struct {
	Op  string // "create" | "batch_insert"
	Err error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("publish form (%s): %v", e.Op, e.Err)
}

func (e *PublishError) Unwrap() error {
	return e.Err
}

// PublishResult identifies the created provider resource.
type PublishResult struct {
	FormID string
	URL    string
}

// Publisher is Stage 3: mapped items -> hosted form.
type Publisher interface {
	Publish(ctx context.Context, title, description string, items []Item) (PublishResult, error)
}

// ProviderPublisher publishes through the provider Client. The batch insert
// is all-or-nothing from this caller's perspective: partial batch failures
// are not retried item-by-item.
type ProviderPublisher struct {
	client *Client
	logger *slog.Logger
}

func NewProviderPublisher(client *Client, logger *slog.Logger) *ProviderPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProviderPublisher{client: client, logger: logger}
}

func (p *ProviderPublisher) Publish(ctx context.Context, title, description string, items []Item) (PublishResult, error) {
	start := time.Now()

	formID, err := p.client.CreateForm(ctx, title, description)
	if err != nil {
		return PublishResult{}, &PublishError{Op: "create", Err: err}
	}

	if err := p.client.BatchCreateItems(ctx, formID, items); err != nil {
		return PublishResult{}, &PublishError{Op: "batch_insert", Err: err}
	}

	result := PublishResult{
		FormID: formID,
		URL:    FormURL(formID),
	}
	p.logger.Info("forms.publish.ok",
		"form_id", formID,
		"items", len(items),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return result, nil
}

// FormURL derives the canonical edit URL for a published form.
func FormURL(formID string) string {
	return "https://docs.google.com/forms/d/" + formID + "/edit"
}
