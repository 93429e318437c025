// Package notify pushes short agent messages to an external endpoint.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Notifier delivers a message on behalf of an agent.
type Notifier interface {
	Push(ctx context.Context, agent, message string) error
}

// Nop silently discards every message. Used when no webhook is
// configured.
type Nop struct{}

func (Nop) Push(context.Context, string, string) error { return nil }

// Webhook POSTs messages as JSON to a configured URL.
type Webhook struct {
	url    string
	client *resty.Client
}

func NewWebhook(url string) *Webhook {
	return &Webhook{
		url:    url,
		client: resty.New().SetTimeout(10 * time.Second),
	}
}

func (w *Webhook) Push(ctx context.Context, agent, message string) error {
	resp, err := w.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"agent": agent, "message": message}).
		Post(w.url)
	if err != nil {
		return fmt.Errorf("push notification: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("push notification: %s", resp.Status())
	}
	return nil
}
