// Package courier delivers interview output to chat recipients through an
// outbound webhook.
package courier

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
)

const defaultTimeout = 30 * time.Second

// WebhookCourier posts messages and files to a single webhook endpoint. The
// receiving side routes them to the recipient.
type WebhookCourier struct {
	endpoint string
	client   *http.Client
}

// NewWebhook creates a courier for the given endpoint URL.
func NewWebhook(endpoint string) *WebhookCourier {
	return &WebhookCourier{
		endpoint: endpoint,
		client:   &http.Client{Timeout: defaultTimeout},
	}
}

// SendText posts a plain text message.
func (c *WebhookCourier) SendText(ctx context.Context, recipient, text string) error {
	payload, err := json.Marshal(map[string]string{
		"kind":      "text",
		"recipient": recipient,
		"text":      text,
	})
	if err != nil {
		return errors.Wrap(err, "failed to encode text payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return errors.Wrap(err, "failed to build text request")
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

// SendDocument posts a file as a document attachment.
func (c *WebhookCourier) SendDocument(ctx context.Context, recipient, path, caption string) error {
	return c.sendFile(ctx, "document", recipient, path, caption)
}

// SendPhoto posts a file as a photo attachment.
func (c *WebhookCourier) SendPhoto(ctx context.Context, recipient, path, caption string) error {
	return c.sendFile(ctx, "photo", recipient, path, caption)
}

func (c *WebhookCourier) sendFile(ctx context.Context, kind, recipient, path, caption string) error {
	file, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "failed to open %s", path)
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if err := writer.WriteField("kind", kind); err != nil {
		return errors.Wrap(err, "failed to write form field")
	}
	if err := writer.WriteField("recipient", recipient); err != nil {
		return errors.Wrap(err, "failed to write form field")
	}
	if caption != "" {
		if err := writer.WriteField("caption", caption); err != nil {
			return errors.Wrap(err, "failed to write form field")
		}
	}
	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return errors.Wrap(err, "failed to create form file")
	}
	if _, err := io.Copy(part, file); err != nil {
		return errors.Wrapf(err, "failed to read %s", path)
	}
	if err := writer.Close(); err != nil {
		return errors.Wrap(err, "failed to finalize form body")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &body)
	if err != nil {
		return errors.Wrap(err, "failed to build file request")
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return c.do(req)
}

func (c *WebhookCourier) do(req *http.Request) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "webhook request failed")
	}
	defer resp.Body.Close()
	// Drain so the connection can be reused.
	io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
