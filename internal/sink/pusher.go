package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/example/kpi-dashboard/internal/models"
)

// ErrNoDestination is returned before any network attempt when neither an
// explicit destination nor a configured default exists.
var ErrNoDestination = errors.New("no push destination configured")

// Pusher posts a JSON payload to an external streaming sink. One attempt,
// no retries or backoff.
type Pusher struct {
	client     *http.Client
	defaultURL string
}

func NewPusher(client *http.Client, defaultURL string) *Pusher {
	return &Pusher{client: client, defaultURL: defaultURL}
}

// Push resolves the destination (explicit argument first, then the
// configured default) and POSTs the payload.
func (p *Pusher) Push(ctx context.Context, payload any, destination string) (models.PushReceipt, error) {
	dest := destination
	if dest == "" {
		dest = p.defaultURL
	}
	if dest == "" {
		return models.PushReceipt{}, ErrNoDestination
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return models.PushReceipt{}, fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, dest, bytes.NewReader(body))
	if err != nil {
		return models.PushReceipt{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return models.PushReceipt{}, fmt.Errorf("push to sink: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return models.PushReceipt{}, fmt.Errorf("sink: unexpected status %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	return models.PushReceipt{Status: "ok", Code: resp.StatusCode}, nil
}
