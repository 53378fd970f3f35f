package testevents

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/hooklog/internal/domain/signature"
)

// HTTPClient wraps http.Client with timeout.
type HTTPClient struct {
	client *http.Client
}

// newHTTPClient creates a new HTTP client with timeout.
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{Timeout: timeout},
	}
}

// PostSigned submits a delivery with the webhook headers set and the body
// signed under secret.
func (c *HTTPClient) PostSigned(ctx context.Context, url string, d Delivery, secret string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(d.Body))
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-GitHub-Event", d.Event)
	req.Header.Set("X-Hub-Signature-256", signature.Compute(d.Body, secret))

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode, nil
}

// eventsPage mirrors the read API response.
type eventsPage struct {
	Data []struct {
		ID         string `json:"_id"`
		RequestID  string `json:"request_id"`
		Author     string `json:"author"`
		Action     string `json:"action"`
		FromBranch string `json:"from_branch"`
		ToBranch   string `json:"to_branch"`
		Timestamp  string `json:"timestamp"`
	} `json:"data"`
}

// GetEvents fetches one page of history; since may be empty.
func (c *HTTPClient) GetEvents(ctx context.Context, baseURL, since string) (*eventsPage, error) {
	url := baseURL + "/github/events"
	if since != "" {
		url += "?since=" + since
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var page eventsPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("failed to decode events page: %w", err)
	}
	return &page, nil
}

// submitDeliveries submits deliveries concurrently using a worker pool.
func submitDeliveries(ctx context.Context, cfg *Config, deliveries []Delivery, stats *Stats) error {
	log.Printf("submitting %d deliveries with %d workers", len(deliveries), cfg.Workers)

	client := newHTTPClient(cfg.Timeout)
	url := cfg.BaseURL + "/webhook/receiver"

	var (
		accepted int64
		dropped  int64
		failed   int64
	)

	start := time.Now()
	work := make(chan Delivery, cfg.Workers*2)
	var wg sync.WaitGroup

	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for d := range work {
				select {
				case <-ctx.Done():
					return
				default:
				}
				status, err := client.PostSigned(ctx, url, d, cfg.Secret)
				switch {
				case err != nil || status != http.StatusOK:
					atomic.AddInt64(&failed, 1)
				case d.Stored:
					atomic.AddInt64(&accepted, 1)
				default:
					atomic.AddInt64(&dropped, 1)
				}
			}
		}()
	}

	for _, d := range deliveries {
		select {
		case <-ctx.Done():
			close(work)
			wg.Wait()
			return ctx.Err()
		case work <- d:
		}
	}
	close(work)
	wg.Wait()

	stats.Submitted = len(deliveries)
	stats.Accepted = int(accepted)
	stats.Dropped = int(dropped)
	stats.Failed = int(failed)
	stats.SubmitElapsed = time.Since(start)

	log.Printf("submitted %d deliveries in %s (accepted=%d dropped=%d failed=%d)",
		stats.Submitted, stats.SubmitElapsed, stats.Accepted, stats.Dropped, stats.Failed)
	return nil
}
