package testevents

import (
	"context"
	"fmt"
	"log"
	"strconv"
)

// Run executes one full harness pass: generate, submit, verify.
func Run(ctx context.Context, cfg *Config) error {
	stats := &Stats{}

	client := newHTTPClient(cfg.Timeout)

	// Record the newest id before submitting so verification only counts
	// this run's events.
	cursor, count, err := latestCursor(ctx, client, cfg.BaseURL)
	if err != nil {
		return fmt.Errorf("pre-run read failed: %w", err)
	}
	stats.StoredBefore = count

	deliveries, err := generateDeliveries(ctx, cfg)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}
	stats.Generated = len(deliveries)

	if err := submitDeliveries(ctx, cfg, deliveries, stats); err != nil {
		return fmt.Errorf("submission failed: %w", err)
	}

	if err := verifyHistory(ctx, client, cfg, cursor, stats); err != nil {
		return err
	}

	log.Printf("run complete: generated=%d accepted=%d dropped=%d failed=%d stored=%d",
		stats.Generated, stats.Accepted, stats.Dropped, stats.Failed, stats.StoredAfter)
	return nil
}

// latestCursor returns the highest stored id (as a cursor string) and the
// number of events visible without a cursor. The count is bounded by the
// service's recent limit, so on a warm service it is a floor on pre-existing
// history, not a total; verification relies on the cursor alone.
func latestCursor(ctx context.Context, client *HTTPClient, baseURL string) (string, int, error) {
	page, err := client.GetEvents(ctx, baseURL, "")
	if err != nil {
		return "", 0, err
	}
	if len(page.Data) == 0 {
		return "0", 0, nil
	}
	// Recent is newest first.
	return page.Data[0].ID, len(page.Data), nil
}

// verifyHistory reads everything after cursor and checks that the count
// matches the accepted submissions and that ids come back strictly
// ascending.
func verifyHistory(ctx context.Context, client *HTTPClient, cfg *Config, cursor string, stats *Stats) error {
	page, err := client.GetEvents(ctx, cfg.BaseURL, cursor)
	if err != nil {
		return fmt.Errorf("post-run read failed: %w", err)
	}
	stats.StoredAfter = len(page.Data)

	if stats.StoredAfter != stats.Accepted {
		return fmt.Errorf("stored %d events, expected %d", stats.StoredAfter, stats.Accepted)
	}

	prev := int64(0)
	for _, ev := range page.Data {
		id, err := strconv.ParseInt(ev.ID, 10, 64)
		if err != nil {
			return fmt.Errorf("non-numeric cursor %q", ev.ID)
		}
		if id <= prev {
			return fmt.Errorf("ids not strictly ascending: %d after %d", id, prev)
		}
		prev = id
		if ev.RequestID == "" || ev.Author == "" || ev.Action == "" || ev.Timestamp == "" {
			return fmt.Errorf("stored event %s has empty required fields", ev.ID)
		}
	}

	log.Printf("verified %d stored events after cursor %s", stats.StoredAfter, cursor)
	return nil
}
