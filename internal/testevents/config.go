// Package testevents is a load and correctness harness for the webhook
// ingestion service: it generates signed GitHub-style deliveries, submits
// them concurrently, and verifies the stored history through the cursor API.
package testevents

import "time"

// Config controls a harness run.
type Config struct {
	// BaseURL of the running service, e.g. http://localhost:8080.
	BaseURL string
	// NumEvents to generate and submit.
	NumEvents int
	// Workers submitting concurrently.
	Workers int
	// Secret shared with the service for HMAC signing.
	Secret string
	// Timeout per HTTP request.
	Timeout time.Duration
	// LogFile for harness output; empty means a timestamped default.
	LogFile string
	// Verbose enables debug logging.
	Verbose bool
}

// Stats aggregates the results of a run.
type Stats struct {
	Generated int
	Submitted int
	Accepted  int
	Dropped   int
	Failed    int
	// StoredBefore counts the events visible on one cursor-less page
	// before the run; it is capped by the service's recent limit.
	StoredBefore  int
	StoredAfter   int
	SubmitElapsed time.Duration
}
