// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...Option) style defaults and a Load helper layering sources.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// WebhookSecret is the shared secret used to verify the
	// X-Hub-Signature-256 header on inbound deliveries.
	WebhookSecret string `koanf:"webhook_secret"`

	// RecentLimit caps the number of events returned when the history
	// API is queried without a cursor.
	RecentLimit int `koanf:"recent_limit"`

	// MaxBodyBytes bounds the size of an inbound webhook body.
	MaxBodyBytes int64 `koanf:"max_body_bytes"`

	// StoreCapacity pre-sizes the event store's backing collection.
	StoreCapacity int `koanf:"store_capacity"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:      "info",
		Addr:          ":8080",
		WebhookSecret: "",
		RecentLimit:   50,
		MaxBodyBytes:  1 << 20,
		StoreCapacity: 1024,
	}
}
