package store

import "time"

// Config aggregates per backend configuration
type Config struct {
	AppName string

	PG   PGConfig
	Feed FeedConfig
}

// PGConfig configures postgres connectivity and tracing
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	// Guard/boot knobs:
	ConnectRetries int           // default 20
	PingTimeout    time.Duration // default 3s
}

// FeedConfig configures the LISTEN/NOTIFY change feed
// The channel carries payload-free "something changed, re-fetch" pings
type FeedConfig struct {
	Enabled bool
	Channel string
}
