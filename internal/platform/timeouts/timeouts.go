// Package timeouts defines shared timeout constants used across the
// service. Centralizing these values keeps the durations discoverable.
package timeouts

import "time"

// GRPCDial caps the wait time when dialing the indexer gRPC endpoint.
const GRPCDial = 5 * time.Second

// Shutdown limits how long pipeline stages wait to drain during
// graceful shutdown.
const Shutdown = 5 * time.Second
