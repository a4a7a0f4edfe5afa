// SPDX-License-Identifier: MIT

package daemon

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
)

// TickerRunner is the rotation loop the manager supervises.
type TickerRunner interface {
	Run(ctx context.Context) error
}

// Deps carries everything the manager needs to run.
type Deps struct {
	Logger zerolog.Logger

	// APIHandler serves the main listener.
	APIHandler http.Handler

	// MetricsAddr and MetricsHandler enable the metrics listener when both
	// are set.
	MetricsAddr    string
	MetricsHandler http.Handler

	// MaxConns caps concurrent API connections; 0 disables the cap.
	MaxConns int

	// Ticker may be nil when running API-only.
	Ticker TickerRunner
}

// Validate rejects dependency sets the manager cannot start with.
func (d Deps) Validate() error {
	if d.APIHandler == nil {
		return fmt.Errorf("api handler is required")
	}
	if d.MetricsAddr != "" && d.MetricsHandler == nil {
		return fmt.Errorf("metrics addr set but handler is nil")
	}
	if d.MaxConns < 0 {
		return fmt.Errorf("max conns must not be negative")
	}
	return nil
}
