// Package ui provides the Bubble Tea TUI for the Mina explorer.
package ui

import (
	"time"

	chainDomain "github.com/fd1az/minaview/business/chain/domain"
	networkDomain "github.com/fd1az/minaview/business/network/domain"
	pricingDomain "github.com/fd1az/minaview/business/pricing/domain"
)

// Message types for TUI updates

// BlockMsg is sent when the block feed sees a new block.
type BlockMsg struct {
	StateHash string
	Height    uint64
	Timestamp time.Time
}

// PriceMsg is sent when the price cache refreshes.
type PriceMsg struct {
	Snapshot *pricingDomain.Snapshot
}

// AnalyticsMsg carries the latest network statistics.
type AnalyticsMsg struct {
	Stats *chainDomain.NetworkAnalytics
}

// NetworkMsg is sent when the active network changes.
type NetworkMsg struct {
	Profile   networkDomain.Profile
	Endpoints networkDomain.Endpoints
}

// ConnectionStatusMsg is sent when an upstream connection changes state.
type ConnectionStatusMsg struct {
	Name      string
	Connected bool
	Latency   time.Duration
}

// BreakerMsg is sent when the daemon circuit breaker changes state.
type BreakerMsg struct {
	Open bool
}

// ErrorMsg is sent when an error occurs.
type ErrorMsg struct {
	Error error
}

// TickMsg is sent periodically for UI updates.
type TickMsg struct{}

// WelcomeCompleteMsg signals the welcome screen is done (timeout or keypress).
type WelcomeCompleteMsg struct{}

// StartModulesMsg signals that modules should start loading.
type StartModulesMsg struct{}

// LogMsg is sent to display a log message in the UI.
type LogMsg struct {
	Level   string // "info", "warn", "error"
	Message string
}

// StartupMsg is sent during application startup to show progress.
type StartupMsg struct {
	Step    string // Current step name
	Status  string // "connecting", "connected", "failed"
	Message string // Optional message
}
