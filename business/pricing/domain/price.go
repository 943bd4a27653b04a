// Package domain contains the pricing context domain model.
package domain

import "time"

// Snapshot is one current-price observation from the oracle.
type Snapshot struct {
	USD       float64   `json:"usd"`
	EUR       float64   `json:"eur"`
	Change24h *float64  `json:"change_24h,omitempty"` // nil when the oracle omits it
	FetchedAt time.Time `json:"fetched_at"`
}

// HistoricalPrice is the price on one past calendar day. Historical facts
// never change, so entries carry no TTL.
type HistoricalPrice struct {
	Date time.Time `json:"date"` // UTC midnight
	USD  float64   `json:"usd"`
	EUR  float64   `json:"eur"`
}

// DateKey is the canonical cache key for a calendar date.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
