// Package app contains application services and port definitions for the
// pricing context.
package app

import (
	"context"
	"time"

	"github.com/fd1az/minaview/business/pricing/domain"
)

// Oracle is the external price source.
type Oracle interface {
	// CurrentPrice fetches the live price in USD and EUR.
	CurrentPrice(ctx context.Context) (*domain.Snapshot, error)

	// HistoricalPrice fetches the price on a past calendar day.
	HistoricalPrice(ctx context.Context, date time.Time) (*domain.HistoricalPrice, error)
}

// CacheStore persists cache state across runs.
type CacheStore interface {
	Save(slot string, v any) error
	Load(slot string, out any) (bool, error)
}
