// Package app contains application services and port definitions for the
// chain context.
package app

import (
	"context"
	"time"

	"github.com/fd1az/minaview/business/chain/domain"
)

// BlockWindow is one bounded fetch of archive blocks, newest first.
type BlockWindow struct {
	Blocks []domain.Block
	// ZkAppsIncluded is false when the window was fetched with the reduced
	// query because the upstream schema lacks zkApp data.
	ZkAppsIncluded bool
	// Truncated is true when the fetch hit its block cap.
	Truncated bool
}

// ArchiveReader reads historical, confirmed data from an archive endpoint.
type ArchiveReader interface {
	// RecentBlocks returns the newest canonical blocks with their embedded
	// command lists, newest first, at most limit of them.
	RecentBlocks(ctx context.Context, limit int) (*BlockWindow, error)

	// CanonicalBlocksSince returns canonical blocks with timestamps at or
	// after since, newest first, capped at limit.
	CanonicalBlocksSince(ctx context.Context, since time.Time, limit int) (*BlockWindow, error)

	// BestHeight returns the highest known block height.
	BestHeight(ctx context.Context) (uint64, error)
}

// DaemonReader reads live node state: the ledger and the pending pools.
type DaemonReader interface {
	PooledUserCommands(ctx context.Context) ([]domain.UserCommand, error)
	PooledZkAppCommands(ctx context.Context) ([]domain.ZkAppCommand, error)

	// Account looks up a ledger account, falling back to a minimal profile
	// when the full query is not served. Missing accounts are NOT_FOUND.
	Account(ctx context.Context, publicKey string) (*domain.AccountProfile, error)
}
