package graphql

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/fd1az/minaview/business/chain/app"
	"github.com/fd1az/minaview/internal/apperror"
	"github.com/fd1az/minaview/internal/logger"
)

// zkAppSupport is the negotiated capability of the active archive schema.
type zkAppSupport int

const (
	supportUnknown zkAppSupport = iota
	supportYes
	supportNo
)

// ArchiveClient reads block windows from an archive endpoint. The first
// GraphQL rejection of the zkApp selection marks the schema unsupported and
// every later window uses the reduced query; transient transport failures
// never change the negotiated state. Retargeting resets it, because a new
// endpoint may serve a different schema.
type ArchiveClient struct {
	gql *Client
	log logger.LoggerInterface

	mu      sync.Mutex
	support zkAppSupport
}

var _ app.ArchiveReader = (*ArchiveClient)(nil)

// NewArchiveClient wraps a GraphQL client targeted at an archive endpoint.
func NewArchiveClient(gql *Client, log logger.LoggerInterface) *ArchiveClient {
	return &ArchiveClient{gql: gql, log: log}
}

// SetEndpoint retargets the underlying client and resets the negotiated
// schema capability.
func (a *ArchiveClient) SetEndpoint(url string) {
	a.mu.Lock()
	a.support = supportUnknown
	a.mu.Unlock()
	a.gql.SetEndpoint(url)
}

// Endpoint returns the current archive endpoint.
func (a *ArchiveClient) Endpoint() string {
	return a.gql.Endpoint()
}

// RecentBlocks returns the newest canonical blocks, newest first.
func (a *ArchiveClient) RecentBlocks(ctx context.Context, limit int) (*app.BlockWindow, error) {
	return a.fetchWindow(ctx, queryRecentBlocksFull, queryRecentBlocksReduced,
		map[string]any{"limit": limit}, limit)
}

// CanonicalBlocksSince returns canonical blocks at or after since, newest
// first, capped at limit.
func (a *ArchiveClient) CanonicalBlocksSince(ctx context.Context, since time.Time, limit int) (*app.BlockWindow, error) {
	return a.fetchWindow(ctx, queryBlocksSinceFull, queryBlocksSinceReduced,
		map[string]any{"limit": limit, "since": since.UTC().Format(time.RFC3339)}, limit)
}

// BestHeight returns the highest canonical block height.
func (a *ArchiveClient) BestHeight(ctx context.Context) (uint64, error) {
	var data blocksData
	if err := a.gql.Query(ctx, queryBestHeight, nil, &data); err != nil {
		return 0, err
	}
	if len(data.Blocks) == 0 {
		return 0, apperror.New(apperror.CodeBlockNotFound,
			apperror.WithMessage("archive returned no blocks"))
	}
	return data.Blocks[0].BlockHeight, nil
}

func (a *ArchiveClient) fetchWindow(ctx context.Context, fullQuery, reducedQuery string, vars map[string]any, limit int) (*app.BlockWindow, error) {
	a.mu.Lock()
	support := a.support
	a.mu.Unlock()

	if support != supportNo {
		var data blocksData
		err := a.gql.Query(ctx, fullQuery, vars, &data)
		if err == nil {
			a.setSupport(supportYes)
			return buildWindow(data.Blocks, true, limit), nil
		}
		if !isSchemaRejection(err) {
			return nil, err
		}
		a.setSupport(supportNo)
		a.log.Warn(ctx, "archive schema lacks zkapp data, downgrading to reduced query",
			"endpoint", a.gql.Endpoint())
	}

	var data blocksData
	if err := a.gql.Query(ctx, reducedQuery, vars, &data); err != nil {
		return nil, err
	}
	return buildWindow(data.Blocks, false, limit), nil
}

func (a *ArchiveClient) setSupport(s zkAppSupport) {
	a.mu.Lock()
	a.support = s
	a.mu.Unlock()
}

// isSchemaRejection separates "this schema cannot serve the selection" from
// transient faults. Only GraphQL errors count; transport failures must not
// downgrade the capability.
func isSchemaRejection(err error) bool {
	if !apperror.IsCode(err, apperror.CodeGraphQLError) {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{"zkapp", "unknown field", "cannot query field", "undefined field"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

func buildWindow(blocks []wireBlock, zkApps bool, limit int) *app.BlockWindow {
	win := &app.BlockWindow{
		ZkAppsIncluded: zkApps,
		Truncated:      limit > 0 && len(blocks) >= limit,
	}
	for _, b := range blocks {
		win.Blocks = append(win.Blocks, b.toDomain())
	}
	return win
}
