package graphql

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/fd1az/minaview/business/chain/app"
	"github.com/fd1az/minaview/business/chain/domain"
	"github.com/fd1az/minaview/internal/apperror"
	"github.com/fd1az/minaview/internal/circuitbreaker"
	"github.com/fd1az/minaview/internal/logger"
)

// DaemonClient reads live node state. Daemon endpoints are the flaky side
// of the pair, so every query runs behind a circuit breaker: a tripped
// breaker fails fast with CIRCUIT_OPEN instead of hammering a dead node.
//
// Account lookups negotiate the schema per call: when the full profile
// selection is rejected the minimal one is retried and the result is marked
// Minimal.
type DaemonClient struct {
	gql     *Client
	breaker *circuitbreaker.CircuitBreaker[struct{}]
	log     logger.LoggerInterface
}

var _ app.DaemonReader = (*DaemonClient)(nil)

// NewDaemonClient wraps a GraphQL client targeted at a daemon endpoint.
func NewDaemonClient(gql *Client, log logger.LoggerInterface) *DaemonClient {
	cfg := circuitbreaker.DefaultConfig("daemon-graphql")
	d := &DaemonClient{gql: gql, log: log}
	cfg.OnStateChange = func(name string, from, to gobreaker.State) {
		d.log.Warn(context.Background(), "daemon circuit state changed",
			"breaker", name, "from", from.String(), "to", to.String())
	}
	d.breaker = circuitbreaker.New[struct{}](cfg)
	return d
}

// SetEndpoint retargets the underlying client.
func (d *DaemonClient) SetEndpoint(url string) {
	d.gql.SetEndpoint(url)
}

// Endpoint returns the current daemon endpoint.
func (d *DaemonClient) Endpoint() string {
	return d.gql.Endpoint()
}

// BreakerOpen reports whether the daemon breaker is refusing calls.
func (d *DaemonClient) BreakerOpen() bool {
	return d.breaker.IsOpen()
}

func (d *DaemonClient) query(ctx context.Context, query string, vars map[string]any, out any) error {
	_, err := d.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, d.gql.Query(ctx, query, vars, out)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return apperror.New(apperror.CodeCircuitOpen,
			apperror.WithCause(err),
			apperror.WithContext("endpoint", d.gql.Endpoint()))
	}
	return err
}

// PooledUserCommands returns the pending user command pool.
func (d *DaemonClient) PooledUserCommands(ctx context.Context) ([]domain.UserCommand, error) {
	var data pooledUserCommandsData
	if err := d.query(ctx, queryPooledUserCommands, nil, &data); err != nil {
		return nil, err
	}

	out := make([]domain.UserCommand, 0, len(data.PooledUserCommands))
	for _, cmd := range data.PooledUserCommands {
		out = append(out, cmd.toDomain(0, time.Time{}))
	}
	return out, nil
}

// PooledZkAppCommands returns the pending zkApp command pool.
func (d *DaemonClient) PooledZkAppCommands(ctx context.Context) ([]domain.ZkAppCommand, error) {
	var data pooledZkAppCommandsData
	if err := d.query(ctx, queryPooledZkAppCommands, nil, &data); err != nil {
		return nil, err
	}

	out := make([]domain.ZkAppCommand, 0, len(data.PooledZkAppCommands))
	for _, cmd := range data.PooledZkAppCommands {
		out = append(out, cmd.toDomain(0, time.Time{}))
	}
	return out, nil
}

// Account looks up a ledger account, falling back to the minimal profile
// when the full selection is rejected by the schema.
func (d *DaemonClient) Account(ctx context.Context, publicKey string) (*domain.AccountProfile, error) {
	vars := map[string]any{"publicKey": publicKey}

	var data accountData
	err := d.query(ctx, queryAccountFull, vars, &data)
	if err == nil {
		return accountOrNotFound(data, publicKey, false)
	}
	if !apperror.IsCode(err, apperror.CodeGraphQLError) {
		return nil, err
	}

	d.log.Debug(ctx, "full account query rejected, retrying minimal profile",
		"publicKey", publicKey, "error", err)

	data = accountData{}
	if err := d.query(ctx, queryAccountMinimal, vars, &data); err != nil {
		return nil, err
	}
	return accountOrNotFound(data, publicKey, true)
}

func accountOrNotFound(data accountData, publicKey string, minimal bool) (*domain.AccountProfile, error) {
	if data.Account == nil {
		return nil, apperror.New(apperror.CodeAccountNotFound,
			apperror.WithContext("publicKey", publicKey))
	}
	return data.Account.toDomain(minimal), nil
}
