package app

import (
	"context"
	"time"

	"github.com/fd1az/minaview/business/chain/domain"
	"github.com/fd1az/minaview/internal/currency"
	"github.com/fd1az/minaview/internal/logger"
)

// mockLogger discards all log output.
type mockLogger struct{}

func (mockLogger) Debug(ctx context.Context, msg string, args ...any)              {}
func (mockLogger) Info(ctx context.Context, msg string, args ...any)               {}
func (mockLogger) Warn(ctx context.Context, msg string, args ...any)               {}
func (mockLogger) Error(ctx context.Context, msg string, args ...any)              {}
func (mockLogger) Debugc(ctx context.Context, caller int, msg string, args ...any) {}
func (mockLogger) Infoc(ctx context.Context, caller int, msg string, args ...any)  {}
func (mockLogger) Warnc(ctx context.Context, caller int, msg string, args ...any)  {}
func (mockLogger) Errorc(ctx context.Context, caller int, msg string, args ...any) {}

var _ logger.LoggerInterface = mockLogger{}

// mockArchive serves canned block windows.
type mockArchive struct {
	window      *BlockWindow
	err         error
	recentCalls int
	sinceCalls  int
	lastLimit   int
	lastSince   time.Time
}

func (m *mockArchive) RecentBlocks(ctx context.Context, limit int) (*BlockWindow, error) {
	m.recentCalls++
	m.lastLimit = limit
	if m.err != nil {
		return nil, m.err
	}
	return m.window, nil
}

func (m *mockArchive) CanonicalBlocksSince(ctx context.Context, since time.Time, limit int) (*BlockWindow, error) {
	m.sinceCalls++
	m.lastSince = since
	m.lastLimit = limit
	if m.err != nil {
		return nil, m.err
	}
	return m.window, nil
}

func (m *mockArchive) BestHeight(ctx context.Context) (uint64, error) {
	if m.err != nil {
		return 0, m.err
	}
	if m.window == nil || len(m.window.Blocks) == 0 {
		return 0, nil
	}
	return m.window.Blocks[0].Height, nil
}

var _ ArchiveReader = (*mockArchive)(nil)

// mockDaemon serves canned pending pools and accounts.
type mockDaemon struct {
	pooled    []domain.UserCommand
	pooledZk  []domain.ZkAppCommand
	account   *domain.AccountProfile
	poolErr   error
	zkPoolErr error
	acctErr   error
}

func (m *mockDaemon) PooledUserCommands(ctx context.Context) ([]domain.UserCommand, error) {
	if m.poolErr != nil {
		return nil, m.poolErr
	}
	return m.pooled, nil
}

func (m *mockDaemon) PooledZkAppCommands(ctx context.Context) ([]domain.ZkAppCommand, error) {
	if m.zkPoolErr != nil {
		return nil, m.zkPoolErr
	}
	return m.pooledZk, nil
}

func (m *mockDaemon) Account(ctx context.Context, publicKey string) (*domain.AccountProfile, error) {
	if m.acctErr != nil {
		return nil, m.acctErr
	}
	return m.account, nil
}

var _ DaemonReader = (*mockDaemon)(nil)

func nano(n uint64) currency.Amount { return currency.FromUint64(n) }

func at(t time.Time, offset time.Duration) time.Time { return t.Add(offset) }

func payment(hash, from, to string, amount, fee uint64, height uint64, ts time.Time) domain.UserCommand {
	return domain.UserCommand{
		Hash:        hash,
		Kind:        domain.KindPayment,
		From:        from,
		To:          to,
		Amount:      nano(amount),
		Fee:         nano(fee),
		BlockHeight: height,
		Timestamp:   ts,
	}
}

func zkCmd(hash, feePayer string, updated []string, fee uint64, height uint64, ts time.Time) domain.ZkAppCommand {
	return domain.ZkAppCommand{
		Hash:            hash,
		FeePayer:        feePayer,
		Fee:             nano(fee),
		UpdatedAccounts: updated,
		BlockHeight:     height,
		Timestamp:       ts,
	}
}
