package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fd1az/minaview/business/chain/domain"
	"github.com/fd1az/minaview/internal/apperror"
)

var t0 = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestTxResolver_PendingUserCommandWins(t *testing.T) {
	daemon := &mockDaemon{
		pooled: []domain.UserCommand{
			payment("Ckp1", "B62qsender", "B62qreceiver", 1_000_000_000, 10_000_000, 0, time.Time{}),
		},
	}
	// The same hash is also confirmed in the archive; the pool hit must win.
	archive := &mockArchive{window: &BlockWindow{Blocks: []domain.Block{
		{Height: 100, Timestamp: t0, UserCommands: []domain.UserCommand{
			payment("Ckp1", "B62qsender", "B62qreceiver", 1_000_000_000, 10_000_000, 100, t0),
		}},
	}}}

	r := NewTxResolver(archive, daemon, 1000, mockLogger{})

	got, err := r.Lookup(context.Background(), "Ckp1")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if got.Status != domain.StatusPending {
		t.Errorf("status = %s, want pending", got.Status)
	}
	if got.Source != domain.SourceUserCommand {
		t.Errorf("source = %s, want user_command", got.Source)
	}
	if archive.recentCalls != 0 {
		t.Error("archive must not be queried after a pool hit")
	}
}

func TestTxResolver_PendingZkAppCommand(t *testing.T) {
	daemon := &mockDaemon{
		pooledZk: []domain.ZkAppCommand{
			zkCmd("CkpZk", "B62qpayer", []string{"B62qapp", "B62quser"}, 5_000_000, 0, time.Time{}),
		},
	}
	archive := &mockArchive{window: &BlockWindow{}}

	r := NewTxResolver(archive, daemon, 1000, mockLogger{})

	got, err := r.Lookup(context.Background(), "CkpZk")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if got.Source != domain.SourceZkAppCommand {
		t.Errorf("source = %s, want zkapp_command", got.Source)
	}
	if got.Status != domain.StatusPending {
		t.Errorf("status = %s, want pending", got.Status)
	}
	if got.AccountUpdateCount != 2 {
		t.Errorf("account updates = %d, want 2", got.AccountUpdateCount)
	}
	if got.FeePayer != "B62qpayer" {
		t.Errorf("fee payer = %s", got.FeePayer)
	}
}

func TestTxResolver_ConfirmedInArchive(t *testing.T) {
	daemon := &mockDaemon{}
	archive := &mockArchive{window: &BlockWindow{Blocks: []domain.Block{
		{Height: 200, Timestamp: t0},
		{Height: 199, Timestamp: t0.Add(-3 * time.Minute), ZkAppCommands: []domain.ZkAppCommand{
			zkCmd("CkpDeep", "B62qpayer", []string{"B62qapp"}, 5_000_000, 199, t0.Add(-3*time.Minute)),
		}},
	}}}

	r := NewTxResolver(archive, daemon, 1000, mockLogger{})

	got, err := r.Lookup(context.Background(), "CkpDeep")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if got.Status != domain.StatusConfirmed {
		t.Errorf("status = %s, want confirmed", got.Status)
	}
	if got.BlockHeight != 199 {
		t.Errorf("height = %d, want 199", got.BlockHeight)
	}
	if archive.lastLimit != 1000 {
		t.Errorf("archive window = %d, want configured 1000", archive.lastLimit)
	}
}

func TestTxResolver_DegradedDaemonStillSearchesArchive(t *testing.T) {
	daemon := &mockDaemon{
		poolErr:   errors.New("connection refused"),
		zkPoolErr: errors.New("connection refused"),
	}
	archive := &mockArchive{window: &BlockWindow{Blocks: []domain.Block{
		{Height: 300, Timestamp: t0, UserCommands: []domain.UserCommand{
			payment("CkpOK", "B62qa", "B62qb", 7, 1, 300, t0),
		}},
	}}}

	r := NewTxResolver(archive, daemon, 500, mockLogger{})

	got, err := r.Lookup(context.Background(), "CkpOK")
	if err != nil {
		t.Fatalf("daemon outage must not fail the lookup: %v", err)
	}
	if got.Status != domain.StatusConfirmed {
		t.Errorf("status = %s, want confirmed", got.Status)
	}
}

func TestTxResolver_NotFoundVsTransportError(t *testing.T) {
	t.Run("absent everywhere is NotFound", func(t *testing.T) {
		r := NewTxResolver(&mockArchive{window: &BlockWindow{}}, &mockDaemon{}, 500, mockLogger{})

		_, err := r.Lookup(context.Background(), "CkpNope")
		if !apperror.IsCode(err, apperror.CodeTransactionNotFound) {
			t.Fatalf("expected TRANSACTION_NOT_FOUND, got %v", err)
		}
	})

	t.Run("archive failure is a transport error", func(t *testing.T) {
		archiveErr := apperror.New(apperror.CodeTransportError,
			apperror.WithCause(errors.New("502 bad gateway")))
		r := NewTxResolver(&mockArchive{err: archiveErr}, &mockDaemon{}, 500, mockLogger{})

		_, err := r.Lookup(context.Background(), "CkpNope")
		if !apperror.IsCode(err, apperror.CodeTransportError) {
			t.Fatalf("expected TRANSPORT_ERROR, got %v", err)
		}
		if apperror.IsCode(err, apperror.CodeTransactionNotFound) {
			t.Fatal("transport failure must not read as NotFound")
		}
	})
}

func TestTxResolver_EmptyHash(t *testing.T) {
	r := NewTxResolver(&mockArchive{}, &mockDaemon{}, 500, mockLogger{})

	_, err := r.Lookup(context.Background(), "")
	if !apperror.IsCode(err, apperror.CodeRequiredField) {
		t.Fatalf("expected REQUIRED_FIELD, got %v", err)
	}
}
