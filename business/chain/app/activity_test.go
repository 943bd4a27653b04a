package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fd1az/minaview/business/chain/domain"
	"github.com/fd1az/minaview/internal/apperror"
)

const (
	keyAlice = "B62qalice"
	keyBob   = "B62qbob"
	keyCarol = "B62qcarol"
)

func TestActivityService_SentAndReceived(t *testing.T) {
	ts := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)
	archive := &mockArchive{window: &BlockWindow{Blocks: []domain.Block{
		{Height: 502, Timestamp: ts.Add(6 * time.Minute), UserCommands: []domain.UserCommand{
			payment("CkpIn", keyBob, keyAlice, 2_500_000_001, 10_000_000, 502, ts.Add(6*time.Minute)),
		}},
		{Height: 501, Timestamp: ts.Add(3 * time.Minute), UserCommands: []domain.UserCommand{
			payment("CkpOut", keyAlice, keyBob, 1_000_000_000, 20_000_000, 501, ts.Add(3*time.Minute)),
			payment("CkpOther", keyBob, keyCarol, 9, 1, 501, ts.Add(3*time.Minute)),
		}},
	}}}

	s := NewActivityService(archive, 500, mockLogger{})

	got, err := s.History(context.Background(), keyAlice)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}

	// Newest block first.
	in, out := got[0], got[1]
	if in.Direction != domain.DirectionReceived || in.Counterparty != keyBob {
		t.Errorf("received entry = %+v", in)
	}
	if out.Direction != domain.DirectionSent || out.Counterparty != keyBob {
		t.Errorf("sent entry = %+v", out)
	}

	// Amounts preserved bit for bit from the source records.
	if in.Amount == nil || in.Amount.Raw().Uint64() != 2_500_000_001 {
		t.Errorf("received amount = %v, want 2500000001", in.Amount)
	}
	if out.Amount == nil || out.Amount.Raw().Uint64() != 1_000_000_000 {
		t.Errorf("sent amount = %v, want 1000000000", out.Amount)
	}
	if out.Fee.Raw().Uint64() != 20_000_000 {
		t.Errorf("sent fee = %v", out.Fee)
	}
	if archive.lastLimit != 500 {
		t.Errorf("window = %d, want 500", archive.lastLimit)
	}
}

func TestActivityService_SelfTransferEmitsOnlySent(t *testing.T) {
	ts := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)
	archive := &mockArchive{window: &BlockWindow{Blocks: []domain.Block{
		{Height: 600, Timestamp: ts, UserCommands: []domain.UserCommand{
			payment("CkpSelf", keyAlice, keyAlice, 5, 1, 600, ts),
		}},
	}}}

	s := NewActivityService(archive, 500, mockLogger{})

	got, err := s.History(context.Background(), keyAlice)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("self-transfer must emit exactly one entry, got %d", len(got))
	}
	if got[0].Direction != domain.DirectionSent {
		t.Errorf("direction = %s, want sent", got[0].Direction)
	}
}

func TestActivityService_ZkAppEntries(t *testing.T) {
	ts := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name             string
		cmd              domain.ZkAppCommand
		wantEntry        bool
		wantCounterparty string
	}{
		{
			name:             "subject among affected accounts",
			cmd:              zkCmd("Ckp1", keyBob, []string{"B62qapp", keyAlice}, 5, 700, ts),
			wantEntry:        true,
			wantCounterparty: keyBob,
		},
		{
			name:             "subject is the fee payer",
			cmd:              zkCmd("Ckp2", keyAlice, []string{"B62qapp"}, 5, 700, ts),
			wantEntry:        true,
			wantCounterparty: "",
		},
		{
			name:      "uninvolved subject",
			cmd:       zkCmd("Ckp3", keyBob, []string{"B62qapp", keyCarol}, 5, 700, ts),
			wantEntry: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			archive := &mockArchive{window: &BlockWindow{Blocks: []domain.Block{
				{Height: 700, Timestamp: ts, ZkAppCommands: []domain.ZkAppCommand{tt.cmd}},
			}}}
			s := NewActivityService(archive, 500, mockLogger{})

			got, err := s.History(context.Background(), keyAlice)
			if err != nil {
				t.Fatalf("History: %v", err)
			}
			if !tt.wantEntry {
				if len(got) != 0 {
					t.Fatalf("expected no entries, got %d", len(got))
				}
				return
			}
			if len(got) != 1 {
				t.Fatalf("expected 1 entry, got %d", len(got))
			}
			entry := got[0]
			if entry.Direction != domain.DirectionZkApp {
				t.Errorf("direction = %s, want zkapp", entry.Direction)
			}
			if entry.Counterparty != tt.wantCounterparty {
				t.Errorf("counterparty = %q, want %q", entry.Counterparty, tt.wantCounterparty)
			}
			if entry.Amount != nil {
				t.Error("zkapp entries carry no amount")
			}
		})
	}
}

func TestActivityService_FetchFailurePropagates(t *testing.T) {
	archiveErr := apperror.New(apperror.CodeTransportError,
		apperror.WithCause(errors.New("dial tcp: timeout")))
	s := NewActivityService(&mockArchive{err: archiveErr}, 500, mockLogger{})

	_, err := s.History(context.Background(), keyAlice)
	if !apperror.IsCode(err, apperror.CodeTransportError) {
		t.Fatalf("fetch failure must propagate, got %v", err)
	}
}

func TestActivityService_EmptyWindowIsEmptyNotError(t *testing.T) {
	s := NewActivityService(&mockArchive{window: &BlockWindow{}}, 500, mockLogger{})

	got, err := s.History(context.Background(), keyAlice)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty history, got %d entries", len(got))
	}
}
