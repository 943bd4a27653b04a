package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fd1az/minaview/business/chain/domain"
	"github.com/fd1az/minaview/internal/apperror"
)

func TestDiscoveryService_UnionsAndRanks(t *testing.T) {
	ts := time.Date(2025, 6, 3, 9, 0, 0, 0, time.UTC)
	archive := &mockArchive{window: &BlockWindow{Blocks: []domain.Block{
		{Height: 802, Timestamp: ts.Add(6 * time.Minute), ZkAppCommands: []domain.ZkAppCommand{
			zkCmd("CkpNew", "B62qpayer1", []string{"B62qappA"}, 1, 802, ts.Add(6*time.Minute)),
		}},
		{Height: 801, Timestamp: ts, ZkAppCommands: []domain.ZkAppCommand{
			zkCmd("CkpOld", "B62qpayer2", []string{"B62qappA", "B62qappB"}, 1, 801, ts),
		}},
	}}}

	s := NewDiscoveryService(archive, 500, 50, mockLogger{})

	got, err := s.Discover(context.Background())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	// Candidates: appA (2 touches), appB, payer1, payer2.
	if len(got) != 4 {
		t.Fatalf("expected 4 candidates, got %d", len(got))
	}

	byKey := map[string]domain.ZkAppAccount{}
	for _, acct := range got {
		byKey[acct.PublicKey] = acct
	}

	appA := byKey["B62qappA"]
	if appA.TxCount != 2 {
		t.Errorf("appA touches = %d, want 2", appA.TxCount)
	}
	if appA.LastTxHash != "CkpNew" {
		t.Errorf("appA last hash = %s, want the newer command", appA.LastTxHash)
	}
	if !appA.LastActivity.Equal(ts.Add(6 * time.Minute)) {
		t.Errorf("appA last activity = %v", appA.LastActivity)
	}

	// Most recent activity first.
	if !got[0].LastActivity.Equal(ts.Add(6 * time.Minute)) {
		t.Errorf("first candidate activity = %v, want newest", got[0].LastActivity)
	}
}

func TestDiscoveryService_DeduplicatesWithinCommand(t *testing.T) {
	ts := time.Date(2025, 6, 3, 9, 0, 0, 0, time.UTC)
	// Fee payer also appears in the affected set; one touch, not two.
	archive := &mockArchive{window: &BlockWindow{Blocks: []domain.Block{
		{Height: 900, Timestamp: ts, ZkAppCommands: []domain.ZkAppCommand{
			zkCmd("Ckp", "B62qboth", []string{"B62qboth", "B62qapp"}, 1, 900, ts),
		}},
	}}}

	s := NewDiscoveryService(archive, 500, 50, mockLogger{})

	got, err := s.Discover(context.Background())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	for _, acct := range got {
		if acct.PublicKey == "B62qboth" && acct.TxCount != 1 {
			t.Errorf("duplicate key in one command counted %d times", acct.TxCount)
		}
	}
}

func TestDiscoveryService_TruncatesToTopN(t *testing.T) {
	ts := time.Date(2025, 6, 3, 9, 0, 0, 0, time.UTC)
	block := domain.Block{Height: 950, Timestamp: ts}
	for i := 0; i < 5; i++ {
		block.ZkAppCommands = append(block.ZkAppCommands,
			zkCmd("Ckp", string(rune('a'+i))+"payer", []string{string(rune('a' + i))}, 1, 950, ts.Add(time.Duration(i)*time.Minute)))
	}
	archive := &mockArchive{window: &BlockWindow{Blocks: []domain.Block{block}}}

	s := NewDiscoveryService(archive, 500, 3, mockLogger{})

	got, err := s.Discover(context.Background())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("expected 3 results, got %d", len(got))
	}
}

func TestDiscoveryService_FetchFailurePropagates(t *testing.T) {
	archiveErr := apperror.New(apperror.CodeTransportError,
		apperror.WithCause(errors.New("503")))
	s := NewDiscoveryService(&mockArchive{err: archiveErr}, 500, 50, mockLogger{})

	_, err := s.Discover(context.Background())
	if !apperror.IsCode(err, apperror.CodeTransportError) {
		t.Fatalf("expected TRANSPORT_ERROR, got %v", err)
	}
}

func TestDiscoveryService_NoZkAppActivity(t *testing.T) {
	ts := time.Date(2025, 6, 3, 9, 0, 0, 0, time.UTC)
	archive := &mockArchive{window: &BlockWindow{Blocks: []domain.Block{
		{Height: 960, Timestamp: ts, UserCommands: []domain.UserCommand{
			payment("Ckp", "B62qa", "B62qb", 1, 1, 960, ts),
		}},
	}}}
	s := NewDiscoveryService(archive, 500, 50, mockLogger{})

	got, err := s.Discover(context.Background())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no candidates, got %d", len(got))
	}
}
