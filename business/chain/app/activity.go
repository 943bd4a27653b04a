package app

import (
	"context"

	"github.com/fd1az/minaview/business/chain/domain"
	"github.com/fd1az/minaview/internal/apperror"
	"github.com/fd1az/minaview/internal/logger"
)

// ActivityService derives an account's activity history from one bounded
// window of recent blocks. Fetch failures are returned, not swallowed; the
// presentation layer decides how to degrade.
type ActivityService struct {
	archive       ArchiveReader
	historyBlocks int
	log           logger.LoggerInterface
}

// NewActivityService builds a service scanning at most historyBlocks blocks.
func NewActivityService(archive ArchiveReader, historyBlocks int, log logger.LoggerInterface) *ActivityService {
	return &ActivityService{
		archive:       archive,
		historyBlocks: historyBlocks,
		log:           log,
	}
}

// History returns the subject key's activity entries, newest block first.
// An empty slice with a nil error means the account genuinely had no
// activity inside the window.
func (s *ActivityService) History(ctx context.Context, publicKey string) ([]domain.AccountTransaction, error) {
	if publicKey == "" {
		return nil, apperror.New(apperror.CodeRequiredField,
			apperror.WithContext("field", "publicKey"))
	}

	window, err := s.archive.RecentBlocks(ctx, s.historyBlocks)
	if err != nil {
		return nil, err
	}

	// Blocks arrive newest first, so appending preserves the descending
	// height order. Ties within one block carry no secondary order.
	var out []domain.AccountTransaction
	for _, block := range window.Blocks {
		for _, cmd := range block.UserCommands {
			if entry, ok := classifyUserCommand(cmd, publicKey); ok {
				out = append(out, entry)
			}
		}
		for _, cmd := range block.ZkAppCommands {
			if entry, ok := classifyZkAppCommand(cmd, publicKey); ok {
				out = append(out, entry)
			}
		}
	}

	s.log.Debug(ctx, "account history derived",
		"publicKey", publicKey, "blocks", len(window.Blocks), "entries", len(out))
	return out, nil
}

// classifyUserCommand maps a user command onto the subject key. A
// self-transfer emits only the sent branch.
func classifyUserCommand(cmd domain.UserCommand, publicKey string) (domain.AccountTransaction, bool) {
	amount := cmd.Amount

	switch {
	case cmd.From == publicKey:
		return domain.AccountTransaction{
			Hash:         cmd.Hash,
			Direction:    domain.DirectionSent,
			Counterparty: cmd.To,
			Amount:       &amount,
			Fee:          cmd.Fee,
			BlockHeight:  cmd.BlockHeight,
			Timestamp:    cmd.Timestamp,
			Memo:         cmd.Memo,
		}, true
	case cmd.To == publicKey:
		return domain.AccountTransaction{
			Hash:         cmd.Hash,
			Direction:    domain.DirectionReceived,
			Counterparty: cmd.From,
			Amount:       &amount,
			Fee:          cmd.Fee,
			BlockHeight:  cmd.BlockHeight,
			Timestamp:    cmd.Timestamp,
			Memo:         cmd.Memo,
		}, true
	}
	return domain.AccountTransaction{}, false
}

// classifyZkAppCommand emits a zkapp entry when the subject key paid the fee
// or appears among the affected accounts. Counterparty is the fee payer,
// absent when the subject is the fee payer. No amount applies.
func classifyZkAppCommand(cmd domain.ZkAppCommand, publicKey string) (domain.AccountTransaction, bool) {
	involved := cmd.FeePayer == publicKey
	if !involved {
		for _, acct := range cmd.UpdatedAccounts {
			if acct == publicKey {
				involved = true
				break
			}
		}
	}
	if !involved {
		return domain.AccountTransaction{}, false
	}

	counterparty := cmd.FeePayer
	if cmd.FeePayer == publicKey {
		counterparty = ""
	}
	return domain.AccountTransaction{
		Hash:         cmd.Hash,
		Direction:    domain.DirectionZkApp,
		Counterparty: counterparty,
		Fee:          cmd.Fee,
		BlockHeight:  cmd.BlockHeight,
		Timestamp:    cmd.Timestamp,
		Memo:         cmd.Memo,
	}, true
}
