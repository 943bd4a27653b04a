package domain

import (
	"time"

	"github.com/fd1az/minaview/internal/currency"
)

// TxSource tells which command family a transaction belongs to.
type TxSource string

const (
	SourceUserCommand  TxSource = "user_command"
	SourceZkAppCommand TxSource = "zkapp_command"
)

// TxStatus is the confirmation state of a looked-up transaction.
type TxStatus string

const (
	StatusPending   TxStatus = "pending"
	StatusConfirmed TxStatus = "confirmed"
)

// TransactionDetail is the unified result of a hash lookup across the
// pending pools and the archive. Kind-specific fields are zero-valued when
// they do not apply to the source.
type TransactionDetail struct {
	Hash   string
	Source TxSource
	Status TxStatus

	// User command fields.
	Kind   CommandKind
	From   string
	To     string
	Amount currency.Amount
	Nonce  uint64

	// ZkApp command fields.
	FeePayer           string
	AccountUpdateCount int

	// Common.
	Fee           currency.Amount
	Memo          string // decoded
	FailureReason string
	BlockHeight   uint64    // 0 while pending
	Timestamp     time.Time // zero while pending
}

// DetailFromUserCommand unifies a user command into a lookup result.
func DetailFromUserCommand(cmd UserCommand, status TxStatus) *TransactionDetail {
	return &TransactionDetail{
		Hash:          cmd.Hash,
		Source:        SourceUserCommand,
		Status:        status,
		Kind:          cmd.Kind,
		From:          cmd.From,
		To:            cmd.To,
		Amount:        cmd.Amount,
		Nonce:         cmd.Nonce,
		Fee:           cmd.Fee,
		Memo:          DecodeMemo(cmd.Memo),
		FailureReason: cmd.FailureReason,
		BlockHeight:   cmd.BlockHeight,
		Timestamp:     cmd.Timestamp,
	}
}

// DetailFromZkAppCommand unifies a zkApp command into a lookup result.
func DetailFromZkAppCommand(cmd ZkAppCommand, status TxStatus) *TransactionDetail {
	failure := ""
	if len(cmd.Failures) > 0 {
		failure = cmd.Failures[0]
	}
	return &TransactionDetail{
		Hash:               cmd.Hash,
		Source:             SourceZkAppCommand,
		Status:             status,
		FeePayer:           cmd.FeePayer,
		AccountUpdateCount: len(cmd.UpdatedAccounts),
		Nonce:              cmd.Nonce,
		Fee:                cmd.Fee,
		Memo:               DecodeMemo(cmd.Memo),
		FailureReason:      failure,
		BlockHeight:        cmd.BlockHeight,
		Timestamp:          cmd.Timestamp,
	}
}
