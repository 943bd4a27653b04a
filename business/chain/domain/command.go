package domain

import (
	"time"

	"github.com/fd1az/minaview/internal/currency"
)

// CommandKind distinguishes the user command flavors.
type CommandKind string

const (
	KindPayment    CommandKind = "payment"
	KindDelegation CommandKind = "delegation"
)

// UserCommand is a signed payment or stake delegation.
type UserCommand struct {
	Hash          string
	Kind          CommandKind
	From          string
	To            string
	Amount        currency.Amount
	Fee           currency.Amount
	Nonce         uint64
	Memo          string // raw base58check form, decode at boundaries
	FailureReason string // empty when the command applied cleanly
	BlockHeight   uint64 // 0 while pending
	Timestamp     time.Time
}

// ZkAppCommand is a zkApp transaction: one fee payer plus a set of account
// updates. The protocol exposes no single scalar amount at this level.
type ZkAppCommand struct {
	Hash            string
	FeePayer        string
	Fee             currency.Amount
	Nonce           uint64
	Memo            string
	UpdatedAccounts []string // deduplicated public keys touched by the updates
	Failures        []string
	BlockHeight     uint64
	Timestamp       time.Time
}

// Failed reports whether any account update failed.
func (z ZkAppCommand) Failed() bool {
	return len(z.Failures) > 0
}
