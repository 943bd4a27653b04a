package domain

import (
	"time"

	"github.com/fd1az/minaview/internal/currency"
)

// Direction classifies an account activity entry relative to the subject key.
type Direction string

const (
	DirectionSent     Direction = "sent"
	DirectionReceived Direction = "received"
	DirectionZkApp    Direction = "zkapp"
)

// AccountTransaction is one entry of an account's derived activity history.
// Amount is nil for zkapp entries.
type AccountTransaction struct {
	Hash         string
	Direction    Direction
	Counterparty string // empty when the subject is the zkApp fee payer
	Amount       *currency.Amount
	Fee          currency.Amount
	BlockHeight  uint64
	Timestamp    time.Time
	Memo         string // raw base58check form
}
