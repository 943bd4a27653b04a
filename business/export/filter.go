// Package export turns derived account activity into downloadable CSV.
package export

import (
	"time"

	"github.com/fd1az/minaview/business/chain/domain"
)

// TypeAll matches every transaction in FilterByType.
const TypeAll = "all"

// FilterByDateRange keeps transactions whose timestamp falls inside the
// inclusive [from, to] range. A nil bound is unbounded; with both bounds nil
// the input slice is returned as is.
func FilterByDateRange(txs []domain.AccountTransaction, from, to *time.Time) []domain.AccountTransaction {
	if from == nil && to == nil {
		return txs
	}
	out := make([]domain.AccountTransaction, 0, len(txs))
	for _, tx := range txs {
		if from != nil && tx.Timestamp.Before(*from) {
			continue
		}
		if to != nil && tx.Timestamp.After(*to) {
			continue
		}
		out = append(out, tx)
	}
	return out
}

// FilterByType keeps transactions whose direction tag matches typ, preserving
// order. TypeAll returns the input slice as is.
func FilterByType(txs []domain.AccountTransaction, typ string) []domain.AccountTransaction {
	if typ == TypeAll {
		return txs
	}
	out := make([]domain.AccountTransaction, 0, len(txs))
	for _, tx := range txs {
		if string(tx.Direction) == typ {
			out = append(out, tx)
		}
	}
	return out
}
