package domain

import (
	"time"

	"github.com/fd1az/minaview/internal/currency"
)

// DailyStat aggregates one UTC calendar day of canonical blocks.
type DailyStat struct {
	Date              time.Time // UTC midnight
	Blocks            int
	Transactions      int
	ZkAppTransactions int
	TotalFees         currency.Amount
	AvgBlockTimeSec   float64 // 0 for days with a single block
}

// NetworkAnalytics is the result of one analysis window.
type NetworkAnalytics struct {
	PeriodDays int
	Days       []DailyStat // ascending by date, for charting

	TotalBlocks            int
	TotalTransactions      int
	TotalZkAppTransactions int

	AvgBlockTimeSec float64
	TPS             float64
	AvgTxFee        currency.Amount

	// ZkAppsIncluded is false when the upstream schema lacks zkApp data and
	// the window was fetched with the reduced query.
	ZkAppsIncluded bool
	// Truncated is true when the window hit the block cap and the totals
	// undercount the true period.
	Truncated bool
}

// ZkAppAccount is one discovered zkApp candidate account.
type ZkAppAccount struct {
	PublicKey    string
	TxCount      int
	LastActivity time.Time
	LastTxHash   string
}
