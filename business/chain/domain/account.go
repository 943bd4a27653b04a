package domain

import "github.com/fd1az/minaview/internal/currency"

// AccountProfile is a ledger account as reported by the daemon. When the
// full query is not served, the fallback populates only the balance and
// nonce and marks the profile Minimal; consumers must not read the other
// fields in that case.
type AccountProfile struct {
	PublicKey string
	Minimal   bool

	Balance currency.Amount
	Nonce   uint64

	// Full profile only.
	Delegate            string
	StakingActive       bool
	VerificationKeyHash string // non-empty marks a zkApp account
}

// IsZkApp reports whether the account carries a verification key.
func (a AccountProfile) IsZkApp() bool {
	return !a.Minimal && a.VerificationKeyHash != ""
}
