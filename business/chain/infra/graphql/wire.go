package graphql

import (
	"strconv"
	"time"

	"github.com/fd1az/minaview/business/chain/domain"
	"github.com/fd1az/minaview/internal/currency"
)

// Wire shapes mirror the upstream GraphQL schema. Amounts arrive as
// nanomina decimal strings; timestamps as ISO-8601, with unix milliseconds
// as a legacy variant on some deployments.

type blocksData struct {
	Blocks []wireBlock `json:"blocks"`
}

type wireBlock struct {
	StateHash      string `json:"stateHash"`
	BlockHeight    uint64 `json:"blockHeight"`
	Canonical      bool   `json:"canonical"`
	DateTime       string `json:"dateTime"`
	CreatorAccount struct {
		PublicKey string `json:"publicKey"`
	} `json:"creatorAccount"`
	Transactions wireTransactions `json:"transactions"`
}

type wireTransactions struct {
	UserCommands  []wireUserCommand  `json:"userCommands"`
	ZkAppCommands []wireZkAppCommand `json:"zkappCommands"`
}

type wireUserCommand struct {
	Hash          string `json:"hash"`
	Kind          string `json:"kind"`
	From          string `json:"from"`
	To            string `json:"to"`
	Amount        string `json:"amount"`
	Fee           string `json:"fee"`
	Nonce         uint64 `json:"nonce"`
	Memo          string `json:"memo"`
	FailureReason string `json:"failureReason"`
}

type wireZkAppCommand struct {
	Hash           string `json:"hash"`
	FailureReasons []struct {
		Failures []string `json:"failures"`
	} `json:"failureReasons"`
	ZkAppCommand struct {
		Memo     string `json:"memo"`
		FeePayer struct {
			Body struct {
				PublicKey string `json:"publicKey"`
				Fee       string `json:"fee"`
				Nonce     uint64 `json:"nonce"`
			} `json:"body"`
		} `json:"feePayer"`
		AccountUpdates []struct {
			Body struct {
				PublicKey string `json:"publicKey"`
			} `json:"body"`
		} `json:"accountUpdates"`
	} `json:"zkappCommand"`
}

type pooledUserCommandsData struct {
	PooledUserCommands []wireUserCommand `json:"pooledUserCommands"`
}

type pooledZkAppCommandsData struct {
	PooledZkAppCommands []wireZkAppCommand `json:"pooledZkappCommands"`
}

type accountData struct {
	Account *wireAccount `json:"account"`
}

type wireAccount struct {
	PublicKey string  `json:"publicKey"`
	Nonce     string  `json:"nonce"`
	Delegate  *string `json:"delegate"`
	Balance   struct {
		Total     string `json:"total"`
		StateHash string `json:"stateHash"`
	} `json:"balance"`
	StakingActive   bool `json:"stakingActive"`
	VerificationKey *struct {
		Hash string `json:"hash"`
	} `json:"verificationKey"`
}

// parseAmount is lenient: upstream anomalies degrade to zero rather than
// poisoning a whole block window.
func parseAmount(s string) currency.Amount {
	amt, err := currency.ParseNano(s)
	if err != nil {
		return currency.Zero()
	}
	return amt
}

// parseTime accepts ISO-8601 first, then unix milliseconds.
func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC()
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms).UTC()
	}
	return time.Time{}
}

func parseNonce(s string) uint64 {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func commandKind(kind string) domain.CommandKind {
	switch kind {
	case "STAKE_DELEGATION", "Stake_delegation", "delegation":
		return domain.KindDelegation
	default:
		return domain.KindPayment
	}
}

func (w wireBlock) toDomain() domain.Block {
	ts := parseTime(w.DateTime)
	b := domain.Block{
		StateHash: w.StateHash,
		Height:    w.BlockHeight,
		Canonical: w.Canonical,
		Timestamp: ts,
		Creator:   w.CreatorAccount.PublicKey,
	}
	for _, cmd := range w.Transactions.UserCommands {
		b.UserCommands = append(b.UserCommands, cmd.toDomain(w.BlockHeight, ts))
	}
	for _, cmd := range w.Transactions.ZkAppCommands {
		b.ZkAppCommands = append(b.ZkAppCommands, cmd.toDomain(w.BlockHeight, ts))
	}
	return b
}

func (w wireUserCommand) toDomain(height uint64, ts time.Time) domain.UserCommand {
	return domain.UserCommand{
		Hash:          w.Hash,
		Kind:          commandKind(w.Kind),
		From:          w.From,
		To:            w.To,
		Amount:        parseAmount(w.Amount),
		Fee:           parseAmount(w.Fee),
		Nonce:         w.Nonce,
		Memo:          w.Memo,
		FailureReason: w.FailureReason,
		BlockHeight:   height,
		Timestamp:     ts,
	}
}

func (w wireZkAppCommand) toDomain(height uint64, ts time.Time) domain.ZkAppCommand {
	cmd := domain.ZkAppCommand{
		Hash:        w.Hash,
		FeePayer:    w.ZkAppCommand.FeePayer.Body.PublicKey,
		Fee:         parseAmount(w.ZkAppCommand.FeePayer.Body.Fee),
		Nonce:       w.ZkAppCommand.FeePayer.Body.Nonce,
		Memo:        w.ZkAppCommand.Memo,
		BlockHeight: height,
		Timestamp:   ts,
	}

	seen := make(map[string]struct{}, len(w.ZkAppCommand.AccountUpdates))
	for _, upd := range w.ZkAppCommand.AccountUpdates {
		key := upd.Body.PublicKey
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		cmd.UpdatedAccounts = append(cmd.UpdatedAccounts, key)
	}

	for _, fr := range w.FailureReasons {
		cmd.Failures = append(cmd.Failures, fr.Failures...)
	}
	return cmd
}

func (w wireAccount) toDomain(minimal bool) *domain.AccountProfile {
	acct := &domain.AccountProfile{
		PublicKey: w.PublicKey,
		Minimal:   minimal,
		Balance:   parseAmount(w.Balance.Total),
		Nonce:     parseNonce(w.Nonce),
	}
	if minimal {
		return acct
	}
	if w.Delegate != nil {
		acct.Delegate = *w.Delegate
	}
	acct.StakingActive = w.StakingActive
	if w.VerificationKey != nil {
		acct.VerificationKeyHash = w.VerificationKey.Hash
	}
	return acct
}
