package app

import (
	"context"
	"sort"

	"github.com/fd1az/minaview/business/chain/domain"
	"github.com/fd1az/minaview/internal/logger"
)

// DiscoveryService surfaces active zkApp accounts by scanning recent zkApp
// commands. Every account touched by a command counts as a candidate, fee
// payers included; nothing on chain distinguishes a genuine zkApp contract
// from an ordinary account that merely participated, so the result
// over-approximates.
type DiscoveryService struct {
	archive         ArchiveReader
	discoveryBlocks int
	topN            int
	log             logger.LoggerInterface
}

// NewDiscoveryService builds a service scanning discoveryBlocks blocks and
// returning at most topN accounts.
func NewDiscoveryService(archive ArchiveReader, discoveryBlocks, topN int, log logger.LoggerInterface) *DiscoveryService {
	return &DiscoveryService{
		archive:         archive,
		discoveryBlocks: discoveryBlocks,
		topN:            topN,
		log:             log,
	}
}

// Discover returns candidate zkApp accounts sorted by most recent activity.
func (s *DiscoveryService) Discover(ctx context.Context) ([]domain.ZkAppAccount, error) {
	window, err := s.archive.RecentBlocks(ctx, s.discoveryBlocks)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]*domain.ZkAppAccount)
	for _, block := range window.Blocks {
		for _, cmd := range block.ZkAppCommands {
			for _, key := range commandAccounts(cmd) {
				acct, ok := seen[key]
				if !ok {
					acct = &domain.ZkAppAccount{PublicKey: key}
					seen[key] = acct
				}
				acct.TxCount++
				if cmd.Timestamp.After(acct.LastActivity) {
					acct.LastActivity = cmd.Timestamp
					acct.LastTxHash = cmd.Hash
				}
			}
		}
	}

	out := make([]domain.ZkAppAccount, 0, len(seen))
	for _, acct := range seen {
		out = append(out, *acct)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].LastActivity.Equal(out[j].LastActivity) {
			return out[i].LastActivity.After(out[j].LastActivity)
		}
		if out[i].TxCount != out[j].TxCount {
			return out[i].TxCount > out[j].TxCount
		}
		return out[i].PublicKey < out[j].PublicKey
	})
	if len(out) > s.topN {
		out = out[:s.topN]
	}

	s.log.Debug(ctx, "zkapp discovery completed",
		"blocks", len(window.Blocks), "candidates", len(seen), "returned", len(out))
	return out, nil
}

// commandAccounts unions the affected accounts and the fee payer,
// deduplicated within the command.
func commandAccounts(cmd domain.ZkAppCommand) []string {
	keys := make([]string, 0, len(cmd.UpdatedAccounts)+1)
	seen := make(map[string]struct{}, len(cmd.UpdatedAccounts)+1)
	for _, key := range append([]string{cmd.FeePayer}, cmd.UpdatedAccounts...) {
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	return keys
}
