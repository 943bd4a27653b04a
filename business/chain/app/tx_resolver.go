package app

import (
	"context"

	"github.com/fd1az/minaview/business/chain/domain"
	"github.com/fd1az/minaview/internal/apperror"
	"github.com/fd1az/minaview/internal/logger"
)

// TxResolver looks up a transaction hash across the pending pools and a
// bounded archive window, in that order. A pool hit wins over an archive
// hit: the pools describe the freshest view of the hash.
//
// A daemon transport failure degrades that step to an empty pool and the
// search continues; an archive failure propagates, because the archive is
// the final required step.
type TxResolver struct {
	archive      ArchiveReader
	daemon       DaemonReader
	searchBlocks int
	log          logger.LoggerInterface
}

// NewTxResolver builds a resolver scanning at most searchBlocks archive blocks.
func NewTxResolver(archive ArchiveReader, daemon DaemonReader, searchBlocks int, log logger.LoggerInterface) *TxResolver {
	return &TxResolver{
		archive:      archive,
		daemon:       daemon,
		searchBlocks: searchBlocks,
		log:          log,
	}
}

// Lookup resolves hash to a unified transaction detail. A hash matching
// nothing returns NOT_FOUND, which callers must treat as a normal outcome
// distinct from a fetch error.
func (r *TxResolver) Lookup(ctx context.Context, hash string) (*domain.TransactionDetail, error) {
	if hash == "" {
		return nil, apperror.New(apperror.CodeRequiredField,
			apperror.WithContext("field", "hash"))
	}

	// Pending user commands.
	pooled, err := r.daemon.PooledUserCommands(ctx)
	if err != nil {
		r.log.Warn(ctx, "pending pool unavailable, continuing lookup", "hash", hash, "error", err)
	} else {
		for _, cmd := range pooled {
			if cmd.Hash == hash {
				return domain.DetailFromUserCommand(cmd, domain.StatusPending), nil
			}
		}
	}

	// Pending zkApp commands.
	pooledZk, err := r.daemon.PooledZkAppCommands(ctx)
	if err != nil {
		r.log.Warn(ctx, "pending zkapp pool unavailable, continuing lookup", "hash", hash, "error", err)
	} else {
		for _, cmd := range pooledZk {
			if cmd.Hash == hash {
				return domain.DetailFromZkAppCommand(cmd, domain.StatusPending), nil
			}
		}
	}

	// Archive window.
	window, err := r.archive.RecentBlocks(ctx, r.searchBlocks)
	if err != nil {
		return nil, err
	}
	for _, block := range window.Blocks {
		for _, cmd := range block.UserCommands {
			if cmd.Hash == hash {
				return domain.DetailFromUserCommand(cmd, domain.StatusConfirmed), nil
			}
		}
		for _, cmd := range block.ZkAppCommands {
			if cmd.Hash == hash {
				return domain.DetailFromZkAppCommand(cmd, domain.StatusConfirmed), nil
			}
		}
	}

	return nil, apperror.New(apperror.CodeTransactionNotFound,
		apperror.WithContext("hash", hash))
}
