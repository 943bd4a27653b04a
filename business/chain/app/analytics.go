package app

import (
	"context"
	"sort"
	"time"

	"github.com/fd1az/minaview/business/chain/domain"
	"github.com/fd1az/minaview/internal/apperror"
	"github.com/fd1az/minaview/internal/currency"
	"github.com/fd1az/minaview/internal/logger"
)

const secondsPerDay = 86400

// AnalyticsService computes network-wide statistics over a bounded window
// of canonical blocks.
type AnalyticsService struct {
	archive   ArchiveReader
	maxBlocks int
	now       func() time.Time
	log       logger.LoggerInterface
}

// NewAnalyticsService builds a service capping every window at maxBlocks.
// now is injectable for tests; pass nil for the wall clock.
func NewAnalyticsService(archive ArchiveReader, maxBlocks int, now func() time.Time, log logger.LoggerInterface) *AnalyticsService {
	if now == nil {
		now = time.Now
	}
	return &AnalyticsService{
		archive:   archive,
		maxBlocks: maxBlocks,
		now:       now,
		log:       log,
	}
}

// Analyze aggregates the last periodDays days of canonical blocks. When the
// true block count exceeds the cap the totals undercount and the result is
// marked Truncated.
func (s *AnalyticsService) Analyze(ctx context.Context, periodDays int) (*domain.NetworkAnalytics, error) {
	if periodDays <= 0 {
		return nil, apperror.New(apperror.CodeInvalidInput,
			apperror.WithContext("periodDays", periodDays))
	}

	cutoff := s.now().UTC().Add(-time.Duration(periodDays) * 24 * time.Hour)
	window, err := s.archive.CanonicalBlocksSince(ctx, cutoff, s.maxBlocks)
	if err != nil {
		return nil, err
	}

	// Work on the ascending sequence from here on.
	blocks := make([]domain.Block, len(window.Blocks))
	copy(blocks, window.Blocks)
	sort.Slice(blocks, func(i, j int) bool {
		return blocks[i].Timestamp.Before(blocks[j].Timestamp)
	})

	result := &domain.NetworkAnalytics{
		PeriodDays:     periodDays,
		TotalBlocks:    len(blocks),
		AvgTxFee:       currency.Zero(),
		ZkAppsIncluded: window.ZkAppsIncluded,
		Truncated:      window.Truncated,
	}

	byDay := make(map[time.Time][]domain.Block)
	for _, b := range blocks {
		result.TotalTransactions += b.TxCount()
		result.TotalZkAppTransactions += len(b.ZkAppCommands)

		day := b.Timestamp.UTC().Truncate(24 * time.Hour)
		byDay[day] = append(byDay[day], b)
	}

	totalFees := currency.Zero()
	for day, dayBlocks := range byDay {
		stat := domain.DailyStat{
			Date:            day,
			Blocks:          len(dayBlocks),
			TotalFees:       currency.Zero(),
			AvgBlockTimeSec: avgBlockTime(dayBlocks),
		}
		for _, b := range dayBlocks {
			stat.Transactions += b.TxCount()
			stat.ZkAppTransactions += len(b.ZkAppCommands)
			for _, cmd := range b.UserCommands {
				stat.TotalFees = stat.TotalFees.Add(cmd.Fee)
			}
			for _, cmd := range b.ZkAppCommands {
				stat.TotalFees = stat.TotalFees.Add(cmd.Fee)
			}
		}
		totalFees = totalFees.Add(stat.TotalFees)
		result.Days = append(result.Days, stat)
	}
	sort.Slice(result.Days, func(i, j int) bool {
		return result.Days[i].Date.Before(result.Days[j].Date)
	})

	// Window-wide average over the full sorted sequence, not a mean of the
	// per-day averages, which would overweight sparse days.
	result.AvgBlockTimeSec = avgBlockTime(blocks)
	result.TPS = float64(result.TotalTransactions) / float64(periodDays*secondsPerDay)
	if result.TotalTransactions > 0 {
		avg, err := totalFees.DivInt(int64(result.TotalTransactions))
		if err != nil {
			return nil, err
		}
		result.AvgTxFee = avg
	}

	s.log.Debug(ctx, "analytics window aggregated",
		"periodDays", periodDays,
		"blocks", result.TotalBlocks,
		"transactions", result.TotalTransactions,
		"truncated", result.Truncated)
	return result, nil
}

// avgBlockTime is the mean of consecutive timestamp deltas over blocks
// sorted ascending. Fewer than two blocks yields 0, never NaN.
func avgBlockTime(blocks []domain.Block) float64 {
	if len(blocks) < 2 {
		return 0
	}
	var total float64
	for i := 1; i < len(blocks); i++ {
		total += blocks[i].Timestamp.Sub(blocks[i-1].Timestamp).Seconds()
	}
	return total / float64(len(blocks)-1)
}
