package app

import (
	"context"
	"sync"
	"time"

	"github.com/fd1az/minaview/business/pricing/domain"
	"github.com/fd1az/minaview/internal/apperror"
	"github.com/fd1az/minaview/internal/logger"
)

const (
	defaultCurrentTTL = 5 * time.Minute
	defaultHistoryCap = 100

	currentSlot = "price_current"
	historySlot = "price_history"
)

// CacheConfig bounds the two caches. Zero values take the defaults.
type CacheConfig struct {
	CurrentTTL    time.Duration
	HistoricalCap int
}

// historyState is the persisted shape of the historical cache. Order records
// insertion so eviction removes the oldest-inserted entry, not the oldest date.
type historyState struct {
	Entries map[string]domain.HistoricalPrice `json:"entries"`
	Order   []string                          `json:"order"`
}

// Service caches oracle prices. The current price is refreshed at most once
// per freshness window; historical prices never expire but the cache is
// bounded.
type Service struct {
	oracle Oracle
	store  CacheStore
	log    logger.LoggerInterface
	now    func() time.Time
	ttl    time.Duration
	cap    int

	mu      sync.Mutex
	current *domain.Snapshot
	history historyState
}

// NewService builds the service and warms both caches from the store. A
// missing or corrupt slot is a cold cache, never an error.
func NewService(oracle Oracle, store CacheStore, cfg CacheConfig, log logger.LoggerInterface, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	if cfg.CurrentTTL <= 0 {
		cfg.CurrentTTL = defaultCurrentTTL
	}
	if cfg.HistoricalCap <= 0 {
		cfg.HistoricalCap = defaultHistoryCap
	}
	s := &Service{
		oracle:  oracle,
		store:   store,
		log:     log,
		now:     now,
		ttl:     cfg.CurrentTTL,
		cap:     cfg.HistoricalCap,
		history: historyState{Entries: map[string]domain.HistoricalPrice{}},
	}
	if store != nil {
		var snap domain.Snapshot
		if ok, _ := store.Load(currentSlot, &snap); ok {
			s.current = &snap
		}
		var hist historyState
		if ok, _ := store.Load(historySlot, &hist); ok && hist.Entries != nil {
			s.history = hist
		}
	}
	return s
}

// Current returns the live price, served from cache while it is fresh. The
// mutex is held across the fetch so concurrent callers inside one window
// trigger a single upstream request. On fetch failure the stale cached value
// is served; with no cache at all the call fails.
func (s *Service) Current(ctx context.Context) (*domain.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if s.current != nil && now.Sub(s.current.FetchedAt) < s.ttl {
		return s.current, nil
	}

	snap, err := s.oracle.CurrentPrice(ctx)
	if err != nil {
		if s.current != nil {
			s.log.Warn(ctx, "price fetch failed, serving stale value",
				"age", now.Sub(s.current.FetchedAt).String(), "error", err)
			return s.current, nil
		}
		return nil, apperror.Wrap(err, apperror.CodePriceUnavailable, "fetching current price")
	}
	snap.FetchedAt = now
	s.current = snap
	s.persist(ctx, currentSlot, snap)
	return snap, nil
}

// Historical returns the price on a past calendar day. Entries never expire;
// when the cache exceeds its capacity the oldest-inserted entry is evicted.
func (s *Service) Historical(ctx context.Context, date time.Time) (*domain.HistoricalPrice, error) {
	key := domain.DateKey(date)

	s.mu.Lock()
	defer s.mu.Unlock()

	if hit, ok := s.history.Entries[key]; ok {
		return &hit, nil
	}

	price, err := s.oracle.HistoricalPrice(ctx, date)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodePriceUnavailable, "fetching historical price for "+key)
	}

	s.history.Entries[key] = *price
	s.history.Order = append(s.history.Order, key)
	for len(s.history.Order) > s.cap {
		oldest := s.history.Order[0]
		s.history.Order = s.history.Order[1:]
		delete(s.history.Entries, oldest)
	}
	s.persist(ctx, historySlot, s.history)
	return price, nil
}

// Warm reports whether a current snapshot is cached.
func (s *Service) Warm() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil
}

// UseCurrentFor reports whether the date is too recent for the historical
// endpoint. Callers should ask for the current price instead.
func (s *Service) UseCurrentFor(date time.Time) bool {
	return s.now().UTC().Sub(date.UTC()) < 24*time.Hour
}

func (s *Service) persist(ctx context.Context, slot string, v any) {
	if s.store == nil {
		return
	}
	if err := s.store.Save(slot, v); err != nil {
		s.log.Warn(ctx, "persisting price cache failed", "slot", slot, "error", err)
	}
}
