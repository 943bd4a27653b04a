package app

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/fd1az/minaview/business/pricing/domain"
	"github.com/fd1az/minaview/internal/apperror"
)

type mockLogger struct{}

func (mockLogger) Debug(ctx context.Context, msg string, args ...any)              {}
func (mockLogger) Info(ctx context.Context, msg string, args ...any)               {}
func (mockLogger) Warn(ctx context.Context, msg string, args ...any)               {}
func (mockLogger) Error(ctx context.Context, msg string, args ...any)              {}
func (mockLogger) Debugc(ctx context.Context, caller int, msg string, args ...any) {}
func (mockLogger) Infoc(ctx context.Context, caller int, msg string, args ...any)  {}
func (mockLogger) Warnc(ctx context.Context, caller int, msg string, args ...any)  {}
func (mockLogger) Errorc(ctx context.Context, caller int, msg string, args ...any) {}

type mockOracle struct {
	snap        *domain.Snapshot
	hist        *domain.HistoricalPrice
	err         error
	currentCall int
	histCalls   int
}

func (m *mockOracle) CurrentPrice(ctx context.Context) (*domain.Snapshot, error) {
	m.currentCall++
	if m.err != nil {
		return nil, m.err
	}
	cp := *m.snap
	return &cp, nil
}

func (m *mockOracle) HistoricalPrice(ctx context.Context, date time.Time) (*domain.HistoricalPrice, error) {
	m.histCalls++
	if m.err != nil {
		return nil, m.err
	}
	hp := *m.hist
	hp.Date = date.UTC().Truncate(24 * time.Hour)
	return &hp, nil
}

type mockStore struct {
	data  map[string][]byte
	saves int
}

func newMockStore() *mockStore { return &mockStore{data: map[string][]byte{}} }

func (m *mockStore) Save(slot string, v any) error {
	m.saves++
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.data[slot] = b
	return nil
}

func (m *mockStore) Load(slot string, out any) (bool, error) {
	b, ok := m.data[slot]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func TestCurrentFetchesOncePerWindow(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	oracle := &mockOracle{snap: &domain.Snapshot{USD: 1.25, EUR: 1.10}}
	svc := NewService(oracle, newMockStore(), CacheConfig{}, mockLogger{}, clock.Now)

	for i := 0; i < 2; i++ {
		snap, err := svc.Current(context.Background())
		if err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
		if snap.USD != 1.25 {
			t.Fatalf("call %d: USD = %v", i, snap.USD)
		}
	}
	if oracle.currentCall != 1 {
		t.Fatalf("fetches within window = %d, want 1", oracle.currentCall)
	}

	clock.Advance(defaultCurrentTTL + time.Second)
	if _, err := svc.Current(context.Background()); err != nil {
		t.Fatal(err)
	}
	if oracle.currentCall != 2 {
		t.Fatalf("fetches after window = %d, want 2", oracle.currentCall)
	}
}

func TestCurrentServesStaleOnFailure(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	oracle := &mockOracle{snap: &domain.Snapshot{USD: 2.0}}
	svc := NewService(oracle, newMockStore(), CacheConfig{}, mockLogger{}, clock.Now)

	if _, err := svc.Current(context.Background()); err != nil {
		t.Fatal(err)
	}

	clock.Advance(time.Hour)
	oracle.err = errors.New("upstream down")

	snap, err := svc.Current(context.Background())
	if err != nil {
		t.Fatalf("stale value should be served, got %v", err)
	}
	if snap.USD != 2.0 {
		t.Fatalf("USD = %v, want stale 2.0", snap.USD)
	}
}

func TestCurrentFailsWithoutCache(t *testing.T) {
	oracle := &mockOracle{err: errors.New("upstream down")}
	svc := NewService(oracle, newMockStore(), CacheConfig{}, mockLogger{}, nil)

	_, err := svc.Current(context.Background())
	if !apperror.IsCode(err, apperror.CodePriceUnavailable) {
		t.Fatalf("error = %v, want PRICE_UNAVAILABLE", err)
	}
}

func TestCurrentWarmStartFromStore(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	store := newMockStore()

	oracle := &mockOracle{snap: &domain.Snapshot{USD: 3.5}}
	first := NewService(oracle, store, CacheConfig{}, mockLogger{}, clock.Now)
	if _, err := first.Current(context.Background()); err != nil {
		t.Fatal(err)
	}

	// A fresh service over the same store starts warm.
	second := NewService(oracle, store, CacheConfig{}, mockLogger{}, clock.Now)
	snap, err := second.Current(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if snap.USD != 3.5 {
		t.Fatalf("USD = %v, want 3.5", snap.USD)
	}
	if oracle.currentCall != 1 {
		t.Fatalf("fetches = %d, want 1", oracle.currentCall)
	}
}

func TestHistoricalCachesForever(t *testing.T) {
	oracle := &mockOracle{hist: &domain.HistoricalPrice{USD: 0.9, EUR: 0.8}}
	svc := NewService(oracle, newMockStore(), CacheConfig{}, mockLogger{}, nil)

	date := time.Date(2023, 1, 15, 9, 30, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		hp, err := svc.Historical(context.Background(), date)
		if err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
		if hp.USD != 0.9 {
			t.Fatalf("call %d: USD = %v", i, hp.USD)
		}
	}
	if oracle.histCalls != 1 {
		t.Fatalf("fetches = %d, want 1", oracle.histCalls)
	}
}

func TestHistoricalEvictsOldestInserted(t *testing.T) {
	oracle := &mockOracle{hist: &domain.HistoricalPrice{USD: 1}}
	svc := NewService(oracle, newMockStore(), CacheConfig{}, mockLogger{}, nil)

	base := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i <= defaultHistoryCap; i++ {
		if _, err := svc.Historical(context.Background(), base.AddDate(0, 0, i)); err != nil {
			t.Fatal(err)
		}
	}
	if got := len(svc.history.Entries); got != defaultHistoryCap {
		t.Fatalf("entries = %d, want %d", got, defaultHistoryCap)
	}
	if _, ok := svc.history.Entries[domain.DateKey(base)]; ok {
		t.Fatal("oldest-inserted entry should have been evicted")
	}
	calls := oracle.histCalls
	if _, err := svc.Historical(context.Background(), base); err != nil {
		t.Fatal(err)
	}
	if oracle.histCalls != calls+1 {
		t.Fatal("evicted entry should require a refetch")
	}
}

func TestUseCurrentFor(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	svc := NewService(&mockOracle{}, nil, CacheConfig{}, mockLogger{}, func() time.Time { return now })

	cases := []struct {
		name string
		date time.Time
		want bool
	}{
		{"today", now.Add(-2 * time.Hour), true},
		{"yesterday afternoon", now.Add(-20 * time.Hour), true},
		{"two days ago", now.AddDate(0, 0, -2), false},
		{"last month", now.AddDate(0, -1, 0), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := svc.UseCurrentFor(tc.date); got != tc.want {
				t.Fatalf("UseCurrentFor(%s) = %v, want %v", tc.date, got, tc.want)
			}
		})
	}
}

