package coingecko

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fd1az/minaview/internal/apperror"
	"github.com/fd1az/minaview/internal/httpclient"
)

type nopLogger struct{}

func (nopLogger) Debug(ctx context.Context, msg string, args ...any)              {}
func (nopLogger) Info(ctx context.Context, msg string, args ...any)               {}
func (nopLogger) Warn(ctx context.Context, msg string, args ...any)               {}
func (nopLogger) Error(ctx context.Context, msg string, args ...any)              {}
func (nopLogger) Debugc(ctx context.Context, caller int, msg string, args ...any) {}
func (nopLogger) Infoc(ctx context.Context, caller int, msg string, args ...any)  {}
func (nopLogger) Warnc(ctx context.Context, caller int, msg string, args ...any)  {}
func (nopLogger) Errorc(ctx context.Context, caller int, msg string, args ...any) {}

func newTestClient(t *testing.T, server *httptest.Server) *Client {
	t.Helper()
	hc, err := httpclient.NewInstrumentedClient(httpclient.WithProviderName("test"))
	if err != nil {
		t.Fatalf("NewInstrumentedClient: %v", err)
	}
	cfg := Config{BaseURL: server.URL, CoinID: "mina-protocol"}
	return NewClient(hc, cfg, nopLogger{})
}

func TestCurrentPrice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/simple/price" {
			t.Errorf("path = %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("ids") != "mina-protocol" || q.Get("vs_currencies") != "usd,eur" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"mina-protocol":{"usd":1.42,"eur":1.30,"usd_24h_change":-2.5}}`))
	}))
	defer server.Close()

	snap, err := newTestClient(t, server).CurrentPrice(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if snap.USD != 1.42 || snap.EUR != 1.30 {
		t.Fatalf("snapshot = %+v", snap)
	}
	if snap.Change24h == nil || *snap.Change24h != -2.5 {
		t.Fatalf("Change24h = %v", snap.Change24h)
	}
}

func TestCurrentPriceMissingCoin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	_, err := newTestClient(t, server).CurrentPrice(context.Background())
	if !apperror.IsCode(err, apperror.CodePriceUnavailable) {
		t.Fatalf("error = %v, want PRICE_UNAVAILABLE", err)
	}
}

func TestCurrentPriceAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"status":{"error_code":429,"error_message":"You've exceeded the Rate Limit."}}`))
	}))
	defer server.Close()

	_, err := newTestClient(t, server).CurrentPrice(context.Background())
	if !apperror.IsCode(err, apperror.CodeOracleAPIError) {
		t.Fatalf("error = %v, want ORACLE_API_ERROR", err)
	}
}

func TestHistoricalPrice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/coins/mina-protocol/history" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("date"); got != "15-01-2023" {
			t.Errorf("date = %s, want 15-01-2023", got)
		}
		w.Write([]byte(`{"market_data":{"current_price":{"usd":0.55,"eur":0.51}}}`))
	}))
	defer server.Close()

	date := time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC)
	hp, err := newTestClient(t, server).HistoricalPrice(context.Background(), date)
	if err != nil {
		t.Fatal(err)
	}
	if hp.USD != 0.55 || hp.EUR != 0.51 {
		t.Fatalf("price = %+v", hp)
	}
	if !hp.Date.Equal(date) {
		t.Fatalf("Date = %s, want %s", hp.Date, date)
	}
}

func TestHistoricalPriceNoMarketData(t *testing.T) {
	// CoinGecko omits market_data for dates before the coin listed.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"mina-protocol","symbol":"mina"}`))
	}))
	defer server.Close()

	date := time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err := newTestClient(t, server).HistoricalPrice(context.Background(), date)
	if !apperror.IsCode(err, apperror.CodePriceUnavailable) {
		t.Fatalf("error = %v, want PRICE_UNAVAILABLE", err)
	}
}
