// Package coingecko implements the price oracle against the CoinGecko REST API.
package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fd1az/minaview/business/pricing/domain"
	"github.com/fd1az/minaview/internal/apperror"
	"github.com/fd1az/minaview/internal/httpclient"
	"github.com/fd1az/minaview/internal/logger"
	"github.com/fd1az/minaview/internal/ratelimit"
)

const (
	DefaultBaseURL = "https://api.coingecko.com/api/v3"
	DefaultCoinID  = "mina-protocol"

	// CoinGecko's free tier allows roughly 30 calls/min; stay under it.
	defaultRequestsPerMin = 20
)

// Config holds client configuration.
type Config struct {
	BaseURL        string
	CoinID         string
	RequestsPerMin int
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{BaseURL: DefaultBaseURL, CoinID: DefaultCoinID, RequestsPerMin: defaultRequestsPerMin}
}

// Client fetches MINA prices from CoinGecko.
type Client struct {
	http    httpclient.Client
	limiter *ratelimit.Limiter
	cfg     Config
	log     logger.LoggerInterface
}

// NewClient builds a rate-limited CoinGecko client.
func NewClient(http httpclient.Client, cfg Config, log logger.LoggerInterface) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.CoinID == "" {
		cfg.CoinID = DefaultCoinID
	}
	if cfg.RequestsPerMin <= 0 {
		cfg.RequestsPerMin = defaultRequestsPerMin
	}
	return &Client{
		http:    http,
		limiter: ratelimit.New(cfg.RequestsPerMin),
		cfg:     cfg,
		log:     log,
	}
}

type simplePrice struct {
	USD       *float64 `json:"usd"`
	EUR       *float64 `json:"eur"`
	Change24h *float64 `json:"usd_24h_change"`
}

type apiError struct {
	Status struct {
		ErrorCode    int    `json:"error_code"`
		ErrorMessage string `json:"error_message"`
	} `json:"status"`
}

// CurrentPrice implements app.Oracle.
func (c *Client) CurrentPrice(ctx context.Context) (*domain.Snapshot, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, apperror.Wrap(err, apperror.CodeOracleAPIError, "waiting for rate limiter")
	}

	url := fmt.Sprintf("%s/simple/price?ids=%s&vs_currencies=usd,eur&include_24hr_change=true",
		c.cfg.BaseURL, c.cfg.CoinID)
	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}

	var out map[string]simplePrice
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, apperror.Wrap(err, apperror.CodeOracleAPIError, "decoding simple price response")
	}
	price, ok := out[c.cfg.CoinID]
	if !ok || price.USD == nil {
		return nil, apperror.New(apperror.CodePriceUnavailable,
			apperror.WithContext("coin", c.cfg.CoinID))
	}

	snap := &domain.Snapshot{USD: *price.USD, Change24h: price.Change24h}
	if price.EUR != nil {
		snap.EUR = *price.EUR
	}
	return snap, nil
}

type historyResponse struct {
	MarketData *struct {
		CurrentPrice map[string]float64 `json:"current_price"`
	} `json:"market_data"`
}

// HistoricalPrice implements app.Oracle. CoinGecko takes the date as
// DD-MM-YYYY.
func (c *Client) HistoricalPrice(ctx context.Context, date time.Time) (*domain.HistoricalPrice, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, apperror.Wrap(err, apperror.CodeOracleAPIError, "waiting for rate limiter")
	}

	day := date.UTC()
	url := fmt.Sprintf("%s/coins/%s/history?date=%s&localization=false",
		c.cfg.BaseURL, c.cfg.CoinID, day.Format("02-01-2006"))
	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}

	var out historyResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, apperror.Wrap(err, apperror.CodeOracleAPIError, "decoding history response")
	}
	if out.MarketData == nil || len(out.MarketData.CurrentPrice) == 0 {
		return nil, apperror.New(apperror.CodePriceUnavailable,
			apperror.WithContext("date", domain.DateKey(day)))
	}

	return &domain.HistoricalPrice{
		Date: day.Truncate(24 * time.Hour),
		USD:  out.MarketData.CurrentPrice["usd"],
		EUR:  out.MarketData.CurrentPrice["eur"],
	}, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.http.NewRequest().
		SetHeader("Accept", "application/json").
		Get(ctx, url)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeOracleAPIError, "requesting "+url)
	}
	if resp.IsError() {
		var ae apiError
		if json.Unmarshal(resp.Body(), &ae) == nil && ae.Status.ErrorMessage != "" {
			return nil, apperror.New(apperror.CodeOracleAPIError,
				apperror.WithContext("oracle_error", ae.Status.ErrorMessage),
				apperror.WithStatusCode(resp.StatusCode))
		}
		return nil, apperror.New(apperror.CodeOracleAPIError,
			apperror.WithStatusCode(resp.StatusCode))
	}
	return resp.Body(), nil
}
