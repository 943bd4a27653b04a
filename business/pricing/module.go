// Package pricing implements the price oracle bounded context.
package pricing

import (
	"context"
	"time"

	"github.com/fd1az/minaview/business/pricing/app"
	pricingDI "github.com/fd1az/minaview/business/pricing/di"
	"github.com/fd1az/minaview/business/pricing/infra/coingecko"
	"github.com/fd1az/minaview/internal/config"
	"github.com/fd1az/minaview/internal/di"
	"github.com/fd1az/minaview/internal/httpclient"
	"github.com/fd1az/minaview/internal/logger"
	"github.com/fd1az/minaview/internal/monolith"
	"github.com/fd1az/minaview/internal/store"
)

// Module implements the pricing bounded context.
type Module struct{}

// RegisterServices registers all pricing services with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	// Register Oracle (CoinGecko) - private dependency
	di.RegisterToken(c, pricingDI.Oracle, func(sr di.ServiceRegistry) app.Oracle {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)

		hc, err := httpclient.NewInstrumentedClient(
			httpclient.WithProviderName("coingecko"),
			httpclient.WithRequestTimeout(15*time.Second),
		)
		if err != nil {
			panic("failed to create coingecko http client: " + err.Error())
		}

		return coingecko.NewClient(hc, coingecko.Config{
			BaseURL:        cfg.Pricing.OracleURL,
			CoinID:         cfg.Pricing.CoinID,
			RequestsPerMin: cfg.Pricing.RequestsPerMin,
		}, log)
	})

	// Register PriceService (public - exposed to other modules)
	di.RegisterToken(c, pricingDI.PriceService, func(sr di.ServiceRegistry) *app.Service {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)
		files := sr.Get("store").(*store.FileStore)

		return app.NewService(pricingDI.GetOracle(sr), files, app.CacheConfig{
			CurrentTTL:    cfg.Pricing.CurrentTTL,
			HistoricalCap: cfg.Pricing.HistoricalCap,
		}, log, nil)
	})

	return nil
}

// Startup warms the current-price cache so the first screen paint has data.
// A cold oracle is not fatal.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	log := mono.Logger()

	svc := pricingDI.GetPriceService(mono.Services())

	warmCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if _, err := svc.Current(warmCtx); err != nil {
		log.Warn(ctx, "price cache warm-up failed, starting cold", "error", err)
	}

	log.Info(ctx, "pricing module started")
	return nil
}
