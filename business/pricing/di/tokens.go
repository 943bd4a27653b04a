// Package di contains dependency injection tokens for the pricing context.
package di

import (
	"github.com/fd1az/minaview/business/pricing/app"
	"github.com/fd1az/minaview/internal/di"
)

// Public service tokens - exposed to other modules
var (
	PriceService = di.NewToken[*app.Service]("pricing.PriceService")
)

// Private dependency tokens - internal to pricing module
var (
	Oracle = di.NewToken[app.Oracle]("pricing:oracle")
)

// Helper functions for type-safe access
func GetPriceService(c di.ServiceRegistry) *app.Service {
	return di.GetToken(c, PriceService)
}

func GetOracle(c di.ServiceRegistry) app.Oracle {
	return di.GetToken(c, Oracle)
}
