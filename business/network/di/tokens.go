// Package di contains dependency injection tokens for the network context.
package di

import (
	"github.com/fd1az/minaview/business/network/app"
	"github.com/fd1az/minaview/internal/di"
)

// Public service tokens - exposed to other modules
var (
	Session  = di.NewToken[*app.Session]("network.Session")
	Resolver = di.NewToken[*app.Resolver]("network.Resolver")
)

// Helper functions for type-safe access
func GetSession(c di.ServiceRegistry) *app.Session {
	return di.GetToken(c, Session)
}

func GetResolver(c di.ServiceRegistry) *app.Resolver {
	return di.GetToken(c, Resolver)
}
