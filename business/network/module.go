// Package network implements the network bounded context: the endpoint
// resolver and the active network session.
package network

import (
	"context"

	"github.com/fd1az/minaview/business/network/app"
	"github.com/fd1az/minaview/business/network/domain"
	networkDI "github.com/fd1az/minaview/business/network/di"
	"github.com/fd1az/minaview/internal/config"
	"github.com/fd1az/minaview/internal/di"
	"github.com/fd1az/minaview/internal/logger"
	"github.com/fd1az/minaview/internal/monolith"
	"github.com/fd1az/minaview/internal/store"
)

// Module implements the network bounded context.
type Module struct{}

// RegisterServices registers the resolver and session with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	di.RegisterToken(c, networkDI.Resolver, func(sr di.ServiceRegistry) *app.Resolver {
		cfg := sr.Get("config").(*config.Config)

		profiles := make([]domain.Profile, 0, len(cfg.Networks.Profiles))
		for _, p := range cfg.Networks.Profiles {
			profiles = append(profiles, domain.Profile{
				ID:          p.ID,
				DisplayName: p.DisplayName,
				ArchiveURL:  p.ArchiveURL,
				DaemonURL:   p.DaemonURL,
				Testnet:     p.Testnet,
			})
		}
		resolver := app.NewResolver(profiles)
		if cfg.Networks.ArchiveOverride != "" {
			resolver.SetOverride(cfg.Networks.ArchiveOverride)
		}
		return resolver
	})

	di.RegisterToken(c, networkDI.Session, func(sr di.ServiceRegistry) *app.Session {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)
		fileStore := sr.Get("store").(*store.FileStore)

		session, err := app.NewSession(networkDI.GetResolver(sr), fileStore, cfg.Networks.Default, log)
		if err != nil {
			panic("failed to create network session: " + err.Error())
		}
		return session
	})

	return nil
}

// Startup initializes the network module.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	session := networkDI.GetSession(mono.Services())

	if override := session.Resolver().Override(); override != "" {
		mono.Logger().Info(ctx, "archive endpoint override active", "archive", override)
	}
	mono.Logger().Info(ctx, "network module started",
		"network", session.Active().ID,
		"networks", len(session.Resolver().Profiles()))
	return nil
}
