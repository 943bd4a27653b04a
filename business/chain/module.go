// Package chain implements the chain bounded context: GraphQL readers for
// the archive and daemon endpoints plus the aggregators built on them.
package chain

import (
	"context"
	"time"

	"github.com/fd1az/minaview/business/chain/app"
	chainDI "github.com/fd1az/minaview/business/chain/di"
	"github.com/fd1az/minaview/business/chain/infra/graphql"
	networkDI "github.com/fd1az/minaview/business/network/di"
	"github.com/fd1az/minaview/internal/config"
	"github.com/fd1az/minaview/internal/di"
	"github.com/fd1az/minaview/internal/httpclient"
	"github.com/fd1az/minaview/internal/logger"
	"github.com/fd1az/minaview/internal/monolith"
)

const feedPollInterval = 30 * time.Second

// Module implements the chain bounded context.
type Module struct{}

// RegisterServices registers all chain services with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	di.RegisterToken(c, chainDI.ArchiveReader, func(sr di.ServiceRegistry) *graphql.ArchiveClient {
		log := sr.Get("logger").(logger.LoggerInterface)

		httpClient, err := httpclient.NewInstrumentedClient(
			httpclient.WithProviderName("archive-graphql"),
			httpclient.WithRequestTimeout(30*time.Second),
		)
		if err != nil {
			panic("failed to create archive http client: " + err.Error())
		}
		return graphql.NewArchiveClient(graphql.NewClient("archive", httpClient), log)
	})

	di.RegisterToken(c, chainDI.DaemonReader, func(sr di.ServiceRegistry) *graphql.DaemonClient {
		log := sr.Get("logger").(logger.LoggerInterface)

		httpClient, err := httpclient.NewInstrumentedClient(
			httpclient.WithProviderName("daemon-graphql"),
			httpclient.WithRequestTimeout(15*time.Second),
		)
		if err != nil {
			panic("failed to create daemon http client: " + err.Error())
		}
		return graphql.NewDaemonClient(graphql.NewClient("daemon", httpClient), log)
	})

	di.RegisterToken(c, chainDI.TxResolver, func(sr di.ServiceRegistry) *app.TxResolver {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)
		return app.NewTxResolver(
			chainDI.GetArchiveReader(sr),
			chainDI.GetDaemonReader(sr),
			cfg.Windows.SearchBlocks,
			log,
		)
	})

	di.RegisterToken(c, chainDI.ActivityService, func(sr di.ServiceRegistry) *app.ActivityService {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)
		return app.NewActivityService(chainDI.GetArchiveReader(sr), cfg.Windows.HistoryBlocks, log)
	})

	di.RegisterToken(c, chainDI.AnalyticsService, func(sr di.ServiceRegistry) *app.AnalyticsService {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)
		return app.NewAnalyticsService(chainDI.GetArchiveReader(sr), cfg.Windows.AnalyticsMaxBlocks, nil, log)
	})

	di.RegisterToken(c, chainDI.DiscoveryService, func(sr di.ServiceRegistry) *app.DiscoveryService {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)
		return app.NewDiscoveryService(
			chainDI.GetArchiveReader(sr),
			cfg.Windows.DiscoveryBlocks,
			cfg.Windows.TopZkApps,
			log,
		)
	})

	di.RegisterToken(c, chainDI.BlockFeed, func(sr di.ServiceRegistry) *graphql.BlockFeed {
		log := sr.Get("logger").(logger.LoggerInterface)
		return graphql.NewBlockFeed(chainDI.GetArchiveReader(sr), feedPollInterval, log)
	})

	return nil
}

// Startup attaches the readers to the network session and starts the live
// block feed against the active daemon.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	services := mono.Services()
	session := networkDI.GetSession(services)

	archive := chainDI.GetArchiveReader(services)
	daemon := chainDI.GetDaemonReader(services)
	session.AttachArchive(archive)
	session.AttachDaemon(daemon)

	endpoints, err := session.Endpoints()
	if err != nil {
		return err
	}

	feed := chainDI.GetBlockFeed(services)
	if err := feed.Start(ctx, endpoints.Daemon); err != nil {
		mono.Logger().Warn(ctx, "block feed unavailable", "error", err)
	}

	mono.Logger().Info(ctx, "chain module started",
		"archive", endpoints.Archive, "daemon", endpoints.Daemon)
	return nil
}
