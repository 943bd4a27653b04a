// Package di contains dependency injection tokens for the chain context.
package di

import (
	"github.com/fd1az/minaview/business/chain/app"
	"github.com/fd1az/minaview/business/chain/infra/graphql"
	"github.com/fd1az/minaview/internal/di"
)

// Public service tokens - exposed to other modules
var (
	TxResolver       = di.NewToken[*app.TxResolver]("chain.TxResolver")
	ActivityService  = di.NewToken[*app.ActivityService]("chain.ActivityService")
	AnalyticsService = di.NewToken[*app.AnalyticsService]("chain.AnalyticsService")
	DiscoveryService = di.NewToken[*app.DiscoveryService]("chain.DiscoveryService")
	BlockFeed        = di.NewToken[*graphql.BlockFeed]("chain.BlockFeed")
)

// Private dependency tokens - internal to chain module
var (
	ArchiveReader = di.NewToken[*graphql.ArchiveClient]("chain:archiveReader")
	DaemonReader  = di.NewToken[*graphql.DaemonClient]("chain:daemonReader")
)

// Helper functions for type-safe access
func GetTxResolver(c di.ServiceRegistry) *app.TxResolver {
	return di.GetToken(c, TxResolver)
}

func GetActivityService(c di.ServiceRegistry) *app.ActivityService {
	return di.GetToken(c, ActivityService)
}

func GetAnalyticsService(c di.ServiceRegistry) *app.AnalyticsService {
	return di.GetToken(c, AnalyticsService)
}

func GetDiscoveryService(c di.ServiceRegistry) *app.DiscoveryService {
	return di.GetToken(c, DiscoveryService)
}

func GetBlockFeed(c di.ServiceRegistry) *graphql.BlockFeed {
	return di.GetToken(c, BlockFeed)
}

func GetArchiveReader(c di.ServiceRegistry) *graphql.ArchiveClient {
	return di.GetToken(c, ArchiveReader)
}

func GetDaemonReader(c di.ServiceRegistry) *graphql.DaemonClient {
	return di.GetToken(c, DaemonReader)
}
