//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"hobbyboard/internal"
	"hobbyboard/internal/controllers"
	"hobbyboard/internal/persistence"
	"hobbyboard/internal/providers"
	"hobbyboard/internal/records"
	"hobbyboard/internal/services"
	"hobbyboard/internal/structures"
)

var storeSet = wire.NewSet(
	providers.NewConfigProvider,
	providers.NewLogProvider,
	providers.NewKeyValueProvider,
	providers.NewSnapshotProvider,
	records.NewRecordStore,
	services.NewCommunityService,

	persistence.NewZstdCompressor,
	persistence.NewFileManager,
	persistence.NewScheduler,
)

func InitApp(cfg *structures.CliFlags) (*internal.App, func(), error) {

	wire.Build(
		storeSet,
		wire.Bind(new(providers.BoardTotalsSource), new(services.CommunityServiceInterface)),
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil, nil
}

func InitBoard(cfg *structures.CliFlags) (*internal.Board, func(), error) {

	wire.Build(
		storeSet,
		providers.NewNoopMetricsProvider,
		internal.NewBoard,
	)

	return nil, nil, nil
}
