package components

import (
	"pod-booking-core/internal/infra/readstore"
	repo_impl "pod-booking-core/internal/infra/repository"
	"pod-booking-core/internal/usecase/commands"
	"pod-booking-core/internal/usecase/queries"

	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		fx.Annotate(
			repo_impl.NewTxManager,
			fx.As(new(commands.TxManager)),
		),
		fx.Annotate(
			repo_impl.NewHoldRepository,
			fx.As(new(commands.HoldRepository)),
		),
		fx.Annotate(
			repo_impl.NewReservationRepository,
			fx.As(new(commands.ReservationRepository)),
		),
		fx.Annotate(
			repo_impl.NewRoomRepository,
			fx.As(new(commands.RoomRepository)),
		),
		// Read-side stores for queries
		fx.Annotate(
			readstore.NewRoomReadStore,
			fx.As(new(queries.RoomReadStore)),
		),
		fx.Annotate(
			readstore.NewAvailabilityReadStore,
			fx.As(new(queries.AvailabilityReadStore)),
		),
		fx.Annotate(
			readstore.NewHoldReadStore,
			fx.As(new(queries.HoldReadStore)),
		),
	),
)
