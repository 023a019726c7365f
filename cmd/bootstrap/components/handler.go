package components

import (
	"pod-booking-core/internal/handler"
	"pod-booking-core/internal/handler/api"
	"pod-booking-core/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAvailabilityHandler,
		api.NewHoldHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
