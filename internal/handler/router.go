package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"pod-booking-core/internal/handler/api"
	"pod-booking-core/internal/handler/middleware"
	"pod-booking-core/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(engine *gin.Engine, cfg config.Config, availabilityHandler *api.AvailabilityHandler, holdHandler *api.HoldHandler, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, availabilityHandler, holdHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, availabilityHandler *api.AvailabilityHandler, holdHandler *api.HoldHandler, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		rooms := apiGroup.Group("/rooms")
		rooms.Use(middleware.OptionalSession())
		{
			addRoutes(rooms, []route{
				{Method: http.MethodGet, Path: "/available", Handler: availabilityHandler.SearchAvailable},
				{Method: http.MethodGet, Path: "/recommended", Handler: availabilityHandler.SearchRecommended},
			})
		}

		holds := apiGroup.Group("/holds")
		{
			// Maintenance endpoint; no session required.
			addRoutes(holds, []route{
				{Method: http.MethodPost, Path: "/sweep", Handler: holdHandler.SweepHolds},
			})

			sessionScoped := holds.Group("")
			sessionScoped.Use(middleware.RequireSession(), authMiddleware.OptionalAuth())
			addRoutes(sessionScoped, []route{
				{Method: http.MethodPost, Path: "", Handler: holdHandler.CreateHold},
				{Method: http.MethodGet, Path: "", Handler: holdHandler.ListHolds},
				{Method: http.MethodDelete, Path: "", Handler: holdHandler.AbandonSession},
				{Method: http.MethodPost, Path: "/:id/payment", Handler: holdHandler.AdvanceToPayment},
				{Method: http.MethodPost, Path: "/:id/confirm", Handler: holdHandler.ConfirmBooking},
				{Method: http.MethodPost, Path: "/:id/convert", Handler: holdHandler.ConvertHold},
				{Method: http.MethodDelete, Path: "/:id", Handler: holdHandler.ReleaseHold},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
