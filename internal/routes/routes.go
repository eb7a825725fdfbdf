// Package routes wires repositories, handlers and middleware onto the
// gin engine.
package routes

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/wanderbase/wanderbase/internal/app/domain/auth"
	"github.com/wanderbase/wanderbase/internal/app/domain/cities"
	"github.com/wanderbase/wanderbase/internal/app/domain/enrichment"
	"github.com/wanderbase/wanderbase/internal/app/domain/leads"
	"github.com/wanderbase/wanderbase/internal/app/domain/routecards"
	"github.com/wanderbase/wanderbase/internal/app/domain/routes"
	"github.com/wanderbase/wanderbase/internal/app/domain/trips"
	"github.com/wanderbase/wanderbase/internal/docstore"
	"github.com/wanderbase/wanderbase/internal/pkg/config"
	"github.com/wanderbase/wanderbase/internal/pkg/ratelimit"
	"github.com/wanderbase/wanderbase/internal/pkg/tripadvisor"
)

type AppHandlers struct {
	Auth       *auth.Service
	Routes     *routes.Handler
	Leads      *leads.Handler
	Trips      *trips.Handler
	RouteCards *routecards.Handler
	Cities     *cities.Handler
	Enrichment *enrichment.Handler
}

func Setup(r *gin.Engine, store *docstore.Client, cfg *config.Config, log *zap.Logger) {
	handlers := setupDependencies(store, cfg, log)
	setupRouter(r, handlers, log)
}

func setupDependencies(store *docstore.Client, cfg *config.Config, log *zap.Logger) *AppHandlers {
	routesRepo := routes.NewRepository(store, log)
	leadsRepo := leads.NewRepository(store, log)
	tripsRepo := trips.NewDefaultTripRepository(store, log)
	templatesRepo := trips.NewTemplateRepository(store, log)
	cardsRepo := routecards.NewRepository(store, log)
	citiesRepo := cities.NewRepository(store, log)

	places := tripadvisor.NewClient(cfg.TripAdvisor, log)

	var describer enrichment.Describer
	if cfg.GeminiAPIKey != "" {
		d, err := enrichment.NewGenAIDescriber(context.Background(), cfg.GeminiAPIKey, log)
		if err != nil {
			log.Error("Failed to create description fallback, continuing without it", zap.Error(err))
		} else {
			describer = d
		}
	}

	enrichmentService := enrichment.NewService(
		citiesRepo,
		places,
		describer,
		ratelimit.Interval(cfg.Enrichment.CallInterval),
		cfg.Enrichment.MaxCitiesPerRun,
		log,
	)

	return &AppHandlers{
		Auth:       auth.NewService(cfg.Admin, log),
		Routes:     routes.NewHandler(routesRepo, log),
		Leads:      leads.NewHandler(leadsRepo, log),
		Trips:      trips.NewHandler(tripsRepo, templatesRepo, log),
		RouteCards: routecards.NewHandler(cardsRepo, log),
		Cities:     cities.NewHandler(citiesRepo, log),
		Enrichment: enrichment.NewHandler(enrichmentService, log),
	}
}

func setupRouter(r *gin.Engine, h *AppHandlers, log *zap.Logger) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")

	// Public marketing endpoints. Reads degrade to empty lists when the
	// store is unconfigured so the site still renders.
	api.GET("/trips", h.Trips.HandlePublicTemplates)
	api.GET("/route-cards", h.RouteCards.HandlePublicList)
	api.GET("/cities", h.Cities.HandlePublicList)
	api.POST("/routes", h.Routes.HandleCreate)

	admin := api.Group("/admin")
	admin.POST("/login", h.Auth.HandleLogin)

	protected := admin.Group("/")
	protected.Use(h.Auth.RequireAdmin())
	{
		routesGroup := protected.Group("/routes")
		{
			routesGroup.GET("", h.Routes.HandleList)
			routesGroup.POST("", h.Routes.HandleCreate)
			routesGroup.GET("/:id", h.Routes.HandleGet)
			routesGroup.PATCH("/:id", h.Routes.HandleUpdate)
			routesGroup.DELETE("/:id", h.Routes.HandleDelete)
		}

		leadsGroup := protected.Group("/leads")
		{
			leadsGroup.GET("", h.Leads.HandleList)
			leadsGroup.POST("", h.Leads.HandleCreate)
			leadsGroup.GET("/:id", h.Leads.HandleGet)
			leadsGroup.PATCH("/:id", h.Leads.HandleUpdate)
			leadsGroup.DELETE("/:id", h.Leads.HandleDelete)
		}

		tripsGroup := protected.Group("/default-trips")
		{
			tripsGroup.GET("", h.Trips.HandleListTrips)
			tripsGroup.POST("", h.Trips.HandleCreateTrip)
			tripsGroup.GET("/:id", h.Trips.HandleGetTrip)
			tripsGroup.PATCH("/:id", h.Trips.HandleUpdateTrip)
			tripsGroup.DELETE("/:id", h.Trips.HandleDeleteTrip)
		}

		templatesGroup := protected.Group("/trip-templates")
		{
			templatesGroup.GET("", h.Trips.HandleListTemplates)
			templatesGroup.POST("", h.Trips.HandleCreateTemplate)
			templatesGroup.GET("/:id", h.Trips.HandleGetTemplate)
			templatesGroup.PATCH("/:id", h.Trips.HandleUpdateTemplate)
			templatesGroup.DELETE("/:id", h.Trips.HandleDeleteTemplate)
		}

		cardsGroup := protected.Group("/route-cards")
		{
			cardsGroup.GET("", h.RouteCards.HandleList)
			cardsGroup.POST("", h.RouteCards.HandleCreate)
			cardsGroup.GET("/:id", h.RouteCards.HandleGet)
			cardsGroup.PATCH("/:id", h.RouteCards.HandleUpdate)
			cardsGroup.DELETE("/:id", h.RouteCards.HandleDelete)
		}

		citiesGroup := protected.Group("/cities")
		{
			citiesGroup.GET("", h.Cities.HandleList)
			citiesGroup.POST("", h.Cities.HandleCreate)
			citiesGroup.GET("/:id", h.Cities.HandleGet)
			citiesGroup.DELETE("/:id", h.Cities.HandleDelete)
		}

		protected.POST("/enrichment/sync", h.Enrichment.HandleSync)
	}

	r.NoRoute(func(c *gin.Context) {
		log.Info("404 - Not found",
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method))
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})
}
