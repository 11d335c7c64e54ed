package server

import (
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"newscheck/internal/db"
	"newscheck/internal/detector"
	"newscheck/internal/handlers"
	"newscheck/internal/handlers/api"
)

// RegisterRoutes registers all application routes. database may be nil.
func (s *Server) RegisterRoutes(svc *detector.Service, database *db.DB) {
	// Initialize handlers
	checkHandler := handlers.NewCheckHandler(svc, s.Cfg)
	apiCheckHandler := api.NewCheckHandler(svc, s.Cfg)
	probeHandler := handlers.NewProbeHandler(database)

	// Probes and metrics
	s.App.Get("/healthz", probeHandler.Liveness)
	s.App.Get("/readyz", probeHandler.Readiness)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Frontend routes
	s.App.Get("/", checkHandler.Index)
	s.App.Post("/check", checkHandler.Check)

	// JSON API
	v1 := s.App.Group("/api/v1")
	v1.Get("/check", apiCheckHandler.CheckQuery)
	v1.Post("/check", apiCheckHandler.Check)
}
