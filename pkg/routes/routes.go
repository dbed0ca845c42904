// Package routes assembles the HTTP API surface
package routes

import (
	"github.com/Gobusters/ectologger"
	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"github.com/Ramsey-B/laurel/pkg/middleware"
	"github.com/Ramsey-B/laurel/pkg/routes/health"
	"github.com/Ramsey-B/laurel/pkg/routes/match"
	"github.com/Ramsey-B/laurel/pkg/routes/report"
)

// New builds the echo server with the service middleware stack and all API
// routes registered. The returned health checker starts not-ready; the caller
// flips it once startup dependencies are up.
func New(serviceName string, version string, db *sqlx.DB, kafka interface{ Health() bool }, logger ectologger.Logger) (*echo.Echo, *health.Checker) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(otelecho.Middleware(serviceName))
	e.Use(middleware.Context())
	e.Use(middleware.Logger(logger))
	e.HTTPErrorHandler = middleware.Error(logger)

	checker := health.NewChecker(db, kafka, version)
	checker.RegisterRoutes(e)

	api := e.Group("/api/v1")
	match.Register(api.Group("/matches"))
	report.Register(api.Group("/reports"))

	return e, checker
}
