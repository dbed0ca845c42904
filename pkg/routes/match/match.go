// Package match exposes the matching lifecycle over HTTP
package match

import (
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectoinject"
	"github.com/Ramsey-B/laurel/pkg/tracing"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/laurel/pkg/models"
	"github.com/Ramsey-B/laurel/pkg/verification"
)

var validate = validator.New()

// Register registers match routes
func Register(g *echo.Group) {
	g.POST("/generate", Generate)
	g.POST("/process-pairs", ProcessPairs)
	g.POST("/:id/compare", Compare)
	g.DELETE("/:id", Delete)
}

// Generate runs identity matching for one file pair with inline rosters
func Generate(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "match_handler.Generate")
	defer span.End()

	var req models.GenerateMatchesRequest
	if err := c.Bind(&req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx, svc, err := ectoinject.GetContext[*verification.Service](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	matches, err := svc.GenerateMatches(ctx, &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, matches)
}

// ProcessPairs runs matching over a batch of file pairs, loading rosters
// through the configured identity provider
func ProcessPairs(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "match_handler.ProcessPairs")
	defer span.End()

	var req models.ProcessFilePairsRequest
	if err := c.Bind(&req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx, svc, err := ectoinject.GetContext[*verification.Service](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	results, err := svc.ProcessFilePairs(ctx, req.Pairs)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, results)
}

// Compare scores declared against authoritative field values for a match
func Compare(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "match_handler.Compare")
	defer span.End()

	id := c.Param("id")
	if id == "" {
		return httperror.NewHTTPError(http.StatusBadRequest, "match id is required")
	}

	var req models.CompareFieldsRequest
	if err := c.Bind(&req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx, svc, err := ectoinject.GetContext[*verification.Service](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	report, err := svc.CompareAndSummarize(ctx, id, &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, report)
}

// Delete removes a match and its comparison artifacts
func Delete(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "match_handler.Delete")
	defer span.End()

	id := c.Param("id")
	if id == "" {
		return httperror.NewHTTPError(http.StatusBadRequest, "match id is required")
	}

	ctx, svc, err := ectoinject.GetContext[*verification.Service](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	deleted, err := svc.DeleteMatch(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return httperror.NewHTTPError(http.StatusNotFound, "match not found")
	}

	return c.NoContent(http.StatusNoContent)
}
