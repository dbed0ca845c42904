// Package report exposes comparison reports over HTTP
package report

import (
	"net/http"
	"strconv"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectoinject"
	"github.com/Ramsey-B/laurel/pkg/tracing"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/laurel/pkg/verification"
)

// Register registers report routes
func Register(g *echo.Group) {
	g.GET("/match/:id", GetByMatch)
	g.GET("/file-pair", GetByFilePair)
	g.GET("/candidate/:id", GetByCandidate)
}

// GetByMatch returns the comparison report for one match
func GetByMatch(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "report_handler.GetByMatch")
	defer span.End()

	id := c.Param("id")
	if id == "" {
		return httperror.NewHTTPError(http.StatusBadRequest, "match id is required")
	}

	ctx, svc, err := ectoinject.GetContext[*verification.Service](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	report, err := svc.GetReport(ctx, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, report)
}

// GetByFilePair returns reports for every match between two files
func GetByFilePair(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "report_handler.GetByFilePair")
	defer span.End()

	sourceFileID, err := strconv.ParseInt(c.QueryParam("source_file_id"), 10, 64)
	if err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "source_file_id query parameter is required")
	}
	targetFileID, err := strconv.ParseInt(c.QueryParam("target_file_id"), 10, 64)
	if err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "target_file_id query parameter is required")
	}

	ctx, svc, err := ectoinject.GetContext[*verification.Service](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	reports, err := svc.GetReportsForFilePair(ctx, sourceFileID, targetFileID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, reports)
}

// GetByCandidate returns reports for every match involving a candidate
func GetByCandidate(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "report_handler.GetByCandidate")
	defer span.End()

	candidateID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "candidate id must be numeric")
	}

	ctx, svc, err := ectoinject.GetContext[*verification.Service](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	reports, err := svc.GetReportsForCandidate(ctx, candidateID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, reports)
}
