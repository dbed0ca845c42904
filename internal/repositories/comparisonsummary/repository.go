package comparisonsummary

import (
	"context"
	"net/http"
	"time"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/Ramsey-B/laurel/pkg/database"
	"github.com/Ramsey-B/laurel/pkg/tracing"
	"github.com/google/uuid"
	"github.com/huandu/go-sqlbuilder"

	"github.com/Ramsey-B/laurel/pkg/models"
)

// Repository handles comparison summary persistence
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

// NewRepository creates a new comparison summary repository
func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// Upsert writes the single summary row for a match. A re-comparison updates
// the existing row in place; only updated_at moves on the update path.
func (r *Repository) Upsert(ctx context.Context, summary *models.ComparisonSummary) (*models.ComparisonSummary, error) {
	ctx, span := tracing.StartSpan(ctx, "comparisonsummary.Repository.Upsert")
	defer span.End()

	if summary.ID == "" {
		summary.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	summary.CreatedAt = now
	summary.UpdatedAt = now

	ib := database.NewInsertBuilder()
	ib.InsertInto("comparison_summaries")
	ib.Cols("id", "match_id", "average_similarity", "overall_verification_status", "created_at", "updated_at")
	ib.Values(summary.ID, summary.MatchID, summary.AverageSimilarity, summary.OverallStatus, summary.CreatedAt, summary.UpdatedAt)

	ub := ib.OnConflict("match_id")
	ub.Set(
		ub.Assign("average_similarity", database.Excluded("average_similarity")),
		ub.Assign("overall_verification_status", database.Excluded("overall_verification_status")),
		ub.Assign("updated_at", database.Excluded("updated_at")),
	)

	query, args := ib.Build()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"match_id": summary.MatchID}).Error("Failed to upsert comparison summary")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to save comparison summary")
	}

	// Read back so the caller sees the row that actually won (stable id and
	// created_at on the update path).
	return r.GetByMatch(ctx, summary.MatchID)
}

// GetByMatch retrieves the summary for a match. Returns nil when the match
// has not been compared yet; an uncompared match is not an error.
func (r *Repository) GetByMatch(ctx context.Context, matchID string) (*models.ComparisonSummary, error) {
	ctx, span := tracing.StartSpan(ctx, "comparisonsummary.Repository.GetByMatch")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select("id", "match_id", "average_similarity", "overall_verification_status", "created_at", "updated_at")
	sb.From("comparison_summaries")
	sb.Where(sb.Equal("match_id", matchID))

	query, args := sb.Build()
	var summary models.ComparisonSummary
	if err := r.db.GetContext(ctx, &summary, query, args...); err != nil {
		if err.Error() == "sql: no rows in result set" {
			return nil, nil // not compared yet
		}
		r.logger.WithContext(ctx).WithError(err).Error("Failed to get comparison summary")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to get comparison summary")
	}

	return &summary, nil
}
