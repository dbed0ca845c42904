package comparisonresult

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

// Repository handles per-field comparison result persistence
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

// NewRepository creates a new comparison result repository
func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// ReplaceForMatch swaps a match's field results for a fresh set in one
// transaction. Re-comparing a match overwrites, never accumulates.
func (r *Repository) ReplaceForMatch(ctx context.Context, matchID string, results []models.ComparisonResult) ([]models.ComparisonResult, error) {
	ctx, span := tracing.StartSpan(ctx, "comparisonresult.Repository.ReplaceForMatch")
	defer span.End()

	ctx, tx, err := r.db.GetTx(ctx, nil)
	if err != nil {
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to start transaction")
	}
	defer tx.Rollback(ctx)

	if _, err := tx.ExecContext(ctx, "DELETE FROM comparison_results WHERE match_id = $1", matchID); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"match_id": matchID}).Error("Failed to delete existing comparison results")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to replace comparison results")
	}

	if len(results) > 0 {
		now := time.Now().UTC()
		sb := sqlbuilder.PostgreSQL.NewInsertBuilder()
		sb.InsertInto("comparison_results")
		sb.Cols("id", "match_id", "field_name", "source_value", "target_value", "similarity_score", "verification_status", "created_at")

		for i := range results {
			results[i].ID = uuid.New().String()
			results[i].MatchID = matchID
			results[i].CreatedAt = now
			sb.Values(results[i].ID, results[i].MatchID, results[i].FieldName, results[i].SourceValue, results[i].TargetValue, results[i].SimilarityScore, results[i].Status, results[i].CreatedAt)
		}

		query, args := sb.Build()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"match_id": matchID}).Error("Failed to insert comparison results")
			return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to replace comparison results")
		}
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to commit comparison results")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to replace comparison results")
	}

	return results, nil
}

// ListByMatch retrieves a match's field results ordered by field name
func (r *Repository) ListByMatch(ctx context.Context, matchID string) ([]models.ComparisonResult, error) {
	ctx, span := tracing.StartSpan(ctx, "comparisonresult.Repository.ListByMatch")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select("id", "match_id", "field_name", "source_value", "target_value", "similarity_score", "verification_status", "created_at")
	sb.From("comparison_results")
	sb.Where(sb.Equal("match_id", matchID))
	sb.OrderBy("field_name ASC")

	query, args := sb.Build()
	var results []models.ComparisonResult
	if err := r.db.SelectContext(ctx, &results, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to list comparison results")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list comparison results")
	}

	return results, nil
}
