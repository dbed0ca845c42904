package candidatematch

import (
	"context"
	"fmt"
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

// Repository handles candidate match persistence
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

// NewRepository creates a new candidate match repository
func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// CreateBatch persists an accepted match set for a file pair in one statement.
// Re-running matching for the same pair is idempotent: rows that would violate
// the one-match-per-candidate constraint are skipped, not errored.
func (r *Repository) CreateBatch(ctx context.Context, matches []*models.CandidateMatch) error {
	ctx, span := tracing.StartSpan(ctx, "candidatematch.Repository.CreateBatch")
	defer span.End()

	if len(matches) == 0 {
		return nil
	}

	now := time.Now().UTC()
	ib := database.NewInsertBuilder()
	ib.InsertInto("candidate_matches")
	ib.Cols("id", "source_file_id", "target_file_id", "source_candidate_id", "target_candidate_id", "match_score", "name_score", "created_at")

	for _, m := range matches {
		if m.ID == "" {
			m.ID = uuid.New().String()
		}
		m.CreatedAt = now
		ib.Values(m.ID, m.SourceFileID, m.TargetFileID, m.SourceCandidateID, m.TargetCandidateID, m.MatchScore, m.NameScore, m.CreatedAt)
	}

	// Skip duplicates so re-running a file pair doesn't double-assign candidates
	ib.OnConflictDoNothing()

	query, args := ib.Build()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to create candidate matches batch")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to create candidate matches")
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{"count": len(matches)}).Debug("Created candidate matches batch")
	return nil
}

// Get retrieves a candidate match by ID
func (r *Repository) Get(ctx context.Context, id string) (*models.CandidateMatch, error) {
	ctx, span := tracing.StartSpan(ctx, "candidatematch.Repository.Get")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select("id", "source_file_id", "target_file_id", "source_candidate_id", "target_candidate_id", "match_score", "name_score", "created_at")
	sb.From("candidate_matches")
	sb.Where(sb.Equal("id", id))

	query, args := sb.Build()
	var match models.CandidateMatch
	if err := r.db.GetContext(ctx, &match, query, args...); err != nil {
		if err.Error() == "sql: no rows in result set" {
			return nil, httperror.NewHTTPError(http.StatusNotFound, fmt.Sprintf("match %s not found", id))
		}
		r.logger.WithContext(ctx).WithError(err).Error("Failed to get candidate match")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to get candidate match")
	}

	return &match, nil
}

// ListByFilePair retrieves all matches between a declared and an authoritative file
func (r *Repository) ListByFilePair(ctx context.Context, sourceFileID, targetFileID int64) ([]models.CandidateMatch, error) {
	ctx, span := tracing.StartSpan(ctx, "candidatematch.Repository.ListByFilePair")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select("id", "source_file_id", "target_file_id", "source_candidate_id", "target_candidate_id", "match_score", "name_score", "created_at")
	sb.From("candidate_matches")
	sb.Where(
		sb.Equal("source_file_id", sourceFileID),
		sb.Equal("target_file_id", targetFileID),
	)
	sb.OrderBy("match_score DESC", "id ASC")

	query, args := sb.Build()
	var matches []models.CandidateMatch
	if err := r.db.SelectContext(ctx, &matches, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to list candidate matches by file pair")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list candidate matches")
	}

	return matches, nil
}

// ListByCandidate retrieves matches involving a specific candidate on either side
func (r *Repository) ListByCandidate(ctx context.Context, candidateID int64) ([]models.CandidateMatch, error) {
	ctx, span := tracing.StartSpan(ctx, "candidatematch.Repository.ListByCandidate")
	defer span.End()

	query := `
		SELECT id, source_file_id, target_file_id, source_candidate_id, target_candidate_id, match_score, name_score, created_at
		FROM candidate_matches
		WHERE source_candidate_id = $1 OR target_candidate_id = $1
		ORDER BY match_score DESC, id ASC
	`

	var matches []models.CandidateMatch
	if err := r.db.SelectContext(ctx, &matches, query, candidateID); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to list candidate matches by candidate")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list candidate matches")
	}

	return matches, nil
}

// Delete removes a match together with its comparison results and summary in
// one transaction. Returns false when the match did not exist.
func (r *Repository) Delete(ctx context.Context, id string) (bool, error) {
	ctx, span := tracing.StartSpan(ctx, "candidatematch.Repository.Delete")
	defer span.End()

	ctx, tx, err := r.db.GetTx(ctx, nil)
	if err != nil {
		return false, httperror.NewHTTPError(http.StatusInternalServerError, "failed to start transaction")
	}
	defer tx.Rollback(ctx)

	if _, err := tx.ExecContext(ctx, "DELETE FROM comparison_results WHERE match_id = $1", id); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"match_id": id}).Error("Failed to delete comparison results for match")
		return false, httperror.NewHTTPError(http.StatusInternalServerError, "failed to delete match")
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM comparison_summaries WHERE match_id = $1", id); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"match_id": id}).Error("Failed to delete comparison summary for match")
		return false, httperror.NewHTTPError(http.StatusInternalServerError, "failed to delete match")
	}

	result, err := tx.ExecContext(ctx, "DELETE FROM candidate_matches WHERE id = $1", id)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"match_id": id}).Error("Failed to delete candidate match")
		return false, httperror.NewHTTPError(http.StatusInternalServerError, "failed to delete match")
	}

	rows, _ := result.RowsAffected()

	if err := tx.Commit(ctx); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to commit match deletion")
		return false, httperror.NewHTTPError(http.StatusInternalServerError, "failed to delete match")
	}

	return rows > 0, nil
}
