// Package verification orchestrates identity matching, field comparison, and
// report assembly over the persistence layer
package verification

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/Ramsey-B/laurel/pkg/tracing"

	"github.com/Ramsey-B/laurel/pkg/comparison"
	"github.com/Ramsey-B/laurel/pkg/events"
	"github.com/Ramsey-B/laurel/pkg/matching"
	"github.com/Ramsey-B/laurel/pkg/models"
)

// MatchStore persists candidate matches
type MatchStore interface {
	CreateBatch(ctx context.Context, matches []*models.CandidateMatch) error
	Get(ctx context.Context, id string) (*models.CandidateMatch, error)
	ListByFilePair(ctx context.Context, sourceFileID, targetFileID int64) ([]models.CandidateMatch, error)
	ListByCandidate(ctx context.Context, candidateID int64) ([]models.CandidateMatch, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// ResultStore persists per-field comparison results
type ResultStore interface {
	ReplaceForMatch(ctx context.Context, matchID string, results []models.ComparisonResult) ([]models.ComparisonResult, error)
	ListByMatch(ctx context.Context, matchID string) ([]models.ComparisonResult, error)
}

// SummaryStore persists per-match comparison summaries
type SummaryStore interface {
	Upsert(ctx context.Context, summary *models.ComparisonSummary) (*models.ComparisonSummary, error)
	GetByMatch(ctx context.Context, matchID string) (*models.ComparisonSummary, error)
}

// IdentityProvider resolves the identity roster of a file. Implemented by the
// ingestion side; batch pair processing calls it once per file side.
type IdentityProvider interface {
	GetIdentities(ctx context.Context, fileID int64) ([]models.IdentityRecord, error)
}

// Service is the verification engine facade
type Service struct {
	matcher    *matching.Matcher
	comparator *comparison.Comparator
	aggregator *comparison.Aggregator
	matches    MatchStore
	results    ResultStore
	summaries  SummaryStore
	identities IdentityProvider
	emitter    *events.Emitter
	logger     ectologger.Logger
}

// NewService creates a new verification service. identities and emitter may
// be nil; pair processing then requires inline rosters and no events are
// published.
func NewService(
	matcher *matching.Matcher,
	comparator *comparison.Comparator,
	aggregator *comparison.Aggregator,
	matches MatchStore,
	results ResultStore,
	summaries SummaryStore,
	identities IdentityProvider,
	emitter *events.Emitter,
	logger ectologger.Logger,
) *Service {
	return &Service{
		matcher:    matcher,
		comparator: comparator,
		aggregator: aggregator,
		matches:    matches,
		results:    results,
		summaries:  summaries,
		identities: identities,
		emitter:    emitter,
		logger:     logger,
	}
}

// GenerateMatches runs identity matching for one file pair and persists the
// accepted assignment. Empty rosters are valid and yield zero matches.
func (s *Service) GenerateMatches(ctx context.Context, req *models.GenerateMatchesRequest) ([]models.CandidateMatch, error) {
	ctx, span := tracing.StartSpan(ctx, "verification.Service.GenerateMatches")
	defer span.End()

	pairs := s.matcher.FindBestMatches(req.SourceIdentities, req.TargetIdentities)

	matches := make([]*models.CandidateMatch, 0, len(pairs))
	for _, p := range pairs {
		matches = append(matches, &models.CandidateMatch{
			SourceFileID:      req.SourceFileID,
			TargetFileID:      req.TargetFileID,
			SourceCandidateID: p.Source.ID,
			TargetCandidateID: p.Target.ID,
			MatchScore:        p.Score,
			NameScore:         p.NameScore,
		})
	}

	if err := s.matches.CreateBatch(ctx, matches); err != nil {
		return nil, err
	}

	// Read the assignment back: a re-run skips rows that would double-assign
	// a candidate, so the stored rows are authoritative, not the ones minted
	// for the insert attempt.
	created, err := s.matches.ListByFilePair(ctx, req.SourceFileID, req.TargetFileID)
	if err != nil {
		return nil, err
	}

	if err := s.emitter.EmitMatchesCreated(ctx, created); err != nil {
		// Matches are persisted; a failed emit is not worth failing the request
		s.logger.WithContext(ctx).WithError(err).Warn("Match events not emitted")
	}

	s.logger.WithContext(ctx).WithFields(map[string]any{
		"source_file_id": req.SourceFileID,
		"target_file_id": req.TargetFileID,
		"source_count":   len(req.SourceIdentities),
		"target_count":   len(req.TargetIdentities),
		"match_count":    len(created),
	}).Info("Generated candidate matches")

	return created, nil
}

// CompareAndSummarize scores the declared against the authoritative field
// values of one match, replaces its stored results, and upserts its summary.
// Re-comparison overwrites the previous outcome.
func (s *Service) CompareAndSummarize(ctx context.Context, matchID string, req *models.CompareFieldsRequest) (*models.ComparisonReport, error) {
	ctx, span := tracing.StartSpan(ctx, "verification.Service.CompareAndSummarize")
	defer span.End()

	match, err := s.matches.Get(ctx, matchID)
	if err != nil {
		return nil, err
	}

	specs := s.comparator.BuildFieldSpecs(req.DeclaredFields, req.AuthoritativeFields)
	results := s.comparator.CompareFields(matchID, specs, req.DeclaredFields, req.AuthoritativeFields)

	stored, err := s.results.ReplaceForMatch(ctx, matchID, results)
	if err != nil {
		return nil, err
	}

	summary := s.aggregator.Aggregate(matchID, stored)
	saved, err := s.summaries.Upsert(ctx, &summary)
	if err != nil {
		return nil, err
	}

	if err := s.emitter.EmitComparisonCompleted(ctx, match, saved); err != nil {
		s.logger.WithContext(ctx).WithError(err).Warn("Comparison event not emitted")
	}

	s.logger.WithContext(ctx).WithFields(map[string]any{
		"match_id":       matchID,
		"field_count":    len(stored),
		"overall_status": saved.OverallStatus,
	}).Info("Compared match fields")

	return &models.ComparisonReport{
		Match:   *match,
		Summary: saved,
		Results: stored,
	}, nil
}

// DeleteMatch removes a match and all its comparison artifacts. Returns false
// when the match did not exist; the caller decides whether that is an error.
func (s *Service) DeleteMatch(ctx context.Context, matchID string) (bool, error) {
	ctx, span := tracing.StartSpan(ctx, "verification.Service.DeleteMatch")
	defer span.End()

	deleted, err := s.matches.Delete(ctx, matchID)
	if err != nil {
		return false, err
	}
	if !deleted {
		return false, nil
	}

	if err := s.emitter.EmitMatchDeleted(ctx, matchID); err != nil {
		s.logger.WithContext(ctx).WithError(err).Warn("Delete event not emitted")
	}

	return true, nil
}

// ProcessFilePairs runs matching over a batch of file pairs, resolving each
// side's roster through the identity provider. Pair failures are isolated:
// one bad pair is reported in its result row and the rest still run. Only an
// empty batch is a request error.
func (s *Service) ProcessFilePairs(ctx context.Context, pairs []models.FilePair) ([]models.FilePairResult, error) {
	ctx, span := tracing.StartSpan(ctx, "verification.Service.ProcessFilePairs")
	defer span.End()

	if len(pairs) == 0 {
		return nil, httperror.NewHTTPError(http.StatusBadRequest, "no file pairs to process")
	}
	if s.identities == nil {
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "no identity provider configured")
	}

	results := make([]models.FilePairResult, 0, len(pairs))
	for _, pair := range pairs {
		result := s.processPair(ctx, pair)
		results = append(results, result)
	}

	return results, nil
}

func (s *Service) processPair(ctx context.Context, pair models.FilePair) models.FilePairResult {
	ctx, span := tracing.StartSpan(ctx, "verification.Service.processPair")
	defer span.End()

	result := models.FilePairResult{
		SourceFileID: pair.SourceFileID,
		TargetFileID: pair.TargetFileID,
	}

	source, err := s.identities.GetIdentities(ctx, pair.SourceFileID)
	if err != nil {
		s.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"file_id": pair.SourceFileID}).Error("Failed to load source identities")
		result.Error = fmt.Sprintf("failed to load identities for file %d", pair.SourceFileID)
		return result
	}

	target, err := s.identities.GetIdentities(ctx, pair.TargetFileID)
	if err != nil {
		s.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"file_id": pair.TargetFileID}).Error("Failed to load target identities")
		result.Error = fmt.Sprintf("failed to load identities for file %d", pair.TargetFileID)
		return result
	}

	matches, err := s.GenerateMatches(ctx, &models.GenerateMatchesRequest{
		SourceFileID:     pair.SourceFileID,
		TargetFileID:     pair.TargetFileID,
		SourceIdentities: source,
		TargetIdentities: target,
	})
	if err != nil {
		result.Error = err.Error()
		return result
	}

	result.MatchCount = len(matches)
	result.Success = true
	return result
}
