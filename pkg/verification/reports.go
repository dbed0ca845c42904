package verification

import (
	"context"

	"github.com/Ramsey-B/laurel/pkg/tracing"

	"github.com/Ramsey-B/laurel/pkg/models"
)

// GetReport assembles the full comparison report for one match. An uncompared
// match yields a report with a nil summary and no results.
func (s *Service) GetReport(ctx context.Context, matchID string) (*models.ComparisonReport, error) {
	ctx, span := tracing.StartSpan(ctx, "verification.Service.GetReport")
	defer span.End()

	match, err := s.matches.Get(ctx, matchID)
	if err != nil {
		return nil, err
	}

	return s.buildReport(ctx, match)
}

// GetReportsForFilePair assembles reports for every match between a declared
// and an authoritative file, ordered by match score descending.
func (s *Service) GetReportsForFilePair(ctx context.Context, sourceFileID, targetFileID int64) ([]models.ComparisonReport, error) {
	ctx, span := tracing.StartSpan(ctx, "verification.Service.GetReportsForFilePair")
	defer span.End()

	matches, err := s.matches.ListByFilePair(ctx, sourceFileID, targetFileID)
	if err != nil {
		return nil, err
	}

	return s.buildReports(ctx, matches)
}

// GetReportsForCandidate assembles reports for every match involving a
// candidate on either side.
func (s *Service) GetReportsForCandidate(ctx context.Context, candidateID int64) ([]models.ComparisonReport, error) {
	ctx, span := tracing.StartSpan(ctx, "verification.Service.GetReportsForCandidate")
	defer span.End()

	matches, err := s.matches.ListByCandidate(ctx, candidateID)
	if err != nil {
		return nil, err
	}

	return s.buildReports(ctx, matches)
}

func (s *Service) buildReports(ctx context.Context, matches []models.CandidateMatch) ([]models.ComparisonReport, error) {
	reports := make([]models.ComparisonReport, 0, len(matches))
	for i := range matches {
		report, err := s.buildReport(ctx, &matches[i])
		if err != nil {
			return nil, err
		}
		reports = append(reports, *report)
	}
	return reports, nil
}

func (s *Service) buildReport(ctx context.Context, match *models.CandidateMatch) (*models.ComparisonReport, error) {
	summary, err := s.summaries.GetByMatch(ctx, match.ID)
	if err != nil {
		return nil, err
	}

	results, err := s.results.ListByMatch(ctx, match.ID)
	if err != nil {
		return nil, err
	}

	return &models.ComparisonReport{
		Match:   *match,
		Summary: summary,
		Results: results,
	}, nil
}
