// Package events handles event emission for match lifecycle changes
package events

import (
	"context"
	"encoding/json"

	"github.com/Gobusters/ectologger"
	"github.com/Ramsey-B/laurel/pkg/tracing"

	"github.com/Ramsey-B/laurel/pkg/kafka"
	"github.com/Ramsey-B/laurel/pkg/models"
)

// SchemaVersion is the current event schema version
const SchemaVersion = "1.0"

// Emitter handles event emission for verification outcomes. A nil Emitter is
// valid and emits nothing, so event publication stays optional wiring.
type Emitter struct {
	producer *kafka.Producer
	logger   ectologger.Logger
}

// NewEmitter creates a new event emitter
func NewEmitter(producer *kafka.Producer, logger ectologger.Logger) *Emitter {
	return &Emitter{
		producer: producer,
		logger:   logger,
	}
}

// EmitMatchesCreated emits a match.created event per accepted match
func (e *Emitter) EmitMatchesCreated(ctx context.Context, matches []models.CandidateMatch) error {
	if e == nil || e.producer == nil {
		return nil
	}
	ctx, span := tracing.StartSpan(ctx, "events.Emitter.EmitMatchesCreated")
	defer span.End()

	evts := make([]*kafka.VerificationEvent, 0, len(matches))
	for _, m := range matches {
		data, _ := json.Marshal(map[string]any{
			"schema_version":      SchemaVersion,
			"source_candidate_id": m.SourceCandidateID,
			"target_candidate_id": m.TargetCandidateID,
			"match_score":         m.MatchScore,
			"name_score":          m.NameScore,
		})

		evts = append(evts, &kafka.VerificationEvent{
			EventType:    "match.created",
			MatchID:      m.ID,
			SourceFileID: m.SourceFileID,
			TargetFileID: m.TargetFileID,
			Data:         data,
		})
	}

	if err := e.producer.PublishVerificationEvents(ctx, evts); err != nil {
		e.logger.WithContext(ctx).WithError(err).Error("Failed to emit match.created events")
		return err
	}

	return nil
}

// EmitMatchDeleted emits a match deleted event
func (e *Emitter) EmitMatchDeleted(ctx context.Context, matchID string) error {
	if e == nil || e.producer == nil {
		return nil
	}
	ctx, span := tracing.StartSpan(ctx, "events.Emitter.EmitMatchDeleted")
	defer span.End()

	event := &kafka.VerificationEvent{
		EventType: "match.deleted",
		MatchID:   matchID,
	}

	if err := e.producer.PublishVerificationEvent(ctx, event); err != nil {
		e.logger.WithContext(ctx).WithError(err).Error("Failed to emit match.deleted event")
		return err
	}

	return nil
}

// EmitComparisonCompleted emits a comparison.completed event carrying the
// summary outcome for a match
func (e *Emitter) EmitComparisonCompleted(ctx context.Context, match *models.CandidateMatch, summary *models.ComparisonSummary) error {
	if e == nil || e.producer == nil {
		return nil
	}
	ctx, span := tracing.StartSpan(ctx, "events.Emitter.EmitComparisonCompleted")
	defer span.End()

	data, _ := json.Marshal(map[string]any{
		"schema_version":              SchemaVersion,
		"average_similarity":          summary.AverageSimilarity,
		"overall_verification_status": summary.OverallStatus,
	})

	event := &kafka.VerificationEvent{
		EventType:    "comparison.completed",
		MatchID:      match.ID,
		SourceFileID: match.SourceFileID,
		TargetFileID: match.TargetFileID,
		Data:         data,
	}

	if err := e.producer.PublishVerificationEvent(ctx, event); err != nil {
		e.logger.WithContext(ctx).WithError(err).Error("Failed to emit comparison.completed event")
		return err
	}

	return nil
}
