package models

import "time"

// VerificationStatus classifies how trustworthy a compared field, or a whole
// match, is. The set is closed; persistence stores the string values below.
type VerificationStatus string

const (
	StatusFullyVerified     VerificationStatus = "fully_verified"
	StatusPartiallyVerified VerificationStatus = "partially_verified"
	StatusFraud             VerificationStatus = "fraud"
	StatusCannotVerify      VerificationStatus = "cannot_verify"
)

// Severity orders statuses for the most-severe-wins aggregation rule. A single
// falsified field outweighs any number of verified ones.
func (s VerificationStatus) Severity() int {
	switch s {
	case StatusFraud:
		return 3
	case StatusCannotVerify:
		return 2
	case StatusPartiallyVerified:
		return 1
	case StatusFullyVerified:
		return 0
	default:
		return -1
	}
}

// IsValid reports whether s is one of the closed set of statuses.
func (s VerificationStatus) IsValid() bool {
	return s.Severity() >= 0
}

// CandidateMatch is an accepted 1:1 assignment between a declared and an
// authoritative identity for one file pair. Immutable after creation except
// for deletion.
type CandidateMatch struct {
	ID                string    `json:"id" db:"id"`
	SourceFileID      int64     `json:"source_file_id" db:"source_file_id"`
	TargetFileID      int64     `json:"target_file_id" db:"target_file_id"`
	SourceCandidateID int64     `json:"source_candidate_id" db:"source_candidate_id"`
	TargetCandidateID int64     `json:"target_candidate_id" db:"target_candidate_id"`
	MatchScore        float64   `json:"match_score" db:"match_score"`
	NameScore         float64   `json:"name_score" db:"name_score"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
}

// ComparisonResult is the similarity outcome for one field of one match.
// SourceValue/TargetValue are nil when the side had no value for the field.
type ComparisonResult struct {
	ID              string             `json:"id" db:"id"`
	MatchID         string             `json:"match_id" db:"match_id"`
	FieldName       string             `json:"field_name" db:"field_name"`
	SourceValue     *string            `json:"source_value,omitempty" db:"source_value"`
	TargetValue     *string            `json:"target_value,omitempty" db:"target_value"`
	SimilarityScore float64            `json:"similarity_score" db:"similarity_score"`
	Status          VerificationStatus `json:"verification_status" db:"verification_status"`
	CreatedAt       time.Time          `json:"created_at" db:"created_at"`
}

// ComparisonSummary reduces a match's field results to one score and one
// overall status. At most one row exists per match (upsert semantics).
type ComparisonSummary struct {
	ID                string             `json:"id" db:"id"`
	MatchID           string             `json:"match_id" db:"match_id"`
	AverageSimilarity float64            `json:"average_similarity" db:"average_similarity"`
	OverallStatus     VerificationStatus `json:"overall_verification_status" db:"overall_verification_status"`
	CreatedAt         time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at" db:"updated_at"`
}

// ComparisonReport composes a match with its summary and ordered field
// results for external presentation. It is derived, never persisted. Summary
// is nil when the match has not been compared yet.
type ComparisonReport struct {
	Match   CandidateMatch     `json:"match"`
	Summary *ComparisonSummary `json:"summary,omitempty"`
	Results []ComparisonResult `json:"results"`
}

// FieldType describes how a field's values are compared.
type FieldType string

const (
	FieldTypeText    FieldType = "text"
	FieldTypeNumeric FieldType = "numeric"
)

// FieldSpec names a comparable field and how to score it. ScaleMax is the
// grading scale span for numeric fields (e.g. 20 for a 0-20 scale).
type FieldSpec struct {
	Name     string    `json:"name"`
	Type     FieldType `json:"type"`
	ScaleMax float64   `json:"scale_max,omitempty"`
}

// GenerateMatchesRequest is the request to run identity matching for a file pair.
type GenerateMatchesRequest struct {
	SourceFileID     int64            `json:"source_file_id" validate:"required"`
	TargetFileID     int64            `json:"target_file_id" validate:"required"`
	SourceIdentities []IdentityRecord `json:"source_identities" validate:"required"`
	TargetIdentities []IdentityRecord `json:"target_identities" validate:"required"`
}

// CompareFieldsRequest is the request to compare and summarize one match.
type CompareFieldsRequest struct {
	DeclaredFields      map[string]string `json:"declared_fields" validate:"required"`
	AuthoritativeFields map[string]string `json:"authoritative_fields" validate:"required"`
}

// ProcessFilePairsRequest is the request to run matching across a set of file
// pairs resolved by the caller (e.g. every declared file of a program against
// every authoritative file).
type ProcessFilePairsRequest struct {
	Pairs []FilePair `json:"pairs" validate:"required,dive"`
}
