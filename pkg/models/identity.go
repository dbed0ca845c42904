package models

// IdentityRecord is a canonical person record produced by the identity
// normalizer for one side of a matching run. Records are ephemeral; only the
// resulting matches are persisted.
type IdentityRecord struct {
	ID          int64  `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DateOfBirth string `json:"date_of_birth"` // ISO date (YYYY-MM-DD), empty when unknown
}

// HasDateOfBirth reports whether the record carries a usable date of birth.
func (r IdentityRecord) HasDateOfBirth() bool {
	return r.DateOfBirth != ""
}

// MatchedPair is one accepted assignment between a declared and an
// authoritative identity, with the composite score that produced it.
type MatchedPair struct {
	Source    IdentityRecord `json:"source"`
	Target    IdentityRecord `json:"target"`
	Score     float64        `json:"score"`
	NameScore float64        `json:"name_score"`
}

// FilePair identifies one declared/authoritative file combination within a
// program-wide run.
type FilePair struct {
	SourceFileID int64 `json:"source_file_id" validate:"required"`
	TargetFileID int64 `json:"target_file_id" validate:"required"`
}

// FilePairResult records the outcome of processing a single file pair in a
// batch run. Failures are isolated per pair and never abort the batch.
type FilePairResult struct {
	SourceFileID int64  `json:"source_file_id"`
	TargetFileID int64  `json:"target_file_id"`
	MatchCount   int    `json:"match_count"`
	Success      bool   `json:"success"`
	Error        string `json:"error,omitempty"`
}
