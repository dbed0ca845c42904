package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertBuilder_OnConflictDoNothing(t *testing.T) {
	ib := NewInsertBuilder()
	ib.InsertInto("candidate_matches")
	ib.Cols("id", "match_score")
	ib.Values("m1", 0.9)
	ib.Values("m2", 0.8)
	ib.OnConflictDoNothing()

	sql, args := ib.Build()
	assert.Contains(t, sql, "INSERT INTO candidate_matches")
	assert.Contains(t, sql, "ON CONFLICT DO NOTHING")
	require.Len(t, args, 4)
	assert.Equal(t, "m1", args[0])
}

func TestInsertBuilder_OnConflictUpdate(t *testing.T) {
	ib := NewInsertBuilder()
	ib.InsertInto("comparison_summaries")
	ib.Cols("id", "match_id", "average_similarity")
	ib.Values("s1", "m1", 0.95)

	ub := ib.OnConflict("match_id")
	ub.Set(ub.Assign("average_similarity", Excluded("average_similarity")))

	sql, _ := ib.Build()
	assert.Contains(t, sql, "ON CONFLICT (match_id) DO UPDATE")
	assert.Contains(t, sql, "EXCLUDED.average_similarity")
}
