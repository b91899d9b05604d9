package db

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchema_DefinesTables(t *testing.T) {
	schema := Schema()

	for _, table := range []string{"job_descriptions", "resumes", "analysis_results"} {
		assert.Contains(t, schema, "CREATE TABLE IF NOT EXISTS "+table)
	}
	assert.Contains(t, schema, "score >= 0 AND score <= 1")
}

func TestColumnLists_MatchScanOrder(t *testing.T) {
	// Scan targets are positional; the column lists must stay in step.
	assert.Equal(t, 10, len(strings.Split(analysisColumns, ",")))
	assert.Equal(t, 7, len(strings.Split(jobColumns, ",")))
}
