package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/resume-analyzer/internal/types"
)

const analysisColumns = `id, resume_id, job_description_id, job_title, company, score,
	strengths, weaknesses, recommendations, created_at`

// SaveAnalysis inserts an analysis result. Results are never updated.
func (db *DB) SaveAnalysis(ctx context.Context, r *types.AnalysisResult) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO analysis_results (`+analysisColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		r.ID, r.ResumeID, r.JobID, r.JobTitle, r.Company, r.Score,
		r.Strengths, r.Weaknesses, r.Recommendations, r.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}
	return nil
}

// GetAnalysis retrieves an analysis result by ID
func (db *DB) GetAnalysis(ctx context.Context, id uuid.UUID) (*types.AnalysisResult, error) {
	r, err := scanAnalysis(db.pool.QueryRow(ctx,
		`SELECT `+analysisColumns+` FROM analysis_results WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}
	return r, nil
}

// ListAnalyses retrieves all analysis results, newest first
func (db *DB) ListAnalyses(ctx context.Context) ([]types.AnalysisResult, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+analysisColumns+` FROM analysis_results ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	results := []types.AnalysisResult{}
	for rows.Next() {
		r, err := scanAnalysis(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		results = append(results, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	return results, nil
}

// DeleteAnalysis deletes an analysis result and reports whether it existed
func (db *DB) DeleteAnalysis(ctx context.Context, id uuid.UUID) (bool, error) {
	result, err := db.pool.Exec(ctx, `DELETE FROM analysis_results WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete analysis: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

func scanAnalysis(row pgx.Row) (*types.AnalysisResult, error) {
	var r types.AnalysisResult
	err := row.Scan(&r.ID, &r.ResumeID, &r.JobID, &r.JobTitle, &r.Company, &r.Score,
		&r.Strengths, &r.Weaknesses, &r.Recommendations, &r.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}
