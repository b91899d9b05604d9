package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/resume-analyzer/internal/types"
)

const jobColumns = `id, title, description, required_skills, preferred_skills,
	experience_level, created_at`

// CreateJob inserts a job description
func (db *DB) CreateJob(ctx context.Context, j *types.JobDescription) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO job_descriptions (`+jobColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		j.ID, j.Title, j.Description, j.RequiredSkills, j.PreferredSkills,
		j.ExperienceLevel, j.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create job description: %w", err)
	}
	return nil
}

// GetJob retrieves a job description by ID
func (db *DB) GetJob(ctx context.Context, id uuid.UUID) (*types.JobDescription, error) {
	j, err := scanJob(db.pool.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM job_descriptions WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job description: %w", err)
	}
	return j, nil
}

// ListJobs retrieves all job descriptions, newest first
func (db *DB) ListJobs(ctx context.Context) ([]types.JobDescription, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+jobColumns+` FROM job_descriptions ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list job descriptions: %w", err)
	}
	defer rows.Close()

	jobs := []types.JobDescription{}
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job description: %w", err)
		}
		jobs = append(jobs, *j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list job descriptions: %w", err)
	}
	return jobs, nil
}

// UpdateJob overwrites the editable fields of a job description
func (db *DB) UpdateJob(ctx context.Context, j *types.JobDescription) (bool, error) {
	result, err := db.pool.Exec(ctx,
		`UPDATE job_descriptions
		 SET title = $2, description = $3, required_skills = $4,
		     preferred_skills = $5, experience_level = $6
		 WHERE id = $1`,
		j.ID, j.Title, j.Description, j.RequiredSkills, j.PreferredSkills, j.ExperienceLevel,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update job description: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

// DeleteJob deletes a job description and reports whether it existed
func (db *DB) DeleteJob(ctx context.Context, id uuid.UUID) (bool, error) {
	result, err := db.pool.Exec(ctx, `DELETE FROM job_descriptions WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete job description: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

func scanJob(row pgx.Row) (*types.JobDescription, error) {
	var j types.JobDescription
	err := row.Scan(&j.ID, &j.Title, &j.Description, &j.RequiredSkills, &j.PreferredSkills,
		&j.ExperienceLevel, &j.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &j, nil
}
