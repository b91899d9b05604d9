package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// SaveResume inserts an uploaded resume
func (db *DB) SaveResume(ctx context.Context, r *types.Resume) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO resumes (id, content, file_name, content_type, file_size, upload_date)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		r.ID, r.Content, r.FileName, r.ContentType, r.FileSize, r.UploadDate,
	)
	if err != nil {
		return fmt.Errorf("failed to save resume: %w", err)
	}
	return nil
}

// GetResume retrieves a resume by ID
func (db *DB) GetResume(ctx context.Context, id uuid.UUID) (*types.Resume, error) {
	var r types.Resume
	err := db.pool.QueryRow(ctx,
		`SELECT id, content, file_name, content_type, file_size, upload_date
		 FROM resumes WHERE id = $1`,
		id,
	).Scan(&r.ID, &r.Content, &r.FileName, &r.ContentType, &r.FileSize, &r.UploadDate)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	return &r, nil
}

// DeleteResume deletes a resume and reports whether it existed
func (db *DB) DeleteResume(ctx context.Context, id uuid.UUID) (bool, error) {
	result, err := db.pool.Exec(ctx, `DELETE FROM resumes WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete resume: %w", err)
	}
	return result.RowsAffected() > 0, nil
}
