package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-analyzer/internal/ingestion"
	"github.com/jonathan/resume-analyzer/internal/observability"
	"github.com/jonathan/resume-analyzer/internal/store/memory"
	"github.com/jonathan/resume-analyzer/internal/types"
)

func newAnalyzeCmd(a *app) *cobra.Command {
	var (
		resumePath string
		jobPath    string
		jobTitle   string
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Score a resume file against a job description file",
		Long:  "Run one analysis locally against an in-memory store and print the score, both skill sets, and feedback.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			resumeDoc, err := ingestion.ExtractFile(resumePath)
			if err != nil {
				return fmt.Errorf("failed to read resume: %w", err)
			}
			jobDoc, err := ingestion.ExtractFile(jobPath)
			if err != nil {
				return fmt.Errorf("failed to read job description: %w", err)
			}

			st := memory.New()
			now := time.Now().UTC()
			resume := &types.Resume{
				ID:          uuid.New(),
				Content:     resumeDoc.Text,
				FileName:    filepath.Base(resumePath),
				ContentType: resumeDoc.ContentType,
				FileSize:    resumeDoc.Size,
				UploadDate:  now,
			}
			if jobTitle == "" {
				jobTitle = strings.TrimSuffix(filepath.Base(jobPath), filepath.Ext(jobPath))
			}
			job := &types.JobDescription{
				ID:          uuid.New(),
				Title:       jobTitle,
				Description: jobDoc.Text,
				CreatedAt:   now,
			}
			if err := st.SaveResume(ctx, resume); err != nil {
				return err
			}
			if err := st.CreateJob(ctx, job); err != nil {
				return err
			}

			extractor, cleanup, err := buildExtractor(ctx, a.cfg, a.logger)
			if err != nil {
				return err
			}
			defer cleanup.Close()

			resp, err := buildOrchestrator(extractor, st, a.cfg, a.logger).Analyze(ctx, resume.ID, job.ID)
			if err != nil {
				return fmt.Errorf("analysis failed: %w", err)
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(resp)
			}
			observability.NewPrinter(cmd.OutOrStdout()).PrintAnalysis(resp)
			return nil
		},
	}

	cmd.Flags().StringVarP(&resumePath, "resume", "r", "", "Path to the resume file (.txt, .md, .html)")
	cmd.Flags().StringVarP(&jobPath, "job", "j", "", "Path to the job description file")
	cmd.Flags().StringVar(&jobTitle, "title", "", "Job title (defaults to the job file name)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the response as JSON")
	_ = cmd.MarkFlagRequired("resume")
	_ = cmd.MarkFlagRequired("job")
	return cmd
}
