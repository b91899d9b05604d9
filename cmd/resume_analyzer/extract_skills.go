package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-analyzer/internal/extraction"
	"github.com/jonathan/resume-analyzer/internal/ingestion"
	"github.com/jonathan/resume-analyzer/internal/observability"
	"github.com/jonathan/resume-analyzer/internal/skills"
)

// extractOutput is the JSON form of an extraction outcome.
type extractOutput struct {
	Skills skills.SkillSet       `json:"skills"`
	Source extraction.Diagnostic `json:"extraction"`
}

func newExtractSkillsCmd(a *app) *cobra.Command {
	var (
		inputPath string
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "extract-skills",
		Short: "Extract skills from one resume or job description file",
		Long:  "Run skill extraction on a single file and report the skills and whether they came from the classifier or the vocabulary.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			doc, err := ingestion.ExtractFile(inputPath)
			if err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}

			extractor, cleanup, err := buildExtractor(ctx, a.cfg, a.logger)
			if err != nil {
				return err
			}
			defer cleanup.Close()

			outcome := extractor.Extract(ctx, doc.Text)

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(extractOutput{Skills: outcome.Skills(), Source: extraction.Describe(outcome)})
			}
			observability.NewPrinter(cmd.OutOrStdout()).PrintOutcome("EXTRACTED SKILLS", outcome)
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "in", "i", "", "Path to the input file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the outcome as JSON")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}
