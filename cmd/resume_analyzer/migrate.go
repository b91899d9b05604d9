package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-analyzer/internal/db"
)

func newMigrateCmd(a *app) *cobra.Command {
	var printOnly bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema",
		Long:  "Create the job_descriptions, resumes, and analysis_results tables if they do not exist.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if printOnly {
				_, err := fmt.Fprint(cmd.OutOrStdout(), db.Schema())
				return err
			}
			if a.cfg.Database.URL == "" {
				return fmt.Errorf("database URL is required (set DATABASE_URL or database.url)")
			}

			ctx := cmd.Context()
			database, err := db.Connect(ctx, a.cfg.Database.URL)
			if err != nil {
				return err
			}
			defer database.Close()

			if err := database.Migrate(ctx); err != nil {
				return err
			}
			a.logger.Info("schema applied")
			return nil
		},
	}

	cmd.Flags().BoolVar(&printOnly, "print", false, "Print the schema instead of applying it")
	return cmd
}
