// Package main provides the entry point for the resume analyzer CLI and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-analyzer/internal/config"
	"github.com/jonathan/resume-analyzer/internal/logging"
)

// app carries state shared by every subcommand once the root has loaded it.
type app struct {
	configPath string
	logJSON    bool
	debug      bool

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "resume_analyzer",
		Short:         "Resume Analyzer HTTP API Server",
		Long:          "Resume Analyzer extracts skills from resumes and job descriptions, scores the match, and writes feedback.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to a YAML or JSON config file")
	rootCmd.PersistentFlags().BoolVar(&a.logJSON, "log-json", false, "Emit logs as JSON")
	rootCmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(
		newServeCmd(a),
		newAnalyzeCmd(a),
		newExtractSkillsCmd(a),
		newMigrateCmd(a),
	)
	return rootCmd
}

// load reads configuration and builds the logger. Flags override the file.
func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-json") {
		cfg.Log.JSON = a.logJSON
	}
	if cmd.Flags().Changed("debug") {
		cfg.Log.Debug = a.debug
	}

	logger, err := logging.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	a.cfg = cfg
	a.logger = logger
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
