package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-analyzer/internal/config"
	"github.com/jonathan/resume-analyzer/internal/server"
	"github.com/jonathan/resume-analyzer/internal/server/ratelimit"
)

func newServeCmd(a *app) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		Long:  `Start an HTTP server that exposes the analysis, job description, and resume endpoints.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("port") {
				a.cfg.Server.Port = port
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, a)
		},
	}

	cmd.Flags().IntVar(&port, "port", 8080, "Port to listen on (overrides config)")
	return cmd
}

func runServe(ctx context.Context, a *app) error {
	cfg, logger := a.cfg, a.logger

	st, err := openStore(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	extractor, cleanup, err := buildExtractor(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup.Close()

	srv := server.New(serverConfig(cfg), st, buildOrchestrator(extractor, st, cfg, logger), logger)
	return srv.Start(ctx)
}

func serverConfig(cfg *config.Config) server.Config {
	return server.Config{
		Port:            cfg.Server.Port,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		CORSOrigins:     cfg.Server.CORSOrigins,
		MaxUploadBytes:  cfg.Server.MaxUploadBytes,
		RateLimit:       rateLimitConfig(cfg.RateLimit),
	}
}

func rateLimitConfig(rl config.RateLimitConfig) *ratelimit.Config {
	out := ratelimit.DefaultConfig()
	out.Enabled = rl.Enabled
	out.DefaultLimit = rl.DefaultLimit
	out.DefaultWindow = rl.DefaultWindow
	out.Whitelist = ratelimit.NewIPSet(rl.Whitelist)
	out.Blacklist = ratelimit.NewIPSet(rl.Blacklist)

	out.EndpointConfigs = make([]ratelimit.EndpointConfig, 0, len(rl.Endpoints))
	for _, ep := range rl.Endpoints {
		out.EndpointConfigs = append(out.EndpointConfigs, ratelimit.EndpointConfig{
			Path:   ep.Path,
			Method: ep.Method,
			Limit:  ep.Limit,
			Window: ep.Window,
			Burst:  ep.Burst,
		})
	}
	return out
}
