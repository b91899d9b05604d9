package main

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/jonathan/resume-analyzer/internal/analysis"
	"github.com/jonathan/resume-analyzer/internal/config"
	"github.com/jonathan/resume-analyzer/internal/db"
	"github.com/jonathan/resume-analyzer/internal/extraction"
	"github.com/jonathan/resume-analyzer/internal/feedback"
	"github.com/jonathan/resume-analyzer/internal/llm"
	"github.com/jonathan/resume-analyzer/internal/skills"
	"github.com/jonathan/resume-analyzer/internal/store"
	"github.com/jonathan/resume-analyzer/internal/store/memory"
)

// classifierKind is the document description given to the classifier prompt.
const classifierKind = "resume or job description"

// closers releases resources in reverse order of acquisition.
type closers []func()

func (c closers) Close() {
	for i := len(c) - 1; i >= 0; i-- {
		c[i]()
	}
}

// openStore connects to Postgres when a URL is configured and applies the
// schema; otherwise it returns an in-memory store.
func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (store.Store, error) {
	if cfg.Database.URL == "" {
		logger.Info("no database configured, using in-memory store")
		return memory.New(), nil
	}

	database, err := db.Connect(ctx, cfg.Database.URL)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(ctx); err != nil {
		database.Close()
		return nil, err
	}
	logger.Info("connected to database")
	return database, nil
}

// buildExtractor assembles the classifier chain: Gemini when an API key is
// set, wrapped by the Redis cache when an address is set.
func buildExtractor(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*extraction.Extractor, closers, error) {
	var cleanup closers
	opts := []extraction.Option{
		extraction.WithTimeout(cfg.Classifier.Timeout),
		extraction.WithLogger(logger),
	}

	if cfg.Vocabulary.File != "" {
		vocab, err := skills.LoadVocabulary(cfg.Vocabulary.File)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, extraction.WithVocabulary(vocab))
		logger.Info("loaded vocabulary", zap.Int("terms", vocab.Len()))
	}

	if cfg.Classifier.APIKey == "" {
		logger.Warn("no classifier API key configured, every extraction will use the vocabulary")
		return extraction.NewExtractor(nil, opts...), cleanup, nil
	}

	tier := llm.ParseTier(cfg.Classifier.Tier)
	llmConfig := llm.DefaultConfig()
	if cfg.Classifier.Model != "" {
		llmConfig = llmConfig.WithModel(tier, cfg.Classifier.Model)
	}
	client, err := llm.NewClient(ctx, llmConfig, cfg.Classifier.APIKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create classifier client: %w", err)
	}
	cleanup = append(cleanup, func() { _ = client.Close() })

	llmClassifier, err := extraction.NewLLMClassifier(client, tier, classifierKind, logger)
	if err != nil {
		cleanup.Close()
		return nil, nil, err
	}
	var classifier extraction.Classifier = llmClassifier

	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		cleanup = append(cleanup, func() { _ = rdb.Close() })
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unreachable, cache lookups will miss", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		}
		classifier = extraction.NewCachedClassifier(classifier, rdb, cfg.Redis.TTL, logger)
	}

	logger.Info("skill classifier enabled",
		zap.String("model", client.GetModel(tier)),
		zap.Duration("timeout", cfg.Classifier.Timeout),
		zap.Bool("cache", cfg.Redis.Addr != ""),
	)
	return extraction.NewExtractor(classifier, opts...), cleanup, nil
}

// buildOrchestrator wires the extractor and store into an Orchestrator.
func buildOrchestrator(extractor analysis.Extractor, st analysis.Store, cfg *config.Config, logger *zap.Logger) *analysis.Orchestrator {
	return analysis.NewOrchestrator(extractor, st,
		analysis.WithComposer(feedback.NewComposer(cfg.Feedback)),
		analysis.WithLogger(logger),
	)
}
