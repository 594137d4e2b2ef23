package main

import (
	"context"
	"fmt"

	"github.com/jonathan/skillboard/internal/config"
	"github.com/jonathan/skillboard/internal/db"
	"github.com/jonathan/skillboard/internal/ingestion"
	"github.com/jonathan/skillboard/internal/observability"
	"github.com/jonathan/skillboard/internal/rendering"
	"github.com/jonathan/skillboard/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// sourceFlags are the dataset flags shared by serve, render and import.
type sourceFlags struct {
	dataset     string
	dbURL       string
	characterID int64
	templates   string
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.dataset, "dataset", "d", "", "Path or URL of a JSON/YAML skill group dataset")
	cmd.Flags().StringVar(&f.dbURL, "db-url", "", "PostgreSQL connection URL (default $DATABASE_URL)")
	cmd.Flags().Int64Var(&f.characterID, "character", 0, "Character id whose skills are stored in the database")
	cmd.Flags().StringVar(&f.templates, "templates", "", "Directory of templates replacing the built-in ones")
}

// settings merges command-line flags over the config file and environment.
func (f *sourceFlags) settings() (*config.Config, error) {
	fileCfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// A source given on the command line replaces whichever source the config named.
	if f.dataset != "" {
		fileCfg.DatabaseURL = ""
	}
	if f.dbURL != "" {
		fileCfg.Dataset = ""
	}

	flagCfg := config.Config{
		Dataset:     f.dataset,
		DatabaseURL: f.dbURL,
		CharacterID: f.characterID,
		Templates:   f.templates,
		Verbose:     verbose,
	}
	cfg := flagCfg.MergeWithDefaults(*fileCfg)
	cfg.Verbose = verbose || fileCfg.Verbose

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// newLogger builds the process logger for cfg.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return observability.NewLogger(cfg.Verbose)
}

// newRenderer loads the configured templates, or the built-in ones.
func newRenderer(cfg *config.Config, logger *zap.Logger) (*rendering.Renderer, error) {
	if cfg.Templates != "" {
		return rendering.NewRendererFromDir(cfg.Templates, logger)
	}
	return rendering.NewRenderer(logger)
}

// openSource opens the dataset named by cfg. The returned close function is never nil.
func openSource(ctx context.Context, cfg *config.Config, logger *zap.Logger) (server.DatasetSource, func(), error) {
	switch {
	case cfg.DatabaseURL != "":
		if err := db.RunMigrations(ctx, cfg.DatabaseURL); err != nil {
			return nil, func() {}, err
		}
		version, err := db.SchemaVersion(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, func() {}, err
		}
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, func() {}, err
		}
		fields := []zap.Field{
			zap.Int64("character_id", cfg.CharacterID),
			zap.Int64("schema_version", version),
		}
		latest, err := database.LatestImport(ctx, cfg.CharacterID)
		if err != nil {
			database.Close()
			return nil, func() {}, err
		}
		if latest != nil {
			fields = append(fields,
				zap.String("batch_id", latest.ID.String()),
				zap.Time("imported_at", latest.CreatedAt))
		} else {
			logger.Warn("no import recorded for character", zap.Int64("character_id", cfg.CharacterID))
		}
		logger.Info("reading skills from database", fields...)
		return database.Source(cfg.CharacterID), database.Close, nil

	case cfg.Dataset != "":
		dataset, meta, err := ingestion.Load(ctx, cfg.Dataset)
		if err != nil {
			return nil, func() {}, err
		}
		logger.Info("loaded dataset",
			zap.String("source", meta.Source),
			zap.Int("groups", meta.Groups),
			zap.Int("skills", meta.Skills),
			zap.String("hash", meta.Hash))
		return server.NewStaticSource(dataset), func() {}, nil

	default:
		return nil, func() {}, fmt.Errorf("a dataset is required: use --dataset or --db-url (or set DATABASE_URL)")
	}
}
