package main

import (
	"fmt"

	"github.com/jonathan/skillboard/internal/config"
	"github.com/jonathan/skillboard/internal/db"
	"github.com/jonathan/skillboard/internal/ingestion"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a dataset into PostgreSQL",
	Long: "Loads a dataset file or URL, applies the database schema and replaces the stored " +
		"skill groups of --character with it. Each import is recorded as a batch.",
	RunE: runImport,
}

var importSource sourceFlags

func init() {
	importSource.register(importCmd)
	if err := importCmd.MarkFlagRequired("dataset"); err != nil {
		panic(fmt.Sprintf("failed to mark dataset flag as required: %v", err))
	}
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, _ []string) error {
	// Import needs both a dataset and a database, so the flags are merged by hand.
	fileCfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg := config.Config{
		DatabaseURL: importSource.dbURL,
		CharacterID: importSource.characterID,
	}
	cfg = cfg.MergeWithDefaults(*fileCfg)
	cfg.Verbose = verbose || fileCfg.Verbose
	cfg.Dataset = ""
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("--db-url or DATABASE_URL is required")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := newLogger(&cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx := cmd.Context()
	dataset, meta, err := ingestion.Load(ctx, importSource.dataset)
	if err != nil {
		return err
	}

	if err := db.RunMigrations(ctx, cfg.DatabaseURL); err != nil {
		return err
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	batch, err := database.SaveDataset(ctx, &db.ImportInput{
		CharacterID: cfg.CharacterID,
		Source:      meta.Source,
		ContentHash: meta.Hash,
		Dataset:     dataset,
	})
	if err != nil {
		return err
	}

	logger.Info("dataset imported",
		zap.String("batch_id", batch.ID.String()),
		zap.Int64("character_id", batch.CharacterID),
		zap.Int("groups", batch.GroupCount),
		zap.Int("skills", batch.SkillCount))

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d groups (%d skills) for character %d as batch %s\n",
		batch.GroupCount, batch.SkillCount, batch.CharacterID, batch.ID)
	return err
}
