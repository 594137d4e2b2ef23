package main

import (
	"fmt"

	"github.com/jonathan/skillboard/internal/server"
	"github.com/spf13/cobra"
)

var (
	serveSource sourceFlags
	servePort   int
	serveTitle  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Start an HTTP server that renders the skill board and answers filter selections with updated regions.`,
	RunE:  runServe,
}

func init() {
	serveSource.register(serveCmd)
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default 8080)")
	serveCmd.Flags().StringVar(&serveTitle, "title", "", "Page title")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := serveSource.settings()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}
	if serveTitle != "" {
		cfg.Title = serveTitle
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	source, closeSource, err := openSource(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer closeSource()

	renderer, err := newRenderer(cfg, logger)
	if err != nil {
		return err
	}

	srv, err := server.New(server.Config{
		Port:     cfg.Port,
		Title:    cfg.Title,
		Source:   source,
		Renderer: renderer,
		Logger:   logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
