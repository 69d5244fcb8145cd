package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"tradepulse/internal/config"
	"tradepulse/internal/pipeline"
)

func main() {
	configFile := flag.String("config", "", "path to yaml config file (optional)")
	importsFile := flag.String("imports", "", "monthly wide-format imports table (csv or xlsx)")
	exportsFile := flag.String("exports", "", "monthly wide-format exports table (csv or xlsx)")
	outDir := flag.String("out", "", "output directory for snapshot files")
	flag.Parse()

	// A missing .env file is fine; explicit env vars still apply.
	_ = godotenv.Load()

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Flags override both file and environment.
	if *importsFile != "" {
		cfg.Paths.ImportsFile = *importsFile
	}
	if *exportsFile != "" {
		cfg.Paths.ExportsFile = *exportsFile
	}
	if *outDir != "" {
		cfg.Paths.OutputDir = *outDir
	}

	logger := cfg.Logger(os.Stderr)
	slog.SetDefault(logger)

	if err := os.MkdirAll(cfg.Paths.OutputDir, 0o755); err != nil {
		logger.Error("Failed to create output directory",
			"dir", cfg.Paths.OutputDir, "error", err)
		os.Exit(1)
	}

	result, err := pipeline.New(cfg, logger).Run(context.Background())
	if err != nil {
		logger.Error("Pipeline run failed", "error", err)
		os.Exit(1)
	}

	logger.Info("Pipeline run complete",
		"run_id", result.RunID,
		"snapshot", result.SnapshotPath,
		"records", result.RecordCount,
		"years", result.YearRange,
		"emerging_partners", len(result.Emerging))
}
