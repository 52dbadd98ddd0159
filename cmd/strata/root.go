package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/stratadocs/strata/internal/classify"
	"github.com/stratadocs/strata/internal/config"
	"github.com/stratadocs/strata/internal/home"
	"github.com/stratadocs/strata/internal/providers"
	"github.com/stratadocs/strata/internal/store"
	"github.com/stratadocs/strata/internal/svcctx"
	"github.com/stratadocs/strata/version"
)

var (
	cfgFile      string
	homeDir      string
	outputFormat string
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "strata",
	Short: "Document structure extraction for semi-structured technical reports",
	Long: `Strata recovers the hierarchical structure of technical reports --
section numbers, titles, and page locations -- from unreliable renderings,
and tags content chunks with their owning section for structure-aware
retrieval.

The pipeline includes:
  - TOC region detection in a document's leading pages
  - Tiered extraction: text parsing, vision transcription, LLM reconstruction
  - Rule-based validation producing honest page bounds
  - Closed-taxonomy section classification
  - Section-tagged chunk splitting and persistence`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.strata/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "strata home directory (default: ~/.strata)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&verbose, "verbose", "v", false, "enable debug logging",
	)

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(structureCmd)
	rootCmd.AddCommand(chunksCmd)
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// loadServices wires the service set used by the data commands. The home
// directory must exist; run "strata init" first.
func loadServices() (*svcctx.Services, error) {
	logger := newLogger()

	dir, err := home.New(homeDir)
	if err != nil {
		return nil, err
	}
	if !dir.Exists() {
		return nil, fmt.Errorf("home directory %s does not exist, run 'strata init' first", dir.Path())
	}

	cfgPath := cfgFile
	if cfgPath == "" && dir.ConfigExists() {
		cfgPath = dir.ConfigPath()
	}
	manager, err := config.NewManager(cfgPath)
	if err != nil {
		return nil, err
	}

	registry := providers.NewRegistry()
	registry.SetLogger(logger)
	if err := registry.ApplyConfig(manager.Get().ToProviderRegistryConfig()); err != nil {
		return nil, err
	}
	manager.OnChange(func(cfg *config.Config) {
		if err := registry.ApplyConfig(cfg.ToProviderRegistryConfig()); err != nil {
			logger.Warn("failed to apply provider config change", "error", err)
		}
	})
	manager.WatchConfig()

	db, err := store.Open(dir.DatabasePath())
	if err != nil {
		return nil, err
	}

	classifierCfg := manager.Get().Classifier
	var table *classify.LookupTable
	if classifierCfg.TablePath != "" {
		table, err = classify.LoadTable(classifierCfg.TablePath)
		if err != nil {
			db.Close()
			return nil, err
		}
	}
	rules := classify.DefaultRules()
	if classifierCfg.RulesPath != "" {
		rules, err = classify.LoadRules(classifierCfg.RulesPath)
		if err != nil {
			db.Close()
			return nil, err
		}
	}

	return &svcctx.Services{
		Config:     manager,
		Registry:   registry,
		Store:      db,
		Classifier: classify.New(table, rules, logger),
		Logger:     logger,
		Home:       dir,
	}, nil
}
