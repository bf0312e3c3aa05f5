// Package main is the entry point for the kairos task planner CLI.
package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kairosplan/kairos/internal/config"
	"github.com/kairosplan/kairos/internal/ranking"
	"github.com/kairosplan/kairos/internal/store"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	configPath string
	verbose    bool

	logger   *zap.Logger
	cfg      *config.Config
	registry *ranking.Holder
	db       *sql.DB
)

var rootCmd = &cobra.Command{
	Use:           "kairos",
	Short:         "kairos - domain-aware task ranking and daily planning",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" {
			return nil
		}

		// Resolve config path: --config flag > KAIROS_CONFIG env > next to the exe.
		path := configPath
		if path == "" {
			path = os.Getenv("KAIROS_CONFIG")
		}
		if path == "" {
			path = discoverConfig()
		}
		if path == "" {
			return fmt.Errorf("no config found: place config.yaml next to the exe, use --config <path>, or set KAIROS_CONFIG")
		}

		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		logger, err = newLogger(cfg.LogLevel, verbose)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		reg, err := ranking.NewRegistry(cfg.DomainWeights(), cfg.MaxDomainTasks)
		if err != nil {
			return err
		}
		registry = ranking.NewHolder(reg)

		db, err = store.NewDB(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}

		logger.Debug("engine ready",
			zap.String("config", path),
			zap.String("db", cfg.DBPath),
			zap.Int("max_domain_tasks", cfg.MaxDomainTasks))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if db != nil {
			db.Close()
		}
		if logger != nil {
			logger.Sync()
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("kairos %s (commit=%s, built=%s)\n", version, commit, date)
	},
}

func newLogger(level string, verbose bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", level, err)
	}
	if verbose {
		lvl = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.OutputPaths = []string{"stderr"}
	return zc.Build()
}

// discoverConfig looks for config.yaml next to the executable.
func discoverConfig() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	candidate := filepath.Join(filepath.Dir(exe), "config.yaml")
	if _, err := os.Stat(candidate); err != nil {
		return ""
	}
	return candidate
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to configuration YAML file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(rankCmd)
	rootCmd.AddCommand(nextCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(reportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
