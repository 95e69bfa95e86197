package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/learnpath/internal/config"
	"github.com/abhisek/learnpath/internal/logger"
	"github.com/abhisek/learnpath/internal/store"
)

// Settings resolved by setup before any command runs.
var (
	cfg config.Config
	log *logger.Logger
)

var rootCmd = &cobra.Command{
	Use:   "learnpath",
	Short: "Build ordered learning paths from a module catalog",
	Long: `learnpath turns a learner's known topics and a goal into an ordered list of
modules in which every prerequisite comes first.

Without a subcommand it opens the interactive catalog browser.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			log.Sync()
		}
	},
	RunE: runBrowse,
}

// Execute runs the root command until it finishes or the process is interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite database file (overrides LEARNPATH_DB)")
	pf.String("catalog", "", "Catalog file (YAML or JSON) for the memory source and import")
	pf.String("source", "", "Knowledge source: memory, sqlite or neo4j (overrides LEARNPATH_SOURCE)")
	pf.String("log-level", "", "Minimum log level: debug, info, warn or error")
	pf.String("env-file", ".env", "Environment file loaded before reading settings")

	rootCmd.AddCommand(pathCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup loads .env and the environment, applies flag overrides and builds
// the logger.
func setup(cmd *cobra.Command, args []string) error {
	envFile, _ := cmd.Flags().GetString("env-file")
	if err := config.LoadDotEnv(envFile); err != nil {
		return err
	}

	cfg = config.ConfigFromEnv()
	if v, _ := cmd.Flags().GetString("db"); v != "" {
		cfg.DB = v
	}
	if v, _ := cmd.Flags().GetString("catalog"); v != "" {
		cfg.Catalog = v
	}
	if v, _ := cmd.Flags().GetString("source"); v != "" {
		cfg.Source = v
	}
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.LogLevel = v
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	l, err := logger.NewWithLevel(cfg.LogMode, cfg.LogLevel)
	if err != nil {
		return err
	}
	log = l
	return nil
}

// resolveDBPath returns the database path from --db or LEARNPATH_DB, then the
// default XDG path.
func resolveDBPath() (string, error) {
	if cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}

// openStore opens the SQLite store at the resolved path.
func openStore() (*store.Store, error) {
	dbPath, err := resolveDBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}
