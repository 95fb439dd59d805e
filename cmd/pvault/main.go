// Package main provides the pvault CLI entry point.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/matsen/promptvault/internal/config"
	"github.com/matsen/promptvault/internal/storage"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	// humanOutput controls whether to use human-readable output
	humanOutput bool
	verbose     bool
	logger      = slog.Default()
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pvault",
	Short: "Agent-first prompt library",
	Long: `pvault is an agent-first CLI for managing a library of reusable prompts.

Prompts live in an embedded SQLite database and are backed up to a
git-versionable JSONL file. All commands output JSON by default
for easy integration with AI agents and other tools.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	},
}

func init() {
	// Load .env file if present (for PVAULT_ROOT)
	_ = godotenv.Load()

	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")
	rootCmd.Version = Version
}

// getStartingDirectory returns the directory to start searching for a vault.
// PVAULT_ROOT takes precedence over the working directory.
func getStartingDirectory() (string, int) {
	if root := os.Getenv("PVAULT_ROOT"); root != "" {
		return config.ExpandPath(root), 0
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", outputError(ExitError, "getting current directory: %v", err)
	}
	return cwd, 0
}

// mustFindVault finds the vault, exits on error. Falls back to the global
// vault_path when the starting directory is not inside a vault.
// Returns the vault root path.
func mustFindVault() string {
	start, exitCode := getStartingDirectory()
	if exitCode != 0 {
		os.Exit(exitCode)
	}

	root, err := config.FindVault(start)
	if err == nil {
		return root
	}

	root, globalErr := config.ValidateVaultPath()
	if globalErr != nil {
		logger.Debug("no vault found", "start", start, "err", err, "global_err", globalErr)
		fmt.Fprintln(os.Stderr, config.HelpfulConfigMessage())
		os.Exit(ExitConfigError)
	}
	return root
}

// mustOpenDatabase opens the SQLite database, exits on error.
// The caller is responsible for calling Close() on the returned DB.
func mustOpenDatabase(root string) *storage.DB {
	db, err := storage.OpenDB(config.DBPath(root))
	if err != nil {
		exitWithError(ExitError, "opening database: %v", err)
	}
	return db
}

// mustLoadConfig loads configuration, exits on error.
func mustLoadConfig(root string) *config.Config {
	cfg, err := config.Load(root)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	return cfg
}
