package main

import (
	"fmt"

	"github.com/cdrkit/dfextract/internal/ioconfig"
	pkgconfig "github.com/cdrkit/dfextract/pkg/config"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	cfg     *pkgconfig.Config
)

func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dfextract",
		Short: "dfextract builds dataset files from an i2b2 warehouse",
		Long: `dfextract turns a queued extraction request into a portable SQLite
dataset file.

A request names a patient set and a list of metadata concepts. The
tool resolves the concepts against the warehouse dictionaries,
copies the matching observation facts, dictionary terms, and
demographics into a per-user dataset file, and reports a per-variable
summary.

Configuration precedence (highest to lowest):
  1. CLI flags (--host, --port, etc.)
  2. Environment variables (DFEXTRACT_*)
  3. Config file (~/.config/dfextract/config.yaml)
  4. Built-in defaults

Environment Variables:
  All configuration can be set via DFEXTRACT_* environment variables.
  Nested fields use underscores (database.host → DFEXTRACT_DATABASE_HOST).

  Examples:
    DFEXTRACT_DATABASE_HOST         PostgreSQL host
    DFEXTRACT_DATABASE_PORT         PostgreSQL port
    DFEXTRACT_DATABASE_USER         PostgreSQL user
    DFEXTRACT_DATABASE_PASSWORD     PostgreSQL password
    DFEXTRACT_DATABASE_DATABASE     Database name
    DFEXTRACT_DATABASE_BATCH_SIZE   Transfer batch size
    DFEXTRACT_OUTPUT_HOME_DIRS      Root of per-user output dirs
    DFEXTRACT_LOG_LEVEL             Log level (debug/info/warn/error)

  See 'go doc github.com/cdrkit/dfextract/pkg/config' for complete list.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Auto-generate config file on first run if it doesn't exist
			if cfgFile == "" {
				exists, err := ioconfig.ConfigFileExists()
				if err != nil {
					return fmt.Errorf("failed to check config file: %w", err)
				}

				if !exists {
					generatedPath, err := ioconfig.GenerateDefaultConfig()
					if err != nil {
						// Only warn, don't fail - can use defaults
						fmt.Printf("Warning: could not generate config file: %v\n", err)
					} else {
						fmt.Printf("Generated default config at: %s\n", generatedPath)
					}
				}
			}

			result, err := ioconfig.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			cfg = result.Config

			switch result.Source {
			case "file":
				fmt.Printf("Using config from: %s\n", result.SourcePath)
			case "defaults+env":
				fmt.Println("Using built-in defaults with environment variable overrides")
			case "defaults":
				fmt.Println("Using built-in defaults (no config file)")
			}

			return nil
		},
	}

	// Persistent flags available to all subcommands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ~/.config/dfextract/config.yaml)")

	rootCmd.Flags().BoolP("version", "V", false, "version for dfextract")

	rootCmd.AddCommand(getExtractCmd())

	return rootCmd
}

// getConfig returns the loaded configuration (for use in subcommands)
func getConfig() *pkgconfig.Config {
	return cfg
}
