// Package ioconfig provides I/O operations for loading configuration
// from files and flags. This is an impure package that handles file
// system and flag operations.
package ioconfig

import (
	"fmt"
	"os"
	"strings"

	"github.com/cdrkit/dfextract/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// LoadResult contains the loaded configuration and metadata about the
// source.
type LoadResult struct {
	Config     *config.Config
	SourcePath string // path to config file used, or empty
	Source     string // "file", "defaults", or "defaults+env"
}

// Load reads configuration from a YAML file and returns a validated
// Config with source info. If configPath is empty, the default
// location ~/.config/dfextract/config.yaml is tried.
//
// Precedence: flags > env vars > config file > defaults.
func Load(configPath string) (*LoadResult, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	v.SetEnvPrefix("DFEXTRACT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Defaults are registered before reading the file so AutomaticEnv
	// knows which keys to check for env vars.
	defaults := config.New()
	v.SetDefault("database.host", defaults.Database.Host)
	v.SetDefault("database.port", defaults.Database.Port)
	v.SetDefault("database.user", defaults.Database.User)
	v.SetDefault("database.password", defaults.Database.Password)
	v.SetDefault("database.database", defaults.Database.Database)
	v.SetDefault("database.ssl_mode", defaults.Database.SSLMode)
	v.SetDefault("database.batch_size", defaults.Database.BatchSize)
	v.SetDefault("output.home_dirs", defaults.Output.HomeDirs)
	v.SetDefault("output.ext", defaults.Output.Ext)
	v.SetDefault("email.enabled", defaults.Email.Enabled)
	v.SetDefault("email.host", defaults.Email.Host)
	v.SetDefault("email.port", defaults.Email.Port)
	v.SetDefault("email.sender", defaults.Email.Sender)
	v.SetDefault("email.user_domain", defaults.Email.UserDomain)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.format", defaults.Log.Format)
	v.SetDefault("log.destination", defaults.Log.Destination)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		defaultPath, err := GetDefaultConfigPath()
		if err == nil {
			if _, statErr := os.Stat(defaultPath); statErr == nil {
				v.SetConfigFile(defaultPath)
			}
		}
	}

	configFileRead := false
	usedConfigPath := ""

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if configPath != "" {
				return nil, fmt.Errorf("config file not found: %s", configPath)
			}
		} else {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		configFileRead = true
		usedConfigPath = v.ConfigFileUsed()
	}

	var raw config.Config
	if err := v.Unmarshal(&raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Re-applying the values as options validates them: invalid
	// entries are warned about and replaced with defaults.
	cfg := config.New()
	cfg.Update(raw.ToOptions())

	source := "defaults"
	if configFileRead {
		source = "file"
	} else if hasEnvVars() {
		source = "defaults+env"
	}

	return &LoadResult{
		Config:     cfg,
		SourcePath: usedConfigPath,
		Source:     source,
	}, nil
}

// hasEnvVars checks if any DFEXTRACT_* environment variables are set.
func hasEnvVars() bool {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "DFEXTRACT_") {
			return true
		}
	}
	return false
}

// BindFlags overrides configuration with cobra flag values when set.
// CLI flags take precedence over config file values.
func BindFlags(cmd *cobra.Command, cfg *config.Config) (*config.Config, error) {
	v := viper.New()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}

	var opts []config.Option
	if v.IsSet("host") {
		opts = append(opts, config.OptDatabaseHost(v.GetString("host")))
	}
	if v.IsSet("port") {
		opts = append(opts, config.OptDatabasePort(v.GetInt("port")))
	}
	if v.IsSet("user") {
		opts = append(opts, config.OptDatabaseUser(v.GetString("user")))
	}
	if v.IsSet("password") {
		opts = append(opts, config.OptDatabasePassword(v.GetString("password")))
	}
	if v.IsSet("database") {
		opts = append(opts, config.OptDatabaseDatabase(v.GetString("database")))
	}
	if v.IsSet("ssl-mode") {
		opts = append(opts, config.OptDatabaseSSLMode(v.GetString("ssl-mode")))
	}
	if v.IsSet("batch-size") {
		opts = append(opts, config.OptDatabaseBatchSize(v.GetInt("batch-size")))
	}
	if v.IsSet("home-dirs") {
		opts = append(opts, config.OptOutputHomeDirs(v.GetString("home-dirs")))
	}

	cfg.Update(opts)
	return cfg, nil
}
