// Package config provides configuration management for dfextract.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in config.yaml and env vars):
//   - Database: host, port, user, password, database, ssl_mode, batch_size
//   - Output: home_dirs, ext
//   - Email: enabled, host, port, sender, user_domain
//   - Log: level, format, destination
//
// Runtime-only fields (CLI flags only):
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use DFEXTRACT_ prefix with underscores for nesting:
//
//	DFEXTRACT_DATABASE_HOST=localhost
//	DFEXTRACT_DATABASE_PORT=5432
//	DFEXTRACT_OUTPUT_HOME_DIRS=/home
//	DFEXTRACT_LOG_LEVEL=info
package config

// Config represents the complete dfextract configuration.
type Config struct {
	// Database contains connection settings for the clinical data
	// warehouse (the i2b2 star schema in PostgreSQL).
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Output determines where dataset files are written.
	Output OutputConfig `mapstructure:"output" yaml:"output"`

	// Email configures the completion notification.
	Email EmailConfig `mapstructure:"email" yaml:"email"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// HomeDir determines where config and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// DatabaseConfig contains connection parameters for the clinical
// data warehouse.
type DatabaseConfig struct {
	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the database name holding the star schema.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`

	// BatchSize defines the number of rows transferred to the dataset
	// file per batched insert. Larger batches are faster but use more
	// memory.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`
}

// OutputConfig determines where dataset files are written.
type OutputConfig struct {
	// HomeDirs is the root of per-user output directories. A dataset
	// for user "alice" ends up under <home_dirs>/alice/.
	HomeDirs string `mapstructure:"home_dirs" yaml:"home_dirs"`

	// Ext is the extension appended to dataset filenames.
	Ext string `mapstructure:"ext" yaml:"ext"`
}

// EmailConfig configures the completion notification. When Enabled is
// false no mail is attempted.
type EmailConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// Host and Port locate the SMTP relay.
	Host string `mapstructure:"host" yaml:"host"`
	Port int    `mapstructure:"port" yaml:"port"`

	// Sender is the From address of completion mail.
	Sender string `mapstructure:"sender" yaml:"sender"`

	// UserDomain is appended to the requesting username to form the
	// recipient address (<username>@<user_domain>).
	UserDomain string `mapstructure:"user_domain" yaml:"user_domain"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Database: DatabaseConfig{
			Host:      "localhost",
			Port:      5432,
			User:      "i2b2",
			Password:  "i2b2",
			Database:  "i2b2demodata",
			SSLMode:   "disable",
			BatchSize: 5_000,
		},
		Output: OutputConfig{
			HomeDirs: "/home",
			Ext:      ".db",
		},
		Email: EmailConfig{
			Enabled: false,
			Host:    "localhost",
			Port:    25,
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
	}

	return res
}
