package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Mode constants
	ModeBatch = "batch"
	ModeStdio = "stdio"

	// Default values
	DefaultNamesFile   = "hungarian_names.txt"
	DefaultMarker      = "HETI TELJESÍTÉSI IGAZOLÁS"
	DefaultLogLevel    = "info"
	DefaultMaxFileSize = 100 * 1024 * 1024 // 100MB

	// EnvPrefix prefixes every environment variable, e.g. EKHO_DIR
	EnvPrefix = "EKHO"
)

// Config holds all configuration for the renamer
type Config struct {
	// Run configuration
	Mode string // "batch" or "stdio"

	// Input configuration
	Directory string // empty means ask the user
	NamesFile string
	Marker    string

	// Processing switches
	DryRun            bool
	KeepCertification bool
	Password          string

	// Application configuration
	Version     string
	ServerName  string
	LogLevel    string
	MaxFileSize int64 // Maximum PDF file size in bytes
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Mode:        ModeBatch,
		NamesFile:   DefaultNamesFile,
		Marker:      DefaultMarker,
		Version:     "1.0.0",
		ServerName:  "ekho-renamer",
		LogLevel:    DefaultLogLevel,
		MaxFileSize: DefaultMaxFileSize,
	}
}

// LoadFromFlags parses command line flags and returns a configuration.
// Values come from, in increasing priority: defaults, a .env file in the
// working directory, EKHO_* environment variables and flags.
func LoadFromFlags() (*Config, error) {
	// A missing .env file is fine
	_ = godotenv.Load()

	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	pflag.Parse()

	populateConfigFromViper(cfg)

	// Expand paths if needed
	if cfg.Directory != "" {
		if expandedPath, err := filepath.Abs(cfg.Directory); err == nil {
			cfg.Directory = expandedPath
		}
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix(EnvPrefix)
	viper.AutomaticEnv()

	viper.SetDefault("mode", cfg.Mode)
	viper.SetDefault("dir", cfg.Directory)
	viper.SetDefault("names", cfg.NamesFile)
	viper.SetDefault("marker", cfg.Marker)
	viper.SetDefault("dryrun", cfg.DryRun)
	viper.SetDefault("keepcert", cfg.KeepCertification)
	viper.SetDefault("password", cfg.Password)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(cfg *Config) {
	pflag.String("mode", cfg.Mode, "Run mode: 'batch' to rename a folder once, 'stdio' to serve MCP tools")
	pflag.String("dir", cfg.Directory, "Folder containing the PDF files (prompted for when empty)")
	pflag.String("names", cfg.NamesFile, "First name list, one name per line")
	pflag.String("marker", cfg.Marker, "Heading of the certification page to remove")
	pflag.Bool("dryrun", cfg.DryRun, "Derive the new names without modifying any file")
	pflag.Bool("keepcert", cfg.KeepCertification, "Keep the certification page")
	pflag.String("password", cfg.Password, "Password for PDFs that cannot be opened without one, tried as user and owner password")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum PDF file size in bytes")
}

// bindFlagsToViper binds command line flags to viper configuration
func bindFlagsToViper() {
	for _, name := range []string{
		"mode", "dir", "names", "marker", "dryrun", "keepcert", "password", "loglevel", "maxfilesize",
	} {
		_ = viper.BindPFlag(name, pflag.Lookup(name))
	}
}

// setupUsageMessage configures the custom usage message
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEKHO Renamer - unlocks weekly timesheet PDFs and renames them after their owner and period\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                               # prompt for a folder\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --dir=/path/to/pdfs           # rename every PDF in the folder\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --dir=/path/to/pdfs --dryrun  # only print the new names\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --mode=stdio                  # serve MCP tools on stdio\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables (also read from .env):\n")
		fmt.Fprintf(os.Stderr, "  EKHO_MODE         Run mode\n")
		fmt.Fprintf(os.Stderr, "  EKHO_DIR          PDF folder\n")
		fmt.Fprintf(os.Stderr, "  EKHO_NAMES        First name list\n")
		fmt.Fprintf(os.Stderr, "  EKHO_MARKER       Certification page heading\n")
		fmt.Fprintf(os.Stderr, "  EKHO_DRYRUN       Dry run\n")
		fmt.Fprintf(os.Stderr, "  EKHO_KEEPCERT     Keep the certification page\n")
		fmt.Fprintf(os.Stderr, "  EKHO_PASSWORD     Password for protected PDFs\n")
		fmt.Fprintf(os.Stderr, "  EKHO_LOGLEVEL     Log level\n")
		fmt.Fprintf(os.Stderr, "  EKHO_MAXFILESIZE  Maximum file size\n")
	}
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(cfg *Config) {
	cfg.Mode = viper.GetString("mode")
	cfg.Directory = viper.GetString("dir")
	cfg.NamesFile = viper.GetString("names")
	cfg.Marker = viper.GetString("marker")
	cfg.DryRun = viper.GetBool("dryrun")
	cfg.KeepCertification = viper.GetBool("keepcert")
	cfg.Password = viper.GetString("password")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Mode != ModeBatch && c.Mode != ModeStdio {
		return errors.New("mode must be either 'batch' or 'stdio'")
	}

	// The folder is optional; when given it must already exist
	if c.Directory != "" {
		info, err := os.Stat(c.Directory)
		if err != nil {
			return fmt.Errorf("cannot access PDF directory %s: %w", c.Directory, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("PDF directory is not a directory: %s", c.Directory)
		}
	}

	if c.NamesFile == "" {
		return errors.New("name list path cannot be empty")
	}

	if c.Marker == "" && !c.KeepCertification {
		return errors.New("certification marker cannot be empty")
	}

	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// IsBatchMode returns true if the renamer processes a folder and exits
func (c *Config) IsBatchMode() bool {
	return c.Mode == ModeBatch
}

// IsStdioMode returns true if the renamer serves MCP tools on stdio
func (c *Config) IsStdioMode() bool {
	return c.Mode == ModeStdio
}

// String returns a string representation of the configuration. The
// password is never printed.
func (c *Config) String() string {
	return fmt.Sprintf("Config{Mode: %s, Directory: %s, NamesFile: %s, Marker: %q, DryRun: %t, "+
		"KeepCertification: %t, LogLevel: %s, MaxFileSize: %d}",
		c.Mode, c.Directory, c.NamesFile, c.Marker, c.DryRun,
		c.KeepCertification, c.LogLevel, c.MaxFileSize)
}
