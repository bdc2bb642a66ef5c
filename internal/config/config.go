// Package config provides functionality for managing configuration options
// for the HomeDrive client and mock server using command-line flags, a config
// file, a .env file and environment variables.
package config

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Options holds the configuration values for the application.
type Options struct {
	// ServerURL is the HomeDrive backend base URL used by the client.
	ServerURL string `mapstructure:"server_url"`

	// Timeout bounds every HTTP request. Zero means no timeout.
	Timeout time.Duration `mapstructure:"timeout"`

	// CAFile is an optional PEM bundle trusted for an HTTPS backend.
	CAFile string `mapstructure:"ca_file"`

	// DownloadDir is where downloaded files are written.
	DownloadDir string `mapstructure:"download_dir"`

	// LogLevel is the zap level name.
	LogLevel string `mapstructure:"log_level"`

	// Address is the ip:port the mock server listens on.
	Address string `mapstructure:"address"`

	// TLS makes the mock server serve HTTPS with a freshly generated CA,
	// written to CAFile for the client.
	TLS bool `mapstructure:"tls"`

	// Config is the path to the config file.
	Config string `mapstructure:"-"`

	// EnvFile is the path to an optional .env file.
	EnvFile string `mapstructure:"-"`
}

const (
	defaultServerURL = "http://localhost:8000"
	defaultAddress   = "localhost:8000"
	defaultLogLevel  = "error"
	defaultConfig    = "config.json"
	defaultEnvFile   = ".env"
)

// newFlagSet declares every flag on fs, bound to opts.
func newFlagSet(name string, opts *Options) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&opts.ServerURL, "url", defaultServerURL, "HomeDrive server base URL")
	fs.DurationVar(&opts.Timeout, "timeout", 0, "HTTP request timeout (0 = none)")
	fs.StringVar(&opts.CAFile, "ca", "", "path to CA cert for an HTTPS server")
	fs.StringVar(&opts.DownloadDir, "downloads", ".", "directory for downloaded files")
	fs.StringVar(&opts.LogLevel, "log-level", defaultLogLevel, "log level: debug|info|warn|error")
	fs.StringVar(&opts.Address, "a", defaultAddress, "mock server ip:port")
	fs.BoolVar(&opts.TLS, "tls", false, "serve the mock server over HTTPS")
	fs.StringVar(&opts.Config, "config", defaultConfig, "path to config file")
	fs.StringVar(&opts.Config, "c", defaultConfig, "path to config file (shorthand)")
	fs.StringVar(&opts.EnvFile, "env", defaultEnvFile, "path to .env file")
	return fs
}

// Load parses args, then applies the config file, the .env file and the
// environment, in that order; later sources win.
func Load(name string, args []string) (*Options, error) {
	opts := &Options{}
	fs := newFlagSet(name, opts)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if err := loadEnvFile(opts.EnvFile); err != nil {
		return nil, err
	}

	if configPath := os.Getenv("CONFIG"); configPath != "" {
		opts.Config = configPath
	}
	if err := readConfigFile(opts); err != nil {
		return nil, err
	}

	if err := applyEnv(opts); err != nil {
		return nil, err
	}
	return opts, nil
}

// Parse is Load over os.Args. It exits the process on invalid input.
func Parse(name string) *Options {
	opts, err := Load(name, os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		log.Fatalf("error while parsing configuration: %v", err)
	}
	return opts
}

// loadEnvFile populates the process environment from path. A missing file is
// not an error; variables already set are kept.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("error while reading env file: %w", err)
	}
	return nil
}

// readConfigFile overlays the values found in opts.Config, if it exists.
// The format follows the extension (json, yaml, toml).
func readConfigFile(opts *Options) error {
	if opts.Config == "" {
		return nil
	}
	if _, err := os.Stat(opts.Config); err != nil {
		return nil
	}

	v := viper.New()
	v.SetConfigFile(opts.Config)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("error while reading config file: %w", err)
	}
	if err := v.Unmarshal(opts); err != nil {
		return fmt.Errorf("error while parsing config file: %w", err)
	}
	return nil
}

// applyEnv overrides opts with the environment variables that are set.
func applyEnv(opts *Options) error {
	if v := os.Getenv("SERVER_URL"); v != "" {
		opts.ServerURL = v
	}
	if v := os.Getenv("HTTP_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid HTTP_TIMEOUT %q: %w", v, err)
		}
		opts.Timeout = d
	}
	if v := os.Getenv("CA_FILE"); v != "" {
		opts.CAFile = v
	}
	if v := os.Getenv("DOWNLOAD_DIR"); v != "" {
		opts.DownloadDir = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		opts.LogLevel = v
	}
	if v := os.Getenv("SERVER_ADDRESS"); v != "" {
		opts.Address = v
	}
	if v := os.Getenv("SERVER_TLS"); v != "" {
		on, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid SERVER_TLS %q: %w", v, err)
		}
		opts.TLS = on
	}
	return nil
}
