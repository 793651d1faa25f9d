package config

import (
	"fmt"
	"net"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	dufshttp "github.com/chancat87/dufs/http"
)

// Config is the immutable configuration consumed at startup.
type Config struct {
	// Bind is the listen address, Port the 16-bit listen port.
	Bind string `mapstructure:"bind" validate:"required"`
	Port int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	// Root is the served directory. It must exist; Load replaces it with
	// its canonicalized absolute form.
	Root string `mapstructure:"root" validate:"required"`
	// Readonly rejects uploads with 403.
	Readonly bool `mapstructure:"readonly"`
	// Auth is an optional user:pass credential enabling Basic auth.
	Auth string              `mapstructure:"auth"`
	CORS dufshttp.CORSConfig `mapstructure:"cors"`
	Log  LogConfig           `mapstructure:"log"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"omitempty,oneof=debug info warn error"`
}

// Load builds a Config from the viper state, canonicalizes the root path
// and validates the result. Loading fails if the root does not exist.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	root, err := canonicalize(cfg.Root)
	if err != nil {
		return nil, err
	}
	cfg.Root = root

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints and the credential format.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Auth != "" && !strings.Contains(c.Auth, ":") {
		return fmt.Errorf("invalid auth credential %q: expected user:pass", c.Auth)
	}
	return nil
}

// Addr returns the listen address in host:port form.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Bind, strconv.Itoa(c.Port))
}

// canonicalize resolves path to an absolute, symlink-free form. The path
// must exist.
func canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve path %q: %w", path, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("path %q doesn't exist: %w", path, err)
	}
	return resolved, nil
}
