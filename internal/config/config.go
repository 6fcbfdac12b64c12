// Package config provides configuration management for promptdex.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	dexerrors "github.com/Aman-CERP/promptdex/internal/errors"
	"github.com/Aman-CERP/promptdex/internal/scanner"
)

// CurrentVersion is the configuration schema version written by config init.
const CurrentVersion = 1

// ProjectConfigFile is the project-level configuration file name.
const ProjectConfigFile = ".promptdex.yaml"

// Environment variables consulted by Load, highest precedence.
const (
	EnvRoot         = "PROMPTDEX_ROOT"
	EnvAddr         = "PROMPTDEX_ADDR"
	EnvLogLevel     = "PROMPTDEX_LOG_LEVEL"
	EnvCacheEnabled = "PROMPTDEX_CACHE_ENABLED"
	EnvCacheTTL     = "PROMPTDEX_CACHE_TTL"
)

// Config represents the complete promptdex configuration.
type Config struct {
	Version int          `yaml:"version" json:"version" validate:"gte=0"`
	Scan    ScanConfig   `yaml:"scan" json:"scan"`
	Server  ServerConfig `yaml:"server" json:"server"`
	Cache   CacheConfig  `yaml:"cache" json:"cache"`
}

// ScanConfig configures the document indexer.
type ScanConfig struct {
	// Root is the prompt catalog directory.
	Root string `yaml:"root" json:"root" validate:"required"`

	// ExcludeDirs are directory names never traversed, at any depth.
	ExcludeDirs []string `yaml:"exclude_dirs" json:"exclude_dirs" validate:"dive,required"`

	// Extensions are the case-sensitive suffixes of eligible files.
	Extensions []string `yaml:"extensions" json:"extensions" validate:"min=1,dive,required,startswith=."`

	// MaxFileSize is the largest file indexed, in bytes.
	MaxFileSize int64 `yaml:"max_file_size" json:"max_file_size" validate:"gt=0"`

	// DisambiguateIDs suffixes colliding ids with a short path hash.
	DisambiguateIDs bool `yaml:"disambiguate_ids" json:"disambiguate_ids"`
}

// ServerConfig configures the HTTP and MCP servers.
type ServerConfig struct {
	Addr           string   `yaml:"addr" json:"addr" validate:"required,hostname_port"`
	LogLevel       string   `yaml:"log_level" json:"log_level" validate:"oneof=debug info warn error"`
	AllowedOrigins []string `yaml:"allowed_origins" json:"allowed_origins"`
}

// CacheConfig configures the catalog snapshot cache.
type CacheConfig struct {
	Enabled bool `yaml:"enabled" json:"enabled"`
	// TTL bounds a snapshot's lifetime; zero means the cache default.
	TTL   time.Duration `yaml:"ttl" json:"ttl" validate:"gte=0"`
	Watch bool          `yaml:"watch" json:"watch"`
}

// NewConfig creates a new Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Version: CurrentVersion,
		Scan: ScanConfig{
			Root:        "prompts",
			ExcludeDirs: append([]string(nil), scanner.DefaultExcludeDirs...),
			Extensions:  append([]string(nil), scanner.DefaultExtensions...),
			MaxFileSize: scanner.DefaultMaxFileSize,
		},
		Server: ServerConfig{
			Addr:           "127.0.0.1:8080",
			LogLevel:       "info",
			AllowedOrigins: []string{"*"},
		},
		Cache: CacheConfig{
			TTL: 30 * time.Second,
		},
	}
}

// ScannerOptions converts the scan section into scanner options.
// Root is resolved against dir when relative.
func (c *Config) ScannerOptions(dir string) scanner.Options {
	root := c.Scan.Root
	if !filepath.IsAbs(root) && dir != "" {
		root = filepath.Join(dir, root)
	}
	return scanner.Options{
		RootDir:         root,
		ExcludeDirs:     c.Scan.ExcludeDirs,
		Extensions:      c.Scan.Extensions,
		MaxFileSize:     c.Scan.MaxFileSize,
		DisambiguateIDs: c.Scan.DisambiguateIDs,
	}
}

// GetUserConfigPath returns the path to the user/global configuration file.
// It follows XDG Base Directory specification:
//   - $XDG_CONFIG_HOME/promptdex/config.yaml (if XDG_CONFIG_HOME is set)
//   - ~/.config/promptdex/config.yaml (default)
func GetUserConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "promptdex", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".config", "promptdex", "config.yaml")
	}
	return filepath.Join(home, ".config", "promptdex", "config.yaml")
}

// fileLayer is one parsed config file. bools records the booleans the file
// sets explicitly, so a later layer can turn them back off.
type fileLayer struct {
	cfg   Config
	bools struct {
		Scan struct {
			DisambiguateIDs *bool `yaml:"disambiguate_ids"`
		} `yaml:"scan"`
		Cache struct {
			Enabled *bool `yaml:"enabled"`
			Watch   *bool `yaml:"watch"`
		} `yaml:"cache"`
	}
}

// loadUserConfig loads the user/global configuration file if it exists.
// Returns nil and nil error if the file doesn't exist.
func loadUserConfig() (*fileLayer, error) {
	configPath := GetUserConfigPath()
	if !fileExists(configPath) {
		return nil, nil
	}

	var parsed fileLayer
	if err := parseYAML(configPath, &parsed); err != nil {
		return nil, err
	}
	return &parsed, nil
}

// Load loads configuration for the working directory dir.
// It applies configuration in order of increasing precedence:
//  1. Hardcoded defaults
//  2. User/global config (~/.config/promptdex/config.yaml)
//  3. Project config (.promptdex.yaml in dir)
//  4. Environment variables (PROMPTDEX_*)
func Load(dir string) (*Config, error) {
	return LoadFile(dir, "")
}

// LoadFile is Load with an explicit project config path. An empty path
// means ProjectConfigFile in dir; a non-empty path must exist.
func LoadFile(dir, path string) (*Config, error) {
	cfg := NewConfig()

	if userCfg, err := loadUserConfig(); err != nil {
		return nil, err
	} else if userCfg != nil {
		cfg.mergeWith(userCfg)
	}

	if path != "" {
		if !fileExists(path) {
			return nil, dexerrors.New(dexerrors.ErrCodeConfigNotFound, "config file not found", nil).
				WithDetail("path", path).
				WithSuggestion("Run 'promptdex config init' or drop the --config flag")
		}
		if err := cfg.loadYAML(path); err != nil {
			return nil, err
		}
	} else if err := cfg.loadFromFile(dir); err != nil {
		return nil, err
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFromFile attempts to load configuration from .promptdex.yaml or .promptdex.yml.
func (c *Config) loadFromFile(dir string) error {
	yamlPath := filepath.Join(dir, ProjectConfigFile)
	if fileExists(yamlPath) {
		return c.loadYAML(yamlPath)
	}

	ymlPath := filepath.Join(dir, ".promptdex.yml")
	if fileExists(ymlPath) {
		return c.loadYAML(ymlPath)
	}

	return nil
}

// loadYAML loads and merges configuration from a YAML file.
func (c *Config) loadYAML(path string) error {
	var parsed fileLayer
	if err := parseYAML(path, &parsed); err != nil {
		return err
	}
	c.mergeWith(&parsed)
	return nil
}

func parseYAML(path string, dst *fileLayer) error {
	data, err := os.ReadFile(path)
	if err != nil {
		code := dexerrors.ErrCodeConfigNotFound
		if errors.Is(err, os.ErrPermission) {
			code = dexerrors.ErrCodeConfigPermission
		}
		return dexerrors.New(code, "failed to read config file", err).WithDetail("path", path)
	}
	if err := yaml.Unmarshal(data, &dst.cfg); err != nil {
		return dexerrors.New(dexerrors.ErrCodeConfigInvalid, "failed to parse config file", err).
			WithDetail("path", path).
			WithSuggestion("Check the YAML syntax; 'promptdex config show' prints a valid layout")
	}
	// Same document, already known to decode.
	_ = yaml.Unmarshal(data, &dst.bools)
	return nil
}

// mergeWith merges non-zero values from layer into c. Booleans are taken
// whenever the file sets them, true or false.
func (c *Config) mergeWith(layer *fileLayer) {
	other := &layer.cfg

	if other.Version != 0 {
		c.Version = other.Version
	}

	// Scan
	if other.Scan.Root != "" {
		c.Scan.Root = other.Scan.Root
	}
	if len(other.Scan.ExcludeDirs) > 0 {
		// Merge with defaults rather than replace
		c.Scan.ExcludeDirs = appendUnique(c.Scan.ExcludeDirs, other.Scan.ExcludeDirs...)
	}
	if len(other.Scan.Extensions) > 0 {
		c.Scan.Extensions = other.Scan.Extensions
	}
	if other.Scan.MaxFileSize != 0 {
		c.Scan.MaxFileSize = other.Scan.MaxFileSize
	}
	if v := layer.bools.Scan.DisambiguateIDs; v != nil {
		c.Scan.DisambiguateIDs = *v
	}

	// Server
	if other.Server.Addr != "" {
		c.Server.Addr = other.Server.Addr
	}
	if other.Server.LogLevel != "" {
		c.Server.LogLevel = other.Server.LogLevel
	}
	if len(other.Server.AllowedOrigins) > 0 {
		c.Server.AllowedOrigins = other.Server.AllowedOrigins
	}

	// Cache
	if v := layer.bools.Cache.Enabled; v != nil {
		c.Cache.Enabled = *v
	}
	if other.Cache.TTL != 0 {
		c.Cache.TTL = other.Cache.TTL
	}
	if v := layer.bools.Cache.Watch; v != nil {
		c.Cache.Watch = *v
	}
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv(EnvRoot); v != "" {
		c.Scan.Root = v
	}
	if v := os.Getenv(EnvAddr); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Server.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv(EnvCacheEnabled); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return envError(EnvCacheEnabled, v, err)
		}
		c.Cache.Enabled = enabled
	}
	if v := os.Getenv(EnvCacheTTL); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return envError(EnvCacheTTL, v, err)
		}
		c.Cache.TTL = ttl
	}
	return nil
}

func envError(name, value string, cause error) error {
	return dexerrors.New(dexerrors.ErrCodeConfigInvalid, "invalid value for "+name, cause).
		WithDetail("variable", name).
		WithDetail("value", value)
}

var validate = validator.New()

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			first := verrs[0]
			return dexerrors.New(dexerrors.ErrCodeConfigInvalid,
				fmt.Sprintf("invalid configuration: %s failed %q", yamlPath(first.Namespace()), first.Tag()), err).
				WithDetail("field", yamlPath(first.Namespace())).
				WithDetail("value", fmt.Sprint(first.Value()))
		}
		return dexerrors.New(dexerrors.ErrCodeConfigInvalid, "invalid configuration", err)
	}

	for _, name := range c.Scan.ExcludeDirs {
		if strings.ContainsAny(name, `/\`) {
			return dexerrors.New(dexerrors.ErrCodeConfigInvalid,
				"invalid configuration: scan.exclude_dirs entries must be plain directory names", nil).
				WithDetail("value", name)
		}
	}
	return nil
}

// yamlPath turns a validator namespace like "Config.Scan.MaxFileSize"
// into the YAML key path "scan.max_file_size".
func yamlPath(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, p := range parts {
		if idx := strings.IndexByte(p, '['); idx >= 0 {
			p = p[:idx]
		}
		parts[i] = snakeCase(p)
	}
	return strings.Join(parts, ".")
}

func snakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		upper := r >= 'A' && r <= 'Z'
		if upper && i > 0 && !(s[i-1] >= 'A' && s[i-1] <= 'Z') {
			b.WriteByte('_')
		}
		if upper {
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func appendUnique(base []string, extra ...string) []string {
	seen := make(map[string]bool, len(base))
	for _, s := range base {
		seen[s] = true
	}
	for _, s := range extra {
		if !seen[s] {
			base = append(base, s)
			seen[s] = true
		}
	}
	return base
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
