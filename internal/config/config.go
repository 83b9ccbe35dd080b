// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/jeranaias/zap-tui/internal/util"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrUnknownKey    = errors.New("unknown config key")
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete zap configuration.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`

	// SerializeReplies blocks sending while a reply is being typed.
	SerializeReplies bool `toml:"serialize_replies"`

	// ResponsesFile optionally replaces the built-in reply pack (YAML).
	ResponsesFile string `toml:"responses_file"`

	UI      UIConfig      `toml:"ui"`
	Typing  TypingConfig  `toml:"typing"`
	Storage StorageConfig `toml:"storage"`
	Cohere  CohereConfig  `toml:"cohere"`
	Links   LinksConfig   `toml:"links"`
}

// UIConfig controls presentation.
type UIConfig struct {
	// Theme is auto, dark or light.
	Theme          string `toml:"theme"`
	ShowTimestamps bool   `toml:"show_timestamps"`
	Glamour        bool   `toml:"glamour"`
	AltScreen      bool   `toml:"alt_screen"`
}

// TypingConfig controls the simulated typing delay.
type TypingConfig struct {
	// Speed multiplies every typing delay; 0 disables them.
	Speed float64 `toml:"speed"`
}

// StorageConfig selects the credential store.
type StorageConfig struct {
	// Backend is bolt, sqlite, file or memory.
	Backend string `toml:"backend"`

	// Path is the storage directory; empty uses the config directory.
	Path    string `toml:"path"`
	Encrypt bool   `toml:"encrypt"`
}

// CohereConfig controls the optional completion service. It is only used
// when enabled and a credential is stored.
type CohereConfig struct {
	Enabled           bool   `toml:"enabled"`
	BaseURL           string `toml:"base_url"`
	Model             string `toml:"model"`
	TimeoutSeconds    int    `toml:"timeout_seconds"`
	RequestsPerMinute int    `toml:"requests_per_minute"`
}

// LinksConfig holds outbound URLs.
type LinksConfig struct {
	DiscordURL   string `toml:"discord_url"`
	DashboardURL string `toml:"dashboard_url"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LogLevel:         "info",
		SerializeReplies: true,
		UI: UIConfig{
			Theme:          "auto",
			ShowTimestamps: true,
			Glamour:        true,
			AltScreen:      true,
		},
		Typing: TypingConfig{
			Speed: 1.0,
		},
		Storage: StorageConfig{
			Backend: "bolt",
		},
		Cohere: CohereConfig{
			Enabled:           false,
			BaseURL:           "https://api.cohere.ai",
			Model:             "command-r",
			TimeoutSeconds:    30,
			RequestsPerMinute: 20,
		},
		Links: LinksConfig{
			DiscordURL:   "https://discord.gg/nn9Gzppq6V",
			DashboardURL: "https://dashboard.cohere.ai/api-keys",
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the zap configuration directory path.
func ConfigDir() (string, error) {
	if dir := os.Getenv("ZAP_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".zap"), nil
}

// ConfigPath returns the path to the TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// StorageDir returns the directory the credential store lives in.
func (c *Config) StorageDir() (string, error) {
	if c.Storage.Path != "" {
		return c.Storage.Path, nil
	}
	return ConfigDir()
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load reads the default config file. A missing file yields defaults. On a
// broken file the defaults are returned together with the error.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		cfg := Default()
		loadDotEnv("")
		cfg.ApplyEnvOverrides()
		return cfg, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the config file at path, then applies .env files and
// environment overrides.
func LoadFrom(path string) (*Config, error) {
	cfg, loadErr := ReadFile(path)

	loadDotEnv(filepath.Dir(path))
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()

	if err := cfg.Validate(); err != nil {
		return Default(), errors.Join(loadErr, err)
	}
	return cfg, loadErr
}

// ReadFile decodes path over the defaults without consulting the
// environment. A missing file yields defaults.
func ReadFile(path string) (*Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); err != nil {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return Default(), fmt.Errorf("failed to load config %s: %w", path, err)
	}
	cfg.SetDefaults()
	return cfg, nil
}

// loadDotEnv loads .env from the working directory and dir. Variables
// already set in the environment win.
func loadDotEnv(dir string) {
	files := []string{".env"}
	if dir != "" {
		files = append(files, filepath.Join(dir, ".env"))
	}
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			_ = godotenv.Load(f)
		}
	}
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save writes cfg to the default config file.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTo(cfg, path)
}

// SaveTo writes cfg as TOML to path with 0600 permissions.
func SaveTo(cfg *Config, path string) error {
	var buf bytes.Buffer
	buf.WriteString("# zap configuration file\n")
	buf.WriteString("# Generated by zap - edit with care\n\n")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Unwrap lets errors.Is match ErrInvalidConfig.
func (e ValidateErrors) Unwrap() error {
	return ErrInvalidConfig
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	var errs ValidateErrors

	oneOf := func(field, value string, allowed ...string) {
		for _, a := range allowed {
			if strings.EqualFold(value, a) {
				return
			}
		}
		errs = append(errs, ValidationError{
			Field:   field,
			Message: fmt.Sprintf("invalid value '%s', must be one of: %s", value, strings.Join(allowed, ", ")),
		})
	}

	oneOf("log_level", c.LogLevel, "debug", "info", "warn", "error")
	oneOf("ui.theme", c.UI.Theme, "auto", "dark", "light")
	oneOf("storage.backend", c.Storage.Backend, "bolt", "sqlite", "file", "memory")

	if c.Typing.Speed < 0 || c.Typing.Speed > 10 {
		errs = append(errs, ValidationError{Field: "typing.speed", Message: "must be between 0 and 10"})
	}
	if c.Cohere.TimeoutSeconds < 1 {
		errs = append(errs, ValidationError{Field: "cohere.timeout_seconds", Message: "must be at least 1"})
	}
	if c.Cohere.RequestsPerMinute < 1 {
		errs = append(errs, ValidationError{Field: "cohere.requests_per_minute", Message: "must be at least 1"})
	}
	for field, raw := range map[string]string{
		"cohere.base_url":     c.Cohere.BaseURL,
		"links.discord_url":   c.Links.DiscordURL,
		"links.dashboard_url": c.Links.DashboardURL,
	} {
		if u, err := url.Parse(raw); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf("invalid URL '%s'", raw)})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults fills empty fields that have no meaningful zero value.
func (c *Config) SetDefaults() {
	d := Default()
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.UI.Theme == "" {
		c.UI.Theme = d.UI.Theme
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = d.Storage.Backend
	}
	if c.Cohere.BaseURL == "" {
		c.Cohere.BaseURL = d.Cohere.BaseURL
	}
	if c.Cohere.Model == "" {
		c.Cohere.Model = d.Cohere.Model
	}
	if c.Links.DiscordURL == "" {
		c.Links.DiscordURL = d.Links.DiscordURL
	}
	if c.Links.DashboardURL == "" {
		c.Links.DashboardURL = d.Links.DashboardURL
	}
	c.LogLevel = strings.ToLower(c.LogLevel)
	c.UI.Theme = strings.ToLower(c.UI.Theme)
	c.Storage.Backend = strings.ToLower(c.Storage.Backend)
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies ZAP_* environment variables.
func (c *Config) ApplyEnvOverrides() {
	if level := os.Getenv("ZAP_LOG_LEVEL"); level != "" {
		c.LogLevel = level
	}
	if v := os.Getenv("ZAP_SERIALIZE_REPLIES"); v != "" {
		c.SerializeReplies = parseBool(v)
	}
	if v := os.Getenv("ZAP_RESPONSES_FILE"); v != "" {
		c.ResponsesFile = v
	}
	if v := os.Getenv("ZAP_THEME"); v != "" {
		c.UI.Theme = v
	}
	if v := os.Getenv("ZAP_TYPING_SPEED"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Typing.Speed = f
		}
	}
	if v := os.Getenv("ZAP_STORAGE_BACKEND"); v != "" {
		c.Storage.Backend = v
	}
	if v := os.Getenv("ZAP_STORAGE_ENCRYPT"); v != "" {
		c.Storage.Encrypt = parseBool(v)
	}
	if v := os.Getenv("ZAP_COHERE_ENABLED"); v != "" {
		c.Cohere.Enabled = parseBool(v)
	}
	if v := os.Getenv("ZAP_COHERE_URL"); v != "" {
		c.Cohere.BaseURL = v
	}
}

func parseBool(v string) bool {
	v = strings.ToLower(v)
	return v == "1" || v == "true" || v == "yes"
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a value by its TOML key path, e.g. "typing.speed".
func (c *Config) Get(key string) (interface{}, error) {
	field, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set assigns a value given as a string by its TOML key path.
func (c *Config) Set(key, value string) error {
	field, err := c.lookup(key)
	if err != nil {
		return err
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer value for %s: %w", key, err)
		}
		field.SetInt(int64(n))
	case reflect.Float64:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid float value for %s: %w", key, err)
		}
		field.SetFloat(f)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean value for %s: %w", key, err)
		}
		field.SetBool(b)
	default:
		return fmt.Errorf("%w: %s is a section", ErrUnknownKey, key)
	}
	return nil
}

// lookup walks the struct by toml tags.
func (c *Config) lookup(key string) (reflect.Value, error) {
	if key == "" {
		return reflect.Value{}, fmt.Errorf("%w: empty key", ErrUnknownKey)
	}
	v := reflect.ValueOf(c).Elem()
	parts := strings.Split(key, ".")
	for i, part := range parts {
		field, ok := fieldByTag(v, part)
		if !ok {
			return reflect.Value{}, fmt.Errorf("%w: %s", ErrUnknownKey, strings.Join(parts[:i+1], "."))
		}
		if i < len(parts)-1 && field.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("%w: %s is not a section", ErrUnknownKey, strings.Join(parts[:i+1], "."))
		}
		v = field
	}
	return v, nil
}

func fieldByTag(v reflect.Value, tag string) (reflect.Value, bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		if strings.EqualFold(t.Field(i).Tag.Get("toml"), tag) {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}

// Keys returns every settable key in dot notation.
func Keys() []string {
	var keys []string
	var walk func(t reflect.Type, prefix string)
	walk = func(t reflect.Type, prefix string) {
		for i := 0; i < t.NumField(); i++ {
			name := prefix + t.Field(i).Tag.Get("toml")
			if t.Field(i).Type.Kind() == reflect.Struct {
				walk(t.Field(i).Type, name+".")
				continue
			}
			keys = append(keys, name)
		}
	}
	walk(reflect.TypeOf(Config{}), "")
	return keys
}

// String renders the configuration as TOML.
func (c *Config) String() string {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Sprintf("error encoding config: %v", err)
	}
	return buf.String()
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
