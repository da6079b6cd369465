// Package config assembles the web server configuration from defaults, an
// optional .env file, the process environment and explicit overrides.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	defaultEnvFile      = ".env"
	defaultPort         = "8080"
	defaultEnvironment  = "local"
	defaultTemplatesDir = "templates"
	defaultPublicDir    = "public"
	defaultContentDir   = "content/blog"
	defaultReadTimeout  = 15 * time.Second
	defaultWriteTimeout = 30 * time.Second
	defaultIdleTimeout  = 120 * time.Second
	defaultBlogCacheTTL = 5 * time.Minute
	defaultContactDelay = time.Second
)

// Config is the resolved server configuration.
type Config struct {
	Environment string
	Dev         bool
	Server      ServerConfig
	Paths       PathsConfig
	Blog        BlogConfig
	Contact     ContactConfig
	Locale      LocaleConfig
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// Addr returns the listen address for Port.
func (s ServerConfig) Addr() string {
	if strings.Contains(s.Port, ":") {
		return s.Port
	}
	return ":" + s.Port
}

// PathsConfig locates templates and static assets on disk.
type PathsConfig struct {
	Templates string
	Public    string
}

// BlogConfig configures post body loading.
type BlogConfig struct {
	BaseURL    string
	ContentDir string
	CacheTTL   time.Duration
}

// ContactConfig configures the simulated contact submission.
type ContactConfig struct {
	Delay time.Duration
}

// LocaleConfig controls whether the language choice outlives a page.
type LocaleConfig struct {
	Persist bool
}

// ValidationError is returned when fields are missing or invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the missing/invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option customises Load behaviour.
type Option func(*loaderOptions)

type loaderOptions struct {
	envFile      string
	envMap       map[string]string
	useSystemEnv bool
}

// WithEnvFile overrides the .env file path. An empty path disables it.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) {
		o.envFile = path
	}
}

// WithEnvMap injects explicit values that take precedence over the
// process environment.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) {
		o.envMap = values
	}
}

// WithoutSystemEnv disables reading from the process environment.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) {
		o.useSystemEnv = false
	}
}

// Load resolves the configuration. Precedence is defaults < .env < OS env
// < explicit map. The legacy PORT variable is honoured when
// PORTFOLIO_WEB_PORT is unset.
func Load(opts ...Option) (Config, error) {
	options := loaderOptions{
		envFile:      defaultEnvFile,
		useSystemEnv: true,
	}
	for _, opt := range opts {
		opt(&options)
	}

	dotEnvValues, err := loadDotEnv(options.envFile)
	if err != nil {
		return Config{}, err
	}

	lookup := func(key string) (string, bool) {
		if options.envMap != nil {
			if value, ok := options.envMap[key]; ok {
				return value, true
			}
		}
		if options.useSystemEnv {
			if value, ok := os.LookupEnv(key); ok {
				return value, true
			}
		}
		if dotEnvValues != nil {
			if value, ok := dotEnvValues[key]; ok {
				return value, true
			}
		}
		return "", false
	}

	var invalid []string
	duration := func(key string, fallback time.Duration) time.Duration {
		d, ok := durationWithDefault(lookup, key, fallback)
		if !ok {
			invalid = append(invalid, key)
		}
		return d
	}

	cfg := Config{
		Environment: strings.ToLower(stringWithDefault(lookup, "PORTFOLIO_WEB_ENV", defaultEnvironment)),
		Dev:         boolWithDefault(lookup, "PORTFOLIO_WEB_DEV", false),
		Server: ServerConfig{
			Port:         stringWithDefault(lookup, "PORTFOLIO_WEB_PORT", stringWithDefault(lookup, "PORT", defaultPort)),
			ReadTimeout:  duration("PORTFOLIO_WEB_READ_TIMEOUT", defaultReadTimeout),
			WriteTimeout: duration("PORTFOLIO_WEB_WRITE_TIMEOUT", defaultWriteTimeout),
			IdleTimeout:  duration("PORTFOLIO_WEB_IDLE_TIMEOUT", defaultIdleTimeout),
		},
		Paths: PathsConfig{
			Templates: stringWithDefault(lookup, "PORTFOLIO_WEB_TEMPLATES_DIR", defaultTemplatesDir),
			Public:    stringWithDefault(lookup, "PORTFOLIO_WEB_PUBLIC_DIR", defaultPublicDir),
		},
		Blog: BlogConfig{
			BaseURL:    strings.TrimSpace(stringWithDefault(lookup, "PORTFOLIO_WEB_BLOG_BASE_URL", "")),
			ContentDir: stringWithDefault(lookup, "PORTFOLIO_WEB_CONTENT_DIR", defaultContentDir),
			CacheTTL:   duration("PORTFOLIO_WEB_BLOG_CACHE_TTL", defaultBlogCacheTTL),
		},
		Contact: ContactConfig{
			Delay: duration("PORTFOLIO_WEB_CONTACT_DELAY", defaultContactDelay),
		},
		Locale: LocaleConfig{
			Persist: boolWithDefault(lookup, "PORTFOLIO_WEB_PERSIST_LOCALE", false),
		},
	}
	if cfg.Environment == "dev" || cfg.Environment == "development" {
		cfg.Dev = true
	}

	if err := validateConfig(cfg, invalid); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validateConfig(cfg Config, invalid []string) error {
	missing := append([]string(nil), invalid...)

	if strings.TrimSpace(cfg.Server.Port) == "" {
		missing = append(missing, "Server.Port")
	}
	if cfg.Server.ReadTimeout <= 0 {
		missing = append(missing, "Server.ReadTimeout")
	}
	if cfg.Server.WriteTimeout <= 0 {
		missing = append(missing, "Server.WriteTimeout")
	}
	if cfg.Blog.CacheTTL <= 0 {
		missing = append(missing, "Blog.CacheTTL")
	}
	if cfg.Contact.Delay < 0 {
		missing = append(missing, "Contact.Delay")
	}
	if cfg.Blog.BaseURL != "" && !strings.HasPrefix(cfg.Blog.BaseURL, "http://") && !strings.HasPrefix(cfg.Blog.BaseURL, "https://") {
		missing = append(missing, "Blog.BaseURL")
	}

	if len(missing) > 0 {
		return &ValidationError{fields: missing}
	}
	return nil
}

func loadDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	file, err := os.Open(absPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: unable to read %s: %w", absPath, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	values := make(map[string]string)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		values[key] = strings.Trim(strings.TrimSpace(value), "\"'")
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("config: failed parsing %s: %w", absPath, err)
	}
	return values, nil
}

func stringWithDefault(lookup func(string) (string, bool), key, fallback string) string {
	if value, ok := lookup(key); ok && value != "" {
		return value
	}
	return fallback
}

// durationWithDefault reports ok=false when a value is present but unparsable.
func durationWithDefault(lookup func(string) (string, bool), key string, fallback time.Duration) (time.Duration, bool) {
	value, ok := lookup(key)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback, true
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return fallback, false
	}
	return d, true
}

func boolWithDefault(lookup func(string) (string, bool), key string, fallback bool) bool {
	if value, ok := lookup(key); ok && value != "" {
		if parsed, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			return parsed
		}
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "yes", "on":
			return true
		case "no", "off":
			return false
		}
	}
	return fallback
}
