// Package config loads hanscan settings from defaults, an optional TOML
// file, a .env file and the environment, in that order.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/ZaguanLabs/hanscan"
	"github.com/ZaguanLabs/hanscan/provider"
)

// DefaultFile is read from the working directory when no file is named.
const DefaultFile = "hanscan.toml"

// Config holds every setting of a run.
type Config struct {
	CodePath          string    `toml:"code_path"`
	OutputDir         string    `toml:"output_dir"`
	Format            string    `toml:"format"`
	CacheFile         string    `toml:"cache_file"`
	RedisURL          string    `toml:"redis_url"`
	Extensions        []string  `toml:"extensions"`
	IgnoreFolders     []string  `toml:"ignore_folders"`
	SuppressPatterns  []string  `toml:"suppress_patterns"`
	Script            string    `toml:"script"`
	Workers           int       `toml:"workers"`
	BatchSize         int       `toml:"batch_size"`
	RequestsPerMinute int       `toml:"requests_per_minute"`
	UniqueKeys        bool      `toml:"unique_keys"`
	API               APIConfig `toml:"api"`
}

// APIConfig configures the key-suggestion service.
type APIConfig struct {
	Key            string  `toml:"key"`
	KeyFile        string  `toml:"key_file"`
	BaseURL        string  `toml:"base_url"`
	Model          string  `toml:"model"`
	Temperature    float32 `toml:"temperature"`
	TimeoutSeconds int     `toml:"timeout_seconds"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		CodePath:          ".",
		OutputDir:         "csv",
		Format:            "csv",
		CacheFile:         "translation_cache.json",
		Extensions:        append([]string(nil), hanscan.DefaultExtensions...),
		IgnoreFolders:     append([]string(nil), hanscan.DefaultIgnoreFolders...),
		Script:            hanscan.ScriptHan.Name,
		Workers:           runtime.NumCPU(),
		BatchSize:         hanscan.DefaultBatchSize,
		RequestsPerMinute: 60,
		API: APIConfig{
			KeyFile:        "ds_api.txt",
			BaseURL:        provider.DefaultBaseURL,
			Model:          provider.DefaultModel,
			Temperature:    provider.DefaultTemperature,
			TimeoutSeconds: int(provider.DefaultTimeout.Seconds()),
		},
	}
}

// Load builds a Config. path names a TOML file; when empty, DefaultFile
// is used if it exists. Variables from .env never override ones already
// set in the environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	file := path
	if file == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			file = DefaultFile
		}
	}
	if file != "" {
		if err := cfg.loadFile(file); err != nil {
			return nil, err
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn().Err(err).Msg("Ignoring unreadable .env file")
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	meta, err := toml.DecodeFile(path, c)
	if err != nil {
		return &hanscan.ConfigError{Message: fmt.Sprintf("%s: failed to parse TOML", path), Cause: err}
	}
	for _, key := range meta.Undecoded() {
		log.Warn().Str("file", path).Str("key", key.String()).Msg("Unknown config key")
	}
	return nil
}

// applyEnv overrides settings from environment variables.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(name); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}

	str("HANSCAN_CODE_PATH", &c.CodePath)
	str("HANSCAN_OUTPUT_DIR", &c.OutputDir)
	str("HANSCAN_CACHE_FILE", &c.CacheFile)
	str("HANSCAN_REDIS_URL", &c.RedisURL)
	str("DEEPSEEK_API_KEY", &c.API.Key)
	str("HANSCAN_API_BASE_URL", &c.API.BaseURL)
	str("HANSCAN_MODEL", &c.API.Model)

	if v, ok := lookup("HANSCAN_WORKERS"); ok && strings.TrimSpace(v) != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return &hanscan.ConfigError{Message: "HANSCAN_WORKERS must be an integer", Cause: err}
		}
		c.Workers = n
	}
	return nil
}

// Validate reports settings that would make a run meaningless.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.CodePath) == "" {
		return &hanscan.ConfigError{Message: "code path is empty"}
	}
	if _, ok := hanscan.LookupScript(c.Script); !ok {
		return &hanscan.ConfigError{Message: fmt.Sprintf("unknown script %q", c.Script)}
	}
	if len(c.Extensions) == 0 {
		return &hanscan.ConfigError{Message: "no source file extensions configured"}
	}
	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return &hanscan.ConfigError{Message: fmt.Sprintf("extension %q must start with a dot", ext)}
		}
	}
	if c.Workers < 1 {
		return &hanscan.ConfigError{Message: fmt.Sprintf("workers must be at least 1, got %d", c.Workers)}
	}
	if c.BatchSize < 1 {
		return &hanscan.ConfigError{Message: fmt.Sprintf("batch size must be at least 1, got %d", c.BatchSize)}
	}
	return nil
}

// APIKey returns the first key found in flagValue, the configured key and
// the key file. The result is empty when no key is configured.
func (c *Config) APIKey(flagValue string) string {
	if k := strings.TrimSpace(flagValue); k != "" {
		return k
	}
	if c.API.Key != "" {
		return c.API.Key
	}
	if c.API.KeyFile == "" {
		return ""
	}

	k, err := ReadKeyFile(c.API.KeyFile)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Warn().Err(err).Str("file", c.API.KeyFile).Msg("Cannot read API key file")
		}
		return ""
	}
	if k != "" {
		log.Debug().Str("file", c.API.KeyFile).Msg("API key read from file")
	}
	return k
}

// ReadKeyFile returns the first line of path that is neither blank nor a
// # comment.
func ReadKeyFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line != "" && !strings.HasPrefix(line, "#") {
			return line, nil
		}
	}
	return "", sc.Err()
}
