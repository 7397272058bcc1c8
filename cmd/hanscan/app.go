package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ZaguanLabs/hanscan"
	"github.com/ZaguanLabs/hanscan/cache"
	"github.com/ZaguanLabs/hanscan/internal/config"
	"github.com/ZaguanLabs/hanscan/output"
	"github.com/ZaguanLabs/hanscan/provider"
	"github.com/ZaguanLabs/hanscan/scanner"
	"github.com/ZaguanLabs/hanscan/walker"
)

// remoteLookupThreshold turns on concurrent cache reads for Redis.
const remoteLookupThreshold = 16

// app is one configured run.
type app struct {
	cfg    *config.Config
	script hanscan.Script
	writer output.Writer
	filter *scanner.SuppressionFilter

	cache     hanscan.KeyCache
	closeFunc func()
}

// loadConfig merges the config file, the environment and the flags that
// were set on the command line, then validates the result.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("code-path") {
		cfg.CodePath = opts.codePath
	}
	if flags.Changed("output-dir") {
		cfg.OutputDir = opts.outputDir
	}
	if flags.Changed("cache-file") {
		cfg.CacheFile = opts.cacheFile
	}
	if flags.Changed("redis-url") {
		cfg.RedisURL = opts.redisURL
	}
	if flags.Changed("format") {
		cfg.Format = opts.format
	}
	if flags.Changed("workers") {
		cfg.Workers = opts.workers
	}
	if flags.Changed("unique-keys") {
		cfg.UniqueKeys = opts.uniqueKeys
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newApp validates everything a scan needs. It touches no cache or
// network, so a failure here leaves no trace.
func newApp(cmd *cobra.Command, opts *options) (*app, error) {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return nil, err
	}

	script, _ := hanscan.LookupScript(cfg.Script)

	writer, err := output.New(cfg.Format)
	if err != nil {
		return nil, &hanscan.ConfigError{Message: err.Error()}
	}

	extra, err := scanner.CompilePatterns(cfg.SuppressPatterns)
	if err != nil {
		return nil, &hanscan.ConfigError{Message: "invalid suppress pattern", Cause: err}
	}

	if err := requireDir(cfg.CodePath, "code path"); err != nil {
		return nil, err
	}

	return &app{
		cfg:    cfg,
		script: script,
		writer: writer,
		filter: scanner.NewSuppressionFilter(extra...),
	}, nil
}

func requireDir(path, what string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &hanscan.ConfigError{Message: fmt.Sprintf("%s %s does not exist", what, path)}
		}
		return &hanscan.ConfigError{Message: fmt.Sprintf("cannot access %s %s", what, path), Cause: err}
	}
	if !info.IsDir() {
		return &hanscan.ConfigError{Message: fmt.Sprintf("%s %s is not a directory", what, path)}
	}
	return nil
}

// scopeDir resolves a module folder under the code path.
func (a *app) scopeDir(folder string) (string, error) {
	dir := filepath.Join(a.cfg.CodePath, folder)
	if err := requireDir(dir, "module folder"); err != nil {
		return "", err
	}
	return dir, nil
}

// openCache connects the key cache. A reachable Redis wins over the cache
// file. Neither an unreachable Redis nor an unreadable cache file stops the
// run: the file cache, possibly empty, is used instead.
func (a *app) openCache() {
	if a.cfg.RedisURL != "" {
		rc, err := cache.NewRedisCache(cache.RedisConfig{URL: a.cfg.RedisURL})
		if err == nil {
			a.cache = rc
			a.closeFunc = func() {
				if err := rc.Close(); err != nil {
					log.Warn().Err(err).Msg("Closing redis connection")
				}
			}
			log.Debug().Str("url", a.cfg.RedisURL).Msg("Using redis key cache")
			return
		}
		log.Warn().Err(err).Str("url", a.cfg.RedisURL).Str("file", a.cfg.CacheFile).
			Msg("Redis unavailable, falling back to the cache file")
	}

	mem := cache.NewInMemoryCache(0)
	if err := mem.Load(a.cfg.CacheFile); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Debug().Str("file", a.cfg.CacheFile).Msg("No key cache yet")
		} else {
			log.Warn().Err(err).Str("file", a.cfg.CacheFile).Msg("Starting with an empty key cache")
		}
	} else {
		log.Debug().Int("entries", mem.Len()).Str("file", a.cfg.CacheFile).Msg("Key cache loaded")
	}
	a.cache = mem
}

// saveCache persists the file cache. Failures are logged only.
func (a *app) saveCache() {
	mem, ok := a.cache.(*cache.InMemoryCache)
	if !ok {
		return
	}
	if err := mem.Save(a.cfg.CacheFile); err != nil {
		log.Warn().Err(err).Str("file", a.cfg.CacheFile).Msg("Failed to save key cache")
		return
	}
	log.Debug().Int("entries", mem.Len()).Str("file", a.cfg.CacheFile).Msg("Key cache saved")
}

func (a *app) close() {
	if a.closeFunc != nil {
		a.closeFunc()
	}
}

// keyProvider returns the rate-limited, retrying suggestion client, or
// nil when the API is disabled or no key is configured.
func (a *app) keyProvider(opts *options) hanscan.KeyProvider {
	if opts.noAPI {
		log.Info().Msg("Key suggestions disabled, using generated keys")
		return nil
	}
	key := a.cfg.APIKey(opts.apiKey)
	if key == "" {
		log.Info().Msg("No API key configured, using generated keys")
		return nil
	}

	p := provider.NewOpenAIProvider(provider.OpenAIConfig{
		APIKey:      key,
		Model:       a.cfg.API.Model,
		Temperature: a.cfg.API.Temperature,
		BaseURL:     a.cfg.API.BaseURL,
		Timeout:     time.Duration(a.cfg.API.TimeoutSeconds) * time.Second,
	})
	log.Info().Str("model", a.cfg.API.Model).Msg("Key suggestions enabled")

	retrying := hanscan.NewRetryableProvider(p, hanscan.DefaultRetryConfig())
	return hanscan.NewRateLimitedProvider(retrying, hanscan.RateLimitConfig{
		RequestsPerMinute: a.cfg.RequestsPerMinute,
	})
}

// extractor wires the scanner, key assigner and walker for this run.
func (a *app) extractor(opts *options) *hanscan.Extractor {
	assignerOpts := []hanscan.AssignerOption{
		hanscan.WithCache(a.cache),
		hanscan.WithBatchSize(a.cfg.BatchSize),
	}
	if p := a.keyProvider(opts); p != nil {
		assignerOpts = append(assignerOpts, hanscan.WithProvider(p))
	}
	if _, remote := a.cache.(*cache.RedisCache); remote {
		assignerOpts = append(assignerOpts, hanscan.WithParallelLookup(remoteLookupThreshold))
	}

	return hanscan.NewExtractor(
		scanner.New(a.script, scanner.WithSuppressionFilter(a.filter)),
		hanscan.WithKeyAssigner(hanscan.NewKeyAssigner(a.script, assignerOpts...)),
		hanscan.WithWalker(walker.New(a.cfg.Extensions, a.cfg.IgnoreFolders)),
		hanscan.WithWorkers(a.cfg.Workers),
		hanscan.WithUniqueKeys(a.cfg.UniqueKeys),
	)
}
