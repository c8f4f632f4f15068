package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/aevon-lab/tsfeatures/internal/core/fourier"
	"github.com/aevon-lab/tsfeatures/internal/core/recipe"
)

const envPrefix = "TSFEATURES_"

// Config represents the top-level application config plus the loaded recipes.
type Config struct {
	Server  ServerConfig  `koanf:"server"`
	Fourier FourierConfig `koanf:"fourier"`
	Recipes RecipesConfig `koanf:"recipes"`
	Log     LogConfig     `koanf:"log"`

	// RecipeLoading is populated by Load after parsing recipe files.
	RecipeLoading RecipeLoadingConfig `koanf:"-"`
}

type ServerConfig struct {
	Port          int    `koanf:"port"`
	Host          string `koanf:"host"`
	MaxBodySizeMB int    `koanf:"max_body_size_mb"`
	Mode          string `koanf:"mode"` // debug | release
}

// FourierConfig holds the defaults applied when a request leaves a field unset.
type FourierConfig struct {
	DefaultEngine   string `koanf:"default_engine"`
	DefaultMaxOrder int    `koanf:"default_max_order"`
	DateLayout      string `koanf:"date_layout"` // Go reference layout for parsing and formatting timestamps
}

type RecipesConfig struct {
	Dir            string `koanf:"dir"`
	RequireRecipes bool   `koanf:"require_recipes"`
}

type LogConfig struct {
	Level  string `koanf:"level"`  // debug | info | warn | error
	Format string `koanf:"format"` // tint | text | json
}

type RecipeLoadingConfig struct {
	Dir        string
	Repository *recipe.FileSystemRepository
}

// Addr is the listen address of the HTTP server.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d (must be 1-65535)", c.Server.Port)
	}
	if strings.TrimSpace(c.Server.Host) == "" {
		return fmt.Errorf("server.host is required")
	}
	if c.Server.MaxBodySizeMB <= 0 {
		return fmt.Errorf("server.max_body_size_mb must be > 0")
	}
	if c.Server.Mode != "debug" && c.Server.Mode != "release" {
		return fmt.Errorf("invalid server.mode %q (must be debug or release)", c.Server.Mode)
	}

	if !fourier.ValidEngine(c.Fourier.DefaultEngine) {
		return fmt.Errorf("unsupported fourier.default_engine %q (must be one of %s)",
			c.Fourier.DefaultEngine, strings.Join(fourier.EngineNames(), ", "))
	}
	if c.Fourier.DefaultMaxOrder <= 0 {
		return fmt.Errorf("fourier.default_max_order must be > 0")
	}
	if strings.TrimSpace(c.Fourier.DateLayout) == "" {
		return fmt.Errorf("fourier.date_layout is required")
	}

	if strings.TrimSpace(c.Recipes.Dir) == "" {
		return fmt.Errorf("recipes.dir is required")
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log.level %q (must be debug, info, warn or error)", c.Log.Level)
	}
	switch c.Log.Format {
	case "tint", "text", "json":
	default:
		return fmt.Errorf("invalid log.format %q (must be tint, text or json)", c.Log.Format)
	}

	return nil
}

// Load parses config from defaults, an optional file and env, validates it,
// then loads and validates recipes.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	defaults := map[string]interface{}{
		"server.port":               8080,
		"server.host":               "0.0.0.0",
		"server.max_body_size_mb":   8,
		"server.mode":               "release",
		"fourier.default_engine":    fourier.DefaultEngine,
		"fourier.default_max_order": 1,
		"fourier.date_layout":       "2006-01-02T15:04:05Z07:00",
		"recipes.dir":               "./config/recipes",
		"recipes.require_recipes":   false,
		"log.level":                 "info",
		"log.format":                "tint",
	}
	for key, value := range defaults {
		k.Set(key, value)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "__", ".", -1)
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	repo, err := recipe.NewFileSystemRepository(cfg.Recipes.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load recipes: %w", err)
	}
	if cfg.Recipes.RequireRecipes && repo.Len() == 0 {
		return nil, fmt.Errorf("no recipes found in %q", cfg.Recipes.Dir)
	}

	cfg.RecipeLoading = RecipeLoadingConfig{
		Dir:        cfg.Recipes.Dir,
		Repository: repo,
	}

	return &cfg, nil
}
