package recipe

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aevon-lab/tsfeatures/internal/core/fourier"
)

var ErrNotFound = errors.New("recipe not found")

// Recipe is a named, reusable augmentation. Recipes are loaded at startup
// from YAML files and fingerprinted so clients can detect changes.
type Recipe struct {
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	DateColumn  string             `json:"date_column"`
	GroupBy     []string           `json:"group_by,omitempty"`
	Periods     fourier.PeriodSpec `json:"periods"`
	MaxOrder    int                `json:"max_order"`
	Engine      string             `json:"engine,omitempty"`
	Fingerprint string             `json:"fingerprint"` // SHA-256 of the raw YAML file
}

// Options converts the recipe into augmentation options.
func (r Recipe) Options() fourier.Options {
	return fourier.Options{
		DateColumn: r.DateColumn,
		Periods:    r.Periods,
		MaxOrder:   r.MaxOrder,
		Engine:     r.Engine,
	}
}

// rawRecipe is the on-disk YAML shape.
type rawRecipe struct {
	Name        string             `yaml:"name"`
	Description string             `yaml:"description"`
	DateColumn  string             `yaml:"date_column"`
	GroupBy     []string           `yaml:"group_by"`
	Periods     fourier.PeriodSpec `yaml:"periods"`
	MaxOrder    int                `yaml:"max_order"`
	Engine      string             `yaml:"engine"`
}

func (raw rawRecipe) validate() error {
	if strings.TrimSpace(raw.DateColumn) == "" {
		return fmt.Errorf("recipe %q: date_column must not be empty", raw.Name)
	}
	if raw.Engine != "" && !fourier.ValidEngine(raw.Engine) {
		return fmt.Errorf("recipe %q: unsupported engine %q", raw.Name, raw.Engine)
	}
	if _, err := raw.Periods.Periods(); err != nil {
		return fmt.Errorf("recipe %q: %w", raw.Name, err)
	}
	if raw.MaxOrder < 0 {
		return fmt.Errorf("recipe %q: max_order must be >= 0", raw.Name)
	}
	return nil
}

// Repository provides read access to loaded recipes.
type Repository interface {
	// Get returns the recipe with the given name, or ErrNotFound.
	Get(ctx context.Context, name string) (*Recipe, error)

	// List returns all recipes ordered by name.
	List(ctx context.Context) ([]Recipe, error)
}

// FileSystemRepository loads recipes from *.yaml files in a directory, one
// recipe per file. Recipes are read once at construction.
type FileSystemRepository struct {
	dir     string
	recipes map[string]Recipe
}

// NewFileSystemRepository loads every recipe in dir. A missing directory
// yields an empty repository; any malformed or invalid file fails the load.
func NewFileSystemRepository(dir string) (*FileSystemRepository, error) {
	repo := &FileSystemRepository{
		dir:     dir,
		recipes: make(map[string]Recipe),
	}
	if err := repo.load(); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *FileSystemRepository) load() error {
	info, err := os.Stat(r.dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("recipe dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("recipe path %q is not a directory", r.dir)
	}

	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return fmt.Errorf("reading recipe dir: %w", err)
	}

	for _, e := range entries {
		if e.IsDir() || (!strings.HasSuffix(e.Name(), ".yaml") && !strings.HasSuffix(e.Name(), ".yml")) {
			continue
		}

		path := filepath.Join(r.dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading recipe file %s: %w", path, err)
		}

		var raw rawRecipe
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("parsing recipe file %s: %w", path, err)
		}
		if raw.Name == "" {
			continue // comment-only file
		}
		if err := raw.validate(); err != nil {
			return err
		}
		if _, exists := r.recipes[raw.Name]; exists {
			return fmt.Errorf("recipe %q: duplicate recipe name (check multiple YAML files)", raw.Name)
		}

		r.recipes[raw.Name] = Recipe{
			Name:        raw.Name,
			Description: raw.Description,
			DateColumn:  raw.DateColumn,
			GroupBy:     raw.GroupBy,
			Periods:     raw.Periods,
			MaxOrder:    raw.MaxOrder,
			Engine:      raw.Engine,
			Fingerprint: fmt.Sprintf("%x", sha256.Sum256(data)),
		}
	}
	return nil
}

func (r *FileSystemRepository) Dir() string { return r.dir }

func (r *FileSystemRepository) Len() int { return len(r.recipes) }

func (r *FileSystemRepository) Get(_ context.Context, name string) (*Recipe, error) {
	rec, ok := r.recipes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return &rec, nil
}

func (r *FileSystemRepository) List(_ context.Context) ([]Recipe, error) {
	out := make([]Recipe, 0, len(r.recipes))
	for _, rec := range r.recipes {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Ping reports whether the recipe directory is still readable. A directory
// that never existed is healthy.
func (r *FileSystemRepository) Ping(_ context.Context) error {
	info, err := os.Stat(r.dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("recipe dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("recipe path %q is not a directory", r.dir)
	}
	return nil
}
