package recipe

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aevon-lab/tsfeatures/internal/core/fourier"
)

// writeRecipe is a test helper that writes a single recipe YAML file into dir.
func writeRecipe(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestFileSystemRepository_LoadAndList(t *testing.T) {
	dir := t.TempDir()
	writeRecipe(t, dir, "weekly.yaml", `
name: "weekly"
description: "weekly seasonality for daily data"
date_column: "date"
periods: 7
max_order: 2
`)
	writeRecipe(t, dir, "calendar.yml", `
name: "calendar"
date_column: "order_date"
group_by: ["store"]
periods: [7, 30, 365]
engine: "vectorized"
`)
	writeRecipe(t, dir, "notes.txt", "not a recipe")
	writeRecipe(t, dir, "empty.yaml", "# nothing here\n")

	repo, err := NewFileSystemRepository(dir)
	if err != nil {
		t.Fatalf("NewFileSystemRepository: %v", err)
	}

	all, err := repo.List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Fatalf("List: got %d recipes, want 2", len(all))
	}
	if all[0].Name != "calendar" || all[1].Name != "weekly" {
		t.Errorf("List order: got %s, %s", all[0].Name, all[1].Name)
	}

	periods, err := all[0].Periods.Periods()
	if err != nil {
		t.Fatal(err)
	}
	if len(periods) != 3 || periods[2] != 365 {
		t.Errorf("calendar periods: got %v", periods)
	}
	if len(all[0].GroupBy) != 1 || all[0].GroupBy[0] != "store" {
		t.Errorf("calendar group_by: got %v", all[0].GroupBy)
	}
}

func TestFileSystemRepository_Get(t *testing.T) {
	dir := t.TempDir()
	writeRecipe(t, dir, "weekly.yaml", `
name: "weekly"
date_column: "date"
periods:
  start: 1
  end: 3
max_order: 2
`)

	repo, err := NewFileSystemRepository(dir)
	if err != nil {
		t.Fatal(err)
	}

	rec, err := repo.Get(context.Background(), "weekly")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(rec.Fingerprint) != 64 {
		t.Errorf("Fingerprint: got %q, want a sha256 hex digest", rec.Fingerprint)
	}

	opts := rec.Options()
	if opts.DateColumn != "date" || opts.MaxOrder != 2 || opts.Engine != "" {
		t.Errorf("Options: got %+v", opts)
	}
	if opts.Periods.String() != fourier.PeriodRange(1, 3).String() {
		t.Errorf("Options periods: got %s, want 1:3", opts.Periods)
	}

	_, err = repo.Get(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get missing: got %v, want ErrNotFound", err)
	}
}

func TestFileSystemRepository_MissingDirIsEmpty(t *testing.T) {
	repo, err := NewFileSystemRepository(filepath.Join(t.TempDir(), "absent"))
	if err != nil {
		t.Fatalf("NewFileSystemRepository: %v", err)
	}
	if repo.Len() != 0 {
		t.Errorf("Len: got %d, want 0", repo.Len())
	}
	if err := repo.Ping(context.Background()); err != nil {
		t.Errorf("Ping: %v", err)
	}
}

func TestFileSystemRepository_InvalidRecipes(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "missing date column",
			content: "name: bad\nperiods: 7\n",
			wantErr: "date_column must not be empty",
		},
		{
			name:    "unknown engine",
			content: "name: bad\ndate_column: date\nengine: spark\n",
			wantErr: `unsupported engine "spark"`,
		},
		{
			name:    "reversed range",
			content: "name: bad\ndate_column: date\nperiods: {start: 5, end: 1}\n",
			wantErr: "range start 5 is after end 1",
		},
		{
			name:    "negative order",
			content: "name: bad\ndate_column: date\nmax_order: -2\n",
			wantErr: "max_order must be >= 0",
		},
		{
			name:    "text periods",
			content: "name: bad\ndate_column: date\nperiods: weekly\n",
			wantErr: "parsing recipe file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeRecipe(t, dir, "bad.yaml", tt.content)

			_, err := NewFileSystemRepository(dir)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("got %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestFileSystemRepository_DuplicateNames(t *testing.T) {
	dir := t.TempDir()
	writeRecipe(t, dir, "a.yaml", "name: weekly\ndate_column: date\n")
	writeRecipe(t, dir, "b.yaml", "name: weekly\ndate_column: ts\n")

	_, err := NewFileSystemRepository(dir)
	if err == nil || !strings.Contains(err.Error(), "duplicate recipe name") {
		t.Fatalf("got %v, want duplicate name error", err)
	}
}

func TestFileSystemRepository_PathIsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recipes.yaml")
	writeRecipe(t, filepath.Dir(path), filepath.Base(path), "name: x\n")

	_, err := NewFileSystemRepository(path)
	if err == nil || !strings.Contains(err.Error(), "is not a directory") {
		t.Fatalf("got %v, want not a directory error", err)
	}
}
