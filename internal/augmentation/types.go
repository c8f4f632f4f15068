package augmentation

import (
	"github.com/aevon-lab/tsfeatures/internal/core/fourier"
	"github.com/aevon-lab/tsfeatures/internal/core/recipe"
)

// AugmentRequest is the body of POST /v1/fourier.
type AugmentRequest struct {
	DateColumn string             `json:"date_column" binding:"required"`
	GroupBy    []string           `json:"group_by"`
	Periods    fourier.PeriodSpec `json:"periods"`
	MaxOrder   int                `json:"max_order"`
	Engine     string             `json:"engine"`
	// DateLayout is a Go reference layout; the server default applies when empty.
	DateLayout string `json:"date_layout"`
	// Columns fixes the column order of the table built from Rows.
	Columns []string                 `json:"columns"`
	Rows    []map[string]interface{} `json:"rows" binding:"required"`
}

// ApplyRecipeRequest is the body of POST /v1/recipes/:name/apply.
type ApplyRecipeRequest struct {
	DateLayout string                   `json:"date_layout"`
	Columns    []string                 `json:"columns"`
	Rows       []map[string]interface{} `json:"rows" binding:"required"`
}

// AugmentResponse carries the augmented table back as row objects. Missing
// and non-finite values are null.
type AugmentResponse struct {
	RunID      string                   `json:"run_id"`
	Recipe     string                   `json:"recipe,omitempty"`
	Engine     string                   `json:"engine"`
	DateColumn string                   `json:"date_column"`
	Periods    []int                    `json:"periods"`
	MaxOrder   int                      `json:"max_order"`
	Columns    []string                 `json:"columns"`
	Generated  []string                 `json:"generated"`
	RowCount   int                      `json:"row_count"`
	Rows       []map[string]interface{} `json:"rows"`
}

type RecipeListResponse struct {
	Recipes []recipe.Recipe `json:"recipes"`
}

// job is one resolved augmentation, whichever endpoint it came from.
type job struct {
	recipe  string
	groupBy []string
	opts    fourier.Options
	layout  string
	columns []string
	rows    []map[string]interface{}
}
