package augmentation

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	httperr "github.com/aevon-lab/tsfeatures/internal/core/errors"
	"github.com/aevon-lab/tsfeatures/internal/core/fourier"
	"github.com/aevon-lab/tsfeatures/internal/core/frame"
	"github.com/aevon-lab/tsfeatures/internal/core/recipe"
)

const (
	msgReadBodyFailed  = "Failed to read request body"
	msgInvalidJSON     = "Invalid JSON body"
	msgAugmentFailed   = "Failed to augment table"
	msgRecipesFailed   = "Failed to list recipes"
	msgRecipeNotFound  = "Recipe not found"
	msgBodyTooLarge    = "Request body exceeds maximum allowed size"
	msgInvalidRowsBase = "Rows do not form a valid table"
)

// apiError carries the structured HTTP error shape from a helper back to the handler.
// Helpers return this instead of writing to gin.Context directly, keeping them decoupled from HTTP.
type apiError struct {
	statusCode int
	errorType  string
	message    string
	details    interface{}
}

func (e *apiError) Error() string {
	return e.message
}

// AugmentHandler handles POST /v1/fourier.
func (s *Service) AugmentHandler(c *gin.Context) {
	var req AugmentRequest
	if err := s.bindBody(c, &req); err != nil {
		writeError(c, err)
		return
	}

	s.run(c, job{
		groupBy: req.GroupBy,
		opts: fourier.Options{
			DateColumn: req.DateColumn,
			Periods:    req.Periods,
			MaxOrder:   req.MaxOrder,
			Engine:     req.Engine,
		},
		layout:  req.DateLayout,
		columns: req.Columns,
		rows:    req.Rows,
	})
}

// ListRecipesHandler handles GET /v1/recipes.
func (s *Service) ListRecipesHandler(c *gin.Context) {
	recipes, err := s.recipes.List(c.Request.Context())
	if err != nil {
		slog.Error("[Recipes] Failed to list recipes", "error", err)
		writeError(c, &apiError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgRecipesFailed,
		})
		return
	}
	c.JSON(http.StatusOK, RecipeListResponse{Recipes: recipes})
}

// GetRecipeHandler handles GET /v1/recipes/:name.
func (s *Service) GetRecipeHandler(c *gin.Context) {
	rec, apiErr := s.lookupRecipe(c)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// ApplyRecipeHandler handles POST /v1/recipes/:name/apply.
func (s *Service) ApplyRecipeHandler(c *gin.Context) {
	rec, apiErr := s.lookupRecipe(c)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}

	var req ApplyRecipeRequest
	if err := s.bindBody(c, &req); err != nil {
		writeError(c, err)
		return
	}

	s.run(c, job{
		recipe:  rec.Name,
		groupBy: rec.GroupBy,
		opts:    rec.Options(),
		layout:  req.DateLayout,
		columns: req.Columns,
		rows:    req.Rows,
	})
}

func (s *Service) lookupRecipe(c *gin.Context) (*recipe.Recipe, *apiError) {
	name := c.Param("name")
	rec, err := s.recipes.Get(c.Request.Context(), name)
	if err == nil {
		return rec, nil
	}
	if errors.Is(err, recipe.ErrNotFound) {
		return nil, &apiError{
			statusCode: http.StatusNotFound,
			errorType:  httperr.HttpRecipeNotFoundError,
			message:    msgRecipeNotFound,
			details:    map[string]interface{}{"recipe": name},
		}
	}
	slog.Error("[Recipes] Failed to load recipe", "recipe", name, "error", err)
	return nil, &apiError{
		statusCode: http.StatusInternalServerError,
		errorType:  httperr.HttpInternalError,
		message:    err.Error(),
	}
}

// bindBody reads the size-limited request body and binds it into dst.
func (s *Service) bindBody(c *gin.Context, dst interface{}) *apiError {
	maxBytes := int64(s.maxBodySizeBytes)
	limitedBody := io.LimitReader(c.Request.Body, maxBytes+1) // +1 to detect oversized requests

	bodyBytes, err := io.ReadAll(limitedBody)
	if err != nil {
		slog.Error("Failed to read request body", "error", err)
		return &apiError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgReadBodyFailed,
		}
	}

	if int64(len(bodyBytes)) > maxBytes {
		slog.Warn("Request body exceeds maximum size", "size", len(bodyBytes), "max", maxBytes)
		return &apiError{
			statusCode: http.StatusRequestEntityTooLarge,
			errorType:  httperr.HttpPayloadTooLargeError,
			message:    msgBodyTooLarge,
			details: map[string]interface{}{
				"max_size_mb": maxBytes / (1024 * 1024),
			},
		}
	}

	c.Request.Body = io.NopCloser(bytes.NewReader(bodyBytes))

	if err := c.ShouldBindJSON(dst); err != nil {
		var specErr *fourier.InvalidPeriodSpecError
		if errors.As(err, &specErr) {
			return &apiError{
				statusCode: http.StatusBadRequest,
				errorType:  httperr.HttpInvalidPeriodsError,
				message:    specErr.Error(),
				details:    specErr.Details(),
			}
		}
		slog.Warn("Invalid JSON body received", "error", err, "payload_size", len(bodyBytes))
		return &apiError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidJsonError,
			message:    msgInvalidJSON,
			details:    map[string]interface{}{"reason": err.Error()},
		}
	}
	return nil
}

// run builds the table, augments it and writes the response.
func (s *Service) run(c *gin.Context, j job) {
	runID := s.newRunID()

	if j.opts.Engine == "" {
		j.opts.Engine = s.defaults.Engine
	}
	if j.opts.MaxOrder == 0 {
		j.opts.MaxOrder = s.defaults.MaxOrder
	}
	if j.layout == "" {
		j.layout = s.defaults.DateLayout
	}

	// The engine is checked before any row is parsed.
	if err := s.augmenter.CheckEngine(j.opts.Engine); err != nil {
		slog.Warn("[Augment] Augmentation rejected", "run_id", runID, "error", err)
		writeError(c, classify(err))
		return
	}

	data, apiErr := buildData(j)
	if apiErr != nil {
		slog.Warn("[Augment] Rejected rows", "run_id", runID, "error", apiErr.message)
		writeError(c, apiErr)
		return
	}

	out, err := s.augmenter.Augment(data, j.opts)
	if err != nil {
		apiErr := classify(err)
		if apiErr.statusCode >= http.StatusInternalServerError {
			slog.Error("[Augment] Augmentation failed", "run_id", runID, "error", err)
		} else {
			slog.Warn("[Augment] Augmentation rejected", "run_id", runID, "error", err)
		}
		writeError(c, apiErr)
		return
	}

	groups := 0
	if g, ok := data.(*frame.Grouped); ok {
		groups = g.NumGroups()
	}

	// Augment validated the periods already.
	periods, _ := j.opts.Periods.Periods()
	generated := fourier.BuildPlan(j.opts.DateColumn, periods, j.opts.MaxOrder).Names()

	slog.Info("[Augment] Request completed",
		"run_id", runID,
		"recipe", j.recipe,
		"engine", j.opts.Engine,
		"rows", out.NumRows(),
		"groups", groups,
		"generated", len(generated))

	c.JSON(http.StatusOK, AugmentResponse{
		RunID:      runID,
		Recipe:     j.recipe,
		Engine:     j.opts.Engine,
		DateColumn: j.opts.DateColumn,
		Periods:    periods,
		MaxOrder:   j.opts.MaxOrder,
		Columns:    out.Names(),
		Generated:  generated,
		RowCount:   out.NumRows(),
		Rows:       frame.Records(out, j.layout),
	})
}

func buildData(j job) (frame.Data, *apiError) {
	tbl, err := frame.FromRecords(j.rows, frame.RecordOptions{
		Columns:     j.columns,
		TimeColumns: []string{j.opts.DateColumn},
		TimeLayout:  j.layout,
	})
	if err != nil {
		return nil, &apiError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidRowsError,
			message:    msgInvalidRowsBase,
			details:    map[string]interface{}{"reason": err.Error()},
		}
	}
	if len(j.groupBy) == 0 {
		return tbl, nil
	}
	grouped, err := frame.GroupBy(tbl, j.groupBy...)
	if err != nil {
		return nil, &apiError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidRowsError,
			message:    msgInvalidRowsBase,
			details:    map[string]interface{}{"reason": err.Error()},
		}
	}
	return grouped, nil
}

// classify maps augmentation errors to HTTP errors.
func classify(err error) *apiError {
	var details interface{}
	var d fourier.Detailer
	if errors.As(err, &d) {
		details = d.Details()
	}

	e := &apiError{statusCode: http.StatusBadRequest, message: err.Error(), details: details}
	switch {
	case errors.Is(err, fourier.ErrUnsupportedEngine):
		e.errorType = httperr.HttpUnsupportedEngineError
	case errors.Is(err, fourier.ErrInvalidColumn):
		e.errorType = httperr.HttpInvalidColumnError
	case errors.Is(err, fourier.ErrInvalidPeriodSpec):
		e.errorType = httperr.HttpInvalidPeriodsError
	case errors.Is(err, fourier.ErrInvalidOrder):
		e.errorType = httperr.HttpInvalidOrderError
	case errors.Is(err, fourier.ErrDegenerateScale):
		e.statusCode = http.StatusUnprocessableEntity
		e.errorType = httperr.HttpDegenerateScaleError
	default:
		return &apiError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgAugmentFailed,
		}
	}
	return e
}

// writeError serializes an apiError as the JSON HTTP response.
func writeError(c *gin.Context, err *apiError) {
	c.JSON(err.statusCode, httperr.ErrorResponse{
		ErrorType: err.errorType,
		Message:   err.message,
		Details:   err.details,
	})
}
