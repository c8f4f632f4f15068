package augmentation

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/aevon-lab/tsfeatures/internal/core/fourier"
	"github.com/aevon-lab/tsfeatures/internal/core/recipe"
)

// Defaults fill request fields left unset.
type Defaults struct {
	Engine     string
	MaxOrder   int
	DateLayout string
}

type Service struct {
	augmenter        *fourier.Augmenter
	recipes          recipe.Repository
	defaults         Defaults
	maxBodySizeBytes int
	newRunID         func() string
}

func NewService(aug *fourier.Augmenter, recipes recipe.Repository, defaults Defaults, maxBodySizeMB int) *Service {
	if aug == nil {
		panic("augmentation: augmenter must not be nil")
	}
	if recipes == nil {
		panic("augmentation: recipe repository must not be nil")
	}
	if maxBodySizeMB <= 0 {
		maxBodySizeMB = 1 // default to 1MB
	}
	if defaults.Engine == "" {
		defaults.Engine = fourier.DefaultEngine
	}
	if defaults.MaxOrder <= 0 {
		defaults.MaxOrder = 1
	}
	return &Service{
		augmenter:        aug,
		recipes:          recipes,
		defaults:         defaults,
		maxBodySizeBytes: maxBodySizeMB * 1024 * 1024,
		newRunID:         uuid.NewString,
	}
}

// RegisterRoutes registers the augmentation service routes.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.POST("/v1/fourier", s.AugmentHandler)
	r.GET("/v1/recipes", s.ListRecipesHandler)
	r.GET("/v1/recipes/:name", s.GetRecipeHandler)
	r.POST("/v1/recipes/:name/apply", s.ApplyRecipeHandler)
}
