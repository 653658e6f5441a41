// Package engine is the public face of the extraction pipeline: acquisition,
// single-recipe preview building, and multi-recipe detection behind two
// calls. It is stateless between invocations; concurrent requests need no
// coordination.
package engine

import (
	"context"
	"log/slog"

	"github.com/recetly/recipe-parser/models"
	"github.com/recetly/recipe-parser/pkg/acquirer"
	"github.com/recetly/recipe-parser/pkg/patterns"
	"github.com/recetly/recipe-parser/pkg/preview"
	"github.com/recetly/recipe-parser/pkg/segmenter"
)

// Engine wires the acquirer, preview builder, and segmenter together.
type Engine struct {
	acquirer  *acquirer.Acquirer
	builder   *preview.Builder
	segmenter *segmenter.Segmenter
	logger    *slog.Logger
}

func New(cfg *models.Config, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	lib := patterns.Default()
	return &Engine{
		acquirer:  acquirer.New(cfg, logger),
		builder:   preview.NewBuilder(lib, logger),
		segmenter: segmenter.New(lib, logger),
		logger:    logger,
	}
}

// ExtractSingleRecipePreview acquires the document and builds one preview.
// It errors only on a malformed URL; everything downstream degrades to
// defaults and a low confidence score.
func (e *Engine) ExtractSingleRecipePreview(ctx context.Context, url string) (*models.RecipePreview, error) {
	p, _, err := e.ExtractWithDocument(ctx, url)
	return p, err
}

// ExtractWithDocument also returns the acquired document so callers can
// record acquisition details (tier, degradation) alongside the preview.
func (e *Engine) ExtractWithDocument(ctx context.Context, url string) (*models.RecipePreview, *models.RawDocument, error) {
	doc, err := e.acquirer.Acquire(ctx, url)
	if err != nil {
		return nil, nil, err
	}
	e.logger.Info("document acquired", "url", url, "tier", doc.Tier.String(), "degraded", doc.Degraded)
	return e.builder.Build(doc), doc, nil
}

// Detection is the result of a multi-recipe scan. When IsMultiple is false
// the document was treated as a single recipe and Preview is set.
type Detection struct {
	IsMultiple bool                     `json:"is_multiple"`
	Candidates []models.RecipeCandidate `json:"candidates,omitempty"`
	Preview    *models.RecipePreview    `json:"preview,omitempty"`
}

// DetectMultipleRecipes acquires the document and segments it. Documents with
// fewer than two distinct candidates fall back to a single full preview.
func (e *Engine) DetectMultipleRecipes(ctx context.Context, url string) (*Detection, error) {
	doc, err := e.acquirer.Acquire(ctx, url)
	if err != nil {
		return nil, err
	}

	candidates := e.segmenter.Segment(doc)
	if len(candidates) >= 2 {
		e.logger.Info("multiple recipes detected", "url", url, "count", len(candidates))
		return &Detection{IsMultiple: true, Candidates: candidates}, nil
	}
	return &Detection{IsMultiple: false, Preview: e.builder.Build(doc)}, nil
}

// ExtractCandidate deep-extracts one previously detected candidate by
// re-running the preview builder scoped to its document section.
func (e *Engine) ExtractCandidate(ctx context.Context, url string, cand models.RecipeCandidate) (*models.RecipePreview, error) {
	doc, err := e.acquirer.Acquire(ctx, url)
	if err != nil {
		return nil, err
	}
	return e.builder.BuildForCandidate(doc, cand), nil
}
