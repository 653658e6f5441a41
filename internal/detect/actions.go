// Package detect implements the multi-recipe detection command.
package detect

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/recetly/recipe-parser/internal/common"
	"github.com/recetly/recipe-parser/models"
	"github.com/recetly/recipe-parser/pkg/db"
	"github.com/recetly/recipe-parser/pkg/engine"
)

// Action handles `recipe-parser detect --url <url>`.
func Action(c *cli.Context) error {
	logger := common.NewLogger(c.Bool("quiet"))

	cfg, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if c.IsSet("service-endpoint") {
		cfg.ExtractorEndpoint = c.String("service-endpoint")
	}
	if c.IsSet("db") {
		cfg.DBPath = c.String("db")
	}

	eng := engine.New(cfg, logger)
	url := c.String("url")

	detection, err := eng.DetectMultipleRecipes(c.Context, url)
	if err != nil {
		return fmt.Errorf("detection failed: %w", err)
	}

	if c.Bool("save") {
		database, err := db.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer database.Close()

		id, err := database.InsertDetection(url, detection.IsMultiple, detection.Candidates)
		if err != nil {
			return fmt.Errorf("failed to save detection: %w", err)
		}
		logger.Info("detection saved", "detection_id", id, "candidates", len(detection.Candidates))
	}

	return common.PrintResult(detection, c.String("format"))
}

// CandidateAction handles `recipe-parser detect candidate`: the deferred deep
// extraction of one stub found by a previous scan.
func CandidateAction(c *cli.Context) error {
	logger := common.NewLogger(c.Bool("quiet"))

	cfg, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	eng := engine.New(cfg, logger)
	cand := models.RecipeCandidate{
		Title:         c.String("title"),
		SectionAnchor: c.String("title"),
	}

	preview, err := eng.ExtractCandidate(c.Context, c.String("url"), cand)
	if err != nil {
		return fmt.Errorf("candidate extraction failed: %w", err)
	}
	return common.PrintResult(preview, c.String("format"))
}
