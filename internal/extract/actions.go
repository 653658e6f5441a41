// Package extract implements the single-recipe extraction command.
package extract

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/recetly/recipe-parser/internal/common"
	"github.com/recetly/recipe-parser/models"
	"github.com/recetly/recipe-parser/pkg/db"
	"github.com/recetly/recipe-parser/pkg/engine"
)

// Action handles `recipe-parser extract --url <url>`.
func Action(c *cli.Context) error {
	logger := common.NewLogger(c.Bool("quiet"))

	cfg, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyFlags(cfg, c)

	eng := engine.New(cfg, logger)
	preview, doc, err := eng.ExtractWithDocument(c.Context, c.String("url"))
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	if c.Bool("save") {
		database, err := db.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer database.Close()

		id, err := database.InsertExtraction(preview, doc.Tier.String(), doc.Degraded)
		if err != nil {
			return fmt.Errorf("failed to save extraction: %w", err)
		}
		logger.Info("extraction saved", "extraction_id", id)
	}

	return common.PrintResult(preview, c.String("format"))
}

func applyFlags(cfg *models.Config, c *cli.Context) {
	if c.IsSet("service-endpoint") {
		cfg.ExtractorEndpoint = c.String("service-endpoint")
	}
	if c.IsSet("timeout") {
		cfg.FetchTimeout = c.Duration("timeout")
	}
	if c.IsSet("db") {
		cfg.DBPath = c.String("db")
	}
}
