// Package history implements querying of stored extraction results.
package history

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/recetly/recipe-parser/internal/common"
	"github.com/recetly/recipe-parser/models"
	"github.com/recetly/recipe-parser/pkg/db"
)

// Action handles `recipe-parser history`.
func Action(c *cli.Context) error {
	cfg, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if c.IsSet("db") {
		cfg.DBPath = c.String("db")
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	records, err := database.ListExtractions(c.String("domain"), c.Int("limit"))
	if err != nil {
		return fmt.Errorf("failed to list extractions: %w", err)
	}
	if len(records) == 0 {
		fmt.Println("No stored extractions")
		return nil
	}

	return common.PrintResult(records, c.String("format"))
}
