// Package batch implements concurrent extraction of many URLs. The engine is
// stateless, so workers share one instance with no coordination.
package batch

import (
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/recetly/recipe-parser/internal/common"
	"github.com/recetly/recipe-parser/models"
	"github.com/recetly/recipe-parser/pkg/db"
	"github.com/recetly/recipe-parser/pkg/engine"
)

// Action handles `recipe-parser batch --urls a,b,c` or `--file urls.txt`.
func Action(c *cli.Context) error {
	logger := common.NewLogger(c.Bool("quiet"))

	cfg, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if c.IsSet("workers") {
		cfg.WorkerCount = c.Int("workers")
	}
	if c.IsSet("db") {
		cfg.DBPath = c.String("db")
	}

	urls, err := collectURLs(c)
	if err != nil {
		return err
	}
	if len(urls) == 0 {
		return fmt.Errorf("no URLs provided; use --urls or --file")
	}

	var database *db.DB
	if c.Bool("save") {
		database, err = db.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer database.Close()
	}

	eng := engine.New(cfg, logger)
	logger.Info("starting batch extraction", "url_count", len(urls), "workers", cfg.WorkerCount)

	results := Run(c.Context, eng, urls, cfg.WorkerCount, logger)

	succeeded := 0
	for _, r := range results {
		if r.Err != nil {
			logger.Error("extraction failed", "url", r.URL, "error", r.Err)
			continue
		}
		succeeded++
		if database != nil {
			if _, err := database.InsertExtraction(r.Preview, r.Tier, r.Degraded); err != nil {
				logger.Error("failed to save extraction", "url", r.URL, "error", err)
			}
		}
	}

	fmt.Fprintf(os.Stderr, "Extracted %d/%d URLs\n", succeeded, len(urls))
	return common.PrintResult(results, c.String("format"))
}

func collectURLs(c *cli.Context) ([]string, error) {
	var urls []string
	if s := c.String("urls"); s != "" {
		for _, u := range strings.Split(s, ",") {
			if u = strings.TrimSpace(u); u != "" {
				urls = append(urls, u)
			}
		}
	}
	if path := c.String("file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read URL file: %w", err)
		}
		for _, line := range strings.Split(string(data), "\n") {
			if line = strings.TrimSpace(line); line != "" && !strings.HasPrefix(line, "#") {
				urls = append(urls, line)
			}
		}
	}
	return urls, nil
}
