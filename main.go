package main

import (
	"log"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/recetly/recipe-parser/internal/batch"
	"github.com/recetly/recipe-parser/internal/detect"
	"github.com/recetly/recipe-parser/internal/extract"
	"github.com/recetly/recipe-parser/internal/history"
)

func main() {
	app := &cli.App{
		Name:  "recipe-parser",
		Usage: "extract structured recipe records from arbitrary web pages",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Value: "config.yaml", Usage: "path to YAML config file"},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "log errors only"},
		},
		Commands: []*cli.Command{
			{
				Name:  "extract",
				Usage: "extract a single recipe preview from a URL",
				Flags: append(sharedFlags(),
					&cli.StringFlag{Name: "url", Required: true, Usage: "page to extract"},
				),
				Action: extract.Action,
			},
			{
				Name:  "detect",
				Usage: "detect multiple recipes on a page and list candidate stubs",
				Flags: append(sharedFlags(),
					&cli.StringFlag{Name: "url", Required: true, Usage: "page to scan"},
				),
				Action: detect.Action,
				Subcommands: []*cli.Command{
					{
						Name:  "candidate",
						Usage: "deep-extract one previously detected candidate",
						Flags: append(sharedFlags(),
							&cli.StringFlag{Name: "url", Required: true, Usage: "page the candidate was found on"},
							&cli.StringFlag{Name: "title", Required: true, Usage: "candidate title (section anchor)"},
						),
						Action: detect.CandidateAction,
					},
				},
			},
			{
				Name:  "batch",
				Usage: "extract many URLs concurrently",
				Flags: append(sharedFlags(),
					&cli.StringFlag{Name: "urls", Usage: "comma-separated URLs"},
					&cli.StringFlag{Name: "file", Usage: "file with one URL per line"},
					&cli.IntFlag{Name: "workers", Value: 4, Usage: "concurrent workers"},
				),
				Action: batch.Action,
			},
			{
				Name:  "history",
				Usage: "list stored extraction results",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "config", Value: "config.yaml", Usage: "path to YAML config file"},
					&cli.StringFlag{Name: "db", Usage: "database path override"},
					&cli.StringFlag{Name: "domain", Usage: "filter by source domain"},
					&cli.IntFlag{Name: "limit", Value: 50, Usage: "max rows"},
					&cli.StringFlag{Name: "format", Value: "json", Usage: "output format: json or yaml"},
				},
				Action: history.Action,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func sharedFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "config", Value: "config.yaml", Usage: "path to YAML config file"},
		&cli.StringFlag{Name: "service-endpoint", Usage: "content-extraction service endpoint (tier 1)"},
		&cli.DurationFlag{Name: "timeout", Value: 10 * time.Second, Usage: "network fetch timeout"},
		&cli.BoolFlag{Name: "save", Usage: "record the result in the history database"},
		&cli.StringFlag{Name: "db", Usage: "database path override"},
		&cli.StringFlag{Name: "format", Value: "json", Usage: "output format: json or yaml"},
		&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "log errors only"},
	}
}
