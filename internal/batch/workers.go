package batch

import (
	"context"
	"log/slog"
	"sync"

	"github.com/recetly/recipe-parser/models"
	"github.com/recetly/recipe-parser/pkg/engine"
)

// Job defines a task for a worker to perform.
type Job struct {
	URL string
}

// Result holds the outcome of a processed job.
type Result struct {
	URL      string                `json:"url"`
	Preview  *models.RecipePreview `json:"preview,omitempty"`
	Tier     string                `json:"tier,omitempty"`
	Degraded bool                  `json:"degraded,omitempty"`
	Err      error                 `json:"-"`
	Error    string                `json:"error,omitempty"`
}

// Run fans the URLs out over workerCount goroutines and collects results in
// input order.
func Run(ctx context.Context, eng *engine.Engine, urls []string, workerCount int, logger *slog.Logger) []Result {
	if workerCount <= 0 {
		workerCount = 4
	}
	if logger == nil {
		logger = slog.Default()
	}

	jobs := make(chan Job, len(urls))
	results := make(chan Result, len(urls))

	var wg sync.WaitGroup
	for w := 1; w <= workerCount; w++ {
		wg.Add(1)
		go worker(ctx, w, eng, logger, &wg, jobs, results)
	}

	for _, u := range urls {
		jobs <- Job{URL: u}
	}
	close(jobs)

	wg.Wait()
	close(results)

	byURL := make(map[string]Result, len(urls))
	for r := range results {
		byURL[r.URL] = r
	}
	ordered := make([]Result, 0, len(urls))
	for _, u := range urls {
		ordered = append(ordered, byURL[u])
	}
	return ordered
}

func worker(ctx context.Context, id int, eng *engine.Engine, logger *slog.Logger, wg *sync.WaitGroup, jobs <-chan Job, results chan<- Result) {
	defer wg.Done()
	for job := range jobs {
		logger.Info("worker started job", "worker", id, "url", job.URL)

		preview, doc, err := eng.ExtractWithDocument(ctx, job.URL)
		result := Result{URL: job.URL}
		if err != nil {
			result.Err = err
			result.Error = err.Error()
		} else {
			result.Preview = preview
			result.Tier = doc.Tier.String()
			result.Degraded = doc.Degraded
		}
		results <- result

		logger.Info("worker finished job", "worker", id, "url", job.URL)
	}
}
