package batch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/recetly/recipe-parser/models"
	"github.com/recetly/recipe-parser/pkg/engine"
)

func TestRunCollectsResultsInInputOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(r.URL.Path, "/recetas/")
		fmt.Fprintf(w, "<html><body><h1>Receta de %s al horno</h1><p>%s</p></body></html>",
			name, strings.Repeat("texto de relleno ", 40))
	}))
	defer srv.Close()

	cfg := models.DefaultConfig()
	cfg.FetchTimeout = 2 * time.Second
	eng := engine.New(cfg, nil)

	urls := []string{
		srv.URL + "/recetas/pollo",
		"esto no es una url",
		srv.URL + "/recetas/salmon",
	}

	results := Run(context.Background(), eng, urls, 2, nil)
	if len(results) != len(urls) {
		t.Fatalf("got %d results, want %d", len(results), len(urls))
	}
	for i, r := range results {
		if r.URL != urls[i] {
			t.Errorf("result %d URL = %q, want input order preserved", i, r.URL)
		}
	}

	if results[0].Err != nil {
		t.Errorf("result 0 error = %v", results[0].Err)
	}
	if results[0].Preview == nil || results[0].Preview.Title != "Pollo al horno" {
		t.Errorf("result 0 preview = %+v", results[0].Preview)
	}
	if results[0].Tier != "raw_fetch" {
		t.Errorf("result 0 tier = %q", results[0].Tier)
	}

	if results[1].Err == nil || results[1].Error == "" {
		t.Error("result 1 should carry the invalid-url error")
	}
	if results[1].Preview != nil {
		t.Error("result 1 should have no preview")
	}

	if results[2].Err != nil {
		t.Errorf("result 2 error = %v", results[2].Err)
	}
}

func TestRunWithZeroWorkersStillProcesses(t *testing.T) {
	eng := engine.New(models.DefaultConfig(), nil)
	results := Run(context.Background(), eng, []string{"tampoco es una url"}, 0, nil)
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].Err == nil {
		t.Error("expected an invalid-url error")
	}
}
