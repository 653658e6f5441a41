package db

import (
	"path/filepath"
	"testing"

	"github.com/recetly/recipe-parser/models"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	database, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func samplePreview(url string) *models.RecipePreview {
	return &models.RecipePreview{
		Title:            "Pollo al horno con limón",
		Description:      "El clásico pollo asado de los domingos.",
		IngredientsCount: 7,
		PrepTimeMin:      15,
		CookTimeMin:      45,
		TotalTimeMin:     60,
		Servings:         6,
		ImageURL:         "https://example.com/img/pollo.jpg",
		SourceURL:        url,
		RecipeType:       models.CategoryChicken,
		Language:         "es",
		Confidence:       100,
	}
}

func TestInsertAndListExtractions(t *testing.T) {
	database := setupTestDB(t)

	id, err := database.InsertExtraction(samplePreview("https://cocina.example.com/recetas/pollo"), "raw_fetch", false)
	if err != nil {
		t.Fatalf("InsertExtraction: %v", err)
	}
	if id == 0 {
		t.Error("expected a non-zero extraction ID")
	}
	if _, err := database.InsertExtraction(samplePreview("https://otro.example.org/paella"), "service", false); err != nil {
		t.Fatalf("InsertExtraction: %v", err)
	}

	records, err := database.ListExtractions("", 0)
	if err != nil {
		t.Fatalf("ListExtractions: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}

	// Newest first.
	if records[0].URL != "https://otro.example.org/paella" {
		t.Errorf("records[0].URL = %q, want the most recent insert", records[0].URL)
	}
	r := records[1]
	if r.Domain != "cocina.example.com" {
		t.Errorf("Domain = %q", r.Domain)
	}
	if r.Title != "Pollo al horno con limón" || r.RecipeType != "chicken" || r.Language != "es" {
		t.Errorf("row fields = %+v", r)
	}
	if r.Tier != "raw_fetch" || r.Confidence != 100 || r.TotalTimeMin != 60 {
		t.Errorf("row fields = %+v", r)
	}
	if r.CreatedAt.IsZero() {
		t.Error("CreatedAt should be populated")
	}
}

func TestListExtractionsDomainFilter(t *testing.T) {
	database := setupTestDB(t)

	for _, url := range []string{
		"https://a.example.com/uno",
		"https://b.example.com/dos",
		"https://a.example.com/tres",
	} {
		if _, err := database.InsertExtraction(samplePreview(url), "stub", true); err != nil {
			t.Fatalf("InsertExtraction: %v", err)
		}
	}

	records, err := database.ListExtractions("a.example.com", 10)
	if err != nil {
		t.Fatalf("ListExtractions: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2 for the domain", len(records))
	}
	for _, r := range records {
		if r.Domain != "a.example.com" {
			t.Errorf("Domain = %q", r.Domain)
		}
	}

	limited, err := database.ListExtractions("", 1)
	if err != nil {
		t.Fatalf("ListExtractions: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("got %d records, want the limit of 1", len(limited))
	}
}

func TestInsertDetection(t *testing.T) {
	database := setupTestDB(t)

	candidates := []models.RecipeCandidate{
		{ID: "candidate-1", Title: "Paella valenciana", Difficulty: models.DifficultyMedium,
			CookTimeMin: 40, Servings: 4, IngredientsCount: 8, Category: models.CategoryRice},
		{ID: "candidate-2", Title: "Arroz negro", Difficulty: models.DifficultyMedium,
			CookTimeMin: 30, Servings: 4, IngredientsCount: 8, Category: models.CategoryRice},
	}

	detectionID, err := database.InsertDetection("https://example.com/especial-arroz", true, candidates)
	if err != nil {
		t.Fatalf("InsertDetection: %v", err)
	}
	if detectionID == 0 {
		t.Error("expected a non-zero detection ID")
	}

	var count int
	if err := database.QueryRow(
		"SELECT COUNT(*) FROM candidates WHERE detection_id = ?", detectionID).Scan(&count); err != nil {
		t.Fatalf("count candidates: %v", err)
	}
	if count != 2 {
		t.Errorf("stored %d candidates, want 2", count)
	}

	var title, difficulty string
	if err := database.QueryRow(
		"SELECT title, difficulty FROM candidates WHERE stub_id = 'candidate-1'").Scan(&title, &difficulty); err != nil {
		t.Fatalf("read candidate: %v", err)
	}
	if title != "Paella valenciana" || difficulty != "medium" {
		t.Errorf("candidate row = %q/%q", title, difficulty)
	}
}

func TestCountExtractions(t *testing.T) {
	database := setupTestDB(t)

	count, err := database.CountExtractions()
	if err != nil {
		t.Fatalf("CountExtractions: %v", err)
	}
	if count != 0 {
		t.Errorf("count = %d, want 0 on a fresh database", count)
	}

	if _, err := database.InsertExtraction(samplePreview("https://example.com/x"), "service", false); err != nil {
		t.Fatalf("InsertExtraction: %v", err)
	}
	count, err = database.CountExtractions()
	if err != nil {
		t.Fatalf("CountExtractions: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}
