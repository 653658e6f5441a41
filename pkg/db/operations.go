package db

import (
	"fmt"
	"net/url"
	"time"

	"github.com/recetly/recipe-parser/models"
)

// ExtractionRecord is one stored preview row.
type ExtractionRecord struct {
	ID               int64     `json:"extraction_id" yaml:"extraction_id"`
	URL              string    `json:"url" yaml:"url"`
	Domain           string    `json:"domain" yaml:"domain"`
	Title            string    `json:"title" yaml:"title"`
	IngredientsCount int       `json:"ingredients_count" yaml:"ingredients_count"`
	PrepTimeMin      int       `json:"prep_time_min" yaml:"prep_time_min"`
	CookTimeMin      int       `json:"cook_time_min" yaml:"cook_time_min"`
	TotalTimeMin     int       `json:"total_time_min" yaml:"total_time_min"`
	Servings         int       `json:"servings" yaml:"servings"`
	RecipeType       string    `json:"recipe_type" yaml:"recipe_type"`
	Language         string    `json:"language" yaml:"language"`
	Confidence       int       `json:"confidence" yaml:"confidence"`
	Tier             string    `json:"tier" yaml:"tier"`
	CreatedAt        time.Time `json:"created_at" yaml:"created_at"`
}

// InsertExtraction records a preview together with its acquisition tier.
func (db *DB) InsertExtraction(p *models.RecipePreview, tier string, degraded bool) (int64, error) {
	result, err := db.Exec(`
		INSERT INTO extractions
			(url, domain, title, description, ingredients_count, prep_time_min,
			 cook_time_min, total_time_min, servings, image_url, recipe_type,
			 language, confidence, tier, degraded)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.SourceURL, domainOf(p.SourceURL), p.Title, p.Description,
		p.IngredientsCount, p.PrepTimeMin, p.CookTimeMin, p.TotalTimeMin,
		p.Servings, p.ImageURL, p.RecipeType.String(), p.Language,
		p.Confidence, tier, degraded)
	if err != nil {
		return 0, fmt.Errorf("failed to insert extraction: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get extraction ID: %w", err)
	}
	return id, nil
}

// ListExtractions returns the most recent rows, optionally filtered by
// domain. A limit of 0 means 50.
func (db *DB) ListExtractions(domain string, limit int) ([]ExtractionRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT extraction_id, url, domain, title, ingredients_count,
		       prep_time_min, cook_time_min, total_time_min, servings,
		       recipe_type, language, confidence, tier, created_at
		FROM extractions`
	args := []interface{}{}
	if domain != "" {
		query += " WHERE domain = ?"
		args = append(args, domain)
	}
	query += " ORDER BY created_at DESC, extraction_id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query extractions: %w", err)
	}
	defer rows.Close()

	var records []ExtractionRecord
	for rows.Next() {
		var r ExtractionRecord
		if err := rows.Scan(&r.ID, &r.URL, &r.Domain, &r.Title,
			&r.IngredientsCount, &r.PrepTimeMin, &r.CookTimeMin,
			&r.TotalTimeMin, &r.Servings, &r.RecipeType, &r.Language,
			&r.Confidence, &r.Tier, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan extraction: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// InsertDetection records a multi-recipe scan and its candidate stubs.
func (db *DB) InsertDetection(sourceURL string, isMultiple bool, candidates []models.RecipeCandidate) (int64, error) {
	result, err := db.Exec(`
		INSERT INTO detections (url, domain, is_multiple, candidate_count)
		VALUES (?, ?, ?, ?)
	`, sourceURL, domainOf(sourceURL), isMultiple, len(candidates))
	if err != nil {
		return 0, fmt.Errorf("failed to insert detection: %w", err)
	}

	detectionID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get detection ID: %w", err)
	}

	for _, c := range candidates {
		_, err := db.Exec(`
			INSERT INTO candidates
				(detection_id, stub_id, title, difficulty, cook_time_min,
				 servings, ingredients_count, category, image_url)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, detectionID, c.ID, c.Title, c.Difficulty.String(), c.CookTimeMin,
			c.Servings, c.IngredientsCount, c.Category.String(), c.ImageURL)
		if err != nil {
			return 0, fmt.Errorf("failed to insert candidate: %w", err)
		}
	}

	return detectionID, nil
}

// CountExtractions returns the number of stored extraction rows.
func (db *DB) CountExtractions() (int, error) {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM extractions").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count extractions: %w", err)
	}
	return count, nil
}

func domainOf(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return parsed.Hostname()
}
