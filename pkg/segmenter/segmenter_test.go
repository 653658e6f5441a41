package segmenter

import (
	"fmt"
	"strings"
	"testing"

	"github.com/recetly/recipe-parser/models"
)

func segRaw(html string) *models.RawDocument {
	return &models.RawDocument{
		SourceURL: "https://example.com/recetas/especial-arroz",
		HTML:      html,
	}
}

func TestSegmentRoundupPage(t *testing.T) {
	s := New(nil, nil)
	html := `<html><body>
<h1>Tres recetas de arroz para el verano</h1>
<section><h2>Paella valenciana</h2><img src="/img/paella.jpg"><p>texto</p></section>
<section><h2>Arroz negro con alioli</h2><p>texto</p></section>
<section><h2>Ensalada campera</h2><p>texto</p></section>
<h2>Comentarios</h2>
</body></html>`

	got := s.Segment(segRaw(html))
	if len(got) != 3 {
		t.Fatalf("got %d candidates, want 3 food headings", len(got))
	}
	// Section recipes in document order; "Comentarios" is boilerplate and
	// must be dropped.
	wantTitles := []string{
		"Paella valenciana",
		"Arroz negro con alioli",
		"Ensalada campera",
	}
	for i, want := range wantTitles {
		if got[i].Title != want {
			t.Errorf("candidate %d title = %q, want %q", i, got[i].Title, want)
		}
	}
	for i, c := range got {
		if c.ID != fmt.Sprintf("candidate-%d", i+1) {
			t.Errorf("candidate %d ID = %q", i, c.ID)
		}
		if c.IsExtracted {
			t.Errorf("candidate %d should be a lazy stub", i)
		}
		if c.SectionAnchor != c.Title {
			t.Errorf("candidate %d anchor = %q, want its title", i, c.SectionAnchor)
		}
		if c.CookTimeMin <= 0 || c.Servings <= 0 || c.IngredientsCount <= 0 {
			t.Errorf("candidate %d is missing estimated fields: %+v", i, c)
		}
		if c.SourceURL != "https://example.com/recetas/especial-arroz" {
			t.Errorf("candidate %d SourceURL = %q", i, c.SourceURL)
		}
	}
	if got[0].ImageURL != "/img/paella.jpg" {
		t.Errorf("paella image = %q", got[0].ImageURL)
	}
	if got[2].Category != models.CategorySalad {
		t.Errorf("ensalada category = %v, want salad", got[2].Category)
	}
}

func TestSegmentDedupesRepeatedTitles(t *testing.T) {
	s := New(nil, nil)
	html := `<html><body>
<h2>Tortilla de patatas</h2>
<h2>Gazpacho andaluz</h2>
<h3>Tortilla de patatas</h3>
<a href="/t">TORTILLA DE PATATAS</a>
</body></html>`

	got := s.Segment(segRaw(html))
	if len(got) != 2 {
		t.Fatalf("got %d candidates, want 2 after dedupe: %+v", len(got), got)
	}
	if got[0].Title != "Tortilla de patatas" || got[1].Title != "Gazpacho andaluz" {
		t.Errorf("titles = %q, %q", got[0].Title, got[1].Title)
	}
}

func TestSegmentCapsCandidates(t *testing.T) {
	s := New(nil, nil)
	var sb strings.Builder
	sb.WriteString("<html><body>")
	for i := 0; i < 15; i++ {
		fmt.Fprintf(&sb, "<h2>Receta de pollo número %c</h2>", 'A'+i)
	}
	sb.WriteString("</body></html>")

	got := s.Segment(segRaw(sb.String()))
	if len(got) != MaxCandidates {
		t.Errorf("got %d candidates, want cap of %d", len(got), MaxCandidates)
	}
}

func TestSegmentSingleRecipeFallsBackToWholeDocument(t *testing.T) {
	s := New(nil, nil)
	html := `<html><head><title>Lentejas con chorizo - Mi Blog</title></head>
<body><h1>Lentejas con chorizo</h1><p>La receta de siempre.</p></body></html>`

	got := s.Segment(segRaw(html))
	if len(got) != 1 {
		t.Fatalf("got %d candidates, want the single-recipe result: %+v", len(got), got)
	}
	if got[0].Title != "Lentejas con chorizo" {
		t.Errorf("title = %q", got[0].Title)
	}
}

func TestSegmentEmptyDocumentStillYieldsOneCandidate(t *testing.T) {
	s := New(nil, nil)
	got := s.Segment(segRaw("<html><body><p>nada que ver</p></body></html>"))
	if len(got) != 1 {
		t.Fatalf("got %d candidates, want 1", len(got))
	}
	if got[0].Title != "Untitled recipe" {
		t.Errorf("title = %q", got[0].Title)
	}
}

func TestSegmentIngredientContainerFallback(t *testing.T) {
	s := New(nil, nil)
	// Headings carry no food keywords, so the battery skips them; the two
	// ingredient containers pair each list with its preceding heading.
	html := `<html><body>
<h3>Primer plato</h3>
<ul class="ingredientes"><li>200 g de lentejas</li><li>1 cebolla</li><li>2 zanahorias</li></ul>
<h3>Segundo plato</h3>
<ul class="ingredientes"><li>4 huevos</li><li>2 patatas</li><li>aceite</li></ul>
</body></html>`

	got := s.Segment(segRaw(html))
	if len(got) != 2 {
		t.Fatalf("got %d candidates, want 2 from container fallback: %+v", len(got), got)
	}
	if got[0].Title != "Primer plato" || got[1].Title != "Segundo plato" {
		t.Errorf("titles = %q, %q", got[0].Title, got[1].Title)
	}
}
