package fields

import (
	"strings"
	"testing"

	"github.com/recetly/recipe-parser/models"
)

func newTestExtractor() *Extractor {
	return New(nil, nil, DefaultBounds())
}

func docFromHTML(t *testing.T, html string) *Doc {
	t.Helper()
	return NewDoc(&models.RawDocument{
		SourceURL: "https://example.com/recetas/pollo-al-horno",
		HTML:      html,
	})
}

const structuredHTML = `<html><head>
<title>Pollo al horno con patatas - Cocina Casera</title>
<meta name="description" content="Una receta tradicional de pollo al horno con patatas y especias, jugosa por dentro y crujiente por fuera.">
<meta property="og:image" content="https://example.com/images/pollo-og.jpg">
<script type="application/ld+json">
{
  "@context": "https://schema.org",
  "@type": "Recipe",
  "name": "Pollo al horno con patatas",
  "prepTime": "PT15M",
  "cookTime": "PT45M",
  "recipeYield": "6",
  "image": "https://example.com/images/pollo.jpg",
  "recipeIngredient": [
    "1 pollo entero",
    "4 patatas medianas",
    "2 dientes de ajo",
    "1 limón",
    "Aceite de oliva",
    "Sal",
    "Pimienta negra"
  ]
}
</script>
</head><body><h1>Pollo al horno con patatas</h1></body></html>`

func TestStructuredDataCascade(t *testing.T) {
	e := newTestExtractor()
	d := docFromHTML(t, structuredHTML)

	title := e.Title(d)
	if !title.Matched || title.RuleIndex != 0 {
		t.Fatalf("title should match the structured-data rule, got %+v", title)
	}
	if title.Value != "Pollo al horno con patatas" {
		t.Errorf("title = %q", title.Value)
	}

	prep := e.PrepTime(d)
	if !prep.Matched || prep.Value != 15 {
		t.Errorf("prep time = %+v, want matched 15", prep)
	}
	cook := e.CookTime(d)
	if !cook.Matched || cook.Value != 45 {
		t.Errorf("cook time = %+v, want matched 45", cook)
	}

	servings := e.Servings(d)
	if !servings.Matched || servings.Value != 6 {
		t.Errorf("servings = %+v, want matched 6", servings)
	}

	ingredients := e.Ingredients(d)
	if !ingredients.Matched || ingredients.Value.Count != 7 {
		t.Errorf("ingredients = %+v, want matched count 7", ingredients)
	}
	if len(ingredients.Value.Names) != 6 {
		t.Errorf("names should cap at 6, got %d", len(ingredients.Value.Names))
	}
	if ingredients.Value.Names[0] != "pollo entero" {
		t.Errorf("first name = %q, want quantity stripped", ingredients.Value.Names[0])
	}

	image := e.Image(d)
	if !image.Matched || image.Value != "https://example.com/images/pollo.jpg" {
		t.Errorf("image = %+v", image)
	}
}

func TestMetaAndHeadingFallbacks(t *testing.T) {
	e := newTestExtractor()
	d := docFromHTML(t, `<html><head>
<meta property="og:title" content="Tarta de queso al horno">
<meta property="og:description" content="La tarta de queso más cremosa que vas a probar, con solo cinco ingredientes y sin complicaciones.">
<meta property="og:image" content="/img/tarta.jpg">
</head><body>
<h2>Tarta de queso al horno</h2>
<p>corta</p>
</body></html>`)

	title := e.Title(d)
	if !title.Matched || title.Value != "Tarta de queso al horno" {
		t.Errorf("title = %+v", title)
	}

	desc := e.Description(d)
	if !desc.Matched {
		t.Errorf("description should match og:description, got %+v", desc)
	}

	image := e.Image(d)
	if !image.Matched {
		t.Fatalf("image should match og:image, got %+v", image)
	}
	if image.Value != "https://example.com/img/tarta.jpg" {
		t.Errorf("relative image should resolve against source, got %q", image.Value)
	}
}

func TestLabeledTextTimes(t *testing.T) {
	e := newTestExtractor()
	d := docFromHTML(t, `<html><body>
<h1>Lentejas con verduras</h1>
<p>Tiempo de preparación: 20 minutos. Tiempo de cocción: 1 hora.</p>
</body></html>`)

	prep := e.PrepTime(d)
	if !prep.Matched || prep.Value != 20 {
		t.Errorf("prep = %+v, want matched 20", prep)
	}
	cook := e.CookTime(d)
	if !cook.Matched || cook.Value != 60 {
		t.Errorf("cook = %+v, want hour converted to 60", cook)
	}
}

func TestImplausibleTimeFallsThrough(t *testing.T) {
	e := newTestExtractor()
	// Structured prep time of 600 minutes exceeds the 480 ceiling; the
	// labeled text value must win instead.
	d := docFromHTML(t, `<html><head>
<script type="application/ld+json">{"@type":"Recipe","name":"Cocido","prepTime":"PT10H"}</script>
</head><body><p>preparación: 30 min</p></body></html>`)

	prep := e.PrepTime(d)
	if !prep.Matched || prep.Value != 30 {
		t.Errorf("prep = %+v, want the labeled 30 after the 600-minute rejection", prep)
	}
	if prep.RuleIndex == 0 {
		t.Error("implausible structured value should not win rule 0")
	}
}

func TestServingsLabeledText(t *testing.T) {
	e := newTestExtractor()
	d := docFromHTML(t, `<html><body><p>Una receta pensada para 8 personas.</p></body></html>`)

	servings := e.Servings(d)
	if !servings.Matched || servings.Value != 8 {
		t.Errorf("servings = %+v, want matched 8", servings)
	}
}

func TestDefaultsOnEmptyDocument(t *testing.T) {
	e := newTestExtractor()
	d := docFromHTML(t, "<html><body></body></html>")
	b := DefaultBounds()

	if title := e.Title(d); title.Matched || title.Value != b.DefaultTitle {
		t.Errorf("title = %+v, want unmatched default", title)
	}
	if desc := e.Description(d); desc.Matched || desc.Value != b.DefaultDescription {
		t.Errorf("description = %+v, want unmatched default", desc)
	}
	if prep := e.PrepTime(d); prep.Matched || prep.Value != b.DefaultPrep {
		t.Errorf("prep = %+v, want unmatched %d", prep, b.DefaultPrep)
	}
	if cook := e.CookTime(d); cook.Matched || cook.Value != b.DefaultCook {
		t.Errorf("cook = %+v, want unmatched %d", cook, b.DefaultCook)
	}
	if servings := e.Servings(d); servings.Matched || servings.Value != b.DefaultServings {
		t.Errorf("servings = %+v, want unmatched %d", servings, b.DefaultServings)
	}
	if ing := e.Ingredients(d); ing.Matched || ing.Value.Count != b.DefaultIngredients {
		t.Errorf("ingredients = %+v, want unmatched count %d", ing, b.DefaultIngredients)
	}
	if image := e.Image(d); image.Matched || image.Value != "" {
		t.Errorf("image = %+v, want omitted", image)
	}
}

func TestGenericListNeedsQuantitySignature(t *testing.T) {
	e := newTestExtractor()

	// A nav-like list must not count as ingredients.
	nav := docFromHTML(t, `<html><body><ul>
<li>Inicio</li><li>Recetas</li><li>Contacto</li><li>Blog</li>
</ul></body></html>`)
	if ing := e.Ingredients(nav); ing.Matched {
		t.Errorf("nav list should not match, got %+v", ing)
	}

	// A quantity-bearing list should.
	real := docFromHTML(t, `<html><body><ul>
<li>200 g de arroz</li>
<li>2 dientes de ajo</li>
<li>1 litro de caldo</li>
<li>1 pizca de azafrán</li>
</ul></body></html>`)
	ing := e.Ingredients(real)
	if !ing.Matched || ing.Value.Count != 4 {
		t.Errorf("quantity list should match with count 4, got %+v", ing)
	}
}

func TestImageDenylist(t *testing.T) {
	e := newTestExtractor()
	d := docFromHTML(t, `<html><body>
<img src="/assets/logo.png" width="400">
<img src="/assets/ad-banner.jpg" width="900">
<img src="/uploads/paella-final.jpg" width="800">
</body></html>`)

	image := e.Image(d)
	if !image.Matched {
		t.Fatalf("image should match, got %+v", image)
	}
	if !strings.Contains(image.Value, "paella-final") {
		t.Errorf("denylisted images should be skipped, got %q", image.Value)
	}
}

func TestSchemaGraphAndTypeArray(t *testing.T) {
	d := docFromHTML(t, `<html><head>
<script type="application/ld+json">
{"@graph":[{"@type":"WebPage","name":"x"},{"@type":["Recipe","Thing"],"name":"Crema de calabaza","recipeYield":["4","4 raciones"]}]}
</script></head><body></body></html>`)

	s := d.Schema()
	if s == nil {
		t.Fatal("schema recipe not found in @graph")
	}
	if s.Name != "Crema de calabaza" {
		t.Errorf("name = %q", s.Name)
	}
	if s.Yield != "4" {
		t.Errorf("yield = %q", s.Yield)
	}
}
