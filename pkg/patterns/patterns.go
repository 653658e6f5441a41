// Package patterns holds the canonical detection-rule and keyword tables used
// by the extraction engine. Everything here is immutable configuration data:
// extractors receive a *Library instead of reaching for package globals, so
// each cascade rule can be unit-tested in isolation and keyword sets can be
// swapped without touching extractor logic.
package patterns

import "strings"

// Version identifies the pattern tables in effect. Bump when tables change in
// a way that affects extraction output.
const Version = "2024.2"

// Library bundles every rule and keyword table the engine consumes.
type Library struct {
	// Keyword tables, all lowercase.
	FoodKeywords    []string
	CookingWords    []string
	CuisineKeywords []string

	// Title cleaning.
	TitlePrefixes     []string // boilerplate leads stripped from titles
	TitleSuffixMarks  []string // separators before trailing boilerplate
	BoilerplateTitles []string // denylist of whole-title boilerplate

	// Category and difficulty estimation from titles.
	CategoryKeywords   []CategoryRule
	EasyKeywords       []string
	HardKeywords       []string
	QuickKeywords      []string
	SlowKeywords       []string

	// Ingredient detection.
	UnitWords            []string
	IngredientContainers []string // CSS selectors for ingredient list containers

	// Image filtering.
	ImageDenylist   []string // substrings that disqualify an image URL
	ImageSelectors  []string // class/id based recipe image selectors

	// Multi-recipe segmentation battery, ordered by priority.
	SegmentRules []SegmentRule
}

// CategoryRule maps title keywords to a category name. First rule whose
// keyword list hits wins.
type CategoryRule struct {
	Name     string
	Keywords []string
}

// SegmentRule is one entry in the multi-recipe detection battery.
type SegmentRule struct {
	Name     string
	Selector string // goquery selector producing candidate nodes
	// RequireFood demands a food/cooking keyword in the matched text before
	// the candidate is considered. Broad-net rules set this.
	RequireFood bool
}

// Default returns the canonical bilingual (Spanish/English) pattern library.
func Default() *Library {
	return &Library{
		FoodKeywords: []string{
			// proteins
			"pollo", "chicken", "carne", "beef", "cerdo", "pork", "pescado", "fish",
			"salmon", "salmón", "atun", "atún", "tuna", "gambas", "shrimp", "camarones",
			"huevo", "huevos", "egg", "eggs", "ternera", "cordero", "lamb", "pavo", "turkey",
			"jamon", "jamón", "ham", "bacon", "tofu", "chorizo",
			// staples
			"arroz", "rice", "pasta", "espagueti", "spaghetti", "macarrones", "noodles",
			"fideos", "pan", "bread", "pizza", "tortilla", "tacos", "lasaña", "lasagna",
			"patata", "patatas", "potato", "potatoes", "papas", "quinoa", "lentejas",
			"lentils", "garbanzos", "chickpeas", "frijoles", "beans", "avena", "oats",
			// vegetables & fruit
			"tomate", "tomato", "cebolla", "onion", "ajo", "garlic", "pimiento", "pepper",
			"zanahoria", "carrot", "calabacin", "calabacín", "zucchini", "espinacas",
			"spinach", "brocoli", "brócoli", "broccoli", "coliflor", "cauliflower",
			"champiñones", "mushroom", "setas", "aguacate", "avocado", "limon", "limón",
			"lemon", "naranja", "orange", "manzana", "apple", "platano", "plátano", "banana",
			"fresa", "strawberry", "coco", "coconut",
			// dairy & dessert
			"queso", "cheese", "leche", "milk", "nata", "cream", "yogur", "yogurt",
			"chocolate", "tarta", "cake", "pastel", "bizcocho", "galletas", "cookies",
			"flan", "helado", "ice cream", "brownie", "crepes", "churros",
			// dishes
			"sopa", "soup", "crema", "ensalada", "salad", "guiso", "stew", "estofado",
			"paella", "risotto", "curry", "ceviche", "gazpacho", "croquetas", "empanada",
			"empanadas", "burritos", "hamburguesa", "burger", "sandwich", "bocadillo",
			"salsa", "sauce", "pure", "puré", "wok", "sushi", "ramen",
		},
		CookingWords: []string{
			"receta", "recetas", "recipe", "recipes", "cocina", "cooking", "cocinar",
			"horno", "oven", "baked", "al horno", "asado", "roasted", "frito", "fried",
			"a la plancha", "grilled", "guisado", "hervido", "relleno", "rellena",
			"stuffed", "casero", "casera", "homemade", "facil", "fácil", "easy",
			"rapido", "rápido", "quick", "tradicional", "traditional", "con", "de la abuela",
		},
		CuisineKeywords: []string{
			"mexicana", "mexican", "italiana", "italian", "española", "spanish",
			"china", "chinese", "japonesa", "japanese", "tailandesa", "thai",
			"india", "indian", "francesa", "french", "griega", "greek",
			"peruana", "peruvian", "argentina", "mediterranea", "mediterránea",
			"mediterranean", "asiatica", "asiática", "asian", "arabe", "árabe",
		},
		TitlePrefixes: []string{
			"receta de ", "receta: ", "recetas de ", "receta ",
			"how to make ", "how to cook ", "cómo hacer ", "como hacer ",
			"cómo preparar ", "como preparar ", "aprende a hacer ",
			"recipe: ", "recipe for ", "the best ", "la mejor ", "el mejor ",
		},
		TitleSuffixMarks: []string{" - ", " | ", " – ", " — ", " :: "},
		BoilerplateTitles: []string{
			// navigation
			"inicio", "home", "menu", "menú", "buscar", "search", "categorias",
			"categorías", "categories", "siguiente", "next", "anterior", "previous",
			"ver mas", "ver más", "read more", "leer mas", "leer más", "more",
			// legal / cookies
			"politica de privacidad", "política de privacidad", "privacy policy",
			"aviso legal", "cookies", "politica de cookies", "terms of service",
			"terminos y condiciones", "términos y condiciones", "contact us",
			"contacto", "about us", "sobre nosotros",
			// social
			"compartir", "share", "facebook", "twitter", "instagram", "pinterest",
			"whatsapp", "suscribete", "suscríbete", "subscribe", "newsletter",
			"sign in", "iniciar sesion", "iniciar sesión", "login", "registrarse",
			// generic section headers
			"ingredientes", "ingredients", "instrucciones", "instructions",
			"preparacion", "preparación", "preparation", "elaboracion",
			"elaboración", "pasos", "steps", "notas", "notes", "comentarios",
			"comments", "valoraciones", "reviews", "publicidad", "advertisement",
		},
		CategoryKeywords: []CategoryRule{
			{Name: "dessert", Keywords: []string{"tarta", "pastel", "cake", "bizcocho", "galletas", "cookies", "postre", "dessert", "chocolate", "flan", "helado", "brownie", "churros", "crepes", "dulce"}},
			{Name: "breakfast", Keywords: []string{"desayuno", "breakfast", "tostada", "toast", "avena", "oats", "pancakes", "tortitas", "smoothie", "porridge"}},
			{Name: "drink", Keywords: []string{"batido", "smoothie", "zumo", "juice", "cocktail", "coctel", "cóctel", "bebida", "drink", "limonada", "lemonade", "sangria", "sangría"}},
			{Name: "chicken", Keywords: []string{"pollo", "chicken", "pavo", "turkey", "alitas", "wings"}},
			{Name: "fish", Keywords: []string{"pescado", "fish", "salmon", "salmón", "atun", "atún", "tuna", "gambas", "shrimp", "camarones", "marisco", "seafood", "ceviche", "bacalao", "merluza"}},
			{Name: "meat", Keywords: []string{"carne", "beef", "cerdo", "pork", "ternera", "cordero", "lamb", "costillas", "ribs", "hamburguesa", "burger", "albondigas", "albóndigas", "meatballs", "chorizo", "estofado"}},
			{Name: "pasta", Keywords: []string{"pasta", "espagueti", "spaghetti", "macarrones", "lasaña", "lasagna", "noodles", "fideos", "ramen", "gnocchi", "ñoquis"}},
			{Name: "rice", Keywords: []string{"arroz", "rice", "paella", "risotto", "sushi"}},
			{Name: "soup", Keywords: []string{"sopa", "soup", "crema de", "gazpacho", "caldo", "broth", "puchero"}},
			{Name: "salad", Keywords: []string{"ensalada", "salad", "tabule", "tabbouleh"}},
			{Name: "vegetarian", Keywords: []string{"vegetariano", "vegetariana", "vegetarian", "vegano", "vegana", "vegan", "tofu", "verduras", "vegetales", "veggie"}},
		},
		EasyKeywords:  []string{"facil", "fácil", "easy", "sencillo", "sencilla", "simple", "basico", "básico", "basic", "principiantes", "beginner"},
		HardKeywords:  []string{"gourmet", "profesional", "professional", "elaborado", "elaborada", "avanzado", "advanced", "hojaldre", "souffle", "soufflé", "macarons"},
		QuickKeywords: []string{"rapido", "rápido", "rapida", "rápida", "quick", "express", "en 10 minutos", "en 15 minutos", "in 10 minutes", "in 15 minutes", "minutos", "minutes"},
		SlowKeywords:  []string{"horno", "oven", "asado", "roast", "estofado", "stew", "guiso", "coccion lenta", "cocción lenta", "slow", "braised", "pulled"},
		UnitWords: []string{
			"gramos", "gram", "grams", "g ", "kg", "kilo", "ml", "litro", "liter", "l ",
			"taza", "tazas", "cup", "cups", "cucharada", "cucharadas", "tablespoon",
			"tbsp", "cucharadita", "cucharaditas", "teaspoon", "tsp", "pizca", "pinch",
			"diente", "dientes", "clove", "cloves", "unidad", "unidades", "unit",
			"rebanada", "rebanadas", "slice", "slices", "lata", "can", "paquete",
			"package", "oz", "ounce", "lb", "pound", "puñado", "handful",
		},
		IngredientContainers: []string{
			"[itemprop='recipeIngredient']",
			"[itemprop='ingredients']",
			".recipe-ingredients li", ".ingredients-list li", ".ingredient-list li",
			".ingredientes li", ".lista-ingredientes li",
			"ul.ingredients li", "div.ingredients li",
			"[class*='ingredient'] li", "li[class*='ingredient']",
		},
		ImageDenylist: []string{
			"logo", "icon", "avatar", "ad", "ads", "banner", "spacer", "sprite",
			"pixel", "badge", "button", "gravatar", "placeholder", "blank",
		},
		ImageSelectors: []string{
			"img[class*='recipe']", "img[id*='recipe']",
			"img[class*='hero']", "img[class*='featured']",
			".recipe-image img", ".post-thumbnail img", "figure img",
		},
		SegmentRules: []SegmentRule{
			{Name: "recipe_headings", Selector: "h2, h3", RequireFood: true},
			{Name: "recipe_cards", Selector: "[class*='recipe'] h2, [class*='recipe'] h3, [class*='recipe-card'] a, article h2", RequireFood: true},
			{Name: "food_anchors", Selector: "a", RequireFood: true},
			{Name: "broad_headings", Selector: "h2", RequireFood: false},
		},
	}
}

// ContainsAny reports whether the lowercase haystack contains any keyword.
func ContainsAny(haystack string, keywords []string) bool {
	return FirstMatch(haystack, keywords) != ""
}

// FirstMatch returns the first keyword found in the lowercase haystack, or "".
func FirstMatch(haystack string, keywords []string) string {
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if containsWordish(haystack, kw) {
			return kw
		}
	}
	return ""
}

// containsWordish does a plain substring check for multi-character keywords
// and a word-boundary check for short ones, so "con" does not fire inside
// "bacon".
func containsWordish(haystack, kw string) bool {
	if len(kw) <= 3 {
		return containsWord(haystack, kw)
	}
	return strings.Contains(haystack, kw)
}

// containsWord matches kw only at word boundaries.
func containsWord(s, kw string) bool {
	for i := 0; i+len(kw) <= len(s); i++ {
		if s[i:i+len(kw)] != kw {
			continue
		}
		beforeOK := i == 0 || !isAlnum(s[i-1])
		after := i + len(kw)
		afterOK := after == len(s) || !isAlnum(s[after])
		if beforeOK && afterOK {
			return true
		}
	}
	return false
}

func isAlnum(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}
