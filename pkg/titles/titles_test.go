package titles

import (
	"strings"
	"testing"
)

func TestClean(t *testing.T) {
	c := NewCleaner(nil)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "entity decoding",
			in:   "Pollo al horno con lim&oacute;n",
			want: "Pollo al horno con limón",
		},
		{
			name: "strips residual markup",
			in:   "<b>Tarta de queso</b> casera",
			want: "Tarta de queso casera",
		},
		{
			name: "collapses whitespace",
			in:   "  Arroz   con \t leche  ",
			want: "Arroz con leche",
		},
		{
			name: "strips leading enumeration",
			in:   "3. Ensalada de quinoa con aguacate",
			want: "Ensalada de quinoa con aguacate",
		},
		{
			name: "strips receta prefix",
			in:   "Receta de gazpacho andaluz tradicional",
			want: "Gazpacho andaluz tradicional",
		},
		{
			name: "strips how-to prefix",
			in:   "How to make chicken curry at home",
			want: "Chicken curry at home",
		},
		{
			name: "strips dash suffix",
			in:   "Lentejas con chorizo - receta paso a paso gratis",
			want: "Lentejas con chorizo",
		},
		{
			name: "strips pipe suffix",
			in:   "Paella valenciana auténtica | Cocina Fácil",
			want: "Paella valenciana auténtica",
		},
		{
			name: "strips time annotation",
			in:   "Crema de calabaza (20 min) suave",
			want: "Crema de calabaza suave",
		},
		{
			name: "capitalizes first character",
			in:   "tortilla de patatas",
			want: "Tortilla de patatas",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Clean(tt.in)
			if got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCleanIdempotent(t *testing.T) {
	c := NewCleaner(nil)

	inputs := []string{
		"Receta de pollo al horno con patatas",
		"1. Tarta de Santiago - postre gallego",
		"Homemade sourdough bread | step by step",
		"Espaguetis a la carbonara (30 min)",
		"GAZPACHO",
		"salmorejo cordobés",
		"Berenjenas rellenas - al estilo de la abuela - con carne",
	}

	for _, in := range inputs {
		once := c.Clean(in)
		twice := c.Clean(once)
		if once != twice {
			t.Errorf("Clean not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}

func TestCleanConservativenessGuard(t *testing.T) {
	c := NewCleaner(nil)

	// A legitimate long title whose dash would let the suffix rule destroy
	// most of it. The minimal-rule fallback must keep it.
	in := "Arroz - y las mil maneras de no estropearlo nunca en casa"
	got := c.Clean(in)

	if float64(len([]rune(got))) < 0.4*float64(len([]rune(in))) {
		t.Errorf("guard failed: Clean(%q) kept only %q", in, got)
	}
	if !strings.Contains(got, "maneras") {
		t.Errorf("minimal fallback should keep the body of the title, got %q", got)
	}
}

func TestIsValid(t *testing.T) {
	c := NewCleaner(nil)

	tests := []struct {
		name  string
		title string
		want  bool
	}{
		{"accepts spanish recipe title", "Pollo al horno con limón y hierbas", true},
		{"accepts english recipe title", "Slow roasted pork shoulder with apples", true},
		{"accepts long roundup title", "Ten dishes our readers loved the most this winter", true},
		{"accepts short food title", "Paella", true},
		{"accepts short cooking title", "Gazpacho", true},
		{"rejects short non-food title", "Updates", false},
		{"rejects too short", "Ox", false},
		{"rejects too long", strings.Repeat("pollo ", 30), false},
		{"rejects nav label", "Inicio", false},
		{"rejects legal boilerplate", "Política de privacidad", false},
		{"rejects composite nav title", "Home | Privacy Policy | Contact Us", false},
		{"rejects cookie notice", "Cookies", false},
		{"rejects standalone section header", "Ingredientes", false},
		{"rejects standalone instructions header", "Instructions", false},
		{"rejects pure numerics", "2024 12 31", false},
		{"rejects uppercase spam", "BUY NOW AMAZING OFFER CLICK HERE", false},
		{"rejects digit run spam", "Call 5551234567 now for deals", false},
		{"rejects repeated phrase padding", "pizza pizza pizza pizza pizza", false},
		{"rejects symbol run", "Great recipe!!!!!", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.IsValid(tt.title); got != tt.want {
				t.Errorf("IsValid(%q) = %v, want %v", tt.title, got, tt.want)
			}
		})
	}
}
