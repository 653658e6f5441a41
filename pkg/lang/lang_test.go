package lang

import "testing"

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "spanish",
			text: "una receta tradicional de pollo al horno con patatas, aceite de oliva y un poco de pimienta negra",
			want: "es",
		},
		{
			name: "english",
			text: "a traditional roast chicken recipe with potatoes, olive oil and freshly ground black pepper",
			want: "en",
		},
		{
			name: "empty",
			text: "",
			want: "unknown",
		},
		{
			name: "whitespace only",
			text: "   \n\t  ",
			want: "unknown",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detect(tt.text); got != tt.want {
				t.Errorf("Detect(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}
