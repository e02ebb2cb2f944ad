package normalize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVariants(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		model string
		brand string
		want  []string
	}{
		{
			name:  "series model with brand",
			model: "BMW Serie 3 320d",
			brand: "BMW",
			want:  []string{"BMW Serie 3 320d", "Serie 3 320d", "BMW 320d", "320d"},
		},
		{
			name:  "model without brand prefix",
			model: "X1 sDrive18d",
			brand: "BMW",
			want:  []string{"X1 sDrive18d", "BMW X1 sDrive18d"},
		},
		{
			name:  "brand inferred from text",
			model: "MINI Cooper S",
			brand: "",
			want:  []string{"MINI Cooper S", "Cooper S"},
		},
		{
			name:  "repeated leading brand",
			model: "BMW BMW 118d",
			brand: "bmw",
			want:  []string{"BMW BMW 118d", "118d", "bmw 118d"},
		},
		{
			name:  "platform code prefix",
			model: "G20 330e",
			brand: "BMW",
			want:  []string{"G20 330e", "BMW 330e", "330e", "BMW G20 330e"},
		},
		{
			name:  "series and platform code",
			model: "Serie 5 G30 530d",
			brand: "BMW",
			want:  []string{"Serie 5 G30 530d", "BMW 530d", "530d", "BMW Serie 5 G30 530d"},
		},
		{
			name:  "whitespace collapsed",
			model: "  BMW   Serie 1    M135i ",
			brand: "BMW",
			want:  []string{"BMW Serie 1 M135i", "Serie 1 M135i", "BMW M135i", "M135i"},
		},
		{
			name:  "explicit and inferred brand differ",
			model: "MINI Countryman",
			brand: "BMW",
			want:  []string{"MINI Countryman", "Countryman", "BMW MINI Countryman", "BMW Countryman"},
		},
		{name: "blank model", model: "   ", brand: "BMW", want: nil},
		{name: "empty model", model: "", brand: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Variants(tt.model, tt.brand))
		})
	}
}

func TestVariants_ContainsExpectedForms(t *testing.T) {
	t.Parallel()

	got := Variants("BMW Serie 3 320d", "BMW")
	assert.Contains(t, got, "320d")
	assert.Contains(t, got, "BMW 320d")
	assert.Contains(t, got, "Serie 3 320d")
}

func TestVariants_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := [][2]string{
		{"BMW Serie 3 320d", "BMW"},
		{"MINI Cooper", "MINI"},
		{"iX3", ""},
	}

	for _, in := range inputs {
		first := Variants(in[0], in[1])
		second := Variants(in[0], in[1])
		assert.Equal(t, first, second)
	}
}

func TestVariants_NoCaseInsensitiveDuplicates(t *testing.T) {
	t.Parallel()

	got := Variants("bmw 320d", "BMW")
	seen := map[string]bool{}
	for _, v := range got {
		key := strings.ToLower(v)
		assert.False(t, seen[key], "duplicate variant %q", v)
		seen[key] = true
	}
}

func TestVersionTokens(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		variants []string
		want     []string
	}{
		{
			name:     "diesel badge",
			variants: []string{"BMW Serie 3 320d", "320d"},
			want:     []string{"320d"},
		},
		{
			name:     "M performance badge",
			variants: []string{"BMW Serie 1 M135i xDrive"},
			want:     []string{"M135i"},
		},
		{
			name:     "several tokens across variants",
			variants: []string{"X3 xDrive30e", "530e Touring", "118i"},
			want:     []string{"530e", "118i"},
		},
		{
			name:     "single digit ignored",
			variants: []string{"Serie 3 Touring"},
			want:     nil,
		},
		{
			name:     "case-insensitive dedupe",
			variants: []string{"320D", "320d"},
			want:     []string{"320D"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, VersionTokens(tt.variants))
		})
	}
}
