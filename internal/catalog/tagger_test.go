package catalog

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagText_ClusterExpansion(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "yoga expands to full cluster",
			text: "High-Waist Yoga Leggings",
			want: []string{"low-impact", "yoga"},
		},
		{
			name: "multiple clusters union",
			text: "Gym to travel jogger",
			want: []string{"gym", "high-intensity", "on-the-go", "travel"},
		},
		{
			name: "secondary label also triggers cluster",
			text: "low-impact training tights",
			want: []string{"low-impact", "yoga"},
		},
		{
			name: "no match",
			text: "Plain Black Tee",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TagText(tt.text)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTagText_SortedAndDeduplicated(t *testing.T) {
	got := TagText("yoga yoga travel gym running")
	require.NotEmpty(t, got)
	assert.True(t, sort.StringsAreSorted(got))
	seen := map[string]struct{}{}
	for _, act := range got {
		_, dup := seen[act]
		assert.False(t, dup, "duplicate activity %q", act)
		seen[act] = struct{}{}
	}
}

func TestTagText_Deterministic(t *testing.T) {
	first := TagText("Gym Sweatshirt for travel and yoga")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, TagText("Gym Sweatshirt for travel and yoga"))
	}
}

func TestTags_UnionsTitleTagsAndCategoryHints(t *testing.T) {
	got := Tags("Everyday Flare Pants", []string{"travel"}, "flare-pants")

	// title matches nothing, raw tags bring the travel cluster, category
	// hints add casual and meeting-friendly
	assert.Equal(t, []string{"casual", "meeting-friendly", "on-the-go", "travel"}, got)
}

func TestTags_UnknownCategoryAddsNothing(t *testing.T) {
	got := Tags("Classic Polo", nil, "polos")
	assert.Empty(t, got)
}
