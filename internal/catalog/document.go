package catalog

import (
	"fmt"
	"strings"
)

// usageFragments are appended to the document in this fixed order; the
// priority matters because the document drives embedding quality and must be
// byte-identical across reindex runs.
var usageFragments = []struct {
	activity string
	fragment string
}{
	{"meeting-friendly", "works for both meetings and casual settings"},
	{"casual", "great for everyday casual wear"},
	{"gym", "suitable for gym and training"},
	{"travel", "comfortable for travel and long days"},
}

// BuildDocument renders a product into the canonical text block used both
// for indexing and as LLM context. Field order is fixed: Title, Category,
// Activities, then optional Usage, Description and Features lines. Optional
// lines are omitted entirely when empty.
func BuildDocument(title, description, features, category string, activities []string) string {
	activitySet := map[string]struct{}{}
	for _, act := range activities {
		activitySet[act] = struct{}{}
	}

	var usage []string
	for _, uf := range usageFragments {
		if _, ok := activitySet[uf.activity]; ok {
			usage = append(usage, uf.fragment)
		}
	}

	parts := []string{
		fmt.Sprintf("Title: %s", title),
		fmt.Sprintf("Category: %s", orNA(category)),
		fmt.Sprintf("Activities: %s", orNA(strings.Join(activities, ", "))),
	}
	if len(usage) > 0 {
		parts = append(parts, "Usage: "+strings.Join(usage, "; "))
	}
	if description != "" {
		parts = append(parts, fmt.Sprintf("Description: %s", description))
	}
	if features != "" {
		parts = append(parts, fmt.Sprintf("Features: %s", features))
	}
	return strings.Join(parts, "\n")
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
