package rag

import (
	"sort"
	"strings"

	"product-rag/internal/models"
)

// Meeting-ready intent detection and the boost/penalty sets it drives.
var (
	meetingKeywords = []string{"meeting", "office", "work", "formal"}

	versatileTitleKeywords = []string{"polo", "sweatshirt", "jogger"}
	versatileCategories    = []string{"sweatshirts", "joggers", "straight-pants", "flare-pants"}
)

const (
	versatileBoost   = 0.9
	sportsBraPenalty = 1.15
)

// Rerank applies a deterministic, query-aware score adjustment on top of
// raw vector similarity and returns a new, stably re-sorted slice. The
// input is never mutated. When the query carries no meeting-ready intent
// the candidates come back in their original order.
//
// Intuition: a user who mentions meetings/office/work wants more covered,
// smart-casual pieces (polo, sweatshirt, joggers, pants) and is unlikely to
// want a standalone sports bra.
func Rerank(query string, candidates []models.ProductSnippet) []models.ProductSnippet {
	adjusted := make([]models.ProductSnippet, len(candidates))
	copy(adjusted, candidates)

	q := strings.ToLower(query)
	wantsMeetingReady := containsAny(q, meetingKeywords)
	if !wantsMeetingReady {
		return adjusted
	}

	for i := range adjusted {
		titleLower := strings.ToLower(adjusted[i].Title)
		catLower := strings.ToLower(adjusted[i].Category)
		score := adjusted[i].RelevanceScore // distance: lower is better

		if containsAny(titleLower, versatileTitleKeywords) || containsAny(catLower, versatileCategories) {
			score *= versatileBoost
		}
		if strings.Contains(titleLower, "sports bra") && !strings.Contains(titleLower, "set") {
			score *= sportsBraPenalty
		}

		adjusted[i].RelevanceScore = score
	}

	sort.SliceStable(adjusted, func(i, j int) bool {
		return adjusted[i].RelevanceScore < adjusted[j].RelevanceScore
	})
	return adjusted
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
