package catalog

import (
	"sort"
	"strings"
)

// activityClusters groups related activity labels. If any label of a cluster
// appears as a substring of the input text, the whole cluster applies.
var activityClusters = map[string][]string{
	"tennis-pickel-golf": {"tennis", "pickleball", "golf", "medium-intensity"},
	"running":            {"running", "high-endurance"},
	"casual":             {"casual", "all-day"},
	"yoga":               {"yoga", "low-impact"},
	"travel":             {"travel", "on-the-go"},
	"hyrox":              {"hyrox", "high-performance"},
	"pilates":            {"pilates", "core-focused"},
	"gym":                {"gym", "high-intensity"},
}

// categoryActivityHints maps a collection handle to usage tags. This
// approximates "shop by activity" so retrieval and reasoning work better.
var categoryActivityHints = map[string][]string{
	"sweatshirts":        {"casual", "all-day", "meeting-friendly"},
	"joggers":            {"casual", "travel", "gym"},
	"leggings":           {"gym", "running", "yoga"},
	"shorts":             {"gym", "running", "casual"},
	"skorts-for-women-1": {"tennis", "pickleball", "golf"},
	"sports-bra":         {"gym", "training"},
	"co-ord-set":         {"gym", "casual", "all-day"},
	"jackets-hoodies":    {"travel", "casual", "all-day"},
	"flare-pants":        {"casual", "meeting-friendly"},
	"straight-pants":     {"casual", "meeting-friendly"},
}

// TagText returns the sorted, deduplicated activity labels whose cluster
// matches the given free text. Matching is case-insensitive substring search.
func TagText(text string) []string {
	lower := strings.ToLower(text)
	set := map[string]struct{}{}
	for _, cluster := range activityClusters {
		for _, key := range cluster {
			if strings.Contains(lower, key) {
				for _, act := range cluster {
					set[act] = struct{}{}
				}
				break
			}
		}
	}
	return sortedSet(set)
}

// Tags classifies a product from its title, raw source tags and collection
// handle. Title and tag text go through the same cluster matching,
// unioned with the category hints for the handle.
func Tags(title string, rawTags []string, category string) []string {
	set := map[string]struct{}{}
	for _, act := range TagText(title) {
		set[act] = struct{}{}
	}
	for _, act := range TagText(strings.Join(rawTags, " ")) {
		set[act] = struct{}{}
	}
	for _, act := range categoryActivityHints[category] {
		set[act] = struct{}{}
	}
	return sortedSet(set)
}

func sortedSet(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for act := range set {
		out = append(out, act)
	}
	sort.Strings(out)
	return out
}
