package palette

import (
	"strings"

	"github.com/donghojung/kan/internal/constants"
	"github.com/donghojung/kan/internal/kanban"
)

// TagSuggestions returns up to six known tags that start with query,
// skipping tags the card already has. tags is usually the output of
// Collection.CalculateTags, so the most used tags come first.
func TagSuggestions(tags []kanban.TagCount, query string, existing []string) []string {
	q := strings.ToLower(query)
	var out []string
	for _, tc := range tags {
		if len(out) == constants.MaxTagSuggestions {
			break
		}
		lower := strings.ToLower(tc.Tag)
		if !strings.HasPrefix(lower, q) || hasFold(existing, lower) {
			continue
		}
		out = append(out, tc.Tag)
	}
	return out
}

func hasFold(items []string, s string) bool {
	for _, it := range items {
		if strings.EqualFold(it, s) {
			return true
		}
	}
	return false
}
