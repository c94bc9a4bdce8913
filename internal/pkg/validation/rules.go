// Package validation holds field rules that gin binding tags cannot express.
package validation

import (
	"strings"
)

// Tag list limits for skills and learning interests
const (
	MaxTagLength = 40
	MaxTags      = 20
)

// NormalizeTags trims whitespace, drops empty entries and collapses
// duplicates case-insensitively, keeping the first spelling seen. The result
// is capped at MaxTags entries.
func NormalizeTags(tags []string) []string {
	normalized := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))

	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || len(tag) > MaxTagLength {
			continue
		}
		key := strings.ToLower(tag)
		if seen[key] {
			continue
		}
		seen[key] = true
		normalized = append(normalized, tag)
		if len(normalized) == MaxTags {
			break
		}
	}

	return normalized
}
