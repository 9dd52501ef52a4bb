package items

import (
	"strings"

	"github.com/faithguard/faithguard/internal/models"
)

// Minimum lengths before a field is considered meaningful enough to compare.
const (
	minTitleLen       = 3
	minDescriptionLen = 10
)

// findDuplicates applies the containment heuristic over the candidate items:
// a candidate matches when both titles are at least 3 characters and one
// contains the other as a substring, or both descriptions are at least 10
// characters and one contains the other. Comparison is case-folded and
// trimmed. This is deliberate containment, not similarity scoring.
func findDuplicates(title, description string, candidates []models.Item) []models.Item {
	if title == "" || description == "" {
		return nil
	}

	titleLower := strings.ToLower(strings.TrimSpace(title))
	descLower := strings.ToLower(strings.TrimSpace(description))

	// Nothing meaningful to compare yet.
	if len(titleLower) < minTitleLen && len(descLower) < minDescriptionLen {
		return nil
	}

	var result []models.Item
	for _, item := range candidates {
		itemTitle := strings.ToLower(strings.TrimSpace(item.Title))
		itemDesc := strings.ToLower(strings.TrimSpace(item.Description))

		titleSimilar := len(titleLower) >= minTitleLen && len(itemTitle) >= minTitleLen &&
			(strings.Contains(itemTitle, titleLower) || strings.Contains(titleLower, itemTitle))

		descSimilar := len(descLower) >= minDescriptionLen && len(itemDesc) >= minDescriptionLen &&
			(strings.Contains(itemDesc, descLower) || strings.Contains(descLower, itemDesc))

		if titleSimilar || descSimilar {
			result = append(result, item)
		}
	}
	return result
}
