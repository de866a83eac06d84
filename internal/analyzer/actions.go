package analyzer

import (
	"regexp"
	"strings"
)

// Action item extraction limits
const (
	minActionLength = 6
	maxActionItems  = 10
)

// actionPatterns capture the actionable phrase in group 1. The four shapes:
// obligation phrasing, explicit todo prefixes, assignments and deadlines.
var actionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:need to|should|must)\s+([^.!?\n]+)`),
	regexp.MustCompile(`(?i)(?:todo|task|action):\s*([^.!?\n]+)`),
	regexp.MustCompile(`(?i)assign\s+([^.!?\n]+?)\s+to\s+\w+`),
	regexp.MustCompile(`(?i)([^.!?\n]+?)\s+(?:by|before|due)\s+(?:today|tomorrow|monday|tuesday|wednesday|thursday|friday|saturday|sunday|next week|\d{1,2}[/-]\d{1,2})`),
}

// ExtractActionItems scans all messages with the fixed pattern set, keeps
// trimmed captures of at least six characters, deduplicates preserving
// first-seen order and returns at most ten items.
func ExtractActionItems(messages []string) []string {
	var items []string
	seen := make(map[string]struct{})

	for _, msg := range messages {
		for _, pattern := range actionPatterns {
			for _, match := range pattern.FindAllStringSubmatch(msg, -1) {
				item := strings.TrimSpace(match[1])
				if len(item) < minActionLength {
					continue
				}
				if _, ok := seen[item]; ok {
					continue
				}
				seen[item] = struct{}{}
				items = append(items, item)
				if len(items) >= maxActionItems {
					return items
				}
			}
		}
	}

	return items
}
