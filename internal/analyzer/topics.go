package analyzer

import (
	"sort"
	"strings"
)

// topicCategory groups trigger keywords under a topic label. Categories are
// scored independently; table order breaks score ties.
type topicCategory struct {
	name     string
	keywords []string
}

var topicCategories = []topicCategory{
	{name: "work", keywords: []string{"project", "deadline", "meeting", "report", "client"}},
	{name: "technology", keywords: []string{"software", "computer", "app", "code", "server"}},
	{name: "travel", keywords: []string{"trip", "flight", "hotel", "vacation", "ticket"}},
	{name: "food", keywords: []string{"lunch", "dinner", "restaurant", "recipe", "coffee"}},
	{name: "health", keywords: []string{"doctor", "exercise", "sleep", "gym", "sick"}},
	{name: "finance", keywords: []string{"money", "budget", "invoice", "payment", "cost"}},
}

// maxTopics bounds the number of returned topic labels.
const maxTopics = 5

// ExtractTopics sums keyword hits per category across all messages, keeps
// categories that scored at all and returns their names by descending score,
// truncated to five.
func ExtractTopics(messages []string) []string {
	scores := make([]int, len(topicCategories))

	for _, msg := range messages {
		lower := strings.ToLower(msg)
		for i, category := range topicCategories {
			for _, keyword := range category.keywords {
				scores[i] += strings.Count(lower, keyword)
			}
		}
	}

	type scored struct {
		name  string
		score int
	}
	var hits []scored
	for i, category := range topicCategories {
		if scores[i] > 0 {
			hits = append(hits, scored{name: category.name, score: scores[i]})
		}
	}

	sort.SliceStable(hits, func(a, b int) bool {
		return hits[a].score > hits[b].score
	})

	if len(hits) == 0 {
		return nil
	}
	if len(hits) > maxTopics {
		hits = hits[:maxTopics]
	}

	topics := make([]string, 0, len(hits))
	for _, hit := range hits {
		topics = append(topics, hit.name)
	}
	return topics
}
