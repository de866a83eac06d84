package analyzer

import (
	"sort"
	"strings"
)

var importanceKeywords = []string{
	"important", "urgent", "critical", "asap", "deadline", "must", "required", "priority",
}

// Importance score weights and caps
const (
	lengthDivisor     = 50.0
	lengthCap         = 3.0
	keywordWeight     = 2.0
	questionWeight    = 0.5
	exclamationWeight = 0.3
)

// ImportanceScore rates a single message:
//
//	min(length/50, 3) + 2*importanceKeywordHits + 0.5*'?' + 0.3*'!'
//
// The score only exists to rank key points, so absolute values carry no
// meaning outside this package.
func ImportanceScore(text string) float64 {
	lower := strings.ToLower(text)

	score := float64(len(text)) / lengthDivisor
	if score > lengthCap {
		score = lengthCap
	}

	for _, keyword := range importanceKeywords {
		if strings.Contains(lower, keyword) {
			score += keywordWeight
		}
	}

	score += questionWeight * float64(strings.Count(text, "?"))
	score += exclamationWeight * float64(strings.Count(text, "!"))

	return score
}

// KeyPoints returns the n highest-scoring messages by importance, descending.
// Ties keep the original (most recent first) order.
func KeyPoints(messages []string, n int) []string {
	if n <= 0 || len(messages) == 0 {
		return nil
	}

	type ranked struct {
		text  string
		score float64
	}
	points := make([]ranked, 0, len(messages))
	for _, msg := range messages {
		points = append(points, ranked{text: msg, score: ImportanceScore(msg)})
	}

	sort.SliceStable(points, func(a, b int) bool {
		return points[a].score > points[b].score
	})

	if len(points) > n {
		points = points[:n]
	}

	result := make([]string, 0, len(points))
	for _, p := range points {
		result = append(result, p.text)
	}
	return result
}
