package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzeSentiment(t *testing.T) {
	tests := []struct {
		name     string
		messages []string
		expected string
	}{
		{
			name:     "positive dominates",
			messages: []string{"this is great, thanks!", "love it"},
			expected: SentimentPositive,
		},
		{
			name:     "negative dominates",
			messages: []string{"terrible idea", "this is awful and wrong"},
			expected: SentimentNegative,
		},
		{
			name:     "balanced counts are neutral",
			messages: []string{"good", "bad"},
			expected: SentimentNeutral,
		},
		{
			name:     "no keywords is neutral",
			messages: []string{"the quorum convenes at dawn"},
			expected: SentimentNeutral,
		},
		{
			name:     "empty list is neutral",
			messages: nil,
			expected: SentimentNeutral,
		},
		{
			name: "positive needs more than 1.5x negative",
			// 3 positive vs 2 negative: 3 > 3.0 is false, so neutral.
			messages: []string{"great great great", "bad bad"},
			expected: SentimentNeutral,
		},
		{
			name: "two positives against one negative",
			// 2 > 1.5, so positive wins.
			messages: []string{"great", "nice", "bad"},
			expected: SentimentPositive,
		},
		{
			name:     "case-insensitive matching",
			messages: []string{"GREAT WORK, LOVE IT"},
			expected: SentimentPositive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AnalyzeSentiment(tt.messages))
		})
	}
}

func TestAnalyzeSentiment_SubstringCounting(t *testing.T) {
	// Substring match, not word-boundary match: repeated occurrences inside
	// one message all count.
	assert.Equal(t, SentimentPositive, AnalyzeSentiment([]string{"great great great"}))
}
