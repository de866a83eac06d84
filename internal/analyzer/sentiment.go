package analyzer

import "strings"

// Sentiment labels
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

var positiveKeywords = []string{
	"great", "good", "thanks", "thank you", "awesome", "love", "excellent",
	"perfect", "happy", "nice", "wonderful", "glad",
}

var negativeKeywords = []string{
	"bad", "hate", "terrible", "awful", "problem", "wrong", "angry",
	"annoying", "sad", "fail", "worst", "frustrated",
}

// sentimentRatio is the dominance factor one polarity needs over the other.
const sentimentRatio = 1.5

// AnalyzeSentiment scores a conversation by counting occurrences of fixed
// positive and negative keyword sets across all messages (case-insensitive
// substring match). Positive wins when it beats 1.5x the negative count,
// negative symmetrically; everything else, including an empty conversation,
// is neutral.
func AnalyzeSentiment(messages []string) string {
	var positive, negative int

	for _, msg := range messages {
		lower := strings.ToLower(msg)
		for _, keyword := range positiveKeywords {
			positive += strings.Count(lower, keyword)
		}
		for _, keyword := range negativeKeywords {
			negative += strings.Count(lower, keyword)
		}
	}

	switch {
	case float64(positive) > sentimentRatio*float64(negative):
		return SentimentPositive
	case float64(negative) > sentimentRatio*float64(positive):
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}
