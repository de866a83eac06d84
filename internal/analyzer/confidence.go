package analyzer

import (
	"regexp"
	"unicode/utf8"
)

var politenessPattern = regexp.MustCompile(`(?i)\b(please|could you|would you|can you|help|thanks|thank you)\b`)

// Completion confidence parameters. The caps are the only thing bounding the
// output range, so they must hold exactly.
const (
	confidenceBase    = 0.5
	lengthBonus       = 0.1
	politenessBonus   = 0.1
	recentMessageStep = 0.05
	recentMessageCap  = 0.2
	contextRecordStep = 0.1
	contextRecordCap  = 0.3
	confidenceCeiling = 0.95
)

// CompletionConfidence estimates how confident the assistant should be in a
// generated reply: a fixed base plus bonuses for message length, a
// politeness/request phrasing, available recent messages and stored context
// records, clamped to 0.95.
func CompletionConfidence(text string, recentMessages, contextRecords int) float64 {
	confidence := confidenceBase

	length := utf8.RuneCountInString(text)
	if length > 10 {
		confidence += lengthBonus
	}
	if length > 50 {
		confidence += lengthBonus
	}
	if politenessPattern.MatchString(text) {
		confidence += politenessBonus
	}

	recent := recentMessageStep * float64(recentMessages)
	if recent > recentMessageCap {
		recent = recentMessageCap
	}
	confidence += recent

	contextual := contextRecordStep * float64(contextRecords)
	if contextual > contextRecordCap {
		contextual = contextRecordCap
	}
	confidence += contextual

	if confidence > confidenceCeiling {
		confidence = confidenceCeiling
	}
	return confidence
}
