package analyzer

import (
	"strings"
	"unicode/utf8"
)

// Tone labels
const (
	ToneProfessional = "professional"
	ToneCasual       = "casual"
	ToneEmpathetic   = "empathetic"
	ToneConcise      = "concise"
	ToneDetailed     = "detailed"
)

// toneRule is a single keyword rule. Rules are evaluated in table order and
// the first matching rule wins, so the ordering below is a tie-break policy,
// not a style choice.
type toneRule struct {
	tone     string
	keywords []string
}

var toneRules = []toneRule{
	{tone: ToneProfessional, keywords: []string{
		"meeting", "project", "deadline", "report", "client", "regards", "proposal", "schedule",
	}},
	{tone: ToneCasual, keywords: []string{
		"hey", "lol", "haha", "cool", "awesome", "yeah", "dude", "btw",
	}},
	{tone: ToneEmpathetic, keywords: []string{
		"sorry", "hope", "feel", "understand", "hang in there", "take care", "wish",
	}},
	{tone: ToneConcise, keywords: []string{
		"ok", "yes", "no", "sure", "got it", "done", "will do",
	}},
}

// longTextThreshold separates the detailed fallback from the professional one.
const longTextThreshold = 100

// DetectTone classifies the tone of a message. The rule list is evaluated
// in priority order (professional, casual, empathetic, concise) against the
// lowercased text; if no rule matches, text longer than 100 characters is
// "detailed", anything else "professional".
func DetectTone(text string) string {
	lower := strings.ToLower(text)

	for _, rule := range toneRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lower, keyword) {
				return rule.tone
			}
		}
	}

	if utf8.RuneCountInString(text) > longTextThreshold {
		return ToneDetailed
	}
	return ToneProfessional
}
