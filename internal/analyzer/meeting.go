package analyzer

import (
	"strings"
	"time"
)

// triggerGroup is a weighted keyword group for meeting-trigger
// classification. Confidence is weight scaled by the fraction of the group's
// keywords that appear in the conversation, capped at 1.0.
type triggerGroup struct {
	name     string
	weight   float64
	keywords []string
}

var triggerGroups = []triggerGroup{
	{name: "general", weight: 0.8, keywords: []string{"meet", "meeting", "call", "sync", "catch up"}},
	{name: "project", weight: 0.7, keywords: []string{"project", "milestone", "planning", "roadmap", "sprint"}},
	{name: "discussion", weight: 0.7, keywords: []string{"discuss", "review", "feedback", "brainstorm", "align"}},
	{name: "urgent", weight: 0.9, keywords: []string{"urgent", "asap", "immediately", "critical", "emergency"}},
	{name: "presentation", weight: 0.75, keywords: []string{"demo", "presentation", "present", "showcase", "walkthrough"}},
}

// Meeting suggestion thresholds
const (
	suggestThreshold   = 0.6
	suggestionCutoff   = 0.5
	confidenceStepDown = 0.1
)

// suggestionOffsets are the candidate slots relative to now.
var suggestionOffsets = []time.Duration{
	2 * time.Hour,
	24 * time.Hour,
	48 * time.Hour,
}

// MeetingTrigger is the outcome of classifying a conversation for meeting
// intent.
type MeetingTrigger struct {
	Suggest    bool
	Type       string
	Confidence float64
}

// ClassifyMeetingTrigger scores each weighted keyword group against the
// conversation; the highest-confidence group wins as the classification type
// and a suggestion is only emitted when the winner reaches 0.6.
func ClassifyMeetingTrigger(messages []string) MeetingTrigger {
	joined := strings.ToLower(strings.Join(messages, " "))

	var best MeetingTrigger
	for _, group := range triggerGroups {
		matched := 0
		for _, keyword := range group.keywords {
			if strings.Contains(joined, keyword) {
				matched++
			}
		}

		confidence := group.weight * float64(matched) / float64(len(group.keywords))
		if confidence > 1.0 {
			confidence = 1.0
		}
		if confidence > best.Confidence {
			best.Type = group.name
			best.Confidence = confidence
		}
	}

	best.Suggest = best.Confidence >= suggestThreshold
	if !best.Suggest {
		best.Type = ""
	}
	return best
}

// TimeSlot is one suggested meeting time with its decayed confidence.
type TimeSlot struct {
	Start      time.Time
	Confidence float64
}

// SuggestTimes expands a trigger into up to three time slots (now+2h, +24h,
// +48h), dropping 0.1 confidence per step and stopping below 0.5.
func SuggestTimes(trigger MeetingTrigger, now time.Time) []TimeSlot {
	if !trigger.Suggest {
		return nil
	}

	var slots []TimeSlot
	confidence := trigger.Confidence
	for _, offset := range suggestionOffsets {
		if confidence < suggestionCutoff {
			break
		}
		slots = append(slots, TimeSlot{Start: now.Add(offset), Confidence: confidence})
		confidence -= confidenceStepDown
	}
	return slots
}
