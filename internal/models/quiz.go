package models

import (
	"bytes"
	"encoding/json"
)

// AgeBracket is one of the fixed infant age ranges offered by the quiz.
type AgeBracket string

const (
	Age0To6Weeks    AgeBracket = "0-6weeks"
	Age6To12Weeks   AgeBracket = "6-12weeks"
	Age3To4Months   AgeBracket = "3-4months"
	Age5To6Months   AgeBracket = "5-6months"
	Age7To9Months   AgeBracket = "7-9months"
	Age10To12Months AgeBracket = "10-12months"
	Age12To18Months AgeBracket = "12-18months"
	Age18To24Months AgeBracket = "18-24months"
)

// AgeBrackets lists every bracket in display order.
var AgeBrackets = []AgeBracket{
	Age0To6Weeks,
	Age6To12Weeks,
	Age3To4Months,
	Age5To6Months,
	Age7To9Months,
	Age10To12Months,
	Age12To18Months,
	Age18To24Months,
}

// Parenting styles the quiz offers. Any other value is accepted and treated
// as a moderate preference.
const (
	StyleGentle   = "gentle"
	StyleModerate = "moderate"
	StyleCIO      = "cio"
	StyleUnsure   = "unsure"
)

// QuizAnswers is the parent's submitted quiz. Values come from the UI
// vocabulary but are never enumerated server-side.
type QuizAnswers struct {
	BabyAge          string `json:"babyAge"`
	FeedingMethod    string `json:"feedingMethod"`
	NightSleep       string `json:"nightSleep"`
	NapPattern       string `json:"napPattern"`
	BedtimeRoutine   string `json:"bedtimeRoutine"`
	SleepEnvironment string `json:"sleepEnvironment"`
	ParentingStyle   string `json:"parentingStyle"`
	PrimaryStruggle  string `json:"primaryStruggle"`
}

// UnmarshalJSON accepts any JSON value for each answer. Strings pass through,
// other values keep their JSON text and null becomes "". A payload that is not
// an object decodes to empty answers.
func (q *QuizAnswers) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		*q = QuizAnswers{}
		return nil
	}

	*q = QuizAnswers{
		BabyAge:          answerText(fields["babyAge"]),
		FeedingMethod:    answerText(fields["feedingMethod"]),
		NightSleep:       answerText(fields["nightSleep"]),
		NapPattern:       answerText(fields["napPattern"]),
		BedtimeRoutine:   answerText(fields["bedtimeRoutine"]),
		SleepEnvironment: answerText(fields["sleepEnvironment"]),
		ParentingStyle:   answerText(fields["parentingStyle"]),
		PrimaryStruggle:  answerText(fields["primaryStruggle"]),
	}
	return nil
}

func answerText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// AgeLabel returns the singular label used in prompts ("5-6 month old").
func AgeLabel(babyAge string) string {
	switch AgeBracket(babyAge) {
	case Age0To6Weeks:
		return "0-6 week old"
	case Age6To12Weeks:
		return "6-12 week old"
	case Age3To4Months:
		return "3-4 month old"
	case Age5To6Months:
		return "5-6 month old"
	case Age7To9Months:
		return "7-9 month old"
	case Age10To12Months:
		return "10-12 month old"
	case Age12To18Months:
		return "12-18 month old"
	case Age18To24Months:
		return "18-24 month old"
	default:
		return "baby"
	}
}

// AgeDescription returns the label used in e-mails ("5-6 months old").
func AgeDescription(babyAge string) string {
	switch AgeBracket(babyAge) {
	case Age0To6Weeks:
		return "0-6 weeks old"
	case Age6To12Weeks:
		return "6-12 weeks old"
	case Age3To4Months:
		return "3-4 months old"
	case Age5To6Months:
		return "5-6 months old"
	case Age7To9Months:
		return "7-9 months old"
	case Age10To12Months:
		return "10-12 months old"
	case Age12To18Months:
		return "12-18 months old"
	case Age18To24Months:
		return "18-24 months old"
	default:
		return "your baby"
	}
}
