package models

import (
	"errors"
	"fmt"
	"strings"
)

// SleepPlan is the multi-section document returned to the parent.
// Slice order is display order; for Schedule it is also the order of the day.
type SleepPlan struct {
	Letter          string               `json:"letter"`
	Education       string               `json:"education"`
	Schedule        []ScheduleEntry      `json:"schedule"`
	ScheduleNote    string               `json:"scheduleNote"`
	BedtimeRoutine  BedtimeRoutine       `json:"bedtimeRoutine"`
	SleepTraining   SleepTraining        `json:"sleepTraining"`
	Feeding         string               `json:"feeding"`
	Expectations    []Expectation        `json:"expectations"`
	Troubleshooting []TroubleshootingTip `json:"troubleshooting"`
	Optimization    []string             `json:"optimization"`
	Encouragement   string               `json:"encouragement"`
}

type ScheduleEntry struct {
	Time     string `json:"time"`
	Activity string `json:"activity"`
}

type BedtimeRoutine struct {
	Steps      []RoutineStep     `json:"steps"`
	Variations RoutineVariations `json:"variations"`
}

type RoutineStep struct {
	Title       string `json:"title"`
	Explanation string `json:"explanation"`
}

type RoutineVariations struct {
	Calm      string `json:"calm"`
	Overtired string `json:"overtired"`
}

type SleepTraining struct {
	Method string `json:"method"`
	Guide  string `json:"guide"`
}

type Expectation struct {
	Day         string `json:"day"`
	Description string `json:"description"`
}

type TroubleshootingTip struct {
	Problem  string `json:"problem"`
	Solution string `json:"solution"`
}

// ErrIncompletePlan is returned by Validate when a section is missing or empty.
var ErrIncompletePlan = errors.New("sleep plan is incomplete")

// Validate checks that every section the presentation layer reads is present
// and non-empty.
func (p *SleepPlan) Validate() error {
	if p == nil {
		return fmt.Errorf("%w: plan is nil", ErrIncompletePlan)
	}

	if len(p.Schedule) == 0 {
		return fmt.Errorf("%w: schedule is empty", ErrIncompletePlan)
	}
	for i, entry := range p.Schedule {
		if blank(entry.Time) || blank(entry.Activity) {
			return fmt.Errorf("%w: schedule[%d] missing time or activity", ErrIncompletePlan, i)
		}
	}

	if len(p.BedtimeRoutine.Steps) == 0 {
		return fmt.Errorf("%w: bedtime routine has no steps", ErrIncompletePlan)
	}
	for i, step := range p.BedtimeRoutine.Steps {
		if blank(step.Title) || blank(step.Explanation) {
			return fmt.Errorf("%w: bedtimeRoutine.steps[%d] missing title or explanation", ErrIncompletePlan, i)
		}
	}
	if blank(p.BedtimeRoutine.Variations.Calm) || blank(p.BedtimeRoutine.Variations.Overtired) {
		return fmt.Errorf("%w: bedtime routine variations missing", ErrIncompletePlan)
	}

	if blank(p.SleepTraining.Method) || blank(p.SleepTraining.Guide) {
		return fmt.Errorf("%w: sleep training missing method or guide", ErrIncompletePlan)
	}

	if len(p.Expectations) == 0 {
		return fmt.Errorf("%w: expectations are empty", ErrIncompletePlan)
	}
	for i, e := range p.Expectations {
		if blank(e.Day) || blank(e.Description) {
			return fmt.Errorf("%w: expectations[%d] missing day or description", ErrIncompletePlan, i)
		}
	}

	if len(p.Troubleshooting) == 0 {
		return fmt.Errorf("%w: troubleshooting is empty", ErrIncompletePlan)
	}
	for i, tip := range p.Troubleshooting {
		if blank(tip.Problem) || blank(tip.Solution) {
			return fmt.Errorf("%w: troubleshooting[%d] missing problem or solution", ErrIncompletePlan, i)
		}
	}

	if len(p.Optimization) == 0 {
		return fmt.Errorf("%w: optimization tips are empty", ErrIncompletePlan)
	}
	for i, tip := range p.Optimization {
		if blank(tip) {
			return fmt.Errorf("%w: optimization[%d] is empty", ErrIncompletePlan, i)
		}
	}

	textFields := []struct {
		name  string
		value string
	}{
		{"letter", p.Letter},
		{"education", p.Education},
		{"scheduleNote", p.ScheduleNote},
		{"feeding", p.Feeding},
		{"encouragement", p.Encouragement},
	}
	for _, f := range textFields {
		if blank(f.value) {
			return fmt.Errorf("%w: %s is empty", ErrIncompletePlan, f.name)
		}
	}

	return nil
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
