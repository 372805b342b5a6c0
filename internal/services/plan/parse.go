package plan

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/HammerMeetNail/babysleepoptimizer/internal/models"
)

// RejectReason says why an upstream response could not be used.
type RejectReason string

const (
	RejectNoJSON       RejectReason = "no_json"
	RejectInvalidJSON  RejectReason = "invalid_json"
	RejectInvalidShape RejectReason = "invalid_shape"
)

// ParseResult is either a parsed plan or a rejection. Exactly one of Plan and
// Reason is set.
type ParseResult struct {
	Plan   *models.SleepPlan
	Reason RejectReason
	Err    error
}

// Parsed reports whether the response produced a usable plan.
func (r ParseResult) Parsed() bool {
	return r.Plan != nil
}

func rejected(reason RejectReason, err error) ParseResult {
	return ParseResult{Reason: reason, Err: err}
}

// ParseResponse extracts the first JSON object embedded in text and accepts
// it only if it decodes into a complete SleepPlan. Partial plans are rejected
// whole.
func ParseResponse(text string) ParseResult {
	if !strings.Contains(text, "{") {
		return rejected(RejectNoJSON, fmt.Errorf("%w: response contains no JSON object", ErrMalformedOutput))
	}

	raw, ok := ExtractJSONObject(text)
	if !ok {
		return rejected(RejectInvalidJSON, fmt.Errorf("%w: no parseable JSON object in response", ErrMalformedOutput))
	}

	if err := checkFieldCase(raw); err != nil {
		return rejected(RejectInvalidShape, fmt.Errorf("%w: %v", ErrMalformedOutput, err))
	}

	var plan models.SleepPlan
	if err := json.Unmarshal(raw, &plan); err != nil {
		return rejected(RejectInvalidShape, fmt.Errorf("%w: %v", ErrMalformedOutput, err))
	}
	if err := plan.Validate(); err != nil {
		return rejected(RejectInvalidShape, fmt.Errorf("%w: %v", ErrMalformedOutput, err))
	}

	return ParseResult{Plan: &plan}
}

// ExtractJSONObject returns the first substring of text that starts at a '{'
// and decodes as a complete JSON object. Surrounding prose and markdown
// fences are ignored.
func ExtractJSONObject(text string) (json.RawMessage, bool) {
	for i := strings.IndexByte(text, '{'); i >= 0; {
		dec := json.NewDecoder(strings.NewReader(text[i:]))
		var raw json.RawMessage
		if err := dec.Decode(&raw); err == nil {
			return raw, true
		}

		next := strings.IndexByte(text[i+1:], '{')
		if next < 0 {
			break
		}
		i += next + 1
	}
	return nil, false
}

// fieldNames maps each SleepPlan JSON key to the keys of its nested objects.
// Arrays share the schema of their elements.
type fieldNames map[string]fieldNames

var planFieldNames = fieldNames{
	"letter":       nil,
	"education":    nil,
	"schedule":     {"time": nil, "activity": nil},
	"scheduleNote": nil,
	"bedtimeRoutine": {
		"steps":      {"title": nil, "explanation": nil},
		"variations": {"calm": nil, "overtired": nil},
	},
	"sleepTraining":   {"method": nil, "guide": nil},
	"feeding":         nil,
	"expectations":    {"day": nil, "description": nil},
	"troubleshooting": {"problem": nil, "solution": nil},
	"optimization":    nil,
	"encouragement":   nil,
}

// checkFieldCase rejects keys that differ from a plan field only by case.
// encoding/json would otherwise fold "SCHEDULE" into schedule. Unknown keys
// are left alone.
func checkFieldCase(raw json.RawMessage) error {
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return err
	}
	return walkFieldCase(v, planFieldNames, "")
}

func walkFieldCase(v interface{}, names fieldNames, path string) error {
	switch t := v.(type) {
	case []interface{}:
		for _, elem := range t {
			if err := walkFieldCase(elem, names, path); err != nil {
				return err
			}
		}
	case map[string]interface{}:
		for key, child := range t {
			if nested, ok := names[key]; ok {
				if err := walkFieldCase(child, nested, path+key+"."); err != nil {
					return err
				}
				continue
			}
			for known := range names {
				if strings.EqualFold(key, known) {
					return fmt.Errorf("field %s%s must be spelled %q", path, key, known)
				}
			}
		}
	}
	return nil
}
