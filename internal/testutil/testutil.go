// Package testutil provides HTTP and fixture helpers shared by tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/HammerMeetNail/babysleepoptimizer/internal/models"
)

// QuizAnswers returns a fully answered quiz for the given age and style.
func QuizAnswers(babyAge, parentingStyle string) models.QuizAnswers {
	return models.QuizAnswers{
		BabyAge:          babyAge,
		FeedingMethod:    "breastfed",
		NightSleep:       "wakes-3-plus",
		NapPattern:       "short-naps",
		BedtimeRoutine:   "feed-to-sleep",
		SleepEnvironment: "own-room",
		ParentingStyle:   parentingStyle,
		PrimaryStruggle:  "night-wakings",
	}
}

// GeneratePlanBody builds the body the results page posts to generate a plan.
func GeneratePlanBody(answers models.QuizAnswers) map[string]interface{} {
	return map[string]interface{}{
		"quizData": answers,
		"paymentDetails": map[string]interface{}{
			"provider":  "paystack",
			"reference": uuid.NewString(),
		},
	}
}

// AssertStatusCode checks if the response has the expected status code.
func AssertStatusCode(t *testing.T, rr *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if rr.Code != expected {
		t.Errorf("expected status %d, got %d. Body: %s", expected, rr.Code, rr.Body.String())
	}
}

// AssertJSONContains checks if the JSON response contains expected key-value pairs.
func AssertJSONContains(t *testing.T, body []byte, key string, expected interface{}) {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(body, &result); err != nil {
		t.Fatalf("failed to parse JSON: %v", err)
	}
	if result[key] != expected {
		t.Errorf("expected %s to be %v, got %v", key, expected, result[key])
	}
}

// NewTestRequest creates a new HTTP request for testing.
func NewTestRequest(method, path string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// NewTestRequestWithJSON creates a new HTTP request with JSON body.
func NewTestRequestWithJSON(t *testing.T, method, path string, data interface{}) *http.Request {
	t.Helper()
	body, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("failed to marshal JSON: %v", err)
	}
	return NewTestRequest(method, path, bytes.NewReader(body))
}

// RandomEmail generates a random email for testing.
func RandomEmail() string {
	return uuid.New().String()[:8] + "@test.com"
}

// ParseJSONResponse parses a JSON response body into a map.
func ParseJSONResponse(t *testing.T, body []byte) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(body, &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v", err)
	}
	return result
}
