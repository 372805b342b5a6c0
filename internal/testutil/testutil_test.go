package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestQuizAnswers(t *testing.T) {
	answers := QuizAnswers("5-6months", "gentle")
	if answers.BabyAge != "5-6months" || answers.ParentingStyle != "gentle" {
		t.Fatalf("unexpected answers %+v", answers)
	}
	if answers.FeedingMethod == "" || answers.PrimaryStruggle == "" {
		t.Fatal("expected every answer to be filled in")
	}
}

func TestGeneratePlanBody(t *testing.T) {
	data, err := json.Marshal(GeneratePlanBody(QuizAnswers("0-6weeks", "cio")))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	body := string(data)
	if !strings.Contains(body, `"babyAge":"0-6weeks"`) {
		t.Errorf("expected quiz data in body, got %s", body)
	}
	if !strings.Contains(body, `"paymentDetails"`) {
		t.Errorf("expected payment details in body, got %s", body)
	}
}

func TestNewTestRequestWithJSON(t *testing.T) {
	req := NewTestRequestWithJSON(t, http.MethodPost, "/path", map[string]string{"ok": "yes"})
	if ct := req.Header.Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected content type json, got %q", ct)
	}
}

func TestParseJSONResponse(t *testing.T) {
	body := []byte(`{"ok":true}`)
	got := ParseJSONResponse(t, body)
	if got["ok"] != true {
		t.Fatalf("expected ok=true, got %v", got["ok"])
	}
}

func TestNewTestRequest(t *testing.T) {
	req := NewTestRequest(http.MethodPost, "/path", bytes.NewBufferString("{}"))
	if req.Method != http.MethodPost {
		t.Fatalf("expected method POST, got %s", req.Method)
	}
}

func TestAssertStatusCode(t *testing.T) {
	rr := httptest.NewRecorder()
	rr.WriteHeader(http.StatusCreated)
	AssertStatusCode(t, rr, http.StatusCreated)
}

func TestAssertJSONContains(t *testing.T) {
	body := []byte(`{"ok":"yes"}`)
	AssertJSONContains(t, body, "ok", "yes")
}

func TestRandomEmail(t *testing.T) {
	if a, b := RandomEmail(), RandomEmail(); a == b || !strings.HasSuffix(a, "@test.com") {
		t.Fatalf("unexpected emails %q %q", a, b)
	}
}
