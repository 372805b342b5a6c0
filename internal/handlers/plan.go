package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/HammerMeetNail/babysleepoptimizer/internal/logging"
	"github.com/HammerMeetNail/babysleepoptimizer/internal/middleware"
	"github.com/HammerMeetNail/babysleepoptimizer/internal/models"
)

const maxPlanRequestBytes = 64 << 10

// PlanGenerator always produces a plan; failures are handled behind it.
type PlanGenerator interface {
	Generate(ctx context.Context, answers models.QuizAnswers) *models.SleepPlan
}

type PlanHandler struct {
	plans PlanGenerator
}

func NewPlanHandler(plans PlanGenerator) *PlanHandler {
	return &PlanHandler{plans: plans}
}

// GeneratePlanRequest is posted by the results page once checkout completes.
// Payment details are required but not inspected here. Quiz answers of any
// JSON type are accepted; see models.QuizAnswers.
type GeneratePlanRequest struct {
	QuizData       json.RawMessage `json:"quizData"`
	PaymentDetails json.RawMessage `json:"paymentDetails"`
}

type GeneratePlanResponse struct {
	Success bool              `json:"success"`
	Plan    *models.SleepPlan `json:"plan"`
}

func (h *PlanHandler) Generate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxPlanRequestBytes)

	var req GeneratePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if isJSONEmpty(req.QuizData) || isJSONEmpty(req.PaymentDetails) {
		writeError(w, http.StatusBadRequest, "Missing quiz data or payment details")
		return
	}

	var answers models.QuizAnswers
	if err := json.Unmarshal(req.QuizData, &answers); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	logging.Info("Generating sleep plan", map[string]interface{}{
		"request_id":      middleware.RequestIDFromContext(r.Context()),
		"baby_age":        answers.BabyAge,
		"parenting_style": answers.ParentingStyle,
	})

	plan := h.plans.Generate(r.Context(), answers)

	writeJSON(w, http.StatusOK, GeneratePlanResponse{
		Success: true,
		Plan:    plan,
	})
}

// isJSONEmpty reports whether raw is absent or a falsy JSON scalar.
func isJSONEmpty(raw json.RawMessage) bool {
	v := bytes.TrimSpace(raw)
	switch string(v) {
	case "", "null", "false", `""`, "0":
		return true
	}
	return false
}
