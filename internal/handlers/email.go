package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/HammerMeetNail/babysleepoptimizer/internal/logging"
	"github.com/HammerMeetNail/babysleepoptimizer/internal/middleware"
	"github.com/HammerMeetNail/babysleepoptimizer/internal/models"
	"github.com/HammerMeetNail/babysleepoptimizer/internal/services"
)

const maxEmailRequestBytes = 256 << 10

type PlanMailer interface {
	SendPlan(ctx context.Context, to string, plan *models.SleepPlan, answers models.QuizAnswers) error
}

type EmailHandler struct {
	mailer PlanMailer
}

func NewEmailHandler(mailer PlanMailer) *EmailHandler {
	return &EmailHandler{mailer: mailer}
}

type SendEmailRequest struct {
	Email     string             `json:"email"`
	SleepPlan *models.SleepPlan  `json:"sleepPlan"`
	QuizData  models.QuizAnswers `json:"quizData"`
}

type SendEmailResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (h *EmailHandler) Send(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxEmailRequestBytes)

	var req SendEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Email) == "" || req.SleepPlan == nil {
		writeError(w, http.StatusBadRequest, "Missing email or sleep plan data")
		return
	}

	err := h.mailer.SendPlan(r.Context(), req.Email, req.SleepPlan, req.QuizData)
	switch {
	case err == nil:
	case errors.Is(err, services.ErrInvalidEmail):
		writeError(w, http.StatusBadRequest, "Invalid email address")
		return
	case errors.Is(err, services.ErrMissingPlan):
		writeError(w, http.StatusBadRequest, "Missing email or sleep plan data")
		return
	default:
		logging.Error("Failed to send sleep plan email", map[string]interface{}{
			"request_id": middleware.RequestIDFromContext(r.Context()),
			"error":      err.Error(),
		})
		writeError(w, http.StatusBadGateway, "Failed to send email")
		return
	}

	writeJSON(w, http.StatusOK, SendEmailResponse{
		Success: true,
		Message: "Email sent successfully",
	})
}
