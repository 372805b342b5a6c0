package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/HammerMeetNail/babysleepoptimizer/internal/config"
	"github.com/HammerMeetNail/babysleepoptimizer/internal/services/plan"
)

const serviceVersion = "2.0.0"

type HealthChecker interface {
	Health(ctx context.Context) error
}

type PlanStatsProvider interface {
	Stats() plan.Stats
}

// HealthHandler reports service status. db and redis may be nil when the
// corresponding dependency is disabled.
type HealthHandler struct {
	db       HealthChecker
	redis    HealthChecker
	plans    PlanStatsProvider
	payments config.PaymentsConfig
}

func NewHealthHandler(db, redis HealthChecker, plans PlanStatsProvider, payments config.PaymentsConfig) *HealthHandler {
	return &HealthHandler{
		db:       db,
		redis:    redis,
		plans:    plans,
		payments: payments,
	}
}

type HealthResponse struct {
	Status    string         `json:"status"`
	Timestamp string         `json:"timestamp"`
	Services  ServicesStatus `json:"services"`
	Version   string         `json:"version"`
}

type ServicesStatus struct {
	API      string           `json:"api"`
	AI       AIStatus         `json:"ai"`
	Postgres string           `json:"postgres,omitempty"`
	Redis    string           `json:"redis,omitempty"`
	Paystack ConfiguredStatus `json:"paystack"`
	PayPal   ConfiguredStatus `json:"paypal"`
}

type AIStatus struct {
	Configured         bool   `json:"configured"`
	FallbackUsageCount int64  `json:"fallbackUsageCount"`
	Status             string `json:"status"`
}

type ConfiguredStatus struct {
	Configured bool `json:"configured"`
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	stats := h.plans.Stats()
	aiStatus := "using_fallback_only"
	if stats.CredentialConfigured {
		aiStatus = "configured"
	}

	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   serviceVersion,
		Services: ServicesStatus{
			API: "operational",
			AI: AIStatus{
				Configured:         stats.CredentialConfigured,
				FallbackUsageCount: stats.FallbackUsageCount,
				Status:             aiStatus,
			},
			Paystack: ConfiguredStatus{Configured: h.payments.PaystackSecretSet},
			PayPal:   ConfiguredStatus{Configured: h.payments.PayPalClientID != ""},
		},
	}

	if h.db != nil {
		if err := h.db.Health(ctx); err != nil {
			response.Status = "unhealthy"
			response.Services.Postgres = "unhealthy: " + err.Error()
		} else {
			response.Services.Postgres = "healthy"
		}
	}

	if h.redis != nil {
		if err := h.redis.Health(ctx); err != nil {
			response.Status = "unhealthy"
			response.Services.Redis = "unhealthy: " + err.Error()
		} else {
			response.Services.Redis = "healthy"
		}
	}

	status := http.StatusOK
	if response.Status == "unhealthy" {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, response)
}

func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	for _, checker := range []HealthChecker{h.db, h.redis} {
		if checker == nil {
			continue
		}
		if err := checker.Health(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("not ready"))
			return
		}
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ready"))
}

func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("alive"))
}
