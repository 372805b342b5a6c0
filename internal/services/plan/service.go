package plan

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/HammerMeetNail/babysleepoptimizer/internal/logging"
	"github.com/HammerMeetNail/babysleepoptimizer/internal/models"
)

// Stats is the read-only health view of the service.
type Stats struct {
	FallbackUsageCount   int64 `json:"fallbackUsageCount"`
	CredentialConfigured bool  `json:"credentialConfigured"`
}

// Service turns quiz answers into a sleep plan. It asks the text generator
// first and serves the fallback plan whenever that cannot be trusted.
type Service struct {
	generator  TextGenerator
	model      string
	configured bool
	logs       GenerationLog
	metrics    *Metrics

	fallbacks atomic.Int64
}

// NewService wires a plan service. generator may be nil, in which case every
// request is served from the fallback tables. The missing credential is
// reported here, once, rather than on every request.
func NewService(generator TextGenerator, model string, logs GenerationLog, metrics *Metrics) *Service {
	s := &Service{
		generator:  generator,
		model:      model,
		configured: generator != nil,
		logs:       logs,
		metrics:    metrics,
	}

	metrics.setCredentialConfigured(s.configured)
	if !s.configured {
		logging.Error("CRITICAL: WAVESPEED_API_KEY not configured; AI-powered sleep plans are disabled and every request will use the fallback plan", map[string]interface{}{
			"fix": "set WAVESPEED_API_KEY (and optionally WAVESPEED_API_URL, WAVESPEED_MODEL) and restart",
		})
	}
	return s
}

// Generate always returns a complete plan. Upstream failures are logged and
// counted, never returned. The caller's cancellation is not propagated to the
// upstream call.
func (s *Service) Generate(ctx context.Context, answers models.QuizAnswers) *models.SleepPlan {
	ctx = context.WithoutCancel(ctx)
	start := time.Now()

	plan, err := s.generate(ctx, answers)
	duration := time.Since(start)

	if err == nil {
		s.metrics.observeSuccess(duration)
		s.record(ctx, answers, sourceAI, "", duration)
		logging.Info("Sleep plan generated by AI", map[string]interface{}{
			"baby_age":    answers.BabyAge,
			"duration_ms": duration.Milliseconds(),
		})
		return plan
	}

	count := s.fallbacks.Add(1)
	reason := failureReason(err)
	s.metrics.observeFallback(reason, duration)
	s.record(ctx, answers, sourceFallback, reason, duration)

	fields := map[string]interface{}{
		"reason":               reason,
		"baby_age":             answers.BabyAge,
		"fallback_usage_count": count,
		"duration_ms":          duration.Milliseconds(),
	}
	if reason == "not_configured" {
		logging.Debug("Serving fallback sleep plan; AI credential not configured", fields)
	} else {
		fields["error"] = err.Error()
		if reason == "upstream_error" {
			fields["hint"] = "check WAVESPEED_API_KEY, WAVESPEED_API_URL and WAVESPEED_MODEL"
		}
		logging.Warn("AI sleep plan generation failed; using fallback plan", fields)
	}

	return BuildFallback(answers)
}

func (s *Service) generate(ctx context.Context, answers models.QuizAnswers) (*models.SleepPlan, error) {
	if !s.configured {
		return nil, ErrNotConfigured
	}

	text, err := s.generator.Complete(ctx, CompletionRequest{
		System:      systemPersona,
		Prompt:      BuildPrompt(answers),
		Temperature: promptTemperature,
		MaxTokens:   promptMaxTokens,
	})
	if err != nil {
		return nil, err
	}

	result := ParseResponse(text)
	if !result.Parsed() {
		return nil, fmt.Errorf("%w (%s)", result.Err, result.Reason)
	}
	return result.Plan, nil
}

// Stats reports the fallback count and whether the credential was present.
func (s *Service) Stats() Stats {
	return Stats{
		FallbackUsageCount:   s.fallbacks.Load(),
		CredentialConfigured: s.configured,
	}
}

func (s *Service) record(ctx context.Context, answers models.QuizAnswers, source, reason string, duration time.Duration) {
	if s.logs == nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	err := s.logs.Record(ctx, GenerationRecord{
		ID:             uuid.New(),
		BabyAge:        answers.BabyAge,
		ParentingStyle: answers.ParentingStyle,
		Source:         source,
		Reason:         reason,
		Model:          s.model,
		Duration:       duration,
	})
	if err != nil {
		logging.Error("Failed to record sleep plan generation", map[string]interface{}{
			"error":  err.Error(),
			"source": source,
		})
	}
}
