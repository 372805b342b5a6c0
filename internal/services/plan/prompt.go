package plan

import (
	"fmt"
	"strings"

	"github.com/HammerMeetNail/babysleepoptimizer/internal/models"
)

const systemPersona = "You are a gentle, supportive pediatric sleep consultant with 15 years of experience helping exhausted parents. Your tone is warm, reassuring, and non-judgmental. You provide practical, age-appropriate sleep guidance based on research, but always emphasize you are NOT providing medical advice."

const (
	promptTemperature = 0.7
	promptMaxTokens   = 3000
	maxAnswerRunes    = 500
)

// BuildPrompt renders the user instruction for answers. Every answer is
// copied into the text, so the same answers always produce the same prompt.
func BuildPrompt(answers models.QuizAnswers) string {
	ageLabel := models.AgeLabel(answers.BabyAge)
	style := sanitizeInput(answers.ParentingStyle)

	return fmt.Sprintf(`
You are an experienced infant sleep consultant + night nurse + empathetic coach.
You are creating a PAID, PREMIUM, PERSONALIZED sleep plan for a parent who paid for this service.
This document must feel like something a parent would gladly pay $50–$100 for.

ABSOLUTE REQUIREMENTS:
1. LENGTH & DEPTH: Minimum 1,200 words. Explanations, not just instructions. AND explain WHY.
2. PERSONALIZATION: Explicitly reference the baby's inputs repeatedly (e.g., "Because your baby is %[1]s...", "Since you prefer a %[2]s approach...").
3. NO GENERIC ADVICE: If it feels like a blog post, it is a FAILURE.

BABY PROFILE:
- Age: %[1]s
- Feeding: %[3]s
- Current struggle: %[4]s
- Parenting Style: %[2]s
- Current Sleep: %[5]s
- Naps: %[6]s
- Current Bedtime Routine: %[7]s
- Environment: %[8]s

REQUIRED JSON OUTPUT STRUCTURE:
{
  "letter": "Section 1: Reassurance & Normalization. Emotional validation. Remove guilt.",
  "education": "Section 2: How Baby Sleep Works at This Age. Biology, sleep cycles, realistic expectations.",
  "schedule": [
    {"time": "Start Time", "activity": "Detailed activity description with 'Why'"}
  ],
  "scheduleNote": "Section 3 extra: Wake windows explained, flexibility rules, what to do if nap fails.",
  "bedtimeRoutine": {
    "steps": [{"title": "Step Name", "explanation": "Why it works"}],
    "variations": {
      "calm": "Routine for a calm night",
      "overtired": "Routine for an overtired/meltdown night"
    }
  },
  "sleepTraining": {
    "method": "Name of method based on %[2]s",
    "guide": "Section 5: Step-by-step guidance. What crying means vs doesn't mean. When to intervene. No shaming."
  },
  "feeding": "Section 6: Feeding & Sleep Timing. Cluster feeding, night feeds (normal vs optional), hungry vs overtired signs.",
  "expectations": [
    {"day": "Night 1-2", "description": "Detailed breakdown of what will likely happen"},
    {"day": "Night 3-4", "description": "Detailed breakdown"},
    {"day": "Night 5-7", "description": "Detailed breakdown plus regression warning"}
  ],
  "troubleshooting": [
    {"problem": "Baby fights naps", "solution": "Why + What to try tonight"},
    {"problem": "Wakes after 30-45 mins", "solution": "Why + What to try tonight"},
    {"problem": "False starts", "solution": "Why + What to try tonight"}
  ],
  "optimization": [
    "Tip 1: Light exposure",
    "Tip 2: Sound consistency",
    "Tip 3: Temperature/Environment"
  ],
  "encouragement": "Section 10: Final emotional encouragement. One clear action for tonight."
}

Ensure the tone is warm, calm, supportive, and non-judgmental. No medical jargon.
Return ONLY valid JSON.
`,
		ageLabel,
		style,
		sanitizeInput(answers.FeedingMethod),
		sanitizeInput(answers.PrimaryStruggle),
		sanitizeInput(answers.NightSleep),
		sanitizeInput(answers.NapPattern),
		sanitizeInput(answers.BedtimeRoutine),
		sanitizeInput(answers.SleepEnvironment),
	)
}

// sanitizeInput collapses whitespace and caps length, rune-aware.
func sanitizeInput(input string) string {
	input = strings.Join(strings.Fields(input), " ")
	if runes := []rune(input); len(runes) > maxAnswerRunes {
		input = string(runes[:maxAnswerRunes])
	}
	return input
}
