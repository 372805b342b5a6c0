package plan

import "github.com/HammerMeetNail/babysleepoptimizer/internal/models"

const (
	methodGentleFading       = "Gentle Fading"
	methodGraduatedIntervals = "Graduated Intervals"

	feedingUnknownAge = "Consult your pediatrician for feeding guidance appropriate to your baby's age."
	feedingClosing    = "\n\nTry to keep feeds exciting during the day and boring at night to help fix day/night confusion."
)

// BuildFallback returns the template plan for answers. It is pure and total:
// unknown or empty quiz values select the documented default tables.
func BuildFallback(answers models.QuizAnswers) *models.SleepPlan {
	return &models.SleepPlan{
		Letter:       fallbackLetter,
		Education:    fallbackEducation,
		Schedule:     scheduleFor(answers.BabyAge),
		ScheduleNote: fallbackScheduleNote,
		BedtimeRoutine: models.BedtimeRoutine{
			Steps: routineFor(answers.ParentingStyle),
			Variations: models.RoutineVariations{
				Calm:      "Take your time with the massage and cuddles. Sing an extra song if baby is relaxed.",
				Overtired: "Cut the bath. Go straight to diaper, swaddle/sack, white noise, and feeding. Get them down ASAP to avoid a meltdown.",
			},
		},
		SleepTraining: models.SleepTraining{
			Method: trainingMethodFor(answers.ParentingStyle),
			Guide:  fallbackTrainingGuide,
		},
		Feeding: feedingGuidanceFor(answers.BabyAge) + feedingClosing,
		Expectations: []models.Expectation{
			{Day: "Night 1-2", Description: "Expect pushback. The first night of a new routine is often the hardest. Stick to the plan."},
			{Day: "Night 3-4", Description: "You might see 'extinction burst' where it gets worse before it gets better. This is a sign it's working."},
			{Day: "Night 5-7", Description: "Things should start smoothing out. Watch for consistency in nap lengths first."},
		},
		Troubleshooting: []models.TroubleshootingTip{
			{Problem: "False Starts (waking 45 mins after bedtime)", Solution: "Usually caused by overtiredness. Try moving bedtime 20 minutes EARLIER tomorrow."},
			{Problem: "Early Morning Waking", Solution: "Treat 5 AM like the middle of the night. Keep lights off, no interaction. Ensure the first nap isn't too early."},
			{Problem: "Short Naps", Solution: "Practice 'crib hour'. Leave baby for the full hour nap time to encourage falling back asleep."},
		},
		Optimization: []string{
			"Darkness: Use blackout curtains. Pitch black is best.",
			"Sound: Continuous white noise (like rain) helps link sleep cycles.",
			"Temperature: Keep the room cool (68-72°F) for best sleep.",
		},
		Encouragement: fallbackEncouragement,
	}
}

// trainingMethodFor only distinguishes gentle from everything else, so "cio"
// shares the label used for moderate and unsure parents.
func trainingMethodFor(parentingStyle string) string {
	if parentingStyle == models.StyleGentle {
		return methodGentleFading
	}
	return methodGraduatedIntervals
}

// scheduleFor has no 6-12 week or 18-24 month table; those brackets and any
// unknown value use the 5-6 month day.
func scheduleFor(babyAge string) []models.ScheduleEntry {
	switch models.AgeBracket(babyAge) {
	case models.Age0To6Weeks:
		return []models.ScheduleEntry{
			{Time: "7:00 AM", Activity: "Wake and feed"},
			{Time: "7:45 AM", Activity: "Nap 1 (1-2 hours)"},
			{Time: "10:00 AM", Activity: "Wake and feed"},
			{Time: "10:45 AM", Activity: "Nap 2 (1-2 hours)"},
			{Time: "1:00 PM", Activity: "Wake and feed"},
			{Time: "1:45 PM", Activity: "Nap 3 (1-2 hours)"},
			{Time: "4:00 PM", Activity: "Wake and feed"},
			{Time: "4:45 PM", Activity: "Catnap (30-45 min)"},
			{Time: "6:30 PM", Activity: "Feed and start bedtime routine"},
			{Time: "7:30 PM", Activity: "Bedtime"},
			{Time: "Night", Activity: "Wake for feeds every 2-3 hours (normal for newborns)"},
		}
	case models.Age3To4Months:
		return []models.ScheduleEntry{
			{Time: "7:00 AM", Activity: "Wake and feed"},
			{Time: "8:30 AM", Activity: "Nap 1 (1-1.5 hours)"},
			{Time: "11:00 AM", Activity: "Wake and feed"},
			{Time: "12:30 PM", Activity: "Nap 2 (1-1.5 hours)"},
			{Time: "3:00 PM", Activity: "Wake and feed"},
			{Time: "4:30 PM", Activity: "Catnap (30-45 min)"},
			{Time: "6:00 PM", Activity: "Feed and playtime"},
			{Time: "6:45 PM", Activity: "Start bedtime routine"},
			{Time: "7:30 PM", Activity: "Bedtime"},
			{Time: "Night", Activity: "May wake 1-2 times for feeding"},
		}
	case models.Age7To9Months:
		return []models.ScheduleEntry{
			{Time: "6:30 AM", Activity: "Wake and feed"},
			{Time: "9:00 AM", Activity: "Nap 1 (1-1.5 hours)"},
			{Time: "12:00 PM", Activity: "Lunch and feed"},
			{Time: "2:00 PM", Activity: "Nap 2 (1-1.5 hours)"},
			{Time: "5:00 PM", Activity: "Dinner"},
			{Time: "6:30 PM", Activity: "Start bedtime routine"},
			{Time: "7:00 PM", Activity: "Bedtime"},
			{Time: "Night", Activity: "Most babies sleep through at this age"},
		}
	case models.Age10To12Months:
		return []models.ScheduleEntry{
			{Time: "6:30 AM", Activity: "Wake and breakfast"},
			{Time: "9:30 AM", Activity: "Nap 1 (1-1.5 hours)"},
			{Time: "12:00 PM", Activity: "Lunch"},
			{Time: "2:30 PM", Activity: "Nap 2 (1-1.5 hours)"},
			{Time: "5:30 PM", Activity: "Dinner"},
			{Time: "6:45 PM", Activity: "Start bedtime routine"},
			{Time: "7:30 PM", Activity: "Bedtime"},
		}
	case models.Age12To18Months:
		return []models.ScheduleEntry{
			{Time: "7:00 AM", Activity: "Wake and breakfast"},
			{Time: "12:30 PM", Activity: "Lunch then nap (2-2.5 hours)"},
			{Time: "5:30 PM", Activity: "Dinner"},
			{Time: "7:00 PM", Activity: "Start bedtime routine"},
			{Time: "7:45 PM", Activity: "Bedtime"},
		}
	default:
		return []models.ScheduleEntry{
			{Time: "6:30 AM", Activity: "Wake and feed"},
			{Time: "8:30 AM", Activity: "Nap 1 (1-1.5 hours)"},
			{Time: "11:00 AM", Activity: "Wake and feed"},
			{Time: "1:00 PM", Activity: "Nap 2 (1-1.5 hours)"},
			{Time: "3:30 PM", Activity: "Wake and feed"},
			{Time: "5:00 PM", Activity: "Optional catnap (30 min)"},
			{Time: "6:00 PM", Activity: "Dinner and playtime"},
			{Time: "6:45 PM", Activity: "Start bedtime routine"},
			{Time: "7:30 PM", Activity: "Bedtime"},
			{Time: "Night", Activity: "May sleep through or wake once"},
		}
	}
}

// routineFor selects the gentle or cio routine; moderate, unsure and anything
// unrecognised get the moderate routine.
func routineFor(parentingStyle string) []models.RoutineStep {
	switch parentingStyle {
	case models.StyleGentle:
		return []models.RoutineStep{
			{Title: "Environment Change", Explanation: "Dim the lights and turn off screens 30 minutes before sleep. This boosts melatonin production."},
			{Title: "Warm Bath", Explanation: "A 5-10 minute soak resets the nervous system. Keep it calm and quiet."},
			{Title: "Massage & PJs", Explanation: "Use gentle strokes with lotion. This physical touch reduces cortisol (stress hormone)."},
			{Title: "Feeding", Explanation: "Offer the final feed in the dimly lit bedroom to associate milk with sleepiness, not play."},
			{Title: "White Noise On", Explanation: "Turn on continuous white noise (like rain or a fan) to block household sounds."},
			{Title: "Cuddle & Song", Explanation: "Sing the same lullaby every night. The repetition signals safety."},
			{Title: "Drowsy Transfer", Explanation: "Place baby in the crib while they are heavy-eyed but still slightly awake. Stay close and pat until asleep."},
		}
	case models.StyleCIO:
		return []models.RoutineStep{
			{Title: "Hygiene & Prep", Explanation: "Quick bath, lotion, and pajamas. Keep this part loving but efficient (15 mins)."},
			{Title: "Full Feed", Explanation: "Ensure baby is fully fed. Do this outside the bedroom if possible to break feed-to-sleep association."},
			{Title: "Reading & Cuddles", Explanation: "Read a book and have a solid 5 minutes of focused cuddling."},
			{Title: "White Noise", Explanation: "Turn on sound machine. This becomes a strong sleep cue."},
			{Title: "Crib Placement", Explanation: "Place baby in crib completely awake. Say a confident goodnight."},
			{Title: "Exit", Explanation: "Leave the room immediately. Checks are done only at specific long intervals (if using Ferber) or not at all (Extinction)."},
		}
	default:
		return []models.RoutineStep{
			{Title: "Calm Down Signals", Explanation: "Close curtains and use soft voices. Signal that high-energy play is over."},
			{Title: "Bath Routine", Explanation: "A consistent bath time is the strongest anchor for a bedtime routine."},
			{Title: "Diaper & Pajamas", Explanation: "Change into a fresh overnight diaper and comfortable sleep sack."},
			{Title: "Final Feed", Explanation: "Ensure a full feed so baby isn't waking from hunger. Keep interaction low-key."},
			{Title: "Story Time", Explanation: "Read one short, rhythmic book. This helps their brain wind down."},
			{Title: "Into Crib", Explanation: `Place baby down awake. Say your "key phrase" (e.g., "Night night, I love you").`},
			{Title: "The Pause", Explanation: "If baby fusses, wait 5-10 minutes before entering. Give them a chance to settle."},
		}
	}
}

func feedingGuidanceFor(babyAge string) string {
	switch models.AgeBracket(babyAge) {
	case models.Age0To6Weeks:
		return "Feed on demand every 2-3 hours, including overnight. This is normal and healthy for newborns."
	case models.Age6To12Weeks:
		return "Aim for feeds every 2.5-3 hours during the day. Nighttime stretches may extend to 4-5 hours."
	case models.Age3To4Months:
		return "Most babies can go 3-4 hours between daytime feeds. Night feeds may reduce to 1-2."
	case models.Age5To6Months:
		return "Solid foods may start. Continue 4-5 milk feeds during the day, possibly 1 overnight."
	case models.Age7To9Months:
		return "3 meals + 3-4 milk feeds. Many babies drop night feeds at this age."
	case models.Age10To12Months:
		return "3 meals + snacks + 2-3 milk feeds. Most babies sleep through without feeding."
	case models.Age12To18Months:
		return "Regular meals with 1-2 milk feeds. Night feeding usually unnecessary."
	case models.Age18To24Months:
		return "Table foods and 1-2 milk servings. Should sleep through the night."
	default:
		return feedingUnknownAge
	}
}

const fallbackLetter = `Dear Parent,

I know how exhausted you must be right now. Sleep deprivation is one of the hardest parts of parenting, and it's completely normal to feel overwhelmed. Please know that you are doing a wonderful job.

This premium plan was created to help guide you and your baby toward better rest. It’s not about being perfect; it’s about making small, consistent changes that add up. Be patient with yourself and your little one. You've got this!`

const fallbackEducation = `At this age, your baby's sleep cycles are maturing. Unlike adults who cycle through sleep stages every 90 minutes, babies cycle every 45-50 minutes. This is why they often wake up after short naps or frequently at night—they are transitioning between cycles and haven't yet learned how to link them back together without help.

Your goal now is not to "force" sleep, but to provide the right environment and timing so their biological sleep pressure is high enough to sleep, but not so high that they are overtired and fight it.`

const fallbackScheduleNote = `Wake windows are key. If your baby takes a short nap (less than 45 mins), shorten the next wake window by 15-20 minutes to prevent overtiredness only. Watch for sleepy cues like red eyebrows or staring into space—catch them before the fussing starts.`

const fallbackTrainingGuide = "Start by putting baby down drowsy but awake. If they protest, give them a moment to settle. Listen to the cry—is it a mantra cry (settling) or a distress cry? intervene only for distress. detailed steps would depend on your specific situation, but consistency is your best friend."

const fallbackEncouragement = `You are the best parent for your baby. Trust your instincts. If tonight falls apart, that's okay. Tomorrow is a new day. Focus on progress, not perfection.`
