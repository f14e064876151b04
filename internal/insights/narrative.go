package insights

import (
	"fmt"
	"strings"
	"time"
)

// Analysis is a short written reading of a snapshot.
type Analysis struct {
	Summary     string    `json:"summary"`
	MoodInsight string    `json:"mood_insight"`
	Patterns    []string  `json:"patterns"`
	Suggestions []string  `json:"suggestions"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Narrate fills fixed sentence templates with values from the snapshot.
// It is safe on an empty snapshot.
func Narrate(s Snapshot, trend TrendDirection, generatedAt time.Time) Analysis {
	dominant := "untracked"
	bestCount := 0
	for _, share := range s.MoodDistribution {
		if share.Count > bestCount {
			dominant, bestCount = share.Mood.String(), share.Count
		}
	}
	theme := "reflection"
	if len(s.TopTags) > 0 {
		theme = s.TopTags[0].Tag
	}
	p := s.Patterns

	return Analysis{
		Summary: fmt.Sprintf("You logged %d entries in %s. Your writing pace is strongest on %s and your streak is %d days.",
			s.Stats.EntriesThisPeriod, strings.ToLower(s.Period.FullLabel()), p.MostProductiveDay, s.Streak.CurrentStreak),
		MoodInsight: fmt.Sprintf("Your dominant mood was %s with a %s trend, often around themes like %s.",
			dominant, trend, theme),
		Patterns: []string{
			fmt.Sprintf("Most writing happens in the %s.", strings.ToLower(p.MostProductiveTime)),
			fmt.Sprintf("You average %.1f entries per day in this window.", p.AverageEntriesPerDay),
			fmt.Sprintf("Mood tends to be highest on %s.", p.BestMoodDay),
		},
		Suggestions: []string{
			"Protect one short daily journaling slot to keep momentum.",
			fmt.Sprintf("Reuse prompts from high-mood days like %s.", p.BestMoodDay),
			"Tag entries consistently so future insights can be more specific.",
		},
		GeneratedAt: generatedAt,
	}
}
