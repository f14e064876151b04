package memory

import (
	"context"
	"time"

	"mina/internal/insights"
	"mina/internal/store"
)

var (
	seedTopics = []string{"Work", "Relationships", "Health", "Creativity", "Goals", "Gratitude", "Anxiety", "Travel"}
	seedMoods  = []insights.MoodLevel{insights.MoodGood, insights.MoodGreat, insights.MoodOkay, insights.MoodLow, insights.MoodGood}
	seedHours  = []int{8, 13, 18, 22}
)

const seedDays = 180

// SeedEntries builds half a year of demo entries ending at today, so the
// insight screens have something to show on a fresh install.
func SeedEntries(today insights.Day, loc *time.Location) []store.NewEntry {
	var out []store.NewEntry
	for offset := 0; offset <= seedDays; offset++ {
		y, m, d := today.AddDays(-offset).Time(time.UTC).Date()
		count := 0
		switch {
		case offset%9 == 0:
			count = 2
		case offset%5 == 0, offset%2 == 0:
			count = 1
		}
		for i := 0; i < count; i++ {
			k := offset + i
			out = append(out, store.NewEntry{
				Mood:      seedMoods[k%len(seedMoods)],
				WordCount: 140 + (offset*17+i*31)%360,
				Tags:      []string{seedTopics[k%len(seedTopics)], seedTopics[(k+3)%len(seedTopics)]},
				CreatedAt: time.Date(y, m, d, seedHours[k%len(seedHours)], 10+k%49, 0, 0, loc),
			})
		}
	}
	return out
}

// Seed imports the demo entries for a user.
func (s *Store) Seed(ctx context.Context, userID int, today insights.Day, loc *time.Location) (int, error) {
	return s.ImportEntries(ctx, userID, SeedEntries(today, loc))
}
