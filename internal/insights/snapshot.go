package insights

import "time"

// Record is the aggregator's view of a journal entry.
type Record struct {
	ID        string
	CreatedAt time.Time
	Mood      MoodLevel // zero when the entry has no mood
	WordCount int
	Tags      []string
}

type MoodPoint struct {
	Date  Day       `json:"date"`
	Value float64   `json:"value"`
	Mood  MoodLevel `json:"mood"`
}

type MoodShare struct {
	Mood       MoodLevel `json:"mood"`
	Count      int       `json:"count"`
	Percentage float64   `json:"percentage"`
}

type ActivityPoint struct {
	Date       Day `json:"date"`
	EntryCount int `json:"entry_count"`
	WordCount  int `json:"word_count"`
}

type Stats struct {
	TotalEntries         int `json:"total_entries"`
	TotalWords           int `json:"total_words"`
	AverageWordsPerEntry int `json:"average_words_per_entry"`
	EntriesThisPeriod    int `json:"entries_this_period"`
	WordsThisPeriod      int `json:"words_this_period"`
	LongestEntry         int `json:"longest_entry"`
	ShortestEntry        int `json:"shortest_entry"`
	EntriesWithMood      int `json:"entries_with_mood"`
}

type Streak struct {
	CurrentStreak      int `json:"current_streak"`
	LongestStreak      int `json:"longest_streak"`
	TotalDaysJournaled int `json:"total_days_journaled"`
	LastEntryDate      Day `json:"last_entry_date"`
}

type TagStat struct {
	Tag        string  `json:"tag"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// NoData is shown in place of a weekday or time band when nothing was recorded.
const NoData = "-"

type Patterns struct {
	MostProductiveDay     string  `json:"most_productive_day"`
	MostProductiveTime    string  `json:"most_productive_time"`
	AverageEntriesPerDay  float64 `json:"average_entries_per_day"`
	BestMoodDay           string  `json:"best_mood_day"`
	WorstMoodDay          string  `json:"worst_mood_day"`
	DayOfWeekDistribution [7]int  `json:"day_of_week_distribution"`
	TimeOfDayDistribution [4]int  `json:"time_of_day_distribution"`
}

// Snapshot is the derived view over a user's entries for one period.
type Snapshot struct {
	Period           Period          `json:"period"`
	Today            Day             `json:"today"`
	MoodSeries       []MoodPoint     `json:"mood_series"`
	MoodDistribution []MoodShare     `json:"mood_distribution"`
	Stats            Stats           `json:"stats"`
	Streak           Streak          `json:"streak"`
	TopTags          []TagStat       `json:"top_tags"`
	WritingActivity  []ActivityPoint `json:"writing_activity"`
	Patterns         Patterns        `json:"patterns"`
}
