package insights

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func series(values ...float64) Snapshot {
	start := NewDay(2026, time.February, 1)
	var s Snapshot
	for i, v := range values {
		s.MoodSeries = append(s.MoodSeries, MoodPoint{Date: start.AddDays(i), Value: v, Mood: MoodFromValue(v)})
	}
	return s
}

func TestSnapshot_TrendDirection(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   TrendDirection
	}{
		{"too few points", []float64{1, 5, 5}, TrendStable},
		{"improving", []float64{2, 2, 4, 4}, TrendImproving},
		{"declining", []float64{5, 5, 3, 3}, TrendDeclining},
		{"within threshold", []float64{3, 3, 3.2, 3.2}, TrendStable},
		{"odd length puts the middle in the later half", []float64{3, 3, 1, 1, 1}, TrendDeclining},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, series(tt.values...).TrendDirection())
		})
	}
}

func TestSnapshot_MoodTrendLabel(t *testing.T) {
	assert.Equal(t, "No Data", series().MoodTrendLabel())
	assert.Zero(t, series().AverageMood())
	assert.Equal(t, "Excellent", series(5, 4.5).MoodTrendLabel())
	assert.Equal(t, "Good", series(4, 3).MoodTrendLabel())
	assert.Equal(t, "Neutral", series(3).MoodTrendLabel())
	assert.Equal(t, "Low", series(2).MoodTrendLabel())
	assert.Equal(t, "Challenging", series(1).MoodTrendLabel())
}

func TestMoodFromValue(t *testing.T) {
	assert.Equal(t, MoodGreat, MoodFromValue(4.5))
	assert.Equal(t, MoodGood, MoodFromValue(3.67))
	assert.Equal(t, MoodOkay, MoodFromValue(2.5))
	assert.Equal(t, MoodLow, MoodFromValue(1.5))
	assert.Equal(t, MoodBad, MoodFromValue(1.49))
}

func TestMoodLevel_JSON(t *testing.T) {
	var m MoodLevel
	require.NoError(t, json.Unmarshal([]byte(`"great"`), &m))
	assert.Equal(t, MoodGreat, m)
	require.NoError(t, json.Unmarshal([]byte(`2`), &m))
	assert.Equal(t, MoodLow, m)
	require.NoError(t, json.Unmarshal([]byte(`null`), &m))
	assert.False(t, m.Valid())
	assert.Error(t, json.Unmarshal([]byte(`9`), &m))
	assert.Error(t, json.Unmarshal([]byte(`"ecstatic"`), &m))

	b, err := json.Marshal(MoodOkay)
	require.NoError(t, err)
	assert.JSONEq(t, `"OKAY"`, string(b))
}

func TestParsePeriod(t *testing.T) {
	for in, want := range map[string]Period{"7D": PeriodWeek, "month": PeriodMonth, "90d": PeriodThreeMonths, "1Y": PeriodYear} {
		got, err := ParsePeriod(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParsePeriod("fortnight")
	assert.Error(t, err)
}

func TestNarrate_EmptySnapshot(t *testing.T) {
	s := Aggregate(nil, PeriodMonth, NewDay(2026, time.February, 12))
	generated := time.Date(2026, 2, 12, 9, 0, 0, 0, time.UTC)

	a := Narrate(s, s.TrendDirection(), generated)

	assert.Equal(t, "You logged 0 entries in past 30 days. Your writing pace is strongest on - and your streak is 0 days.", a.Summary)
	assert.Equal(t, "Your dominant mood was untracked with a stable trend, often around themes like reflection.", a.MoodInsight)
	assert.Len(t, a.Patterns, 3)
	assert.Len(t, a.Suggestions, 3)
	assert.Equal(t, generated, a.GeneratedAt)
}

func TestNarrate_FillsComputedValues(t *testing.T) {
	today := NewDay(2026, time.February, 12) // Thursday
	records := []Record{
		rec(at(2026, 2, 12, 19), MoodGood, 120, "Gratitude"),
		rec(at(2026, 2, 11, 19), MoodGood, 80, "Gratitude", "Work"),
	}
	s := Aggregate(records, PeriodWeek, today)

	a := Narrate(s, TrendImproving, time.Time{})

	assert.Contains(t, a.Summary, "2 entries in past 7 days")
	assert.Contains(t, a.Summary, "streak is 2 days")
	assert.Equal(t, "Your dominant mood was Good with a improving trend, often around themes like Gratitude.", a.MoodInsight)
	assert.Equal(t, "Most writing happens in the evening.", a.Patterns[0])
	assert.True(t, strings.HasPrefix(a.Patterns[1], "You average 0.3 entries"))
	assert.Equal(t, "Mood tends to be highest on Wed.", a.Patterns[2])
}
