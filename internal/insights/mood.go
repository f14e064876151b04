package insights

import (
	"encoding/json"
	"fmt"
	"strings"
)

// MoodLevel is one of five ordered moods. The zero value means "no mood".
type MoodLevel int

const (
	MoodBad MoodLevel = iota + 1
	MoodLow
	MoodOkay
	MoodGood
	MoodGreat
)

// MoodLevels lists every level from best to worst, the order used for distributions.
var MoodLevels = []MoodLevel{MoodGreat, MoodGood, MoodOkay, MoodLow, MoodBad}

var moodLabels = map[MoodLevel]string{
	MoodGreat: "Great",
	MoodGood:  "Good",
	MoodOkay:  "Okay",
	MoodLow:   "Low",
	MoodBad:   "Bad",
}

func (m MoodLevel) Valid() bool { return m >= MoodBad && m <= MoodGreat }

// Value is the numeric weight of the level, 1 (Bad) to 5 (Great).
func (m MoodLevel) Value() float64 { return float64(m) }

func (m MoodLevel) String() string {
	if l, ok := moodLabels[m]; ok {
		return l
	}
	return "Unknown"
}

// MoodFromValue returns the level nearest to a mean mood weight.
func MoodFromValue(v float64) MoodLevel {
	switch {
	case v >= 4.5:
		return MoodGreat
	case v >= 3.5:
		return MoodGood
	case v >= 2.5:
		return MoodOkay
	case v >= 1.5:
		return MoodLow
	default:
		return MoodBad
	}
}

// ParseMood accepts a label ("great") or a weight ("5").
func ParseMood(s string) (MoodLevel, error) {
	s = strings.TrimSpace(s)
	for m, l := range moodLabels {
		if strings.EqualFold(l, s) || fmt.Sprint(int(m)) == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown mood %q", s)
}

func (m MoodLevel) MarshalJSON() ([]byte, error) {
	if !m.Valid() {
		return []byte("null"), nil
	}
	return json.Marshal(strings.ToUpper(m.String()))
}

func (m *MoodLevel) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*m = 0
		return nil
	}
	var n int
	if err := json.Unmarshal(b, &n); err == nil {
		if !MoodLevel(n).Valid() {
			return fmt.Errorf("mood %d out of range", n)
		}
		*m = MoodLevel(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseMood(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
