package insights

import "encoding/json"

type TrendDirection int

const (
	TrendStable TrendDirection = iota
	TrendImproving
	TrendDeclining
)

const trendThreshold = 0.25

func (t TrendDirection) String() string {
	switch t {
	case TrendImproving:
		return "improving"
	case TrendDeclining:
		return "declining"
	default:
		return "stable"
	}
}

func (t TrendDirection) MarshalJSON() ([]byte, error) { return json.Marshal(t.String()) }

// AverageMood is the mean of the daily mood series, 0 when it is empty.
func (s Snapshot) AverageMood() float64 {
	if len(s.MoodSeries) == 0 {
		return 0
	}
	return meanValue(s.MoodSeries)
}

// MoodTrendLabel names the band the average mood falls into.
func (s Snapshot) MoodTrendLabel() string {
	avg := s.AverageMood()
	switch {
	case avg >= 4.5:
		return "Excellent"
	case avg >= 3.5:
		return "Good"
	case avg >= 2.5:
		return "Neutral"
	case avg >= 1.5:
		return "Low"
	case avg > 0:
		return "Challenging"
	default:
		return "No Data"
	}
}

// TrendDirection compares the later half of the mood series with the earlier
// half. Fewer than four points is always stable.
func (s Snapshot) TrendDirection() TrendDirection {
	if len(s.MoodSeries) < 4 {
		return TrendStable
	}
	mid := len(s.MoodSeries) / 2
	delta := meanValue(s.MoodSeries[mid:]) - meanValue(s.MoodSeries[:mid])
	switch {
	case delta > trendThreshold:
		return TrendImproving
	case delta < -trendThreshold:
		return TrendDeclining
	default:
		return TrendStable
	}
}

func meanValue(points []MoodPoint) float64 {
	var sum float64
	for _, p := range points {
		sum += p.Value
	}
	return sum / float64(len(points))
}
