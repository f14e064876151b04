package insights

import (
	"sort"
	"time"
)

const topTagLimit = 6

var (
	weekdayNames = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	timeBands    = [4]string{"Morning", "Afternoon", "Evening", "Night"}
)

// Aggregator computes snapshots. Calendar days and hours are read in its
// location, so the same entries can land on different days for different users.
type Aggregator struct {
	loc *time.Location
}

func NewAggregator(loc *time.Location) *Aggregator {
	if loc == nil {
		loc = time.UTC
	}
	return &Aggregator{loc: loc}
}

func (a *Aggregator) Location() *time.Location { return a.loc }

// Today returns the calendar day of now in the aggregator's location.
func (a *Aggregator) Today(now time.Time) Day { return DayOf(now, a.loc) }

// Aggregate builds a snapshot of records for the period ending at today.
// It never fails; an empty input yields a zeroed snapshot.
func (a *Aggregator) Aggregate(records []Record, period Period, today Day) Snapshot {
	if period.Days() == 0 {
		period = DefaultPeriod
	}
	start := today.AddDays(-(period.Days() - 1))
	inPeriod := make([]Record, 0, len(records))
	for _, r := range records {
		d := a.day(r)
		if !d.Before(start) && !d.After(today) {
			inPeriod = append(inPeriod, r)
		}
	}

	return Snapshot{
		Period:           period,
		Today:            today,
		MoodSeries:       a.moodSeries(inPeriod, start, today),
		MoodDistribution: moodDistribution(inPeriod),
		Stats:            stats(records, inPeriod),
		Streak:           a.streak(records, today),
		TopTags:          topTags(inPeriod),
		WritingActivity:  a.writingActivity(inPeriod, start, today),
		Patterns:         a.patterns(inPeriod, period),
	}
}

// Aggregate is a convenience wrapper using UTC calendar days.
func Aggregate(records []Record, period Period, today Day) Snapshot {
	return NewAggregator(time.UTC).Aggregate(records, period, today)
}

func (a *Aggregator) day(r Record) Day { return DayOf(r.CreatedAt, a.loc) }

func (a *Aggregator) moodSeries(records []Record, start, today Day) []MoodPoint {
	type acc struct {
		sum   float64
		count int
	}
	byDay := make(map[Day]*acc)
	for _, r := range records {
		if !r.Mood.Valid() {
			continue
		}
		d := a.day(r)
		if byDay[d] == nil {
			byDay[d] = &acc{}
		}
		byDay[d].sum += r.Mood.Value()
		byDay[d].count++
	}

	out := []MoodPoint{}
	for d := start; !d.After(today); d = d.AddDays(1) {
		v, ok := byDay[d]
		if !ok {
			continue
		}
		avg := v.sum / float64(v.count)
		out = append(out, MoodPoint{Date: d, Value: avg, Mood: MoodFromValue(avg)})
	}
	return out
}

func moodDistribution(records []Record) []MoodShare {
	counts := make(map[MoodLevel]int)
	total := 0
	for _, r := range records {
		if r.Mood.Valid() {
			counts[r.Mood]++
			total++
		}
	}
	denom := float64(max(total, 1))

	out := make([]MoodShare, 0, len(MoodLevels))
	for _, m := range MoodLevels {
		out = append(out, MoodShare{Mood: m, Count: counts[m], Percentage: float64(counts[m]) / denom})
	}
	return out
}

func stats(all, inPeriod []Record) Stats {
	var s Stats
	s.TotalEntries = len(all)
	for _, r := range all {
		s.TotalWords += r.WordCount
	}

	s.EntriesThisPeriod = len(inPeriod)
	for i, r := range inPeriod {
		s.WordsThisPeriod += r.WordCount
		if i == 0 || r.WordCount > s.LongestEntry {
			s.LongestEntry = r.WordCount
		}
		if i == 0 || r.WordCount < s.ShortestEntry {
			s.ShortestEntry = r.WordCount
		}
		if r.Mood.Valid() {
			s.EntriesWithMood++
		}
	}
	if len(inPeriod) > 0 {
		s.AverageWordsPerEntry = s.WordsThisPeriod / len(inPeriod)
	}
	return s
}

// streak works over every record, not just the period: a streak that began
// before the window still counts.
func (a *Aggregator) streak(records []Record, today Day) Streak {
	set := make(map[Day]struct{}, len(records))
	for _, r := range records {
		set[a.day(r)] = struct{}{}
	}
	days := make([]Day, 0, len(set))
	for d := range set {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	var s Streak
	s.TotalDaysJournaled = len(days)
	run := 0
	for i, d := range days {
		if i > 0 && days[i-1].AddDays(1) == d {
			run++
		} else {
			run = 1
		}
		s.LongestStreak = max(s.LongestStreak, run)
	}
	if len(days) > 0 {
		s.LastEntryDate = days[len(days)-1]
	}

	for d := today; ; d = d.AddDays(-1) {
		if _, ok := set[d]; !ok {
			break
		}
		s.CurrentStreak++
	}
	return s
}

// topTags keeps tags with equal counts in the order they were first seen.
func topTags(records []Record) []TagStat {
	counts := make(map[string]int)
	var order []string
	for _, r := range records {
		for _, t := range r.Tags {
			if _, seen := counts[t]; !seen {
				order = append(order, t)
			}
			counts[t]++
		}
	}
	sort.SliceStable(order, func(i, j int) bool { return counts[order[i]] > counts[order[j]] })
	if len(order) > topTagLimit {
		order = order[:topTagLimit]
	}

	// shares are of the tags shown, so they sum to 1
	total := 0
	for _, t := range order {
		total += counts[t]
	}
	denom := float64(max(total, 1))
	out := make([]TagStat, 0, len(order))
	for _, t := range order {
		out = append(out, TagStat{Tag: t, Count: counts[t], Percentage: float64(counts[t]) / denom})
	}
	return out
}

func (a *Aggregator) writingActivity(records []Record, start, today Day) []ActivityPoint {
	byDay := make(map[Day]*ActivityPoint)
	for _, r := range records {
		d := a.day(r)
		p := byDay[d]
		if p == nil {
			p = &ActivityPoint{Date: d}
			byDay[d] = p
		}
		p.EntryCount++
		p.WordCount += r.WordCount
	}

	var out []ActivityPoint
	for d := start; !d.After(today); d = d.AddDays(1) {
		if p, ok := byDay[d]; ok {
			out = append(out, *p)
			continue
		}
		out = append(out, ActivityPoint{Date: d})
	}
	return out
}

func (a *Aggregator) patterns(records []Record, period Period) Patterns {
	p := Patterns{
		MostProductiveDay:  NoData,
		MostProductiveTime: NoData,
		BestMoodDay:        NoData,
		WorstMoodDay:       NoData,
	}
	var moodSum [7]float64
	var moodCount [7]int
	for _, r := range records {
		local := r.CreatedAt.In(a.loc)
		wd := mondayIndex(local.Weekday())
		p.DayOfWeekDistribution[wd]++
		if r.Mood.Valid() {
			moodSum[wd] += r.Mood.Value()
			moodCount[wd]++
		}
		p.TimeOfDayDistribution[timeBand(local.Hour())]++
	}
	p.AverageEntriesPerDay = float64(len(records)) / float64(period.Days())
	if len(records) == 0 {
		return p
	}

	p.MostProductiveDay = weekdayNames[argmax(p.DayOfWeekDistribution[:])]
	p.MostProductiveTime = timeBands[argmax(p.TimeOfDayDistribution[:])]

	// Ties on average mood resolve to the earliest weekday, Monday first.
	best, worst := -1, -1
	var bestAvg, worstAvg float64
	for i := range moodSum {
		if moodCount[i] == 0 {
			continue
		}
		avg := moodSum[i] / float64(moodCount[i])
		if best < 0 || avg > bestAvg {
			best, bestAvg = i, avg
		}
		if worst < 0 || avg < worstAvg {
			worst, worstAvg = i, avg
		}
	}
	if best >= 0 {
		p.BestMoodDay = weekdayNames[best]
		p.WorstMoodDay = weekdayNames[worst]
	}
	return p
}

func mondayIndex(wd time.Weekday) int { return (int(wd) + 6) % 7 }

func timeBand(hour int) int {
	switch {
	case hour >= 5 && hour <= 11:
		return 0
	case hour >= 12 && hour <= 16:
		return 1
	case hour >= 17 && hour <= 20:
		return 2
	default:
		return 3
	}
}

// argmax returns the first index holding the largest value.
func argmax(xs []int) int {
	best := 0
	for i, x := range xs {
		if x > xs[best] {
			best = i
		}
	}
	return best
}
