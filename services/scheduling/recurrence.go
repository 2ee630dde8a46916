package scheduling

import (
	"sort"
	"time"

	"slotify/models"
)

// DefaultMaxOccurrences caps recurrence expansion when the pattern does not
// set its own limit.
const DefaultMaxOccurrences = 100

// Interval is a half-open [Start, End) occurrence window in UTC.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Intersects applies the half-open overlap test against another interval.
func (iv Interval) Intersects(other Interval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}

// ExpandException materializes an exception's occurrence intervals up to the
// horizon. Non-recurring exceptions yield exactly their own window. The
// result is a pure function of the inputs; callers may re-expand at will.
//
// Recurring expansion is anchored to the exception's timezone: the seed is
// rebased into that zone before stepping, so a weekly 14:00 blackout stays at
// 14:00 local wall time across DST transitions.
func ExpandException(exc models.ScheduleException, horizon time.Time) []Interval {
	seed := Interval{Start: exc.StartDatetime, End: exc.EndDatetime}
	if !exc.Recurring || exc.Pattern == nil {
		if seed.Start.Before(horizon) {
			return []Interval{seed}
		}
		return nil
	}
	if exc.Timezone != "" {
		if loc, err := time.LoadLocation(exc.Timezone); err == nil {
			seed.Start = seed.Start.In(loc)
			seed.End = seed.End.In(loc)
		}
	}
	return Expand(*exc.Pattern, seed, horizon)
}

// Expand produces the occurrence intervals of a recurrence pattern seeded at
// seed, bounded by the pattern's end date or the horizon (whichever is
// earlier) and capped at MaxOccurrences (default 100). Each occurrence keeps
// the seed's duration verbatim.
func Expand(pattern models.RecurrencePattern, seed Interval, horizon time.Time) []Interval {
	interval := pattern.Interval
	if interval <= 0 {
		interval = 1
	}
	limit := pattern.MaxOccurrences
	if limit <= 0 {
		limit = DefaultMaxOccurrences
	}
	duration := seed.End.Sub(seed.Start)

	var starts []time.Time
	switch pattern.Type {
	case models.RecurrenceWeekly:
		if len(pattern.DaysOfWeek) > 0 {
			starts = weeklyByDayStarts(pattern, seed.Start, horizon, interval, limit)
			break
		}
		starts = steppedStarts(seed.Start, horizon, pattern.EndDate, limit, func(t time.Time, n int) time.Time {
			return t.AddDate(0, 0, 7*interval*n)
		})
	case models.RecurrenceMonthly:
		starts = monthlyStarts(pattern, seed.Start, horizon, interval, limit)
	case models.RecurrenceYearly:
		starts = steppedStarts(seed.Start, horizon, pattern.EndDate, limit, func(t time.Time, n int) time.Time {
			return t.AddDate(interval*n, 0, 0)
		})
	default: // daily
		starts = steppedStarts(seed.Start, horizon, pattern.EndDate, limit, func(t time.Time, n int) time.Time {
			return t.AddDate(0, 0, interval*n)
		})
	}

	occurrences := make([]Interval, 0, len(starts))
	for _, s := range starts {
		occurrences = append(occurrences, Interval{Start: s, End: s.Add(duration)})
	}
	return occurrences
}

// steppedStarts walks occurrence n -> n+1 by applying step to the seed so
// that month/year arithmetic never compounds drift across occurrences.
func steppedStarts(seed, horizon time.Time, endDate *time.Time, limit int, step func(time.Time, int) time.Time) []time.Time {
	var starts []time.Time
	for n := 0; len(starts) < limit; n++ {
		s := step(seed, n)
		if !s.Before(horizon) {
			break
		}
		if endDate != nil && s.After(*endDate) {
			break
		}
		starts = append(starts, s)
	}
	return starts
}

// weeklyByDayStarts emits one occurrence per listed weekday in each stepped
// week, anchored to the seed's week and time of day.
func weeklyByDayStarts(pattern models.RecurrencePattern, seed, horizon time.Time, interval, limit int) []time.Time {
	days := append([]time.Weekday(nil), pattern.DaysOfWeek...)
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })

	// Rewind to the Sunday of the seed's week; offsets stay positive.
	weekAnchor := seed.AddDate(0, 0, -int(seed.Weekday()))

	var starts []time.Time
	for week := 0; ; week++ {
		anchor := weekAnchor.AddDate(0, 0, 7*interval*week)
		if !anchor.Before(horizon) {
			break
		}
		progressed := false
		for _, wd := range days {
			s := anchor.AddDate(0, 0, int(wd))
			if s.Before(seed) {
				continue
			}
			if !s.Before(horizon) {
				continue
			}
			if pattern.EndDate != nil && s.After(*pattern.EndDate) {
				return starts
			}
			starts = append(starts, s)
			progressed = true
			if len(starts) >= limit {
				return starts
			}
		}
		// A week entirely past the horizon for all listed days ends the walk.
		if !progressed && anchor.After(seed) {
			break
		}
	}
	return starts
}

// monthlyStarts steps month by month, snapping to DayOfMonth when set and
// skipping months that do not contain that day.
func monthlyStarts(pattern models.RecurrencePattern, seed, horizon time.Time, interval, limit int) []time.Time {
	if pattern.DayOfMonth <= 0 {
		return steppedStarts(seed, horizon, pattern.EndDate, limit, func(t time.Time, n int) time.Time {
			return t.AddDate(0, interval*n, 0)
		})
	}

	var starts []time.Time
	year, month := seed.Year(), seed.Month()
	for n := 0; len(starts) < limit; n++ {
		y, m := addMonths(year, month, n*interval)
		s := time.Date(y, m, pattern.DayOfMonth, seed.Hour(), seed.Minute(), seed.Second(), 0, seed.Location())
		if s.Day() != pattern.DayOfMonth {
			continue // month too short, e.g. Feb 30
		}
		if s.Before(seed) {
			continue
		}
		if !s.Before(horizon) {
			break
		}
		if pattern.EndDate != nil && s.After(*pattern.EndDate) {
			break
		}
		starts = append(starts, s)
	}
	return starts
}

func addMonths(year int, month time.Month, n int) (int, time.Month) {
	total := year*12 + int(month) - 1 + n
	return total / 12, time.Month(total%12 + 1)
}
