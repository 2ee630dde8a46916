package scheduling

import (
	"testing"
	"time"

	"slotify/models"
)

func seedInterval() Interval {
	return Interval{
		Start: time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 1, 1, 11, 0, 0, 0, time.UTC),
	}
}

func TestExpandDaily(t *testing.T) {
	horizon := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	got := Expand(models.RecurrencePattern{Type: models.RecurrenceDaily}, seedInterval(), horizon)

	if len(got) != 4 {
		t.Fatalf("got %d occurrences, want 4", len(got))
	}
	for i, occ := range got {
		wantStart := seedInterval().Start.AddDate(0, 0, i)
		if !occ.Start.Equal(wantStart) {
			t.Errorf("occurrence %d start = %v, want %v", i, occ.Start, wantStart)
		}
		if occ.End.Sub(occ.Start) != time.Hour {
			t.Errorf("occurrence %d duration = %v, want 1h", i, occ.End.Sub(occ.Start))
		}
	}
}

func TestExpandRespectsMaxOccurrences(t *testing.T) {
	horizon := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)
	pattern := models.RecurrencePattern{Type: models.RecurrenceDaily, MaxOccurrences: 3}
	if got := Expand(pattern, seedInterval(), horizon); len(got) != 3 {
		t.Errorf("got %d occurrences, want 3", len(got))
	}
}

func TestExpandDefaultCap(t *testing.T) {
	horizon := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	pattern := models.RecurrencePattern{Type: models.RecurrenceDaily}
	if got := Expand(pattern, seedInterval(), horizon); len(got) != DefaultMaxOccurrences {
		t.Errorf("got %d occurrences, want default cap %d", len(got), DefaultMaxOccurrences)
	}
}

func TestExpandStopsAtEndDate(t *testing.T) {
	horizon := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	endDate := time.Date(2026, 1, 2, 23, 0, 0, 0, time.UTC)
	pattern := models.RecurrencePattern{Type: models.RecurrenceDaily, EndDate: &endDate}
	if got := Expand(pattern, seedInterval(), horizon); len(got) != 2 {
		t.Errorf("got %d occurrences, want 2 (bounded by endDate)", len(got))
	}
}

func TestExpandWeeklyInterval(t *testing.T) {
	horizon := time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)
	pattern := models.RecurrencePattern{Type: models.RecurrenceWeekly, Interval: 2}
	got := Expand(pattern, seedInterval(), horizon)

	// Jan 1, Jan 15, Jan 29, Feb 12.
	if len(got) != 4 {
		t.Fatalf("got %d occurrences, want 4", len(got))
	}
	for i := 1; i < len(got); i++ {
		if gap := got[i].Start.Sub(got[i-1].Start); gap != 14*24*time.Hour {
			t.Errorf("gap %d = %v, want 336h", i, gap)
		}
	}
}

func TestExpandWeeklyByDaysOfWeek(t *testing.T) {
	// Seed on Monday 2026-01-05; Mondays and Wednesdays for two weeks.
	seed := Interval{
		Start: time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 1, 5, 9, 30, 0, 0, time.UTC),
	}
	horizon := time.Date(2026, 1, 19, 0, 0, 0, 0, time.UTC)
	pattern := models.RecurrencePattern{
		Type:       models.RecurrenceWeekly,
		DaysOfWeek: []time.Weekday{time.Wednesday, time.Monday},
	}

	got := Expand(pattern, seed, horizon)
	want := []time.Time{
		time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 7, 9, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 12, 9, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 14, 9, 0, 0, 0, time.UTC),
	}
	if len(got) != len(want) {
		t.Fatalf("got %d occurrences, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if !got[i].Start.Equal(want[i]) {
			t.Errorf("occurrence %d = %v, want %v", i, got[i].Start, want[i])
		}
		if got[i].End.Sub(got[i].Start) != 30*time.Minute {
			t.Errorf("occurrence %d duration = %v, want 30m", i, got[i].End.Sub(got[i].Start))
		}
	}
}

func TestExpandMonthlyDayOfMonthSkipsShortMonths(t *testing.T) {
	seed := Interval{
		Start: time.Date(2026, 1, 31, 8, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 1, 31, 9, 0, 0, 0, time.UTC),
	}
	horizon := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	pattern := models.RecurrencePattern{Type: models.RecurrenceMonthly, DayOfMonth: 31}

	got := Expand(pattern, seed, horizon)
	want := []int{31, 31, 31} // Jan, Mar, May; Feb and Apr skipped
	if len(got) != len(want) {
		t.Fatalf("got %d occurrences, want %d: %v", len(got), len(want), got)
	}
	wantMonths := []time.Month{time.January, time.March, time.May}
	for i, occ := range got {
		if occ.Start.Day() != 31 || occ.Start.Month() != wantMonths[i] {
			t.Errorf("occurrence %d = %v, want day 31 of %v", i, occ.Start, wantMonths[i])
		}
	}
}

func TestExpandYearly(t *testing.T) {
	seed := Interval{
		Start: time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 2, 14, 13, 0, 0, 0, time.UTC),
	}
	horizon := time.Date(2029, 1, 1, 0, 0, 0, 0, time.UTC)
	pattern := models.RecurrencePattern{Type: models.RecurrenceYearly}
	if got := Expand(pattern, seed, horizon); len(got) != 3 {
		t.Errorf("got %d occurrences, want 3", len(got))
	}
}

func TestExpandExceptionNonRecurring(t *testing.T) {
	exc := models.ScheduleException{
		StartDatetime: time.Date(2026, 3, 1, 14, 0, 0, 0, time.UTC),
		EndDatetime:   time.Date(2026, 3, 1, 16, 0, 0, 0, time.UTC),
		Recurring:     false,
	}
	horizon := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	got := ExpandException(exc, horizon)
	if len(got) != 1 {
		t.Fatalf("got %d occurrences, want exactly the seed", len(got))
	}
	if !got[0].Start.Equal(exc.StartDatetime) || !got[0].End.Equal(exc.EndDatetime) {
		t.Errorf("occurrence = %+v, want seed window", got[0])
	}
}

func TestExpandExceptionKeepsLocalWallTime(t *testing.T) {
	// Daily 14:00 Toronto blackout seeded before the 2025-03-09 spring
	// forward: 14:00 local is 19:00Z under EST and 18:00Z under EDT.
	exc := models.ScheduleException{
		Timezone:      "America/Toronto",
		StartDatetime: time.Date(2025, 3, 7, 19, 0, 0, 0, time.UTC),
		EndDatetime:   time.Date(2025, 3, 7, 20, 0, 0, 0, time.UTC),
		Recurring:     true,
		Pattern:       &models.RecurrencePattern{Type: models.RecurrenceDaily},
	}
	horizon := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)

	got := ExpandException(exc, horizon)
	wantUTC := []time.Time{
		time.Date(2025, 3, 7, 19, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 8, 19, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 9, 18, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 11, 18, 0, 0, 0, time.UTC),
	}
	if len(got) != len(wantUTC) {
		t.Fatalf("got %d occurrences, want %d: %v", len(got), len(wantUTC), got)
	}
	for i, occ := range got {
		if !occ.Start.Equal(wantUTC[i]) {
			t.Errorf("occurrence %d start = %v, want %v", i, occ.Start.UTC(), wantUTC[i])
		}
		if occ.End.Sub(occ.Start) != time.Hour {
			t.Errorf("occurrence %d duration = %v, want 1h", i, occ.End.Sub(occ.Start))
		}
	}
}

func TestExpandExceptionBeyondHorizon(t *testing.T) {
	exc := models.ScheduleException{
		StartDatetime: time.Date(2026, 5, 1, 14, 0, 0, 0, time.UTC),
		EndDatetime:   time.Date(2026, 5, 1, 16, 0, 0, 0, time.UTC),
	}
	horizon := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	if got := ExpandException(exc, horizon); len(got) != 0 {
		t.Errorf("got %d occurrences, want 0 past horizon", len(got))
	}
}

func TestExpandIsRestartable(t *testing.T) {
	horizon := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	pattern := models.RecurrencePattern{Type: models.RecurrenceDaily, Interval: 2}

	first := Expand(pattern, seedInterval(), horizon)
	second := Expand(pattern, seedInterval(), horizon)
	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if !first[i].Start.Equal(second[i].Start) || !first[i].End.Equal(second[i].End) {
			t.Errorf("occurrence %d differs between runs", i)
		}
	}
}

func TestIntervalIntersects(t *testing.T) {
	base := Interval{
		Start: time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 1, 1, 11, 0, 0, 0, time.UTC),
	}
	tests := []struct {
		name  string
		other Interval
		want  bool
	}{
		{"inside", Interval{base.Start.Add(10 * time.Minute), base.End.Add(-10 * time.Minute)}, true},
		{"overlaps start", Interval{base.Start.Add(-30 * time.Minute), base.Start.Add(30 * time.Minute)}, true},
		{"touches end (half-open)", Interval{base.End, base.End.Add(time.Hour)}, false},
		{"touches start (half-open)", Interval{base.Start.Add(-time.Hour), base.Start}, false},
		{"disjoint", Interval{base.End.Add(time.Hour), base.End.Add(2 * time.Hour)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Intersects(tt.other); got != tt.want {
				t.Errorf("Intersects = %v, want %v", got, tt.want)
			}
		})
	}
}
