package scheduling

import (
	"time"

	"slotify/models"
)

// ApplyExceptions filters candidate slots through an owner's schedule
// exceptions. A candidate is suppressed when its [start, end) window
// intersects any occurrence of any exception up to the horizon. Suppressed
// candidates are dropped, or kept with status blocked when materializeBlocked
// is set (for calendars that show blackout windows).
func ApplyExceptions(
	candidates []models.TimeSlot,
	exceptions []models.ScheduleException,
	horizon time.Time,
	materializeBlocked bool,
) []models.TimeSlot {
	if len(candidates) == 0 || len(exceptions) == 0 {
		return candidates
	}

	type expanded struct {
		reason    string
		intervals []Interval
	}
	occ := make([]expanded, 0, len(exceptions))
	for _, exc := range exceptions {
		if !exc.EndDatetime.After(exc.StartDatetime) {
			continue
		}
		ivs := ExpandException(exc, horizon)
		if len(ivs) > 0 {
			occ = append(occ, expanded{reason: exc.Reason, intervals: ivs})
		}
	}

	out := make([]models.TimeSlot, 0, len(candidates))
	for _, slot := range candidates {
		window := Interval{Start: slot.StartTime, End: slot.EndTime}
		reason, hit := "", false
		for _, e := range occ {
			for _, iv := range e.intervals {
				if window.Intersects(iv) {
					reason, hit = e.reason, true
					break
				}
			}
			if hit {
				break
			}
		}
		if !hit {
			out = append(out, slot)
			continue
		}
		if materializeBlocked {
			slot.Status = models.SlotBlocked
			slot.BlockReason = reason
			out = append(out, slot)
		}
	}
	return out
}
