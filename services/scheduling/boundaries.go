package scheduling

import (
	"sort"
	"time"

	"slotify/models"
)

// ValidateBoundaries partitions generated slots into valid and invalid by
// checking each slot's duration against expectedDuration and the spacing of
// consecutive same-day slots against expectedDuration+expectedBuffer. It is
// a post-generation consistency check, not an enforcement step.
func ValidateBoundaries(slots []models.TimeSlot, expectedDuration, expectedBuffer int) (valid, invalid []models.TimeSlot) {
	sorted := append([]models.TimeSlot(nil), slots...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Date != sorted[j].Date {
			return sorted[i].Date < sorted[j].Date
		}
		return sorted[i].StartTime.Before(sorted[j].StartTime)
	})

	spacing := time.Duration(expectedDuration+expectedBuffer) * time.Minute
	for i, slot := range sorted {
		if slot.DurationMinutes() != expectedDuration {
			invalid = append(invalid, slot)
			continue
		}
		if i > 0 && sorted[i-1].Date == slot.Date {
			if slot.StartTime.Sub(sorted[i-1].StartTime) != spacing {
				invalid = append(invalid, slot)
				continue
			}
		}
		valid = append(valid, slot)
	}
	return valid, invalid
}
