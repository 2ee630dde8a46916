package scheduling

import (
	"fmt"
	"sort"

	"slotify/models"
)

const (
	minSlotDuration = 15
	maxSlotDuration = 480
	maxBuffer       = 120
)

// ValidateBlock checks a single daily time block: "HH:MM" format on both
// ends, start strictly before end, and slot duration / buffer within bounds.
// Lexicographic comparison of start and end is valid because the format is
// fixed-width.
func ValidateBlock(block models.TimeBlock) error {
	if _, err := MinutesOfDay(block.StartTime); err != nil {
		return ValidationError{Field: "startTime", Message: err.Error()}
	}
	if _, err := MinutesOfDay(block.EndTime); err != nil {
		return ValidationError{Field: "endTime", Message: err.Error()}
	}
	if block.StartTime >= block.EndTime {
		return ValidationError{
			Field:   "startTime",
			Message: fmt.Sprintf("start %s must precede end %s", block.StartTime, block.EndTime),
		}
	}
	if block.SlotDuration < minSlotDuration || block.SlotDuration > maxSlotDuration {
		return ValidationError{
			Field:   "slotDuration",
			Message: fmt.Sprintf("%d outside [%d,%d]", block.SlotDuration, minSlotDuration, maxSlotDuration),
		}
	}
	if block.BufferMinutes < 0 || block.BufferMinutes > maxBuffer {
		return ValidationError{
			Field:   "bufferMinutes",
			Message: fmt.Sprintf("%d outside [0,%d]", block.BufferMinutes, maxBuffer),
		}
	}
	return nil
}

// DetectOverlap sorts blocks by start time and reports every adjacent pair
// whose ranges intersect. An empty result means the day is consistent.
func DetectOverlap(blocks []models.TimeBlock) []BlockConflict {
	if len(blocks) < 2 {
		return nil
	}
	idx := make([]int, len(blocks))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return blocks[idx[a]].StartTime < blocks[idx[b]].StartTime
	})

	var conflicts []BlockConflict
	for i := 1; i < len(idx); i++ {
		prev, cur := blocks[idx[i-1]], blocks[idx[i]]
		if prev.EndTime > cur.StartTime {
			conflicts = append(conflicts, BlockConflict{First: idx[i-1], Second: idx[i]})
		}
	}
	return conflicts
}

// MinutesOfDay parses a fixed-width "HH:MM" string into minutes from
// midnight.
func MinutesOfDay(hhmm string) (int, error) {
	if len(hhmm) != 5 || hhmm[2] != ':' {
		return 0, fmt.Errorf("time %q is not in HH:MM format", hhmm)
	}
	for _, i := range []int{0, 1, 3, 4} {
		if hhmm[i] < '0' || hhmm[i] > '9' {
			return 0, fmt.Errorf("time %q is not in HH:MM format", hhmm)
		}
	}
	h := int(hhmm[0]-'0')*10 + int(hhmm[1]-'0')
	m := int(hhmm[3]-'0')*10 + int(hhmm[4]-'0')
	if h > 23 {
		return 0, fmt.Errorf("hour %d out of range", h)
	}
	if m > 59 {
		return 0, fmt.Errorf("minute %d out of range", m)
	}
	return h*60 + m, nil
}

func formatMinutes(mins int) string {
	return fmt.Sprintf("%02d:%02d", mins/60, mins%60)
}
