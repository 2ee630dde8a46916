package scheduling

import "fmt"

// ValidationError reports a malformed time block or out-of-bounds field.
// It is always recoverable: callers skip the offending block or day.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// BlockConflict names two time blocks in the same day that overlap.
type BlockConflict struct {
	First  int // index of the earlier block after sorting
	Second int // index of the block it collides with
}

func (c BlockConflict) Error() string {
	return fmt.Sprintf("time block %d overlaps block %d", c.First, c.Second)
}
