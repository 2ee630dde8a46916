package booking

import "fmt"

// Machine-readable codes carried by BusinessLogicError.
const (
	CodeInvalidTransition = "INVALID_STATUS_TRANSITION"
	CodeNoShowTooEarly    = "NO_SHOW_TOO_EARLY"
	CodeNoShowDuplicate   = "NO_SHOW_ALREADY_MARKED"
	CodeConfirmTooLate    = "CONFIRMATION_WINDOW_EXPIRED"
)

// ValidationError reports malformed caller input (e.g. a missing or
// oversized cancellation reason).
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// ConflictError signals a lost race: the slot or booking moved between read
// and write. Callers retry against a different resource.
type ConflictError struct {
	Resource string
	Message  string
}

func (e ConflictError) Error() string {
	return fmt.Sprintf("%s conflict: %s", e.Resource, e.Message)
}

// NotFoundError indicates the referenced record does not exist.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// BusinessLogicError carries a machine-readable code for client-side
// handling of rule violations.
type BusinessLogicError struct {
	Code    string
	Message string
}

func (e BusinessLogicError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}
