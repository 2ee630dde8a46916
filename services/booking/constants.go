package booking

import "time"

// No-show windows are business policy, kept as literal constants. The status
// names the absent party: a client marking a no-show produces
// no_show_provider, and vice versa.
const (
	// ClientNoShowWindow is how long after the scheduled start a client must
	// wait before marking the provider absent.
	ClientNoShowWindow = 5 * time.Minute

	// ProviderNoShowWindow is how long after the scheduled start a provider
	// must wait before marking the client absent.
	ProviderNoShowWindow = 10 * time.Minute

	// ConfirmationWindow is how long after creation a provider has to
	// confirm a pending booking. Enforced by the service wrapper, not the
	// state machine.
	ConfirmationWindow = 15 * time.Minute

	// MaxCancellationReasonLen caps the mandatory cancellation reason.
	MaxCancellationReasonLen = 500
)
