package model

import "fmt"

// Outcome describes which path a single submit took.
// Exactly one outcome is produced per submit invocation.
type Outcome int

const (
	// OutcomeSuccess means the endpoint returned a summary and the view
	// was updated with it.
	OutcomeSuccess Outcome = iota

	// OutcomeValidationError means the input was blank after trimming.
	// No network call was made.
	OutcomeValidationError

	// OutcomeApplicationError means the endpoint answered with a
	// non-success status and an error message.
	OutcomeApplicationError

	// OutcomeTransportError means the request failed on the network or the
	// response body could not be decoded.
	OutcomeTransportError
)

// String returns the snake_case name of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeValidationError:
		return "validation_error"
	case OutcomeApplicationError:
		return "application_error"
	case OutcomeTransportError:
		return "transport_error"
	default:
		return "unknown"
	}
}

// Succeeded reports whether the outcome is OutcomeSuccess.
func (o Outcome) Succeeded() bool {
	return o == OutcomeSuccess
}

// MarshalText implements encoding.TextMarshaler so outcomes serialize by name.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// NotificationKind classifies a blocking notification by the error kind
// that raised it.
type NotificationKind int

const (
	// NotificationValidation is raised for a blank URL input.
	NotificationValidation NotificationKind = iota

	// NotificationApplication carries the endpoint's error message.
	NotificationApplication

	// NotificationTransport is the generic notice shown for network and
	// decoding failures. Details go to the diagnostic log only.
	NotificationTransport
)

// String returns the short name of the notification kind.
func (k NotificationKind) String() string {
	switch k {
	case NotificationValidation:
		return "validation"
	case NotificationApplication:
		return "application"
	case NotificationTransport:
		return "transport"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k NotificationKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *NotificationKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "validation":
		*k = NotificationValidation
	case "application":
		*k = NotificationApplication
	case "transport":
		*k = NotificationTransport
	default:
		return fmt.Errorf("unknown notification kind %q", text)
	}
	return nil
}

// Notification is a blocking, user-facing notice.
type Notification struct {
	// Kind is the error kind that raised the notice.
	Kind NotificationKind `json:"kind"`

	// Message is the localized text shown to the user.
	Message string `json:"message"`
}

// String formats the notification as "[kind] message".
func (n Notification) String() string {
	return fmt.Sprintf("[%s] %s", n.Kind, n.Message)
}
