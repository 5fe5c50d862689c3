package model

import (
	"encoding/json"
	"testing"
)

// TestOutcomeString tests the String method of Outcome.
func TestOutcomeString(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		outcome  Outcome
		expected string
	}{
		{OutcomeSuccess, "success"},
		{OutcomeValidationError, "validation_error"},
		{OutcomeApplicationError, "application_error"},
		{OutcomeTransportError, "transport_error"},
		{Outcome(999), "unknown"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			t.Parallel()
			if tc.outcome.String() != tc.expected {
				t.Errorf("got %q, expected %q", tc.outcome.String(), tc.expected)
			}
		})
	}
}

// TestOutcomeSucceeded tests that only OutcomeSuccess reports success.
func TestOutcomeSucceeded(t *testing.T) {
	t.Parallel()

	if !OutcomeSuccess.Succeeded() {
		t.Error("expected OutcomeSuccess to succeed")
	}
	for _, o := range []Outcome{OutcomeValidationError, OutcomeApplicationError, OutcomeTransportError} {
		if o.Succeeded() {
			t.Errorf("expected %s not to succeed", o)
		}
	}
}

// TestNotificationKindString tests the String method of NotificationKind.
func TestNotificationKindString(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		kind     NotificationKind
		expected string
	}{
		{NotificationValidation, "validation"},
		{NotificationApplication, "application"},
		{NotificationTransport, "transport"},
		{NotificationKind(42), "unknown"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			t.Parallel()
			if tc.kind.String() != tc.expected {
				t.Errorf("got %q, expected %q", tc.kind.String(), tc.expected)
			}
		})
	}
}

// TestNotificationJSON verifies that notifications serialize kinds by name.
func TestNotificationJSON(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(Notification{Kind: NotificationApplication, Message: "Error: boom"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `{"kind":"application","message":"Error: boom"}`
	if string(data) != want {
		t.Errorf("got %s, expected %s", data, want)
	}
}

// TestNotificationString tests the terminal form of a notification.
func TestNotificationString(t *testing.T) {
	t.Parallel()

	n := Notification{Kind: NotificationTransport, Message: "something went wrong"}
	if got := n.String(); got != "[transport] something went wrong" {
		t.Errorf("got %q", got)
	}
}

// TestViewStateLatestURL tests LatestURL on empty and populated histories.
func TestViewStateLatestURL(t *testing.T) {
	t.Parallel()

	t.Run("empty history", func(t *testing.T) {
		t.Parallel()
		if got := (ViewState{}).LatestURL(); got != "" {
			t.Errorf("expected empty string, got %q", got)
		}
	})

	t.Run("most recent first", func(t *testing.T) {
		t.Parallel()
		v := ViewState{History: []string{"https://b.example", "https://a.example"}}
		if got := v.LatestURL(); got != "https://b.example" {
			t.Errorf("expected https://b.example, got %q", got)
		}
	})
}

// TestViewStateAtRest tests that AtRest mirrors loader visibility.
func TestViewStateAtRest(t *testing.T) {
	t.Parallel()

	if !(ViewState{}).AtRest() {
		t.Error("expected zero view to be at rest")
	}
	if (ViewState{LoaderVisible: true}).AtRest() {
		t.Error("expected view with visible loader not to be at rest")
	}
}

// TestNotificationKindUnmarshalText tests decoding kinds by name.
func TestNotificationKindUnmarshalText(t *testing.T) {
	t.Parallel()

	for _, want := range []NotificationKind{NotificationValidation, NotificationApplication, NotificationTransport} {
		var got NotificationKind
		if err := got.UnmarshalText([]byte(want.String())); err != nil {
			t.Fatalf("unexpected error for %s: %v", want, err)
		}
		if got != want {
			t.Errorf("expected %s, got %s", want, got)
		}
	}

	var k NotificationKind
	if err := k.UnmarshalText([]byte("fatal")); err == nil {
		t.Error("expected error for unknown kind")
	}
}
