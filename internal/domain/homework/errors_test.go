package homework

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "nil", err: nil, want: ""},
		{name: "plain", err: errors.New("x"), want: KindUnknown},
		{name: "transport", err: &TransportError{Op: "request", Err: errors.New("refused")}, want: KindTransport},
		{name: "status", err: &UnexpectedStatusError{StatusCode: 500}, want: KindUnexpectedStatus},
		{name: "wrapped shape", err: fmt.Errorf("iteration: %w", &ShapeError{Reason: "not a mapping"}), want: KindShape},
		{name: "missing field", err: &MissingFieldError{Field: FieldName}, want: KindMissingField},
		{name: "unknown status", err: &UnknownStatusError{Status: "x", Present: true}, want: KindUnknownStatus},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Fatalf("KindOf() = %q, want %q", got, tt.want)
			}
			if KindOf(tt.err).Fatal() {
				t.Fatal("only configuration errors are fatal")
			}
		})
	}
}

func TestTransportErrorCarriesCauseAndParams(t *testing.T) {
	cause := errors.New("connection refused")
	err := &TransportError{Op: "request", Params: url.Values{"from_date": {"10"}}, Err: cause}

	if !errors.Is(err, cause) {
		t.Fatal("TransportError should unwrap to its cause")
	}
	if !strings.Contains(err.Error(), "from_date=10") || !strings.Contains(err.Error(), "connection refused") {
		t.Fatalf("Error() = %q", err.Error())
	}
}

func TestVerdictTable(t *testing.T) {
	for status, want := range map[Status]string{
		StatusApproved:  "Работа проверена: ревьюеру всё понравилось. Ура!",
		StatusReviewing: "Работа взята на проверку ревьюером.",
		StatusRejected:  "Работа проверена: у ревьюера есть замечания.",
	} {
		got, ok := Verdict(status)
		if !ok || got != want {
			t.Fatalf("Verdict(%q) = %q, %v", status, got, ok)
		}
	}
	if _, ok := Verdict("unknown_code"); ok {
		t.Fatal("unknown status must not have a verdict")
	}
}

func TestWorkItemFields(t *testing.T) {
	w := WorkItem{"homework_name": "", "status": nil, "id": 5}

	if name, ok := w.Name(); !ok || name != "" {
		t.Fatalf("Name() = %q, %v; empty name is present", name, ok)
	}
	if _, ok := w.Status(); ok {
		t.Fatal("null status should count as absent")
	}
	if name, ok := (WorkItem{"homework_name": 12}).Name(); !ok || name != "12" {
		t.Fatalf("Name() = %q, %v", name, ok)
	}
}
