package homework

import (
	"errors"
	"fmt"
	"net/url"
)

// Kind classifies a failure so the poll loop can decide between giving up and retrying.
type Kind string

const (
	KindUnknown          Kind = "UNKNOWN"
	KindConfiguration    Kind = "CONFIGURATION"
	KindTransport        Kind = "TRANSPORT"
	KindUnexpectedStatus Kind = "UNEXPECTED_STATUS"
	KindShape            Kind = "SHAPE"
	KindMissingField     Kind = "MISSING_FIELD"
	KindUnknownStatus    Kind = "UNKNOWN_STATUS"
)

// Fatal reports whether waiting for the next iteration cannot fix the failure.
func (k Kind) Fatal() bool {
	return k == KindConfiguration
}

type kinded interface {
	Kind() Kind
}

// KindOf returns the kind of the first classified error in err's chain.
// Unclassified errors are KindUnknown and are retried like any transient failure.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var k kinded
	if errors.As(err, &k) {
		return k.Kind()
	}
	return KindUnknown
}

// TransportError means the API could not be reached or its body could not be decoded.
type TransportError struct {
	Op     string // "request" or "decode"
	Params url.Values
	Err    error
}

func (e *TransportError) Error() string {
	if e.Op == "decode" {
		return fmt.Sprintf("не удалось разобрать ответ API: %v. Параметры: %s", e.Err, e.Params.Encode())
	}
	return fmt.Sprintf("ошибка запроса к API: %v. Параметры: %s", e.Err, e.Params.Encode())
}

func (e *TransportError) Unwrap() error { return e.Err }
func (e *TransportError) Kind() Kind    { return KindTransport }

// UnexpectedStatusError means the API answered with a status other than 200 OK.
type UnexpectedStatusError struct {
	StatusCode int
}

func (e *UnexpectedStatusError) Error() string {
	return fmt.Sprintf("API вернул неожиданный статус: %d", e.StatusCode)
}

func (e *UnexpectedStatusError) Kind() Kind { return KindUnexpectedStatus }

// ShapeError means the payload does not follow the expected structure.
type ShapeError struct {
	Reason string
}

func (e *ShapeError) Error() string {
	return "некорректный ответ API: " + e.Reason
}

func (e *ShapeError) Kind() Kind { return KindShape }

// MissingFieldError means a work item lacks a mandatory field.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("отсутствует ключ %q в домашней работе", e.Field)
}

func (e *MissingFieldError) Kind() Kind { return KindMissingField }

// UnknownStatusError means a work item carries a status missing from the verdict table.
// Present is false when the item had no status at all.
type UnknownStatusError struct {
	Status  string
	Present bool
}

func (e *UnknownStatusError) Error() string {
	if !e.Present {
		return "неожиданный статус: <отсутствует>"
	}
	return "неожиданный статус: " + e.Status
}

func (e *UnknownStatusError) Kind() Kind { return KindUnknownStatus }
