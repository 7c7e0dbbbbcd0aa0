package homework

import "fmt"

// Field names of a work item in the API payload.
const (
	FieldName   = "homework_name"
	FieldStatus = "status"
)

// WorkItem is one homework record as decoded from the API.
// Only the fields the bot reads are accessed; everything else is ignored.
type WorkItem map[string]any

// Name returns the homework name. A JSON null counts as absent.
func (w WorkItem) Name() (string, bool) {
	return w.text(FieldName)
}

// Status returns the raw status code.
func (w WorkItem) Status() (Status, bool) {
	s, ok := w.text(FieldStatus)
	return Status(s), ok
}

func (w WorkItem) text(key string) (string, bool) {
	v, ok := w[key]
	if !ok || v == nil {
		return "", false
	}
	if s, isString := v.(string); isString {
		return s, true
	}
	return fmt.Sprint(v), true
}
