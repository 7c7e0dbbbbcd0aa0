package app

import (
	"fmt"

	"homework_status_bot/internal/domain/homework"
)

// TranslateStatus turns one work item into the message sent to the chat.
func TranslateStatus(item any) (string, error) {
	var w homework.WorkItem
	switch v := item.(type) {
	case homework.WorkItem:
		w = v
	case map[string]any:
		w = v
	default:
		return "", &homework.ShapeError{Reason: "work item not a mapping"}
	}

	name, ok := w.Name()
	if !ok {
		return "", &homework.MissingFieldError{Field: homework.FieldName}
	}

	status, present := w.Status()
	verdict, known := homework.Verdict(status)
	if !present || !known {
		return "", &homework.UnknownStatusError{Status: string(status), Present: present}
	}

	return fmt.Sprintf("Изменился статус проверки работы \"%s\". %s", name, verdict), nil
}
