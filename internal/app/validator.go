package app

import "homework_status_bot/internal/domain/homework"

const keyHomeworks = "homeworks"

// ValidateResponse checks the top-level shape of an API payload and returns the homework list.
// Items are returned untouched; their content is checked by TranslateStatus.
func ValidateResponse(payload any) ([]any, error) {
	root, ok := payload.(map[string]any)
	if !ok {
		return nil, &homework.ShapeError{Reason: "not a mapping"}
	}
	raw, ok := root[keyHomeworks]
	if !ok {
		return nil, &homework.ShapeError{Reason: "missing homeworks key"}
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, &homework.ShapeError{Reason: "homeworks not a list"}
	}
	return items, nil
}
