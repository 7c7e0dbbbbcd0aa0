package app

import (
	"errors"
	"reflect"
	"testing"

	"homework_status_bot/internal/domain/homework"
)

func TestValidateResponseShapeErrors(t *testing.T) {
	tests := []struct {
		name    string
		payload any
		reason  string
	}{
		{name: "list root", payload: []any{}, reason: "not a mapping"},
		{name: "nil root", payload: nil, reason: "not a mapping"},
		{name: "no homeworks", payload: map[string]any{"current_date": 1}, reason: "missing homeworks key"},
		{name: "homeworks object", payload: map[string]any{"homeworks": map[string]any{}}, reason: "homeworks not a list"},
		{name: "homeworks null", payload: map[string]any{"homeworks": nil}, reason: "homeworks not a list"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateResponse(tt.payload)
			var shapeErr *homework.ShapeError
			if !errors.As(err, &shapeErr) {
				t.Fatalf("error = %v, want *ShapeError", err)
			}
			if shapeErr.Reason != tt.reason {
				t.Fatalf("Reason = %q, want %q", shapeErr.Reason, tt.reason)
			}
		})
	}
}

func TestValidateResponseIsPure(t *testing.T) {
	payload := decoded(
		map[string]any{"homework_name": "HW1", "status": "approved"},
		map[string]any{"status": "weird"},
	)

	first, err := ValidateResponse(payload)
	if err != nil {
		t.Fatalf("ValidateResponse error: %v", err)
	}
	second, err := ValidateResponse(payload)
	if err != nil {
		t.Fatalf("second ValidateResponse error: %v", err)
	}
	if len(first) != 2 {
		t.Fatalf("len = %d, want 2", len(first))
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("re-validation changed the result: %v vs %v", first, second)
	}
	if !reflect.DeepEqual(payload["homeworks"], first) {
		t.Fatal("items should be returned unchanged")
	}
}

func TestValidateResponseEmptyList(t *testing.T) {
	items, err := ValidateResponse(map[string]any{"homeworks": []any{}})
	if err != nil {
		t.Fatalf("ValidateResponse error: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("len = %d, want 0", len(items))
	}
}
