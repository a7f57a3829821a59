package apperror

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorsIs(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		target    error
		wantMatch bool
	}{
		{name: "NotFound wraps ErrNotFound", err: NotFound("game", 7), target: ErrNotFound, wantMatch: true},
		{name: "ValidationFailed wraps ErrValidation", err: ValidationFailed("title", "title is required"), target: ErrValidation, wantMatch: true},
		{name: "Conflict wraps ErrConflict", err: Conflict("already favorited"), target: ErrConflict, wantMatch: true},
		{name: "Unauthorized wraps ErrUnauthorized", err: Unauthorized("sign in"), target: ErrUnauthorized, wantMatch: true},
		{name: "NotFound does not match ErrValidation", err: NotFound("game", 7), target: ErrValidation, wantMatch: false},
		{name: "wrapped twice still matches", err: fmt.Errorf("load: %w", NotFound("tag", "x")), target: ErrNotFound, wantMatch: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.Is(tt.err, tt.target); got != tt.wantMatch {
				t.Errorf("errors.Is(%v, %v) = %v, want %v", tt.err, tt.target, got, tt.wantMatch)
			}
		})
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name        string
		err         *AppError
		wantMessage string
	}{
		{name: "NotFound message includes resource and id", err: NotFound("game", uint(42)), wantMessage: "game not found with id 42"},
		{name: "ValidationFailed uses custom message", err: ValidationFailed("content", "comment content is required"), wantMessage: "comment content is required"},
		{name: "Conflict uses custom message", err: Conflict("game is already in favorites"), wantMessage: "game is already in favorites"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMessage {
				t.Errorf("Error() = %q, want %q", got, tt.wantMessage)
			}
		})
	}
}

func TestValidationFailedField(t *testing.T) {
	err := ValidationFailed("email", "invalid email format")
	if err.Field != "email" {
		t.Errorf("Field = %q, want %q", err.Field, "email")
	}
}
