package core

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"nil error returns empty", nil, ""},
		{"wrapped not found", fmt.Errorf("user 9: %w", ErrNotFound), "NF001"},
		{"field errors", FieldErrors{"email": "inválido"}, "VAL001"},
		{"unauthenticated", ErrUnauthenticated, "AUTH001"},
		{"forbidden", fmt.Errorf("role estudiante: %w", ErrForbidden), "AUTH002"},
		{"invalid date pattern", errors.New(`parse deadline: invalid date "x"`), "VAL002"},
		{"invalid number pattern", errors.New("invalid number: abc"), "VAL003"},
		{"rate limit pattern", errors.New("Rate limit exceeded"), "RATE001"},
		{"attempt closed", fmt.Errorf("evaluation 1: %w", ErrAttemptClosed), "EXAM001"},
		{"evaluation not open", fmt.Errorf("evaluation 3: %w", ErrEvaluationUnavailable), "EXAM002"},
		{"unknown error", errors.New("boom"), "SYS001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MapError(tt.err); got.Code != tt.wantCode {
				t.Errorf("MapError(%v).Code = %q, want %q", tt.err, got.Code, tt.wantCode)
			}
		})
	}
}

func TestFormatUserError(t *testing.T) {
	if got := FormatUserError(nil); got != "" {
		t.Errorf("FormatUserError(nil) = %q, want empty", got)
	}

	got := FormatUserError(ErrNotFound)
	if !strings.Contains(got, "NF001") || !strings.HasPrefix(got, "El registro solicitado no existe") {
		t.Errorf("FormatUserError(ErrNotFound) = %q", got)
	}
}

func TestIsUserFacing(t *testing.T) {
	if IsUserFacing(nil) {
		t.Error("IsUserFacing(nil) = true")
	}
	if !IsUserFacing(ErrForbidden) {
		t.Error("IsUserFacing(ErrForbidden) = false")
	}
	if IsUserFacing(errors.New("segfault")) {
		t.Error("IsUserFacing(unknown) = true")
	}
}
