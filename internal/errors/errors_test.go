package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "error without cause",
			err: &AppError{
				Code:    ErrCodeNotFound,
				Message: "book not found",
			},
			want: "book not found",
		},
		{
			name: "error with cause",
			err: &AppError{
				Code:    ErrCodeNetwork,
				Message: "no response from server",
				Cause:   errors.New("connection refused"),
			},
			want: "no response from server: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("AppError.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := &AppError{
		Code:    ErrCodeServer,
		Message: "wrapped error",
		Cause:   cause,
	}

	if unwrapped := err.Unwrap(); !errors.Is(unwrapped, cause) {
		t.Errorf("AppError.Unwrap() = %v, want %v", unwrapped, cause)
	}
	if !errors.Is(err, cause) {
		t.Errorf("errors.Is(err, cause) = false, want true")
	}
}

func TestAppError_FieldNames(t *testing.T) {
	err := &AppError{Fields: map[string][]string{"username": {"taken"}, "age": {"too low"}}}
	got := err.FieldNames()
	if len(got) != 2 || got[0] != "age" || got[1] != "username" {
		t.Errorf("FieldNames() = %v, want [age username]", got)
	}
}

func TestValidationField(t *testing.T) {
	err := ValidationField("isbn", "isbn is required")
	if err.Code != ErrCodeValidation {
		t.Errorf("ValidationField().Code = %v, want %v", err.Code, ErrCodeValidation)
	}
	if err.Field != "isbn" {
		t.Errorf("ValidationField().Field = %v, want isbn", err.Field)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(cause, ErrCodeDecode, "unreadable response")

	if err.Code != ErrCodeDecode {
		t.Errorf("Wrap().Code = %v, want %v", err.Code, ErrCodeDecode)
	}
	if err.Message != "unreadable response" {
		t.Errorf("Wrap().Message = %v, want %v", err.Message, "unreadable response")
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Wrap().Cause = %v, want %v", err.Cause, cause)
	}
}

func TestWrap_NilError(t *testing.T) {
	err := Wrap(nil, ErrCodeServer, "wrapped error")
	if err != nil {
		t.Errorf("Wrap(nil) = %v, want nil", err)
	}
}

func TestPredicates(t *testing.T) {
	wrapped := fmt.Errorf("list books: %w", &AppError{Code: ErrCodeUnauthorized, Message: "expired"})
	tests := []struct {
		name string
		fn   func(error) bool
		err  error
		want bool
	}{
		{"unauthorized", IsUnauthorized, wrapped, true},
		{"unauthorized on other code", IsUnauthorized, NotFound("x"), false},
		{"invalid credentials", IsInvalidCredentials, &AppError{Code: ErrCodeInvalidCredentials}, true},
		{"forbidden", IsForbidden, &AppError{Code: ErrCodeForbidden}, true},
		{"not found", IsNotFound, NotFound("book 1"), true},
		{"conflict", IsConflict, &AppError{Code: ErrCodeConflict}, true},
		{"validation", IsValidation, Validation("bad"), true},
		{"network", IsNetwork, &AppError{Code: ErrCodeNetwork}, true},
		{"network includes timeout", IsNetwork, &AppError{Code: ErrCodeTimeout}, true},
		{"timeout", IsTimeout, &AppError{Code: ErrCodeTimeout}, true},
		{"request", IsRequest, Request("bad", nil), true},
		{"canceled", IsCanceled, &AppError{Code: ErrCodeCanceled}, true},
		{"standard error", IsNotFound, errors.New("standard error"), false},
		{"nil error", IsValidation, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(tt.err); got != tt.want {
				t.Errorf("predicate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{
			name: "app error",
			err:  NotFound("not found"),
			want: ErrCodeNotFound,
		},
		{
			name: "standard error",
			err:  errors.New("standard error"),
			want: "",
		},
		{
			name: "nil error",
			err:  nil,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.want {
				t.Errorf("GetCode() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetFieldAndFields(t *testing.T) {
	if got := GetField(ValidationField("age", "invalid")); got != "age" {
		t.Errorf("GetField() = %v, want age", got)
	}
	if got := GetField(errors.New("standard error")); got != "" {
		t.Errorf("GetField() = %v, want empty", got)
	}
	fields := map[string][]string{"age": {"too low"}}
	if got := GetFields(&AppError{Fields: fields}); len(got["age"]) != 1 {
		t.Errorf("GetFields() = %v, want %v", got, fields)
	}
	if got := GetFields(nil); got != nil {
		t.Errorf("GetFields(nil) = %v, want nil", got)
	}
}

func TestMessage(t *testing.T) {
	if got := Message(&AppError{Message: "stock too low", Cause: errors.New("x")}); got != "stock too low" {
		t.Errorf("Message() = %q, want %q", got, "stock too low")
	}
	if got := Message(errors.New("plain")); got != "plain" {
		t.Errorf("Message() = %q, want plain", got)
	}
	if got := Message(nil); got != "" {
		t.Errorf("Message(nil) = %q, want empty", got)
	}
}
