package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestExitError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ExitError
		want string
	}{
		{
			name: "with underlying error",
			err:  NewExitError(errors.New("boom"), ExitSystem),
			want: "boom",
		},
		{
			name: "nil underlying error",
			err:  NewExitError(nil, ExitUser),
			want: "exit code 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExitError_Unwrap(t *testing.T) {
	err := NewConfigError(ErrConfigNotFound)

	if !errors.Is(err, ErrConfigNotFound) {
		t.Error("errors.Is should find ErrConfigNotFound in the chain")
	}

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatal("errors.As should extract *ExitError")
	}
	if exitErr.Code != ExitUser {
		t.Errorf("Code = %d, want %d", exitErr.Code, ExitUser)
	}
	if exitErr.Suggestion != "Run: sr init" {
		t.Errorf("Suggestion = %q, want %q", exitErr.Suggestion, "Run: sr init")
	}
}

func TestExitError_WrappedChain(t *testing.T) {
	inner := fmt.Errorf("fetching index: %w", ErrRegistryUnreachable)
	err := NewSystemError(inner, "check your network connection")

	if !errors.Is(err, ErrRegistryUnreachable) {
		t.Error("errors.Is should traverse through ExitError into the chain")
	}

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatal("errors.As should extract *ExitError")
	}
	if exitErr.Code != ExitSystem {
		t.Errorf("Code = %d, want %d", exitErr.Code, ExitSystem)
	}
}

func TestConstructors(t *testing.T) {
	if got := NewUserError(nil, "s").Code; got != ExitUser {
		t.Errorf("NewUserError code = %d, want %d", got, ExitUser)
	}
	if got := NewSystemError(nil, "s").Code; got != ExitSystem {
		t.Errorf("NewSystemError code = %d, want %d", got, ExitSystem)
	}
}
