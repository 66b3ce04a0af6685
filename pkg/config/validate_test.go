package config

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cfgs     []ValidatableConfig
		wantErrs int
	}{
		{
			name:     "no configs",
			cfgs:     []ValidatableConfig{},
			wantErrs: 0,
		},
		{
			name: "one valid config",
			cfgs: []ValidatableConfig{
				&Shared{Strategy: "line", Codec: "raw"},
			},
			wantErrs: 0,
		},
		{
			name: "one invalid config",
			cfgs: []ValidatableConfig{
				&Shared{Strategy: "bogus", Codec: "raw"},
			},
			wantErrs: 1,
		},
		{
			name: "multiple configs with errors",
			cfgs: []ValidatableConfig{
				&Shared{Strategy: "line", Codec: "xml"},
				&Shared{Strategy: "line", Codec: "raw", Length: -1},
			},
			wantErrs: 2,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			errs := Validate(tc.cfgs...)
			if len(errs) != tc.wantErrs {
				t.Errorf("Validate() returned %d errors, want %d", len(errs), tc.wantErrs)
			}
		})
	}
}

func TestValidatePort(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		port    int
		wantErr bool
	}{
		{"valid port 1", 1, false},
		{"valid port 8080", 8080, false},
		{"valid port 65535", 65535, false},
		{"invalid port 0", 0, true},
		{"invalid port -1", -1, true},
		{"invalid port 65536", 65536, true},
		{"invalid port 100000", 100000, true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := ValidatePort(tc.port)
			if (err != nil) != tc.wantErr {
				t.Errorf("ValidatePort(%d) error = %v, wantErr %v", tc.port, err, tc.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidPort) {
				t.Errorf("ValidatePort(%d) error = %v, want ErrInvalidPort", tc.port, err)
			}
		})
	}
}

func TestValidateIntRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		value     int
		min, max  int
		inclusive bool
		wantErr   bool
	}{
		{"inclusive lower bound", 0, 0, 10, true, false},
		{"exclusive lower bound", 0, 0, 10, false, true},
		{"inclusive upper bound", 10, 0, 10, true, false},
		{"exclusive upper bound", 10, 0, 10, false, true},
		{"inside exclusive", 5, 0, 10, false, false},
		{"below", -1, 0, 10, true, true},
		{"no upper bound", 1 << 40, 0, NoBound, true, false},
		{"no lower bound", -1 << 40, NoBound, 0, true, false},
		{"no bounds", 42, NoBound, NoBound, false, false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateIntRange(ErrInvalidArgument, tc.value, tc.min, tc.max, tc.inclusive)
			if (err != nil) != tc.wantErr {
				t.Errorf("ValidateIntRange(%d, %d, %d, %v) error = %v, wantErr %v", tc.value, tc.min, tc.max, tc.inclusive, err, tc.wantErr)
			}
		})
	}
}

func TestValidationError(t *testing.T) {
	t.Parallel()

	err := ValidateSeconds(-3)
	if err == nil {
		t.Fatal("ValidateSeconds(-3) returned nil")
	}

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error %v is not a *ValidationError", err)
	}
	if verr.Value != -3 {
		t.Errorf("Value = %v, want -3", verr.Value)
	}
	if verr.Constraint != "int in [0, +inf)" {
		t.Errorf("Constraint = %q, want %q", verr.Constraint, "int in [0, +inf)")
	}
	if !errors.Is(err, ErrInvalidTimeout) {
		t.Errorf("error %v does not match ErrInvalidTimeout", err)
	}
}

func TestValidateTimeouts(t *testing.T) {
	t.Parallel()

	if err := ValidateSeconds(0); err != nil {
		t.Errorf("ValidateSeconds(0) = %v", err)
	}
	if err := ValidateMicroseconds(0); err != nil {
		t.Errorf("ValidateMicroseconds(0) = %v", err)
	}
	if err := ValidateMicroseconds(-1); !errors.Is(err, ErrInvalidTimeout) {
		t.Errorf("ValidateMicroseconds(-1) = %v, want ErrInvalidTimeout", err)
	}
}

func TestValidatePath(t *testing.T) {
	t.Parallel()

	if err := ValidatePath("x"); err != nil {
		t.Errorf("ValidatePath(x) = %v", err)
	}
	if err := ValidatePath(""); !errors.Is(err, ErrInvalidPath) {
		t.Errorf("ValidatePath(\"\") = %v, want ErrInvalidPath", err)
	}
}

// mockValidatableConfig is a mock implementation for testing.
type mockValidatableConfig struct {
	errors []error
}

func (m *mockValidatableConfig) Validate() []error {
	return m.errors
}

func TestValidate_Accumulates(t *testing.T) {
	t.Parallel()

	mock1 := &mockValidatableConfig{
		errors: []error{fmt.Errorf("error1"), fmt.Errorf("error2")},
	}
	mock2 := &mockValidatableConfig{
		errors: []error{fmt.Errorf("error3")},
	}

	errs := Validate(mock1, mock2)
	if len(errs) != 3 {
		t.Errorf("Validate() returned %d errors, want 3", len(errs))
	}
}
