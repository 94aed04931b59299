package errors

import (
	"math"
	"testing"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple file", "plot.html", false},
		{"nested", "out/plots/grid.json", false},
		{"absolute", "/tmp/out/plot.html", false},
		{"dots in name", "my..plot.html", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 600)), true},
		{"traversal", "out/../../etc/passwd", true},
		{"null byte", "plot\x00.html", true},
		{"newline", "plot\n.html", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "penguins", false},
		{"spaces", "bill length", false},

		{"empty", "", true},
		{"slash", "a/b", true},
		{"backslash", "a\\b", true},
		{"control", "a\x01b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateFraction(t *testing.T) {
	f := func(v float64) *float64 { return &v }

	tests := []struct {
		name    string
		input   *float64
		wantErr bool
	}{
		{"unset", nil, false},
		{"zero", f(0), false},
		{"one", f(1), false},
		{"half", f(0.5), false},

		{"negative", f(-0.1), true},
		{"above one", f(1.5), true},
		{"nan", f(math.NaN()), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFraction("opacity", tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFraction() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeOptionInconsistent) {
				t.Errorf("GetCode() = %v, want %v", GetCode(err), ErrCodeOptionInconsistent)
			}
		})
	}
}
