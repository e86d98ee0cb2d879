package runner

import (
	"bytes"
	"errors"
	"testing"
)

func TestSanitizeInput_SizeLimit(t *testing.T) {
	t.Setenv(EnvMaxInputSize, "")
	limit := DefaultMaxInputSize

	tests := []struct {
		name      string
		inputSize int
		wantErr   bool
	}{
		{"Under Limit", limit - 1, false},
		{"Exact Limit", limit, false},
		{"Over Limit", limit + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := bytes.Repeat([]byte("a"), tt.inputSize)
			_, err := SanitizeInput(input)
			if tt.wantErr {
				if !errors.Is(err, ErrInputTooLarge) {
					t.Errorf("SanitizeInput() expected ErrInputTooLarge for size %d, got %v", tt.inputSize, err)
				}
			} else if err != nil {
				t.Errorf("SanitizeInput() unexpected error: %v", err)
			}
		})
	}
}

func TestSanitizeInput_ControlChars(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Plain JSON", `{"a":"b"}`, `{"a":"b"}`},
		{"Safe Controls", "{\n\t\"a\": 1\r\n}", "{\n\t\"a\": 1\r\n}"},
		{"ANSI Code", "\x1b[31m{}", "[31m{}"},
		{"Null Byte", "{\x00}", "{}"},
		{"Multibyte Kept", `{"a":"olá ✓"}`, `{"a":"olá ✓"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeInput([]byte(tt.input))
			if err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
			if string(got) != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestSanitizeInput_EnvOverride(t *testing.T) {
	t.Setenv(EnvMaxInputSize, "10")

	if _, err := SanitizeInput([]byte("12345678901")); err == nil {
		t.Error("Expected error for input > 10 when env var is set")
	}
	if _, err := SanitizeInput([]byte("12345")); err != nil {
		t.Error("Unexpected error for valid input")
	}
}

func TestSanitizeInput_InvalidUTF8(t *testing.T) {
	input := []byte("\xbd\xb2\x3d\xbc\x20\xe2\x8c\x98")
	if _, err := SanitizeInput(input); err != ErrInvalidUTF8 {
		t.Errorf("Expected ErrInvalidUTF8, got %v", err)
	}
}
