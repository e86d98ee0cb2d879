package runner

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"unicode"
	"unicode/utf8"
)

var (
	// DefaultMaxInputSize is 1 MiB, enough for an invocation carrying a large state.
	DefaultMaxInputSize = 1 << 20
	// EnvMaxInputSize is the environment variable to override the default
	EnvMaxInputSize = "TEMPLATES_MAX_INPUT_SIZE"
)

var (
	ErrInputTooLarge = errors.New("input exceeds maximum allowed size")
	ErrInvalidUTF8   = errors.New("input contains invalid UTF-8 sequences")
)

// SanitizeInput checks raw transport bytes before they are decoded.
// It enforces the size limit, validates UTF-8 and strips control characters
// other than newline, tab and carriage return.
func SanitizeInput(input []byte) ([]byte, error) {
	limit := MaxInputSize()
	if len(input) > limit {
		// Rejected rather than truncated: a truncated document is a different invocation.
		return nil, fmt.Errorf("%w: size=%d limit=%d", ErrInputTooLarge, len(input), limit)
	}

	if !utf8.Valid(input) {
		return nil, ErrInvalidUTF8
	}

	// Fast path: if no control chars, return as is.
	if bytes.IndexFunc(input, isUnsafeControl) < 0 {
		return input, nil
	}

	clean := make([]byte, 0, len(input))
	for len(input) > 0 {
		r, size := utf8.DecodeRune(input)
		if !isUnsafeControl(r) {
			clean = append(clean, input[:size]...)
		}
		input = input[size:]
	}
	return clean, nil
}

func isUnsafeControl(r rune) bool {
	return unicode.IsControl(r) && r != '\n' && r != '\t' && r != '\r'
}

// MaxInputSize returns the active size limit in bytes.
func MaxInputSize() int {
	if val := os.Getenv(EnvMaxInputSize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return size
		}
	}
	return DefaultMaxInputSize
}
