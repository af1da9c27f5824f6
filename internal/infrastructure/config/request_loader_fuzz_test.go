package config

import (
	"bytes"
	"strings"
	"testing"
)

// FuzzRequestLoading fuzzes batch document parsing for panics on malformed input.
func FuzzRequestLoading(f *testing.F) {
	seeds := []string{
		validYAML,

		// Deeply nested
		strings.Repeat("nested:\n  ", 1000) + "value: 1",

		// Large document
		"apiVersion: \"1.0.0\"\ncharts:\n" + strings.Repeat("  - hour: 戊午\n", 5000),

		// Invalid UTF-8
		"apiVersion: \"1.0.0\"\ncharts:\n  - hour: \xff\xfe",

		// Alias cycle
		`charts: &anchor
  name: test
  ref: *anchor`,

		// Null bytes
		"apiVersion: \"1.0\x00\"",

		"",
		"   \n\t  \n",
		"charts:\n  - hour: 戊午\n    invalid_indent",
	}

	for _, seed := range seeds {
		f.Add([]byte(seed))
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		defer func() {
			if r := recover(); r != nil {
				t.Errorf("PANIC on input (len=%d): %v", len(data), r)
			}
		}()

		loader := NewRequestLoader()
		_, err := loader.LoadFromReader(bytes.NewReader(data), FormatYAML)
		_ = err // Ignore error, just check for panic
	})
}
