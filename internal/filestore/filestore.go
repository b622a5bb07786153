// Package filestore provides line-oriented file operations: reading and
// replacing contiguous line ranges, and an in-memory File handle that keeps
// its content synchronized with disk. Line numbers are 1-indexed and
// inclusive; zero means "unset" and defaults to the start or end of file.
package filestore

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
)

// ErrInvalidRange reports a malformed line range.
var ErrInvalidRange = errors.New("invalid line range")

// ReadRange returns the lines [start, end] of the file as a single string.
// start and end of 0 default to the first and last line; end beyond the
// last line clamps to it.
func ReadRange(path string, start, end int) (string, error) {
	if err := validateRange(start, end); err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	lines := splitLines(string(data))
	if start == 0 {
		start = 1
	}
	if end == 0 || end > len(lines) {
		end = len(lines)
	}
	if start > len(lines) {
		return "", nil
	}

	return strings.Join(lines[start-1:end], "\n"), nil
}

// WriteFile creates the file or truncates it, then writes content.
func WriteFile(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	log.Debug().Str("path", path).Int("bytes", len(content)).Msg("file written")
	return nil
}

// ReplaceRange replaces the lines [start, end] of the file with the lines
// of content. A start beyond the last line appends at the end of the file;
// an end beyond the last line clamps to it.
func ReplaceRange(path, content string, start, end int) error {
	if err := validateRange(start, end); err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	updated := spliceLines(string(data), content, start, end)
	if err := os.WriteFile(path, []byte(updated), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	log.Debug().
		Str("path", path).
		Int("start", start).
		Int("end", end).
		Msg("line range replaced")
	return nil
}

func validateRange(start, end int) error {
	if start < 0 {
		return fmt.Errorf("%w: start line %d must be positive", ErrInvalidRange, start)
	}
	if end < 0 {
		return fmt.Errorf("%w: end line %d must be positive", ErrInvalidRange, end)
	}
	if start > 0 && end > 0 && start > end {
		return fmt.Errorf("%w: start %d is beyond end %d", ErrInvalidRange, start, end)
	}
	return nil
}

// spliceLines replaces lines [start, end] of existing with the lines of
// content, applying the clamping rules shared by ReplaceRange and
// File.ReplaceLines.
func spliceLines(existing, content string, start, end int) string {
	lines := splitLines(existing)
	total := len(lines)

	if start == 0 {
		start = 1
	}
	if start > total {
		// Beyond the last line: append.
		merged := append(lines, splitLines(content)...)
		return strings.Join(merged, "\n")
	}
	if end == 0 || end > total {
		end = total
	}

	merged := make([]string, 0, total)
	merged = append(merged, lines[:start-1]...)
	merged = append(merged, splitLines(content)...)
	merged = append(merged, lines[end:]...)
	return strings.Join(merged, "\n")
}

// splitLines splits on newlines without manufacturing a trailing empty line
// for newline-terminated content.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}
