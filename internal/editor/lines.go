package editor

import (
	"fmt"
	"strings"

	"github.com/slok/swemas/internal/model"
)

// SplitLines splits content in lines keeping the line terminators. A last line
// without terminator is still a line.
func SplitLines(content string) []string {
	if content == "" {
		return []string{}
	}

	lines := strings.SplitAfter(content, "\n")
	// SplitAfter leaves an empty element when content ends with a newline.
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// JoinLines is the inverse of SplitLines.
func JoinLines(lines []string) string {
	return strings.Join(lines, "")
}

// normalizeLineNumber treats line 0 as line 1, models emit 0-based indexes inconsistently.
func normalizeLineNumber(n int) int {
	if n == 0 {
		return 1
	}
	return n
}

func withNewline(line string) string {
	if strings.HasSuffix(line, "\n") {
		return line
	}
	return line + "\n"
}

func validateRange(lines []string, start, end int) error {
	if start < 1 || end > len(lines) || start > end {
		return fmt.Errorf("invalid line range %d-%d for %d lines: %w", start, end, len(lines), model.ErrNotValid)
	}
	return nil
}

// DeleteRange removes the 1-based inclusive [start, end] range of lines.
func DeleteRange(lines []string, start, end int) ([]string, error) {
	start, end = normalizeLineNumber(start), normalizeLineNumber(end)
	if err := validateRange(lines, start, end); err != nil {
		return nil, err
	}

	res := make([]string, 0, len(lines)-(end-start+1))
	res = append(res, lines[:start-1]...)
	res = append(res, lines[end:]...)
	return res, nil
}

// InsertLine inserts content as a new line before the 1-based pos line. Using
// len(lines)+1 as pos appends the line at the end.
func InsertLine(lines []string, pos int, content string) ([]string, error) {
	pos = normalizeLineNumber(pos)
	if pos < 1 || pos > len(lines)+1 {
		return nil, fmt.Errorf("invalid line number %d for %d lines: %w", pos, len(lines), model.ErrNotValid)
	}

	// If the last line was missing the terminator, the new line would be merged with it.
	if pos == len(lines)+1 && pos > 1 {
		lines = append(lines[:pos-2:pos-2], withNewline(lines[pos-2]))
	}

	res := make([]string, 0, len(lines)+1)
	res = append(res, lines[:pos-1]...)
	res = append(res, withNewline(content))
	res = append(res, lines[pos-1:]...)
	return res, nil
}

// ReplaceRange replaces the 1-based inclusive [start, end] range of lines with newLines,
// every new line is normalized to end with a newline.
func ReplaceRange(lines []string, start, end int, newLines []string) ([]string, error) {
	start, end = normalizeLineNumber(start), normalizeLineNumber(end)
	if err := validateRange(lines, start, end); err != nil {
		return nil, err
	}

	res := make([]string, 0, len(lines)-(end-start+1)+len(newLines))
	res = append(res, lines[:start-1]...)
	for _, l := range newLines {
		res = append(res, withNewline(l))
	}
	res = append(res, lines[end:]...)
	return res, nil
}
