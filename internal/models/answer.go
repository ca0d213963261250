package models

import (
	"fmt"
	"strconv"
	"strings"
)

// AnswerUnmarked is the stored value for a question the student left blank.
const AnswerUnmarked = -1

// ParseAnswerIndex converts a raw answer cell into the canonical zero-based
// option index. Two representations are accepted:
//
//	digits:  "0", "2"            -> 0, 2
//	letters: "A", "b", " C "     -> 0, 1, 2
//
// An empty cell is an unmarked answer. Anything else is rejected; no other
// coercion happens here or anywhere downstream.
func ParseAnswerIndex(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return AnswerUnmarked, nil
	}

	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("answer index %d is negative", n)
		}
		return n, nil
	}

	if len(s) == 1 {
		c := s[0]
		switch {
		case c >= 'A' && c <= 'Z':
			return int(c - 'A'), nil
		case c >= 'a' && c <= 'z':
			return int(c - 'a'), nil
		}
	}

	return 0, fmt.Errorf("answer %q is neither an option index nor an option letter", raw)
}

// FormatAnswerIndex renders a canonical answer index for storage.
func FormatAnswerIndex(idx int) string {
	if idx == AnswerUnmarked {
		return ""
	}
	return strconv.Itoa(idx)
}
