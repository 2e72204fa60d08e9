// Package highscore keeps the ranked list of (score, initials) pairs and
// the backends that persist it.
package highscore

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// DefaultLimit is the number of entries kept by every store.
const DefaultLimit = 10

// MaxInitials is the longest initials field a persisted line may carry.
const MaxInitials = 3

// ErrCorruptLine marks a persisted line that is not "<score> <initials>".
var ErrCorruptLine = errors.New("highscore: corrupt line")

// Entry is one high-score table row.
type Entry struct {
	Score    int
	Initials string
}

// String formats the entry as it is persisted.
func (e Entry) String() string {
	return fmt.Sprintf("%d %s", e.Score, e.Initials)
}

// Store persists a ranked high-score list.
// Implementations must be safe for concurrent use.
type Store interface {
	// Load returns the stored entries, best first. Missing storage is an
	// empty list, not an error.
	Load() ([]Entry, error)

	// Record inserts an entry and keeps only the top entries.
	Record(e Entry) error

	// Reset removes all entries.
	Reset() error
}

// LineError describes a line that could not be parsed.
type LineError struct {
	Line int
	Text string
}

func (e *LineError) Error() string {
	return fmt.Sprintf("highscore: corrupt line %d: %q", e.Line, e.Text)
}

// Unwrap lets errors.Is match ErrCorruptLine.
func (e *LineError) Unwrap() error {
	return ErrCorruptLine
}

// Parse reads whitespace-separated "<score> <initials>" lines. Initials
// must be 1 to MaxInitials uppercase letters. Blank lines are ignored;
// malformed lines are skipped and reported in bad.
func Parse(data []byte) (entries []Entry, bad []error) {
	sc := bufio.NewScanner(bytes.NewReader(data))
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) != 2 {
			bad = append(bad, &LineError{Line: line, Text: text})
			continue
		}
		score, err := strconv.Atoi(fields[0])
		if err != nil || NormalizeInitials(fields[1], MaxInitials) != fields[1] {
			bad = append(bad, &LineError{Line: line, Text: text})
			continue
		}
		entries = append(entries, Entry{Score: score, Initials: fields[1]})
	}
	return entries, bad
}

// Format writes entries one per line.
func Format(entries []Entry) []byte {
	var buf bytes.Buffer
	for _, e := range entries {
		buf.WriteString(e.String())
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// Rank sorts entries by descending score and keeps at most limit of them.
// Equal scores keep their relative order, so earlier entries stay ahead.
func Rank(entries []Entry, limit int) []Entry {
	ranked := slices.Clone(entries)
	slices.SortStableFunc(ranked, func(a, b Entry) int {
		return b.Score - a.Score
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// NormalizeInitials uppercases initials and keeps only ASCII letters,
// truncated to max characters.
func NormalizeInitials(s string, max int) string {
	var b strings.Builder
	for _, r := range s {
		if b.Len() >= max {
			break
		}
		if r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}
		if r >= 'A' && r <= 'Z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
