package conflict

import (
	"errors"
	"fmt"
	"strings"
)

var ErrMalformedConflict = errors.New("malformed conflict markers")

const (
	markBegin     = "<<<<<<<"
	markBase      = "|||||||"
	markSeparator = "======="
	markEnd       = ">>>>>>>"
)

// Parse extracts every conflict region from text, in file order, with the
// default amount of surrounding context.
func Parse(text string) ([]Conflict, error) {
	return ParseLines(SplitLines(text), DefaultContextLines)
}

// ParseLines scans lines sequentially and returns the conflicts they contain.
//
// It is strict: once an opening marker is seen, the full marker structure
// (optionally including a diff3 base section) must follow before end of
// input. An unterminated conflict is a parse error, never silently folded
// into the rest of the file. Lines outside conflict regions are skipped;
// they belong to the caller's copy of the file, not to the parser.
func ParseLines(lines []string, contextLines int) ([]Conflict, error) {
	if contextLines < 0 {
		contextLines = 0
	}

	var conflicts []Conflict
	for i := 0; i < len(lines); i++ {
		if !isMarker(lines[i], markBegin) {
			continue
		}

		c := Conflict{
			StartLine: i,
			rawBegin:  lines[i],
			Ours:      Section{Label: markerLabel(lines[i], markBegin)},
		}

		// Ours runs until the base separator or the midpoint.
		i++
		for ; i < len(lines); i++ {
			if isMarker(lines[i], markBase) || isMarker(lines[i], markSeparator) {
				break
			}
			c.Ours.Lines = append(c.Ours.Lines, lines[i])
		}
		if i >= len(lines) {
			return nil, fmt.Errorf("%w: conflict at line %d has no ======= separator", ErrMalformedConflict, c.StartLine+1)
		}

		// Optional base section.
		if isMarker(lines[i], markBase) {
			base := Section{Label: markerLabel(lines[i], markBase)}
			if base.Label == "" {
				base.Label = BaseLabel
			}
			c.rawBase = lines[i]
			i++
			for ; i < len(lines); i++ {
				if isMarker(lines[i], markSeparator) {
					break
				}
				base.Lines = append(base.Lines, lines[i])
			}
			if i >= len(lines) {
				return nil, fmt.Errorf("%w: base section at line %d has no ======= separator", ErrMalformedConflict, c.StartLine+1)
			}
			c.Base = &base
		}

		c.rawSeparator = lines[i]

		// Theirs runs until the closing marker.
		i++
		for ; i < len(lines); i++ {
			if isMarker(lines[i], markEnd) {
				break
			}
			c.Theirs.Lines = append(c.Theirs.Lines, lines[i])
		}
		if i >= len(lines) {
			return nil, fmt.Errorf("%w: conflict at line %d is never closed", ErrMalformedConflict, c.StartLine+1)
		}

		c.Theirs.Label = markerLabel(lines[i], markEnd)
		c.rawEnd = lines[i]
		c.EndLine = i
		c.ContextBefore = contextSlice(lines, c.StartLine-contextLines, c.StartLine)
		c.ContextAfter = contextSlice(lines, c.EndLine+1, c.EndLine+1+contextLines)

		conflicts = append(conflicts, c)
	}

	return conflicts, nil
}

// SplitLines splits text on newlines without discarding a trailing empty
// element, so that joining the result with "\n" reproduces the input.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

func isMarker(line, marker string) bool {
	// Markers appear at the start of the line in VCS output.
	return strings.HasPrefix(line, marker)
}

// markerLabel extracts the trailing ref name from a marker line, e.g.
// "<<<<<<< HEAD" yields "HEAD".
func markerLabel(line, marker string) string {
	rest := strings.TrimSuffix(strings.TrimPrefix(line, marker), "\r")
	return strings.Trim(rest, " \t")
}

func contextSlice(lines []string, from, to int) []string {
	if from < 0 {
		from = 0
	}
	if to > len(lines) {
		to = len(lines)
	}
	if from >= to {
		return nil
	}
	out := make([]string, to-from)
	copy(out, lines[from:to])
	return out
}
