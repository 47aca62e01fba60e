package resolve

import (
	"runtime"
	"strings"

	"github.com/blueprintvc/bpvc/internal/conflict"
)

// SourceMode selects where the text surrounding each conflict comes from
// during reconstruction.
type SourceMode int

const (
	// ModeFileBacked stitches conflicts into the full original file content.
	ModeFileBacked SourceMode = iota
	// ModeSynthetic has no original content and falls back to each
	// conflict's own context slices. Used for previews.
	ModeSynthetic
)

// Source is the reconstruction input for the surrounding text. The mode is
// an explicit part of the contract: file-backed output is what gets written
// to disk, synthetic output only approximates the neighborhood of each
// conflict.
type Source struct {
	mode  SourceMode
	lines []string
}

// FileSource returns a file-backed Source over the original file lines.
func FileSource(lines []string) Source {
	return Source{mode: ModeFileBacked, lines: lines}
}

// SyntheticSource returns a Source with no original content.
func SyntheticSource() Source {
	return Source{mode: ModeSynthetic}
}

// Mode returns the source's reconstruction mode.
func (s Source) Mode() SourceMode {
	return s.mode
}

// Reconstruct produces the final file lines for conflicts under the given
// resolution set.
//
// Conflicts are walked in order. A conflict whose resolution is Skip, or
// that has no resolution at all, is re-emitted as its original marker block,
// so the output round-trips back to valid conflict-marked text. The walk is
// O(total lines) and performs no I/O.
func Reconstruct(conflicts []conflict.Conflict, set *Set, src Source) []string {
	var out []string
	lastEnd := 0

	for i, c := range conflicts {
		switch src.mode {
		case ModeFileBacked:
			out = append(out, src.lines[lastEnd:c.StartLine]...)
		case ModeSynthetic:
			out = append(out, c.ContextBefore...)
		}

		r, ok := set.Get(i)
		if !ok {
			out = append(out, c.MarkerLines()...)
			lastEnd = c.EndLine + 1
			continue
		}

		switch r.Choice {
		case Ours:
			out = append(out, c.Ours.Lines...)
		case Theirs:
			out = append(out, c.Theirs.Lines...)
		case Both:
			out = append(out, c.Ours.Lines...)
			out = append(out, c.Theirs.Lines...)
		case BothReversed:
			out = append(out, c.Theirs.Lines...)
			out = append(out, c.Ours.Lines...)
		case Custom:
			out = append(out, r.CustomLines...)
		case Skip:
			out = append(out, c.MarkerLines()...)
		}

		lastEnd = c.EndLine + 1
	}

	switch src.mode {
	case ModeFileBacked:
		out = append(out, src.lines[lastEnd:]...)
	case ModeSynthetic:
		if n := len(conflicts); n > 0 {
			out = append(out, conflicts[n-1].ContextAfter...)
		}
	}

	return out
}

// Render joins reconstructed lines with the platform line separator.
func Render(lines []string) string {
	return strings.Join(lines, LineSeparator())
}

// LineSeparator returns the platform's newline sequence.
func LineSeparator() string {
	if runtime.GOOS == "windows" {
		return "\r\n"
	}
	return "\n"
}
