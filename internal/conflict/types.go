package conflict

// DefaultContextLines is the number of surrounding lines captured on each
// side of a conflict region.
const DefaultContextLines = 3

// BaseLabel is the sentinel label used for base sections whose marker line
// carries no ref name.
const BaseLabel = "base"

// Section is one candidate version of the disputed lines.
type Section struct {
	Label string
	Lines []string
}

// Conflict is a single conflict region of a file. StartLine and EndLine are
// zero-based indices of the opening and closing marker lines. Conflicts are
// immutable once produced by Parse; resolution state lives elsewhere and
// refers to conflicts by index.
type Conflict struct {
	StartLine int
	EndLine   int

	Ours   Section
	Theirs Section
	Base   *Section // nil when the region has no base section

	// Surrounding lines, clipped at file boundaries. Only consulted when no
	// full original content is available to a reconstruction.
	ContextBefore []string
	ContextAfter  []string

	// Original marker lines, kept verbatim so an unresolved conflict can be
	// re-emitted byte-for-byte. Empty for conflicts built by hand.
	rawBegin     string
	rawBase      string
	rawSeparator string
	rawEnd       string
}

// HasBase reports whether the conflict carries a base (common ancestor)
// section.
func (c Conflict) HasBase() bool {
	return c.Base != nil
}

// MarkerLines re-emits the conflict as conflict-marked text, one line per
// element. For parsed conflicts the original marker lines are reproduced
// verbatim; for hand-built conflicts standard marker syntax is synthesized
// from the section labels.
func (c Conflict) MarkerLines() []string {
	out := make([]string, 0, c.EndLine-c.StartLine+1)

	out = append(out, markerLine(c.rawBegin, "<<<<<<<", c.Ours.Label))
	out = append(out, c.Ours.Lines...)
	if c.Base != nil {
		out = append(out, markerLine(c.rawBase, "|||||||", c.Base.Label))
		out = append(out, c.Base.Lines...)
	}
	out = append(out, markerLine(c.rawSeparator, "=======", ""))
	out = append(out, c.Theirs.Lines...)
	out = append(out, markerLine(c.rawEnd, ">>>>>>>", c.Theirs.Label))

	return out
}

func markerLine(raw, marker, label string) string {
	if raw != "" {
		return raw
	}
	if label == "" {
		return marker
	}
	return marker + " " + label
}
