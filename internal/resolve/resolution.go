package resolve

import "fmt"

// Choice is the closed set of decisions a user can record for one conflict.
type Choice int

const (
	Ours Choice = iota
	Theirs
	Both
	BothReversed
	Skip
	Custom
)

func (c Choice) String() string {
	switch c {
	case Ours:
		return "ours"
	case Theirs:
		return "theirs"
	case Both:
		return "both"
	case BothReversed:
		return "both-reversed"
	case Skip:
		return "skip"
	case Custom:
		return "custom"
	}
	return fmt.Sprintf("choice(%d)", int(c))
}

// ParseChoice maps a user-facing choice name to its Choice value.
func ParseChoice(s string) (Choice, error) {
	switch s {
	case "ours":
		return Ours, nil
	case "theirs":
		return Theirs, nil
	case "both":
		return Both, nil
	case "both-reversed":
		return BothReversed, nil
	case "skip":
		return Skip, nil
	}
	return 0, fmt.Errorf("invalid choice: %q (expected ours|theirs|both|both-reversed|skip)", s)
}

// Resolution is one recorded decision. CustomLines is consulted only when
// Choice is Custom.
type Resolution struct {
	Index       int
	Choice      Choice
	CustomLines []string
}

// Set holds at most one Resolution per conflict index. Inserting a second
// resolution for an index replaces the first.
type Set struct {
	size    int
	byIndex map[int]Resolution
}

// NewSet creates an empty Set for a file with size conflicts.
func NewSet(size int) *Set {
	return &Set{size: size, byIndex: make(map[int]Resolution)}
}

// Put records a resolution, replacing any earlier decision for the same
// index. A resolution referencing an index outside [0, size) is rejected so
// it can never corrupt a reconstruction.
func (s *Set) Put(r Resolution) error {
	if r.Index < 0 || r.Index >= s.size {
		return fmt.Errorf("resolution index %d out of bounds [0, %d)", r.Index, s.size)
	}
	s.byIndex[r.Index] = r
	return nil
}

// Get returns the resolution recorded for index, if any.
func (s *Set) Get(index int) (Resolution, bool) {
	r, ok := s.byIndex[index]
	return r, ok
}

// Clear discards every recorded decision.
func (s *Set) Clear() {
	s.byIndex = make(map[int]Resolution)
}

// Len returns the number of recorded resolutions, including Skip decisions.
func (s *Set) Len() int {
	return len(s.byIndex)
}

// Size returns the number of conflicts the set was created for.
func (s *Set) Size() int {
	return s.size
}

// ResolvedCount returns the number of decisions that actually resolve their
// conflict, i.e. everything except Skip.
func (s *Set) ResolvedCount() int {
	n := 0
	for _, r := range s.byIndex {
		if r.Choice != Skip {
			n++
		}
	}
	return n
}

// AllResolved reports whether every conflict has a recorded, non-Skip
// resolution.
func (s *Set) AllResolved() bool {
	return s.ResolvedCount() == s.size
}
