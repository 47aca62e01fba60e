// Package session implements the interactive resolution workflow as a pure
// state machine. It knows nothing about terminals: a UI adapter feeds it
// keys and draws whatever state comes back.
package session

import (
	"github.com/blueprintvc/bpvc/internal/conflict"
	"github.com/blueprintvc/bpvc/internal/resolve"
)

// Mode is the session's display mode.
type Mode int

const (
	Navigating Mode = iota
	HelpOverlay
	PreviewOverlay
)

// Key is the session-level input alphabet. UI adapters translate their own
// key events into these.
type Key int

const (
	KeyNone Key = iota
	KeyNext
	KeyPrev
	KeyFirst
	KeyLast
	KeyScrollDown
	KeyScrollUp
	KeyChooseOurs
	KeyChooseTheirs
	KeyChooseBoth
	KeyChooseBothReversed
	KeyChooseSkip
	KeyToggleBase
	KeyTogglePreview
	KeyToggleHelp
	KeySave
	KeyCancel
)

// Outcome signals the end of a session. Save hands the accumulated
// resolution set to the caller; Cancel discards every decision first.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeSave
	OutcomeCancel
)

// State is the complete mutable state of one resolution session. One State
// per file; nothing here is shared across sessions.
type State struct {
	Conflicts   []conflict.Conflict
	Resolutions *resolve.Set

	Current  int
	Scroll   int
	Mode     Mode
	ShowBase bool
}

// New creates a session state positioned at the first conflict with an
// empty resolution set.
func New(conflicts []conflict.Conflict) State {
	return State{
		Conflicts:   conflicts,
		Resolutions: resolve.NewSet(len(conflicts)),
	}
}

// Transition applies one key to the state and returns the successor state
// plus the session outcome, if this key ended the session. It never blocks
// and never draws.
func Transition(s State, k Key) (State, Outcome) {
	switch s.Mode {
	case HelpOverlay:
		// Any key dismisses help.
		s.Mode = Navigating
		return s, OutcomeNone

	case PreviewOverlay:
		switch k {
		case KeyScrollDown:
			s.Scroll++
		case KeyScrollUp:
			s.Scroll = max(0, s.Scroll-1)
		case KeyTogglePreview:
			s.Mode = Navigating
			s.Scroll = 0
		case KeySave:
			return s, OutcomeSave
		case KeyCancel:
			s.Resolutions.Clear()
			return s, OutcomeCancel
		}
		// Navigation and resolution keys are inert while previewing.
		return s, OutcomeNone
	}

	switch k {
	case KeyNext:
		s = moveTo(s, s.Current+1)
	case KeyPrev:
		s = moveTo(s, s.Current-1)
	case KeyFirst:
		s = moveTo(s, 0)
	case KeyLast:
		s = moveTo(s, len(s.Conflicts)-1)

	case KeyScrollDown:
		s.Scroll++
	case KeyScrollUp:
		s.Scroll = max(0, s.Scroll-1)

	case KeyChooseOurs:
		s = choose(s, resolve.Ours, nil)
	case KeyChooseTheirs:
		s = choose(s, resolve.Theirs, nil)
	case KeyChooseBoth:
		s = choose(s, resolve.Both, nil)
	case KeyChooseBothReversed:
		s = choose(s, resolve.BothReversed, nil)
	case KeyChooseSkip:
		s = choose(s, resolve.Skip, nil)

	case KeyToggleBase:
		s.ShowBase = !s.ShowBase
	case KeyTogglePreview:
		s.Mode = PreviewOverlay
		s.Scroll = 0
	case KeyToggleHelp:
		s.Mode = HelpOverlay

	case KeySave:
		return s, OutcomeSave
	case KeyCancel:
		s.Resolutions.Clear()
		return s, OutcomeCancel
	}

	return s, OutcomeNone
}

// ApplyCustom records a custom resolution for the current conflict and
// advances, following the same rule as the choice keys. Used by UI adapters
// after an external edit.
func ApplyCustom(s State, lines []string) State {
	return choose(s, resolve.Custom, lines)
}

func choose(s State, c resolve.Choice, custom []string) State {
	if len(s.Conflicts) == 0 {
		return s
	}
	// Put replaces any earlier decision for this index.
	_ = s.Resolutions.Put(resolve.Resolution{Index: s.Current, Choice: c, CustomLines: custom})
	return moveTo(s, s.Current+1)
}

// moveTo clamps the target index (no wraparound) and resets the in-conflict
// scroll offset.
func moveTo(s State, target int) State {
	if target < 0 {
		target = 0
	}
	if last := len(s.Conflicts) - 1; target > last {
		target = max(0, last)
	}
	s.Current = target
	s.Scroll = 0
	return s
}
