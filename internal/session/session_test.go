package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blueprintvc/bpvc/internal/conflict"
	"github.com/blueprintvc/bpvc/internal/resolve"
)

func threeConflicts() []conflict.Conflict {
	mk := func(label string) conflict.Conflict {
		return conflict.Conflict{
			Ours:   conflict.Section{Label: "HEAD", Lines: []string{label + " ours"}},
			Theirs: conflict.Section{Label: "dev", Lines: []string{label + " theirs"}},
		}
	}
	return []conflict.Conflict{mk("one"), mk("two"), mk("three")}
}

func step(t *testing.T, s State, keys ...Key) (State, Outcome) {
	t.Helper()
	outcome := OutcomeNone
	for _, k := range keys {
		require.Equal(t, OutcomeNone, outcome, "session ended before all keys were applied")
		s, outcome = Transition(s, k)
	}
	return s, outcome
}

func TestNavigationClamped(t *testing.T) {
	s := New(threeConflicts())

	s, _ = step(t, s, KeyNext, KeyNext)
	assert.Equal(t, 2, s.Current)

	// No wraparound past the last conflict.
	s, _ = step(t, s, KeyNext)
	assert.Equal(t, 2, s.Current)

	s, _ = step(t, s, KeyFirst)
	assert.Equal(t, 0, s.Current)

	// No wraparound before the first.
	s, _ = step(t, s, KeyPrev)
	assert.Equal(t, 0, s.Current)

	s, _ = step(t, s, KeyLast)
	assert.Equal(t, 2, s.Current)
}

func TestNavigationResetsScroll(t *testing.T) {
	s := New(threeConflicts())
	s, _ = step(t, s, KeyScrollDown, KeyScrollDown)
	require.Equal(t, 2, s.Scroll)

	s, _ = step(t, s, KeyNext)
	assert.Equal(t, 0, s.Scroll)
}

func TestScrollSaturatesAtZero(t *testing.T) {
	s := New(threeConflicts())
	s, _ = step(t, s, KeyScrollUp)
	assert.Equal(t, 0, s.Scroll)

	s, _ = step(t, s, KeyScrollDown, KeyScrollUp, KeyScrollUp, KeyScrollUp)
	assert.Equal(t, 0, s.Scroll)
}

func TestChoiceRecordsAndAdvances(t *testing.T) {
	s := New(threeConflicts())

	s, outcome := step(t, s, KeyChooseOurs)
	assert.Equal(t, OutcomeNone, outcome)
	assert.Equal(t, 1, s.Current)

	r, ok := s.Resolutions.Get(0)
	require.True(t, ok)
	assert.Equal(t, resolve.Ours, r.Choice)
}

func TestChoiceReplacesEarlierDecision(t *testing.T) {
	s := New(threeConflicts())

	s, _ = step(t, s, KeyChooseOurs, KeyFirst, KeyChooseTheirs)

	r, ok := s.Resolutions.Get(0)
	require.True(t, ok)
	assert.Equal(t, resolve.Theirs, r.Choice)
	assert.Equal(t, 1, s.Resolutions.Len())
}

func TestChoiceAtLastConflictDoesNotWrap(t *testing.T) {
	s := New(threeConflicts())

	s, _ = step(t, s, KeyLast, KeyChooseBoth)
	assert.Equal(t, 2, s.Current)

	r, ok := s.Resolutions.Get(2)
	require.True(t, ok)
	assert.Equal(t, resolve.Both, r.Choice)
}

func TestAllChoiceKeys(t *testing.T) {
	tests := []struct {
		key  Key
		want resolve.Choice
	}{
		{KeyChooseOurs, resolve.Ours},
		{KeyChooseTheirs, resolve.Theirs},
		{KeyChooseBoth, resolve.Both},
		{KeyChooseBothReversed, resolve.BothReversed},
		{KeyChooseSkip, resolve.Skip},
	}
	for _, tt := range tests {
		s := New(threeConflicts())
		s, _ = step(t, s, tt.key)
		r, ok := s.Resolutions.Get(0)
		require.True(t, ok, "key %v recorded nothing", tt.key)
		assert.Equal(t, tt.want, r.Choice)
	}
}

func TestTogglesDoNotMutateResolutions(t *testing.T) {
	s := New(threeConflicts())
	s, _ = step(t, s, KeyChooseOurs)
	require.Equal(t, 1, s.Resolutions.Len())

	s, _ = step(t, s, KeyToggleBase)
	assert.True(t, s.ShowBase)
	s, _ = step(t, s, KeyToggleBase)
	assert.False(t, s.ShowBase)

	s, _ = step(t, s, KeyTogglePreview)
	assert.Equal(t, PreviewOverlay, s.Mode)
	s, _ = step(t, s, KeyTogglePreview)
	assert.Equal(t, Navigating, s.Mode)

	assert.Equal(t, 1, s.Resolutions.Len())
}

func TestHelpConsumesAnyKey(t *testing.T) {
	for _, k := range []Key{KeyNone, KeyNext, KeyChooseOurs, KeySave, KeyCancel} {
		s := New(threeConflicts())
		s, _ = step(t, s, KeyToggleHelp)
		require.Equal(t, HelpOverlay, s.Mode)

		s, outcome := Transition(s, k)
		assert.Equal(t, Navigating, s.Mode, "key %v did not dismiss help", k)
		assert.Equal(t, OutcomeNone, outcome)
		// Dismissing help never records a decision, even for choice keys.
		assert.Equal(t, 0, s.Resolutions.Len())
	}
}

func TestPreviewIgnoresNavigationAndChoices(t *testing.T) {
	s := New(threeConflicts())
	s, _ = step(t, s, KeyTogglePreview)
	require.Equal(t, PreviewOverlay, s.Mode)

	s, _ = step(t, s, KeyNext, KeyChooseOurs, KeyChooseTheirs, KeyToggleBase)
	assert.Equal(t, 0, s.Current)
	assert.Equal(t, 0, s.Resolutions.Len())
	assert.False(t, s.ShowBase)
}

func TestPreviewScrollAndDismiss(t *testing.T) {
	s := New(threeConflicts())
	s, _ = step(t, s, KeyTogglePreview, KeyScrollDown, KeyScrollDown, KeyScrollUp)
	assert.Equal(t, 1, s.Scroll)

	s, _ = step(t, s, KeyTogglePreview)
	assert.Equal(t, Navigating, s.Mode)
}

func TestSaveReturnsAccumulatedSet(t *testing.T) {
	s := New(threeConflicts())
	s, _ = step(t, s, KeyChooseOurs, KeyChooseTheirs)

	s, outcome := Transition(s, KeySave)
	assert.Equal(t, OutcomeSave, outcome)
	assert.Equal(t, 2, s.Resolutions.Len())
}

func TestSaveWorksFromPreview(t *testing.T) {
	s := New(threeConflicts())
	s, _ = step(t, s, KeyChooseOurs, KeyTogglePreview)

	_, outcome := Transition(s, KeySave)
	assert.Equal(t, OutcomeSave, outcome)
}

// Cancel discards every decision made during the session.
func TestCancelDiscardsEverything(t *testing.T) {
	s := New(threeConflicts())
	s, _ = step(t, s, KeyChooseOurs, KeyChooseTheirs)
	require.Equal(t, 2, s.Resolutions.Len())

	s, outcome := Transition(s, KeyCancel)
	assert.Equal(t, OutcomeCancel, outcome)
	assert.Equal(t, 0, s.Resolutions.Len())
}

func TestCancelFromPreviewDiscardsEverything(t *testing.T) {
	s := New(threeConflicts())
	s, _ = step(t, s, KeyChooseOurs, KeyTogglePreview)

	s, outcome := Transition(s, KeyCancel)
	assert.Equal(t, OutcomeCancel, outcome)
	assert.Equal(t, 0, s.Resolutions.Len())
}

func TestApplyCustom(t *testing.T) {
	s := New(threeConflicts())
	s = ApplyCustom(s, []string{"hand merged"})

	r, ok := s.Resolutions.Get(0)
	require.True(t, ok)
	assert.Equal(t, resolve.Custom, r.Choice)
	assert.Equal(t, []string{"hand merged"}, r.CustomLines)
	assert.Equal(t, 1, s.Current)
}

func TestEmptySessionIsInert(t *testing.T) {
	s := New(nil)
	s, outcome := step(t, s, KeyNext, KeyPrev, KeyLast, KeyChooseOurs, KeyChooseSkip)
	assert.Equal(t, OutcomeNone, outcome)
	assert.Equal(t, 0, s.Current)
	assert.Equal(t, 0, s.Resolutions.Len())
}
