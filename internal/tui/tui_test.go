package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blueprintvc/bpvc/internal/conflict"
	"github.com/blueprintvc/bpvc/internal/resolve"
	"github.com/blueprintvc/bpvc/internal/session"
)

func parseFixture(t *testing.T, text string) []conflict.Conflict {
	t.Helper()
	conflicts, err := conflict.Parse(text)
	require.NoError(t, err)
	return conflicts
}

func TestKeyFor(t *testing.T) {
	cases := []struct {
		key  string
		want session.Key
	}{
		{"n", session.KeyNext},
		{"right", session.KeyNext},
		{"p", session.KeyPrev},
		{"left", session.KeyPrev},
		{"g", session.KeyFirst},
		{"G", session.KeyLast},
		{"j", session.KeyScrollDown},
		{"k", session.KeyScrollUp},
		{"o", session.KeyChooseOurs},
		{"t", session.KeyChooseTheirs},
		{"b", session.KeyChooseBoth},
		{"B", session.KeyChooseBothReversed},
		{"s", session.KeyChooseSkip},
		{"v", session.KeyToggleBase},
		{"r", session.KeyTogglePreview},
		{"?", session.KeyToggleHelp},
		{"w", session.KeySave},
		{"q", session.KeyCancel},
		{"esc", session.KeyCancel},
		{"ctrl+c", session.KeyCancel},
		{"x", session.KeyNone},
	}

	for _, tc := range cases {
		var msg tea.KeyMsg
		switch tc.key {
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "ctrl+c":
			msg = tea.KeyMsg{Type: tea.KeyCtrlC}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		case "left":
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(tc.key)}
		}
		assert.Equal(t, tc.want, keyFor(msg), "key %q", tc.key)
	}
}

func TestPaneTitle(t *testing.T) {
	assert.Equal(t, "OURS (HEAD)", paneTitle("OURS", "HEAD"))
	assert.Equal(t, "BASE", paneTitle("BASE", ""))
}

func TestPaneBodyWindowing(t *testing.T) {
	lines := []string{"one", "two", "three", "four"}

	assert.Equal(t, "one\ntwo", paneBody(lines, 0, 2))
	assert.Equal(t, "two\nthree", paneBody(lines, 1, 2))
	assert.Equal(t, "four", paneBody(lines, 3, 2))
	assert.Equal(t, "", paneBody(lines, 4, 2))
	assert.Equal(t, "one", paneBody(lines, 0, 0))
}

func TestRenderHeader(t *testing.T) {
	conflicts := parseFixture(t, "a\n<<<<<<< HEAD\nmine\n=======\ntheirs\n>>>>>>> feature\nb\n")
	s := session.New(conflicts)

	header := renderHeader("floors/ground.bld", s, 120)
	assert.Contains(t, header, "floors/ground.bld")
	assert.Contains(t, header, "conflict 1/1")
	assert.Contains(t, header, "0/1 resolved")

	s.Resolutions.Put(resolve.Resolution{Index: 0, Choice: resolve.Ours})
	header = renderHeader("floors/ground.bld", s, 120)
	assert.Contains(t, header, "1/1 resolved")
}

func TestRenderHeaderEmpty(t *testing.T) {
	s := session.New(nil)
	assert.Contains(t, renderHeader("clean.bld", s, 80), "no conflicts")
}

func TestRenderStatus(t *testing.T) {
	conflicts := parseFixture(t, "a\n<<<<<<< HEAD\nmine\n=======\ntheirs\n>>>>>>> feature\nb\n")
	s := session.New(conflicts)

	assert.Contains(t, renderStatus(s), "unresolved")

	s.Resolutions.Put(resolve.Resolution{Index: 0, Choice: resolve.Skip})
	assert.Contains(t, renderStatus(s), "skipped")

	s.Resolutions.Put(resolve.Resolution{Index: 0, Choice: resolve.Theirs})
	assert.Contains(t, renderStatus(s), "theirs")
}

func TestPreviewContentUsesDecisions(t *testing.T) {
	conflicts := parseFixture(t, "a\n<<<<<<< HEAD\nmine\n=======\ntheirs\n>>>>>>> feature\nb\n")
	s := session.New(conflicts)

	// Undecided conflicts keep their markers in the preview.
	assert.Contains(t, previewContent(s), "<<<<<<< HEAD")

	s.Resolutions.Put(resolve.Resolution{Index: 0, Choice: resolve.Theirs})
	got := previewContent(s)
	assert.Equal(t, "a\ntheirs\nb", got)
}

func TestRenderPanesShowsBothSides(t *testing.T) {
	conflicts := parseFixture(t, "a\n<<<<<<< HEAD\nmine\n=======\ntheirs\n>>>>>>> feature\nb\n")
	s := session.New(conflicts)

	panes := renderPanes(s, 120, 10)
	assert.Contains(t, panes, "mine")
	assert.Contains(t, panes, "theirs")
	assert.NotContains(t, panes, "BASE")
}

func TestRenderPanesToggledBase(t *testing.T) {
	text := "a\n<<<<<<< HEAD\nmine\n||||||| base\nold\n=======\ntheirs\n>>>>>>> feature\nb\n"
	s := session.New(parseFixture(t, text))
	s.ShowBase = true

	panes := renderPanes(s, 150, 10)
	assert.Contains(t, panes, "BASE")
	assert.Contains(t, panes, "old")
}

func TestFinishEditDropsTrailingBlank(t *testing.T) {
	assert.Equal(t, []string{"custom line"}, trimEditorLines([]string{"custom line", ""}))
	assert.Equal(t, []string{"a", "", "b"}, trimEditorLines([]string{"a", "", "b"}))
	assert.Empty(t, trimEditorLines([]string{""}))
}

func TestRenderFooterPerMode(t *testing.T) {
	s := session.New(nil)
	assert.Contains(t, renderFooter(s, 200), "o/t/b/B")

	s.Mode = session.PreviewOverlay
	assert.Contains(t, renderFooter(s, 200), "close preview")

	s.Mode = session.HelpOverlay
	assert.True(t, strings.Contains(renderFooter(s, 200), "close help"))
}
