package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/blueprintvc/bpvc/internal/resolve"
	"github.com/blueprintvc/bpvc/internal/session"
)

// Rendering helpers receive a read-only session state snapshot and produce
// strings; they have no mutation authority over the session.

func renderHeader(path string, s session.State, width int) string {
	position := "no conflicts"
	if n := len(s.Conflicts); n > 0 {
		position = fmt.Sprintf("conflict %d/%d", s.Current+1, n)
	}
	progress := fmt.Sprintf("%d/%d resolved", s.Resolutions.ResolvedCount(), len(s.Conflicts))
	return headerStyle.Width(width).Render(fmt.Sprintf("%s — %s — %s", path, position, progress))
}

func renderStatus(s session.State) string {
	r, ok := s.Resolutions.Get(s.Current)
	if !ok {
		return statusUnresolvedStyle.Render("unresolved")
	}
	if r.Choice == resolve.Skip {
		return statusUnresolvedStyle.Render("skipped")
	}
	return statusResolvedStyle.Render(r.Choice.String())
}

func renderPanes(s session.State, width, height int) string {
	if len(s.Conflicts) == 0 {
		return "\n  No conflicts in this file.\n"
	}
	c := s.Conflicts[s.Current]

	paneCount := 2
	if s.ShowBase && c.HasBase() {
		paneCount = 3
	}
	paneWidth := width/paneCount - 4
	if paneWidth < 10 {
		paneWidth = 10
	}

	ours := oursPaneStyle.Width(paneWidth).Render(
		titleStyle.Render(paneTitle("OURS", c.Ours.Label)) + "\n" +
			paneBody(c.Ours.Lines, s.Scroll, height),
	)
	theirs := theirsPaneStyle.Width(paneWidth).Render(
		titleStyle.Render(paneTitle("THEIRS", c.Theirs.Label)) + "\n" +
			paneBody(c.Theirs.Lines, s.Scroll, height),
	)

	if paneCount == 3 {
		base := basePaneStyle.Width(paneWidth).Render(
			titleStyle.Render(paneTitle("BASE", c.Base.Label)) + "\n" +
				paneBody(c.Base.Lines, s.Scroll, height),
		)
		return lipgloss.JoinHorizontal(lipgloss.Top, ours, base, theirs)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, ours, theirs)
}

func renderContext(s session.State) string {
	if len(s.Conflicts) == 0 {
		return ""
	}
	c := s.Conflicts[s.Current]
	var b strings.Builder
	for _, line := range c.ContextBefore {
		b.WriteString(contextLineStyle.Render("  "+line) + "\n")
	}
	return b.String()
}

// paneTitle combines a fixed side name with the marker label, e.g.
// "OURS (HEAD)".
func paneTitle(side, label string) string {
	if label == "" {
		return side
	}
	return fmt.Sprintf("%s (%s)", side, label)
}

// paneBody windows lines by the session scroll offset. Scrolling past the
// end yields an empty body rather than an error.
func paneBody(lines []string, scroll, height int) string {
	if height < 1 {
		height = 1
	}
	if scroll >= len(lines) {
		return ""
	}
	end := scroll + height
	if end > len(lines) {
		end = len(lines)
	}
	return strings.Join(lines[scroll:end], "\n")
}

func renderFooter(s session.State, width int) string {
	var hints string
	switch s.Mode {
	case session.PreviewOverlay:
		hints = "j/k: scroll | r: close preview | w: save | q: cancel"
	case session.HelpOverlay:
		hints = "press any key to close help"
	default:
		hints = "n/p: conflict | g/G: first/last | j/k: scroll | o/t/b/B: choose | s: skip | e: edit | v: base | r: preview | ?: help | w: save | q: cancel"
	}
	return footerStyle.Width(width).Render(hints)
}

func renderHelp(width int) string {
	help := strings.TrimSpace(`
Navigation
  n / p       next / previous conflict
  g / G       first / last conflict
  j / k       scroll within the current conflict

Resolution
  o           keep ours
  t           keep theirs
  b           keep both (ours first)
  B           keep both (theirs first)
  s           skip (leave conflict markers in place)
  e           edit a custom resolution in $EDITOR

View
  v           toggle base (common ancestor) section
  r           toggle merged preview
  ?           this help

Session
  w           save all decisions and write the file
  q           cancel; discards every decision made this session
`)
	return helpPaneStyle.Width(width - 4).Render(help)
}
