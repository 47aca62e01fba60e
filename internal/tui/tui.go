// Package tui is the terminal adapter for interactive conflict resolution.
// All decision logic lives in the session package; this package translates
// key events and draws state.
package tui

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/blueprintvc/bpvc/internal/conflict"
	"github.com/blueprintvc/bpvc/internal/resolve"
	"github.com/blueprintvc/bpvc/internal/session"
)

// Run executes one interactive resolution session over the given conflicts.
// It returns the accumulated resolution set and whether the user saved;
// after a cancel the returned set is empty.
func Run(ctx context.Context, path string, conflicts []conflict.Conflict) (*resolve.Set, bool, error) {
	m := newModel(path, conflicts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return nil, false, fmt.Errorf("resolution session failed: %w", err)
	}
	fm, ok := final.(model)
	if !ok {
		return nil, false, fmt.Errorf("internal: unexpected model type %T", final)
	}
	if fm.err != nil {
		return nil, false, fm.err
	}
	return fm.state.Resolutions, fm.saved, nil
}

type model struct {
	path  string
	state session.State

	preview  viewport.Model
	width    int
	height   int
	ready    bool
	saved    bool
	quitting bool
	editFile string
	err      error
}

func newModel(path string, conflicts []conflict.Conflict) model {
	return model{path: path, state: session.New(conflicts)}
}

func (m model) Init() tea.Cmd {
	return nil
}

type editorFinishedMsg struct {
	err error
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.preview = viewport.New(m.width-6, m.contentHeight())
		m.ready = true
		return m, nil

	case editorFinishedMsg:
		lines, err := m.finishEdit(msg.err)
		if err != nil {
			m.err = err
			m.quitting = true
			return m, tea.Quit
		}
		m.state = session.ApplyCustom(m.state, lines)
		return m, nil

	case tea.KeyMsg:
		if m.state.Mode == session.Navigating && msg.String() == "e" && len(m.state.Conflicts) > 0 {
			cmd := m.startEditor()
			return m, cmd
		}

		wasPreview := m.state.Mode == session.PreviewOverlay
		next, outcome := session.Transition(m.state, keyFor(msg))
		m.state = next

		switch outcome {
		case session.OutcomeSave:
			m.saved = true
			m.quitting = true
			return m, tea.Quit
		case session.OutcomeCancel:
			m.quitting = true
			return m, tea.Quit
		}

		if m.state.Mode == session.PreviewOverlay {
			if !wasPreview {
				m.preview.SetContent(previewContent(m.state))
			}
			m.preview.SetYOffset(m.state.Scroll)
		}
		return m, nil
	}

	return m, nil
}

func (m model) View() string {
	if !m.ready {
		return "\n  Initializing..."
	}
	if m.quitting {
		if m.err != nil {
			return fmt.Sprintf("\n  Error: %v\n", m.err)
		}
		if m.saved {
			return "\n  Applying resolutions...\n"
		}
		return "\n  Cancelled; no changes recorded.\n"
	}

	header := renderHeader(m.path, m.state, m.width)
	footer := renderFooter(m.state, m.width)

	var body string
	switch m.state.Mode {
	case session.HelpOverlay:
		body = renderHelp(m.width)
	case session.PreviewOverlay:
		body = previewPaneStyle.Width(m.width - 4).Render(
			titleStyle.Render("MERGED PREVIEW") + "\n" + m.preview.View(),
		)
	default:
		status := fmt.Sprintf("Status: %s", renderStatus(m.state))
		body = lipgloss.JoinVertical(lipgloss.Left,
			renderContext(m.state),
			renderPanes(m.state, m.width, m.contentHeight()),
			status,
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m model) contentHeight() int {
	h := m.height - 8 // header, footer, borders, status
	if h < 3 {
		h = 3
	}
	return h
}

// startEditor writes the current conflict's combined content to a temp file
// and hands it to $EDITOR; the edited result becomes a Custom resolution.
func (m *model) startEditor() tea.Cmd {
	c := m.state.Conflicts[m.state.Current]
	seed := append(append([]string{}, c.Ours.Lines...), c.Theirs.Lines...)

	f, err := os.CreateTemp("", "bpvc-edit-*")
	if err != nil {
		return func() tea.Msg { return editorFinishedMsg{err: fmt.Errorf("create edit file: %w", err)} }
	}
	content := ""
	for _, line := range seed {
		content += line + "\n"
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		os.Remove(f.Name())
		return func() tea.Msg { return editorFinishedMsg{err: fmt.Errorf("write edit file: %w", err)} }
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return func() tea.Msg { return editorFinishedMsg{err: fmt.Errorf("close edit file: %w", err)} }
	}
	m.editFile = f.Name()

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}
	cmd := exec.Command(editor, m.editFile)
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{err: err}
	})
}

// finishEdit reads back the edited temp file as custom resolution lines.
func (m *model) finishEdit(editorErr error) ([]string, error) {
	defer func() {
		if m.editFile != "" {
			os.Remove(m.editFile)
			m.editFile = ""
		}
	}()
	if editorErr != nil {
		return nil, fmt.Errorf("editor failed: %w", editorErr)
	}
	data, err := os.ReadFile(m.editFile)
	if err != nil {
		return nil, fmt.Errorf("read edited content: %w", err)
	}
	return trimEditorLines(conflict.SplitLines(string(data))), nil
}

// trimEditorLines drops the empty element a trailing newline produces; a
// newline at the end of the edit file is not an extra blank line.
func trimEditorLines(lines []string) []string {
	if n := len(lines); n > 0 && lines[n-1] == "" {
		return lines[:n-1]
	}
	return lines
}

func previewContent(s session.State) string {
	return resolve.Render(resolve.Reconstruct(s.Conflicts, s.Resolutions, resolve.SyntheticSource()))
}

// keyFor maps terminal key events onto the session's input alphabet.
func keyFor(msg tea.KeyMsg) session.Key {
	switch msg.String() {
	case "n", "right":
		return session.KeyNext
	case "p", "left":
		return session.KeyPrev
	case "g", "home":
		return session.KeyFirst
	case "G", "end":
		return session.KeyLast
	case "j", "down":
		return session.KeyScrollDown
	case "k", "up":
		return session.KeyScrollUp
	case "o":
		return session.KeyChooseOurs
	case "t":
		return session.KeyChooseTheirs
	case "b":
		return session.KeyChooseBoth
	case "B":
		return session.KeyChooseBothReversed
	case "s":
		return session.KeyChooseSkip
	case "v":
		return session.KeyToggleBase
	case "r":
		return session.KeyTogglePreview
	case "?":
		return session.KeyToggleHelp
	case "w":
		return session.KeySave
	case "q", "esc", "ctrl+c":
		return session.KeyCancel
	}
	return session.KeyNone
}
