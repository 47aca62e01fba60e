// Package run drives batch conflict resolution: discover conflicted files,
// run one interactive session per file, and write the reconstructed content
// back. Files are processed strictly one at a time; a failure in one file is
// reported and never aborts the rest of the batch.
package run

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/blueprintvc/bpvc/internal/conflict"
	"github.com/blueprintvc/bpvc/internal/gitutil"
	"github.com/blueprintvc/bpvc/internal/logger"
	"github.com/blueprintvc/bpvc/internal/resolve"
	"github.com/blueprintvc/bpvc/internal/tui"
)

// SessionFunc runs one interactive resolution session. Swappable so the
// orchestrator is testable without a terminal.
type SessionFunc func(ctx context.Context, path string, conflicts []conflict.Conflict) (*resolve.Set, bool, error)

// ConfirmFunc asks the user whether the reconstructed content may be
// written over path.
type ConfirmFunc func(path string) (bool, error)

// SelectFunc narrows a discovered batch down to the files to resolve now.
type SelectFunc func(paths []string) ([]string, error)

// Options configures one batch run.
type Options struct {
	// Paths are explicit files to resolve; when empty, conflicted files are
	// discovered via the repository's unmerged index entries.
	Paths []string

	// All selects a non-interactive resolution applied to every conflict
	// (ours|theirs|both|both-reversed|skip). Empty means interactive.
	All string

	ContextLines int
	Backup       bool
	AssumeYes    bool

	// Diff3 regenerates each file's conflict view from its merge stages so
	// every conflict block carries a base section.
	Diff3 bool

	Session SessionFunc // defaults to tui.Run
	Confirm ConfirmFunc // defaults to a terminal prompt
	Select  SelectFunc  // defaults to a terminal multi-select
}

type fileReport struct {
	path      string
	conflicts int
	resolved  int
	status    string
}

// Run processes every conflicted file and returns an error only when the
// batch could not start at all.
func Run(ctx context.Context, opts Options) error {
	if opts.Session == nil {
		opts.Session = tui.Run
	}
	if opts.Confirm == nil {
		opts.Confirm = confirmOverwrite
	}
	if opts.ContextLines <= 0 {
		opts.ContextLines = conflict.DefaultContextLines
	}
	if opts.All != "" {
		if _, err := resolve.ParseChoice(opts.All); err != nil {
			return err
		}
	}

	paths := opts.Paths
	if len(paths) == 0 {
		discovered, err := discoverConflicted(ctx)
		if err != nil {
			return err
		}
		paths = discovered
		logger.Debug("discovered %d conflicted file(s)", len(paths))
	}
	if len(paths) == 0 {
		logger.Info("No conflicted files found.")
		return nil
	}

	if len(paths) > 1 && opts.All == "" && !opts.AssumeYes {
		sel := opts.Select
		if sel == nil && isInteractiveTTY() {
			sel = selectFiles
		}
		if sel != nil {
			selected, err := sel(paths)
			if err != nil {
				logger.Warn("file selection failed (%v); resolving all %d files", err, len(paths))
			} else if len(selected) == 0 {
				// Deselecting everything means resolve nothing.
				logger.Info("No files selected.")
				return nil
			} else {
				paths = selected
			}
		}
	}

	reports := make([]fileReport, 0, len(paths))
	for _, path := range paths {
		rep, err := resolveFile(ctx, path, opts)
		if err != nil {
			logger.Error("%s: %v", path, err)
			rep = fileReport{path: path, status: "error"}
		}
		reports = append(reports, rep)
	}

	printSummary(reports)
	return nil
}

// discoverConflicted asks the VCS for unmerged paths under the current
// repository and returns them as absolute paths.
func discoverConflicted(ctx context.Context) ([]string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}
	root, err := gitutil.RepoRoot(ctx, cwd)
	if err != nil {
		return nil, err
	}
	rel, err := gitutil.UnmergedFiles(ctx, root)
	if err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(rel))
	for _, p := range rel {
		paths = append(paths, filepath.Join(root, p))
	}
	return paths, nil
}

// resolveFile runs the full per-file pipeline: read, parse, session,
// reconstruct, confirm, write back.
func resolveFile(ctx context.Context, path string, opts Options) (fileReport, error) {
	rep := fileReport{path: path}

	text, err := loadText(ctx, path, opts.Diff3)
	if err != nil {
		return rep, err
	}

	lines := conflict.SplitLines(text)
	conflicts, err := conflict.ParseLines(lines, opts.ContextLines)
	if err != nil {
		return rep, err
	}
	rep.conflicts = len(conflicts)
	logger.Debug("%s: %d conflict(s)", path, len(conflicts))
	if len(conflicts) == 0 {
		rep.status = "clean"
		return rep, nil
	}

	set, saved, err := collectResolutions(ctx, path, conflicts, opts)
	if err != nil {
		return rep, err
	}
	if !saved {
		rep.status = "cancelled"
		return rep, nil
	}
	rep.resolved = set.ResolvedCount()

	content := resolve.Render(resolve.Reconstruct(conflicts, set, resolve.FileSource(lines)))

	showResult(path, content)
	if !opts.AssumeYes {
		ok, err := opts.Confirm(path)
		if err != nil {
			return rep, fmt.Errorf("confirm write: %w", err)
		}
		if !ok {
			rep.status = "declined"
			return rep, nil
		}
	}

	if err := writeBack(path, content, opts.Backup); err != nil {
		return rep, err
	}

	if set.AllResolved() && !conflict.IsResolved(content) {
		return rep, fmt.Errorf("written output still contains conflict markers")
	}

	if set.AllResolved() {
		rep.status = "resolved"
	} else {
		logger.Warn("%s: conflict markers remain for skipped conflicts", path)
		rep.status = "partial"
	}
	return rep, nil
}

// loadText reads the conflict-marked content of path, either from disk or
// regenerated as a diff3 view from the merge stages.
func loadText(ctx context.Context, path string, diff3 bool) (string, error) {
	if diff3 {
		root, err := gitutil.RepoRoot(ctx, filepath.Dir(path))
		if err != nil {
			return "", err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return "", fmt.Errorf("relativize %s: %w", path, err)
		}
		data, err := gitutil.Diff3View(ctx, root, filepath.ToSlash(rel))
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%s is not valid UTF-8 text", path)
	}
	return string(data), nil
}

func collectResolutions(ctx context.Context, path string, conflicts []conflict.Conflict, opts Options) (*resolve.Set, bool, error) {
	if opts.All == "" {
		return opts.Session(ctx, path, conflicts)
	}

	choice, err := resolve.ParseChoice(opts.All)
	if err != nil {
		return nil, false, err
	}
	set := resolve.NewSet(len(conflicts))
	for i := range conflicts {
		if err := set.Put(resolve.Resolution{Index: i, Choice: choice}); err != nil {
			return nil, false, err
		}
	}
	return set, true, nil
}

// writeBack overwrites path with content, preserving the file mode and
// optionally keeping a backup of the conflicted original.
func writeBack(path, content string, backup bool) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	if backup {
		original, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s for backup: %w", path, err)
		}
		bak := path + ".bpvc.bak"
		if err := os.WriteFile(bak, original, info.Mode().Perm()); err != nil {
			return fmt.Errorf("write backup %s: %w", filepath.Base(bak), err)
		}
	}

	if err := os.WriteFile(path, []byte(content), info.Mode().Perm()); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func isInteractiveTTY() bool {
	return isTTY(os.Stdin) && isTTY(os.Stdout)
}

func isTTY(file *os.File) bool {
	info, err := file.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
