package gitutil

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// MergeFileDiff3 runs git's canonical three-way merge over the given stage
// files and returns a diff3-style merge view, i.e. conflict blocks that
// include the base section.
//
// Exit code 0 means a clean merge. A positive exit code is the conflict
// count and still produces usable output; negative codes are real failures.
func MergeFileDiff3(ctx context.Context, oursPath, basePath, theirsPath string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "git", "merge-file", "--diff3", "-p", oursPath, basePath, theirsPath)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return stdout.Bytes(), nil
	}

	var ee *exec.ExitError
	if errors.As(err, &ee) && ee.ExitCode() > 0 {
		return stdout.Bytes(), nil
	}

	msg := stderr.String()
	if msg == "" {
		msg = err.Error()
	}
	return nil, fmt.Errorf("git merge-file failed: %s", msg)
}

// Diff3View rebuilds the conflict-marked content of a conflicted file from
// its index stages, giving every conflict block a base section. The stages
// are materialized as temp files for git merge-file and removed afterwards.
func Diff3View(ctx context.Context, repoRoot, path string) ([]byte, error) {
	base, err := ShowStage(ctx, repoRoot, 1, path)
	if err != nil {
		return nil, fmt.Errorf("missing base stage for %s: %w", path, err)
	}
	ours, err := ShowStage(ctx, repoRoot, 2, path)
	if err != nil {
		return nil, fmt.Errorf("missing ours stage for %s: %w", path, err)
	}
	theirs, err := ShowStage(ctx, repoRoot, 3, path)
	if err != nil {
		return nil, fmt.Errorf("missing theirs stage for %s: %w", path, err)
	}

	oursPath, err := writeTemp("bpvc-ours-*", ours)
	if err != nil {
		return nil, err
	}
	defer os.Remove(oursPath)

	basePath, err := writeTemp("bpvc-base-*", base)
	if err != nil {
		return nil, err
	}
	defer os.Remove(basePath)

	theirsPath, err := writeTemp("bpvc-theirs-*", theirs)
	if err != nil {
		return nil, err
	}
	defer os.Remove(theirsPath)

	return MergeFileDiff3(ctx, oursPath, basePath, theirsPath)
}

func writeTemp(pattern string, data []byte) (string, error) {
	f, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	name := f.Name()
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(name)
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(name)
		return "", fmt.Errorf("close temp file: %w", err)
	}
	return name, nil
}
