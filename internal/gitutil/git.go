// Package gitutil wraps the external version-control commands bpvc depends
// on: discovering conflicted files and reading merge stages. Any VCS that
// can answer "which paths are unmerged" could replace this package.
package gitutil

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// RepoRoot returns the repository root for the given working directory.
func RepoRoot(ctx context.Context, cwd string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", "rev-parse", "--show-toplevel")
	cmd.Dir = cwd
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git rev-parse --show-toplevel failed: %w", err)
	}
	root := strings.TrimSpace(string(output))
	if root == "" {
		return "", fmt.Errorf("git rev-parse returned empty repo root")
	}
	return root, nil
}

// UnmergedFiles returns repo-relative paths of files with unresolved
// conflicts, one per line of git's unmerged diff filter.
func UnmergedFiles(ctx context.Context, repoRoot string) ([]string, error) {
	cmd := exec.CommandContext(ctx, "git", "diff", "--name-only", "--diff-filter=U")
	cmd.Dir = repoRoot
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("git diff --name-only --diff-filter=U failed: %w", err)
	}

	var paths []string
	for _, line := range strings.Split(string(output), "\n") {
		p := strings.TrimSpace(line)
		if p == "" {
			continue
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// ShowStage reads a conflicted file's content from the index stage
// (1=base, 2=ours, 3=theirs).
func ShowStage(ctx context.Context, repoRoot string, stage int, path string) ([]byte, error) {
	ref := fmt.Sprintf(":%d:%s", stage, path)
	cmd := exec.CommandContext(ctx, "git", "show", ref)
	cmd.Dir = repoRoot
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("git show %s failed: %w", ref, err)
	}
	return output, nil
}
