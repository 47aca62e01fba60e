package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/blueprintvc/bpvc/internal/conflict"
	"github.com/blueprintvc/bpvc/internal/gitutil"
	"github.com/blueprintvc/bpvc/internal/logger"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List conflicted files in the current repository",
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("get working directory: %w", err)
			}
			root, err := gitutil.RepoRoot(cmd.Context(), cwd)
			if err != nil {
				return err
			}
			paths, err := gitutil.UnmergedFiles(cmd.Context(), root)
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				logger.Info("No conflicted files found.")
				return nil
			}

			for _, p := range paths {
				full := filepath.Join(root, p)
				size := "?"
				if info, err := os.Stat(full); err == nil {
					size = humanize.Bytes(uint64(info.Size()))
				}

				count := "unreadable"
				if data, err := os.ReadFile(full); err == nil {
					if conflicts, err := conflict.Parse(string(data)); err != nil {
						count = "malformed markers"
					} else {
						count = fmt.Sprintf("%d conflict(s)", len(conflicts))
					}
				}
				logger.Info("%s  %s  %s", p, size, count)
			}
			return nil
		},
	}
}
