package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blueprintvc/bpvc/internal/conflict"
	"github.com/blueprintvc/bpvc/internal/logger"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>...",
		Short: "Exit non-zero if files still contain conflict markers",
		Long: `Check verifies that the given files contain no valid conflict blocks.
Intended for scripts and CI hooks; exits 1 when conflicts remain.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			unresolved := 0
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					// An unreadable file counts against the check, but the
					// remaining files still get scanned and reported.
					logger.Error("%s: %v", path, err)
					unresolved++
					continue
				}
				if conflict.IsResolved(string(data)) {
					logger.Success("%s: resolved", path)
					continue
				}
				logger.Error("%s: conflicts remain", path)
				unresolved++
			}
			if unresolved > 0 {
				return fmt.Errorf("%w: %d of %d file(s)", ErrUnresolved, unresolved, len(args))
			}
			return nil
		},
	}
}
