// Package commands wires the bpvc command-line interface.
package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/blueprintvc/bpvc/internal/config"
)

// ErrUnresolved is returned by commands whose job is to report that
// conflicts remain; callers map it to a distinct exit code.
var ErrUnresolved = errors.New("unresolved conflicts remain")

var (
	flagPlain bool
	flagDebug bool
)

// NewRootCmd builds the bpvc command tree.
func NewRootCmd(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bpvc",
		Short: "Version control tooling for building description files",
		Long: `bpvc manages building-description files under version control.

Its core is a three-way merge conflict resolver: it finds files with
conflict markers, walks you through each conflict in an interactive
terminal session, and writes the merged result back.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if flagPlain {
				cfg.Plain = true
			}
			if flagDebug {
				cfg.Debug = true
			}
			config.Global = cfg
			return nil
		},
	}

	cmd.PersistentFlags().BoolVar(&flagPlain, "plain", false, "disable colors and symbols in output")
	cmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")

	cmd.AddCommand(newResolveCmd())
	cmd.AddCommand(newCheckCmd())
	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newVersionCmd(version))

	return cmd
}
