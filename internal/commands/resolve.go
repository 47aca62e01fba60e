package commands

import (
	"github.com/spf13/cobra"

	"github.com/blueprintvc/bpvc/internal/config"
	"github.com/blueprintvc/bpvc/internal/run"
)

func newResolveCmd() *cobra.Command {
	var (
		all    string
		backup bool
		yes    bool
		diff3  bool
	)

	cmd := &cobra.Command{
		Use:   "resolve [file...]",
		Short: "Resolve merge conflicts interactively",
		Long: `Resolve walks every conflicted file through an interactive session.

With no arguments, conflicted files are discovered from the repository's
unmerged index entries. Per-file failures are reported and the batch
continues with the next file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Global
			return run.Run(cmd.Context(), run.Options{
				Paths:        args,
				All:          all,
				ContextLines: cfg.ContextLines,
				Backup:       backup || cfg.Backup,
				AssumeYes:    yes || cfg.AssumeYes,
				Diff3:        diff3,
			})
		},
	}

	cmd.Flags().StringVar(&all, "all", "", "resolve every conflict non-interactively (ours|theirs|both|both-reversed|skip)")
	cmd.Flags().BoolVar(&backup, "backup", false, "keep the conflicted original as <file>.bpvc.bak")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "write results without asking for confirmation")
	cmd.Flags().BoolVar(&diff3, "diff3", false, "regenerate conflicts from merge stages so every conflict shows its base")

	return cmd
}
