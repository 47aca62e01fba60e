package run

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/olekukonko/tablewriter"

	"github.com/blueprintvc/bpvc/internal/logger"
)

// selectFiles lets the user narrow a discovered batch down to the files
// they actually want to resolve now. Everything starts selected.
func selectFiles(paths []string) ([]string, error) {
	var selected []string
	options := make([]huh.Option[string], 0, len(paths))
	for _, p := range paths {
		options = append(options, huh.NewOption(p, p).Selected(true))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Select files to resolve:").
				Options(options...).
				Value(&selected),
		),
	)
	if err := form.Run(); err != nil {
		return nil, err
	}
	return selected, nil
}

// confirmOverwrite asks before the reconstructed content replaces the
// conflicted file on disk.
func confirmOverwrite(path string) (bool, error) {
	ok := true
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Write resolved content to %s?", path)).
				Value(&ok),
		),
	)
	if err := form.Run(); err != nil {
		return false, err
	}
	return ok, nil
}

// showResult prints the reconstructed file content so the user sees exactly
// what will be written.
func showResult(path, content string) {
	logger.Info("--- %s ---", path)
	fmt.Println(content)
}

// printSummary renders the per-file outcome table after a batch.
func printSummary(reports []fileReport) {
	if len(reports) == 0 {
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"File", "Conflicts", "Resolved", "Status"})
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	for _, rep := range reports {
		table.Append([]string{
			rep.path,
			fmt.Sprintf("%d", rep.conflicts),
			fmt.Sprintf("%d", rep.resolved),
			rep.status,
		})
	}
	table.Render()
}
