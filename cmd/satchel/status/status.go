// Package statuscmder provides the status command for inspecting what is
// installed in the Claude configuration directory.
package statuscmder

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/satchel/pkg/cliui"
	"github.com/papercomputeco/satchel/pkg/dotdir"
	"github.com/papercomputeco/satchel/pkg/toolkit"
)

const statusLongDesc string = `Show what satchel has installed.

Reads the install receipt from the target directory (local .claude/ or
~/.claude/), displays per-category counts, and checks that every recorded
file is still present on disk.

If no receipt exists, nothing has been installed yet.

Examples:
  satchel status
  satchel status --target /path/to/.claude`

const statusShortDesc string = "Show installed toolkit state"

func NewStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: statusShortDesc,
		Long:  statusLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			target, err := cmd.Flags().GetString("target")
			if err != nil {
				return fmt.Errorf("could not get target flag: %w", err)
			}
			return runStatus(target)
		},
	}

	return cmd
}

func runStatus(overrideDir string) error {
	manager := dotdir.NewManager()

	target, err := manager.Target(overrideDir)
	if err != nil {
		return fmt.Errorf("resolving target: %w", err)
	}

	receipt, err := manager.LoadReceipt(target)
	if err != nil {
		return fmt.Errorf("loading install receipt: %w", err)
	}

	if receipt == nil {
		fmt.Printf("  %s Nothing installed in %s. Run: satchel install\n", cliui.DimStyle.Render("●"), target)
		return nil
	}

	fmt.Printf("\n  %s  %s\n", cliui.KeyStyle.Render("Target:   "), cliui.NameStyle.Render(target))
	fmt.Printf("  %s  %s\n", cliui.KeyStyle.Render("Source:   "), cliui.DimStyle.Render(receipt.Source))
	fmt.Printf("  %s  %s\n\n", cliui.KeyStyle.Render("Installed:"), cliui.DimStyle.Render(receipt.InstalledAt.Format("2006-01-02 15:04:05")))

	categories := make([]string, 0, len(receipt.Counts))
	for name := range receipt.Counts {
		categories = append(categories, name)
	}
	sort.Strings(categories)

	for _, name := range categories {
		fmt.Printf("  %s %s: %d\n", cliui.SuccessMark, name, receipt.Counts[name])
	}

	missing := missingFiles(target, receipt)
	if len(missing) > 0 {
		fmt.Printf("\n  %s %d recorded file(s) missing from disk:\n", cliui.WarnMark, len(missing))
		for _, file := range missing {
			fmt.Printf("    %s %s\n", cliui.DimStyle.Render("-"), file)
		}
	}

	survey, err := toolkit.Take(target, toolkit.NewDefaultManifest())
	if err == nil {
		fmt.Printf("\n  %s On disk: %d skills, %d commands, %d agents\n",
			cliui.DimStyle.Render("●"), survey.Skills, survey.Commands, survey.Agents)
	}

	fmt.Println()
	return nil
}

// missingFiles returns recorded files that no longer exist under target.
func missingFiles(target string, receipt *dotdir.Receipt) []string {
	var missing []string
	for _, file := range receipt.Files {
		if _, err := os.Stat(filepath.Join(target, file)); err != nil {
			missing = append(missing, file)
		}
	}
	return missing
}
