// Package uninstallcmder provides the `satchel uninstall` CLI command, which
// regenerates the uninstall script from the current install receipt.
package uninstallcmder

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/satchel/pkg/cliui"
	"github.com/papercomputeco/satchel/pkg/dotdir"
	"github.com/papercomputeco/satchel/pkg/uninstall"
)

type uninstallCommander struct {
	script string
	target string
}

const uninstallLongDesc string = `Regenerate the uninstall script.

Rebuilds the uninstall shell script from the install receipt so it reflects
exactly what the last install run put into the target directory. The script
is not executed; run it yourself when you want the toolkit gone:

  sh ~/.claude/uninstall.sh

satchel never removes settings.json: the Claude runtime owns it.

Examples:
  satchel uninstall
  satchel uninstall --script remove-toolkit.sh`

const uninstallShortDesc string = "Regenerate the uninstall script"

func NewUninstallCmd() *cobra.Command {
	cmder := &uninstallCommander{}

	cmd := &cobra.Command{
		Use:   "uninstall",
		Short: uninstallShortDesc,
		Long:  uninstallLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cmder.target, err = cmd.Flags().GetString("target")
			if err != nil {
				return fmt.Errorf("could not get target flag: %w", err)
			}
			return cmder.run()
		},
	}

	cmd.Flags().StringVar(&cmder.script, "script", "uninstall.sh", "Name of the generated script")

	return cmd
}

func (c *uninstallCommander) run() error {
	manager := dotdir.NewManager()

	target, err := manager.Target(c.target)
	if err != nil {
		return fmt.Errorf("resolving target: %w", err)
	}

	receipt, err := manager.LoadReceipt(target)
	if err != nil {
		return fmt.Errorf("loading install receipt: %w", err)
	}
	if receipt == nil {
		fmt.Printf("  %s Nothing installed in %s, no script to generate\n", cliui.DimStyle.Render("●"), target)
		return nil
	}

	var path string
	if err := cliui.Step(os.Stdout, "Generating uninstall script", func() error {
		var stepErr error
		path, stepErr = uninstall.WriteScript(receipt, target, c.script)
		return stepErr
	}); err != nil {
		return err
	}

	fmt.Printf("  %s Wrote %s (%d files)\n", cliui.SuccessMark, path, len(receipt.Files))
	fmt.Printf("  %s Run it with: sh %s\n", cliui.DimStyle.Render("●"), path)
	return nil
}
