// Package satchelcmder
package satchelcmder

import (
	"github.com/spf13/cobra"

	configcmder "github.com/papercomputeco/satchel/cmd/satchel/config"
	installcmder "github.com/papercomputeco/satchel/cmd/satchel/install"
	listcmder "github.com/papercomputeco/satchel/cmd/satchel/list"
	statuscmder "github.com/papercomputeco/satchel/cmd/satchel/status"
	uninstallcmder "github.com/papercomputeco/satchel/cmd/satchel/uninstall"
	versioncmder "github.com/papercomputeco/satchel/cmd/version"
)

const satchelLongDesc string = `Satchel installs a personal toolkit of skills, slash commands, agent
definitions, and hooks into your Claude Code configuration directory.

Common workflows:
  satchel install              Install the toolkit in the current directory
  satchel install --dry-run    Preview what an install would do
  satchel status               Show what is installed
  satchel list                 List installed skills, commands, and agents`

const satchelShortDesc string = "Satchel - Prompt Toolkit Installer"

func NewSatchelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "satchel",
		Short: satchelShortDesc,
		Long:  satchelLongDesc,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().StringP("target", "t", "", "Override the Claude configuration directory")

	// Add subcommands
	cmd.AddCommand(installcmder.NewInstallCmd())
	cmd.AddCommand(statuscmder.NewStatusCmd())
	cmd.AddCommand(listcmder.NewListCmd())
	cmd.AddCommand(uninstallcmder.NewUninstallCmd())
	cmd.AddCommand(configcmder.NewConfigCmd())
	cmd.AddCommand(versioncmder.NewVersionCmd())

	return cmd
}
