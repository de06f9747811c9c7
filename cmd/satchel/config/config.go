// Package configcmder provides the config command for managing persistent
// satchel configuration stored in the target .claude/ directory.
package configcmder

import (
	"github.com/spf13/cobra"
)

const configLongDesc string = `Manage persistent satchel configuration.

Configuration is stored as config.toml in the target .claude/ directory and
provides default values for command flags. CLI flags always take precedence
over config file values; SATCHEL_* environment variables sit between the two.

Keys use dotted notation matching the TOML section structure:
  install.source, install.conflict,
  logging.debug, logging.format

Use subcommands to get, set, or list configuration values:
  satchel config set <key> <value>    Set a configuration value
  satchel config get <key>            Get a configuration value
  satchel config list                 List all configuration values

Examples:
  satchel config set install.conflict overwrite
  satchel config get install.conflict
  satchel config list`

const configShortDesc string = "Manage persistent satchel configuration"

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: configShortDesc,
		Long:  configLongDesc,
	}

	cmd.AddCommand(newSetCmd())
	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newListCmd())

	return cmd
}
