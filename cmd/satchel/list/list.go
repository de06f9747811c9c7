// Package listcmder provides the `satchel list` CLI command.
package listcmder

import (
	"fmt"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/satchel/pkg/cliui"
	"github.com/papercomputeco/satchel/pkg/dotdir"
	"github.com/papercomputeco/satchel/pkg/toolkit"
	"github.com/papercomputeco/satchel/pkg/utils"
)

type listCommander struct {
	kind    string
	preview string
	target  string
}

const listLongDesc string = `List installed skills, commands, and agents.

Reads asset frontmatter from the target directory and prints a table of
name, kind, version, and description. Use --preview to render one asset's
markdown body in the terminal.

Examples:
  satchel list
  satchel list --kind skill
  satchel list --preview commit-helper`

const listShortDesc string = "List installed assets"

func NewListCmd() *cobra.Command {
	cmder := &listCommander{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: listShortDesc,
		Long:  listLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cmder.target, err = cmd.Flags().GetString("target")
			if err != nil {
				return fmt.Errorf("could not get target flag: %w", err)
			}
			return cmder.run(cmd)
		},
	}

	cmd.Flags().StringVar(&cmder.kind, "kind", "", "Filter by kind: skill, command, or agent")
	cmd.Flags().StringVarP(&cmder.preview, "preview", "p", "", "Render the named asset's markdown body")

	return cmd
}

func (c *listCommander) run(cmd *cobra.Command) error {
	if c.kind != "" && !toolkit.ValidAssetKind(c.kind) {
		return fmt.Errorf("unknown kind %q (want %s)", c.kind, strings.Join(toolkit.AssetKinds, ", "))
	}

	target, err := dotdir.NewManager().Target(c.target)
	if err != nil {
		return fmt.Errorf("resolving target: %w", err)
	}

	assets, err := collectAssets(target, c.kind)
	if err != nil {
		return err
	}

	if c.preview != "" {
		return c.runPreview(cmd, assets)
	}

	if len(assets) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No assets found. Install a toolkit with: satchel install")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tKIND\tVERSION\tDESCRIPTION")
	for _, asset := range assets {
		desc := strings.ReplaceAll(utils.Truncate(asset.Description, 60), "\n", " ")
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", asset.Name, asset.Kind, asset.Version, desc)
	}
	return w.Flush()
}

func (c *listCommander) runPreview(cmd *cobra.Command, assets []*toolkit.Asset) error {
	for _, asset := range assets {
		if asset.Name != c.preview {
			continue
		}

		rendered, err := cliui.RenderMarkdown(asset.Content)
		if err != nil {
			// Fall back to the raw body.
			rendered = asset.Content
		}
		fmt.Fprintln(cmd.OutOrStdout(), rendered)
		return nil
	}

	return fmt.Errorf("no asset named %q installed", c.preview)
}

// collectAssets gathers assets from the target's component directories.
// Skills may be flat .md files or <name>/SKILL.md directories.
func collectAssets(target, kind string) ([]*toolkit.Asset, error) {
	var assets []*toolkit.Asset

	if kind == "" || kind == "skill" {
		flat, err := toolkit.ListAssets(filepath.Join(target, "skills"), "skill")
		if err != nil {
			return nil, err
		}
		dirs, err := toolkit.ListSkillDirs(filepath.Join(target, "skills"))
		if err != nil {
			return nil, err
		}
		assets = append(assets, flat...)
		assets = append(assets, dirs...)
	}

	if kind == "" || kind == "command" {
		commands, err := toolkit.ListAssets(filepath.Join(target, "commands"), "command")
		if err != nil {
			return nil, err
		}
		assets = append(assets, commands...)
	}

	if kind == "" || kind == "agent" {
		agents, err := toolkit.ListAssets(filepath.Join(target, "agents"), "agent")
		if err != nil {
			return nil, err
		}
		assets = append(assets, agents...)
	}

	return assets, nil
}
