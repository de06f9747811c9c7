// Package installcmder provides the `satchel install` CLI command: the
// orchestrated run that materializes the toolkit into the Claude
// configuration directory and merges hooks into settings.json.
package installcmder

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/papercomputeco/satchel/pkg/cliui"
	"github.com/papercomputeco/satchel/pkg/config"
	"github.com/papercomputeco/satchel/pkg/installer"
	"github.com/papercomputeco/satchel/pkg/logger"
	"github.com/papercomputeco/satchel/pkg/materialize"
)

type installCommander struct {
	source    string
	sourceSet bool
	target    string
	conflict  string
	dryRun    bool
	watch     bool
	debug     bool

	logger *slog.Logger
}

const installLongDesc string = `Install the toolkit into the Claude configuration directory.

Copies skills, commands, and agents from the source tree, inlines any
promptFile references in the hook configuration, and merges the result under
the hooks key of settings.json without touching its other keys. Records a
receipt and writes an uninstall script into the target directory.

The conflict policy decides what happens when a destination already exists:
overwrite replaces it, skip keeps it, prompt asks. With no terminal attached,
prompt degrades to skip.

Examples:
  satchel install
  satchel install --source ./toolkit --conflict overwrite
  satchel install --dry-run
  satchel install --watch`

const installShortDesc string = "Install the toolkit"

func NewInstallCmd() *cobra.Command {
	cmder := &installCommander{}

	cmd := &cobra.Command{
		Use:   "install",
		Short: installShortDesc,
		Long:  installLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %w", err)
			}

			cmder.target, err = cmd.Flags().GetString("target")
			if err != nil {
				return fmt.Errorf("could not get target flag: %w", err)
			}

			cmder.sourceSet = cmd.Flags().Changed("source")

			return cmder.run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&cmder.source, "source", "s", ".", "Toolkit source directory")
	cmd.Flags().StringVarP(&cmder.conflict, "conflict", "c", "", "Conflict policy: overwrite, skip, or prompt")
	cmd.Flags().BoolVar(&cmder.dryRun, "dry-run", false, "Preview the install without writing")
	cmd.Flags().BoolVarP(&cmder.watch, "watch", "w", false, "Reinstall whenever the source tree changes")

	return cmd
}

func (c *installCommander) run(ctx context.Context) error {
	// Layer SATCHEL_* env vars and config.toml under the flags.
	v, err := config.InitViper(c.target)
	if err != nil {
		return err
	}

	if !c.sourceSet {
		c.source = v.GetString("install.source")
	}
	c.debug = c.debug || v.GetBool("logging.debug")

	c.logger = newLogger(c.debug, v.GetString("logging.format"))

	policy, err := c.resolvePolicy(v)
	if err != nil {
		return err
	}

	var prompter materialize.Prompter
	if policy == materialize.Prompt {
		prompter = cliui.NewTerminalPrompter()
	}

	if c.dryRun {
		fmt.Printf("\n  %s Dry run: nothing will be written\n\n", cliui.DimStyle.Render("●"))
	}

	report := c.runOnce(policy, prompter)

	if c.watch {
		return c.watchLoop(ctx, policy, prompter)
	}

	if report.Failed() {
		return errors.New("install finished with failures")
	}
	return nil
}

// newLogger maps the configured logging.format onto a handler: pretty gets
// the charm handler, json gets structured output, text gets the plain handler.
func newLogger(debug bool, format string) *slog.Logger {
	opts := []logger.Option{logger.WithDebug(debug)}
	switch format {
	case "json":
		opts = append(opts, logger.WithJSON(true))
	case "text":
	default:
		opts = append(opts, logger.WithPretty(true))
	}
	return logger.New(opts...)
}

// resolvePolicy picks the conflict policy: the flag wins, then watch mode
// defaults to overwrite so reruns apply changes unattended, then the layered
// env/config value. Prompting without a terminal degrades to skip.
func (c *installCommander) resolvePolicy(v *viper.Viper) (materialize.ConflictPolicy, error) {
	name := c.conflict

	if name == "" && c.watch {
		name = string(materialize.Overwrite)
	}

	if name == "" {
		name = v.GetString("install.conflict")
	}

	policy, err := materialize.ParseConflictPolicy(name)
	if err != nil {
		return "", err
	}

	if policy == materialize.Prompt && !cliui.StdinIsTerminal() {
		policy = materialize.Skip
	}

	return policy, nil
}

func (c *installCommander) runOnce(policy materialize.ConflictPolicy, prompter materialize.Prompter) *installer.Report {
	report, _ := installer.New(installer.Options{
		SourceDir: c.source,
		TargetDir: c.target,
		Policy:    policy,
		Prompter:  prompter,
		DryRun:    c.dryRun,
		Logger:    c.logger,
	}).Run()

	c.render(report)
	return report
}

func (c *installCommander) render(report *installer.Report) {
	for _, step := range report.Steps {
		detail := step.Detail
		if step.Err != nil {
			detail = step.Err.Error()
		}

		fmt.Printf("  %s %s  %s\n",
			markFor(step.Outcome),
			cliui.NameStyle.Render(step.Name),
			cliui.DimStyle.Render(detail),
		)
	}

	fmt.Println()
	switch {
	case report.Failed():
		fmt.Printf("  %s Install finished with failures\n\n", cliui.FailMark)
	case report.Warnings() > 0:
		fmt.Printf("  %s Install finished with %d warning(s)\n\n", cliui.WarnMark, report.Warnings())
	default:
		fmt.Printf("  %s Install complete\n\n", cliui.SuccessMark)
	}
}

func markFor(outcome installer.Outcome) string {
	switch outcome {
	case installer.Failed:
		return cliui.FailMark
	case installer.Warned:
		return cliui.WarnMark
	case installer.Skipped:
		return cliui.SkipMark
	default:
		return cliui.SuccessMark
	}
}

// watchLoop reinstalls on source-tree changes, debounced so editor save
// bursts trigger one run.
func (c *installCommander) watchLoop(ctx context.Context, policy materialize.ConflictPolicy, prompter materialize.Prompter) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating source watcher: %w", err)
	}
	defer watcher.Close()

	if err := addRecursive(watcher, c.source); err != nil {
		return err
	}

	fmt.Printf("  %s Watching %s for changes\n", cliui.DimStyle.Render("●"), c.source)

	debounce := time.NewTimer(0)
	if !debounce.Stop() {
		<-debounce.C
	}

	for {
		select {
		case <-ctx.Done():
			fmt.Printf("\n  %s Stopped watching\n", cliui.DimStyle.Render("●"))
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = watcher.Add(event.Name)
				}
			}
			debounce.Reset(300 * time.Millisecond)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			c.logger.Warn("watch error", "err", err)

		case <-debounce.C:
			fmt.Printf("\n  %s Source changed, reinstalling\n\n", cliui.DimStyle.Render("●"))
			c.runOnce(policy, prompter)
		}
	}
}

func addRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
}
