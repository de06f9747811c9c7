// Package installer orchestrates a toolkit install run: validate the source
// tree, resolve the target directory, materialize each component category,
// merge the hook configuration into settings.json, verify what landed, and
// record a receipt plus an uninstall script.
//
// Every step produces an explicit StepResult. A failed step never aborts the
// steps that do not depend on it; the final Report carries all outcomes and
// the run as a whole fails iff any step failed.
package installer

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/papercomputeco/satchel/pkg/dotdir"
	"github.com/papercomputeco/satchel/pkg/hookcfg"
	"github.com/papercomputeco/satchel/pkg/logger"
	"github.com/papercomputeco/satchel/pkg/materialize"
	"github.com/papercomputeco/satchel/pkg/toolkit"
	"github.com/papercomputeco/satchel/pkg/uninstall"
)

// Outcome classifies what a single step did.
type Outcome string

const (
	// OK means the step completed and changed or confirmed something.
	OK Outcome = "ok"

	// Skipped means the step had nothing to do. Not a problem.
	Skipped Outcome = "skipped"

	// Warned means the step completed in a degraded way worth surfacing.
	Warned Outcome = "warned"

	// Failed means the step did not complete.
	Failed Outcome = "failed"
)

// Step names, in run order.
const (
	StepValidate  = "validate source"
	StepResolve   = "resolve target"
	StepSkills    = "skills"
	StepCommands  = "commands"
	StepAgents    = "agents"
	StepHooks     = "hooks"
	StepBase      = "base config"
	StepVerify    = "verify"
	StepReceipt   = "receipt"
	StepUninstall = "uninstall script"
)

// StepResult is the outcome of one orchestrated step.
type StepResult struct {
	Name    string
	Outcome Outcome
	Detail  string
	Err     error
}

// Report aggregates the results of a run.
type Report struct {
	TargetDir string
	Steps     []StepResult
	Survey    toolkit.Survey
	DryRun    bool
}

// Failed reports whether any step failed.
func (r *Report) Failed() bool {
	for _, s := range r.Steps {
		if s.Outcome == Failed {
			return true
		}
	}
	return false
}

// Warnings returns the number of warned steps.
func (r *Report) Warnings() int {
	n := 0
	for _, s := range r.Steps {
		if s.Outcome == Warned {
			n++
		}
	}
	return n
}

func (r *Report) add(name string, outcome Outcome, detail string, err error) {
	r.Steps = append(r.Steps, StepResult{Name: name, Outcome: outcome, Detail: detail, Err: err})
}

// Options configure a run.
type Options struct {
	// SourceDir is the toolkit source tree root.
	SourceDir string

	// TargetDir overrides the destination directory. Empty resolves the
	// usual way: local ./.claude, then ~/.claude.
	TargetDir string

	// Policy decides what happens when a destination already exists.
	Policy materialize.ConflictPolicy

	// Prompter is consulted under the prompt policy. May be nil, which
	// degrades prompting to skipping.
	Prompter materialize.Prompter

	// DryRun reports what a run would do, including validating the hook
	// configuration and its prompt references, without touching the
	// target directory.
	DryRun bool

	Logger *slog.Logger
}

// Installer runs the install sequence.
type Installer struct {
	opts Options
	ddm  *dotdir.Manager
	mat  *materialize.Materializer
	log  *slog.Logger
}

func New(opts Options) *Installer {
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	if opts.Policy == "" {
		opts.Policy = materialize.Skip
	}

	return &Installer{
		opts: opts,
		ddm:  dotdir.NewManager(),
		mat:  materialize.New(opts.Policy, opts.Prompter),
		log:  opts.Logger,
	}
}

// Run executes the install sequence and returns the report. The returned
// error is non-nil only when a precondition failed and nothing was installed;
// per-step failures after that point are reported, not returned.
func (i *Installer) Run() (*Report, error) {
	report := &Report{DryRun: i.opts.DryRun}

	manifest, err := toolkit.LoadManifest(i.opts.SourceDir)
	if err != nil {
		report.add(StepValidate, Failed, "", err)
		return report, err
	}

	source, err := toolkit.Take(i.opts.SourceDir, manifest)
	if err != nil {
		report.add(StepValidate, Failed, "", err)
		return report, err
	}

	if source.Total() == 0 && !source.HasHooks && !source.HasBase {
		err := fmt.Errorf("nothing to install in %s", i.opts.SourceDir)
		report.add(StepValidate, Failed, "", err)
		return report, err
	}
	report.add(StepValidate, OK, describeSurvey(source), nil)

	target, err := i.ddm.Target(i.opts.TargetDir)
	if err != nil {
		report.add(StepResolve, Failed, "", err)
		return report, err
	}
	report.TargetDir = target
	report.add(StepResolve, OK, target, nil)

	i.log.Debug("install run", "source", i.opts.SourceDir, "target", target, "policy", string(i.opts.Policy), "dry_run", i.opts.DryRun)

	if i.opts.DryRun {
		i.plan(report, manifest, source)
		return report, nil
	}

	counts := map[string]int{}
	var files []string

	i.installTree(report, StepSkills, filepath.Join(i.opts.SourceDir, manifest.Components.SkillsDir), target, counts, &files)
	i.installTree(report, StepCommands, filepath.Join(i.opts.SourceDir, manifest.Components.CommandsDir), target, counts, &files)
	i.installTree(report, StepAgents, filepath.Join(i.opts.SourceDir, manifest.Components.AgentsDir), target, counts, &files)

	i.mergeHooks(report, manifest, target, counts)
	i.installBase(report, manifest, target, counts, &files)

	i.verify(report, manifest, source, target)

	receipt := i.saveReceipt(report, target, counts, files)
	if receipt != nil {
		i.emitUninstallScript(report, receipt, target, manifest.Uninstall.ScriptName)
	}

	return report, nil
}

// plan records what a real run would do. The hook configuration is fully
// validated, prompt references included, since inlining reads but never
// writes.
func (i *Installer) plan(report *Report, manifest *toolkit.Manifest, source toolkit.Survey) {
	planTree := func(name string, count int) {
		if count == 0 {
			report.add(name, Skipped, "not present in source", nil)
			return
		}
		report.add(name, OK, fmt.Sprintf("would install %d", count), nil)
	}

	planTree(StepSkills, source.Skills)
	planTree(StepCommands, source.Commands)
	planTree(StepAgents, source.Agents)

	if !source.HasHooks {
		report.add(StepHooks, Warned, "no hook configuration in source", nil)
	} else {
		hooksPath := filepath.Join(i.opts.SourceDir, manifest.Components.HooksFile)
		if _, err := hookcfg.Inline(hooksPath); err != nil {
			report.add(StepHooks, Failed, "", err)
		} else {
			report.add(StepHooks, OK, "hook configuration valid, would merge into settings.json", nil)
		}
	}

	if source.HasBase {
		report.add(StepBase, OK, fmt.Sprintf("would install %s", filepath.Base(manifest.Components.MemoryFile)), nil)
	} else {
		report.add(StepBase, Skipped, "not present in source", nil)
	}
}

// installTree copies one component directory into the target. A category
// missing from the source is a skip; a copy declined by the conflict policy
// is a skip; only an actual copy error fails the step.
func (i *Installer) installTree(report *Report, name, srcDir, target string, counts map[string]int, files *[]string) {
	if _, err := os.Stat(srcDir); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			report.add(name, Skipped, "not present in source", nil)
			return
		}
		report.add(name, Failed, "", err)
		return
	}

	action, err := i.mat.CopyTree(srcDir, target)
	if err != nil {
		report.add(name, Failed, "", err)
		return
	}
	if action == materialize.Skipped {
		report.add(name, Skipped, "existing files kept", nil)
		return
	}

	dst := filepath.Join(target, filepath.Base(srcDir))
	n, err := collectFiles(dst, target, files)
	if err != nil {
		report.add(name, Warned, "installed, but recording the file list failed", err)
		return
	}

	counts[name] = n
	report.add(name, OK, fmt.Sprintf("%d files", n), nil)
}

// mergeHooks inlines the hook configuration and merges it into the target's
// settings.json. A source tree without a hook configuration warns; a merge
// failure fails this step only and leaves settings.json untouched.
func (i *Installer) mergeHooks(report *Report, manifest *toolkit.Manifest, target string, counts map[string]int) {
	hooksPath := filepath.Join(i.opts.SourceDir, manifest.Components.HooksFile)
	if _, err := os.Stat(hooksPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			report.add(StepHooks, Warned, "no hook configuration in source", nil)
			return
		}
		report.add(StepHooks, Failed, "", err)
		return
	}

	settingsPath, err := i.ddm.SettingsPath(target)
	if err != nil {
		report.add(StepHooks, Failed, "", err)
		return
	}

	if err := hookcfg.Install(hooksPath, settingsPath); err != nil {
		report.add(StepHooks, Failed, "", err)
		return
	}

	counts["hooks"] = 1
	report.add(StepHooks, OK, "merged into settings.json", nil)
}

func (i *Installer) installBase(report *Report, manifest *toolkit.Manifest, target string, counts map[string]int, files *[]string) {
	srcFile := filepath.Join(i.opts.SourceDir, manifest.Components.MemoryFile)
	if _, err := os.Stat(srcFile); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			report.add(StepBase, Skipped, "not present in source", nil)
			return
		}
		report.add(StepBase, Failed, "", err)
		return
	}

	name := filepath.Base(manifest.Components.MemoryFile)
	action, err := i.mat.CopyFile(srcFile, filepath.Join(target, name))
	if err != nil {
		report.add(StepBase, Failed, "", err)
		return
	}
	if action == materialize.Skipped {
		report.add(StepBase, Skipped, "existing file kept", nil)
		return
	}

	counts["config"] = 1
	*files = append(*files, name)
	report.add(StepBase, OK, name, nil)
}

// verify surveys the target after the copy steps and records what is
// actually on disk.
func (i *Installer) verify(report *Report, manifest *toolkit.Manifest, source toolkit.Survey, target string) {
	installed, err := toolkit.Take(target, targetLayout(manifest))
	if err != nil {
		report.add(StepVerify, Failed, "", err)
		return
	}
	report.Survey = installed

	if installed.Total() == 0 && source.Total() > 0 {
		report.add(StepVerify, Warned, "no assets present in target after install", nil)
		return
	}

	report.add(StepVerify, OK, describeSurvey(installed), nil)
}

func (i *Installer) saveReceipt(report *Report, target string, counts map[string]int, files []string) *dotdir.Receipt {
	absSource, err := filepath.Abs(i.opts.SourceDir)
	if err != nil {
		absSource = i.opts.SourceDir
	}

	// A rerun that skipped existing files must not forget them: carry
	// forward prior-receipt entries that are still on disk so the receipt
	// and the uninstall script keep covering earlier installs.
	if prior, err := i.ddm.LoadReceipt(target); err == nil && prior != nil {
		seen := make(map[string]struct{}, len(files))
		for _, f := range files {
			seen[f] = struct{}{}
		}
		carried := map[string]int{}
		for _, f := range prior.Files {
			if _, ok := seen[f]; ok {
				continue
			}
			if _, err := os.Stat(filepath.Join(target, f)); err != nil {
				continue
			}
			seen[f] = struct{}{}
			files = append(files, f)
			carried[categoryOf(f)]++
		}
		for category, n := range carried {
			if _, ok := counts[category]; !ok {
				counts[category] = n
			}
		}
	}

	receipt := &dotdir.Receipt{
		InstalledAt: time.Now(),
		Source:      absSource,
		Files:       files,
		Counts:      counts,
	}

	if err := i.ddm.SaveReceipt(receipt, target); err != nil {
		report.add(StepReceipt, Failed, "", err)
		return nil
	}

	report.add(StepReceipt, OK, fmt.Sprintf("%d files recorded", len(files)), nil)
	return receipt
}

func (i *Installer) emitUninstallScript(report *Report, receipt *dotdir.Receipt, target, scriptName string) {
	path, err := uninstall.WriteScript(receipt, target, scriptName)
	if err != nil {
		report.add(StepUninstall, Warned, "", err)
		return
	}
	report.add(StepUninstall, OK, path, nil)
}

// targetLayout maps a source manifest onto the layout the install produces:
// component trees land under their base names, the base config file lands
// under its base name, and hook state lives in settings.json.
func targetLayout(m *toolkit.Manifest) *toolkit.Manifest {
	t := toolkit.NewDefaultManifest()
	t.Components.SkillsDir = filepath.Base(m.Components.SkillsDir)
	t.Components.CommandsDir = filepath.Base(m.Components.CommandsDir)
	t.Components.AgentsDir = filepath.Base(m.Components.AgentsDir)
	t.Components.MemoryFile = filepath.Base(m.Components.MemoryFile)
	t.Components.HooksFile = "settings.json"
	return t
}

// categoryOf buckets a receipt-relative path by its top-level directory.
// Files at the target root are the base config.
func categoryOf(rel string) string {
	dir, _, ok := strings.Cut(rel, string(filepath.Separator))
	if !ok {
		return "config"
	}
	return dir
}

// collectFiles appends every file under dst, relative to target, to files.
// Returns the number of files appended.
func collectFiles(dst, target string, files *[]string) (int, error) {
	n := 0
	err := filepath.WalkDir(dst, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(target, path)
		if err != nil {
			return err
		}

		*files = append(*files, rel)
		n++
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("walking %s: %w", dst, err)
	}

	return n, nil
}

func describeSurvey(s toolkit.Survey) string {
	return fmt.Sprintf("%d skills, %d commands, %d agents", s.Skills, s.Commands, s.Agents)
}
