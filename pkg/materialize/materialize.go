// Package materialize copies toolkit files and directory trees into the
// target configuration directory.
//
// Conflict handling is policy-driven: callers pass a ConflictPolicy
// (overwrite, skip, or prompt) and, for the prompt policy, a Prompter that
// asks the user. Keeping terminal I/O behind the Prompter interface lets the
// copy logic run non-interactively under a fixed policy in tests and in
// scripted installs.
package materialize

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// ConflictPolicy decides what happens when a destination already exists.
type ConflictPolicy string

const (
	// Overwrite replaces the existing destination without asking.
	Overwrite ConflictPolicy = "overwrite"

	// Skip leaves the existing destination untouched.
	Skip ConflictPolicy = "skip"

	// Prompt asks the Prompter before overwriting. Declining skips.
	Prompt ConflictPolicy = "prompt"
)

// ParseConflictPolicy validates a user-supplied policy name.
func ParseConflictPolicy(s string) (ConflictPolicy, error) {
	switch ConflictPolicy(s) {
	case Overwrite, Skip, Prompt:
		return ConflictPolicy(s), nil
	default:
		return "", fmt.Errorf("invalid conflict policy %q (want overwrite, skip, or prompt)", s)
	}
}

// Prompter asks the user a yes/no question. Implementations decide how; the
// terminal prompter in pkg/cliui reads a single confirmation line with "no"
// as the default on empty input.
type Prompter interface {
	Confirm(message string) (bool, error)
}

// Action reports what a copy operation did.
type Action string

const (
	Installed Action = "installed"
	Skipped   Action = "skipped"
)

// Materializer performs policy-aware copies.
type Materializer struct {
	policy   ConflictPolicy
	prompter Prompter
}

// New creates a Materializer. prompter may be nil unless policy is Prompt;
// with a nil prompter the Prompt policy degrades to Skip.
func New(policy ConflictPolicy, prompter Prompter) *Materializer {
	return &Materializer{policy: policy, prompter: prompter}
}

// EnsureDir creates path and any missing ancestors. Idempotent.
func (m *Materializer) EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", path, err)
	}
	return nil
}

// CopyFile copies a single file to dst. If dst exists the conflict policy
// applies; a skipped copy is not an error.
func (m *Materializer) CopyFile(src, dst string) (Action, error) {
	if _, err := os.Stat(dst); err == nil {
		proceed, err := m.resolveConflict(dst)
		if err != nil {
			return Skipped, err
		}
		if !proceed {
			return Skipped, nil
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return Skipped, fmt.Errorf("checking destination %s: %w", dst, err)
	}

	if err := m.EnsureDir(filepath.Dir(dst)); err != nil {
		return Skipped, err
	}

	if err := copyContents(src, dst); err != nil {
		return Skipped, err
	}

	return Installed, nil
}

// CopyTree copies the directory src into dstParent as
// dstParent/basename(src). The conflict policy applies to the destination
// subtree as a whole: overwriting replaces the entire subtree, not a
// per-file merge.
func (m *Materializer) CopyTree(src, dstParent string) (Action, error) {
	info, err := os.Stat(src)
	if err != nil {
		return Skipped, fmt.Errorf("reading source %s: %w", src, err)
	}
	if !info.IsDir() {
		return Skipped, fmt.Errorf("source %s is not a directory", src)
	}

	dst := filepath.Join(dstParent, filepath.Base(src))

	if _, err := os.Stat(dst); err == nil {
		proceed, err := m.resolveConflict(dst)
		if err != nil {
			return Skipped, err
		}
		if !proceed {
			return Skipped, nil
		}
		if err := os.RemoveAll(dst); err != nil {
			return Skipped, fmt.Errorf("removing existing %s: %w", dst, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return Skipped, fmt.Errorf("checking destination %s: %w", dst, err)
	}

	err = filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		return copyContents(path, target)
	})
	if err != nil {
		return Skipped, fmt.Errorf("copying tree %s: %w", src, err)
	}

	return Installed, nil
}

// resolveConflict applies the policy for an existing destination.
func (m *Materializer) resolveConflict(dst string) (bool, error) {
	switch m.policy {
	case Overwrite:
		return true, nil
	case Skip:
		return false, nil
	case Prompt:
		if m.prompter == nil {
			return false, nil
		}
		return m.prompter.Confirm(fmt.Sprintf("%s exists, overwrite?", dst))
	default:
		return false, fmt.Errorf("unknown conflict policy %q", m.policy)
	}
}

func copyContents(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copying %s: %w", src, err)
	}

	return out.Close()
}
