package toolkit

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Survey summarizes what a toolkit tree (source or installed target)
// contains, per component category.
type Survey struct {
	Skills   int
	Commands int
	Agents   int
	HasHooks bool
	HasBase  bool
}

// Total returns the number of markdown assets across all categories.
func (s Survey) Total() int {
	return s.Skills + s.Commands + s.Agents
}

// Take walks root using the manifest layout and counts what is present.
// Missing category directories count as zero; only an unreadable root is an
// error.
func Take(root string, m *Manifest) (Survey, error) {
	if _, err := os.Stat(root); err != nil {
		return Survey{}, fmt.Errorf("reading %s: %w", root, err)
	}

	var s Survey
	var err error

	if s.Skills, err = countMarkdown(filepath.Join(root, m.Components.SkillsDir)); err != nil {
		return Survey{}, err
	}
	if s.Commands, err = countMarkdown(filepath.Join(root, m.Components.CommandsDir)); err != nil {
		return Survey{}, err
	}
	if s.Agents, err = countMarkdown(filepath.Join(root, m.Components.AgentsDir)); err != nil {
		return Survey{}, err
	}

	s.HasHooks = fileExists(filepath.Join(root, m.Components.HooksFile))
	s.HasBase = fileExists(filepath.Join(root, m.Components.MemoryFile))

	return s, nil
}

// countMarkdown counts .md files under dir, recursively. A missing dir is
// zero, not an error.
func countMarkdown(dir string) (int, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("reading %s: %w", dir, err)
	}
	if !info.IsDir() {
		return 0, nil
	}

	count := 0
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".md") {
			count++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("walking %s: %w", dir, err)
	}

	return count, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
