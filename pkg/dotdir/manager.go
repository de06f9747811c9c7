// Package dotdir manages resolution of the Claude configuration directory.
//
// The installer materializes toolkit components (skills, commands, agents,
// hooks, base config) into a single .claude/ directory. The install receipt
// records what a run put there so status checks and uninstall-script
// generation have an authoritative file list. The receipt is persisted as a
// JSON file inside the resolved directory.
package dotdir

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// dirName is the name of the Claude configuration directory.
	dirName = ".claude"

	// settingsFile is the runtime-owned settings document inside the
	// configuration directory. The installer only ever touches its
	// reserved hooks key.
	settingsFile = "settings.json"
)

type Manager struct{}

func NewManager() *Manager {
	return &Manager{}
}

// Target returns the target absolute path to a .claude/ directory.
// Order of precedence is as follows:
//  1. Provided override
//  2. Local ./.claude/ dir
//  3. Home ~/.claude/ dir
//  4. If none found, attempt to create ~/.claude/ dir
func (m *Manager) Target(overrideDir string) (string, error) {
	var dir string

	switch {
	case overrideDir != "":
		dir = overrideDir

	case m.localDirExists():
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getting current directory: %w", err)
		}
		dir = filepath.Join(cwd, dirName)

	default:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting home directory: %w", err)
		}
		dir = filepath.Join(home, dirName)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating claude directory %s: %w", dir, err)
	}

	return filepath.Abs(dir)
}

// SettingsPath resolves the settings.json path inside the target directory.
// If overrideDir is non-empty, it is used instead of the default resolution.
func (m *Manager) SettingsPath(overrideDir string) (string, error) {
	dir, err := m.Target(overrideDir)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, settingsFile), nil
}

// localDirExists checks whether a .claude/ directory exists in the current
// working directory.
func (m *Manager) localDirExists() bool {
	cwd, err := os.Getwd()
	if err != nil {
		return false
	}

	info, err := os.Stat(filepath.Join(cwd, dirName))
	return err == nil && info.IsDir()
}
