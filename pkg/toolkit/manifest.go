// Package toolkit models a prompt-toolkit source tree: the component layout
// manifest, the markdown assets (skills, slash commands, agent definitions)
// inside it, and presence/count surveys used for validation before and after
// an install.
package toolkit

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const (
	// manifestFile is the optional layout manifest at the source root.
	manifestFile = "toolkit.toml"

	// v0 is the alpha version of the manifest
	v0 = 0

	// CurrentV is the currently supported version, points to v0
	CurrentV = v0
)

// Manifest describes where a toolkit source tree keeps each component
// category. A missing toolkit.toml means the default layout.
type Manifest struct {
	Version    int              `toml:"version"`
	Components ComponentsConfig `toml:"components"`
	Uninstall  UninstallConfig  `toml:"uninstall"`
}

// ComponentsConfig holds per-category locations relative to the source root.
type ComponentsConfig struct {
	SkillsDir   string `toml:"skills_dir,omitempty"`
	CommandsDir string `toml:"commands_dir,omitempty"`
	AgentsDir   string `toml:"agents_dir,omitempty"`
	HooksFile   string `toml:"hooks_file,omitempty"`
	MemoryFile  string `toml:"memory_file,omitempty"`
}

// UninstallConfig holds uninstall-script generation settings.
type UninstallConfig struct {
	ScriptName string `toml:"script_name,omitempty"`
}

// NewDefaultManifest returns a Manifest with the conventional layout.
// This is the single source of truth for default values.
func NewDefaultManifest() *Manifest {
	return &Manifest{
		Version: CurrentV,
		Components: ComponentsConfig{
			SkillsDir:   "skills",
			CommandsDir: "commands",
			AgentsDir:   "agents",
			HooksFile:   filepath.Join("hooks", "hooks.json"),
			MemoryFile:  "CLAUDE.md",
		},
		Uninstall: UninstallConfig{
			ScriptName: "uninstall.sh",
		},
	}
}

// LoadManifest reads toolkit.toml from sourceDir. The source directory itself
// must exist; the manifest file is optional and defaults apply for any field
// it leaves unset.
func LoadManifest(sourceDir string) (*Manifest, error) {
	info, err := os.Stat(sourceDir)
	if err != nil {
		return nil, fmt.Errorf("reading toolkit source %s: %w", sourceDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("toolkit source %s is not a directory", sourceDir)
	}

	path := filepath.Join(sourceDir, manifestFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return NewDefaultManifest(), nil
		}
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	m, err := ParseManifestTOML(data)
	if err != nil {
		return nil, err
	}

	applyDefaults(m)

	return m, nil
}

// ParseManifestTOML parses manifest bytes and validates the version.
func ParseManifestTOML(data []byte) (*Manifest, error) {
	m := &Manifest{}
	if err := toml.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}

	if m.Version != CurrentV {
		return nil, fmt.Errorf("unsupported manifest version %d (current is %d)", m.Version, CurrentV)
	}

	return m, nil
}

// applyDefaults fills zero-value fields in m with values from NewDefaultManifest().
func applyDefaults(m *Manifest) {
	defaults := NewDefaultManifest()

	if m.Components.SkillsDir == "" {
		m.Components.SkillsDir = defaults.Components.SkillsDir
	}
	if m.Components.CommandsDir == "" {
		m.Components.CommandsDir = defaults.Components.CommandsDir
	}
	if m.Components.AgentsDir == "" {
		m.Components.AgentsDir = defaults.Components.AgentsDir
	}
	if m.Components.HooksFile == "" {
		m.Components.HooksFile = defaults.Components.HooksFile
	}
	if m.Components.MemoryFile == "" {
		m.Components.MemoryFile = defaults.Components.MemoryFile
	}
	if m.Uninstall.ScriptName == "" {
		m.Uninstall.ScriptName = defaults.Uninstall.ScriptName
	}
}
