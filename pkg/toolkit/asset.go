package toolkit

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// Asset represents one markdown component of the toolkit: a skill, a slash
// command definition, or an agent behavior description. The body is inert
// prompt text consumed by the Claude runtime; satchel only moves it around.
type Asset struct {
	Name        string    `json:"name"`        // kebab-case identifier
	Description string    `json:"description"` // trigger description for Claude
	Version     string    `json:"version"`     // semver, default "0.1.0"
	Tags        []string  `json:"tags"`        // e.g. ["git", "review"]
	Kind        string    `json:"kind"`        // "skill", "command", "agent"
	Content     string    `json:"content"`     // markdown body (instructions)
	CreatedAt   time.Time `json:"created_at"`
}

// AssetKinds enumerates valid asset kind values.
var AssetKinds = []string{"skill", "command", "agent"}

// ValidAssetKind returns true if the given kind is recognized.
func ValidAssetKind(k string) bool {
	return slices.Contains(AssetKinds, k)
}

// ListAssets scans a directory for asset .md files and returns summaries.
// Files without parseable frontmatter are skipped, not failed: prompt-text
// trees routinely carry plain markdown alongside structured assets.
func ListAssets(dir, kind string) ([]*Asset, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read assets directory: %w", err)
	}

	var assets []*Asset
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		asset, err := ParseAssetMD(string(data))
		if err != nil {
			continue
		}
		asset.Name = strings.TrimSuffix(entry.Name(), ".md")
		asset.Kind = kind
		assets = append(assets, asset)
	}

	return assets, nil
}

// ListSkillDirs returns assets for skills laid out as directories, one
// <dir>/<name>/SKILL.md each. Directories without a parseable SKILL.md are
// skipped.
func ListSkillDirs(dir string) ([]*Asset, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read skills directory: %w", err)
	}

	var assets []*Asset
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, entry.Name(), "SKILL.md"))
		if err != nil {
			continue
		}

		asset, err := ParseAssetMD(string(data))
		if err != nil {
			continue
		}
		asset.Name = entry.Name()
		asset.Kind = "skill"
		assets = append(assets, asset)
	}

	return assets, nil
}

// FindAsset returns the named asset from dir, or nil if absent.
func FindAsset(dir, kind, name string) (*Asset, error) {
	data, err := os.ReadFile(filepath.Join(dir, name+".md"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read asset: %w", err)
	}

	asset, err := ParseAssetMD(string(data))
	if err != nil {
		return nil, err
	}
	asset.Name = name
	asset.Kind = kind

	return asset, nil
}

// RenderAssetMD renders an Asset as its on-disk markdown representation
// (frontmatter + body).
func RenderAssetMD(a *Asset) string {
	var b strings.Builder

	b.WriteString("---\n")
	fmt.Fprintf(&b, "name: %s\n", a.Name)
	fmt.Fprintf(&b, "description: %s\n", a.Description)
	fmt.Fprintf(&b, "version: %s\n", a.Version)
	if len(a.Tags) > 0 {
		fmt.Fprintf(&b, "tags: [%s]\n", strings.Join(a.Tags, ", "))
	}
	if !a.CreatedAt.IsZero() {
		fmt.Fprintf(&b, "created_at: %s\n", a.CreatedAt.Format(time.RFC3339))
	}
	b.WriteString("---\n\n")
	b.WriteString(a.Content)

	// Ensure trailing newline
	if !strings.HasSuffix(a.Content, "\n") {
		b.WriteString("\n")
	}

	return b.String()
}

// ParseAssetMD parses a markdown document with YAML-ish frontmatter
// delimited by "---" lines.
func ParseAssetMD(content string) (*Asset, error) {
	if !strings.HasPrefix(content, "---\n") {
		return nil, errors.New("missing frontmatter delimiter")
	}

	rest := content[4:] // skip opening "---\n"
	before, after, ok := strings.Cut(rest, "\n---\n")
	if !ok {
		return nil, errors.New("missing closing frontmatter delimiter")
	}

	frontmatter := before
	body := strings.TrimSpace(after)

	a := &Asset{
		Content: body,
		Version: "0.1.0",
	}

	for line := range strings.SplitSeq(frontmatter, "\n") {
		key, value, ok := strings.Cut(line, ": ")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case "name":
			a.Name = value
		case "description":
			a.Description = value
		case "version":
			a.Version = value
		case "tags":
			a.Tags = parseBracketList(value)
		case "created_at":
			if t, err := time.Parse(time.RFC3339, value); err == nil {
				a.CreatedAt = t
			}
		}
	}

	return a, nil
}

func parseBracketList(s string) []string {
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
