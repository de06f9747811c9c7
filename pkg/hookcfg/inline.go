package hookcfg

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Inline loads the hook configuration at configPath and resolves every prompt
// reference in it. The returned document is structurally identical to the
// input except that each object carrying MarkerKey has the marker replaced by
// ContentKey holding the referenced file's text. Objects without the marker
// pass through unchanged.
//
// Prompt paths resolve relative to the directory containing configPath, never
// the process working directory. Any unreadable reference fails the whole
// operation; no partial document is returned.
func Inline(configPath string) (any, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("reading hook config: %w", err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing hook config %s: %w", configPath, err)
	}

	baseDir := filepath.Dir(configPath)

	inlined, err := inlineNode(doc, baseDir)
	if err != nil {
		return nil, err
	}

	return inlined, nil
}

// inlineNode walks a parsed JSON value, rebuilding it with prompt references
// resolved. Children are transformed before the marker is handled so nested
// references inside a referencing object still resolve.
func inlineNode(node any, baseDir string) (any, error) {
	switch n := node.(type) {
	case map[string]any:
		out := make(map[string]any, len(n))
		for key, value := range n {
			child, err := inlineNode(value, baseDir)
			if err != nil {
				return nil, err
			}
			out[key] = child
		}

		ref, ok := out[MarkerKey]
		if !ok {
			return out, nil
		}

		path, ok := ref.(string)
		if !ok {
			return nil, ErrInvalidReference{Value: ref}
		}

		resolved := path
		if !filepath.IsAbs(resolved) {
			resolved = filepath.Join(baseDir, resolved)
		}

		text, err := os.ReadFile(resolved)
		if err != nil {
			return nil, ErrMissingPromptFile{Ref: path, Resolved: resolved, Err: err}
		}

		delete(out, MarkerKey)
		out[ContentKey] = string(text)

		return out, nil

	case []any:
		out := make([]any, len(n))
		for i, value := range n {
			child, err := inlineNode(value, baseDir)
			if err != nil {
				return nil, err
			}
			out[i] = child
		}
		return out, nil

	default:
		// Scalars (string, float64, bool, nil) pass through as-is.
		return node, nil
	}
}
