package hookcfg

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// writeFile is swapped in tests to simulate mid-write I/O failures.
var writeFile = os.WriteFile

// MergeIntoSettings sets reservedKey to doc in the settings file at
// settingsPath, preserving every other top-level key verbatim. A missing
// settings file starts from an empty object. The reserved key's previous
// value is replaced wholesale, not deep-merged.
//
// The merged document is written to a uniquely named temp file in the same
// directory and renamed over settingsPath, so on any failure the pre-existing
// file is left byte-identical and no temp artifact remains.
func MergeIntoSettings(doc any, settingsPath, reservedKey string) error {
	settings := map[string]any{}

	data, err := os.ReadFile(settingsPath)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, &settings); err != nil {
			return fmt.Errorf("parsing settings %s: %w", settingsPath, err)
		}
	case errors.Is(err, os.ErrNotExist):
		// No settings yet; merge into an empty object.
	default:
		return fmt.Errorf("reading settings: %w", err)
	}

	settings[reservedKey] = doc

	out, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling settings: %w", err)
	}
	out = append(out, '\n')

	dir := filepath.Dir(settingsPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating settings directory: %w", err)
	}

	// Same-directory temp file keeps the final rename on one filesystem.
	tmp := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(settingsPath), uuid.NewString()))
	if err := writeFile(tmp, out, 0o644); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("writing settings temp file: %w", err)
	}

	if err := os.Rename(tmp, settingsPath); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing settings: %w", err)
	}

	return nil
}

// Install runs the combined inline-then-merge flow for a hook config file.
// Settings are only touched after every prompt reference has resolved.
func Install(configPath, settingsPath string) error {
	inlined, err := Inline(configPath)
	if err != nil {
		return err
	}

	return MergeIntoSettings(inlined, settingsPath, ReservedKey)
}
