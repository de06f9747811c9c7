package dotdir

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	// ReceiptFile is the name of the install receipt inside the target
	// directory.
	ReceiptFile = "satchel-receipt.json"
)

// Receipt records what an install run materialized into the target directory.
// Status checks compare it against what is actually on disk and the uninstall
// script is generated from its file list.
type Receipt struct {
	// InstalledAt is when the recording install run finished.
	InstalledAt time.Time `json:"installed_at"`

	// Source is the absolute path of the toolkit source tree.
	Source string `json:"source"`

	// Files lists installed paths relative to the target directory,
	// in install order.
	Files []string `json:"files"`

	// Counts holds the number of installed entries per component
	// category (skills, commands, agents, hooks, config).
	Counts map[string]int `json:"counts"`
}

// LoadReceipt loads the install receipt from a target .claude/ directory.
// Returns nil, nil if no receipt exists (nothing installed yet).
// If overrideDir is non-empty, it is used instead of the default resolution.
func (m *Manager) LoadReceipt(overrideDir string) (*Receipt, error) {
	dir, err := m.Target(overrideDir)
	if err != nil {
		return nil, err
	}

	path := filepath.Join(dir, ReceiptFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading install receipt: %w", err)
	}

	receipt := &Receipt{}
	if err := json.Unmarshal(data, &receipt); err != nil {
		return nil, fmt.Errorf("parsing install receipt: %w", err)
	}

	return receipt, nil
}

// SaveReceipt persists the install receipt to the target .claude/ directory.
func (m *Manager) SaveReceipt(receipt *Receipt, overrideDir string) error {
	if receipt == nil {
		return errors.New("cannot save nil receipt")
	}

	dir, err := m.Target(overrideDir)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(receipt, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling install receipt: %w", err)
	}

	path := filepath.Join(dir, ReceiptFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing install receipt: %w", err)
	}

	return nil
}

// ClearReceipt removes the install receipt file.
// Returns nil if the file doesn't exist (already cleared).
func (m *Manager) ClearReceipt(overrideDir string) error {
	dir, err := m.Target(overrideDir)
	if err != nil {
		return err
	}

	path := filepath.Join(dir, ReceiptFile)
	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("removing install receipt: %w", err)
	}

	return nil
}
