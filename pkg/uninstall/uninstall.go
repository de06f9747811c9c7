// Package uninstall generates the uninstall shell script for an installed
// toolkit. The script is rendered from the install receipt's file list, so it
// removes exactly what the recording run put into the target directory and
// nothing else. settings.json is deliberately left alone; the runtime owns it
// and removing the merged hooks key is a separate concern from file removal.
package uninstall

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/papercomputeco/satchel/pkg/dotdir"
)

// Generate renders a POSIX shell script that removes the files listed in the
// receipt from the directory the script lives in, then removes the receipt
// and the script itself.
func Generate(receipt *dotdir.Receipt, scriptName string) []byte {
	var b strings.Builder

	b.WriteString("#!/bin/sh\n")
	fmt.Fprintf(&b, "# Generated by satchel on %s.\n", time.Now().Format(time.RFC3339))
	if receipt.Source != "" {
		fmt.Fprintf(&b, "# Removes the toolkit installed from %s.\n", receipt.Source)
	}
	b.WriteString("set -u\n\n")
	b.WriteString(`dir="$(cd "$(dirname "$0")" && pwd)"` + "\n\n")

	for _, file := range receipt.Files {
		fmt.Fprintf(&b, "rm -f \"$dir\"/%s\n", shellQuote(filepath.ToSlash(file)))
	}

	dirs := parentDirs(receipt.Files)
	if len(dirs) > 0 {
		b.WriteString("\n")
		for _, dir := range dirs {
			fmt.Fprintf(&b, "rmdir \"$dir\"/%s 2>/dev/null || true\n", shellQuote(filepath.ToSlash(dir)))
		}
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "rm -f \"$dir\"/%s\n", shellQuote(dotdir.ReceiptFile))
	fmt.Fprintf(&b, "rm -f \"$dir\"/%s\n", shellQuote(scriptName))
	b.WriteString(`echo "toolkit removed"` + "\n")

	return []byte(b.String())
}

// WriteScript renders the script and writes it into targetDir with the
// executable bit set. Returns the script path.
func WriteScript(receipt *dotdir.Receipt, targetDir, scriptName string) (string, error) {
	path := filepath.Join(targetDir, scriptName)
	if err := os.WriteFile(path, Generate(receipt, scriptName), 0o755); err != nil {
		return "", fmt.Errorf("writing uninstall script: %w", err)
	}
	return path, nil
}

// parentDirs returns every ancestor directory of the given relative paths,
// deduplicated and ordered deepest first so rmdir can unwind them.
func parentDirs(files []string) []string {
	seen := map[string]struct{}{}
	for _, file := range files {
		dir := filepath.Dir(file)
		for dir != "." && dir != "/" && dir != "" {
			seen[dir] = struct{}{}
			dir = filepath.Dir(dir)
		}
	}

	dirs := make([]string, 0, len(seen))
	for dir := range seen {
		dirs = append(dirs, dir)
	}
	sort.Slice(dirs, func(i, j int) bool {
		di, dj := strings.Count(dirs[i], string(filepath.Separator)), strings.Count(dirs[j], string(filepath.Separator))
		if di != dj {
			return di > dj
		}
		return dirs[i] < dirs[j]
	})

	return dirs
}

// shellQuote single-quotes s for safe interpolation into the script.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
