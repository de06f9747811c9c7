// Package hookcfg transforms hook configuration documents for installation
// into Claude Code's settings.json.
//
// A hook configuration is an arbitrary JSON document in which any object may
// reference an external prompt file via the "promptFile" marker key. Inline
// resolves every such reference against the document's own directory and
// replaces the marker with a "prompt" key holding the file's verbatim text.
// MergeIntoSettings then writes the inlined document under a single reserved
// top-level key of the settings file, leaving every sibling key untouched, with
// an atomic write-to-temp-then-rename so a crash can never leave the settings
// file half-written.
package hookcfg

const (
	// MarkerKey identifies an object as a prompt reference. Its string
	// value names a prompt file relative to the hook config's directory.
	MarkerKey = "promptFile"

	// ContentKey receives the inlined prompt text in place of MarkerKey.
	ContentKey = "prompt"

	// ReservedKey is the top-level settings.json key fully owned by the
	// installer. Its previous value is replaced wholesale on every merge.
	ReservedKey = "hooks"
)
