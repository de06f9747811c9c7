package hookcfg

import "fmt"

// ErrMissingPromptFile is returned when a prompt reference names a file that
// does not exist or cannot be read. The whole inline operation fails before
// any output is produced.
type ErrMissingPromptFile struct {
	// Ref is the path exactly as written in the hook config.
	Ref string

	// Resolved is the absolute path the reference resolved to.
	Resolved string

	Err error
}

func (e ErrMissingPromptFile) Error() string {
	return fmt.Sprintf("missing prompt file %q (resolved %s): %v", e.Ref, e.Resolved, e.Err)
}

func (e ErrMissingPromptFile) Unwrap() error {
	return e.Err
}

// ErrInvalidReference is returned when the marker key carries a non-string
// value.
type ErrInvalidReference struct {
	Value any
}

func (e ErrInvalidReference) Error() string {
	return fmt.Sprintf("%s value must be a string, got %T", MarkerKey, e.Value)
}
