package hookcfg

import "os"

// SetWriteFile replaces the temp-file writer and returns a restore func.
func SetWriteFile(fn func(name string, data []byte, perm os.FileMode) error) func() {
	prev := writeFile
	writeFile = fn
	return func() { writeFile = prev }
}
