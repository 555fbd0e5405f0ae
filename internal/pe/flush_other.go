//go:build !linux && !darwin && !windows

package pe

import "os"

// flushFile forces the written bytes of f to stable storage.
func flushFile(f *os.File) error {
	return f.Sync()
}
