//go:build linux

package pe

import (
	"os"

	"golang.org/x/sys/unix"
)

// flushFile forces the written bytes of f to stable storage.
func flushFile(f *os.File) error {
	return unix.Fdatasync(int(f.Fd()))
}
