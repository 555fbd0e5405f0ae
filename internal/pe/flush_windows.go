//go:build windows

package pe

import (
	"os"

	"golang.org/x/sys/windows"
)

// flushFile forces the written bytes of f to stable storage.
func flushFile(f *os.File) error {
	return windows.FlushFileBuffers(windows.Handle(f.Fd()))
}
