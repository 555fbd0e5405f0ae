//go:build darwin

package pe

import (
	"os"

	"golang.org/x/sys/unix"
)

// flushFile forces the written bytes of f to stable storage.
//
// F_FULLFSYNC also drains the drive cache; fall back to fsync on filesystems
// that do not support it.
func flushFile(f *os.File) error {
	if _, err := unix.FcntlInt(f.Fd(), unix.F_FULLFSYNC, 0); err == nil {
		return nil
	}
	return unix.Fsync(int(f.Fd()))
}
