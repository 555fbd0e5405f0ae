// Package testutil builds synthetic PE images for tests.
package testutil

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

// CharacteristicsOffset returns where the Characteristics field of an image
// built with e_lfanew = peOffset lives.
func CharacteristicsOffset(peOffset uint32) int {
	return int(peOffset) + 0x4 + 0x12
}

// BuildImage returns a minimal image of size bytes: "MZ", e_lfanew at 0x3C and,
// if it fits, "PE\0\0" followed by a COFF header with machine and characteristics.
// Everything else is zero. Fields that do not fit are left out.
func BuildImage(peOffset uint32, machine, characteristics uint16, size int) []byte {
	data := make([]byte, size)
	copy(data, "MZ")
	if size >= 0x40 {
		binary.LittleEndian.PutUint32(data[0x3C:], peOffset)
	}

	coff := int(peOffset)
	if coff+4+20 <= size {
		copy(data[coff:], "PE\x00\x00")
		binary.LittleEndian.PutUint16(data[coff+4:], machine)
		binary.LittleEndian.PutUint16(data[CharacteristicsOffset(peOffset):], characteristics)
	}
	return data
}

// WriteImage writes data to name inside a per-test directory and returns its path.
func WriteImage(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// ReadFile returns the contents of path or fails the test.
func ReadFile(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return data
}
