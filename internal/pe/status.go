package pe

import (
	"debug/pe"
	"encoding/binary"
	"fmt"
	"os"
)

// Status describes the Characteristics field of one file.
type Status struct {
	Path            string
	Offset          int64
	Characteristics Characteristics
	Architecture    string
	Checksum        *ChecksumInfo
}

// LargeAddressAware reports whether the file is large address aware.
func (s *Status) LargeAddressAware() bool {
	return s.Characteristics.LargeAddressAware()
}

// readStatus reads the Characteristics field at offset. Architecture and checksum
// are best effort: a file that is too short for them still gets a status.
func readStatus(f *os.File, path string, offset int64) (*Status, error) {
	raw, err := ReadAt(f, offset, 2)
	if err != nil {
		return nil, fmt.Errorf("读取COFF特征失败: %w", err)
	}

	status := &Status{
		Path:         path,
		Offset:       offset,
		Architecture: "未知",
	}
	copy(status.Characteristics[:], raw)

	if machineOffset, err := LocateMachine(f); err == nil {
		if machine, err := ReadAt(f, machineOffset, 2); err == nil {
			status.Architecture = architecture(binary.LittleEndian.Uint16(machine))
		}
	}

	if stat, err := f.Stat(); err == nil {
		if checksum, err := ReadChecksum(f, f, stat.Size()); err == nil {
			status.Checksum = checksum
		}
	}

	return status, nil
}

func architecture(machine uint16) string {
	switch machine {
	case pe.IMAGE_FILE_MACHINE_I386:
		return "x86 (32位)"
	case pe.IMAGE_FILE_MACHINE_AMD64:
		return "x64 (64位)"
	case pe.IMAGE_FILE_MACHINE_ARM:
		return "ARM"
	case pe.IMAGE_FILE_MACHINE_ARM64:
		return "ARM64"
	default:
		return fmt.Sprintf("未知 (0x%X)", machine)
	}
}
