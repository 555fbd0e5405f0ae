package pe

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// checksumChunkSize must stay a multiple of 4.
const checksumChunkSize = 64 * 1024

// ChecksumInfo contains PE checksum verification results.
type ChecksumInfo struct {
	Stored   uint32
	Computed uint32
	Valid    bool
}

// Present reports whether the image carries a checksum at all.
// Most user-mode executables leave it at zero.
func (c *ChecksumInfo) Present() bool {
	return c != nil && c.Stored != 0
}

// ReadChecksum reads the stored optional header checksum and, when one is
// present, recomputes it over the whole file. The file is never written.
func ReadChecksum(r io.ReadSeeker, ra io.ReaderAt, filesize int64) (*ChecksumInfo, error) {
	offset, err := locateChecksum(r)
	if err != nil {
		return nil, err
	}

	raw, err := ReadAt(r, offset, 4)
	if err != nil {
		return nil, fmt.Errorf("读取校验和失败: %w", err)
	}
	stored := binary.LittleEndian.Uint32(raw)
	if stored == 0 {
		return &ChecksumInfo{Valid: true}, nil
	}

	computed, err := CalculatePEChecksum(ra, filesize, offset)
	if err != nil {
		return nil, fmt.Errorf("计算校验和失败: %w", err)
	}

	return &ChecksumInfo{
		Stored:   stored,
		Computed: computed,
		Valid:    stored == computed,
	}, nil
}

// CalculatePEChecksum calculates the PE checksum using the standard algorithm.
// A negative checksumOffset disables skipping the CheckSum field.
func CalculatePEChecksum(r io.ReaderAt, filesize int64, checksumOffset int64) (uint32, error) {
	var checksum uint64
	buf := make([]byte, checksumChunkSize)

	for base := int64(0); base < filesize; base += checksumChunkSize {
		n, err := r.ReadAt(buf, base)
		if err != nil && !errors.Is(err, io.EOF) {
			return 0, err
		}
		if remaining := filesize - base; int64(n) > remaining {
			n = int(remaining)
		}

		for i := 0; i < n; i += 4 {
			offset := base + int64(i)
			// Skip checksum field itself
			if checksumOffset >= 0 && offset >= checksumOffset && offset < checksumOffset+4 {
				continue
			}

			// Partial last DWORD is zero padded
			var dword [4]byte
			copy(dword[:], buf[i:n])
			checksum += uint64(binary.LittleEndian.Uint32(dword[:]))

			// Fold high 32 bits into low 32 bits
			checksum = (checksum & 0xFFFFFFFF) + (checksum >> 32)
		}
	}

	checksum = (checksum & 0xFFFF) + (checksum >> 16)
	checksum += checksum >> 16
	checksum &= 0xFFFF

	checksum += uint64(filesize)

	return uint32(checksum), nil
}
