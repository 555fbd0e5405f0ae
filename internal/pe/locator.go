// Package pe locates and patches the COFF Characteristics field of PE files.
package pe

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Fixed header offsets, all relative to the start of the file or of the PE signature.
const (
	// PEOffsetPointer is the offset of e_lfanew in the DOS header.
	PEOffsetPointer = 0x3C

	// peSignatureSize skips "PE\0\0".
	peSignatureSize = 0x4

	// coffCharacteristicsOffset is the Characteristics offset inside the 20-byte COFF header.
	coffCharacteristicsOffset = 0x12

	coffHeaderSize = 20

	// optionalHeaderChecksumOffset is the CheckSum offset inside the optional header
	// (identical for PE32 and PE32+).
	optionalHeaderChecksumOffset = 64
)

// ReadAt seeks to offset from the start of r and reads exactly length bytes.
//
// A short read, including a seek past the end of the file, is reported as
// ErrMalformedHeader. Every other failure is reported as ErrIO.
func ReadAt(r io.ReadSeeker, offset int64, length int) ([]byte, error) {
	if _, err := r.Seek(offset, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: 定位到偏移 0x%X 失败: %w", ErrIO, offset, err)
	}

	buf := make([]byte, length)
	if _, err := io.ReadFull(r, buf); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: 偏移 0x%X 处不足 %d 字节: %w", ErrMalformedHeader, offset, length, err)
		}
		return nil, fmt.Errorf("%w: 读取偏移 0x%X 失败: %w", ErrIO, offset, err)
	}

	return buf, nil
}

// PEHeaderOffset reads e_lfanew, the absolute offset of the PE signature.
func PEHeaderOffset(r io.ReadSeeker) (int64, error) {
	raw, err := ReadAt(r, PEOffsetPointer, 4)
	if err != nil {
		return 0, fmt.Errorf("读取PE头偏移失败: %w", err)
	}
	return int64(binary.LittleEndian.Uint32(raw)), nil
}

// LocateCharacteristics returns the absolute offset of the COFF Characteristics field.
func LocateCharacteristics(r io.ReadSeeker) (int64, error) {
	peOffset, err := PEHeaderOffset(r)
	if err != nil {
		return 0, err
	}
	return peOffset + peSignatureSize + coffCharacteristicsOffset, nil
}

// LocateMachine returns the absolute offset of the COFF Machine field.
func LocateMachine(r io.ReadSeeker) (int64, error) {
	peOffset, err := PEHeaderOffset(r)
	if err != nil {
		return 0, err
	}
	return peOffset + peSignatureSize, nil
}

// locateChecksum returns the absolute offset of the optional header CheckSum field.
func locateChecksum(r io.ReadSeeker) (int64, error) {
	peOffset, err := PEHeaderOffset(r)
	if err != nil {
		return 0, err
	}
	return peOffset + peSignatureSize + coffHeaderSize + optionalHeaderChecksumOffset, nil
}
