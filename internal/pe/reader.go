package pe

import (
	"fmt"
	"os"
)

// Reader inspects a PE file without opening it for writing.
type Reader struct {
	file     *os.File
	filepath string
}

// Open opens a PE file for reading.
func Open(filepath string) (*Reader, error) {
	if err := ValidatePath(filepath); err != nil {
		return nil, err
	}

	f, err := os.Open(filepath)
	if err != nil {
		return nil, fmt.Errorf("%w: 打开文件失败: %w", ErrIO, err)
	}

	return &Reader{
		file:     f,
		filepath: filepath,
	}, nil
}

// Close closes the underlying file.
func (r *Reader) Close() error {
	return r.file.Close()
}

// Status locates and reads the Characteristics field.
func (r *Reader) Status() (*Status, error) {
	offset, err := LocateCharacteristics(r.file)
	if err != nil {
		return nil, err
	}
	return readStatus(r.file, r.filepath, offset)
}

// ReadStatus opens filepath read-only, reads its status and closes it.
func ReadStatus(filepath string) (*Status, error) {
	r, err := Open(filepath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()

	return r.Status()
}
