package pe

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculatePEChecksum(t *testing.T) {
	tests := []struct {
		name           string
		data           []byte
		checksumOffset int64
		want           uint32
	}{
		{
			name:           "Simple 8-byte file",
			data:           []byte{0x01, 0x00, 0x00, 0x00, 0x02, 0x00, 0x00, 0x00},
			checksumOffset: -1, // No checksum to skip
			want:           11, // 1 + 2 + filesize(8)
		},
		{
			name: "File with checksum field to skip",
			data: []byte{
				0x01, 0x00, 0x00, 0x00, // DWORD 1
				0xFF, 0xFF, 0xFF, 0xFF, // Checksum field (skipped)
				0x02, 0x00, 0x00, 0x00, // DWORD 2
			},
			checksumOffset: 4,
			want:           15, // 1 + 2 + filesize(12)
		},
		{
			name:           "Partial last DWORD",
			data:           []byte{0x01, 0x00, 0x00, 0x00, 0x02, 0x00},
			checksumOffset: -1,
			want:           9, // 1 + 2 (padded) + filesize(6)
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CalculatePEChecksum(bytes.NewReader(tt.data), int64(len(tt.data)), tt.checksumOffset)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestChecksumCarryHandling(t *testing.T) {
	data := make([]byte, 16)

	// Create DWORDs that will cause overflow
	binary.LittleEndian.PutUint32(data[0:4], 0xFFFFFFFF)
	binary.LittleEndian.PutUint32(data[4:8], 0xFFFFFFFF)
	binary.LittleEndian.PutUint32(data[8:12], 0x00000001)
	binary.LittleEndian.PutUint32(data[12:16], 0x00000001)

	got, err := CalculatePEChecksum(bytes.NewReader(data), int64(len(data)), -1)
	require.NoError(t, err)

	// 0xFFFFFFFF + 0xFFFFFFFF folds to 0xFFFFFFFF, +1 folds to 1, +1 = 2, + filesize(16).
	assert.Equal(t, uint32(18), got)
}

func TestChecksumAcrossChunks(t *testing.T) {
	data := make([]byte, checksumChunkSize+8)
	binary.LittleEndian.PutUint32(data[0:], 3)
	binary.LittleEndian.PutUint32(data[checksumChunkSize+4:], 4)

	got, err := CalculatePEChecksum(bytes.NewReader(data), int64(len(data)), -1)
	require.NoError(t, err)
	assert.Equal(t, uint32(7+len(data)), got)
}

func TestReadChecksum(t *testing.T) {
	data := buildImage(0x80, 0x14C, 0x22, 0x400)
	checksumOffset := 0x80 + 4 + coffHeaderSize + optionalHeaderChecksumOffset

	computed, err := CalculatePEChecksum(bytes.NewReader(data), int64(len(data)), int64(checksumOffset))
	require.NoError(t, err)

	t.Run("Not present", func(t *testing.T) {
		info, err := ReadChecksum(bytes.NewReader(data), bytes.NewReader(data), int64(len(data)))
		require.NoError(t, err)
		assert.False(t, info.Present())
		assert.True(t, info.Valid)
	})

	t.Run("Matches", func(t *testing.T) {
		withSum := append([]byte(nil), data...)
		binary.LittleEndian.PutUint32(withSum[checksumOffset:], computed)

		info, err := ReadChecksum(bytes.NewReader(withSum), bytes.NewReader(withSum), int64(len(withSum)))
		require.NoError(t, err)
		assert.True(t, info.Present())
		assert.True(t, info.Valid)
		assert.Equal(t, computed, info.Computed)
	})

	t.Run("Stale", func(t *testing.T) {
		withSum := append([]byte(nil), data...)
		binary.LittleEndian.PutUint32(withSum[checksumOffset:], computed+1)

		info, err := ReadChecksum(bytes.NewReader(withSum), bytes.NewReader(withSum), int64(len(withSum)))
		require.NoError(t, err)
		assert.False(t, info.Valid)
	})
}

// failingReaderAt fails every read, so any full-file scan is detected.
type failingReaderAt struct{}

func (failingReaderAt) ReadAt([]byte, int64) (int, error) {
	return 0, errors.New("unexpected full-file read")
}

func TestReadChecksumSkipsScanWhenAbsent(t *testing.T) {
	data := buildImage(0x80, 0x14C, 0x22, 0x400)

	info, err := ReadChecksum(bytes.NewReader(data), failingReaderAt{}, int64(len(data)))
	require.NoError(t, err)
	assert.False(t, info.Present())
	assert.True(t, info.Valid)
}

func TestReadChecksumScansWhenPresent(t *testing.T) {
	data := buildImage(0x80, 0x14C, 0x22, 0x400)
	binary.LittleEndian.PutUint32(data[0x80+4+coffHeaderSize+optionalHeaderChecksumOffset:], 0x1234)

	_, err := ReadChecksum(bytes.NewReader(data), failingReaderAt{}, int64(len(data)))
	assert.Error(t, err)
}
