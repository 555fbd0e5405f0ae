package cli

import (
	"bytes"
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ZacharyZcR/LAAPatch/internal/pe"
	"github.com/ZacharyZcR/LAAPatch/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runSession(t *testing.T, path, input string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	reporter := NewReporter(&out, io.Discard)
	err := Run(path, NewPrompter(strings.NewReader(input), reporter), reporter)
	return out.String(), err
}

func TestRun(t *testing.T) {
	offset := testutil.CharacteristicsOffset(0x80)

	tests := []struct {
		name       string
		initial    uint16
		input      string
		wantByte   byte
		wantOutput []string
	}{
		{
			name:       "Enable",
			initial:    0x0000,
			input:      "y\n",
			wantByte:   0x20,
			wantOutput: []string{"当前已禁用", "✓ Large Address Aware 已启用"},
		},
		{
			name:       "Disable",
			initial:    0x0022,
			input:      "x\nY\n",
			wantByte:   0x02,
			wantOutput: []string{"当前已启用", "✓ Large Address Aware 已禁用"},
		},
		{
			name:       "Discard",
			initial:    0x0022,
			input:      "n\n",
			wantByte:   0x22,
			wantOutput: []string{"当前已启用", "EXE文件未被修改"},
		},
		{
			name:       "Input ends",
			initial:    0x0000,
			input:      "",
			wantByte:   0x00,
			wantOutput: []string{"EXE文件未被修改"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.BuildImage(0x80, 0x14C, tt.initial, 0x400)
			path := testutil.WriteImage(t, "app.exe", before)

			out, err := runSession(t, path, tt.input)
			require.NoError(t, err)
			for _, want := range tt.wantOutput {
				assert.Contains(t, out, want)
			}

			after := testutil.ReadFile(t, path)
			assert.Equal(t, tt.wantByte, after[offset])
			after[offset] = before[offset]
			assert.Equal(t, before, after)
		})
	}
}

func TestRunReportsChecksum(t *testing.T) {
	checksumOffset := 0x80 + 4 + 20 + 64
	base := testutil.BuildImage(0x80, 0x14C, 0x0022, 0x400)
	computed, err := pe.CalculatePEChecksum(bytes.NewReader(base), int64(len(base)), int64(checksumOffset))
	require.NoError(t, err)

	tests := []struct {
		name       string
		stored     uint32
		wantOutput string
		notOutput  string
	}{
		{
			name:       "Matching checksum becomes stale",
			stored:     computed,
			wantOutput: "修改后校验和将不再匹配",
			notOutput:  "已不匹配",
		},
		{
			name:       "Checksum already stale",
			stored:     computed + 1,
			wantOutput: "文件校验和已不匹配",
			notOutput:  "修改后校验和将不再匹配",
		},
		{
			name:      "No checksum",
			stored:    0,
			notOutput: "校验和",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := append([]byte(nil), base...)
			binary.LittleEndian.PutUint32(data[checksumOffset:], tt.stored)
			path := testutil.WriteImage(t, "app.exe", data)

			out, err := runSession(t, path, "n\n")
			require.NoError(t, err)
			if tt.wantOutput != "" {
				assert.Contains(t, out, tt.wantOutput)
			}
			assert.NotContains(t, out, tt.notOutput)
		})
	}
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	dll := filepath.Join(dir, "lib.dll")
	require.NoError(t, os.WriteFile(dll, testutil.BuildImage(0x80, 0x14C, 0, 0x200), 0o644))
	short := filepath.Join(dir, "short.exe")
	require.NoError(t, os.WriteFile(short, make([]byte, 0x20), 0o644))

	tests := []struct {
		name string
		path string
		want error
	}{
		{name: "No path", path: "", want: pe.ErrInvalidArgument},
		{name: "Missing file", path: filepath.Join(dir, "missing.exe"), want: pe.ErrInvalidArgument},
		{name: "DLL", path: dll, want: pe.ErrInvalidArgument},
		{name: "Truncated", path: short, want: pe.ErrMalformedHeader},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runSession(t, tt.path, "y\n")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
