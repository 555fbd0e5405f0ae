package pe

import (
	"testing"

	"github.com/ZacharyZcR/LAAPatch/internal/testutil"
)

func buildImage(peOffset uint32, machine, characteristics uint16, size int) []byte {
	return testutil.BuildImage(peOffset, machine, characteristics, size)
}

func writeImage(t *testing.T, name string, data []byte) string {
	t.Helper()
	return testutil.WriteImage(t, name, data)
}

func readFile(t *testing.T, path string) []byte {
	t.Helper()
	return testutil.ReadFile(t, path)
}
