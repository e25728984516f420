package pidfile

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAndRemove(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trafficplot.pid")

	require.NoError(t, WritePidFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(os.Getpid()), string(data))

	// rewriting own pid is fine
	require.NoError(t, WritePidFile(path))

	require.NoError(t, RemovePidFile(path))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, RemovePidFile(path))
}

func TestRunningProcessBlocks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trafficplot.pid")
	// parent (go test runner) is alive and ours to signal
	require.NoError(t, os.WriteFile(path, []byte(strconv.Itoa(os.Getppid())), 0644))

	assert.Error(t, WritePidFile(path))
}

func TestGarbagePidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trafficplot.pid")
	require.NoError(t, os.WriteFile(path, []byte("not a pid"), 0644))

	assert.Error(t, WritePidFile(path))
}
