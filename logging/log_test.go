package logging

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatterIncludesNameAndLevel(t *testing.T) {
	entry := &logrus.Entry{
		Time:    time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC),
		Level:   logrus.WarnLevel,
		Message: "block skipped",
		Data:    logrus.Fields{"name": "pipeline"},
	}

	out, err := new(MyFormatter).Format(entry)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01 12:30:00 [WARNI] (pipeline): block skipped\n", string(out))
}

func TestFormatterAppendsError(t *testing.T) {
	entry := &logrus.Entry{
		Level:   logrus.ErrorLevel,
		Message: "publish",
		Data:    logrus.Fields{logrus.ErrorKey: errors.New("disk full")},
	}

	out, err := new(MyFormatter).Format(entry)
	require.NoError(t, err)
	assert.Contains(t, string(out), "(default): publish: disk full\n")
}

func TestConfigureFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trafficplot.log")
	t.Cleanup(func() {
		logrus.SetOutput(os.Stderr)
		logrus.SetLevel(logrus.InfoLevel)
	})

	require.NoError(t, Configure(path, "debug"))
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())

	For("test").Debug("hello")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "(test): hello")
}

func TestConfigureRejectsUnknownLevel(t *testing.T) {
	t.Cleanup(func() { logrus.SetOutput(os.Stderr) })
	assert.Error(t, Configure("discard", "loud"))
}
