package sink

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yyyar/trafficplot/stats/counters"
)

func TestPublishReplacesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trafficplot-1.dat")
	s := NewFileSink(path)

	require.NoError(t, s.Publish([]byte("first\n")))
	require.NoError(t, s.Publish([]byte("second\n")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second\n", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestPublishFailureKeepsPrevious(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plot.dat")

	// destination is a non empty directory, rename over it fails
	require.NoError(t, os.Mkdir(path, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(path, "keep"), []byte("x"), 0644))

	err := NewFileSink(path).Publish([]byte("new"))
	require.Error(t, err)

	st, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, st.IsDir())

	leftovers, _ := filepath.Glob(filepath.Join(dir, ".plot.dat.tmp-*"))
	assert.Empty(t, leftovers)
}

func TestPublishMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "plot.dat")

	assert.Error(t, NewFileSink(path).Publish([]byte("x")))
}

func TestConcurrentReadersNeverSeePartialContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plot.dat")
	s := NewFileSink(path)

	versions := map[string]bool{}
	var bufs [][]byte
	for i := 0; i < 20; i++ {
		w := counters.NewWindow(200)
		for j := 0; j < 200; j++ {
			w.Push(counters.BandwidthSample{Rx: float64(i * j), Tx: float64(i + j)})
		}
		b := Render(w.Samples(), 1)
		bufs = append(bufs, b)
		versions[string(b)] = true
	}
	require.NoError(t, s.Publish(bufs[0]))

	done := make(chan struct{})
	errs := make(chan error, 4)
	var wg sync.WaitGroup

	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
				}
				data, err := os.ReadFile(path)
				if err != nil {
					errs <- err
					return
				}
				if !versions[string(data)] {
					errs <- fmt.Errorf("partial content of %d bytes", len(data))
					return
				}
			}
		}()
	}

	for round := 0; round < 5; round++ {
		for _, b := range bufs {
			require.NoError(t, s.Publish(b))
		}
	}
	close(done)
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}

func TestCleanupRemovesFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plot.dat")
	s := NewFileSink(path)

	require.NoError(t, s.Publish([]byte("x")))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".plot.dat.tmp-123"), []byte("y"), 0644))

	require.NoError(t, s.Cleanup())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	// idempotent
	assert.NoError(t, s.Cleanup())
}
