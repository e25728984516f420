package pipeline

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yyyar/trafficplot/source"
	"github.com/yyyar/trafficplot/stats"
	"github.com/yyyar/trafficplot/stats/counters"
	"github.com/yyyar/trafficplot/utils/parsers"
)

type step struct {
	block source.Block
	err   error
}

type fakeSource struct {
	steps  []step
	block  bool // block on ctx after steps are consumed
	closed bool
}

func (f *fakeSource) Next(ctx context.Context) (source.Block, error) {
	if len(f.steps) == 0 {
		if f.block {
			<-ctx.Done()
			return nil, ctx.Err()
		}
		return nil, io.EOF
	}
	s := f.steps[0]
	f.steps = f.steps[1:]
	return s.block, s.err
}

func (f *fakeSource) Close() error {
	f.closed = true
	return nil
}

type memSink struct {
	mu   sync.Mutex
	bufs []string
	err  error
}

func (m *memSink) Publish(buf []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.bufs = append(m.bufs, string(buf))
	return nil
}

func (m *memSink) last() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bufs[len(m.bufs)-1]
}

type fakeRenderer struct {
	done    chan struct{}
	started bool
	stopped bool
}

func (r *fakeRenderer) Start(ctx context.Context) error {
	r.started = true
	return nil
}

func (r *fakeRenderer) Done() <-chan struct{} { return r.done }

func (r *fakeRenderer) Stop() { r.stopped = true }

func newPipeline(src source.Source, snk Publisher, numSamples int) *Pipeline {
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return &Pipeline{
		Iface:     "eth0",
		Interval:  1,
		Source:    src,
		Parser:    parsers.NewDefaultStatBlockParser(),
		Collector: counters.NewCollector(counters.CollectorOptions{NumSamples: numSamples}),
		Sink:      snk,
		Store:     stats.NewStore(),
		Now: func() time.Time {
			t := clock
			clock = clock.Add(time.Second)
			return t
		},
	}
}

func TestEndToEnd(t *testing.T) {
	src := &fakeSource{steps: []step{
		{block: source.Block{"RX bytes:1000 (1.0 KB)", "TX bytes:200 (200.0 B)"}},
		{block: source.Block{"RX bytes:2000 (2.0 KB)", "TX bytes:400 (400.0 B)"}},
	}}
	snk := &memSink{}
	p := newPipeline(src, snk, 3)

	require.NoError(t, p.Run(context.Background()))

	assert.Equal(t, []counters.BandwidthSample{{}, {}, {Rx: 1000, Tx: 200}}, p.Collector.Window())

	// initial empty window plus one per sample
	assert.Len(t, snk.bufs, 3)
	assert.True(t, strings.HasSuffix(snk.last(), "\n0 0.008 0.0016\n"), snk.last())

	assert.True(t, src.closed)
	assert.Equal(t, Terminated, p.State())

	st := p.Store.Get()
	assert.Equal(t, counters.ByteCounters{Rx: 2000, Tx: 400}, st.Counters)
	assert.Equal(t, uint64(2), st.Samples)
	assert.Equal(t, "terminated", st.State)
}

func TestInitialWindowPublished(t *testing.T) {
	snk := &memSink{}
	p := newPipeline(&fakeSource{}, snk, 2)

	require.NoError(t, p.Run(context.Background()))

	assert.Equal(t, []string{"\"time\" \"0.0bps Down\" \"0.0bps Up  \"\n1 0.0 0.0\n0 0.0 0.0\n"}, snk.bufs)
}

func TestIncompleteBlockSkipped(t *testing.T) {
	snk := &memSink{}
	p := newPipeline(&fakeSource{}, snk, 2)

	n, err := p.ProcessBlock(source.Block{"eth0: flags=4163<UP>", "RX packets 1  bytes 100 (100.0 B)"})

	assert.Equal(t, 0, n)
	assert.ErrorIs(t, err, ErrIncompleteBlock)
	assert.Empty(t, snk.bufs)
	assert.Equal(t, uint64(1), p.Store.Get().ParseFailures)
}

func TestNoCrossCycleLeakage(t *testing.T) {
	src := &fakeSource{steps: []step{
		{block: source.Block{"RX packets 1  bytes 100 (100.0 B)"}},
		{block: source.Block{"TX packets 1  bytes 50 (50.0 B)"}},
	}}
	p := newPipeline(src, &memSink{}, 2)

	require.NoError(t, p.Run(context.Background()))

	_, _, ok := p.Collector.Last()
	assert.False(t, ok, "rx of first block must not pair with tx of second")
	assert.Equal(t, uint64(2), p.Store.Get().ParseFailures)
}

func TestSourceErrorsAreSkipped(t *testing.T) {
	src := &fakeSource{steps: []step{
		{err: errors.New("ifconfig: exit status 1")},
		{block: source.Block{"RX bytes:10 (10.0 B)  TX bytes:20 (20.0 B)"}},
	}}
	p := newPipeline(src, &memSink{}, 2)

	require.NoError(t, p.Run(context.Background()))

	last, _, ok := p.Collector.Last()
	require.True(t, ok)
	assert.Equal(t, counters.ByteCounters{Rx: 10, Tx: 20}, last)
	assert.Equal(t, uint64(1), p.Store.Get().SourceErrors)
}

func TestConnectErrorIsFatal(t *testing.T) {
	src := &fakeSource{steps: []step{{err: source.ErrConnect}}}
	p := newPipeline(src, &memSink{}, 2)

	err := p.Run(context.Background())
	assert.ErrorIs(t, err, source.ErrConnect)
	assert.True(t, src.closed)
}

func TestPublishFailureIsFatal(t *testing.T) {
	src := &fakeSource{}
	p := newPipeline(src, &memSink{err: errors.New("no space left on device")}, 2)

	err := p.Run(context.Background())
	assert.Error(t, err)
	assert.True(t, src.closed)
	assert.Equal(t, Terminated, p.State())
}

func TestRendererExitTerminates(t *testing.T) {
	src := &fakeSource{block: true}
	r := &fakeRenderer{done: make(chan struct{})}
	p := newPipeline(src, &memSink{}, 2)
	p.Renderer = r

	result := make(chan error, 1)
	go func() { result <- p.Run(context.Background()) }()

	close(r.done)

	select {
	case err := <-result:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("pipeline did not stop after renderer exit")
	}

	assert.True(t, r.started)
	assert.True(t, r.stopped)
	assert.True(t, src.closed)
}

func TestContextCancelTerminates(t *testing.T) {
	src := &fakeSource{block: true}
	p := newPipeline(src, &memSink{}, 2)

	ctx, cancel := context.WithCancel(context.Background())
	result := make(chan error, 1)
	go func() { result <- p.Run(ctx) }()

	cancel()

	select {
	case err := <-result:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("pipeline did not stop on cancel")
	}
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "sampling", Sampling.String())
	assert.Equal(t, "terminated", Terminated.String())
	assert.Equal(t, "unknown", State(42).String())
}
