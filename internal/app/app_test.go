package app

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rook-computer/analogclock/internal/clock"
	"github.com/rook-computer/analogclock/internal/clocktime"
	"github.com/rook-computer/analogclock/internal/options"
	"github.com/rook-computer/analogclock/internal/render"
	"github.com/rook-computer/analogclock/internal/state"
)

type fakeServer struct {
	mu            sync.Mutex
	starts, stops int
}

func (s *fakeServer) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.starts++
	return nil
}

func (s *fakeServer) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stops++
	return nil
}

type fakeConsole struct{ enters, leaves int }

func (c *fakeConsole) Enter() error { c.enters++; return nil }
func (c *fakeConsole) Leave() error { c.leaves++; return nil }

type fakeNetInfo struct{ ip string }

func (n fakeNetInfo) IP(ctx context.Context) (string, error) { return n.ip, nil }

type harness struct {
	app   *App
	store *state.Store
	sched *clock.ManualScheduler
	web   *fakeServer
	done  chan error
}

func startApp(t *testing.T, opts options.Options, source clocktime.Source) *harness {
	t.Helper()
	h := &harness{
		store: state.NewStore(),
		sched: clock.NewManualScheduler(),
		web:   &fakeServer{},
		done:  make(chan error, 1),
	}
	h.app = New(h.store, render.NewMemoryHost(120, 120), h.web, opts)
	h.app.Scheduler = h.sched
	h.app.Source = source

	go func() { h.done <- h.app.Start(context.Background()) }()
	require.Eventually(t, func() bool { return h.app.current() != nil }, 2*time.Second, time.Millisecond)
	return h
}

func (h *harness) exit(t *testing.T) {
	t.Helper()
	h.app.Exit(nil)
	select {
	case err := <-h.done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("app did not exit")
	}
}

func TestAppRunsClockAndRecordsState(t *testing.T) {
	h := startApp(t, options.Default(), clocktime.FixedSource{Hours: 9, Minutes: 41, Seconds: 5})
	require.Eventually(t, func() bool { return h.store.Snapshot().Phase == state.RUNNING }, 2*time.Second, time.Millisecond)

	h.sched.Advance(2 * clock.DefaultDelay)
	snap := h.store.Snapshot()
	assert.Equal(t, int64(3), snap.Clock.Ticks)
	assert.Equal(t, "09:41:05.000", snap.Clock.Time)
	assert.InDelta(t, 30.0, snap.Clock.SecondAngle, 1e-9)
	assert.False(t, snap.Clock.TimeIndicatorHidden)
	assert.False(t, snap.Clock.Frozen)

	h.exit(t)
	assert.Equal(t, state.STOPPED, h.store.Snapshot().Phase)
	assert.Equal(t, 1, h.web.starts)
	assert.Equal(t, 1, h.web.stops)
}

func TestAppControl(t *testing.T) {
	opts := options.Default()
	opts.IsWork = false
	h := startApp(t, opts, clocktime.FixedSource{})
	require.Eventually(t, func() bool { return h.store.Snapshot().Phase == state.IDLE }, 2*time.Second, time.Millisecond)

	control := h.app.Control()
	require.NoError(t, control.Start())
	assert.Equal(t, state.RUNNING, h.store.Snapshot().Phase)

	control.Stop()
	assert.Equal(t, state.STOPPED, h.store.Snapshot().Phase)
	assert.ErrorIs(t, control.Start(), clock.ErrStopped)

	h.exit(t)
}

func TestAppControlBeforeStart(t *testing.T) {
	a := New(state.NewStore(), render.NewMemoryHost(10, 10), nil, options.Default())
	assert.ErrorIs(t, a.Control().Start(), errNoClock)
	a.Control().Stop()
}

func TestAppFailsOnInvalidHost(t *testing.T) {
	store := state.NewStore()
	a := New(store, render.NewMemoryHost(0, 0), nil, options.Default())
	err := a.Start(context.Background())
	assert.ErrorIs(t, err, clock.ErrInvalidHost)
	assert.Equal(t, state.ERROR, store.Snapshot().Phase)
	assert.Contains(t, store.Snapshot().Err, "invalid host")
}

func TestAppStopsOnContext(t *testing.T) {
	store := state.NewStore()
	console := &fakeConsole{}
	a := New(store, render.NewMemoryHost(60, 60), nil, options.Default())
	a.Scheduler = clock.NewManualScheduler()
	a.Console = console
	a.NetInfo = fakeNetInfo{ip: "10.1.2.3"}
	a.ListenAddr = ":8080"

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Start(ctx) }()
	require.Eventually(t, func() bool { return store.Snapshot().Network.URL != "" }, 2*time.Second, time.Millisecond)
	assert.Equal(t, state.NetworkInfo{IP: "10.1.2.3", URL: "http://10.1.2.3:8080/"}, store.Snapshot().Network)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("app did not stop")
	}
	assert.Equal(t, 1, console.enters)
	assert.Equal(t, 1, console.leaves)
}

func TestAppRecordsFrozenSource(t *testing.T) {
	source := clocktime.NewOverrideSource(clocktime.FixedSource{})
	source.Freeze(clocktime.Sample{Hours: 1, Seconds: 1})
	h := startApp(t, options.Default(), source)

	snap := h.store.Snapshot()
	assert.True(t, snap.Clock.Frozen)
	assert.Equal(t, "01:00:01.000", snap.Clock.Time)
	assert.True(t, snap.Clock.TimeIndicatorHidden, "6 degrees is below the visible range")

	h.exit(t)
}

func TestTimeIndicatorVisibility(t *testing.T) {
	a := New(state.NewStore(), nil, nil, options.Default())
	cases := []struct {
		angle  float64
		hidden bool
	}{
		{0, true},
		{8.99, true},
		{9, false},
		{90, false},
		{130, false},
		{130.01, true},
		{359.9, true},
	}
	for _, tc := range cases {
		a.onSecondHandTick(tc.angle)
		assert.Equal(t, tc.hidden, a.Store.Snapshot().Clock.TimeIndicatorHidden, "angle %v", tc.angle)
	}
}

func TestFramesFromHost(t *testing.T) {
	host := render.NewMemoryHost(10, 10)
	a := New(state.NewStore(), host, nil, options.Default())
	assert.Same(t, host, a.Frames())

	a.Host = render.NewPNGHost("unused.png", 10, 10)
	assert.Nil(t, a.Frames())
}

func TestFileLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewFileLogger(&buf)
	logger.Infof("clock", "started after %d ticks", 3)
	logger.Errorf("fb", "present: %v", errors.New("gone"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[0], " [INFO] clock: started after 3 ticks"), lines[0])
	assert.True(t, strings.HasSuffix(lines[1], " [ERROR] fb: present: gone"), lines[1])

	NoopLogger{}.Infof("x", "y")
	FileLogger{}.Infof("x", "nothing to write to")
}
