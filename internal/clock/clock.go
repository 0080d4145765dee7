// Package clock owns the lifecycle of one analog clock: it allocates the face
// and arrow layers for a host, draws the face once and drives the
// self-rescheduling tick that redraws the arrows.
package clock

import (
	"context"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rook-computer/analogclock/internal/clocktime"
	"github.com/rook-computer/analogclock/internal/geometry"
	"github.com/rook-computer/analogclock/internal/options"
	"github.com/rook-computer/analogclock/internal/render"
	"github.com/rook-computer/analogclock/internal/view"
)

// DefaultDelay is the pause between the end of one tick and the next.
const DefaultDelay = 50 * time.Millisecond

type Phase int

const (
	Idle Phase = iota
	Running
	Stopped
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type noopLogger struct{}

func (noopLogger) Infof(component, format string, args ...interface{})  {}
func (noopLogger) Errorf(component, format string, args ...interface{}) {}

// Config holds the collaborators of a clock. Zero values pick the real
// scheduler, the local wall clock and DefaultDelay.
type Config struct {
	Scheduler Scheduler
	Source    clocktime.Source
	Logger    Logger
	Delay     time.Duration

	// OnSecondHandTick receives the second hand angle after every arrow draw.
	OnSecondHandTick func(seconds float64)
	// OnTick is called after each tick has been presented.
	OnTick func(s clocktime.Sample)
}

func (cfg Config) withDefaults() Config {
	if cfg.Scheduler == nil {
		cfg.Scheduler = RealScheduler{}
	}
	if cfg.Source == nil {
		cfg.Source = clocktime.RealSource{}
	}
	if cfg.Logger == nil {
		cfg.Logger = noopLogger{}
	}
	if cfg.Delay <= 0 {
		cfg.Delay = DefaultDelay
	}
	return cfg
}

type faceDrawer interface {
	Draw()
	Layer() *render.Layer
}

type arrowsDrawer interface {
	Draw(s clocktime.Sample)
	Layer() *render.Layer
}

type Clock struct {
	host   render.Host
	face   faceDrawer
	arrows arrowsDrawer
	cfg    Config

	mu    sync.Mutex
	phase Phase
	timer Timer

	ticks atomic.Int64
}

// New builds a clock on host. Both layers take the host's current size; later
// size changes are not observed. The face is drawn and one tick runs before
// New returns; the loop keeps going only when opts.IsWork is set.
func New(host render.Host, opts options.Options, cfg Config) (*Clock, error) {
	if host == nil {
		return nil, &InvalidHostError{Reason: "no host"}
	}
	w, h := host.Size()
	if w <= 0 || h <= 0 {
		return nil, &InvalidHostError{Reason: fmt.Sprintf("size %dx%d", w, h)}
	}
	dial := geometry.FromSize(w, h, opts.Margin)
	if !(dial.Radius > 0) || math.IsInf(dial.Radius, 0) {
		return nil, &InvalidHostError{Reason: fmt.Sprintf("radius %.1f with margin %.1f", dial.Radius, opts.Margin)}
	}
	faceLayer, err := render.NewLayer(w, h)
	if err != nil {
		return nil, &InvalidHostError{Reason: "face layer", Err: err}
	}
	arrowsLayer, err := render.NewLayer(w, h)
	if err != nil {
		return nil, &InvalidHostError{Reason: "arrows layer", Err: err}
	}

	cfg = cfg.withDefaults()
	digits, err := render.LoadFace(opts.Face.DigitsFont)
	if err != nil {
		cfg.Logger.Errorf("clock", "digits font %s: %v, using fallback", opts.Face.DigitsFont, err)
		digits = nil
	}
	face := view.NewFaceView(faceLayer, dial, opts.Face, digits)
	arrows := view.NewArrowsView(arrowsLayer, dial, opts.Arrows, cfg.OnSecondHandTick)
	return newWithViews(host, face, arrows, opts.IsWork, cfg), nil
}

func newWithViews(host render.Host, face faceDrawer, arrows arrowsDrawer, isWork bool, cfg Config) *Clock {
	c := &Clock{host: host, face: face, arrows: arrows, cfg: cfg.withDefaults()}
	c.face.Draw()
	if isWork {
		c.phase = Running
	}
	c.cfg.Logger.Infof("clock", "created, phase=%s delay=%s", c.phase, c.cfg.Delay)
	c.tick()
	return c
}

// Start enters Running from Idle. It is a no-op while running and fails with
// ErrStopped once the clock has been stopped.
func (c *Clock) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.phase {
	case Running:
		return nil
	case Stopped:
		return ErrStopped
	}
	c.phase = Running
	c.timer = c.cfg.Scheduler.AfterFunc(c.cfg.Delay, c.scheduledTick)
	c.cfg.Logger.Infof("clock", "started")
	return nil
}

// Stop clears the running flag and cancels the pending tick. A tick already
// in progress finishes but does not schedule another.
func (c *Clock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase == Stopped {
		return
	}
	c.phase = Stopped
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.cfg.Logger.Infof("clock", "stopped after %d ticks", c.ticks.Load())
}

// Run starts the clock and blocks until ctx is done, then stops it.
func (c *Clock) Run(ctx context.Context) error {
	if err := c.Start(); err != nil {
		return err
	}
	<-ctx.Done()
	c.Stop()
	return ctx.Err()
}

func (c *Clock) State() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Ticks counts completed arrow redraws, the one made by New included.
func (c *Clock) Ticks() int64 { return c.ticks.Load() }

func (c *Clock) scheduledTick() {
	c.mu.Lock()
	running := c.phase == Running
	c.mu.Unlock()
	if !running {
		return
	}
	c.tick()
}

func (c *Clock) tick() {
	s := c.cfg.Source.Now()
	c.arrows.Draw(s)
	if err := c.host.Present(c.face.Layer().Image(), c.arrows.Layer().Image()); err != nil {
		c.cfg.Logger.Errorf("clock", "present: %v", err)
	}
	c.ticks.Add(1)
	if c.cfg.OnTick != nil {
		c.cfg.OnTick(s)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != Running {
		return
	}
	c.timer = c.cfg.Scheduler.AfterFunc(c.cfg.Delay, c.scheduledTick)
}
