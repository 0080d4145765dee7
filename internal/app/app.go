package app

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/rook-computer/analogclock/internal/clock"
	"github.com/rook-computer/analogclock/internal/clocktime"
	"github.com/rook-computer/analogclock/internal/options"
	"github.com/rook-computer/analogclock/internal/render"
	"github.com/rook-computer/analogclock/internal/state"
	"github.com/rook-computer/analogclock/internal/system"
	"github.com/rook-computer/analogclock/internal/web"
)

// Console is switched into drawing mode for the lifetime of the app.
type Console interface {
	Enter() error
	Leave() error
}

type App struct {
	Store   *state.Store
	Host    render.Host
	Web     web.Server
	Options options.Options
	Logger  Logger

	// Optional collaborators; zero values use the real clock and scheduler
	// and skip console and network handling.
	Source     clocktime.Source
	Scheduler  clock.Scheduler
	Console    Console
	NetInfo    system.NetInfo
	ListenAddr string

	mu    sync.Mutex
	clock *clock.Clock

	exitOnce atomic.Bool
	exitCh   chan error
}

var errNoClock = errors.New("clock not created")

// freezer is implemented by sources that can pin the time, such as
// clocktime.OverrideSource.
type freezer interface {
	Frozen() (clocktime.Sample, bool)
}

func New(store *state.Store, host render.Host, webServer web.Server, opts options.Options) *App {
	return &App{Store: store, Host: host, Web: webServer, Options: opts, Logger: NoopLogger{}, exitCh: make(chan error, 1)}
}

// Exit requests the app to stop running.
func (app *App) Exit(err error) {
	if app.exitCh == nil {
		return
	}
	if !app.exitOnce.CompareAndSwap(false, true) {
		return
	}
	select {
	case app.exitCh <- err:
	default:
	}
}

// Start builds the clock on the host and serves until ctx is done or Exit is
// called. A host the clock cannot use fails immediately.
func (app *App) Start(ctx context.Context) error {
	if app.exitCh == nil {
		app.exitCh = make(chan error, 1)
	}
	app.exitOnce.Store(false)
	if app.Logger == nil {
		app.Logger = NoopLogger{}
	}

	if app.Console != nil {
		_ = app.Console.Enter()
		defer func() { _ = app.Console.Leave() }()
	}

	c, err := clock.New(app.Host, app.Options, clock.Config{
		Scheduler:        app.Scheduler,
		Source:           app.Source,
		Logger:           app.Logger,
		OnSecondHandTick: app.onSecondHandTick,
		OnTick:           app.onTick,
	})
	if err != nil {
		app.Logger.Errorf("app", "clock: %v", err)
		app.Store.SetError(err)
		return err
	}
	app.mu.Lock()
	app.clock = c
	app.mu.Unlock()
	app.syncPhase()
	defer func() {
		c.Stop()
		app.syncPhase()
	}()

	app.publishNetwork(ctx)

	if app.Web != nil {
		if err := app.Web.Start(ctx); err != nil {
			app.Logger.Errorf("web", "start: %v", err)
		}
		defer func() { _ = app.Web.Stop() }()
	}

	select {
	case <-ctx.Done():
		err = ctx.Err()
	case err = <-app.exitCh:
	}
	return err
}

// Control exposes start/stop of the running clock to the web API.
func (app *App) Control() web.ClockControl { return clockControl{app: app} }

// Frames exposes the host's last frame when the host keeps one.
func (app *App) Frames() render.Snapshotter {
	if s, ok := app.Host.(render.Snapshotter); ok {
		return s
	}
	return nil
}

func (app *App) current() *clock.Clock {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.clock
}

// onSecondHandTick keeps the time indicator visible while the second hand
// angle is within [9, 130].
func (app *App) onSecondHandTick(seconds float64) {
	visible := seconds >= 9 && seconds <= 130
	app.Store.RecordSecondHand(seconds, !visible)
}

func (app *App) onTick(s clocktime.Sample) {
	var ticks int64
	if c := app.current(); c != nil {
		ticks = c.Ticks()
	} else {
		// First tick runs inside clock.New.
		ticks = 1
	}
	frozen := false
	if f, ok := app.Source.(freezer); ok {
		_, frozen = f.Frozen()
	}
	app.Store.RecordTick(s, ticks, frozen)
}

func (app *App) syncPhase() {
	c := app.current()
	if c == nil {
		return
	}
	switch c.State() {
	case clock.Idle:
		app.Store.SetPhase(state.IDLE)
	case clock.Running:
		app.Store.SetPhase(state.RUNNING)
	case clock.Stopped:
		app.Store.SetPhase(state.STOPPED)
	}
}

func (app *App) publishNetwork(ctx context.Context) {
	if app.NetInfo == nil {
		return
	}
	ip, err := app.NetInfo.IP(ctx)
	if err != nil {
		app.Logger.Errorf("net", "ip lookup: %v", err)
	}
	url := system.ViewerURL(ip, app.ListenAddr)
	app.Store.UpdateNetwork(state.NetworkInfo{IP: ip, URL: url})
	app.Logger.Infof("net", "viewer at %s", url)
}

type clockControl struct{ app *App }

func (c clockControl) Start() error {
	clk := c.app.current()
	if clk == nil {
		return errNoClock
	}
	if err := clk.Start(); err != nil {
		return err
	}
	c.app.syncPhase()
	return nil
}

func (c clockControl) Stop() {
	if clk := c.app.current(); clk != nil {
		clk.Stop()
		c.app.syncPhase()
	}
}
