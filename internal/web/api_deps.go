package web

import (
	"errors"
	"image"

	"github.com/rook-computer/analogclock/internal/render"
	"github.com/rook-computer/analogclock/internal/state"
)

// StateSource is usually a *state.Store.
type StateSource interface {
	Snapshot() state.State
}

// ClockControl is the start/stop surface of a running clock.
type ClockControl interface {
	Start() error
	Stop()
}

// apiLogger matches app.Logger; callers pass their logger without adapters.
type apiLogger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type APIV1Deps struct {
	State   StateSource
	Control ClockControl
	// Frames provides the last presented frame for /clock.png.
	Frames render.Snapshotter
	Logger apiLogger
}

var errNotConfigured = errors.New("not configured")

func (d APIV1Deps) withDefaults() APIV1Deps {
	out := d
	if out.State == nil {
		out.State = state.NewStore()
	}
	if out.Control == nil {
		out.Control = NoopClockControl{Err: errNotConfigured}
	}
	if out.Frames == nil {
		out.Frames = noFrames{}
	}
	if out.Logger == nil {
		out.Logger = noopAPILogger{}
	}
	return out
}

type NoopClockControl struct{ Err error }

func (c NoopClockControl) Start() error { return c.Err }
func (NoopClockControl) Stop()          {}

type noFrames struct{}

func (noFrames) Snapshot() *image.RGBA { return nil }

type noopAPILogger struct{}

func (noopAPILogger) Infof(string, string, ...interface{})  {}
func (noopAPILogger) Errorf(string, string, ...interface{}) {}
