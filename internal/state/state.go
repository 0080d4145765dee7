package state

import (
	"sync"

	"github.com/rook-computer/analogclock/internal/clocktime"
)

type Phase int

const (
	BOOTING Phase = iota
	IDLE
	RUNNING
	STOPPED
	ERROR
)

var phaseNames = map[Phase]string{
	BOOTING: "booting",
	IDLE:    "idle",
	RUNNING: "running",
	STOPPED: "stopped",
	ERROR:   "error",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return "unknown"
}

func (p Phase) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

type NetworkInfo struct {
	IP  string `json:"ip"`
	URL string `json:"url"`
}

type ClockInfo struct {
	Ticks       int64   `json:"ticks"`
	Time        string  `json:"time"`
	SecondAngle float64 `json:"secondAngle"`
	// TimeIndicatorHidden drives the hidden attribute of the #time element.
	TimeIndicatorHidden bool `json:"timeIndicatorHidden"`
	Frozen              bool `json:"frozen"`
}

type State struct {
	Phase   Phase       `json:"phase"`
	Clock   ClockInfo   `json:"clock"`
	Network NetworkInfo `json:"network"`
	Err     string      `json:"error,omitempty"`
}

type Store struct {
	mu    sync.RWMutex
	state State
}

func NewStore() *Store {
	return &Store{state: State{Phase: BOOTING}}
}

func (store *Store) Snapshot() State {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.state
}

func (store *Store) SetPhase(phase Phase) {
	store.mu.Lock()
	store.state.Phase = phase
	store.mu.Unlock()
}

func (store *Store) SetError(err error) {
	store.mu.Lock()
	store.state.Phase = ERROR
	store.state.Err = err.Error()
	store.mu.Unlock()
}

func (store *Store) UpdateNetwork(network NetworkInfo) {
	store.mu.Lock()
	store.state.Network = network
	store.mu.Unlock()
}

// RecordTick stores the sample the arrows were last drawn for.
func (store *Store) RecordTick(sample clocktime.Sample, ticks int64, frozen bool) {
	store.mu.Lock()
	store.state.Clock.Ticks = ticks
	store.state.Clock.Time = sample.String()
	store.state.Clock.Frozen = frozen
	store.mu.Unlock()
}

// RecordSecondHand stores the second hand angle and the visibility of the
// time indicator derived from it.
func (store *Store) RecordSecondHand(angle float64, indicatorHidden bool) {
	store.mu.Lock()
	store.state.Clock.SecondAngle = angle
	store.state.Clock.TimeIndicatorHidden = indicatorHidden
	store.mu.Unlock()
}
