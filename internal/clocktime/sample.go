package clocktime

import (
	"fmt"
	"sync"
	"time"
)

// Sample is the instant used for one redraw of the arrow layer.
type Sample struct {
	Hours        int // 0-23
	Minutes      int // 0-59
	Seconds      int // 0-59
	Milliseconds int // 0-999
}

// FromTime takes the wall-clock fields of t in its own location.
func FromTime(t time.Time) Sample {
	return Sample{
		Hours:        t.Hour(),
		Minutes:      t.Minute(),
		Seconds:      t.Second(),
		Milliseconds: t.Nanosecond() / int(time.Millisecond),
	}
}

// Parse reads "15:04:05" or "15:04:05.000".
func Parse(value string) (Sample, error) {
	for _, layout := range []string{"15:04:05.000", "15:04:05"} {
		if t, err := time.Parse(layout, value); err == nil {
			return FromTime(t), nil
		}
	}
	return Sample{}, fmt.Errorf("invalid time %q: want HH:MM:SS[.mmm]", value)
}

func (s Sample) String() string {
	return fmt.Sprintf("%02d:%02d:%02d.%03d", s.Hours, s.Minutes, s.Seconds, s.Milliseconds)
}

// HourAngle is the sweep angle of the hour hand in degrees clockwise from 12 o'clock.
func (s Sample) HourAngle() float64 {
	return 30 * (float64(s.Hours%12) + float64(s.Minutes)/60)
}

// MinuteAngle is the sweep angle of the minute hand.
func (s Sample) MinuteAngle() float64 {
	return 6 * (float64(s.Minutes) + float64(s.Seconds)/60)
}

// SecondAngle is the sweep angle of the second hand.
func (s Sample) SecondAngle() float64 {
	return 6 * (float64(s.Seconds) + float64(s.Milliseconds)/1000)
}

// Source supplies the time sample for each tick.
type Source interface {
	Now() Sample
}

// RealSource reads the host's local wall clock.
type RealSource struct{}

func (RealSource) Now() Sample { return FromTime(time.Now()) }

// FixedSource always returns the same sample.
type FixedSource Sample

func (f FixedSource) Now() Sample { return Sample(f) }

// SourceFunc adapts a function to Source.
type SourceFunc func() Sample

func (f SourceFunc) Now() Sample { return f() }

// OverrideSource reads from Base until a frozen sample is set.
type OverrideSource struct {
	Base Source

	mu     sync.RWMutex
	frozen *Sample
}

func NewOverrideSource(base Source) *OverrideSource {
	if base == nil {
		base = RealSource{}
	}
	return &OverrideSource{Base: base}
}

func (o *OverrideSource) Now() Sample {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if o.frozen != nil {
		return *o.frozen
	}
	return o.Base.Now()
}

// Freeze pins every following Now call to s.
func (o *OverrideSource) Freeze(s Sample) {
	o.mu.Lock()
	o.frozen = &s
	o.mu.Unlock()
}

// Release goes back to the base source.
func (o *OverrideSource) Release() {
	o.mu.Lock()
	o.frozen = nil
	o.mu.Unlock()
}

// Frozen reports the pinned sample, if any.
func (o *OverrideSource) Frozen() (Sample, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if o.frozen == nil {
		return Sample{}, false
	}
	return *o.frozen, true
}
