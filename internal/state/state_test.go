package state

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rook-computer/analogclock/internal/clocktime"
)

func TestStoreStartsBooting(t *testing.T) {
	store := NewStore()
	assert.Equal(t, BOOTING, store.Snapshot().Phase)
}

func TestStoreRecordsClock(t *testing.T) {
	store := NewStore()
	store.SetPhase(RUNNING)
	store.RecordTick(clocktime.Sample{Hours: 3, Minutes: 15, Seconds: 30}, 7, true)
	store.RecordSecondHand(180, false)

	snap := store.Snapshot()
	assert.Equal(t, RUNNING, snap.Phase)
	assert.Equal(t, ClockInfo{Ticks: 7, Time: "03:15:30.000", SecondAngle: 180, Frozen: true}, snap.Clock)

	store.RecordSecondHand(3, true)
	assert.True(t, store.Snapshot().Clock.TimeIndicatorHidden)
	assert.Equal(t, int64(7), store.Snapshot().Clock.Ticks)
}

func TestStoreError(t *testing.T) {
	store := NewStore()
	store.SetError(errors.New("invalid host: size 0x0"))
	snap := store.Snapshot()
	assert.Equal(t, ERROR, snap.Phase)
	assert.Equal(t, "invalid host: size 0x0", snap.Err)
}

func TestStateJSON(t *testing.T) {
	store := NewStore()
	store.SetPhase(STOPPED)
	store.UpdateNetwork(NetworkInfo{IP: "10.0.0.2", URL: "http://10.0.0.2/"})

	data, err := json.Marshal(store.Snapshot())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "stopped", decoded["phase"])
	assert.Equal(t, "http://10.0.0.2/", decoded["network"].(map[string]any)["url"])
	assert.NotContains(t, decoded, "error")
	assert.Equal(t, "unknown", Phase(42).String())
}
