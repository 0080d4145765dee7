//go:build linux

package system

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
)

func record(ev inputEvent, typ, code uint16, value int32) []byte {
	rec := make([]byte, ev.size)
	binary.LittleEndian.PutUint16(rec[ev.tvSize:], typ)
	binary.LittleEndian.PutUint16(rec[ev.tvSize+2:], code)
	binary.LittleEndian.PutUint32(rec[ev.tvSize+4:], uint32(value))
	return rec
}

func TestInputEventPressed(t *testing.T) {
	ev := nativeInputEvent()
	assert.Equal(t, ev.tvSize+8, ev.size)

	release := record(ev, evKey, keyF4, 0)
	other := record(ev, evKey, 30, 1)
	down := record(ev, evKey, keyF4, 1)
	syn := record(ev, 0, 0, 0)

	assert.False(t, ev.pressed(append(release, other...), keyF4))
	assert.True(t, ev.pressed(append(append(syn, other...), down...), keyF4))
	// A truncated trailing record is ignored.
	assert.False(t, ev.pressed(down[:ev.size-1], keyF4))
}
