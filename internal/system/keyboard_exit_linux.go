//go:build linux

package system

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sys/unix"
)

const (
	evKey = 0x01

	// Linux input-event-codes.h
	keyF4 = 62
)

type keyboardExitLogger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

// inputEvent describes the layout of struct input_event on this arch:
// timeval, u16 type, u16 code, s32 value.
type inputEvent struct {
	tvSize int
	size   int
}

func nativeInputEvent() inputEvent {
	tv := int(binary.Size(unix.Timeval{}))
	if tv <= 0 {
		tv = 16
	}
	return inputEvent{tvSize: tv, size: tv + 8}
}

// pressed reports whether buf holds a key-down record for code.
func (e inputEvent) pressed(buf []byte, code uint16) bool {
	for off := 0; off+e.size <= len(buf); off += e.size {
		rec := buf[off : off+e.size]
		typ := binary.LittleEndian.Uint16(rec[e.tvSize : e.tvSize+2])
		c := binary.LittleEndian.Uint16(rec[e.tvSize+2 : e.tvSize+4])
		value := int32(binary.LittleEndian.Uint32(rec[e.tvSize+4 : e.tvSize+8]))
		if typ == evKey && c == code && value == 1 {
			return true
		}
	}
	return false
}

// StartExitOnF4 watches evdev devices under /dev/input/event* and calls
// onExit once when F4 goes down. Without input devices it logs and returns.
func StartExitOnF4(ctx context.Context, logger keyboardExitLogger, onExit func()) {
	if onExit == nil {
		return
	}

	paths, err := filepath.Glob("/dev/input/event*")
	if err != nil || len(paths) == 0 {
		if logger != nil {
			logger.Infof("input", "no evdev devices found for F4 exit")
		}
		return
	}

	var once sync.Once
	triggerExit := func() {
		once.Do(func() {
			if logger != nil {
				logger.Infof("input", "F4 pressed: exiting")
			}
			onExit()
		})
	}

	ev := nativeInputEvent()
	for _, path := range paths {
		go watchDevice(ctx, path, ev, triggerExit)
	}
}

func watchDevice(ctx context.Context, path string, ev inputEvent, triggerExit func()) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return
	}
	f := os.NewFile(uintptr(fd), path)
	defer func() {
		_ = f.Close()
	}()

	buf := make([]byte, 4096)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		pollFds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		if _, err := unix.Poll(pollFds, 250); err != nil {
			if err == unix.EINTR {
				continue
			}
			// Device might have gone away.
			return
		}
		if pollFds[0].Revents&unix.POLLIN == 0 {
			continue
		}

		n, err := unix.Read(fd, buf)
		if err != nil {
			if err == unix.EAGAIN || err == unix.EINTR {
				continue
			}
			return
		}
		if ev.pressed(buf[:n], keyF4) {
			triggerExit()
			// Give the app a moment to unwind; then stop reading.
			time.Sleep(50 * time.Millisecond)
			return
		}
	}
}
