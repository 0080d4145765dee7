// Package system holds the device-side helpers of the clock: console mode,
// the F4 exit key and network discovery for the viewer URL.
package system

import (
	"context"
	"errors"
	"net"
)

type logger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

// Console prepares the framebuffer console for the clock and restores it.
type Console struct {
	Logger logger
}

// Enter switches to graphics mode and hides the cursor. Failures are logged
// and returned; the clock still draws when they happen.
func (c Console) Enter() error {
	err := logResult(c.Logger, SetGraphicsMode(), "KD_GRAPHICS set", "KD_GRAPHICS failed: %v")
	if cursorErr := logResult(c.Logger, HideCursor(), "cursor hidden", "hide cursor failed: %v"); err == nil {
		err = cursorErr
	}
	return err
}

// Leave shows the cursor and restores text mode.
func (c Console) Leave() error {
	err := logResult(c.Logger, ShowCursor(), "cursor shown", "show cursor failed: %v")
	if modeErr := logResult(c.Logger, RestoreTextMode(), "KD_TEXT set", "KD_TEXT failed: %v"); err == nil {
		err = modeErr
	}
	return err
}

func logResult(l logger, err error, ok, failed string) error {
	if l == nil {
		return err
	}
	if err != nil {
		l.Errorf("tty", failed, err)
	} else {
		l.Infof("tty", "%s", ok)
	}
	return err
}

type NetInfo interface {
	IP(ctx context.Context) (string, error)
}

var ErrNoAddress = errors.New("no non-loopback IPv4 address")

// InterfaceNetInfo reports the first global IPv4 address of the host.
type InterfaceNetInfo struct {
	// Addrs defaults to net.InterfaceAddrs.
	Addrs func() ([]net.Addr, error)
}

func (n InterfaceNetInfo) IP(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	list := n.Addrs
	if list == nil {
		list = net.InterfaceAddrs
	}
	addrs, err := list()
	if err != nil {
		return "", err
	}
	for _, addr := range addrs {
		ipNet, ok := addr.(*net.IPNet)
		if !ok {
			continue
		}
		ip := ipNet.IP.To4()
		if ip == nil || ip.IsLoopback() || ip.IsLinkLocalUnicast() {
			continue
		}
		return ip.String(), nil
	}
	return "", ErrNoAddress
}
