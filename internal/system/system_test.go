package system

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewerURL(t *testing.T) {
	cases := []struct {
		ip, listen, want string
	}{
		{"192.168.1.20", ":80", "http://192.168.1.20/"},
		{"192.168.1.20", ":8080", "http://192.168.1.20:8080/"},
		{"", ":8080", "http://127.0.0.1:8080/"},
		{"192.168.1.20", "10.0.0.5:9000", "http://10.0.0.5:9000/"},
		{"192.168.1.20", "0.0.0.0:8080", "http://192.168.1.20:8080/"},
		{"192.168.1.20", "garbage", "http://192.168.1.20/"},
		{"fd00::2", ":8080", "http://[fd00::2]:8080/"},
		{"fd00::2", ":80", "http://[fd00::2]/"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ViewerURL(tc.ip, tc.listen), "ip=%q listen=%q", tc.ip, tc.listen)
	}
}

func cidr(t *testing.T, s string) net.Addr {
	t.Helper()
	ip, ipNet, err := net.ParseCIDR(s)
	require.NoError(t, err)
	ipNet.IP = ip
	return ipNet
}

func TestInterfaceNetInfoSkipsLocalAddresses(t *testing.T) {
	info := InterfaceNetInfo{Addrs: func() ([]net.Addr, error) {
		return []net.Addr{
			cidr(t, "127.0.0.1/8"),
			cidr(t, "169.254.3.4/16"),
			cidr(t, "fe80::1/64"),
			cidr(t, "192.168.7.42/24"),
			cidr(t, "10.0.0.1/8"),
		}, nil
	}}
	ip, err := info.IP(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "192.168.7.42", ip)
}

func TestInterfaceNetInfoErrors(t *testing.T) {
	none := InterfaceNetInfo{Addrs: func() ([]net.Addr, error) {
		return []net.Addr{cidr(t, "127.0.0.1/8")}, nil
	}}
	_, err := none.IP(context.Background())
	assert.ErrorIs(t, err, ErrNoAddress)

	boom := errors.New("netlink")
	failing := InterfaceNetInfo{Addrs: func() ([]net.Addr, error) { return nil, boom }}
	_, err = failing.IP(context.Background())
	assert.ErrorIs(t, err, boom)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = none.IP(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

type recordingLogger struct{ infos, errors int }

func (l *recordingLogger) Infof(string, string, ...interface{})  { l.infos++ }
func (l *recordingLogger) Errorf(string, string, ...interface{}) { l.errors++ }

func TestLogResult(t *testing.T) {
	l := &recordingLogger{}
	assert.NoError(t, logResult(l, nil, "ok", "failed: %v"))
	assert.Error(t, logResult(l, errors.New("x"), "ok", "failed: %v"))
	assert.Equal(t, 1, l.infos)
	assert.Equal(t, 1, l.errors)
	assert.Error(t, logResult(nil, errors.New("x"), "ok", "failed: %v"))
}
