package system

import (
	"net"
	"strings"
)

// ViewerURL is the URL a phone on the same network opens to watch the clock
// served on listenAddr. An explicit listen host wins over ip.
func ViewerURL(ip, listenAddr string) string {
	host, port, err := net.SplitHostPort(strings.TrimSpace(listenAddr))
	if err != nil {
		host, port = "", ""
	}
	if host != "" && host != "0.0.0.0" && host != "::" {
		ip = host
	}
	if ip == "" {
		ip = "127.0.0.1"
	}
	if port == "" || port == "80" {
		if strings.Contains(ip, ":") {
			return "http://[" + ip + "]/"
		}
		return "http://" + ip + "/"
	}
	return "http://" + net.JoinHostPort(ip, port) + "/"
}
