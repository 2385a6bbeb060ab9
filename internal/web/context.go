package web

import (
	"net"
	"net/http"
)

// clientIP returns the client address of r without its port.
// TrustedRealIP has already replaced RemoteAddr for proxied requests.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
