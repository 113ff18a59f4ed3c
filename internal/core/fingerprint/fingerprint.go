// Package fingerprint derives the identifier used to approximate "one voting device".
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"net"
	"net/http"
	"strings"
)

const unknownIP = "unknown"

// Generate hashes the user agent and IP address into a 64 character lowercase hex string.
// A nil ip is hashed as "unknown"; an empty ip is hashed as given.
func Generate(userAgent string, ip *string) string {
	addr := unknownIP
	if ip != nil {
		addr = *ip
	}

	sum := sha256.Sum256([]byte(userAgent + "|" + addr))
	return hex.EncodeToString(sum[:])
}

// ClientIP returns the caller address, trusting only the first entry of X-Forwarded-For.
// Lookup order is X-Forwarded-For, X-Client-IP, X-Real-IP and then the connection address.
func ClientIP(header http.Header, remoteAddr string) (string, bool) {
	if xff := header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first), true
	}

	if ip := header.Get("X-Client-IP"); ip != "" {
		return ip, true
	}

	if ip := header.Get("X-Real-IP"); ip != "" {
		return ip, true
	}

	if remoteAddr == "" {
		return "", false
	}

	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr, true
	}
	return host, true
}

// FromRequest derives the fingerprint of the device that sent r.
func FromRequest(r *http.Request) string {
	var ip *string
	if addr, ok := ClientIP(r.Header, r.RemoteAddr); ok {
		ip = &addr
	}
	return Generate(r.UserAgent(), ip)
}
