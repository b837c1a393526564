package http

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"frota/internal/core"
)

// parseMonthFilter extracts an optional year/month window from query
// parameters. ok is false when neither parameter is present; an invalid or
// partial pair reports an error.
func parseMonthFilter(r *http.Request) (year, month int, ok bool, err error) {
	ys := strings.TrimSpace(r.URL.Query().Get("year"))
	ms := strings.TrimSpace(r.URL.Query().Get("month"))
	if ys == "" && ms == "" {
		return 0, 0, false, nil
	}
	if ys == "" || ms == "" {
		return 0, 0, false, fmt.Errorf("year and month must be provided together")
	}
	year, err = strconv.Atoi(ys)
	if err != nil {
		return 0, 0, false, fmt.Errorf("invalid year %q", ys)
	}
	month, err = strconv.Atoi(ms)
	if err != nil || month < 1 || month > 12 {
		return 0, 0, false, fmt.Errorf("invalid month %q", ms)
	}
	return year, month, true, nil
}

// parseDate parses a date string in YYYY-MM-DD format.
func parseDate(dateStr string) (core.Date, error) {
	parsedTime, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return core.Date{}, err
	}
	return core.Date{Time: parsedTime}, nil
}

// formatReais formats cents as a currency string (e.g., "R$ 12,34").
func formatReais(cents int64) string {
	neg := cents < 0
	if neg {
		cents = -cents
	}
	whole := cents / 100
	rem := cents % 100
	s := strconv.FormatInt(whole, 10) + "," + fmt.Sprintf("%02d", rem)
	if neg {
		return "-R$ " + s
	}
	return "R$ " + s
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

// trustedProxies defines networks trusted to set forwarding headers.
var trustedProxies = func() []*net.IPNet {
	cidrs := []string{"127.0.0.0/8", "10.0.0.0/8", "172.16.0.0/12", "192.168.0.0/16"}
	nets := make([]*net.IPNet, 0, len(cidrs))
	for _, c := range cidrs {
		_, network, err := net.ParseCIDR(c)
		if err != nil {
			panic(fmt.Sprintf("parse trusted proxy CIDR %s: %v", c, err))
		}
		nets = append(nets, network)
	}
	return nets
}()

func isTrustedProxy(ip net.IP) bool {
	for _, network := range trustedProxies {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}

// extractClientIP extracts the real client IP. Forwarding headers are only
// honored when the direct peer is a trusted proxy.
func extractClientIP(r *http.Request) string {
	directIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		directIP = r.RemoteAddr
	}

	parsedDirectIP := net.ParseIP(directIP)
	if parsedDirectIP == nil {
		return directIP
	}

	if isTrustedProxy(parsedDirectIP) {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			first := strings.TrimSpace(strings.Split(xff, ",")[0])
			if net.ParseIP(first) != nil {
				return first
			}
		}
		if xri := r.Header.Get("X-Real-IP"); xri != "" {
			if net.ParseIP(xri) != nil {
				return xri
			}
		}
	}

	return directIP
}

// generateRequestID creates a unique request ID for tracing.
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}
