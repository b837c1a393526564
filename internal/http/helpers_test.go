package http

import (
	"net/http/httptest"
	"testing"
)

func TestParseMonthFilter(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		wantYear  int
		wantMonth int
		wantOK    bool
		wantErr   bool
	}{
		{name: "absent", url: "/api/dashboard", wantOK: false},
		{name: "both present", url: "/api/dashboard?year=2024&month=7", wantYear: 2024, wantMonth: 7, wantOK: true},
		{name: "only year", url: "/api/dashboard?year=2024", wantErr: true},
		{name: "only month", url: "/api/dashboard?month=7", wantErr: true},
		{name: "month out of range", url: "/api/dashboard?year=2024&month=13", wantErr: true},
		{name: "month zero", url: "/api/dashboard?year=2024&month=0", wantErr: true},
		{name: "non-numeric year", url: "/api/dashboard?year=abc&month=7", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.url, nil)
			year, month, ok, err := parseMonthFilter(r)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ok != tt.wantOK || year != tt.wantYear || month != tt.wantMonth {
				t.Errorf("got (%d, %d, %v), want (%d, %d, %v)", year, month, ok, tt.wantYear, tt.wantMonth, tt.wantOK)
			}
		})
	}
}

func TestFormatReais(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{0, "R$ 0,00"},
		{25050, "R$ 250,50"},
		{145000, "R$ 1450,00"},
		{5, "R$ 0,05"},
		{-1234, "-R$ 12,34"},
	}
	for _, tt := range tests {
		if got := formatReais(tt.cents); got != tt.want {
			t.Errorf("formatReais(%d) = %q, want %q", tt.cents, got, tt.want)
		}
	}
}

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Posto Ipiranga  ", "Posto Ipiranga"},
		{"linha\x00nula", "linhanula"},
		{"com\ttab", "com\ttab"},
	}
	for _, tt := range tests {
		if got := sanitizeInput(tt.in); got != tt.want {
			t.Errorf("sanitizeInput(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExtractClientIPTrustsProxyHeaders(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.0.0.5:1234"
	r.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.5")
	if got := extractClientIP(r); got != "203.0.113.9" {
		t.Errorf("extractClientIP = %q, want forwarded ip", got)
	}
}

func TestExtractClientIPIgnoresUntrustedForwarding(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "203.0.113.50:1234"
	r.Header.Set("X-Forwarded-For", "198.51.100.1")
	if got := extractClientIP(r); got != "203.0.113.50" {
		t.Errorf("extractClientIP = %q, want direct peer", got)
	}
}
