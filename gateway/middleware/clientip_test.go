package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientIdentifier(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{
			name:    "forwarded chain uses first entry",
			headers: map[string]string{"X-Forwarded-For": " 203.0.113.7 , 10.0.0.1, 10.0.0.2"},
			want:    "203.0.113.7",
		},
		{
			name: "forwarded wins over real ip",
			headers: map[string]string{
				"X-Forwarded-For": "203.0.113.7",
				"X-Real-IP":       "198.51.100.1",
			},
			want: "203.0.113.7",
		},
		{
			name:    "real ip",
			headers: map[string]string{"X-Real-IP": " 198.51.100.1 "},
			want:    "198.51.100.1",
		},
		{
			name: "real ip wins over cloudflare",
			headers: map[string]string{
				"X-Real-IP":        "198.51.100.1",
				"CF-Connecting-IP": "192.0.2.9",
			},
			want: "198.51.100.1",
		},
		{
			name:    "cloudflare",
			headers: map[string]string{"CF-Connecting-IP": "2001:db8::1"},
			want:    "2001:db8::1",
		},
		{
			name:    "empty forwarded entry falls through",
			headers: map[string]string{"X-Forwarded-For": " , 10.0.0.1", "X-Real-IP": "198.51.100.1"},
			want:    "198.51.100.1",
		},
		{
			name: "no headers",
			want: UnknownClient,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = "127.0.0.1:5555"
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, ClientIdentifier(req))
		})
	}
}
