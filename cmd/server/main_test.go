package main

import (
	"errors"
	"io"
	"log/slog"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayHost(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	hostname := func() (string, error) { return "workstation", nil }

	tests := []struct {
		name     string
		bindHost string
		hostname func() (string, error)
		lookup   func(string) ([]net.IP, error)
		want     string
	}{
		{
			name:     "specific ip kept",
			bindHost: "192.168.0.157",
			want:     "192.168.0.157",
		},
		{
			name:     "hostname kept",
			bindHost: "localhost",
			want:     "localhost",
		},
		{
			name:     "wildcard resolves to lan ipv4",
			bindHost: "0.0.0.0",
			hostname: hostname,
			lookup: func(string) ([]net.IP, error) {
				return []net.IP{net.ParseIP("127.0.1.1"), net.ParseIP("fe80::1"), net.ParseIP("192.168.0.157")}, nil
			},
			want: "192.168.0.157",
		},
		{
			name:     "ipv6 wildcard",
			bindHost: "::",
			hostname: hostname,
			lookup: func(string) ([]net.IP, error) {
				return []net.IP{net.ParseIP("10.0.0.5")}, nil
			},
			want: "10.0.0.5",
		},
		{
			name:     "only loopback",
			bindHost: "0.0.0.0",
			hostname: hostname,
			lookup: func(string) ([]net.IP, error) {
				return []net.IP{net.ParseIP("127.0.1.1")}, nil
			},
			want: "127.0.1.1",
		},
		{
			name:     "lookup fails",
			bindHost: "0.0.0.0",
			hostname: hostname,
			lookup: func(string) ([]net.IP, error) {
				return nil, errors.New("no such host")
			},
			want: "localhost",
		},
		{
			name:     "hostname fails",
			bindHost: "0.0.0.0",
			hostname: func() (string, error) { return "", errors.New("uname failed") },
			want:     "localhost",
		},
		{
			name:     "no addresses",
			bindHost: "0.0.0.0",
			hostname: hostname,
			lookup:   func(string) ([]net.IP, error) { return nil, nil },
			want:     "localhost",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, displayHost(tt.bindHost, tt.hostname, tt.lookup, log))
		})
	}
}
