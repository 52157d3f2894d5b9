package httpx

import (
	"net"
	"strconv"
	"strings"
	"testing"
)

func TestListenerCreation(t *testing.T) {
	tests := []struct {
		addr   string
		port   string
		random bool
		error  bool
	}{
		{addr: ":0", random: true},
		{addr: "localhost:0", random: true},
		{addr: "localhost:abc1", error: true},
	}

	for _, test := range tests {
		ls, err := NewListener(test.addr, false)

		if test.error {
			if err == nil {
				t.Errorf("%v: expected error, but got none", test.addr)
			}
			continue
		}
		if err != nil {
			t.Errorf("%v: unexpected error %v", test.addr, err)
			continue
		}
		defer func() { _ = ls.Close() }()

		port := ls.GetPort()
		if test.random {
			if port <= 0 {
				t.Errorf("%v: expected a random port, got %v", test.addr, port)
			}
			continue
		}
		if !strings.HasSuffix(ls.Addr().String(), ":"+test.port) {
			t.Errorf("%v: expected port %v, got %v", test.addr, test.port, ls.Addr())
		}
	}
}

func TestPortRoll(t *testing.T) {
	a, err := NewListener(":0", false)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = a.Close() }()

	taken := a.Addr().(*net.TCPAddr).Port
	b, err := NewListener(net.JoinHostPort("", strconv.Itoa(taken)), true)
	if err != nil {
		t.Fatalf("expected the port to roll, got %v", err)
	}
	defer func() { _ = b.Close() }()
	if b.GetPort() == taken {
		t.Errorf("rolled listener reuses the taken port %d", taken)
	}
}

func TestMergeAddresses(t *testing.T) {
	ls, err := NewListener(":0", false)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = ls.Close() }()
	port := strconv.Itoa(ls.GetPort())

	tests := []struct {
		addr string
		rez  string
	}{
		{addr: "", rez: "localhost:" + port},
		{addr: ":8080", rez: "localhost:" + port},
		{addr: "host:8080", rez: "host:" + port},
	}
	for _, test := range tests {
		if got := mergeAddresses(test.addr, ls); got != test.rez {
			t.Errorf("mergeAddresses(%q) = %q, want %q", test.addr, got, test.rez)
		}
	}
}

