package main

import (
	"strings"
	"testing"
)

func TestGuestNameFitsProtocolLimits(t *testing.T) {
	for i := 0; i < 20; i++ {
		name := guestName()
		if !strings.HasPrefix(name, "Wanderer-") {
			t.Fatalf("guest name %q missing prefix", name)
		}
		if len(name) > MaxPlayerNameLen {
			t.Fatalf("guest name %q longer than %d", name, MaxPlayerNameLen)
		}
	}
}
