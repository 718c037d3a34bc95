package util

import (
	"testing"
	"time"
)

func TestFromUnix(t *testing.T) {
	if !FromUnix(0).IsZero() {
		t.Fatalf("expected zero time for 0")
	}
	if !FromUnix(-5).IsZero() {
		t.Fatalf("expected zero time for negative input")
	}
	got := FromUnix(1700000000)
	if got.Location() != time.UTC || got.Unix() != 1700000000 {
		t.Fatalf("unexpected %v", got)
	}
}
