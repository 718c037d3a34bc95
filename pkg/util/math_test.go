package util

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{-1, 0}, {0.5, 0.5}, {2, 1},
	}
	for _, c := range cases {
		if got := Clamp(c.in, 0, 1); got != c.want {
			t.Fatalf("Clamp(%v)=%v want %v", c.in, got, c.want)
		}
	}
}

func TestRoundHalfUp(t *testing.T) {
	if RoundHalfUp(50.5) != 51 {
		t.Fatalf("50.5 should round to 51")
	}
	if RoundHalfUp(-0.5) != 0 {
		t.Fatalf("-0.5 should round to 0")
	}
	if RoundHalfUp(49.49) != 49 {
		t.Fatalf("49.49 should round to 49")
	}
}

func TestSafeDiv(t *testing.T) {
	if SafeDiv(1, 0) != 0 {
		t.Fatalf("division by zero must yield 0")
	}
	if SafeDiv(math.Inf(1), 1) != 0 {
		t.Fatalf("infinite result must yield 0")
	}
	if SafeDiv(3, 2) != 1.5 {
		t.Fatalf("unexpected quotient")
	}
}

func TestFixedAndTruncate(t *testing.T) {
	if Fixed(1.005, 1) != "1.0" {
		t.Fatalf("unexpected %s", Fixed(1.005, 1))
	}
	if Truncate("héllo", 2) != "hé" {
		t.Fatalf("unexpected %s", Truncate("héllo", 2))
	}
	if ParseFloatDefault(" 2.5 ", 0) != 2.5 {
		t.Fatalf("expected 2.5")
	}
	if ParseFloatDefault("x", 7) != 7 {
		t.Fatalf("expected default")
	}
}
