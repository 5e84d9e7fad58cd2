package game

import (
	"math"
	"testing"
)

func TestPlayerOther(t *testing.T) {
	tests := []struct {
		name string
		in   Player
		want Player
	}{
		{"P1 flips to P2", P1, P2},
		{"P2 flips to P1", P2, P1},
		{"None is fixed", None, None},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Other(); got != tt.want {
				t.Errorf("Other() = %v, want %v", got, tt.want)
			}
			if got := tt.in.Other().Other(); got != tt.in {
				t.Errorf("Other() is not an involution for %v", tt.in)
			}
		})
	}
}

func TestWinScore(t *testing.T) {
	if !math.IsInf(WinScore(P1), 1) {
		t.Errorf("WinScore(P1) = %v, want +Inf", WinScore(P1))
	}
	if !math.IsInf(WinScore(P2), -1) {
		t.Errorf("WinScore(P2) = %v, want -Inf", WinScore(P2))
	}
	if WinScore(None) != 0 {
		t.Errorf("WinScore(None) = %v, want 0", WinScore(None))
	}
}

func TestPlayerString(t *testing.T) {
	if P1.String() != "X" || P2.String() != "O" || None.String() != "." {
		t.Errorf("unexpected player strings: %v %v %v", P1, P2, None)
	}
}
