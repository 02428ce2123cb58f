package domain

import "testing"

func TestNormalizedOffsetEncoded(t *testing.T) {
	tests := []struct {
		name  string
		pos   Position
		wantX int64
		wantY int64
	}{
		{
			name:  "center maps to origin",
			pos:   Position{X: WorldCenter, Y: WorldCenter},
			wantX: 0,
			wantY: 0,
		},
		{
			name:  "positive offsets",
			pos:   Position{X: WorldCenter + 12, Y: WorldCenter + 40},
			wantX: 12,
			wantY: 40,
		},
		{
			name:  "negative offsets",
			pos:   Position{X: WorldCenter - 7, Y: WorldCenter - 1},
			wantX: -7,
			wantY: -1,
		},
		{
			name:  "window edges",
			pos:   Position{X: WorldCenter - 1_000_000, Y: WorldCenter + 1_000_000},
			wantX: -1_000_000,
			wantY: 1_000_000,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := tt.pos.Normalized()
			if x != tt.wantX || y != tt.wantY {
				t.Fatalf("Normalized() = (%d, %d), want (%d, %d)", x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestNormalizedAbsolutePassesThrough(t *testing.T) {
	pos := Position{X: 42, Y: 99}
	x, y := pos.Normalized()
	if x != 42 || y != 99 {
		t.Fatalf("absolute coordinates should pass through, got (%d, %d)", x, y)
	}
}

func TestNormalizedIsIdempotent(t *testing.T) {
	// Round-trip every representative display coordinate through the
	// offset encoding and check normalizing twice changes nothing.
	for _, d := range []int64{-1_000_000, -500, -1, 0, 1, 500, 1_000_000} {
		raw := uint32(d + WorldCenter)
		once := normalizeCoord(raw)
		if once != d {
			t.Fatalf("normalizeCoord(%d) = %d, want %d", raw, once, d)
		}
		// A normalized value re-entering the transform must be stable.
		if d >= 0 {
			twice := normalizeCoord(uint32(once))
			if twice != once {
				t.Fatalf("normalize not idempotent for %d: %d != %d", d, twice, once)
			}
		}
	}
}
