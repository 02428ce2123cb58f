package domain

// The contract layer offsets map coordinates around a fixed center so
// they stay unsigned on-chain. Coordinates within the tolerance window
// of the center are offset-encoded; anything else is already
// world-absolute and passes through untouched.
const (
	// WorldCenter is the unsigned encoding offset of the map origin.
	WorldCenter = 2147483647
	// centerTolerance is the half-width of the offset-encoded window.
	centerTolerance = 1_000_000
)

// Position is a raw coordinate pair as decoded from the wire.
type Position struct {
	X uint32
	Y uint32
}

// Normalized returns the display coordinates of the position. The
// transform is idempotent: normalizing an already-normalized value
// yields the same result.
func (p Position) Normalized() (int64, int64) {
	return normalizeCoord(p.X), normalizeCoord(p.Y)
}

func normalizeCoord(v uint32) int64 {
	d := int64(v) - WorldCenter
	if d >= -centerTolerance && d <= centerTolerance {
		return d
	}
	return int64(v)
}
