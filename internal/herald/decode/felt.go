package decode

import "math/big"

// feltAddress renders a field element as a canonical lowercase hex
// address, matching how the chain itself prints them (no zero padding).
func feltAddress(f *big.Int) string {
	if f == nil {
		return ""
	}
	return "0x" + f.Text(16)
}

// feltShortString unpacks a packed ASCII short string. A zero or
// non-printable value decodes to the empty string; the renderer
// substitutes its fallback label.
func feltShortString(f *big.Int) string {
	if f == nil || f.Sign() == 0 {
		return ""
	}
	raw := f.Bytes()
	for _, c := range raw {
		if c < 0x20 || c > 0x7e {
			return ""
		}
	}
	return string(raw)
}

// feltUint64 reads a field element as an unsigned integer, defaulting
// to zero when it does not fit.
func feltUint64(f *big.Int) uint64 {
	if f == nil || !f.IsUint64() {
		return 0
	}
	return f.Uint64()
}
