package systems

import "gonum.org/v1/gonum/spatial/r2"

// Clamp functions for common value ranges

// clampFloat clamps a value between min and max.
func clampFloat(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// decay subtracts amount from v, stopping at zero.
func decay(v, amount float64) float64 {
	v -= amount
	if v < 0 {
		return 0
	}
	return v
}

// Vector functions

// magnitude returns |v|, substituting 1 for a zero length so callers can
// divide by it safely.
func magnitude(v r2.Vec) float64 {
	if n := r2.Norm(v); n > 0 {
		return n
	}
	return 1
}

// Unit returns v scaled to unit length. A zero vector stays zero (never NaN).
func Unit(v r2.Vec) r2.Vec {
	return r2.Scale(1/magnitude(v), v)
}

// ClampMagnitude scales v down so |v| <= limit.
func ClampMagnitude(v r2.Vec, limit float64) r2.Vec {
	mag := magnitude(v)
	capped := mag
	if capped > limit {
		capped = limit
	}
	return r2.Scale(capped/mag, v)
}

// distanceSq returns the squared distance between two points.
func distanceSq(a, b r2.Vec) float64 {
	return r2.Norm2(r2.Sub(a, b))
}

// Wrap brings a position back into [0,w) x [0,h) by whole bound lengths.
func Wrap(p r2.Vec, b Bounds) r2.Vec {
	for p.X < 0 {
		p.X += b.Width
	}
	for p.X >= b.Width {
		p.X -= b.Width
	}
	for p.Y < 0 {
		p.Y += b.Height
	}
	for p.Y >= b.Height {
		p.Y -= b.Height
	}
	return p
}
