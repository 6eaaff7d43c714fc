package geometry

import "math"

// NormalizeAngle maps a into (-π, π]. NaN and ±Inf are returned as NaN, as
// math.Remainder does; they are never trapped.
func NormalizeAngle(a float64) float64 {
	r := math.Remainder(a, 2*math.Pi)
	if r <= -math.Pi {
		r += 2 * math.Pi
	}
	return r
}

// AngleDiff returns the signed smallest rotation from b to a, in (-π, π].
func AngleDiff(a, b float64) float64 { return NormalizeAngle(a - b) }

// Bearing returns the signed angle from the forward (+X) axis to v. v is
// expected in the robot frame. The zero vector yields 0, which is what
// math.Atan2(0, 0) returns.
func Bearing(v Point2D) float64 {
	return NormalizeAngle(math.Atan2(v.Y, v.X))
}
