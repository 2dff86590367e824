package scene

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// axisEpsilon treats nearly axis-parallel rays as parallel so the edge
// intersection does not divide by almost zero.
const axisEpsilon = 0.001

// StreakLength returns how far a ray from origin at angle can travel before
// leaving bounds, capped at maxLen. Only the two edges the ray heads toward
// are considered. The result is never negative.
func StreakLength(origin r2.Vec, angle float64, bounds Viewport, maxLen float64) float64 {
	cos, sin := math.Cos(angle), math.Sin(angle)
	t := math.Inf(1)

	if cos > axisEpsilon {
		t = math.Min(t, (bounds.Width-origin.X)/cos)
	} else if cos < -axisEpsilon {
		t = math.Min(t, -origin.X/cos)
	}
	if sin > axisEpsilon {
		t = math.Min(t, (bounds.Height-origin.Y)/sin)
	} else if sin < -axisEpsilon {
		t = math.Min(t, -origin.Y/sin)
	}

	if math.IsInf(t, 1) || math.IsNaN(t) {
		t = 0
	}
	return math.Max(0, math.Min(t, maxLen))
}

// StreakEnd returns the far end of a streak.
func StreakEnd(origin r2.Vec, angle float64, bounds Viewport, maxLen float64) r2.Vec {
	l := StreakLength(origin, angle, bounds, maxLen)
	return r2.Vec{
		X: origin.X + math.Cos(angle)*l,
		Y: origin.Y + math.Sin(angle)*l,
	}
}
