package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec3 is the vector type used across the simulation.
type Vec3 = mgl64.Vec3

var (
	axisY = Vec3{0, 1, 0}
	axisZ = Vec3{0, 0, 1}
)

// roundTo rounds n to the given number of decimal places. Geometric
// comparisons go through it so float noise cannot flip a hit test.
func roundTo(n float64, places int) float64 {
	if math.IsNaN(n) {
		return 0
	}
	p := math.Pow(10, float64(places))
	return math.Round(n*p) / p
}

func roundVec(v Vec3, places int) Vec3 {
	return Vec3{roundTo(v[0], places), roundTo(v[1], places), roundTo(v[2], places)}
}

// normalize returns the unit vector of v, or the zero vector when v is zero.
func normalize(v Vec3) Vec3 {
	l := v.Len()
	if l == 0 {
		return Vec3{}
	}
	return v.Mul(1 / l)
}

// rotate turns v by angle radians about axis, right-hand rule.
func rotate(v, axis Vec3, angle float64) Vec3 {
	a := normalize(axis)
	if a == (Vec3{}) || angle == 0 {
		return v
	}
	return mgl64.QuatRotate(angle, a).Rotate(v)
}

// rotate90Z is an exact quarter turn about +z.
func rotate90Z(v Vec3) Vec3 {
	return Vec3{-v[1], v[0], v[2]}
}

// projectOnto returns the component of v along axis.
func projectOnto(v, axis Vec3) Vec3 {
	d := axis.Dot(axis)
	if d == 0 {
		return Vec3{}
	}
	return axis.Mul(v.Dot(axis) / d)
}

// planeAngle is the signed angle of the x-y projection of v, measured from +x.
func planeAngle(v Vec3) float64 {
	return math.Atan2(v[1], v[0])
}

func isFinite(v Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// sign returns -1 for negative x and 1 otherwise.
func sign(x float64) float64 {
	if x < 0 {
		return -1
	}
	return 1
}
