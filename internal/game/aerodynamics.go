package game

import "math"

// MagnusForce returns the lift on a spinning ball moving at v.
//
// Spin is an angular velocity in rad/s along the spin axis. The force is
// ½·C_L·ρ·π·r²·|v|²·(v × spin/2π); the integrator scales it by Timestep.
func MagnusForce(p Params, v, spin Vec3) Vec3 {
	k := 0.5 * p.LiftCoefficient * p.AirDensity * math.Pi * BallRadius * BallRadius * v.Dot(v)
	return v.Cross(spin.Mul(1 / (2 * math.Pi))).Mul(k)
}

// DragForce returns air resistance. Each axis is opposed separately with a
// magnitude proportional to that component squared.
func DragForce(p Params, v Vec3) Vec3 {
	k := 0.5 * p.AirDensity * p.DragCoefficient * math.Pi * BallRadius * BallRadius
	var f Vec3
	for i, c := range v {
		f[i] = -math.Copysign(k*c*c, c)
	}
	return f
}
