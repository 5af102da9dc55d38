package game

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Paddle is one player's blade as last reported by the input layer.
type Paddle struct {
	Player   int     `json:"player"`
	Normal   Vec3    `json:"normal"`
	Position Vec3    `json:"position"` // centre of the face
	Velocity Vec3    `json:"velocity"`
	Edges    [2]Vec3 `json:"edges"` // face corners along the short axis
}

func newPaddle(player int, normal, position, velocity Vec3) Paddle {
	return Paddle{
		Player:   player,
		Normal:   normal,
		Position: position,
		Velocity: velocity,
		Edges:    paddleEdges(normal, position),
	}
}

// defaultPaddle parks a player's paddle behind their end of the table, facing the net.
func defaultPaddle(t Table, player int) Paddle {
	if player == 1 {
		return newPaddle(1, Vec3{-1, 0, 0}, Vec3{t.Back() + 0.3, t.Height + 0.15, 0}, Vec3{})
	}
	return newPaddle(0, Vec3{1, 0, 0}, Vec3{t.Front - 0.3, t.Height + 0.15, 0}, Vec3{})
}

// ValidatePaddle checks an update from the input layer before it touches any state.
func ValidatePaddle(player int, normal, position, velocity Vec3) error {
	if player != 0 && player != 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidPlayer, player)
	}
	if !isFinite(normal) || !isFinite(position) || !isFinite(velocity) {
		return ErrNonFiniteVector
	}
	if l := normal.Len(); math.Abs(l-1) > NormalTolerance {
		return fmt.Errorf("%w: |n| = %.4f", ErrNonUnitNormal, l)
	}
	return nil
}

// faceVertical is the face direction a quarter turn about z from the normal,
// with any normal component removed. It does not exist when the normal points
// along z.
func faceVertical(n Vec3) (Vec3, bool) {
	v := rotate90Z(n)
	v = v.Sub(projectOnto(v, n))
	l := v.Len()
	if l < basisEpsilon {
		return Vec3{}, false
	}
	return v.Mul(1 / l), true
}

// paddleEdges returns the two face corners, half a paddle width either side of
// the centre along the vertical face axis.
func paddleEdges(normal, position Vec3) [2]Vec3 {
	v, ok := faceVertical(normal)
	if !ok {
		p := roundVec(position, EdgePrecision)
		return [2]Vec3{p, p}
	}
	half := v.Mul(PaddleWidth / 2)
	return [2]Vec3{
		roundVec(position.Add(half), EdgePrecision),
		roundVec(position.Sub(half), EdgePrecision),
	}
}

// paddleBasis returns the inverse of the change-of-basis matrix whose columns
// are the normal, vertical and horizontal face axes. Multiplying a world point
// by it yields (normal, vertical, horizontal) coordinates.
func paddleBasis(n Vec3) (mgl64.Mat3, bool) {
	v, ok := faceVertical(n)
	if !ok {
		return mgl64.Mat3{}, false
	}
	h := n.Cross(v)
	m := mgl64.Mat3FromCols(n, v, h)
	if math.Abs(m.Det()) < basisEpsilon {
		return mgl64.Mat3{}, false
	}
	return m.Inv(), true
}

// hitOrMiss tests whether the ball, moving from prev to cur, struck the face
// this tick. side is +1 when the ball came from the side the normal points to.
func hitOrMiss(p Paddle, prev, cur Vec3) (side float64, hit bool) {
	inv, ok := paddleBasis(p.Normal)
	if !ok {
		return 0, false
	}
	ball := inv.Mul3x1(cur)
	before := inv.Mul3x1(prev)
	face := inv.Mul3x1(p.Position)
	e0 := inv.Mul3x1(p.Edges[0])
	e1 := inv.Mul3x1(p.Edges[1])

	lo, hi := roundTo(e0[1], EdgePrecision), roundTo(e1[1], EdgePrecision)
	if lo > hi {
		lo, hi = hi, lo
	}
	if bv := roundTo(ball[1], EdgePrecision); bv < lo || bv > hi {
		return 0, false
	}

	dPrev := before[0] - face[0]
	side = sign(dPrev)
	if roundTo(side*dPrev-BallRadius, EdgePrecision) <= 0 {
		// already in contact last tick
		return 0, false
	}
	if roundTo(side*(ball[0]-face[0])-BallRadius, EdgePrecision) > 0 {
		return 0, false
	}
	return side, true
}
