package game

import "math"

// ContactType names what the ball touched.
type ContactType string

const (
	ContactTable  ContactType = "table"
	ContactNet    ContactType = "net"
	ContactGraze  ContactType = "graze"
	ContactPaddle ContactType = "paddle"
)

// ContactEvent records a resolved contact for the scoreboard and the renderer.
type ContactEvent struct {
	Type   ContactType `json:"type"`
	Player int         `json:"player"` // side of the table, or paddle owner
	Speed  float64     `json:"speed"`  // approach speed
}

// resolveContacts runs the contact checks for one tick. The order is fixed:
// table, paddles, net. Contacts do not commute within a tick.
func (e *Engine) resolveContacts() {
	e.hitTable()
	for i := range e.paddles {
		e.paddleBounce(i)
	}
	e.hitNet()
}

// hitTable bounces the ball off the playing surface. The reflection uses the
// angle stored by the previous call, and the angle is refreshed on every call.
// Only a descending ball bounces: a rising ball inside the contact band is
// leaving the surface.
func (e *Engine) hitTable() bool {
	b := &e.ball
	pos := b.Position
	hit := e.table.InSpan(pos[0]) &&
		pos[1] < e.table.Height+BallRadius &&
		pos[1] >= e.table.Height-BallRadius &&
		b.Velocity[1] < 0

	if hit {
		speed := math.Abs(b.Velocity[1])
		b.Position[1] = e.table.Height + BallRadius + TableNudge

		v := rotate(b.Velocity, axisZ, -2*e.angle).Mul(e.params.TableRebound)
		momentum := b.Spin.Mul(-1).Cross(axisY.Mul(-1)).Mul(BallRadius)
		b.Velocity = v.Add(momentum.Mul(e.params.TableFriction))
		b.Spin = momentum.Cross(axisY).Mul((1 - e.params.TableFriction) / BallRadius)

		side := e.table.Side(pos[0])
		e.match.recordBounce(e.table.PlayerCoefficient(pos[0]), side)
		e.record(ContactEvent{Type: ContactTable, Player: side, Speed: speed})
	}

	e.angle = planeAngle(b.Velocity)
	return hit
}

// hitNet handles a ball touching the net plane: blocked outright when its
// centre is below the tape, deflected when only the lower half clips it.
func (e *Engine) hitNet() bool {
	b := &e.ball
	dir := sign(b.Velocity[0])
	center := e.table.Center()
	edge := b.Position[0] + dir*BallRadius
	prevEdge := e.prevPosition[0] + dir*BallRadius

	touching := roundTo(edge, NetPrecision) == roundTo(center, NetPrecision)
	crossed := (prevEdge-center)*dir < 0 && (edge-center)*dir >= 0
	if !touching && !crossed {
		return false
	}
	if math.Abs(b.Position[2]) > e.table.Width/2+NetOverhang {
		return false
	}

	y := b.Position[1]
	netTop := e.table.NetTop()
	switch {
	case y+BallRadius <= e.table.Height:
		return false

	case y < netTop:
		// Back the way it came. On a serve that is the server's half.
		speed := math.Abs(b.Velocity[0])
		b.Velocity = Vec3{-dir * e.params.NetBallSpeed, 0, 0}
		b.Spin = Vec3{}
		e.record(ContactEvent{Type: ContactNet, Player: e.table.Side(b.Position[0]), Speed: speed})
		return true

	case y-BallRadius < netTop && e.match.currentBounce != e.match.bounceCount:
		h := (y - netTop) / BallRadius
		axis := axisZ.Mul(dir).Add(normalize(b.Spin))
		angle := math.Acos(h) * e.params.NetGrazeDeflection
		scale := 0.5 + 0.5*math.Asin(h)/(math.Pi/2)

		speed := b.Velocity.Len()
		b.Velocity = rotate(b.Velocity, axis, angle).Mul(scale)
		e.match.currentBounce = e.match.bounceCount
		e.record(ContactEvent{Type: ContactGraze, Player: e.table.Side(b.Position[0]), Speed: speed})
		return true
	}
	return false
}

// paddleBounce resolves contact between the ball and one paddle.
func (e *Engine) paddleBounce(player int) bool {
	p := e.paddles[player]
	side, hit := hitOrMiss(p, e.prevPosition, e.ball.Position)
	if !hit {
		return false
	}

	b := &e.ball
	n := p.Normal.Mul(side) // points from the face toward the ball
	rel := b.Velocity.Sub(p.Velocity)
	w0 := rel.Dot(n)
	gap := b.Position.Sub(p.Position).Dot(n) - BallRadius

	spring := newSpringContact(e.params, w0)
	vPar := rel.Sub(projectOnto(rel, n))
	spin := b.Spin
	h := Timestep / ContactSubsteps
	decay := 1 - e.params.PaddleFriction*h

	var q, dq float64
	for i := 1; i <= MaxContactSubsteps; i++ {
		q, dq = spring.at(float64(i) * h)
		vPar = vPar.Mul(decay)
		spin = n.Cross(vPar).Mul(1 / BallRadius)
		if q > 0 {
			break
		}
	}

	b.Velocity = p.Velocity.Add(n.Mul(dq)).Add(vPar)
	b.Spin = spin
	b.Position = b.Position.Add(n.Mul(math.Max(q, 0) - gap))

	e.match.recordHit(player)
	e.record(ContactEvent{Type: ContactPaddle, Player: player, Speed: math.Abs(w0)})
	return true
}

// springContact is the closed-form solution of the ball pressed into the
// rubber: q'' = -2ζω₀q' - ω₀²q + F/m with q(0) = 0 and q'(0) = w₀, where q is
// the gap between ball and face (negative while compressed).
type springContact struct {
	omega0 float64
	zeta   float64
	omegaD float64
	qEq    float64
	c1, c2 float64
}

func newSpringContact(p Params, w0 float64) springContact {
	omega0 := math.Sqrt(p.PaddleSpring / BallMass)
	zeta := p.PaddleDamping
	omegaD := omega0 * math.Sqrt(1-zeta*zeta)
	qEq := p.SwingForce / p.PaddleSpring
	c1 := -qEq
	return springContact{
		omega0: omega0,
		zeta:   zeta,
		omegaD: omegaD,
		qEq:    qEq,
		c1:     c1,
		c2:     (w0 + zeta*omega0*c1) / omegaD,
	}
}

// at returns the gap and its rate of change t seconds into the contact.
func (s springContact) at(t float64) (q, dq float64) {
	a := s.zeta * s.omega0
	decay := math.Exp(-a * t)
	cos, sin := math.Cos(s.omegaD*t), math.Sin(s.omegaD*t)
	q = s.qEq + decay*(s.c1*cos+s.c2*sin)
	dq = decay * ((s.omegaD*s.c2-a*s.c1)*cos - (s.omegaD*s.c1+a*s.c2)*sin)
	return q, dq
}
