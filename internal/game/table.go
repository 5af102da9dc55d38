package game

// Table holds the fixed table geometry for a match.
type Table struct {
	Length    float64 `json:"length"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	NetHeight float64 `json:"net_height"`
	Front     float64 `json:"front"`
}

// StandardTable returns regulation table dimensions placed at TableFront.
func StandardTable() Table {
	return Table{
		Length:    TableLength,
		Width:     TableWidth,
		Height:    TableHeight,
		NetHeight: NetHeight,
		Front:     TableFront,
	}
}

// Back is the x of the right (player 1) end.
func (t Table) Back() float64 {
	return t.Front + t.Length
}

// Center is the x of the net plane.
func (t Table) Center() float64 {
	return t.Front + t.Length/2
}

// NetTop is the height of the net tape above the floor.
func (t Table) NetTop() float64 {
	return t.Height + t.NetHeight
}

// Side returns the player whose half contains x.
func (t Table) Side(x float64) int {
	if x < t.Center() {
		return 0
	}
	return 1
}

// PlayerCoefficient is +1 over player 0's half and -1 over player 1's.
func (t Table) PlayerCoefficient(x float64) int {
	if x < t.Center() {
		return 1
	}
	return -1
}

// InSpan reports whether a ball centred at x overhangs the playing surface.
func (t Table) InSpan(x float64) bool {
	return x >= t.Front-BallRadius && x <= t.Back()+BallRadius
}

// ServePosition is where the server tosses the ball from: ServeOffset behind
// their end at table height.
func (t Table) ServePosition(player int) Vec3 {
	if player == 1 {
		return Vec3{t.Back() + ServeOffset, t.Height, 0}
	}
	return Vec3{t.Front - ServeOffset, t.Height, 0}
}

// HomePosition is where the ball rests between points.
func (t Table) HomePosition() Vec3 {
	return Vec3{t.Center(), 0, 0}
}
