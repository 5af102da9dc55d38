package game

import "math"

// Physics and table constants for the table-tennis simulation, SI units.
// The frame has x along the table length, y up and z across the table.

const (
	Timestep           = 0.001 // seconds per Advance
	ContactSubsteps    = 10    // closed-form samples per Timestep during paddle contact
	MaxContactSubsteps = 1000

	BallRadius = 0.02
	BallMass   = 0.0027

	TableLength = 2.74
	TableWidth  = 1.525
	TableHeight = 0.76
	NetHeight   = 0.1525
	NetOverhang = 0.1525
	TableFront  = 1.0 // x of the left (player 0) end

	PaddleWidth = 0.15

	TableNudge    = 1e-4
	EdgePrecision = 5 // decimals kept for paddle geometry
	NetPrecision  = 2 // decimals used to detect the net plane

	ServeOffset      = 0.1
	ServeLaunchSpeed = 2.0

	NormalTolerance = 1e-3
	basisEpsilon    = 1e-9

	// noBounce marks currentBounce as unset; no reachable bounce count equals it.
	noBounce = math.MinInt32
)
