package game

import "fmt"

// Params holds the tunable physical coefficients. Geometry lives in constants.go.
type Params struct {
	Gravity         float64 `json:"gravity"`
	AirDensity      float64 `json:"air_density"`
	DragCoefficient float64 `json:"drag_coefficient"`
	LiftCoefficient float64 `json:"lift_coefficient"`

	TableRebound  float64 `json:"table_rebound"`  // fraction of speed kept after a table bounce
	TableFriction float64 `json:"table_friction"` // share of spin converted to velocity on the table

	PaddleSpring   float64 `json:"paddle_spring"`   // rubber stiffness, N/m
	PaddleDamping  float64 `json:"paddle_damping"`  // damping ratio, must stay below 1
	PaddleFriction float64 `json:"paddle_friction"` // decay rate of face-parallel velocity, 1/s
	SwingForce     float64 `json:"swing_force"`     // constant drive during contact, N

	NetBallSpeed       float64 `json:"net_ball_speed"`
	NetGrazeDeflection float64 `json:"net_graze_deflection"`
}

// DefaultParams returns the coefficients used for regular play.
func DefaultParams() Params {
	return Params{
		Gravity:            9.8,
		AirDensity:         1.19,
		DragCoefficient:    0.47,
		LiftCoefficient:    0.25,
		TableRebound:       0.85,
		TableFriction:      0.25,
		PaddleSpring:       25000,
		PaddleDamping:      0.15,
		PaddleFriction:     300,
		SwingForce:         0.05,
		NetBallSpeed:       0.5,
		NetGrazeDeflection: 0.5,
	}
}

// Validate rejects coefficient sets the integrator or the contact model cannot run with.
func (p Params) Validate() error {
	switch {
	case p.Gravity < 0:
		return fmt.Errorf("%w: gravity %.3f", ErrInvalidParams, p.Gravity)
	case p.AirDensity < 0 || p.DragCoefficient < 0 || p.LiftCoefficient < 0:
		return fmt.Errorf("%w: aerodynamic coefficients must be non-negative", ErrInvalidParams)
	case p.TableRebound <= 0 || p.TableRebound > 1:
		return fmt.Errorf("%w: table rebound %.3f outside (0,1]", ErrInvalidParams, p.TableRebound)
	case p.TableFriction < 0 || p.TableFriction > 1:
		return fmt.Errorf("%w: table friction %.3f outside [0,1]", ErrInvalidParams, p.TableFriction)
	case p.PaddleSpring <= 0:
		return fmt.Errorf("%w: paddle spring %.3f", ErrInvalidParams, p.PaddleSpring)
	case p.PaddleDamping < 0 || p.PaddleDamping >= 1:
		return fmt.Errorf("%w: paddle damping %.3f outside [0,1)", ErrInvalidParams, p.PaddleDamping)
	case p.PaddleFriction < 0 || p.PaddleFriction*Timestep/ContactSubsteps > 1:
		return fmt.Errorf("%w: paddle friction %.3f", ErrInvalidParams, p.PaddleFriction)
	case p.SwingForce < 0 || p.NetBallSpeed < 0 || p.NetGrazeDeflection < 0:
		return fmt.Errorf("%w: contact coefficients must be non-negative", ErrInvalidParams)
	}
	return nil
}
