package game

import "errors"

// Errors
var (
	ErrInvalidWinThreshold   = errors.New("win threshold must be positive")
	ErrInvalidServeIncrement = errors.New("serve increment must be positive")
	ErrInvalidParams         = errors.New("invalid physics params")
	ErrInvalidPlayer         = errors.New("player index must be 0 or 1")
	ErrNonFiniteVector       = errors.New("paddle vectors must be finite")
	ErrNonUnitNormal         = errors.New("paddle normal must be a unit vector")
	ErrBallInPlay            = errors.New("ball is already in play")
	ErrMatchOver             = errors.New("match is already won")
	ErrInputQueueFull        = errors.New("paddle input queue is full")
)
