package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/airpong/backend/internal/game"
	"github.com/gin-gonic/gin"
)

// MatchHost is the running match as seen by the HTTP layer.
type MatchHost interface {
	Snapshot() game.Snapshot
	SubmitPaddle(u game.PaddleUpdate) error
	RequestServe() error
}

// GetMatchState returns the snapshot published by the last frame.
func GetMatchState(host MatchHost) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, host.Snapshot())
	}
}

// RequestServe asks the runner to serve at the next frame.
func RequestServe(host MatchHost) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := host.RequestServe(); err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusAccepted, gin.H{
			"status":  "serve_requested",
			"message": "Serve will happen on the next frame",
		})
	}
}

// UpdatePaddle queues a paddle pose for the player in the path.
func UpdatePaddle(host MatchHost) gin.HandlerFunc {
	return func(c *gin.Context) {
		player, err := strconv.Atoi(c.Param("player"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "player must be 0 or 1"})
			return
		}

		var req struct {
			Normal   *game.Vec3 `json:"normal" binding:"required"`
			Position *game.Vec3 `json:"position" binding:"required"`
			Velocity game.Vec3  `json:"velocity"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid request. Normal and position required.",
			})
			return
		}

		u := game.PaddleUpdate{
			Player:   player,
			Normal:   *req.Normal,
			Position: *req.Position,
			Velocity: req.Velocity,
		}
		if err := host.SubmitPaddle(u); err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusAccepted, gin.H{"status": "queued"})
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, game.ErrBallInPlay), errors.Is(err, game.ErrMatchOver):
		return http.StatusConflict
	case errors.Is(err, game.ErrInputQueueFull):
		return http.StatusServiceUnavailable
	case errors.Is(err, game.ErrInvalidPlayer),
		errors.Is(err, game.ErrNonFiniteVector),
		errors.Is(err, game.ErrNonUnitNormal):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
