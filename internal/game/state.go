package game

// MatchStatus represents where the match is between serves
type MatchStatus string

const (
	StatusServing     MatchStatus = "SERVING"
	StatusInPlay      MatchStatus = "IN_PLAY"
	StatusPointScored MatchStatus = "POINT_SCORED"
	StatusMatchWon    MatchStatus = "MATCH_WON"
)

// PointReason explains why a rally ended.
type PointReason string

const (
	ReasonServerDoubleBounce   PointReason = "server_side_double_bounce"
	ReasonReceiverDoubleBounce PointReason = "receiver_side_double_bounce"
	ReasonOutOfPlay            PointReason = "out_of_play"
)
