package usecase

import "errors"

// Admission errors, surfaced verbatim to the player via betError
var (
	ErrInvalidPlayer       = errors.New("Invalid Player Details")
	ErrBettingClosed       = errors.New("Betting Closed")
	ErrInvalidBetAmount    = errors.New("Invalid Bet Amount")
	ErrInsufficientBalance = errors.New("Insufficient Balance")
	ErrUpstreamCancelled   = errors.New("Bet Cancelled By Upstream Server")
)
