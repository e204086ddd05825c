// Package session caches the authenticated player bound to each live
// connection. Entries are keyed by connection ID and expire with the
// connection's TTL.
package session

import "context"

// PlayerSession is the cached identity and balance of a connected player
type PlayerSession struct {
	UserID     string  `json:"user_id"`
	OperatorID string  `json:"operator_id"`
	Token      string  `json:"token"`
	GameID     string  `json:"game_id"`
	Balance    float64 `json:"balance"`
	Image      int     `json:"image"`
}

// Cache stores player sessions keyed by connection ID
type Cache interface {
	// Get returns the session for connID, or (nil, nil) when absent
	Get(ctx context.Context, connID string) (*PlayerSession, error)

	Set(ctx context.Context, connID string, sess *PlayerSession) error

	Delete(ctx context.Context, connID string) error
}
