package domain

// Broadcaster delivers named events to connected players
type Broadcaster interface {
	// Broadcast sends an event to every connected player
	Broadcast(event string, data interface{})

	// SendToConn sends an event to one connection
	SendToConn(connID string, event string, data interface{})
}
