// Package notifyhub fans notifications out to connected websocket clients.
// Every API instance subscribes to the Redis notification channels, so a
// notification created on one instance reaches the user on any other.
package notifyhub

import "estatehub/backend/internal/models"

// Client is one live connection of a user. A user may hold several.
type Client interface {
	// GetUserID returns the user the connection was authenticated as.
	GetUserID() string
	// GetSendChannel returns the channel the hub delivers notifications on.
	GetSendChannel() chan<- models.Notification
	// Run starts the client's read and write pumps.
	Run()
	// Close stops the client. The hub calls it exactly once, on removal.
	Close()
}
