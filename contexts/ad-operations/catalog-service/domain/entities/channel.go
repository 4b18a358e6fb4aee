package entities

import "time"

// Channel is one delivery surface on an ad platform. PlatformName is
// free-text and parsed case-insensitively downstream; APIIdentifier is the
// platform-side account the channel traffics against.
type Channel struct {
	ChannelID     string
	PlatformName  string
	APIIdentifier string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
