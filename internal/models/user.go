package models

import "time"

// PresenceEntry represents one live connection in the roster.
// Several entries may share the same Identity (multi-device, multi-tab).
type PresenceEntry struct {
	// ConnectionID is the transport-assigned id of the connection.
	ConnectionID string
	// Identity is the caller-supplied employee code.
	Identity string
	// DisplayName is the full name shown to other users.
	DisplayName string
	// AvatarRef is a reference to the user's profile picture.
	AvatarRef string
	// Username is the optional login name sent with the login event.
	Username string
	// JoinedAt is the time the login event was handled.
	JoinedAt time.Time
}

// RosterUser is the wire shape of one entry in a user-list event.
type RosterUser struct {
	Identity    string `json:"employeeCode"`
	DisplayName string `json:"fullname"`
	AvatarRef   string `json:"profilePic"`
	Username    string `json:"username,omitempty"`
}

// RosterUser strips the connection-specific fields from the entry.
func (p PresenceEntry) RosterUser() RosterUser {
	return RosterUser{
		Identity:    p.Identity,
		DisplayName: p.DisplayName,
		AvatarRef:   p.AvatarRef,
		Username:    p.Username,
	}
}
