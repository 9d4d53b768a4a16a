package models

// Message is one direct message kept in the history store.
// Messages are immutable once appended.
type Message struct {
	// ID is a UUID generated when the message is sent.
	ID string `json:"id"`
	// SenderIdentity is the employee code of the author.
	SenderIdentity string `json:"fromEmployeeCode"`
	// SenderDisplayName is the author's full name at send time.
	SenderDisplayName string `json:"fromName"`
	// SenderAvatarRef is the author's profile picture at send time.
	SenderAvatarRef string `json:"fromProfilePic"`
	// RecipientIdentity is the employee code of the addressee.
	// Empty means broadcast, which the relay never produces today.
	RecipientIdentity string `json:"toEmployeeCode,omitempty"`
	// SentAt is the send time in epoch milliseconds.
	SentAt int64 `json:"dateTime"`
	// Body is the text of the message.
	Body string `json:"message"`
}

// Between reports whether the message belongs to the thread of a and b,
// in either direction.
func (m Message) Between(a, b string) bool {
	return (m.SenderIdentity == a && m.RecipientIdentity == b) ||
		(m.SenderIdentity == b && m.RecipientIdentity == a)
}
