package models

import "time"

// Conversation is a two-party thread. It is shared by UserID (the initiator)
// and ParticipantID; either may read, append and mark messages as read.
type Conversation struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"userId"`
	ParticipantID int64     `json:"participantId"`
	LastMessageAt time.Time `json:"lastMessageAt"`
}

// TableName returns the name of the database table
// associated with the Conversation model.
func (c Conversation) TableName() string {
	return "conversations"
}

// IsParticipant reports whether userID is one of the two parties.
func (c Conversation) IsParticipant(userID int64) bool {
	return c.UserID == userID || c.ParticipantID == userID
}

// Involves reports whether the conversation is between a and b, in either order.
func (c Conversation) Involves(a, b int64) bool {
	return (c.UserID == a && c.ParticipantID == b) || (c.UserID == b && c.ParticipantID == a)
}
