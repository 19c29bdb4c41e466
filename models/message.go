package models

import "time"

// Message is a single chat line inside a conversation.
type Message struct {
	ID             int64     `json:"id"`
	ConversationID int64     `json:"conversationId"`
	SenderID       int64     `json:"senderId"`
	Text           string    `json:"text"`
	SentAt         time.Time `json:"sentAt"`
	Read           bool      `json:"read"`

	// The fields below are filled only when the reader asked for an
	// on-the-fly translation. They are never persisted.
	TranslatedText string   `json:"translatedText,omitempty"`
	TranslateFrom  Language `json:"translateFrom,omitempty"`
	TranslateTo    Language `json:"translateTo,omitempty"`
}

// TableName returns the name of the database table
// associated with the Message model.
func (m Message) TableName() string {
	return "messages"
}
