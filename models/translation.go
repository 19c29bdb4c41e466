package models

import "time"

// Translation is a persisted result of a translate call.
type Translation struct {
	ID int64 `json:"id"`

	// UserID is the owner. Nil only for records created outside a user session.
	UserID *int64 `json:"userId"`

	SourceText     string   `json:"sourceText"`
	TranslatedText string   `json:"translatedText"`
	FromLang       Language `json:"fromLang"`
	ToLang         Language `json:"toLang"`

	// Favorite is the only mutable field of a translation.
	Favorite bool `json:"favorite"`

	CreatedAt time.Time `json:"createdAt"`
}

// TableName returns the name of the database table
// associated with the Translation model.
func (t Translation) TableName() string {
	return "translations"
}

// IsOwnedBy reports whether the translation belongs to userID.
func (t Translation) IsOwnedBy(userID int64) bool {
	return t.UserID != nil && *t.UserID == userID
}
