package models

// User is a registered account.
//
// Password holds the scrypt hash in "hex(hash).salt" form and is never
// serialized. Name is nullable to match the optional profile field.
type User struct {
	// UserID is the server-assigned identifier. Immutable after creation.
	UserID int64 `json:"id"`

	// Username is unique case-insensitively; the original casing is kept.
	Username string `json:"username"`

	// Password is the salted one-way hash of the user's password.
	Password string `json:"-"`

	// Email is unique across all users.
	Email string `json:"email"`

	// Name is the optional display name.
	Name *string `json:"name"`

	// LangPreference is the user's interface and translation language.
	LangPreference Language `json:"langPreference"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// UserUpdate describes a partial profile update. Nil fields are left untouched.
type UserUpdate struct {
	Name           *string   `json:"name,omitempty"`
	Email          *string   `json:"email,omitempty"`
	LangPreference *Language `json:"langPreference,omitempty"`

	// Password is a new password hash; it is never accepted from JSON.
	Password *string `json:"-"`
}

// IsEmpty reports whether the update carries no changes.
func (u UserUpdate) IsEmpty() bool {
	return u.Name == nil && u.Email == nil && u.LangPreference == nil && u.Password == nil
}
