package models

// RegisterRequest is the body of POST /api/register.
type RegisterRequest struct {
	Username       string  `json:"username"`
	Password       string  `json:"password"`
	Email          string  `json:"email"`
	Name           *string `json:"name,omitempty"`
	LangPreference string  `json:"langPreference,omitempty"`
}

// LoginRequest is the body of POST /api/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UpdateProfileRequest is the body of PATCH /api/user.
// Absent fields are left unchanged.
type UpdateProfileRequest struct {
	Name           *string `json:"name,omitempty"`
	Email          *string `json:"email,omitempty"`
	LangPreference *string `json:"langPreference,omitempty"`
}

// ForgotPasswordRequest is the body of POST /api/forgot-password.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// TranslateRequest is the body of POST /api/translate.
type TranslateRequest struct {
	Text     string `json:"text"`
	FromLang string `json:"fromLang"`
	ToLang   string `json:"toLang"`
}

// FavoriteRequest is the body of PATCH /api/translations/{id}/favorite.
// Favorite is a pointer so that a missing field can be told apart from false.
type FavoriteRequest struct {
	Favorite *bool `json:"favorite"`
}

// CreateConversationRequest is the body of POST /api/conversations.
type CreateConversationRequest struct {
	ParticipantID int64 `json:"participantId"`
}

// SendMessageRequest is the body of POST /api/conversations/{id}/messages.
type SendMessageRequest struct {
	Text string `json:"text"`
}
