package models

// ErrorResponse is the JSON body written for every failed request.
type ErrorResponse struct {
	Message string `json:"message"`
}

// MessageResponse is a body carrying only an informational message.
type MessageResponse struct {
	Message string `json:"message"`
}

// MarkReadResponse is returned by POST /api/conversations/{id}/read.
type MarkReadResponse struct {
	Success bool `json:"success"`

	// Updated is the number of messages that flipped to read.
	Updated int64 `json:"updated"`
}

// VersionResponse is returned by GET /api/version when JSON is requested.
type VersionResponse struct {
	Version string `json:"version"`
	Date    string `json:"date"`
	Commit  string `json:"commit"`
}
