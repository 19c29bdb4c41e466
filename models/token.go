package models

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token wraps the signed session token handed to clients.
//
// The JWT carries the session identifier in its "jti" claim and the user
// identifier in "sub". A valid signature is not enough on its own: the
// session must also still exist in the session store.
type Token struct {
	// Token is the underlying JWT token used for signing and claim inspection.
	*jwt.Token `json:"-"`

	// RegisteredClaims provides access to the standard JWT claim set.
	jwt.RegisteredClaims

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`

	// SessionID is a cached copy of the "jti" claim.
	SessionID string `json:"-"`

	// UserID is a cached, parsed copy of the "sub" claim.
	UserID int64 `json:"-"`

	// ExpiresAt mirrors the "exp" claim for cookie construction.
	ExpiresAt time.Time `json:"-"`
}

// GetUserID extracts the user identifier from the token's "sub" claim.
func (t *Token) GetUserID() (int64, error) {
	userIDString, err := t.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("error extracting UserID from token: %w", err)
	}

	userID, err := strconv.ParseInt(userIDString, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error converting UserID from token to int64: %w", err)
	}

	return userID, nil
}

// String returns the compact JWS serialization of the token.
func (t *Token) String() string {
	return t.SignedString
}
