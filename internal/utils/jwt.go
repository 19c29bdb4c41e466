package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/amour-lingua/models"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidTokenParams    = errors.New("invalid params for generating session token")
	ErrInvalidAuthorization  = errors.New("invalid authorization header")
	ErrMissingSessionIDClaim = errors.New("token has no session id")
	ErrMissingSubjectClaim   = errors.New("token has no subject")
	ErrUnexpectedTokenClaims = errors.New("unexpected token claims")
)

// GenerateSessionToken creates a signed HMAC-SHA256 JWT for a server-side session.
//
// The token includes the following standard claims:
//   - Issuer    (iss): identifies the service that issued the token
//   - Subject   (sub): the user ID encoded as a string
//   - ID        (jti): the session identifier
//   - IssuedAt  (iat): issuedAt
//   - ExpiresAt (exp): expiresAt
//
// Returns ErrInvalidTokenParams if any string parameter is empty or
// expiresAt is not after issuedAt.
func GenerateSessionToken(issuer string, userID int64, sessionID string, issuedAt, expiresAt time.Time, signKey string) (models.Token, error) {
	if issuer == "" || sessionID == "" || signKey == "" || !expiresAt.After(issuedAt) {
		return models.Token{}, ErrInvalidTokenParams
	}

	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   strconv.FormatInt(userID, 10),
		ID:        sessionID,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(issuedAt),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during signing session token: %w", err)
	}

	return models.Token{
		Token:            token,
		RegisteredClaims: claims,
		SignedString:     tokenString,
		SessionID:        sessionID,
		UserID:           userID,
		ExpiresAt:        expiresAt,
	}, nil
}

// ValidateAndParseSessionToken validates tokenString and extracts its claims.
//
// Validation includes the HS256 signature, the issuer, expiration evaluated
// at now, and presence of the "sub" and "jti" claims.
func ValidateAndParseSessionToken(tokenString, signKey, issuer string, now time.Time) (models.Token, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (any, error) {
		return []byte(signKey), nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return models.Token{}, ErrUnexpectedTokenClaims
	}
	if claims.Subject == "" {
		return models.Token{}, ErrMissingSubjectClaim
	}
	if claims.ID == "" {
		return models.Token{}, ErrMissingSessionIDClaim
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during converting subject to user id: %w", err)
	}

	return models.Token{
		Token:            token,
		RegisteredClaims: *claims,
		SignedString:     tokenString,
		SessionID:        claims.ID,
		UserID:           userID,
		ExpiresAt:        claims.ExpiresAt.Time,
	}, nil
}

// ParseBearerToken extracts the token from an "Authorization: Bearer <token>" header value.
// The scheme is matched case-insensitively.
func ParseBearerToken(authorizationHeader string) (string, error) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(authorizationHeader), " ")
	token = strings.TrimSpace(token)
	if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", ErrInvalidAuthorization
	}
	return token, nil
}
