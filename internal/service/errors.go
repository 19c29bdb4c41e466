package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrInvalidCredentials  = errors.New("invalid username or password")

	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	ErrSessionCreationFailed = errors.New("session creation failed")

	ErrParticipantNotFound = errors.New("participant not found")
	ErrSelfConversation    = errors.New("cannot start a conversation with yourself")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
