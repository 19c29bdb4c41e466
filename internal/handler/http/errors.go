// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors used by the authentication middleware when looking for the
// session token. Callers can match against them with [errors.Is].
var (
	// ErrNoSessionToken is returned by the auth middleware when the request
	// carries neither the session cookie nor an "Authorization" header.
	ErrNoSessionToken = errors.New("no session cookie or `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is present but is not a well-formed bearer token.
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrInvalidRequestBody is returned when the request body is not valid
	// JSON for the expected payload.
	ErrInvalidRequestBody = errors.New("invalid JSON request body")

	// ErrInvalidPathID is returned when a {id} path segment is not a
	// positive integer.
	ErrInvalidPathID = errors.New("invalid id in request path")
)
