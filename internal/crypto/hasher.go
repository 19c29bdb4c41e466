// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package crypto holds the server-side password hashing used for account
// credentials.
package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/scrypt"
)

// ErrMalformedHash is returned by Compare when the stored value does not
// follow the "hex(key).hex(salt)" format.
var ErrMalformedHash = errors.New("malformed password hash")

const (
	saltLength = 16
	separator  = "."
)

// scryptHasher is the private implementation of [PasswordHasher].
type scryptHasher struct {
	// scrypt tuning parameters. Changing them invalidates existing hashes.
	n      int
	r      int
	p      int
	keyLen int
}

// NewPasswordHasher constructs a [PasswordHasher] backed by scrypt with
// N=16384, r=8, p=1 and a 64-byte derived key.
func NewPasswordHasher() PasswordHasher {
	return &scryptHasher{
		n:      16384,
		r:      8,
		p:      1,
		keyLen: 64,
	}
}

// Hash implements [PasswordHasher].
func (h *scryptHasher) Hash(password string) (string, error) {
	salt, err := generateSalt()
	if err != nil {
		return "", fmt.Errorf("error generating salt: %w", err)
	}

	key, err := h.derive(password, salt)
	if err != nil {
		return "", err
	}

	return key + separator + salt, nil
}

// Compare implements [PasswordHasher].
func (h *scryptHasher) Compare(stored, password string) (bool, error) {
	storedKey, salt, ok := strings.Cut(stored, separator)
	if !ok || storedKey == "" || salt == "" {
		return false, ErrMalformedHash
	}

	want, err := hex.DecodeString(storedKey)
	if err != nil {
		return false, ErrMalformedHash
	}

	derived, err := h.derive(password, salt)
	if err != nil {
		return false, err
	}
	got, _ := hex.DecodeString(derived)

	return subtle.ConstantTimeCompare(want, got) == 1, nil
}

// derive runs scrypt over password and the hex-encoded salt string.
// The salt is used as text, the same way it is stored.
func (h *scryptHasher) derive(password, salt string) (string, error) {
	key, err := scrypt.Key([]byte(password), []byte(salt), h.n, h.r, h.p, h.keyLen)
	if err != nil {
		return "", fmt.Errorf("error deriving key: %w", err)
	}
	return hex.EncodeToString(key), nil
}

// generateSalt reads saltLength random bytes and returns them hex-encoded.
func generateSalt() (string, error) {
	salt := make([]byte, saltLength)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", err
	}
	return hex.EncodeToString(salt), nil
}
