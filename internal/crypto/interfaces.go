package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/password_hasher_mock.go -package=mock

// PasswordHasher derives and verifies stored password hashes.
//
// Stored format is "hex(key).hex(salt)": the derived key first, then the
// salt it was derived with. The format is opaque to callers.
type PasswordHasher interface {
	// Hash derives a new stored hash from password using a fresh random salt.
	Hash(password string) (string, error)

	// Compare reports whether password matches stored. The derived keys are
	// compared in constant time. A malformed stored value returns
	// ErrMalformedHash.
	Compare(stored, password string) (bool, error)
}
