package utils

import (
	"github.com/google/uuid"
	"github.com/rs/xid"
)

// IDGenerator abstracts unique ID generation so tests are deterministic.
type IDGenerator interface {
	Generate() string
}

// UUIDGenerator produces time-ordered UUIDv7 strings, used for trace IDs.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}

// XIDGenerator produces 20-character globally unique xid strings,
// used for session identifiers.
type XIDGenerator struct {
}

func NewXIDGenerator() *XIDGenerator {
	return &XIDGenerator{}
}

func (g *XIDGenerator) Generate() string {
	return xid.New().String()
}
