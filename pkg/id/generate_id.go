package id

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/google/uuid"
)

// New returns a random (v4) UUID in canonical 36-char form, the primary key
// format of every table.
func New() string { return uuid.NewString() }

// NewID32 returns exactly 32 hex characters (no separators/prefixes).
// Used for opaque storage keys.
func NewID32() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
