package i

import (
	"time"

	"github.com/google/uuid"
)

// Tokenizer defines methods for generating and decoding bearer tokens.
type Tokenizer interface {
	// Generate issues a token for the given user valid for expTime.
	Generate(userID uuid.UUID, expTime time.Duration) (string, error)

	// Decode validates a token and returns the user it was issued for.
	Decode(token string) (uuid.UUID, error)
}
