package id

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	// Base62 alphabet: 0-9, A-Z, a-z
	alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// SubscriptionIDLength is the length of generated subscription identifiers.
	// Subscription IDs may also be supplied by callers, in which case no ID is
	// generated at all.
	SubscriptionIDLength = 10

	// EventIDLength is the length of generated subscription event identifiers.
	EventIDLength = 21
)

// Generate creates a random short ID with the specified length using Base62 encoding.
// The generated ID is cryptographically random and URL-safe.
func Generate(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("invalid id length: %d", length)
	}

	result := make([]byte, length)
	alphabetLen := big.NewInt(int64(len(alphabet)))

	for i := 0; i < length; i++ {
		num, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		result[i] = alphabet[num.Int64()]
	}

	return string(result), nil
}

// MustGenerate creates a random short ID and panics on error.
// Use this only when you're certain the generation won't fail.
func MustGenerate(length int) string {
	id, err := Generate(length)
	if err != nil {
		panic(err)
	}
	return id
}

// NewSubscriptionID generates a new subscription identifier.
func NewSubscriptionID() (string, error) {
	return Generate(SubscriptionIDLength)
}

// NewEventID generates a new subscription event identifier.
func NewEventID() (string, error) {
	return Generate(EventIDLength)
}
