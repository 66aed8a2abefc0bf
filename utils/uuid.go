package utils

import (
	"github.com/google/uuid"
)

// GenerateID returns a random identifier for sessions and accepted bids
func GenerateID() string {
	return uuid.NewString()
}
