package pkg

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

	SessionIDLength = 8
	GameKeyLength   = 8
)

// GenerateSessionID - generates a short random identifier for a new game.
func GenerateSessionID() (string, error) {
	return randomString(SessionIDLength)
}

// GenerateGameKey - generates a short human-shareable join code.
func GenerateGameKey() (string, error) {
	return randomString(GameKeyLength)
}

func randomString(length int) (string, error) {
	alphabetSize := big.NewInt(int64(len(idAlphabet)))

	buf := make([]byte, length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", fmt.Errorf("failed to read random number: %w", err)
		}
		buf[i] = idAlphabet[n.Int64()]
	}

	return string(buf), nil
}
