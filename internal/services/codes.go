package services

import (
	"crypto/rand"
	"math/big"
	"strconv"
)

const codeDigits = 6

// generateCode returns a uniformly random numeric code of the given length,
// used for membership join codes and invite codes.
func generateCode(digits int) (string, error) {
	b := make([]byte, 0, digits)
	for range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		b = strconv.AppendInt(b, n.Int64(), 10)
	}
	return string(b), nil
}
