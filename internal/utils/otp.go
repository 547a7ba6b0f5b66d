package utils

import (
	"crypto/rand"
	"math/big"
)

const (
	minCode = 1000
	maxCode = 9999
)

// GenerateVerificationCode returns a uniformly random code in [1000, 9999].
func GenerateVerificationCode() (int, error) {
	num, err := rand.Int(rand.Reader, big.NewInt(maxCode-minCode+1))
	if err != nil {
		return 0, err
	}
	return minCode + int(num.Int64()), nil
}
