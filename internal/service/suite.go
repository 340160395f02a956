package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// maxSuiteAttempts bounds retries when a generated suite is already taken.
const maxSuiteAttempts = 10

// RandomSuite returns a generator of "<prefix>-NNNN" suite numbers with
// NNNN drawn uniformly from 1000-9999.
func RandomSuite(prefix string) func() (string, error) {
	return func() (string, error) {
		n, err := rand.Int(rand.Reader, big.NewInt(9000))
		if err != nil {
			return "", fmt.Errorf("generating suite number: %w", err)
		}
		return fmt.Sprintf("%s-%d", prefix, 1000+n.Int64()), nil
	}
}
