package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const accountNumberLength = 10

// NumberGenerator produces candidate account numbers. It is injected so the
// uniqueness-retry loop can be exercised with a deterministic source.
type NumberGenerator interface {
	Generate() (string, error)
}

// CryptoNumberGenerator draws 10-digit numbers from crypto/rand; a shared
// seeded PRNG would make candidate numbers guessable.
type CryptoNumberGenerator struct{}

func NewCryptoNumberGenerator() CryptoNumberGenerator {
	return CryptoNumberGenerator{}
}

var numberSpace = new(big.Int).Exp(big.NewInt(10), big.NewInt(accountNumberLength), nil)

func (CryptoNumberGenerator) Generate() (string, error) {
	n, err := rand.Int(rand.Reader, numberSpace)
	if err != nil {
		return "", fmt.Errorf("generate account number: %w", err)
	}
	return fmt.Sprintf("%0*d", accountNumberLength, n), nil
}
