package services_test

import (
	"regexp"
	"testing"

	"github.com/api-sage/account-management/internal/usecase/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCryptoNumberGeneratorFormat(t *testing.T) {
	gen := services.NewCryptoNumberGenerator()
	pattern := regexp.MustCompile(`^\d{10}$`)

	for i := 0; i < 50; i++ {
		number, err := gen.Generate()
		require.NoError(t, err)
		assert.True(t, pattern.MatchString(number), number)
	}
}

func TestCryptoNumberGeneratorSpread(t *testing.T) {
	gen := services.NewCryptoNumberGenerator()

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		number, err := gen.Generate()
		require.NoError(t, err)
		seen[number] = true
	}

	// 50 draws from a 10^10 space repeating would point at a broken source.
	assert.Greater(t, len(seen), 45)
}
