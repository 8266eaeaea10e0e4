package reference

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountryByCode(t *testing.T) {
	pk := CountryByCode("PK")
	assert.NotNil(t, pk)
	assert.Equal(t, "92", pk.DialCode)

	assert.NotNil(t, CountryByCode("pk"))
	assert.Nil(t, CountryByCode("XX"))
}

func TestFindCountryByDialPrefix(t *testing.T) {
	t.Run("LongestPrefixWins", func(t *testing.T) {
		// 880 (Bangladesh) must beat 88-anything shorter matches.
		got := FindCountryByDialPrefix("+880 1712345678")
		assert.NotNil(t, got)
		assert.Equal(t, "BD", got.Code)
	})

	t.Run("SimplePrefix", func(t *testing.T) {
		got := FindCountryByDialPrefix("+92 3001234567")
		assert.NotNil(t, got)
		assert.Equal(t, "PK", got.Code)
	})

	t.Run("NoMatch", func(t *testing.T) {
		assert.Nil(t, FindCountryByDialPrefix(""))
		assert.Nil(t, FindCountryByDialPrefix("+999999"))
	})
}

func TestFormatWithDialCode(t *testing.T) {
	pk := CountryByCode("PK")

	assert.Equal(t, "+92 3001234567", FormatWithDialCode(pk, "923001234567"))
	assert.Equal(t, "+92 3001234567", FormatWithDialCode(pk, "+92 300-123-4567"))
	assert.Equal(t, "+92", FormatWithDialCode(pk, ""))
	assert.Equal(t, "raw", FormatWithDialCode(nil, "raw"))
}

func TestValidatePhone(t *testing.T) {
	pk := CountryByCode("PK")

	t.Run("EmptyIsValid", func(t *testing.T) {
		assert.NoError(t, ValidatePhone(pk, ""))
		assert.NoError(t, ValidatePhone(nil, ""))
	})

	t.Run("ValidWithCountry", func(t *testing.T) {
		assert.NoError(t, ValidatePhone(pk, "+92 3001234567"))
	})

	t.Run("WrongDialCode", func(t *testing.T) {
		assert.ErrorIs(t, ValidatePhone(pk, "+44 7700900123"), ErrInvalidPhone)
	})

	t.Run("MissingPlus", func(t *testing.T) {
		assert.ErrorIs(t, ValidatePhone(pk, "923001234567"), ErrInvalidPhone)
	})

	t.Run("TooShort", func(t *testing.T) {
		assert.ErrorIs(t, ValidatePhone(pk, "+92 300"), ErrInvalidPhone)
	})

	t.Run("TooLong", func(t *testing.T) {
		assert.ErrorIs(t, ValidatePhone(pk, "+92 30012345678901234"), ErrInvalidPhone)
	})

	t.Run("NoCountryAcceptsAnyDialCode", func(t *testing.T) {
		assert.NoError(t, ValidatePhone(nil, "+358401234567"))
		assert.ErrorIs(t, ValidatePhone(nil, "0401234567"), ErrInvalidPhone)
	})
}
