// internal/handlers/guest_test.go
package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountryFromTimezone(t *testing.T) {
	assert.Equal(t, "PL", countryFromTimezone("Europe/Warsaw"))
	assert.Equal(t, "US", countryFromTimezone("America/New_York"))
	assert.Equal(t, "AR", countryFromTimezone("America/Argentina/Buenos_Aires"))
	assert.Equal(t, "XX", countryFromTimezone("Mars/Olympus_Mons"))
	assert.Equal(t, "XX", countryFromTimezone(""))
}

func TestRandomPlayerNameIsNonEmpty(t *testing.T) {
	for i := 0; i < 20; i++ {
		name := randomPlayerName()
		assert.NotEmpty(t, name)
		assert.LessOrEqual(t, len(name), 24)
	}
}
