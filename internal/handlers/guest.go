// internal/handlers/guest.go
package handlers

import (
	"fmt"
	"math/rand"
	"strings"
)

var nameAdjectives = []string{
	"Swift", "Mighty", "Sneaky", "Golden", "Rapid", "Fearless", "Dizzy",
	"Rusty", "Slick", "Wobbly", "Turbo", "Lucky", "Grumpy", "Electric",
}

var nameNouns = []string{
	"Striker", "Keeper", "Boot", "Volley", "Tackle", "Winger", "Header",
	"Dribbler", "Sweeper", "Maestro", "Rocket", "Falcon", "Panther", "Comet",
}

// randomPlayerName builds a throwaway display name for guests.
func randomPlayerName() string {
	adj := nameAdjectives[rand.Intn(len(nameAdjectives))]
	noun := nameNouns[rand.Intn(len(nameNouns))]
	return fmt.Sprintf("%s%s%d", adj, noun, rand.Intn(100))
}

// tzCountries maps IANA timezone city names to ISO country codes. Only the
// common ones; anything else falls back to the unknown marker.
var tzCountries = map[string]string{
	"London":      "GB",
	"Dublin":      "IE",
	"Paris":       "FR",
	"Berlin":      "DE",
	"Madrid":      "ES",
	"Rome":        "IT",
	"Amsterdam":   "NL",
	"Brussels":    "BE",
	"Lisbon":      "PT",
	"Warsaw":      "PL",
	"Prague":      "CZ",
	"Vienna":      "AT",
	"Zurich":      "CH",
	"Stockholm":   "SE",
	"Oslo":        "NO",
	"Copenhagen":  "DK",
	"Helsinki":    "FI",
	"Athens":      "GR",
	"Istanbul":    "TR",
	"Moscow":      "RU",
	"Kyiv":        "UA",
	"New_York":    "US",
	"Chicago":     "US",
	"Denver":      "US",
	"Los_Angeles": "US",
	"Toronto":     "CA",
	"Vancouver":   "CA",
	"Mexico_City": "MX",
	"Sao_Paulo":   "BR",
	"Buenos_Aires": "AR",
	"Tokyo":       "JP",
	"Seoul":       "KR",
	"Shanghai":    "CN",
	"Hong_Kong":   "HK",
	"Singapore":   "SG",
	"Kolkata":     "IN",
	"Dubai":       "AE",
	"Sydney":      "AU",
	"Melbourne":   "AU",
	"Auckland":    "NZ",
	"Johannesburg": "ZA",
	"Cairo":       "EG",
	"Lagos":       "NG",
}

// countryFromTimezone guesses an ISO country code from an IANA timezone such
// as "Europe/Warsaw". Unknown zones yield "XX".
func countryFromTimezone(tz string) string {
	parts := strings.Split(tz, "/")
	city := parts[len(parts)-1]
	if code, ok := tzCountries[city]; ok {
		return code
	}
	return "XX"
}
