package unlock

import "strings"

// DefaultCountryCode is used when a contractor profile has no resolvable
// country. Most of the contractor base is Polish, so PL is the fallback.
const DefaultCountryCode = "PL"

var countryCodes = map[string]string{
	"poland":          "PL",
	"ukraine":         "UA",
	"romania":         "RO",
	"bulgaria":        "BG",
	"czech republic":  "CZ",
	"czechia":         "CZ",
	"slovakia":        "SK",
	"hungary":         "HU",
	"moldova":         "MD",
	"serbia":          "RS",
	"croatia":         "HR",
	"bosnia":          "BA",
	"albania":         "AL",
	"north macedonia": "MK",
	"lithuania":       "LT",
	"latvia":          "LV",
	"estonia":         "EE",
	"georgia":         "GE",
	"armenia":         "AM",
	"belarus":         "BY",
	"slovenia":        "SI",
	"montenegro":      "ME",
	"kosovo":          "XK",
}

// ResolveCountryCode maps a profile country name to an ISO 3166-1 alpha-2
// code, falling back to DefaultCountryCode for unknown or empty values.
func ResolveCountryCode(country *string) string {
	if country == nil {
		return DefaultCountryCode
	}

	name := strings.ToLower(strings.TrimSpace(*country))
	if code, ok := countryCodes[name]; ok {
		return code
	}

	// Accept a raw alpha-2 code as-is
	if len(name) == 2 {
		return strings.ToUpper(name)
	}

	return DefaultCountryCode
}
