package core

import "strings"

// knownMakes is the manufacturer list behind the unknown-make warning. It
// covers mainstream US-market brands; a miss is advisory, never blocking.
var knownMakes = map[string]struct{}{
	"acura": {}, "alfa romeo": {}, "audi": {}, "bmw": {}, "buick": {},
	"cadillac": {}, "chevrolet": {}, "chrysler": {}, "dodge": {}, "fiat": {},
	"ford": {}, "genesis": {}, "gmc": {}, "honda": {}, "hyundai": {},
	"infiniti": {}, "jaguar": {}, "jeep": {}, "kia": {}, "land rover": {},
	"lexus": {}, "lincoln": {}, "mazda": {}, "mercedes": {}, "mercedes-benz": {},
	"mini": {}, "mitsubishi": {}, "nissan": {}, "polestar": {}, "porsche": {},
	"ram": {}, "rivian": {}, "subaru": {}, "tesla": {}, "toyota": {},
	"volkswagen": {}, "volvo": {},
}

// isKnownMake reports whether the make is in the manufacturer list, ignoring
// case and surrounding whitespace.
func isKnownMake(name string) bool {
	_, ok := knownMakes[strings.ToLower(strings.TrimSpace(name))]
	return ok
}
