package normalize

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// cityAliases maps the misspellings, abbreviations and historical names
// seen across the exports to the canonical city name.
var cityAliases = map[string]string{
	"bangalore":     "Bengaluru",
	"banglore":      "Bengaluru",
	"bangaluru":     "Bengaluru",
	"bengaluru":     "Bengaluru",
	"bombay":        "Mumbai",
	"mumba":         "Mumbai",
	"mumbai":        "Mumbai",
	"new delhi":     "Delhi",
	"delhi ncr":     "Delhi",
	"delhi":         "Delhi",
	"madras":        "Chennai",
	"chenai":        "Chennai",
	"chennai":       "Chennai",
	"calcutta":      "Kolkata",
	"kolkata":       "Kolkata",
	"cochin":        "Kochi",
	"kochi":         "Kochi",
	"hyderabad":     "Hyderabad",
	"pune":          "Pune",
	"ahmedabad":     "Ahmedabad",
	"jaipur":        "Jaipur",
	"lucknow":       "Lucknow",
	"indore":        "Indore",
	"coimbatore":    "Coimbatore",
	"bhubaneswar":   "Bhubaneswar",
	"chandigarh":    "Chandigarh",
	"vadodara":      "Vadodara",
	"surat":         "Surat",
	"nagpur":        "Nagpur",
	"meerut":        "Meerut",
	"moradabad":     "Moradabad",
	"saharanpur":    "Saharanpur",
	"gorakhpur":     "Gorakhpur",
	"kanpur":        "Kanpur",
	"bareilly":      "Bareilly",
	"aligarh":       "Aligarh",
	"allahabad":     "Allahabad",
	"visakhapatnam": "Visakhapatnam",
	"patna":         "Patna",
	"ludhiana":      "Ludhiana",
	"varanasi":      "Varanasi",
}

// City canonicalizes a customer city name. Known variants map through the
// alias table; anything else is title-cased as-is. Missing cells stay
// missing.
func City(raw string) (string, bool) {
	if IsMissing(raw) {
		return "", false
	}

	key := strings.ToLower(strings.TrimSpace(raw))
	if canonical, ok := cityAliases[key]; ok {
		return canonical, true
	}

	// cases.Caser is stateful, so build one per call.
	return cases.Title(language.English).String(key), true
}
