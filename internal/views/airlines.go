package views

// airlineNames maps IATA carrier codes to display names for the carriers
// that commonly appear in flight offer responses.
var airlineNames = map[string]string{
	"AA": "American Airlines",
	"AC": "Air Canada",
	"AF": "Air France",
	"AM": "Aeromexico",
	"AS": "Alaska Airlines",
	"B6": "JetBlue Airways",
	"BA": "British Airways",
	"DL": "Delta Air Lines",
	"EK": "Emirates",
	"F9": "Frontier Airlines",
	"G4": "Allegiant Air",
	"HA": "Hawaiian Airlines",
	"IB": "Iberia",
	"KL": "KLM",
	"LH": "Lufthansa",
	"NK": "Spirit Airlines",
	"QF": "Qantas",
	"SY": "Sun Country Airlines",
	"UA": "United Airlines",
	"VS": "Virgin Atlantic",
	"WN": "Southwest Airlines",
	"WS": "WestJet",
}

// AirlineName returns the display name for an IATA carrier code, falling
// back to the code itself when the carrier is unknown.
func AirlineName(code string) string {
	if name, ok := airlineNames[code]; ok {
		return name
	}
	return code
}
