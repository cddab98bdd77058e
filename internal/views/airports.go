package views

import "strings"

// stateToAirports maps US state names to their major airport codes, used to
// suggest departure airports for a concert's state.
var stateToAirports = map[string][]string{
	"Alabama":              {"BHM", "HSV", "MGM", "MOB"},
	"Alaska":               {"ANC", "FAI", "JNU", "SEA"},
	"Arizona":              {"PHX", "TUS", "SDL"},
	"Arkansas":             {"XNA", "LIT", "FSM"},
	"California":           {"LAX", "SFO", "SAN", "SJC", "OAK", "SMF", "BUR", "ONT", "SNA", "LGB"},
	"Colorado":             {"DEN", "COS", "GJT"},
	"Connecticut":          {"BDL", "HVN"},
	"Delaware":             {"ILG"},
	"District of Columbia": {"DCA", "IAD", "BWI"},
	"Florida":              {"MIA", "FLL", "TPA", "MCO", "RSW", "JAX", "PBI"},
	"Georgia":              {"ATL", "SAV", "AGS", "MCN"},
	"Hawaii":               {"HNL", "OGG", "KOA", "LIH"},
	"Idaho":                {"BOI", "IDA"},
	"Illinois":             {"ORD", "MDW", "SPI", "RFD"},
	"Indiana":              {"IND", "SBN"},
	"Iowa":                 {"DSM", "CID", "MLI"},
	"Kansas":               {"ICT", "MCI", "FOE"},
	"Kentucky":             {"CVG", "SDF", "LEX"},
	"Louisiana":            {"MSY", "BTR", "LFT"},
	"Maine":                {"PWM", "BGR"},
	"Maryland":             {"BWI", "MTN"},
	"Massachusetts":        {"BOS", "ORH", "EWB"},
	"Michigan":             {"DTW", "GRR", "MBS", "AZO"},
	"Minnesota":            {"MSP", "DLH", "RST"},
	"Mississippi":          {"JAN", "GPT"},
	"Missouri":             {"STL", "MCI", "SGF"},
	"Montana":              {"BIL", "GTF", "MSO"},
	"Nebraska":             {"OMA", "LNK"},
	"Nevada":               {"LAS", "RNO"},
	"New Hampshire":        {"MHT", "CON"},
	"New Jersey":           {"EWR", "ACY", "TTN"},
	"New Mexico":           {"ABQ", "SRR"},
	"New York":             {"JFK", "LGA", "EWR", "BUF", "ROC", "SYR", "ALB"},
	"North Carolina":       {"CLT", "RDU", "GSO", "ILM"},
	"North Dakota":         {"FAR", "GFK"},
	"Ohio":                 {"CLE", "CMH", "CVG", "DAY"},
	"Oklahoma":             {"OKC", "TUL"},
	"Oregon":               {"PDX", "EUG"},
	"Pennsylvania":         {"PHL", "PIT", "AVP", "MDT"},
	"Rhode Island":         {"PVD"},
	"South Carolina":       {"CHS", "GSP", "CAE"},
	"South Dakota":         {"FSD", "RAP"},
	"Tennessee":            {"BNA", "MEM", "CHA"},
	"Texas":                {"DFW", "IAH", "AUS", "SAT", "DAL", "HOU"},
	"Utah":                 {"SLC", "PVU"},
	"Vermont":              {"BTV"},
	"Virginia":             {"DCA", "ORF", "RIC"},
	"Washington":           {"SEA", "GEG", "PDX"},
	"West Virginia":        {"CRW", "HTS"},
	"Wisconsin":            {"MKE", "MSN", "GRB"},
	"Wyoming":              {"JAC"},
}

// airportToState is the inverse of stateToAirports. Shared hubs (e.g. EWR)
// resolve to whichever state registered them first; good enough for
// suggesting a destination state.
var airportToState = func() map[string]string {
	m := make(map[string]string)
	for state, airports := range stateToAirports {
		for _, code := range airports {
			if _, ok := m[code]; !ok {
				m[code] = state
			}
		}
	}
	return m
}()

// stateCodes maps USPS state codes to the names used in stateToAirports.
var stateCodes = map[string]string{
	"AL": "Alabama", "AK": "Alaska", "AZ": "Arizona", "AR": "Arkansas",
	"CA": "California", "CO": "Colorado", "CT": "Connecticut", "DE": "Delaware",
	"DC": "District of Columbia", "FL": "Florida", "GA": "Georgia", "HI": "Hawaii",
	"ID": "Idaho", "IL": "Illinois", "IN": "Indiana", "IA": "Iowa",
	"KS": "Kansas", "KY": "Kentucky", "LA": "Louisiana", "ME": "Maine",
	"MD": "Maryland", "MA": "Massachusetts", "MI": "Michigan", "MN": "Minnesota",
	"MS": "Mississippi", "MO": "Missouri", "MT": "Montana", "NE": "Nebraska",
	"NV": "Nevada", "NH": "New Hampshire", "NJ": "New Jersey", "NM": "New Mexico",
	"NY": "New York", "NC": "North Carolina", "ND": "North Dakota", "OH": "Ohio",
	"OK": "Oklahoma", "OR": "Oregon", "PA": "Pennsylvania", "RI": "Rhode Island",
	"SC": "South Carolina", "SD": "South Dakota", "TN": "Tennessee", "TX": "Texas",
	"UT": "Utah", "VT": "Vermont", "VA": "Virginia", "WA": "Washington",
	"WV": "West Virginia", "WI": "Wisconsin", "WY": "Wyoming",
}

// AirportsForState returns the major airport codes for a US state,
// case-insensitively. Both full names and USPS codes are accepted, since
// event payloads carry whichever form the venue record had. Unknown states
// return nil.
func AirportsForState(state string) []string {
	state = strings.TrimSpace(state)
	if name, ok := stateCodes[strings.ToUpper(state)]; ok {
		state = name
	}
	if codes, ok := stateToAirports[state]; ok {
		return codes
	}
	for name, codes := range stateToAirports {
		if strings.EqualFold(name, state) {
			return codes
		}
	}
	return nil
}

// StateForAirport returns the US state for an airport code, or "" when unknown.
func StateForAirport(code string) string {
	return airportToState[strings.ToUpper(strings.TrimSpace(code))]
}
