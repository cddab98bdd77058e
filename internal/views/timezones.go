package views

import "time"

// stateTimezones maps US state names to the IANA zone covering most of the
// state. Split-zone states use the zone of their major markets.
var stateTimezones = map[string]string{
	"Alabama":              "America/Chicago",
	"Alaska":               "America/Anchorage",
	"Arizona":              "America/Phoenix",
	"Arkansas":             "America/Chicago",
	"California":           "America/Los_Angeles",
	"Colorado":             "America/Denver",
	"Connecticut":          "America/New_York",
	"Delaware":             "America/New_York",
	"District of Columbia": "America/New_York",
	"Florida":              "America/New_York",
	"Georgia":              "America/New_York",
	"Hawaii":               "Pacific/Honolulu",
	"Idaho":                "America/Boise",
	"Illinois":             "America/Chicago",
	"Indiana":              "America/Indiana/Indianapolis",
	"Iowa":                 "America/Chicago",
	"Kansas":               "America/Chicago",
	"Kentucky":             "America/New_York",
	"Louisiana":            "America/Chicago",
	"Maine":                "America/New_York",
	"Maryland":             "America/New_York",
	"Massachusetts":        "America/New_York",
	"Michigan":             "America/Detroit",
	"Minnesota":            "America/Chicago",
	"Mississippi":          "America/Chicago",
	"Missouri":             "America/Chicago",
	"Montana":              "America/Denver",
	"Nebraska":             "America/Chicago",
	"Nevada":               "America/Los_Angeles",
	"New Hampshire":        "America/New_York",
	"New Jersey":           "America/New_York",
	"New Mexico":           "America/Denver",
	"New York":             "America/New_York",
	"North Carolina":       "America/New_York",
	"North Dakota":         "America/Chicago",
	"Ohio":                 "America/New_York",
	"Oklahoma":             "America/Chicago",
	"Oregon":               "America/Los_Angeles",
	"Pennsylvania":         "America/New_York",
	"Rhode Island":         "America/New_York",
	"South Carolina":       "America/New_York",
	"South Dakota":         "America/Chicago",
	"Tennessee":            "America/Chicago",
	"Texas":                "America/Chicago",
	"Utah":                 "America/Denver",
	"Vermont":              "America/New_York",
	"Virginia":             "America/New_York",
	"Washington":           "America/Los_Angeles",
	"West Virginia":        "America/New_York",
	"Wisconsin":            "America/Chicago",
	"Wyoming":              "America/Denver",
}

// EventLocation returns the time.Location for a state, UTC when the state
// is unknown or its zone data is unavailable.
func EventLocation(state string) *time.Location {
	if name, ok := stateTimezones[state]; ok {
		if loc, err := time.LoadLocation(name); err == nil {
			return loc
		}
	}
	return time.UTC
}

// FormatEventTime renders an RFC 3339 event start in the state's local
// zone, like "Sep 01, 2026 07:30 PM PDT". Input that does not parse is
// returned unchanged.
func FormatEventTime(start, state string) string {
	t, err := time.Parse(time.RFC3339, start)
	if err != nil {
		return start
	}
	return t.In(EventLocation(state)).Format("Jan 02, 2006 03:04 PM MST")
}
