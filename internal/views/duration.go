package views

import (
	"strconv"
	"strings"
)

// ParseISODuration converts an ISO-8601 duration like "PT2H15M" to minutes.
//
// A missing hours or minutes component is treated as zero ("PT45M" and
// "PT3H" both parse), as does an empty or unrecognized string. Upstream
// flight segments never carry days or seconds.
func ParseISODuration(s string) int {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "PT")
	if s == "" {
		return 0
	}

	minutes := 0
	if idx := strings.Index(s, "H"); idx >= 0 {
		if h, err := strconv.Atoi(s[:idx]); err == nil {
			minutes += h * 60
		}
		s = s[idx+1:]
	}
	if idx := strings.Index(s, "M"); idx >= 0 {
		if m, err := strconv.Atoi(s[:idx]); err == nil {
			minutes += m
		}
	}
	return minutes
}

// FormatMinutes renders a minute count as "6h 30m".
func FormatMinutes(minutes int) string {
	h := minutes / 60
	m := minutes % 60
	switch {
	case h == 0:
		return strconv.Itoa(m) + "m"
	case m == 0:
		return strconv.Itoa(h) + "h"
	default:
		return strconv.Itoa(h) + "h " + strconv.Itoa(m) + "m"
	}
}
