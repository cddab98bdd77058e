// Package views implements the presentation-side data shaping: flattening
// flight itineraries, parsing segment durations, conjunctive filters, and
// stable sort orders. Nothing here performs network calls; both the TUI and
// the CLI render from these helpers after the relay or services return data.
package views
