// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for trip planning:
//  1. [ArtistListView] : Browse the listener's top Spotify artists
//  2. [RelatedListView] : Explore artists related to a selection
//  3. [ConcertListView] : Upcoming concerts gathered across the related artists
//  4. [FlightListView] : Flight offers toward a selected concert
//
// The [Model] implements bubbletea/Elm's standard Init/Update/View pattern,
// receiving messages via typed fetch-result structs. Concert aggregation may
// partially fail; failed artists surface in a warning line above the list
// instead of blocking the view.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, q) plus
// p/d/s sort keys and a nonstop filter toggle in the flight view.
package ui
