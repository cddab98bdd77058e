package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/desertthunder/vibent/internal/aggregate"
	"github.com/desertthunder/vibent/internal/models"
	"github.com/desertthunder/vibent/internal/services"
	"github.com/desertthunder/vibent/internal/views"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	ArtistListView ViewState = iota
	RelatedListView
	ConcertListView
	FlightListView
)

// topArtistLimit is how many top artists the first view loads.
const topArtistLimit = 20

// Model represents the TUI application state.
type Model struct {
	ctx       context.Context
	view      ViewState
	artists   services.ArtistSource
	flights   services.FlightSource
	collector *aggregate.Collector[models.Artist, models.Event]
	token     func() string
	origin    string
	width     int
	height    int

	artistList  list.Model
	relatedList list.Model
	eventList   list.Model
	offerList   list.Model

	seed     models.Artist
	related  []models.Artist
	events   []models.Event
	offers   []models.FlightOffer
	warnings []string
	sortKey  views.SortKey
	nonstop  bool
	err      error

	help help.Model
	keys keyMap
}

// NewModel creates a TUI model. The token func is consulted on every fetch
// so a background refresh takes effect mid-session; the origin airport code
// seeds flight searches toward whichever concert the user picks.
func NewModel(ctx context.Context, artists services.ArtistSource, events services.EventSource, flights services.FlightSource, token func() string, origin string, logger *log.Logger) *Model {
	collector := aggregate.New(
		func(ctx context.Context, artist models.Artist) ([]models.Event, error) {
			return events.SearchEvents(ctx, artist.Name)
		},
		func(event models.Event) string { return event.ID },
		logger,
	)

	return &Model{
		ctx:       ctx,
		view:      ArtistListView,
		artists:   artists,
		flights:   flights,
		collector: collector,
		token:     token,
		origin:    origin,
		help:      help.New(),
		keys:      newKeyMap(),
	}
}

// Init loads the top artists.
func (m *Model) Init() tea.Cmd {
	return m.fetchTopArtists()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		for _, l := range []*list.Model{&m.artistList, &m.relatedList, &m.eventList, &m.offerList} {
			if l.Width() == 0 {
				l.SetSize(msg.Width-4, msg.Height-8)
			}
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case ArtistListView:
			return m.handleArtistKeys(msg)
		case RelatedListView:
			return m.handleRelatedKeys(msg)
		case ConcertListView:
			return m.handleConcertKeys(msg)
		case FlightListView:
			return m.handleFlightKeys(msg)
		}

	case artistsFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.artistList = m.newArtistList("Top Artists", msg.artists)
		return m, nil

	case relatedFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.seed = msg.seed
		m.related = msg.artists
		m.relatedList = m.newArtistList(fmt.Sprintf("Related to %s", msg.seed.Name), msg.artists)
		m.view = RelatedListView
		return m, nil

	case concertsFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.events = msg.events
		m.warnings = m.warnings[:0]
		for _, failure := range msg.failures {
			m.warnings = append(m.warnings, fmt.Sprintf("%s: %v", failure.Seed.Name, failure.Err))
		}

		items := make([]list.Item, len(msg.events))
		for i, event := range msg.events {
			items[i] = eventItem{event: event}
		}
		m.eventList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.eventList.Title = "Upcoming Concerts"
		m.eventList.SetSize(m.width-4, m.height-8)
		m.view = ConcertListView
		return m, nil

	case flightsFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.offers = msg.offers
		m.sortKey = views.SortNone
		m.nonstop = false
		m.rebuildOfferList()
		m.view = FlightListView
		return m, nil
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case ArtistListView:
		return m.renderList(m.artistList, []key.Binding{m.keys.enter, m.keys.concerts, m.keys.quit})
	case RelatedListView:
		return m.renderList(m.relatedList, []key.Binding{m.keys.enter, m.keys.concerts, m.keys.back, m.keys.quit})
	case ConcertListView:
		return m.renderConcerts()
	case FlightListView:
		return m.renderFlights()
	default:
		return ""
	}
}

func (m *Model) handleArtistKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "enter":
		if artist, ok := m.selectedArtist(m.artistList); ok {
			return m, m.fetchRelated(artist)
		}
	case "c":
		if artist, ok := m.selectedArtist(m.artistList); ok {
			return m, m.fetchConcerts([]models.Artist{artist})
		}
	}

	var cmd tea.Cmd
	m.artistList, cmd = m.artistList.Update(msg)
	return m, cmd
}

func (m *Model) handleRelatedKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = ArtistListView
		return m, nil
	case "enter":
		if artist, ok := m.selectedArtist(m.relatedList); ok {
			return m, m.fetchConcerts([]models.Artist{artist})
		}
	case "c":
		// Gather concerts across the seed and every related artist.
		seeds := append([]models.Artist{m.seed}, m.related...)
		return m, m.fetchConcerts(seeds)
	}

	var cmd tea.Cmd
	m.relatedList, cmd = m.relatedList.Update(msg)
	return m, cmd
}

func (m *Model) handleConcertKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = RelatedListView
		return m, nil
	case "enter":
		if item, ok := m.eventList.SelectedItem().(eventItem); ok {
			return m, m.fetchFlights(item.event)
		}
	}

	var cmd tea.Cmd
	m.eventList, cmd = m.eventList.Update(msg)
	return m, cmd
}

func (m *Model) handleFlightKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = ConcertListView
		return m, nil
	case "p":
		if m.sortKey == views.SortPriceAsc {
			m.sortKey = views.SortPriceDesc
		} else {
			m.sortKey = views.SortPriceAsc
		}
		m.rebuildOfferList()
		return m, nil
	case "d":
		m.sortKey = views.SortDurationAsc
		m.rebuildOfferList()
		return m, nil
	case "s":
		m.sortKey = views.SortStopsAsc
		m.rebuildOfferList()
		return m, nil
	case "n":
		m.nonstop = !m.nonstop
		m.rebuildOfferList()
		return m, nil
	}

	var cmd tea.Cmd
	m.offerList, cmd = m.offerList.Update(msg)
	return m, cmd
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case ArtistListView:
		m.artistList, cmd = m.artistList.Update(msg)
	case RelatedListView:
		m.relatedList, cmd = m.relatedList.Update(msg)
	case ConcertListView:
		m.eventList, cmd = m.eventList.Update(msg)
	case FlightListView:
		m.offerList, cmd = m.offerList.Update(msg)
	}
	return m, cmd
}

func (m *Model) selectedArtist(l list.Model) (models.Artist, bool) {
	if item, ok := l.SelectedItem().(artistItem); ok {
		return item.artist, true
	}
	return models.Artist{}, false
}

func (m *Model) newArtistList(title string, artists []models.Artist) list.Model {
	items := make([]list.Item, len(artists))
	for i, artist := range artists {
		items[i] = artistItem{artist: artist}
	}
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	l.SetSize(m.width-4, m.height-8)
	return l
}

// rebuildOfferList reapplies the filter and sort to the full offer set.
// Filtering always starts from m.offers so toggles never lose data.
func (m *Model) rebuildOfferList() {
	filter := views.NewFlightFilter()
	if m.nonstop {
		filter.MaxStops = 0
	}

	filtered := views.FilterFlights(m.offers, filter)
	views.SortFlights(filtered, m.sortKey)

	items := make([]list.Item, len(filtered))
	for i, offer := range filtered {
		items[i] = offerItem{offer: offer}
	}
	m.offerList = list.New(items, list.NewDefaultDelegate(), 0, 0)
	m.offerList.Title = fmt.Sprintf("Flights (%s)", m.sortKey)
	m.offerList.SetSize(m.width-4, m.height-8)
}

func (m *Model) fetchTopArtists() tea.Cmd {
	return func() tea.Msg {
		artists, err := m.artists.TopArtists(m.ctx, m.token(), topArtistLimit)
		return artistsFetchedMsg{artists: artists, err: err}
	}
}

func (m *Model) fetchRelated(seed models.Artist) tea.Cmd {
	return func() tea.Msg {
		related, err := m.artists.RelatedArtists(m.ctx, m.token(), seed.ID)
		return relatedFetchedMsg{seed: seed, artists: related, err: err}
	}
}

func (m *Model) fetchConcerts(seeds []models.Artist) tea.Cmd {
	return func() tea.Msg {
		result := m.collector.Collect(m.ctx, seeds)
		if result.AllFailed(len(seeds)) {
			return concertsFetchedMsg{err: fmt.Errorf("every concert lookup failed")}
		}
		return concertsFetchedMsg{events: result.Items, failures: result.Failures}
	}
}

func (m *Model) fetchFlights(event models.Event) tea.Cmd {
	return func() tea.Msg {
		destination := destinationAirport(event)
		if destination == "" {
			return flightsFetchedMsg{err: fmt.Errorf("no known airport near %s, %s", event.City, event.State)}
		}

		resp, _, err := m.flights.SearchFlights(m.ctx, services.FlightQuery{
			Origin:        m.origin,
			Destination:   destination,
			DepartureDate: event.Date,
		})
		if err != nil {
			return flightsFetchedMsg{err: err}
		}
		return flightsFetchedMsg{offers: views.FlattenOffers(resp)}
	}
}

func (m *Model) renderList(l list.Model, helpKeys []key.Binding) string {
	return fmt.Sprintf("%s\n\n%s", l.View(), m.help.ShortHelpView(helpKeys))
}

func (m *Model) renderConcerts() string {
	warning := ""
	if len(m.warnings) > 0 {
		warning = styles.warn.Render(fmt.Sprintf("Some lookups failed (%d): %s",
			len(m.warnings), m.warnings[0])) + "\n"
	}

	helpKeys := []key.Binding{m.keys.enter, m.keys.back, m.keys.quit}
	return fmt.Sprintf("%s%s\n\n%s", warning, m.eventList.View(), m.help.ShortHelpView(helpKeys))
}

func (m *Model) renderFlights() string {
	helpKeys := []key.Binding{m.keys.price, m.keys.duration, m.keys.stops, m.keys.nonstop, m.keys.back, m.keys.quit}
	return fmt.Sprintf("%s\n\n%s", m.offerList.View(), m.help.ShortHelpView(helpKeys))
}

// destinationAirport picks the first known airport for the event's state.
func destinationAirport(event models.Event) string {
	if codes := views.AirportsForState(event.State); len(codes) > 0 {
		return codes[0]
	}
	return ""
}
