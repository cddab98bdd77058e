package repositories

import (
	"database/sql"
	"testing"

	"github.com/desertthunder/vibent/internal/models"
	"github.com/desertthunder/vibent/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func sampleArtist() models.Artist {
	return models.Artist{
		ID:          "artist-1",
		Name:        "Phantogram",
		Genres:      []string{"electronic", "indie"},
		Popularity:  70,
		ImageURL:    "https://img.example/p.jpg",
		ExternalURL: "https://open.spotify.com/artist/artist-1",
	}
}

func sampleEvent(id string) models.Event {
	return models.Event{
		ID:    id,
		Name:  "Phantogram Live",
		Date:  "2026-09-01",
		Time:  "20:00:00",
		Venue: "The Fillmore",
		City:  "San Francisco",
		State: "CA",
		URL:   "https://tickets.example/" + id,
		PriceRanges: []models.PriceRange{
			{Currency: "USD", Min: 45, Max: 120},
		},
	}
}

func TestArtistRepository(t *testing.T) {
	t.Run("create and get", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewArtistRepository(db)

		artist := models.NewPersistedArtist("spotify", sampleArtist())
		if err := repo.Create(artist); err != nil {
			t.Fatalf("Create: %v", err)
		}
		if artist.RowID == 0 {
			t.Error("row id should be set after creation")
		}

		got, err := repo.GetBySourceID("spotify", "artist-1")
		if err != nil {
			t.Fatalf("GetBySourceID: %v", err)
		}
		if got == nil || got.Artist.Name != "Phantogram" {
			t.Fatalf("got %+v", got)
		}
		if len(got.Artist.Genres) != 2 || got.Artist.Genres[0] != "electronic" {
			t.Errorf("genres = %v", got.Artist.Genres)
		}
	})

	t.Run("missing row returns nil", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewArtistRepository(db)

		got, err := repo.GetBySourceID("spotify", "nope")
		if err != nil {
			t.Fatalf("GetBySourceID: %v", err)
		}
		if got != nil {
			t.Errorf("expected nil, got %+v", got)
		}
	})

	t.Run("duplicate source id violates constraint", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewArtistRepository(db)

		if err := repo.Create(models.NewPersistedArtist("spotify", sampleArtist())); err != nil {
			t.Fatalf("Create: %v", err)
		}
		err := repo.Create(models.NewPersistedArtist("spotify", sampleArtist()))
		if !isUniqueViolation(err) {
			t.Fatalf("expected unique violation, got %v", err)
		}
	})

	t.Run("search by name", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewArtistRepository(db)

		if err := repo.Create(models.NewPersistedArtist("spotify", sampleArtist())); err != nil {
			t.Fatalf("Create: %v", err)
		}

		got, err := repo.SearchByName("phanto", 10)
		if err != nil {
			t.Fatalf("SearchByName: %v", err)
		}
		if len(got) != 1 {
			t.Fatalf("expected 1 match, got %d", len(got))
		}
	})
}

func TestEventRepository(t *testing.T) {
	t.Run("create and list by artist", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewEventRepository(db)

		later := sampleEvent("ev2")
		later.Date = "2026-09-03"

		if err := repo.Create(models.NewPersistedEvent("ticketmaster", "Phantogram", later)); err != nil {
			t.Fatalf("Create: %v", err)
		}
		if err := repo.Create(models.NewPersistedEvent("ticketmaster", "Phantogram", sampleEvent("ev1"))); err != nil {
			t.Fatalf("Create: %v", err)
		}

		events, err := repo.ListByArtist("phantogram")
		if err != nil {
			t.Fatalf("ListByArtist: %v", err)
		}
		if len(events) != 2 {
			t.Fatalf("expected 2 events, got %d", len(events))
		}
		if events[0].SourceID != "ev1" {
			t.Errorf("events should be soonest first, got %s", events[0].SourceID)
		}
		if len(events[0].Event.PriceRanges) != 1 || events[0].Event.PriceRanges[0].Min != 45 {
			t.Errorf("price range not restored: %+v", events[0].Event.PriceRanges)
		}
	})

	t.Run("validation rejects empty name", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewEventRepository(db)

		bad := sampleEvent("ev1")
		bad.Name = ""
		if err := repo.Create(models.NewPersistedEvent("ticketmaster", "Phantogram", bad)); err == nil {
			t.Fatal("expected a validation error")
		}
	})
}

func TestLookupCacheDeduplicates(t *testing.T) {
	db := setupTestDB(t)
	cache := NewLookupCache(NewArtistRepository(db), NewEventRepository(db))

	first := sampleArtist()
	if err := cache.CacheArtist("spotify", first); err != nil {
		t.Fatalf("CacheArtist: %v", err)
	}

	// Same source id with different details keeps the first write.
	renamed := sampleArtist()
	renamed.Name = "Phantogram (Deluxe)"
	if err := cache.CacheArtist("spotify", renamed); err != nil {
		t.Fatalf("CacheArtist duplicate: %v", err)
	}

	repo := NewArtistRepository(db)
	got, err := repo.GetBySourceID("spotify", "artist-1")
	if err != nil || got == nil {
		t.Fatalf("GetBySourceID: %v, %v", got, err)
	}
	if got.Artist.Name != "Phantogram" {
		t.Errorf("first write should win, got %q", got.Artist.Name)
	}

	if n, _ := repo.Count(); n != 1 {
		t.Errorf("expected 1 cached artist, got %d", n)
	}
}

func TestLookupCacheEvents(t *testing.T) {
	db := setupTestDB(t)
	cache := NewLookupCache(NewArtistRepository(db), NewEventRepository(db))

	events := []models.Event{sampleEvent("ev1"), sampleEvent("ev2"), sampleEvent("ev1")}
	if err := cache.CacheEvents("ticketmaster", "Phantogram", events); err != nil {
		t.Fatalf("CacheEvents: %v", err)
	}

	repo := NewEventRepository(db)
	if n, _ := repo.Count(); n != 2 {
		t.Errorf("expected 2 cached events, got %d", n)
	}
}
