package portal

import (
	"testing"
	"time"

	"github.com/documounttech/GGalumni/types"
)

var directoryFixture = []types.User{
	{ID: "1", Name: "Ada Lovelace", Company: "Analytical Engines", Batch: "2015", Department: "CS"},
	{ID: "2", Name: "Grace Hopper", Company: "Navy Labs", Batch: "2015", Department: "CS"},
	{ID: "3", Name: "Alan Kay", Company: "Analytical Engines", Batch: "2016", Department: "CS"},
	{ID: "4", Name: "Barbara Liskov", Company: "MIT", Batch: "2015", Department: "EE"},
}

func ids(profiles []types.PublicProfile) map[string]bool {
	set := make(map[string]bool, len(profiles))
	for _, p := range profiles {
		set[p.ID] = true
	}
	return set
}

func TestFilterSearchMatchesNameOrCompany(t *testing.T) {
	byName := filterProfiles(directoryFixture, "ada", "", "")
	if got := ids(byName); len(got) != 1 || !got["1"] {
		t.Fatalf("expected case-insensitive name match, got %v", got)
	}

	byCompany := filterProfiles(directoryFixture, "ANALYTICAL", "", "")
	if got := ids(byCompany); len(got) != 2 || !got["1"] || !got["3"] {
		t.Fatalf("expected company substring match, got %v", got)
	}
}

func TestFiltersAreConjunctive(t *testing.T) {
	combined := ids(filterProfiles(directoryFixture, "analytical", "2015", "CS"))

	intersection := make(map[string]bool)
	search := ids(filterProfiles(directoryFixture, "analytical", "", ""))
	batch := ids(filterProfiles(directoryFixture, "", "2015", ""))
	department := ids(filterProfiles(directoryFixture, "", "", "CS"))
	for id := range search {
		if batch[id] && department[id] {
			intersection[id] = true
		}
	}

	if len(combined) != len(intersection) {
		t.Fatalf("combined filter %v does not equal intersection %v", combined, intersection)
	}
	for id := range combined {
		if !intersection[id] {
			t.Fatalf("combined filter %v does not equal intersection %v", combined, intersection)
		}
	}
	if len(combined) != 1 || !combined["1"] {
		t.Fatalf("expected only Ada to survive all three filters, got %v", combined)
	}
}

func TestFilterExcludesCredentials(t *testing.T) {
	users := []types.User{{ID: "1", Name: "Ada", Password: "$2a$10$hash"}}
	profiles := filterProfiles(users, "", "", "")
	if len(profiles) != 1 {
		t.Fatalf("expected one profile, got %d", len(profiles))
	}
	// PublicProfile has no password field; make sure the projection is used.
	if profiles[0].Name != "Ada" || profiles[0].ID != "1" {
		t.Fatalf("unexpected projection %+v", profiles[0])
	}
}

func TestCountUpcoming(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	events := []types.Event{
		{ID: "1", Date: "2099-01-01"},         // future
		{ID: "2", Date: "2020-01-01"},         // past
		{ID: "3", Date: "not-a-date"},         // unparsable
		{ID: "4", Date: "2026-08-31T15:00"},   // later today
		{ID: "5", Date: ""},                   // empty
	}

	if got := countUpcoming(events, now); got != 2 {
		t.Fatalf("expected 2 upcoming events, got %d", got)
	}
}

func TestLatestNewestFirst(t *testing.T) {
	news := []types.News{
		{ID: "1", Title: "a"},
		{ID: "2", Title: "b"},
		{ID: "3", Title: "c"},
		{ID: "4", Title: "d"},
	}

	got := latest(news, 3)
	if len(got) != 3 {
		t.Fatalf("expected 3 items, got %d", len(got))
	}
	if got[0].ID != "4" || got[1].ID != "3" || got[2].ID != "2" {
		t.Fatalf("expected newest-first tail, got %+v", got)
	}

	if short := latest(news[:1], 3); len(short) != 1 || short[0].ID != "1" {
		t.Fatalf("expected short collections returned whole, got %+v", short)
	}
}
