package store

import (
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"

	"github.com/documounttech/GGalumni/types"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return s
}

func TestOpenSeedsEmptyCollections(t *testing.T) {
	dir := t.TempDir()
	if _, err := Open(dir); err != nil {
		t.Fatalf("open store: %v", err)
	}

	for _, kind := range kinds {
		data, err := os.ReadFile(filepath.Join(dir, string(kind)+".json"))
		if err != nil {
			t.Fatalf("read %s file: %v", kind, err)
		}
		if string(data) != "[]" {
			t.Fatalf("expected %s file seeded with [], got %q", kind, data)
		}
	}
}

func TestLoadMissingFileReturnsEmpty(t *testing.T) {
	s := openStore(t)
	if err := os.Remove(s.path(Users)); err != nil {
		t.Fatalf("remove backing file: %v", err)
	}

	if got := Load[types.User](s, Users); len(got) != 0 {
		t.Fatalf("expected empty collection for missing file, got %d records", len(got))
	}
}

func TestLoadCorruptFileReturnsEmpty(t *testing.T) {
	s := openStore(t)
	if err := os.WriteFile(s.path(News), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	if got := Load[types.News](s, News); len(got) != 0 {
		t.Fatalf("expected empty collection for corrupt file, got %d records", len(got))
	}
}

func TestSaveLoadPreservesOrderAndFields(t *testing.T) {
	s := openStore(t)

	events := []types.Event{
		{ID: "1", Title: "Reunion", Date: "2099-01-01", Location: "Main Hall", Organizer: "Ada"},
		{ID: "2", Title: "Career Fair", Date: "2099-06-01", Location: "Campus", Organizer: "Grace"},
		{ID: "3", Title: "Homecoming", Date: "2099-09-01", Location: "Stadium", Organizer: "Ada"},
	}
	if err := Save(s, Events, events); err != nil {
		t.Fatalf("save events: %v", err)
	}

	got := Load[types.Event](s, Events)
	if len(got) != len(events) {
		t.Fatalf("expected %d events, got %d", len(events), len(got))
	}
	for i := range events {
		if got[i] != events[i] {
			t.Fatalf("event %d changed across save/load: %+v vs %+v", i, got[i], events[i])
		}
	}
}

func TestUpdateSerializesConcurrentAppends(t *testing.T) {
	s := openStore(t)

	const writers = 20
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			err := Update(s, Jobs, func(jobs []types.Job) ([]types.Job, error) {
				return append(jobs, types.Job{ID: strconv.Itoa(n), Title: "Engineer"}), nil
			})
			if err != nil {
				t.Errorf("update jobs: %v", err)
			}
		}(i)
	}
	wg.Wait()

	if got := Load[types.Job](s, Jobs); len(got) != writers {
		t.Fatalf("expected %d jobs after concurrent appends, got %d", writers, len(got))
	}
}

func TestUpdateErrorAbandonsWrite(t *testing.T) {
	s := openStore(t)

	if err := Save(s, Users, []types.User{{ID: "1", Email: "a@x.com"}}); err != nil {
		t.Fatalf("seed users: %v", err)
	}

	wantErr := os.ErrInvalid
	err := Update(s, Users, func(users []types.User) ([]types.User, error) {
		return nil, wantErr
	})
	if err != wantErr {
		t.Fatalf("expected fn error to propagate, got %v", err)
	}

	if got := Load[types.User](s, Users); len(got) != 1 {
		t.Fatalf("expected collection untouched after failed update, got %d records", len(got))
	}
}
