package roster

import (
	"strings"
	"testing"
	"time"

	"memberbook/internal/model"
)

func fixtureMembers() []model.Member {
	bd := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	return []model.Member{
		{ID: "2", Prefix: model.PrefixMr, FirstName: "Ben", LastName: "Ng", BirthDate: bd(1995, time.May, 2)},
		{ID: "1", Prefix: model.PrefixMiss, FirstName: "Ann", LastName: "Lee", BirthDate: bd(1990, time.March, 14)},
		{ID: "3", Prefix: model.PrefixMrs, FirstName: "Cara", LastName: "Lee", BirthDate: bd(1990, time.March, 14)},
	}
}

func ids(ms []model.Member) string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.ID
	}
	return strings.Join(out, ",")
}

func TestProjectEmptySearchPassesEverything(t *testing.T) {
	ms := fixtureMembers()
	got := Project(ms, Params{})
	if len(got) != len(ms) {
		t.Fatalf("expected all %d records, got %d", len(ms), len(got))
	}
}

func TestProjectFiltersOnEitherName(t *testing.T) {
	ms := fixtureMembers()

	// "an" matches Ann (first name), case-insensitively.
	got := Project(ms, Params{Search: "an"})
	if ids(got) != "1" {
		t.Fatalf(`search "an": got ids %s, want 1`, ids(got))
	}

	// "LEE" matches by last name despite case.
	got = Project(ms, Params{Search: "LEE"})
	if ids(got) != "1,3" {
		t.Fatalf(`search "LEE": got ids %s, want 1,3`, ids(got))
	}

	// Every survivor actually contains the term.
	for _, m := range Project(ms, Params{Search: "e"}) {
		first := strings.ToLower(m.FirstName)
		last := strings.ToLower(m.LastName)
		if !strings.Contains(first, "e") && !strings.Contains(last, "e") {
			t.Fatalf("record %s does not match the search term", m.ID)
		}
	}
}

func TestProjectSearchWhitespaceIsSignificant(t *testing.T) {
	ms := append(fixtureMembers(), model.Member{ID: "4", FirstName: "Lee Ann", LastName: "Park"})

	// A trailing space is part of the term: "lee " is not a substring of
	// "Lee" or "Lees", only of "Lee Ann".
	got := Project(ms, Params{Search: "lee "})
	if ids(got) != "4" {
		t.Fatalf(`search "lee ": got ids %s, want 4`, ids(got))
	}

	// A whitespace-only term is non-empty; it does not pass everything.
	got = Project(ms, Params{Search: " "})
	if ids(got) != "4" {
		t.Fatalf(`search " ": got ids %s, want 4`, ids(got))
	}
}

func TestProjectSortAndTieBreak(t *testing.T) {
	ms := fixtureMembers()

	// Last names: Lee (1), Lee (3), Ng (2). The Lee tie breaks on id.
	got := Project(ms, Params{SortField: SortLastName, SortDir: Ascending})
	if ids(got) != "1,3,2" {
		t.Fatalf("ascending last_name: got %s, want 1,3,2", ids(got))
	}

	// Descending flips the field comparison; the tie-break stays id-ascending.
	got = Project(ms, Params{SortField: SortLastName, SortDir: Descending})
	if ids(got) != "2,1,3" {
		t.Fatalf("descending last_name: got %s, want 2,1,3", ids(got))
	}

	// Birth-date ties (1 and 3 share a date) also break on id.
	got = Project(ms, Params{SortField: SortBirthDate, SortDir: Ascending})
	if ids(got) != "1,3,2" {
		t.Fatalf("ascending birth_date: got %s, want 1,3,2", ids(got))
	}
}

func TestProjectDeterministic(t *testing.T) {
	ms := fixtureMembers()
	p := Params{SortField: SortLastName, SortDir: Ascending}
	first := ids(Project(ms, p))
	for i := 0; i < 10; i++ {
		if got := ids(Project(ms, p)); got != first {
			t.Fatalf("projection order changed between calls: %s vs %s", first, got)
		}
	}
}

func TestProjectDoesNotMutateInput(t *testing.T) {
	ms := fixtureMembers()
	before := ids(ms)
	_ = Project(ms, Params{SortField: SortFirstName, SortDir: Descending})
	if ids(ms) != before {
		t.Fatalf("input slice was reordered")
	}
}

func TestToggleSortSharedDirectionFlag(t *testing.T) {
	var p Params

	// First activation of last_name: asc -> desc.
	p.ToggleSort(SortLastName)
	if p.SortField != SortLastName || p.SortDir != Descending {
		t.Fatalf("after first toggle: %+v", p)
	}

	// Same field again: flips back.
	p.ToggleSort(SortLastName)
	if p.SortDir != Ascending {
		t.Fatalf("after second toggle: %+v", p)
	}

	// Different field: the one shared flag still flips.
	p.ToggleSort(SortFirstName)
	if p.SortField != SortFirstName || p.SortDir != Descending {
		t.Fatalf("after switching fields: %+v", p)
	}
}
