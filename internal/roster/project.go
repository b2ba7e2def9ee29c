package roster

import (
	"sort"
	"strings"

	"memberbook/internal/model"
)

type SortField string

const (
	SortID        SortField = "id"
	SortPrefix    SortField = "prefix"
	SortFirstName SortField = "first_name"
	SortLastName  SortField = "last_name"
	SortBirthDate SortField = "birth_date"
	SortCreatedAt SortField = "created_at"
	SortUpdatedAt SortField = "updated_at"
)

type SortDirection int

const (
	Ascending SortDirection = iota
	Descending
)

// Params are the user-driven view inputs: free-text search plus sort
// field and direction. The zero value is no search, sort by id ascending.
type Params struct {
	Search    string
	SortField SortField
	SortDir   SortDirection
}

// ToggleSort applies a sort-header activation. The direction flag is
// shared across fields and flips on every invocation, so switching to a
// different field also reverses direction.
func (p *Params) ToggleSort(f SortField) {
	if p.SortDir == Ascending {
		p.SortDir = Descending
	} else {
		p.SortDir = Ascending
	}
	p.SortField = f
}

// Project derives the displayed sequence: members whose first or last
// name contains the search term (case-insensitive; empty matches all),
// ordered by the sort field with ties broken by ascending id. The term
// is matched exactly as given; whitespace is significant. Pure and
// re-entrant; the input slice is never mutated.
func Project(members []model.Member, p Params) []model.Member {
	q := strings.ToLower(p.Search)

	out := make([]model.Member, 0, len(members))
	for _, m := range members {
		if q == "" ||
			strings.Contains(strings.ToLower(m.FirstName), q) ||
			strings.Contains(strings.ToLower(m.LastName), q) {
			out = append(out, m)
		}
	}

	field := p.SortField
	if field == "" {
		field = SortID
	}
	sort.SliceStable(out, func(i, j int) bool {
		c := compareField(out[i], out[j], field)
		if p.SortDir == Descending {
			c = -c
		}
		if c != 0 {
			return c < 0
		}
		// Total order regardless of traversal order or direction.
		return out[i].ID < out[j].ID
	})
	return out
}

func compareField(a, b model.Member, f SortField) int {
	switch f {
	case SortPrefix:
		return strings.Compare(string(a.Prefix), string(b.Prefix))
	case SortFirstName:
		return strings.Compare(a.FirstName, b.FirstName)
	case SortLastName:
		return strings.Compare(a.LastName, b.LastName)
	case SortBirthDate:
		return a.BirthDate.Compare(b.BirthDate)
	case SortCreatedAt:
		return a.CreatedAt.Compare(b.CreatedAt)
	case SortUpdatedAt:
		return a.UpdatedAt.Compare(b.UpdatedAt)
	default:
		return strings.Compare(a.ID, b.ID)
	}
}
