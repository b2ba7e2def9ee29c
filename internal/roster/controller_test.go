package roster

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"memberbook/internal/api"
	"memberbook/internal/model"
)

// fakeStore implements api.Store in memory for engine tests.
type fakeStore struct {
	members []model.Member

	failList   bool
	failUpdate bool
	failDelete bool

	now time.Time
}

var (
	errRemote       = errors.New("remote store unavailable")
	errUpdateFailed = errors.New("update rejected")
	errDeleteFailed = errors.New("delete rejected")
)

func (f *fakeStore) List(ctx context.Context) ([]model.Member, error) {
	if f.failList {
		return nil, errRemote
	}
	out := make([]model.Member, len(f.members))
	copy(out, f.members)
	return out, nil
}

func (f *fakeStore) Create(ctx context.Context, nm api.NewMember) (model.Member, error) {
	m := model.Member{
		ID:        "srv-new",
		Prefix:    nm.Prefix,
		FirstName: nm.FirstName,
		LastName:  nm.LastName,
		BirthDate: nm.BirthDate,
		CreatedAt: f.now,
		UpdatedAt: f.now,
	}
	f.members = append(f.members, m)
	return m, nil
}

func (f *fakeStore) Update(ctx context.Context, m model.Member) (model.Member, error) {
	if f.failUpdate {
		return model.Member{}, errUpdateFailed
	}
	for i := range f.members {
		if f.members[i].ID == m.ID {
			m.CreatedAt = f.members[i].CreatedAt
			m.UpdatedAt = f.now
			f.members[i] = m
			return m, nil
		}
	}
	return model.Member{}, errRemote
}

func (f *fakeStore) Delete(ctx context.Context, id string) error {
	if f.failDelete {
		return errDeleteFailed
	}
	for i := range f.members {
		if f.members[i].ID == id {
			f.members = append(f.members[:i], f.members[i+1:]...)
			return nil
		}
	}
	return errRemote
}

func newTestController(t *testing.T) (*Controller, *fakeStore) {
	t.Helper()
	fs := &fakeStore{
		now: time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC),
		members: []model.Member{
			{
				ID: "1", Prefix: model.PrefixMiss, FirstName: "Ann", LastName: "Lee",
				BirthDate: time.Date(1990, time.March, 14, 0, 0, 0, 0, time.UTC),
				CreatedAt: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
				UpdatedAt: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
			},
			{
				ID: "2", Prefix: model.PrefixMr, FirstName: "Ben", LastName: "Ng",
				BirthDate: time.Date(1995, time.May, 2, 0, 0, 0, 0, time.UTC),
				CreatedAt: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
				UpdatedAt: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
			},
		},
	}
	c := NewController(fs)
	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	return c, fs
}

func TestRefreshFailureBlocksView(t *testing.T) {
	fs := &fakeStore{failList: true}
	c := NewController(fs)

	if err := c.Refresh(context.Background()); err == nil {
		t.Fatalf("expected refresh error")
	}
	if !c.ListBlocked() {
		t.Fatalf("list failure must block the view")
	}
	if c.Status() == "" {
		t.Fatalf("status slot should hold the failure")
	}

	// A later successful fetch unblocks.
	fs.failList = false
	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if c.ListBlocked() {
		t.Fatalf("view still blocked after successful fetch")
	}
}

func TestLastCompletedRefreshWins(t *testing.T) {
	c := NewController(&fakeStore{})

	// Two fetches in flight; the one completing last determines the cache,
	// regardless of initiation order.
	older := []model.Member{{ID: "1"}, {ID: "2"}}
	newer := []model.Member{{ID: "3"}}
	_ = c.CompleteRefresh(older, nil)
	_ = c.CompleteRefresh(newer, nil)

	ms := c.Members()
	if len(ms) != 1 || ms[0].ID != "3" {
		t.Fatalf("expected last completion to win, got %+v", ms)
	}
}

func TestOpenEditThenCancelLeavesEverythingUntouched(t *testing.T) {
	c, _ := newTestController(t)
	beforeCache := c.Members()
	beforeView := c.View()

	if err := c.OpenEdit("1"); err != nil {
		t.Fatalf("open edit: %v", err)
	}
	if err := c.UpdateField(FieldFirstName, "Anna"); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := c.CancelEdit(); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	if !reflect.DeepEqual(c.Members(), beforeCache) {
		t.Fatalf("cache changed across open/cancel")
	}
	if !reflect.DeepEqual(c.View(), beforeView) {
		t.Fatalf("view changed across open/cancel")
	}
	if c.Session().Phase() != PhaseClosed {
		t.Fatalf("session should be closed")
	}
}

func TestDraftInvisibleToViewUntilCommit(t *testing.T) {
	c, _ := newTestController(t)
	if err := c.OpenEdit("1"); err != nil {
		t.Fatalf("open edit: %v", err)
	}
	if err := c.UpdateField(FieldFirstName, "Zed"); err != nil {
		t.Fatalf("update: %v", err)
	}

	for _, m := range c.View() {
		if m.FirstName == "Zed" {
			t.Fatalf("uncommitted draft leaked into the projected view")
		}
	}
}

func TestSubmitNoMutationsRoundTrips(t *testing.T) {
	c, fs := newTestController(t)
	before, _ := c.Member("1")

	if err := c.OpenEdit("1"); err != nil {
		t.Fatalf("open edit: %v", err)
	}
	result, err := c.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	after, ok := c.Member("1")
	if !ok {
		t.Fatalf("record gone after submit")
	}
	if !reflect.DeepEqual(after, result) {
		t.Fatalf("cache entry is not the server result")
	}
	// Equal except the server-refreshed updated_at; the birth date
	// round-trips through its calendar-date form to the same date.
	if after.FirstName != before.FirstName || after.LastName != before.LastName ||
		after.Prefix != before.Prefix || after.ProfileImage != before.ProfileImage {
		t.Fatalf("fields changed on a no-op submit: %+v vs %+v", before, after)
	}
	if !after.BirthDate.Equal(before.BirthDate) {
		t.Fatalf("birth date did not round-trip: %v vs %v", before.BirthDate, after.BirthDate)
	}
	if !after.UpdatedAt.Equal(fs.now) {
		t.Fatalf("updated_at not server-assigned: %v", after.UpdatedAt)
	}
	if c.Session().Phase() != PhaseClosed {
		t.Fatalf("session should close on success")
	}
}

func TestSubmitFailureKeepsSessionAndCache(t *testing.T) {
	c, fs := newTestController(t)
	fs.failUpdate = true
	before := c.Members()

	if err := c.OpenEdit("1"); err != nil {
		t.Fatalf("open edit: %v", err)
	}
	if err := c.UpdateField(FieldFirstName, "Anna"); err != nil {
		t.Fatalf("update: %v", err)
	}
	if _, err := c.Submit(context.Background()); err == nil {
		t.Fatalf("expected submit failure")
	}

	if c.Session().Phase() != PhaseOpen {
		t.Fatalf("session should reopen for retry, got %v", c.Session().Phase())
	}
	draft, _ := c.Session().Draft()
	if draft.FirstName != "Anna" {
		t.Fatalf("draft lost on failure")
	}
	if !reflect.DeepEqual(c.Members(), before) {
		t.Fatalf("cache changed on failed submit")
	}
	if c.Status() == "" {
		t.Fatalf("status slot should hold the failure")
	}
	if c.ListBlocked() {
		t.Fatalf("edit failure must not block the member view")
	}

	// Retry succeeds once the store recovers.
	fs.failUpdate = false
	if _, err := c.Submit(context.Background()); err != nil {
		t.Fatalf("retry submit: %v", err)
	}
	got, _ := c.Member("1")
	if got.FirstName != "Anna" {
		t.Fatalf("retried edit not applied: %+v", got)
	}
}

func TestOpenEditReplacesOpenSession(t *testing.T) {
	c, _ := newTestController(t)

	if err := c.OpenEdit("1"); err != nil {
		t.Fatalf("open first: %v", err)
	}
	if err := c.UpdateField(FieldFirstName, "Unsaved"); err != nil {
		t.Fatalf("update: %v", err)
	}

	// Opening a second session replaces the first; its edits are lost.
	if err := c.OpenEdit("2"); err != nil {
		t.Fatalf("open second: %v", err)
	}
	draft, ok := c.Session().Draft()
	if !ok || draft.ID != "2" {
		t.Fatalf("expected draft for record 2, got %+v", draft)
	}
	if draft.FirstName == "Unsaved" {
		t.Fatalf("first session's edits leaked into the second")
	}
}

func TestOpenEditUnknownIDIsNotFound(t *testing.T) {
	c, _ := newTestController(t)

	err := c.OpenEdit("missing")
	var nf NotFoundError
	if !errors.As(err, &nf) || nf.ID != "missing" {
		t.Fatalf("expected NotFoundError for the missing id, got %v", err)
	}
	// The id lookup failed, not the state machine; no PhaseError, and no
	// session was opened.
	if _, ok := err.(PhaseError); ok {
		t.Fatalf("unknown id must not report a phase problem")
	}
	if c.Session().Phase() != PhaseClosed {
		t.Fatalf("session opened for an unknown id")
	}
}

func TestOpenEditWhileSubmittingIsPhaseError(t *testing.T) {
	c, _ := newTestController(t)
	if err := c.OpenEdit("1"); err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := c.BeginSubmit(); err != nil {
		t.Fatalf("begin submit: %v", err)
	}

	err := c.OpenEdit("2")
	if _, ok := err.(PhaseError); !ok {
		t.Fatalf("expected PhaseError while submitting, got %v", err)
	}
}

func TestDeleteFailureLeavesCache(t *testing.T) {
	c, fs := newTestController(t)
	fs.failDelete = true

	if err := c.Delete(context.Background(), "2"); err == nil {
		t.Fatalf("expected delete failure")
	}
	if _, ok := c.Member("2"); !ok {
		t.Fatalf("record 2 removed despite failed remote delete")
	}
	if c.Status() == "" {
		t.Fatalf("status slot should hold the failure")
	}
}

func TestDeleteRemovesOnlyAfterConfirmation(t *testing.T) {
	c, _ := newTestController(t)

	if err := c.Delete(context.Background(), "2"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := c.Member("2"); ok {
		t.Fatalf("record 2 still cached after confirmed delete")
	}
}

func TestStatusSlotLastWriteWins(t *testing.T) {
	c, fs := newTestController(t)
	fs.failDelete = true
	fs.failUpdate = true

	_ = c.Delete(context.Background(), "1")
	first := c.Status()

	_ = c.OpenEdit("2")
	_, _ = c.Submit(context.Background())
	second := c.Status()

	if first == "" || second == "" {
		t.Fatalf("expected both failures recorded")
	}
	// One shared slot: the later failure overwrote the earlier one.
	if second == first {
		t.Fatalf("expected the submit failure to overwrite the delete failure")
	}
	if c.Status() != second {
		t.Fatalf("status not last-write-wins")
	}
}
