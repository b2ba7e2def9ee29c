package roster

import (
	"context"

	"memberbook/internal/api"
	"memberbook/internal/model"
)

// Controller is the top-level owner of client state: the cache, the view
// parameters, the single edit session and the shared status slot. All
// mutation goes through it, on one logical thread of control.
//
// Remote calls are split into begin/complete pairs so an event loop can
// run the call asynchronously and apply the completion in arrival order;
// the ctx-taking wrappers do both steps for synchronous callers.
type Controller struct {
	store   api.Store
	cache   Cache
	session Session
	params  Params

	// status is the shared error slot: one human-readable message,
	// last write wins across all operations.
	status string
	// listBlocked marks a failed list fetch. Unlike edit/delete
	// failures it blocks the member view until a refresh succeeds.
	listBlocked bool
	loaded      bool
}

func NewController(store api.Store) *Controller {
	return &Controller{store: store}
}

func (c *Controller) Store() api.Store { return c.store }

func (c *Controller) Status() string { return c.status }

func (c *Controller) ClearStatus() { c.status = "" }

// ListBlocked reports whether the member view is unavailable because the
// initial (or latest) list fetch failed.
func (c *Controller) ListBlocked() bool { return c.listBlocked }

// Loaded reports whether any list fetch has completed successfully.
func (c *Controller) Loaded() bool { return c.loaded }

func (c *Controller) Members() []model.Member { return c.cache.All() }

func (c *Controller) Member(id string) (model.Member, bool) { return c.cache.Get(id) }

func (c *Controller) Params() Params { return c.params }

func (c *Controller) SetSearch(q string) { c.params.Search = q }

func (c *Controller) ToggleSort(f SortField) { c.params.ToggleSort(f) }

// View is the projected sequence for display: the cache filtered and
// sorted under the current parameters. Recomputed on every call, never
// patched incrementally.
func (c *Controller) View() []model.Member {
	return Project(c.cache.All(), c.params)
}

// Refresh fetches the full member list and replaces the cache.
func (c *Controller) Refresh(ctx context.Context) error {
	members, err := c.store.List(ctx)
	return c.CompleteRefresh(members, err)
}

// CompleteRefresh applies a finished list fetch. Completion order is the
// only order that matters: a later-arriving fetch overwrites an earlier
// one wholesale.
func (c *Controller) CompleteRefresh(members []model.Member, err error) error {
	if err != nil {
		c.status = err.Error()
		c.listBlocked = true
		return err
	}
	c.cache.Load(members)
	c.listBlocked = false
	c.loaded = true
	return nil
}

// Session exposes the edit session for phase checks and draft reads.
func (c *Controller) Session() *Session { return &c.session }

// OpenEdit starts editing the cached record with the given id. An Open
// session is implicitly cancelled and replaced; a Submitting session
// cannot be displaced while its network call is pending.
func (c *Controller) OpenEdit(id string) error {
	m, ok := c.cache.Get(id)
	if !ok {
		return NotFoundError{ID: id}
	}
	if c.session.Phase() == PhaseOpen {
		_ = c.session.Cancel()
	}
	return c.session.Open(m)
}

func (c *Controller) UpdateField(f Field, value string) error {
	return c.session.UpdateField(f, value)
}

func (c *Controller) UpdateImage(data []byte) error {
	return c.session.UpdateImage(data)
}

func (c *Controller) CancelEdit() error {
	return c.session.Cancel()
}

// BeginSubmit transitions the session to Submitting and returns the
// payload to send to the remote store.
func (c *Controller) BeginSubmit() (model.Member, error) {
	payload, err := c.session.beginSubmit()
	if err != nil {
		return model.Member{}, err
	}
	return payload, nil
}

// CompleteSubmit applies the remote result of a submit. Only a confirmed
// success touches the cache.
func (c *Controller) CompleteSubmit(result model.Member, err error) error {
	if err != nil {
		c.status = err.Error()
		c.session.completeSubmit(false)
		return err
	}
	c.cache.ApplyUpdate(result)
	c.session.completeSubmit(true)
	return nil
}

// Submit runs the full submit synchronously: begin, remote update,
// complete.
func (c *Controller) Submit(ctx context.Context) (model.Member, error) {
	payload, err := c.BeginSubmit()
	if err != nil {
		return model.Member{}, err
	}
	result, err := c.store.Update(ctx, payload)
	if err := c.CompleteSubmit(result, err); err != nil {
		return model.Member{}, err
	}
	return result, nil
}

// Delete removes a record remotely and, only after confirmation, from
// the cache. There is no optimistic removal.
func (c *Controller) Delete(ctx context.Context, id string) error {
	err := c.store.Delete(ctx, id)
	return c.CompleteDelete(id, err)
}

// CompleteDelete applies a finished remote delete.
func (c *Controller) CompleteDelete(id string, err error) error {
	if err != nil {
		c.status = err.Error()
		return err
	}
	c.cache.ApplyRemoval(id)
	return nil
}

// Create registers a new member remotely. The cache is not touched:
// records enter it through the next list fetch, so the cache only ever
// holds server-born records.
func (c *Controller) Create(ctx context.Context, nm api.NewMember) (model.Member, error) {
	created, err := c.store.Create(ctx, nm)
	if err != nil {
		c.status = err.Error()
		return model.Member{}, err
	}
	return created, nil
}

// CompleteCreate records the outcome of an asynchronous create.
func (c *Controller) CompleteCreate(err error) error {
	if err != nil {
		c.status = err.Error()
	}
	return err
}
