// Package roster is the client-side record engine: the local mirror of the
// remote member set, the filtered/sorted view derived from it, and the
// single edit session that mediates between a remote record and a local
// draft.
package roster

import "memberbook/internal/model"

// Cache is the authoritative local mirror of the remote member set.
// It keeps load/insertion order; sorting belongs to Project. Operations
// never fail and perform no validation.
type Cache struct {
	members []model.Member
}

// Load replaces the entire contents. The last load to complete wins;
// there is no merging of concurrent fetches.
func (c *Cache) Load(members []model.Member) {
	c.members = make([]model.Member, len(members))
	copy(c.members, members)
}

// ApplyUpdate replaces the record with the same id wholesale. Unknown
// ids are ignored; updates always target records obtained from the cache.
func (c *Cache) ApplyUpdate(m model.Member) {
	for i := range c.members {
		if c.members[i].ID == m.ID {
			c.members[i] = m
			return
		}
	}
}

// ApplyRemoval drops the record with the given id; absent ids are a no-op.
func (c *Cache) ApplyRemoval(id string) {
	for i := range c.members {
		if c.members[i].ID == id {
			c.members = append(c.members[:i], c.members[i+1:]...)
			return
		}
	}
}

// All returns a copy of the current contents in load order.
func (c *Cache) All() []model.Member {
	out := make([]model.Member, len(c.members))
	copy(out, c.members)
	return out
}

func (c *Cache) Get(id string) (model.Member, bool) {
	for i := range c.members {
		if c.members[i].ID == id {
			return c.members[i], true
		}
	}
	return model.Member{}, false
}

func (c *Cache) Len() int { return len(c.members) }
