package posts

import (
	"errors"
	"sort"
	"sync"

	"go.uber.org/multierr"
)

var (
	ErrRecordExists   = errors.New("Current record already exists")
	ErrRecordNotFound = errors.New("Current record doesn't exist")
	ErrNoID           = errors.New("Record has no id")
)

// Collection keeps posts normalized: an id->entity map for O(1) lookup plus a
// cached id order re-derived from the sort comparator after every mutation.
// Posts are copied on the way in and out, so callers never share reaction maps
// with the collection.
type Collection struct {
	mu       sync.RWMutex
	ids      []string
	entities map[string]Post
	version  uint64
}

func NewCollection() *Collection {
	return &Collection{
		entities: map[string]Post{},
	}
}

// Version increases on every applied mutation. Selectors use it to detect
// that nothing changed between reads.
func (c *Collection) Version() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.version
}

func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.ids)
}

func (c *Collection) UpsertOne(post Post) error {
	if post.ID == "" {
		return ErrNoID
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.upsertLocked(post)
	return nil
}

// UpsertMany applies UpsertOne semantics to every post. The whole batch is
// validated first: if any post has no id, nothing is applied and the per-post
// errors come back aggregated.
func (c *Collection) UpsertMany(batch []Post) error {
	var err error
	for _, post := range batch {
		if post.ID == "" {
			err = multierr.Append(err, ErrNoID)
		}
	}
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, post := range batch {
		c.upsertLocked(post)
	}
	return nil
}

// AddOne refuses to overwrite: inserting an id that is already present
// returns ErrRecordExists and leaves the existing entity untouched.
func (c *Collection) AddOne(post Post) error {
	if post.ID == "" {
		return ErrNoID
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entities[post.ID]; ok {
		return ErrRecordExists
	}
	c.upsertLocked(post)
	return nil
}

// RemoveOne deletes the id and its entity together; absent ids are a no-op.
func (c *Collection) RemoveOne(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entities[id]; !ok {
		return
	}
	delete(c.entities, id)
	for i, existing := range c.ids {
		if existing == id {
			c.ids = append(c.ids[:i], c.ids[i+1:]...)
			break
		}
	}
	c.version++
}

// All returns the posts ordered by the comparator: date descending.
func (c *Collection) All() []Post {
	c.mu.RLock()
	defer c.mu.RUnlock()
	elems := make([]Post, 0, len(c.ids))
	for _, id := range c.ids {
		elems = append(elems, c.entities[id].clone())
	}
	return elems
}

func (c *Collection) ByID(id string) (Post, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	post, ok := c.entities[id]
	if !ok {
		return Post{}, ErrRecordNotFound
	}
	return post.clone(), nil
}

func (c *Collection) IDs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ids := make([]string, len(c.ids))
	copy(ids, c.ids)
	return ids
}

func (c *Collection) upsertLocked(post Post) {
	if _, ok := c.entities[post.ID]; !ok {
		c.ids = append(c.ids, post.ID)
	}
	c.entities[post.ID] = post.clone()
	c.resortLocked()
	c.version++
}

func (c *Collection) resortLocked() {
	sort.SliceStable(c.ids, func(i, j int) bool {
		return c.entities[c.ids[i]].Date > c.entities[c.ids[j]].Date
	})
}
