package store

import (
	"sync"

	"postsync/pkg/posts"
)

// ByUserSelector memoizes the by-user filtered view. The cached slice is
// returned as-is until either the collection version or the requested user id
// changes, so repeated reads with nothing changed see the same reference.
type ByUserSelector struct {
	store *Store

	mu      sync.Mutex
	version uint64
	userID  int
	cached  []posts.Post
	valid   bool
}

func NewByUserSelector(s *Store) *ByUserSelector {
	return &ByUserSelector{store: s}
}

func (sel *ByUserSelector) Select(userID int) []posts.Post {
	sel.mu.Lock()
	defer sel.mu.Unlock()
	version := sel.store.posts.Version()
	if sel.valid && version == sel.version && userID == sel.userID {
		return sel.cached
	}
	filtered := make([]posts.Post, 0)
	for _, post := range sel.store.AllPosts() {
		if post.UserID == userID {
			filtered = append(filtered, post)
		}
	}
	sel.version = version
	sel.userID = userID
	sel.cached = filtered
	sel.valid = true
	return filtered
}
