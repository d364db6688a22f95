package store

import (
	"sync"
	"time"

	"postsync/pkg/posts"
)

type Status string

const (
	StatusIdle      Status = "idle"
	StatusLoading   Status = "loading"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Store is the single process-wide source of truth: the normalized post
// collection plus the fetch lifecycle status, the last fetch error and the
// demo counter. Constructed once at startup and passed by reference.
type Store struct {
	posts *posts.Collection

	mu     sync.RWMutex
	status Status
	err    string
	count  int

	now func() time.Time
}

func New(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{
		posts:  posts.NewCollection(),
		status: StatusIdle,
		now:    now,
	}
}

// Posts exposes the collection for the synchronization layer.
func (s *Store) Posts() *posts.Collection {
	return s.posts
}

// PostAdded synthesizes a fully-formed post from the draft fields and inserts
// it directly, without touching the remote resource.
func (s *Store) PostAdded(title, content string, userID int) (posts.Post, error) {
	post, err := posts.New(title, content, userID, s.now())
	if err != nil {
		return posts.Post{}, err
	}
	if err := s.posts.AddOne(post); err != nil {
		return posts.Post{}, err
	}
	return post, nil
}

// ReactionAdded increments exactly one reaction counter. Unknown reaction
// kinds and absent posts are a no-op.
func (s *Store) ReactionAdded(postID string, kind posts.Reaction) {
	if !kind.Known() {
		return
	}
	post, err := s.posts.ByID(postID)
	if err != nil {
		return
	}
	post.Reactions[kind]++
	// ByID returned a copy, so writing it back is the whole mutation.
	_ = s.posts.UpsertOne(post)
}

func (s *Store) IncreaseCount() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.count++
}

func (s *Store) SetStatus(status Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
}

func (s *Store) SetError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = msg
}

func (s *Store) ClearError() {
	s.SetError("")
}

func (s *Store) AllPosts() []posts.Post {
	return s.posts.All()
}

func (s *Store) PostByID(id string) (posts.Post, error) {
	return s.posts.ByID(id)
}

func (s *Store) PostIDs() []string {
	return s.posts.IDs()
}

func (s *Store) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

func (s *Store) Error() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.count
}
