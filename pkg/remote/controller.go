package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"postsync/pkg/posts"
	"postsync/pkg/store"
	"postsync/pkg/transport"
)

// Draft is a caller-supplied post without an id; the resource assigns one.
type Draft struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	UserID  int    `json:"userId"`
}

// Controller runs the four remote operations and reconciles each settlement
// into the store. It owns the failure policy per operation: fetch failures
// land in status/error, create failures propagate, update failures fall back
// to the local draft, delete failures collapse into a diagnostic string.
type Controller struct {
	store     *store.Store
	transport transport.Doer
	baseURL   string
	logger    *zap.SugaredLogger
	now       func() time.Time
	metrics   *Metrics
}

func New(st *store.Store, tr transport.Doer, baseURL string, logger *zap.SugaredLogger, now func() time.Time) *Controller {
	if now == nil {
		now = time.Now
	}
	return &Controller{
		store:     st,
		transport: tr,
		baseURL:   baseURL,
		logger:    logger,
		now:       now,
	}
}

// WithMetrics attaches operation counters; without it settlements are not
// counted but behave identically.
func (c *Controller) WithMetrics(m *Metrics) *Controller {
	c.metrics = m
	return c
}

// FetchAll loads the whole remote collection. Each received post gets a
// synthesized descending date (first post one minute ago, second two, ...)
// and freshly zeroed reactions; whatever reactions the remote sent are
// discarded.
func (c *Controller) FetchAll(ctx context.Context) error {
	c.store.SetStatus(store.StatusLoading)

	fail := func(err error) error {
		c.store.SetStatus(store.StatusFailed)
		c.store.SetError(err.Error())
		c.metrics.observe("fetch_all", resultFailed)
		c.logger.Infow("fetch failed", "error", err.Error())
		return err
	}

	response, err := c.transport.Do(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return fail(err)
	}
	if !response.OK() {
		return fail(fmt.Errorf("%d: %s", response.Status, response.StatusText))
	}
	var raw []remotePost
	if err := json.Unmarshal(response.Body, &raw); err != nil {
		return fail(errors.Wrap(err, "decode posts"))
	}

	loaded := make([]posts.Post, 0, len(raw))
	for i, rp := range raw {
		loaded = append(loaded, posts.Post{
			ID:        string(rp.ID),
			Title:     rp.Title,
			Content:   rp.text(),
			UserID:    int(rp.UserID),
			Date:      c.now().Add(-time.Duration(i+1) * time.Minute).UTC().Format(time.RFC3339),
			Reactions: posts.NewReactions(),
		})
	}
	if err := c.store.Posts().UpsertMany(loaded); err != nil {
		return fail(err)
	}

	c.store.SetStatus(store.StatusSucceeded)
	c.store.ClearError()
	c.metrics.observe("fetch_all", resultOK)
	c.logger.Infof("Fetched %v posts", len(loaded))
	return nil
}

// AddNew creates the post remotely and inserts the settled result. Any
// failure propagates to the caller with no collection mutation.
func (c *Controller) AddNew(ctx context.Context, draft Draft) (posts.Post, error) {
	response, err := c.transport.Do(ctx, http.MethodPost, c.baseURL, draft)
	if err != nil {
		return posts.Post{}, err
	}
	if !response.OK() {
		return posts.Post{}, fmt.Errorf("%d: %s", response.Status, response.StatusText)
	}
	var rp remotePost
	if err := json.Unmarshal(response.Body, &rp); err != nil {
		return posts.Post{}, errors.Wrap(err, "decode created post")
	}

	post := posts.Post{
		ID:        string(rp.ID),
		Title:     rp.Title,
		Content:   rp.text(),
		UserID:    int(rp.UserID),
		Date:      c.now().UTC().Format(time.RFC3339),
		Reactions: posts.NewReactions(),
	}
	if err := c.store.Posts().AddOne(post); err != nil {
		c.metrics.observe("add_new", resultFailed)
		return posts.Post{}, err
	}
	c.metrics.observe("add_new", resultOK)
	c.logger.Infof("Add new post with ID: %v", post.ID)
	return post, nil
}

// Update sends the full post. If the remote call fails in any way, the
// original local draft is used as the settled payload so client-entered edits
// are never lost. A settled payload with no id is logged and skipped.
func (c *Controller) Update(ctx context.Context, post posts.Post) (posts.Post, error) {
	settled := post
	response, err := c.transport.Do(ctx, http.MethodPut, c.baseURL+"/"+post.ID, post)
	switch {
	case err != nil:
		c.logger.Infow("update falling back to local draft", "id", post.ID, "error", err.Error())
	case !response.OK():
		c.logger.Infow("update falling back to local draft",
			"id", post.ID, "status", response.Status)
	default:
		var rp remotePost
		if err := json.Unmarshal(response.Body, &rp); err == nil && rp.ID != "" {
			settled = posts.Post{
				ID:        string(rp.ID),
				Title:     rp.Title,
				Content:   rp.text(),
				UserID:    int(rp.UserID),
				Reactions: post.Reactions,
			}
		} else {
			settled = posts.Post{}
		}
	}

	if settled.ID == "" {
		c.metrics.observe("update", resultSkipped)
		c.logger.Infow("Update could not complete", "id", post.ID)
		return posts.Post{}, nil
	}
	settled.Date = c.now().UTC().Format(time.RFC3339)
	if settled.Reactions == nil {
		settled.Reactions = posts.NewReactions()
	}
	if err := c.store.Posts().UpsertOne(settled); err != nil {
		c.metrics.observe("update", resultFailed)
		return posts.Post{}, err
	}
	c.metrics.observe("update", resultOK)
	return settled, nil
}

// Delete removes the post remotely, then locally. Every failure shape becomes
// a diagnostic string and the collection is left untouched; the id stays in
// the collection until the remote confirms with a 200.
func (c *Controller) Delete(ctx context.Context, post posts.Post) string {
	response, err := c.transport.Do(ctx, http.MethodDelete, c.baseURL+"/"+post.ID, nil)
	if err != nil {
		c.metrics.observe("delete", resultSkipped)
		c.logger.Infow("Delete could not complete", "id", post.ID, "error", err.Error())
		return err.Error()
	}
	if response.Status != http.StatusOK {
		diagnostic := fmt.Sprintf("%d: %s", response.Status, response.StatusText)
		c.metrics.observe("delete", resultSkipped)
		c.logger.Infow("Delete could not complete", "id", post.ID, "response", diagnostic)
		return diagnostic
	}
	c.store.Posts().RemoveOne(post.ID)
	c.metrics.observe("delete", resultOK)
	c.logger.Infof("Delete post with ID: %v", post.ID)
	return ""
}
