package posts

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPost(id string, date string) Post {
	return Post{
		ID:        id,
		Title:     "title " + id,
		Content:   "content " + id,
		UserID:    1,
		Date:      date,
		Reactions: NewReactions(),
	}
}

func TestUpsertOneInsertsAndReplaces(t *testing.T) {
	c := NewCollection()
	require.NoError(t, c.UpsertOne(testPost("a", "2024-05-01T10:00:00Z")))
	require.Equal(t, 1, c.Len())

	changed := testPost("a", "2024-05-01T10:00:00Z")
	changed.Title = "edited"
	require.NoError(t, c.UpsertOne(changed))
	require.Equal(t, 1, c.Len())

	got, err := c.ByID("a")
	require.NoError(t, err)
	assert.Equal(t, "edited", got.Title)
}

func TestUpsertOneRejectsMissingID(t *testing.T) {
	c := NewCollection()
	assert.ErrorIs(t, c.UpsertOne(Post{Title: "no id"}), ErrNoID)
	assert.Equal(t, 0, c.Len())
}

func TestAddOneDoesNotOverwrite(t *testing.T) {
	c := NewCollection()
	original := testPost("a", "2024-05-01T10:00:00Z")
	require.NoError(t, c.AddOne(original))

	conflicting := testPost("a", "2024-05-02T10:00:00Z")
	conflicting.Title = "overwritten"
	assert.ErrorIs(t, c.AddOne(conflicting), ErrRecordExists)

	got, err := c.ByID("a")
	require.NoError(t, err)
	assert.Equal(t, original.Title, got.Title)
	assert.Equal(t, original.Date, got.Date)
}

func TestRemoveOne(t *testing.T) {
	c := NewCollection()
	require.NoError(t, c.AddOne(testPost("a", "2024-05-01T10:00:00Z")))
	require.NoError(t, c.AddOne(testPost("b", "2024-05-02T10:00:00Z")))

	c.RemoveOne("a")
	assert.Equal(t, []string{"b"}, c.IDs())
	_, err := c.ByID("a")
	assert.ErrorIs(t, err, ErrRecordNotFound)

	// absent id is a no-op
	before := c.Version()
	c.RemoveOne("a")
	assert.Equal(t, before, c.Version())
	assert.Equal(t, 1, c.Len())
}

func TestAllSortedByDateDescending(t *testing.T) {
	c := NewCollection()
	require.NoError(t, c.UpsertMany([]Post{
		testPost("old", "2024-05-01T10:00:00Z"),
		testPost("newest", "2024-05-03T10:00:00Z"),
		testPost("middle", "2024-05-02T10:00:00Z"),
	}))

	all := c.All()
	require.Len(t, all, 3)
	assert.Equal(t, "newest", all[0].ID)
	assert.Equal(t, "middle", all[1].ID)
	assert.Equal(t, "old", all[2].ID)
	assert.Equal(t, []string{"newest", "middle", "old"}, c.IDs())
}

func TestUpsertManyIsAllOrNothing(t *testing.T) {
	c := NewCollection()
	require.NoError(t, c.AddOne(testPost("a", "2024-05-01T10:00:00Z")))

	err := c.UpsertMany([]Post{
		testPost("b", "2024-05-02T10:00:00Z"),
		{Title: "no id"},
	})
	require.Error(t, err)
	assert.Equal(t, []string{"a"}, c.IDs())
}

func TestIDsAlwaysMatchEntities(t *testing.T) {
	c := NewCollection()
	for i := 0; i < 20; i++ {
		id := fmt.Sprintf("p%d", i%7)
		require.NoError(t, c.UpsertOne(testPost(id, fmt.Sprintf("2024-05-%02dT10:00:00Z", i%7+1))))
		if i%3 == 0 {
			c.RemoveOne(fmt.Sprintf("p%d", (i+1)%7))
		}

		ids := c.IDs()
		seen := map[string]bool{}
		for _, id := range ids {
			require.False(t, seen[id], "duplicate id %s", id)
			seen[id] = true
			_, err := c.ByID(id)
			require.NoError(t, err)
		}
		require.Equal(t, len(ids), c.Len())
	}
}

func TestReturnedPostsDoNotAliasCollectionState(t *testing.T) {
	c := NewCollection()
	require.NoError(t, c.AddOne(testPost("a", "2024-05-01T10:00:00Z")))

	got, err := c.ByID("a")
	require.NoError(t, err)
	got.Reactions[ReactionHeart] = 42

	again, err := c.ByID("a")
	require.NoError(t, err)
	assert.Equal(t, 0, again.Reactions[ReactionHeart])
}
