package posts

import (
	"errors"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/hashicorp/go-uuid"
	"go.uber.org/multierr"
)

var (
	ErrEmptyTitle   = errors.New("Post title is empty")
	ErrEmptyContent = errors.New("Post content is empty")
	ErrBadUserID    = errors.New("UserID must be non-negative")
)

type Reaction string

const (
	ReactionThumbsUp Reaction = "thumbsUp"
	ReactionWow      Reaction = "wow"
	ReactionHeart    Reaction = "heart"
	ReactionRocket   Reaction = "rocket"
	ReactionCoffee   Reaction = "coffee"
)

var ReactionKinds = []Reaction{
	ReactionThumbsUp,
	ReactionWow,
	ReactionHeart,
	ReactionRocket,
	ReactionCoffee,
}

func (r Reaction) Known() bool {
	for _, kind := range ReactionKinds {
		if r == kind {
			return true
		}
	}
	return false
}

type Reactions map[Reaction]int

// NewReactions returns all known reaction counters at zero.
func NewReactions() Reactions {
	counters := make(Reactions, len(ReactionKinds))
	for _, kind := range ReactionKinds {
		counters[kind] = 0
	}
	return counters
}

func (rs Reactions) clone() Reactions {
	if rs == nil {
		return nil
	}
	counters := make(Reactions, len(rs))
	for kind, count := range rs {
		counters[kind] = count
	}
	return counters
}

type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	UserID    int       `json:"userId"`
	Date      string    `json:"date"`
	Reactions Reactions `json:"reactions"`
}

func (p Post) clone() Post {
	p.Reactions = p.Reactions.clone()
	return p
}

// New builds a fully-formed local post: fresh id, date stamped at the given
// moment, all reaction counters at zero.
func New(title, content string, userID int, at time.Time) (Post, error) {
	if err := ValidateDraft(title, content, userID); err != nil {
		return Post{}, err
	}
	id, err := uuid.GenerateUUID()
	if err != nil {
		return Post{}, err
	}
	return Post{
		ID:        id,
		Title:     title,
		Content:   content,
		UserID:    userID,
		Date:      at.UTC().Format(time.RFC3339),
		Reactions: NewReactions(),
	}, nil
}

func ValidateDraft(title, content string, userID int) error {
	var err error
	if govalidator.IsNull(strings.TrimSpace(title)) {
		err = multierr.Append(err, ErrEmptyTitle)
	}
	if govalidator.IsNull(strings.TrimSpace(content)) {
		err = multierr.Append(err, ErrEmptyContent)
	}
	if userID < 0 {
		err = multierr.Append(err, ErrBadUserID)
	}
	return err
}
