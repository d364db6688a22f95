package remote

import (
	"strconv"
	"strings"
)

// flexID reads a JSON id that may arrive as a number or a string.
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	trimmed := strings.Trim(string(data), `"`)
	if trimmed == "null" {
		*f = ""
		return nil
	}
	*f = flexID(trimmed)
	return nil
}

// flexInt coerces a JSON number-or-string into an int, the way form input
// arrives as "2" while the remote echoes 2.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	trimmed := strings.Trim(string(data), `"`)
	if trimmed == "" || trimmed == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return err
	}
	*f = flexInt(n)
	return nil
}

// remotePost is the wire shape of a post as the resource returns it. The
// jsonplaceholder-style resource calls the text field "body"; locally created
// posts call it "content".
type remotePost struct {
	ID      flexID  `json:"id"`
	Title   string  `json:"title"`
	Content string  `json:"content"`
	Body    string  `json:"body"`
	UserID  flexInt `json:"userId"`
}

func (rp remotePost) text() string {
	if rp.Content != "" {
		return rp.Content
	}
	return rp.Body
}
