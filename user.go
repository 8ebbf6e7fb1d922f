package wandbox

import (
	"context"
	"fmt"
	"net/http"
)

// GetUser reports the login state and GitHub username tied to a Wandbox
// session token. The token travels in the body of a GET request; that is
// the remote contract for this endpoint, odd as it reads.
func (c *Client) GetUser(ctx context.Context, session string) (*User, error) {
	if session == "" {
		return nil, fmt.Errorf("wandbox: session token must be set")
	}

	body := map[string]string{"session": session}

	var user User
	if err := c.doJSON(ctx, http.MethodGet, "url.json", body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
