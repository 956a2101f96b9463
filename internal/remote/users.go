package remote

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/vinayk98/mini-crm/internal/model"
)

// FindUser looks up the account matching the credentials. It returns
// model.ErrNotFound when the backend answers with an empty result.
func (c *Client) FindUser(ctx context.Context, email, password string) (*model.User, error) {
	q := url.Values{}
	q.Set("email", email)
	q.Set("password", password)

	var users []model.User
	if err := c.do(ctx, http.MethodGet, "/users?"+q.Encode(), nil, &users); err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("user %s: %w", email, model.ErrNotFound)
	}
	return &users[0], nil
}
