package chef

import (
	"context"
	"net/http"
	"net/url"
)

// Roles lists all roles.
func (c *Client) Roles(ctx context.Context) (any, error) {
	return c.Do(ctx, http.MethodGet, "/roles", "", nil)
}

// Role returns one role by name.
func (c *Client) Role(ctx context.Context, name string) (any, error) {
	return c.Do(ctx, http.MethodGet, "/roles/"+url.PathEscape(name), "", nil)
}
