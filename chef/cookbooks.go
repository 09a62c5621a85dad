package chef

import (
	"context"
	"net/http"
	"net/url"
)

// Cookbooks lists all cookbooks.
func (c *Client) Cookbooks(ctx context.Context) (any, error) {
	return c.Do(ctx, http.MethodGet, "/cookbooks", "", nil)
}

// Cookbook returns one cookbook by name.
func (c *Client) Cookbook(ctx context.Context, name string) (any, error) {
	return c.Do(ctx, http.MethodGet, "/cookbooks/"+url.PathEscape(name), "", nil)
}
