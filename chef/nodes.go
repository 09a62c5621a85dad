package chef

import (
	"context"
	"net/http"
	"net/url"
)

// Nodes lists all registered nodes.
func (c *Client) Nodes(ctx context.Context) (any, error) {
	return c.Do(ctx, http.MethodGet, "/nodes", "", nil)
}

// Node returns one node by name.
func (c *Client) Node(ctx context.Context, name string) (any, error) {
	return c.Do(ctx, http.MethodGet, "/nodes/"+url.PathEscape(name), "", nil)
}

// NodeRunList returns the expanded run list for one node.
func (c *Client) NodeRunList(ctx context.Context, name string) (any, error) {
	return c.Do(ctx, http.MethodGet, "/nodes/"+url.PathEscape(name)+"/cookbooks", "", nil)
}
