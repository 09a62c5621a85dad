package chef

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// DataBags lists all data bags.
func (c *Client) DataBags(ctx context.Context) (any, error) {
	return c.Do(ctx, http.MethodGet, "/data", "", nil)
}

// DataBagItems lists the items in one data bag.
func (c *Client) DataBagItems(ctx context.Context, bag string) (any, error) {
	return c.Do(ctx, http.MethodGet, "/data/"+url.PathEscape(bag), "", nil)
}

// DataBagItem returns one data bag item.
func (c *Client) DataBagItem(ctx context.Context, bag, id string) (any, error) {
	return c.Do(ctx, http.MethodGet, dataBagItemPath(bag, id), "", nil)
}

// CreateDataBagItem creates an item in a data bag. The item must carry an
// "id" field; the server enforces this, not the client.
func (c *Client) CreateDataBagItem(ctx context.Context, bag string, item any) (any, error) {
	body, err := json.Marshal(item)
	if err != nil {
		return nil, fmt.Errorf("chef: encode data bag item: %w", err)
	}

	return c.Do(ctx, http.MethodPost, "/data/"+url.PathEscape(bag), "", body)
}

// UpdateDataBagItem replaces one data bag item.
func (c *Client) UpdateDataBagItem(ctx context.Context, bag, id string, item any) (any, error) {
	body, err := json.Marshal(item)
	if err != nil {
		return nil, fmt.Errorf("chef: encode data bag item: %w", err)
	}

	return c.Do(ctx, http.MethodPut, dataBagItemPath(bag, id), "", body)
}

// DeleteDataBagItem deletes one data bag item. The server echoes the
// deleted item back.
func (c *Client) DeleteDataBagItem(ctx context.Context, bag, id string) (any, error) {
	return c.Do(ctx, http.MethodDelete, dataBagItemPath(bag, id), "", nil)
}

func dataBagItemPath(bag, id string) string {
	return "/data/" + url.PathEscape(bag) + "/" + url.PathEscape(id)
}
