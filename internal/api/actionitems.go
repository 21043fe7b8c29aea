package api

import (
	"context"
	"net/http"
	"net/url"
)

// ActionItems lists a team's action items, optionally filtered by status,
// originating retro, or free-text search.
func (c *Client) ActionItems(ctx context.Context, teamID string, filters ActionItemFilters) ([]ActionItem, error) {
	params := url.Values{}
	if filters.Status != "" {
		params.Set("status", string(filters.Status))
	}
	if filters.RetroID != "" {
		params.Set("retroId", filters.RetroID)
	}
	if filters.Search != "" {
		params.Set("search", filters.Search)
	}
	path := "/teams/" + url.PathEscape(teamID) + "/action-items"
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}
	var out []ActionItem
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

// ActionItem fetches one action item by id.
func (c *Client) ActionItem(ctx context.Context, itemID string) (ActionItem, error) {
	var out ActionItem
	err := c.do(ctx, http.MethodGet, "/action-items/"+url.PathEscape(itemID), nil, &out)
	return out, err
}

// CreateActionItem creates an action item for a team.
func (c *Client) CreateActionItem(ctx context.Context, teamID string, data CreateActionItemData) (ActionItem, error) {
	var out ActionItem
	err := c.do(ctx, http.MethodPost, "/teams/"+url.PathEscape(teamID)+"/action-items", data, &out)
	return out, err
}

// UpdateActionItem applies a partial edit to an action item.
func (c *Client) UpdateActionItem(ctx context.Context, itemID string, data UpdateActionItemData) (ActionItem, error) {
	var out ActionItem
	err := c.do(ctx, http.MethodPut, "/action-items/"+url.PathEscape(itemID), data, &out)
	return out, err
}

// DeleteActionItem removes an action item.
func (c *Client) DeleteActionItem(ctx context.Context, itemID string) error {
	return c.do(ctx, http.MethodDelete, "/action-items/"+url.PathEscape(itemID), nil, nil)
}
