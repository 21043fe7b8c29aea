package api

import (
	"context"
	"net/http"
	"net/url"
)

// Retros lists a team's retrospectives, newest first, optionally filtered.
func (c *Client) Retros(ctx context.Context, teamID string, filters RetroFilters) ([]Retrospective, PageInfo, error) {
	params := url.Values{}
	if filters.Search != "" {
		params.Set("search", filters.Search)
	}
	if filters.StartDate != "" {
		params.Set("startDate", filters.StartDate)
	}
	if filters.EndDate != "" {
		params.Set("endDate", filters.EndDate)
	}
	path := "/teams/" + url.PathEscape(teamID) + "/retros"
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}
	var out []Retrospective
	info, err := c.doPaginated(ctx, http.MethodGet, path, nil, &out)
	return out, info, err
}

// Retro fetches one retrospective by id.
func (c *Client) Retro(ctx context.Context, retroID string) (Retrospective, error) {
	var out Retrospective
	err := c.do(ctx, http.MethodGet, "/retros/"+url.PathEscape(retroID), nil, &out)
	return out, err
}

// CreateRetro creates a retrospective for a team.
func (c *Client) CreateRetro(ctx context.Context, teamID string, data CreateRetroData) (Retrospective, error) {
	var out Retrospective
	err := c.do(ctx, http.MethodPost, "/teams/"+url.PathEscape(teamID)+"/retros", data, &out)
	return out, err
}

// DeleteRetro removes a retrospective.
func (c *Client) DeleteRetro(ctx context.Context, retroID string) error {
	return c.do(ctx, http.MethodDelete, "/retros/"+url.PathEscape(retroID), nil, nil)
}
