package api

import (
	"context"
	"net/http"
	"net/url"
)

// Teams lists every team the current user belongs to.
func (c *Client) Teams(ctx context.Context) ([]Team, error) {
	var out []Team
	err := c.do(ctx, http.MethodGet, "/teams", nil, &out)
	return out, err
}

// Team fetches one team by id.
func (c *Client) Team(ctx context.Context, teamID string) (Team, error) {
	var out Team
	err := c.do(ctx, http.MethodGet, "/teams/"+url.PathEscape(teamID), nil, &out)
	return out, err
}

// CreateTeam creates a team owned by the current user.
func (c *Client) CreateTeam(ctx context.Context, data CreateTeamData) (Team, error) {
	var out Team
	err := c.do(ctx, http.MethodPost, "/teams", data, &out)
	return out, err
}

// TeamMembers lists a team's membership.
func (c *Client) TeamMembers(ctx context.Context, teamID string) ([]TeamMember, error) {
	var out []TeamMember
	err := c.do(ctx, http.MethodGet, "/teams/"+url.PathEscape(teamID)+"/members", nil, &out)
	return out, err
}

// InviteMember adds a member to a team by email.
func (c *Client) InviteMember(ctx context.Context, teamID string, data InviteMemberData) (TeamMember, error) {
	var out TeamMember
	err := c.do(ctx, http.MethodPost, "/teams/"+url.PathEscape(teamID)+"/invite", data, &out)
	return out, err
}

// RemoveMember removes a member from a team.
func (c *Client) RemoveMember(ctx context.Context, teamID, memberID string) error {
	return c.do(ctx, http.MethodDelete, "/teams/"+url.PathEscape(teamID)+"/members/"+url.PathEscape(memberID), nil, nil)
}
