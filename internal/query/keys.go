package query

import (
	"strings"

	"github.com/retroterm/retroterm/internal/api"
)

// Key helpers build the cache keys for each remote collection. Keys nest so
// that invalidating a parent prefix takes filtered variants with it; the team
// list itself sits outside the teams/<id> namespace so invalidating it never
// sweeps team-scoped entries:
//
//	teams?list
//	teams/<id>
//	teams/<id>/members
//	teams/<id>/retros[?...]
//	teams/<id>/action-items[?...]
//	retros/<id>
//	retros/<id>/cards

// KeyTeams addresses the current user's team list.
func KeyTeams() string { return "teams?list" }

// KeyTeam addresses one team.
func KeyTeam(teamID string) string { return "teams/" + teamID }

// KeyTeamMembers addresses a team's membership list.
func KeyTeamMembers(teamID string) string { return "teams/" + teamID + "/members" }

// KeyRetros addresses a team's retro listing under the given filters.
func KeyRetros(teamID string, filters api.RetroFilters) string {
	key := "teams/" + teamID + "/retros"
	parts := filterParts(
		"search", filters.Search,
		"start", filters.StartDate,
		"end", filters.EndDate,
	)
	if parts != "" {
		key += "?" + parts
	}
	return key
}

// KeyRetrosPrefix addresses every cached retro listing for a team.
func KeyRetrosPrefix(teamID string) string { return "teams/" + teamID + "/retros" }

// KeyRetro addresses one retrospective.
func KeyRetro(retroID string) string { return "retros/" + retroID }

// KeyCards addresses the full card list of one retro board.
func KeyCards(retroID string) string { return "retros/" + retroID + "/cards" }

// KeyActionItems addresses a team's action-item listing under the given
// filters.
func KeyActionItems(teamID string, filters api.ActionItemFilters) string {
	key := "teams/" + teamID + "/action-items"
	parts := filterParts(
		"status", string(filters.Status),
		"retro", filters.RetroID,
		"search", filters.Search,
	)
	if parts != "" {
		key += "?" + parts
	}
	return key
}

// KeyActionItemsPrefix addresses every cached action-item listing for a team.
func KeyActionItemsPrefix(teamID string) string { return "teams/" + teamID + "/action-items" }

// filterParts renders name/value pairs in a fixed order so equal filter sets
// always produce equal keys.
func filterParts(pairs ...string) string {
	var parts []string
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] != "" {
			parts = append(parts, pairs[i]+"="+pairs[i+1])
		}
	}
	return strings.Join(parts, "&")
}
