// Package board derives the retro board's view state from a flat card list:
// the three fixed column partitions, the show-deleted filter, and the pure
// vote-toggle transformation committed back through the API as a whole voter
// set.
package board

import (
	"strings"

	"github.com/retroterm/retroterm/internal/api"
)

// Column describes one of the three fixed board columns.
type Column struct {
	Type  api.CardType
	Title string
}

// Columns returns the board's columns in display order. The set is fixed;
// card types outside it never render.
func Columns() []Column {
	return []Column{
		{Type: api.CardWentWell, Title: "Went Well"},
		{Type: api.CardNeedsImprovement, Title: "Needs Improvement"},
		{Type: api.CardKudos, Title: "Kudos"},
	}
}

// Partition splits cards into the three columns, preserving arrival order
// within each. Soft-deleted cards are dropped unless showDeleted is set.
// Each surviving card lands in exactly one partition.
func Partition(cards []api.Card, showDeleted bool) map[api.CardType][]api.Card {
	out := map[api.CardType][]api.Card{
		api.CardWentWell:         nil,
		api.CardNeedsImprovement: nil,
		api.CardKudos:            nil,
	}
	for _, card := range cards {
		if card.IsDeleted && !showDeleted {
			continue
		}
		if _, ok := out[card.Type]; !ok {
			continue
		}
		out[card.Type] = append(out[card.Type], card)
	}
	return out
}

// HasVoted reports whether userID is in the card's voter set.
func HasVoted(card api.Card, userID string) bool {
	if userID == "" {
		return false
	}
	for _, id := range card.Votes {
		if id == userID {
			return true
		}
	}
	return false
}

// ToggleVote returns votes with userID removed if present, appended if not.
// This is a parity toggle, not an idempotent set operation: applying it twice
// round-trips back to the original membership. The result never holds
// duplicates and the input slice is left untouched. An empty userID returns
// the input membership unchanged; the caller must also skip the remote update
// in that case.
func ToggleVote(votes []string, userID string) []string {
	if userID == "" {
		out := make([]string, len(votes))
		copy(out, votes)
		return out
	}
	out := make([]string, 0, len(votes)+1)
	found := false
	for _, id := range votes {
		if id == userID {
			found = true
			continue
		}
		out = append(out, id)
	}
	if !found {
		out = append(out, userID)
	}
	return out
}

// ConvertToActionItem builds the creation payload for turning a feedback card
// into tracked work. Title defaults to the card content; status is left to
// the backend default (open).
func ConvertToActionItem(card api.Card, title string, priority api.ActionItemPriority) api.CreateActionItemData {
	if strings.TrimSpace(title) == "" {
		title = card.Content
	}
	if priority == "" {
		priority = api.PriorityMedium
	}
	return api.CreateActionItemData{
		Title:    title,
		RetroID:  card.RetroID,
		Priority: priority,
	}
}
