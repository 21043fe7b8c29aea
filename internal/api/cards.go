package api

import (
	"context"
	"net/http"
	"net/url"
)

// Cards lists every card on a retro board, soft-deleted ones included.
func (c *Client) Cards(ctx context.Context, retroID string) ([]Card, error) {
	var out []Card
	err := c.do(ctx, http.MethodGet, "/retros/"+url.PathEscape(retroID)+"/cards", nil, &out)
	return out, err
}

// CreateCard adds a card to a retro board.
func (c *Client) CreateCard(ctx context.Context, retroID string, data CreateCardData) (Card, error) {
	var out Card
	err := c.do(ctx, http.MethodPost, "/retros/"+url.PathEscape(retroID)+"/cards", data, &out)
	return out, err
}

// UpdateCard updates a card's content and/or replaces its whole voter set.
func (c *Client) UpdateCard(ctx context.Context, cardID string, data UpdateCardData) (Card, error) {
	var out Card
	err := c.do(ctx, http.MethodPut, "/cards/"+url.PathEscape(cardID), data, &out)
	return out, err
}

// DeleteCard soft-deletes a card. The card stays in list responses with its
// deleted flag set; nothing is purged.
func (c *Client) DeleteCard(ctx context.Context, cardID string) error {
	return c.do(ctx, http.MethodDelete, "/cards/"+url.PathEscape(cardID), nil, nil)
}
