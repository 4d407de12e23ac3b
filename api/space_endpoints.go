package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/jober-app/go-alimtalk-client/spaces"
)

// ListSpaces returns the spaces the session's user belongs to. Color is not
// server-sourced; the store derives it.
func (c *Client) ListSpaces(ctx context.Context) ([]spaces.Space, error) {
	var list []spaces.Space
	if err := c.do(ctx, http.MethodGet, RouteSpacesList, RouteSpacesList, nil, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// RenameSpace changes a space's display name.
func (c *Client) RenameSpace(ctx context.Context, spaceID int, name string) error {
	path := fmt.Sprintf("%s/%d", RouteSpaces, spaceID)
	body := map[string]string{"spaceName": name}
	return c.do(ctx, http.MethodPatch, RouteSpaces, path, nil, body, nil)
}

// DeleteSpace removes a space and everything scoped to it.
func (c *Client) DeleteSpace(ctx context.Context, spaceID int) error {
	path := fmt.Sprintf("%s/%d", RouteSpaces, spaceID)
	return c.do(ctx, http.MethodDelete, RouteSpaces, path, nil, nil, nil)
}

// AcceptInvite accepts a membership invitation addressed to email.
func (c *Client) AcceptInvite(ctx context.Context, spaceID int, email string) error {
	path := fmt.Sprintf("%s/%d/accept", RouteSpaceMembers, spaceID)
	query := url.Values{"email": []string{email}}
	return c.do(ctx, http.MethodGet, RouteSpaceMembers, path, query, nil, nil)
}
