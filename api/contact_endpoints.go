package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jober-app/go-alimtalk-client/contacts"
)

// ListContacts returns the contacts of one space.
func (c *Client) ListContacts(ctx context.Context, spaceID int) ([]contacts.Contact, error) {
	path := fmt.Sprintf("%s/%d", RouteSpaceContact, spaceID)
	var list []contacts.Contact
	if err := c.do(ctx, http.MethodGet, RouteSpaceContact, path, nil, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// AddContacts bulk-creates contacts in a space.
func (c *Client) AddContacts(ctx context.Context, payload contacts.AddPayload) error {
	return c.do(ctx, http.MethodPost, RouteSpaceContact, RouteSpaceContact, nil, payload, nil)
}

type updateContactBody struct {
	SpaceID int              `json:"spaceId"`
	Contact contacts.Contact `json:"contact"`
}

// UpdateContact replaces one contact's fields.
func (c *Client) UpdateContact(ctx context.Context, spaceID int, contact contacts.Contact) error {
	body := updateContactBody{SpaceID: spaceID, Contact: contact}
	return c.do(ctx, http.MethodPut, RouteSpaceContact, RouteSpaceContact, nil, body, nil)
}

type deleteContactsBody struct {
	SpaceID    int   `json:"spaceId"`
	ContactIDs []int `json:"contactIds"`
}

// DeleteContacts removes one or more contacts from a space.
func (c *Client) DeleteContacts(ctx context.Context, spaceID int, contactIDs []int) error {
	body := deleteContactsBody{SpaceID: spaceID, ContactIDs: contactIDs}
	return c.do(ctx, http.MethodDelete, RouteSpaceContact, RouteSpaceContact, nil, body, nil)
}
