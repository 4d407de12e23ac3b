package session

import (
	"context"

	"github.com/jober-app/go-alimtalk-client/contacts"
	"github.com/jober-app/go-alimtalk-client/spaces"
	"github.com/jober-app/go-alimtalk-client/templates"
)

// Backend is the slice of the HTTP API the store calls. *api.Client satisfies
// it; tests substitute a fake. Pre-auth endpoints (login, duplicate checks,
// registration) are deliberately absent: the store never authenticates, it is
// handed an already-authenticated user.
type Backend interface {
	Logout(ctx context.Context) error
	DeleteAccount(ctx context.Context) error

	ListSpaces(ctx context.Context) ([]spaces.Space, error)
	RenameSpace(ctx context.Context, spaceID int, name string) error
	DeleteSpace(ctx context.Context, spaceID int) error
	AcceptInvite(ctx context.Context, spaceID int, email string) error

	ListTemplates(ctx context.Context, spaceID int) ([]templates.Template, error)
	SaveTemplate(ctx context.Context, payload templates.SavePayload) error
	DeleteTemplate(ctx context.Context, templateID int) error

	ListContacts(ctx context.Context, spaceID int) ([]contacts.Contact, error)
	AddContacts(ctx context.Context, payload contacts.AddPayload) error
	UpdateContact(ctx context.Context, spaceID int, contact contacts.Contact) error
	DeleteContacts(ctx context.Context, spaceID int, contactIDs []int) error
}
