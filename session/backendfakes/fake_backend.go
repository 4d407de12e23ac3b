// Package backendfakes provides an in-memory session.Backend for tests.
package backendfakes

import (
	"context"
	"sync"

	"github.com/jober-app/go-alimtalk-client/contacts"
	"github.com/jober-app/go-alimtalk-client/session"
	"github.com/jober-app/go-alimtalk-client/spaces"
	"github.com/jober-app/go-alimtalk-client/templates"
)

var _ session.Backend = (*FakeBackend)(nil)

// FakeBackend serves canned data and records calls. Set an entry in Errs
// (keyed by method name) to make that method fail; set Hooks to intercept a
// call, e.g. to flip the current space while a fetch is in flight.
type FakeBackend struct {
	lock sync.Mutex

	Spaces           []spaces.Space
	TemplatesBySpace map[int][]templates.Template
	ContactsBySpace  map[int][]contacts.Contact

	Errs  map[string]error
	Hooks map[string]func()

	Calls []string
}

func NewFakeBackend() *FakeBackend {
	return &FakeBackend{
		TemplatesBySpace: make(map[int][]templates.Template),
		ContactsBySpace:  make(map[int][]contacts.Contact),
		Errs:             make(map[string]error),
		Hooks:            make(map[string]func()),
	}
}

// CallCount returns how many times method was invoked.
func (f *FakeBackend) CallCount(method string) int {
	f.lock.Lock()
	defer f.lock.Unlock()
	n := 0
	for _, c := range f.Calls {
		if c == method {
			n++
		}
	}
	return n
}

func (f *FakeBackend) enter(method string) (func(), error) {
	f.lock.Lock()
	f.Calls = append(f.Calls, method)
	hook := f.Hooks[method]
	err := f.Errs[method]
	f.lock.Unlock()

	if hook == nil {
		hook = func() {}
	}
	return hook, err
}

func (f *FakeBackend) Logout(ctx context.Context) error {
	hook, err := f.enter("Logout")
	hook()
	return err
}

func (f *FakeBackend) DeleteAccount(ctx context.Context) error {
	hook, err := f.enter("DeleteAccount")
	hook()
	return err
}

func (f *FakeBackend) ListSpaces(ctx context.Context) ([]spaces.Space, error) {
	hook, err := f.enter("ListSpaces")
	hook()
	if err != nil {
		return nil, err
	}
	f.lock.Lock()
	defer f.lock.Unlock()
	return append([]spaces.Space{}, f.Spaces...), nil
}

func (f *FakeBackend) RenameSpace(ctx context.Context, spaceID int, name string) error {
	hook, err := f.enter("RenameSpace")
	hook()
	if err != nil {
		return err
	}
	f.lock.Lock()
	defer f.lock.Unlock()
	for i := range f.Spaces {
		if f.Spaces[i].SpaceID == spaceID {
			f.Spaces[i].SpaceName = name
		}
	}
	return nil
}

func (f *FakeBackend) DeleteSpace(ctx context.Context, spaceID int) error {
	hook, err := f.enter("DeleteSpace")
	hook()
	if err != nil {
		return err
	}
	f.lock.Lock()
	defer f.lock.Unlock()
	kept := f.Spaces[:0]
	for _, s := range f.Spaces {
		if s.SpaceID != spaceID {
			kept = append(kept, s)
		}
	}
	f.Spaces = kept
	return nil
}

func (f *FakeBackend) AcceptInvite(ctx context.Context, spaceID int, email string) error {
	hook, err := f.enter("AcceptInvite")
	hook()
	return err
}

func (f *FakeBackend) ListTemplates(ctx context.Context, spaceID int) ([]templates.Template, error) {
	hook, err := f.enter("ListTemplates")
	hook()
	if err != nil {
		return nil, err
	}
	f.lock.Lock()
	defer f.lock.Unlock()
	return append([]templates.Template{}, f.TemplatesBySpace[spaceID]...), nil
}

func (f *FakeBackend) SaveTemplate(ctx context.Context, payload templates.SavePayload) error {
	hook, err := f.enter("SaveTemplate")
	hook()
	if err != nil {
		return err
	}
	f.lock.Lock()
	defer f.lock.Unlock()
	list := f.TemplatesBySpace[payload.SpaceID]
	f.TemplatesBySpace[payload.SpaceID] = append(list, templates.Template{
		ID:                    len(list) + 1,
		Title:                 payload.Title,
		ParameterizedTemplate: payload.ParameterizedTemplate,
	})
	return nil
}

func (f *FakeBackend) DeleteTemplate(ctx context.Context, templateID int) error {
	hook, err := f.enter("DeleteTemplate")
	hook()
	if err != nil {
		return err
	}
	f.lock.Lock()
	defer f.lock.Unlock()
	for spaceID, list := range f.TemplatesBySpace {
		kept := list[:0]
		for _, t := range list {
			if t.ID != templateID {
				kept = append(kept, t)
			}
		}
		f.TemplatesBySpace[spaceID] = kept
	}
	return nil
}

func (f *FakeBackend) ListContacts(ctx context.Context, spaceID int) ([]contacts.Contact, error) {
	hook, err := f.enter("ListContacts")
	hook()
	if err != nil {
		return nil, err
	}
	f.lock.Lock()
	defer f.lock.Unlock()
	return append([]contacts.Contact{}, f.ContactsBySpace[spaceID]...), nil
}

func (f *FakeBackend) AddContacts(ctx context.Context, payload contacts.AddPayload) error {
	hook, err := f.enter("AddContacts")
	hook()
	if err != nil {
		return err
	}
	f.lock.Lock()
	defer f.lock.Unlock()
	list := f.ContactsBySpace[payload.SpaceID]
	for _, c := range payload.Contacts {
		c.ID = len(list) + 1
		list = append(list, c)
	}
	f.ContactsBySpace[payload.SpaceID] = list
	return nil
}

func (f *FakeBackend) UpdateContact(ctx context.Context, spaceID int, contact contacts.Contact) error {
	hook, err := f.enter("UpdateContact")
	hook()
	if err != nil {
		return err
	}
	f.lock.Lock()
	defer f.lock.Unlock()
	list := f.ContactsBySpace[spaceID]
	for i := range list {
		if list[i].ID == contact.ID {
			list[i] = contact
		}
	}
	return nil
}

func (f *FakeBackend) DeleteContacts(ctx context.Context, spaceID int, contactIDs []int) error {
	hook, err := f.enter("DeleteContacts")
	hook()
	if err != nil {
		return err
	}
	f.lock.Lock()
	defer f.lock.Unlock()
	doomed := make(map[int]struct{}, len(contactIDs))
	for _, id := range contactIDs {
		doomed[id] = struct{}{}
	}
	list := f.ContactsBySpace[spaceID]
	kept := list[:0]
	for _, c := range list {
		if _, ok := doomed[c.ID]; !ok {
			kept = append(kept, c)
		}
	}
	f.ContactsBySpace[spaceID] = kept
	return nil
}
