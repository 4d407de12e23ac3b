package session

import (
	"context"
	"errors"

	"github.com/jober-app/go-alimtalk-client/api"
	"github.com/jober-app/go-alimtalk-client/contacts"
)

// FetchContacts loads the current space's contacts and recomputes the
// derived tag state. The active tag filter survives the refetch; the
// selection does not. A response that arrives after the current space
// changed identity is discarded.
func (s *Store) FetchContacts(ctx context.Context) error {
	s.lock.Lock()
	if s.state.CurrentSpace == nil {
		s.state.Contacts = []contacts.Contact{}
		s.state.FilteredContacts = []contacts.Contact{}
		s.state.AllTags = []string{}
		s.lock.Unlock()
		return nil
	}
	spaceID := s.state.CurrentSpace.SpaceID
	s.lock.Unlock()

	list, err := s.backend.ListContacts(ctx, spaceID)

	s.lock.Lock()
	defer s.lock.Unlock()

	if s.state.CurrentSpace == nil || s.state.CurrentSpace.SpaceID != spaceID {
		s.logger.Debug().Int("spaceId", spaceID).Msg("discarding stale contact response")
		return nil
	}

	if err != nil {
		if errors.Is(err, api.ErrSessionExpired) {
			return err
		}
		s.logger.Error().Err(err).Int("spaceId", spaceID).Msg("failed to fetch contacts")
		s.state.Contacts = []contacts.Contact{}
		s.state.FilteredContacts = []contacts.Contact{}
		s.state.AllTags = []string{}
		return nil
	}

	s.state.Contacts = list
	s.state.AllTags = contacts.UniqueTags(list)
	s.state.FilteredContacts = contacts.FilterByTags(list, s.state.SelectedTags)
	s.state.SelectedContactIDs = []int{}
	return nil
}

// currentSpaceID returns the active space id, or ErrNoActiveSpace.
func (s *Store) currentSpaceID() (int, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.state.CurrentSpace == nil {
		return 0, ErrNoActiveSpace
	}
	return s.state.CurrentSpace.SpaceID, nil
}

// refetchContactsAfterMutation re-pulls the full contact list. Consistency
// over latency: there is no optimistic local patch. Refetch failures are
// handled inside FetchContacts and never mask the mutation's success.
func (s *Store) refetchContactsAfterMutation(ctx context.Context) {
	if err := s.FetchContacts(ctx); err != nil {
		s.logger.Error().Err(err).Msg("contact refetch after mutation failed")
	}
}

// AddContacts bulk-creates contacts in the current space, refetches, and
// notifies. The underlying error is returned after notifying so a caller
// awaiting the action can run its own failure branch.
func (s *Store) AddContacts(ctx context.Context, payload contacts.AddPayload) error {
	spaceID, err := s.currentSpaceID()
	if err != nil {
		return err
	}
	payload.SpaceID = spaceID

	if err := s.backend.AddContacts(ctx, payload); err != nil {
		return s.notifyErr("Failed to add contacts.", err)
	}
	s.refetchContactsAfterMutation(ctx)
	s.ShowSnackbar("Contacts added.", SeveritySuccess)
	return nil
}

// UpdateContact replaces one contact in the current space, refetches, and
// notifies.
func (s *Store) UpdateContact(ctx context.Context, contact contacts.Contact) error {
	spaceID, err := s.currentSpaceID()
	if err != nil {
		return err
	}

	if err := s.backend.UpdateContact(ctx, spaceID, contact); err != nil {
		return s.notifyErr("Failed to update the contact.", err)
	}
	s.refetchContactsAfterMutation(ctx)
	s.ShowSnackbar("Contact updated.", SeveritySuccess)
	return nil
}

// DeleteContact removes one contact from the current space, refetches, and
// notifies.
func (s *Store) DeleteContact(ctx context.Context, contactID int) error {
	spaceID, err := s.currentSpaceID()
	if err != nil {
		return err
	}

	if err := s.backend.DeleteContacts(ctx, spaceID, []int{contactID}); err != nil {
		return s.notifyErr("Failed to delete the contact.", err)
	}
	s.refetchContactsAfterMutation(ctx)
	s.ShowSnackbar("Contact deleted.", SeveritySuccess)
	return nil
}

// DeleteSelectedContacts removes every selected contact. A no-op without an
// active space or with an empty selection.
func (s *Store) DeleteSelectedContacts(ctx context.Context) error {
	s.lock.Lock()
	if s.state.CurrentSpace == nil || len(s.state.SelectedContactIDs) == 0 {
		s.lock.Unlock()
		return nil
	}
	spaceID := s.state.CurrentSpace.SpaceID
	ids := append([]int{}, s.state.SelectedContactIDs...)
	s.lock.Unlock()

	if err := s.backend.DeleteContacts(ctx, spaceID, ids); err != nil {
		return s.notifyErr("Failed to delete the selected contacts.", err)
	}
	s.refetchContactsAfterMutation(ctx)
	s.ShowSnackbar("Selected contacts deleted.", SeveritySuccess)
	return nil
}

// ToggleTagFilter adds or removes tag from the filter and recomputes the
// filtered view. Pure derivation over already-loaded contacts; never touches
// the network. The selection resets: it does not survive a filter change.
func (s *Store) ToggleTagFilter(tag string) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.state.SelectedTags = contacts.ToggleTag(s.state.SelectedTags, tag)
	s.state.FilteredContacts = contacts.FilterByTags(s.state.Contacts, s.state.SelectedTags)
	s.state.SelectedContactIDs = []int{}
}

// ClearTagFilter empties the filter and restores the full contact list.
func (s *Store) ClearTagFilter() {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.state.SelectedTags = []string{}
	s.state.FilteredContacts = contacts.FilterByTags(s.state.Contacts, nil)
	s.state.SelectedContactIDs = []int{}
}

// ToggleContactSelection adds or removes one contact id from the selection.
func (s *Store) ToggleContactSelection(contactID int) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.state.SelectedContactIDs = contacts.ToggleID(s.state.SelectedContactIDs, contactID)
}

// ToggleAllContactsSelection selects every visible contact, or clears the
// selection when it already covers the visible set.
func (s *Store) ToggleAllContactsSelection() {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.state.SelectedContactIDs = contacts.ToggleAll(s.state.FilteredContacts, s.state.SelectedContactIDs)
}
