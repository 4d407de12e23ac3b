package session_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jober-app/go-alimtalk-client/contacts"
	"github.com/jober-app/go-alimtalk-client/session"
	"github.com/jober-app/go-alimtalk-client/spaces"
	"github.com/stretchr/testify/require"
)

// contactFixture boots a logged-in store with one space and three contacts.
func contactFixture(t *testing.T) *testFixture {
	t.Helper()
	f := setupTestFixture(t)
	f.loginWithSpaces(t, spaces.Space{SpaceID: 1, SpaceName: "Alpha"})
	f.backend.ContactsBySpace[1] = []contacts.Contact{
		{ID: 1, Name: "Kim", PhoneNumber: "010-1111-1111", Tag: "vip"},
		{ID: 2, Name: "Lee", PhoneNumber: "010-2222-2222", Tag: "staff"},
		{ID: 3, Name: "Park", PhoneNumber: "010-3333-3333", Tag: "vip"},
	}
	require.NoError(t, f.store.FetchContacts(context.Background()))
	return f
}

func TestFetchContactsDerivesTagState(t *testing.T) {
	f := contactFixture(t)

	state := f.store.State()
	require.Len(t, state.Contacts, 3)
	require.Equal(t, []string{"staff", "vip"}, state.AllTags)
	require.Len(t, state.FilteredContacts, 3, "empty filter shows everything")
	require.Empty(t, state.SelectedContactIDs)
}

func TestFetchContactsWithoutSpaceEmptiesDerivedState(t *testing.T) {
	f := setupTestFixture(t)
	f.store.Login(session.User{UserID: testUserID, Username: testUsername})

	require.NoError(t, f.store.FetchContacts(context.Background()))
	require.Zero(t, f.backend.CallCount("ListContacts"))

	state := f.store.State()
	require.Empty(t, state.Contacts)
	require.Empty(t, state.FilteredContacts)
	require.Empty(t, state.AllTags)
}

func TestFetchContactsFilterSurvivesRefetch(t *testing.T) {
	f := contactFixture(t)
	f.store.ToggleTagFilter("vip")

	require.NoError(t, f.store.FetchContacts(context.Background()))

	state := f.store.State()
	require.Equal(t, []string{"vip"}, state.SelectedTags)
	require.Len(t, state.FilteredContacts, 2)
}

func TestFetchContactsFailureEmptiesDerivedFields(t *testing.T) {
	f := contactFixture(t)
	f.backend.Errs["ListContacts"] = errors.New("boom")

	require.NoError(t, f.store.FetchContacts(context.Background()), "fetch failures are logged, not surfaced")

	state := f.store.State()
	require.Empty(t, state.Contacts)
	require.Empty(t, state.FilteredContacts)
	require.Empty(t, state.AllTags)
}

func TestToggleTagFilterRoundTrip(t *testing.T) {
	f := contactFixture(t)
	before := f.store.State()

	f.store.ToggleTagFilter("vip")
	f.store.ToggleTagFilter("vip")

	after := f.store.State()
	require.Equal(t, before.SelectedTags, after.SelectedTags)
	require.Equal(t, before.FilteredContacts, after.FilteredContacts)
}

func TestFilterChangeResetsSelection(t *testing.T) {
	f := contactFixture(t)
	f.store.ToggleContactSelection(1)
	require.Len(t, f.store.State().SelectedContactIDs, 1)

	f.store.ToggleTagFilter("vip")
	require.Empty(t, f.store.State().SelectedContactIDs)

	f.store.ToggleContactSelection(1)
	f.store.ClearTagFilter()
	require.Empty(t, f.store.State().SelectedContactIDs)
}

func TestToggleAllContactsSelection(t *testing.T) {
	f := contactFixture(t)

	f.store.ToggleAllContactsSelection()
	require.Equal(t, []int{1, 2, 3}, f.store.State().SelectedContactIDs)

	f.store.ToggleAllContactsSelection()
	require.Empty(t, f.store.State().SelectedContactIDs)
}

func TestAddContactsRequiresActiveSpace(t *testing.T) {
	f := setupTestFixture(t)
	f.store.Login(session.User{UserID: testUserID, Username: testUsername})

	err := f.store.AddContacts(context.Background(), contacts.AddPayload{
		Contacts: []contacts.Contact{{Name: "New"}},
	})
	require.ErrorIs(t, err, session.ErrNoActiveSpace)
}

func TestAddContactsRefetchesAndNotifies(t *testing.T) {
	f := contactFixture(t)

	err := f.store.AddContacts(context.Background(), contacts.AddPayload{
		Contacts: []contacts.Contact{{Name: "Choi", PhoneNumber: "010-4444-4444", Tag: "vip"}},
	})
	require.NoError(t, err)

	state := f.store.State()
	require.Len(t, state.Contacts, 4, "mutation awaited the refetch")
	require.Equal(t, session.SeveritySuccess, state.Snackbar.Severity)
	require.Equal(t, 1, f.backend.CallCount("AddContacts"))
	require.Equal(t, 2, f.backend.CallCount("ListContacts"))
}

func TestDeleteContactFailureKeepsStateAndRethrows(t *testing.T) {
	f := contactFixture(t)
	f.backend.Errs["DeleteContacts"] = errors.New("boom")

	err := f.store.DeleteContact(context.Background(), 42)
	require.Error(t, err, "caller's catch branch must run")

	state := f.store.State()
	require.Len(t, state.Contacts, 3, "contacts unchanged on failure")
	require.NotNil(t, state.Snackbar)
	require.Equal(t, session.SeverityError, state.Snackbar.Severity)
}

func TestDeleteSelectedContacts(t *testing.T) {
	f := contactFixture(t)
	f.store.ToggleContactSelection(1)
	f.store.ToggleContactSelection(3)

	require.NoError(t, f.store.DeleteSelectedContacts(context.Background()))

	state := f.store.State()
	require.Len(t, state.Contacts, 1)
	require.Equal(t, "Lee", state.Contacts[0].Name)
	require.Empty(t, state.SelectedContactIDs)
}

func TestDeleteSelectedContactsNoopOnEmptySelection(t *testing.T) {
	f := contactFixture(t)

	require.NoError(t, f.store.DeleteSelectedContacts(context.Background()))
	require.Zero(t, f.backend.CallCount("DeleteContacts"))
}

func TestUpdateContactRefetches(t *testing.T) {
	f := contactFixture(t)

	updated := contacts.Contact{ID: 2, Name: "Lee Jr", PhoneNumber: "010-2222-2222", Tag: "staff"}
	require.NoError(t, f.store.UpdateContact(context.Background(), updated))

	state := f.store.State()
	require.Equal(t, "Lee Jr", state.Contacts[1].Name)
}

func TestStaleContactResponseIsDiscardedOnSpaceSwitch(t *testing.T) {
	f := contactFixture(t)
	f.backend.Spaces = append(f.backend.Spaces, spaces.Space{SpaceID: 2, SpaceName: "Beta"})
	f.backend.ContactsBySpace[2] = []contacts.Contact{{ID: 9, Name: "Beta contact"}}

	// Flip the current space while the fetch for space 1 is in flight.
	f.backend.Hooks["ListContacts"] = func() {
		f.backend.Hooks["ListContacts"] = nil
		f.store.SetCurrentSpace(spaces.Space{SpaceID: 2, SpaceName: "Beta"})
	}

	require.NoError(t, f.store.FetchContacts(context.Background()))

	state := f.store.State()
	require.Empty(t, state.Contacts, "space 1's response must not leak into space 2")
}
