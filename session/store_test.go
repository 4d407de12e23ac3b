package session_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jober-app/go-alimtalk-client/session"
	"github.com/jober-app/go-alimtalk-client/session/backendfakes"
	"github.com/jober-app/go-alimtalk-client/snapshot"
	"github.com/jober-app/go-alimtalk-client/snapshot/repofakes"
	"github.com/jober-app/go-alimtalk-client/spaces"
	"github.com/stretchr/testify/require"
)

const (
	testUserID   = 1
	testUsername = "alice"
)

// testFixture holds all test dependencies.
type testFixture struct {
	backend *backendfakes.FakeBackend
	snaps   *repofakes.FakeSnapshotRepo
	store   *session.Store
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()

	backend := backendfakes.NewFakeBackend()
	snaps := repofakes.NewFakeSnapshotRepo()

	store, err := session.New(backend, snaps)
	require.NoError(t, err)

	return &testFixture{
		backend: backend,
		snaps:   snaps,
		store:   store,
	}
}

// loginWithSpaces logs in and seeds the backend with the given spaces.
func (f *testFixture) loginWithSpaces(t *testing.T, list ...spaces.Space) {
	t.Helper()
	f.backend.Spaces = list
	f.store.Login(session.User{UserID: testUserID, Username: testUsername})
	require.NoError(t, f.store.FetchSpaces(context.Background()))
}

func TestNewValidatesDependencies(t *testing.T) {
	_, err := session.New(nil, repofakes.NewFakeSnapshotRepo())
	require.Error(t, err)

	_, err = session.New(backendfakes.NewFakeBackend(), nil)
	require.Error(t, err)
}

func TestLoginSetsSessionAndPersists(t *testing.T) {
	f := setupTestFixture(t)

	f.store.Login(session.User{UserID: testUserID, Username: testUsername})

	state := f.store.State()
	require.True(t, state.LoggedIn)
	require.NotNil(t, state.User)
	require.Equal(t, testUsername, state.User.Username)

	snap, found, err := f.snaps.Load()
	require.NoError(t, err)
	require.True(t, found)
	require.True(t, snap.LoggedIn)
	require.Equal(t, testUsername, snap.Username)
}

func TestLogoutResetsStateEvenWhenRequestFails(t *testing.T) {
	f := setupTestFixture(t)
	f.loginWithSpaces(t, spaces.Space{SpaceID: 1, SpaceName: "Alpha"})
	f.backend.Errs["Logout"] = errors.New("network down")

	f.store.Logout(context.Background())

	state := f.store.State()
	require.False(t, state.LoggedIn)
	require.Nil(t, state.User)
	require.Nil(t, state.CurrentSpace)
	require.Empty(t, state.Spaces)

	// The snapshot is overwritten with the empty shape, not removed.
	snap, found, err := f.snaps.Load()
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, snapshot.Snapshot{}, snap)
}

func TestRestoreLoadsPersistedSlice(t *testing.T) {
	f := setupTestFixture(t)
	require.NoError(t, f.snaps.Save(snapshot.Snapshot{
		LoggedIn: true,
		UserID:   testUserID,
		Username: testUsername,
		CurrentSpace: &spaces.Space{
			SpaceID:   3,
			SpaceName: "Gamma",
			Color:     spaces.ColorFor(3),
		},
	}))

	require.NoError(t, f.store.Restore())

	state := f.store.State()
	require.True(t, state.LoggedIn)
	require.Equal(t, testUsername, state.User.Username)
	require.Equal(t, 3, state.CurrentSpace.SpaceID)
	require.Empty(t, state.Templates, "derived collections are never persisted")
	require.Empty(t, state.Contacts)
}

func TestRestoreIgnoresLoggedOutSnapshot(t *testing.T) {
	f := setupTestFixture(t)
	require.NoError(t, f.snaps.Save(snapshot.Snapshot{}))

	require.NoError(t, f.store.Restore())
	require.False(t, f.store.State().LoggedIn)
}

func TestDeleteAccountLogsOutOnSuccess(t *testing.T) {
	f := setupTestFixture(t)
	f.loginWithSpaces(t, spaces.Space{SpaceID: 1, SpaceName: "Alpha"})

	require.NoError(t, f.store.DeleteAccount(context.Background()))

	require.False(t, f.store.State().LoggedIn)
	require.Equal(t, 1, f.backend.CallCount("DeleteAccount"))
	require.Equal(t, 1, f.backend.CallCount("Logout"))
}

func TestDeleteAccountFailureKeepsSession(t *testing.T) {
	f := setupTestFixture(t)
	f.loginWithSpaces(t, spaces.Space{SpaceID: 1, SpaceName: "Alpha"})
	f.backend.Errs["DeleteAccount"] = errors.New("boom")

	err := f.store.DeleteAccount(context.Background())
	require.Error(t, err)
	require.True(t, f.store.State().LoggedIn)
	require.Zero(t, f.backend.CallCount("Logout"))
}

func TestSnackbarReplaceSemantics(t *testing.T) {
	f := setupTestFixture(t)

	f.store.ShowSnackbar("first", session.SeverityInfo)
	f.store.ShowSnackbar("second", session.SeverityError)

	state := f.store.State()
	require.NotNil(t, state.Snackbar)
	require.True(t, state.Snackbar.Open)
	require.Equal(t, "second", state.Snackbar.Message)
	require.Equal(t, session.SeverityError, state.Snackbar.Severity)

	f.store.HideSnackbar()
	state = f.store.State()
	require.False(t, state.Snackbar.Open)
	require.Equal(t, "second", state.Snackbar.Message, "message survives for the exit animation")
}

func TestStateReturnsACopy(t *testing.T) {
	f := setupTestFixture(t)
	f.loginWithSpaces(t, spaces.Space{SpaceID: 1, SpaceName: "Alpha"})

	state := f.store.State()
	state.Spaces[0].SpaceName = "mutated"
	state.User.Username = "mutated"

	fresh := f.store.State()
	require.Equal(t, "Alpha", fresh.Spaces[0].SpaceName)
	require.Equal(t, testUsername, fresh.User.Username)
}
