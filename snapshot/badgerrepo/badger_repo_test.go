package badgerrepo_test

import (
	"testing"

	"github.com/jober-app/go-alimtalk-client/snapshot"
	"github.com/jober-app/go-alimtalk-client/snapshot/badgerrepo"
	"github.com/jober-app/go-alimtalk-client/spaces"
	"github.com/stretchr/testify/require"
)

func openRepo(t *testing.T) *badgerrepo.BadgerRepo {
	t.Helper()
	repo, err := badgerrepo.New(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestLoadBeforeSaveReportsMissing(t *testing.T) {
	repo := openRepo(t)

	_, found, err := repo.Load()
	require.NoError(t, err)
	require.False(t, found)
}

func TestSaveLoadClear(t *testing.T) {
	repo := openRepo(t)

	in := snapshot.Snapshot{
		LoggedIn: true,
		UserID:   1,
		Username: "alice",
		CurrentSpace: &spaces.Space{
			SpaceID:   2,
			SpaceName: "Alpha",
			Authority: spaces.AuthorityAdmin,
			Color:     spaces.ColorFor(2),
		},
	}
	require.NoError(t, repo.Save(in))

	got, found, err := repo.Load()
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, in, got)

	require.NoError(t, repo.Clear())
	_, found, err = repo.Load()
	require.NoError(t, err)
	require.False(t, found)
}

func TestClearWithoutSaveIsANoop(t *testing.T) {
	repo := openRepo(t)
	require.NoError(t, repo.Clear())
}
