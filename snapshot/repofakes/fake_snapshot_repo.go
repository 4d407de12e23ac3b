package repofakes

import (
	"sync"

	"github.com/jober-app/go-alimtalk-client/snapshot"
)

var _ snapshot.Repo = (*FakeSnapshotRepo)(nil)

// FakeSnapshotRepo is an in-memory snapshot store for tests.
type FakeSnapshotRepo struct {
	current snapshot.Snapshot
	stored  bool
	lock    sync.RWMutex

	// SaveErr, LoadErr and ClearErr, when set, are returned by the
	// corresponding method to exercise failure paths.
	SaveErr  error
	LoadErr  error
	ClearErr error
}

func NewFakeSnapshotRepo() *FakeSnapshotRepo {
	return &FakeSnapshotRepo{}
}

func (r *FakeSnapshotRepo) Save(s snapshot.Snapshot) error {
	if r.SaveErr != nil {
		return r.SaveErr
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	r.current = s
	r.stored = true
	return nil
}

func (r *FakeSnapshotRepo) Load() (snapshot.Snapshot, bool, error) {
	if r.LoadErr != nil {
		return snapshot.Snapshot{}, false, r.LoadErr
	}
	r.lock.RLock()
	defer r.lock.RUnlock()
	return r.current, r.stored, nil
}

func (r *FakeSnapshotRepo) Clear() error {
	if r.ClearErr != nil {
		return r.ClearErr
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	r.current = snapshot.Snapshot{}
	r.stored = false
	return nil
}
