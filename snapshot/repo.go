// Package snapshot persists the partial session state that survives a client
// restart: logged-in flag, user identity, and the active space. Derived
// collections (spaces, templates, contacts) are deliberately excluded and
// refetched on the next start.
package snapshot

import "github.com/jober-app/go-alimtalk-client/spaces"

// Snapshot is the persisted slice of session state.
type Snapshot struct {
	LoggedIn     bool          `json:"isLoggedIn"`
	UserID       int           `json:"userId"`
	Username     string        `json:"username"`
	CurrentSpace *spaces.Space `json:"currentSpace"`
}

// Repo defines the interface for snapshot storage.
type Repo interface {
	// Save overwrites the stored snapshot.
	Save(s Snapshot) error

	// Load returns the stored snapshot. The bool is false when nothing has
	// been saved yet.
	Load() (Snapshot, bool, error)

	// Clear removes the stored snapshot.
	Clear() error
}
