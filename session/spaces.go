package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/jober-app/go-alimtalk-client/api"
	"github.com/jober-app/go-alimtalk-client/contacts"
	"github.com/jober-app/go-alimtalk-client/spaces"
	"github.com/jober-app/go-alimtalk-client/templates"
)

const spacesLoadError = "Failed to load spaces. Please try again."

// SetCurrentSpace switches the active space. Selecting the space that is
// already active is a no-op; an actual switch atomically clears every
// space-scoped collection before any refetch runs, so stale data never leaks
// across spaces.
func (s *Store) SetCurrentSpace(space spaces.Space) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.setCurrentSpaceLocked(space)
}

func (s *Store) setCurrentSpaceLocked(space spaces.Space) {
	if s.state.CurrentSpace != nil && s.state.CurrentSpace.SpaceID == space.SpaceID {
		return
	}
	if space.Color == "" {
		space.Color = spaces.ColorFor(space.SpaceID)
	}
	s.state.CurrentSpace = &space
	s.clearSpaceScopedLocked()
	s.persistLocked()
}

func (s *Store) clearSpaceScopedLocked() {
	s.state.Templates = []templates.Template{}
	s.state.Contacts = []contacts.Contact{}
	s.state.AllTags = []string{}
	s.state.SelectedTags = []string{}
	s.state.FilteredContacts = []contacts.Contact{}
	s.state.SelectedContactIDs = []int{}
}

// FetchSpaces loads the user's spaces and reconciles the current selection:
// with no selection the alphabetically-first space becomes current, and a
// selection that no longer appears in the fetched list is replaced the same
// way. A request failure records a retryable message in APIError and leaves
// the existing spaces untouched. The loading flag clears and the initialized
// flag sets regardless of outcome.
func (s *Store) FetchSpaces(ctx context.Context) error {
	s.lock.Lock()
	if !s.state.LoggedIn {
		s.lock.Unlock()
		return nil
	}
	s.state.SpacesLoading = true
	s.lock.Unlock()

	list, err := s.backend.ListSpaces(ctx)

	s.lock.Lock()
	defer func() {
		s.state.SpacesLoading = false
		s.state.SpacesInitialized = true
		s.lock.Unlock()
	}()

	if err != nil {
		if errors.Is(err, api.ErrSessionExpired) {
			return err
		}
		s.logger.Error().Err(err).Msg("failed to fetch spaces")
		s.state.APIError = spacesLoadError
		return fmt.Errorf("fetch spaces: %w", err)
	}

	colored := spaces.WithColors(list)
	s.state.Spaces = colored
	s.state.SortedSpaces = spaces.SortedByName(colored)
	s.state.APIError = ""

	switch {
	case len(colored) == 0:
		if s.state.CurrentSpace != nil {
			s.state.CurrentSpace = nil
			s.clearSpaceScopedLocked()
			s.persistLocked()
		}
	case s.state.CurrentSpace == nil,
		!spaces.Contains(colored, s.state.CurrentSpace.SpaceID):
		s.setCurrentSpaceLocked(s.state.SortedSpaces[0])
	}
	return nil
}

// RenameSpace renames a space, refetches the space list, and notifies.
func (s *Store) RenameSpace(ctx context.Context, spaceID int, name string) error {
	if err := s.backend.RenameSpace(ctx, spaceID, name); err != nil {
		return s.notifyErr("Failed to rename space.", err)
	}
	if err := s.FetchSpaces(ctx); err != nil {
		s.logger.Error().Err(err).Msg("space list refetch after rename failed")
	}
	s.ShowSnackbar("Space renamed.", SeveritySuccess)
	return nil
}

// DeleteSpace deletes a space, refetches the space list (which reassigns the
// current selection if the deleted space was active), and notifies.
func (s *Store) DeleteSpace(ctx context.Context, spaceID int) error {
	if err := s.backend.DeleteSpace(ctx, spaceID); err != nil {
		return s.notifyErr("Failed to delete space.", err)
	}
	if err := s.FetchSpaces(ctx); err != nil {
		s.logger.Error().Err(err).Msg("space list refetch after delete failed")
	}
	s.ShowSnackbar("Space deleted.", SeveritySuccess)
	return nil
}

// AcceptInvite accepts a space invitation for email and refetches the space
// list so the new membership shows up.
func (s *Store) AcceptInvite(ctx context.Context, spaceID int, email string) error {
	if err := s.backend.AcceptInvite(ctx, spaceID, email); err != nil {
		return s.notifyErr("Failed to accept the invitation.", err)
	}
	if err := s.FetchSpaces(ctx); err != nil {
		s.logger.Error().Err(err).Msg("space list refetch after invite accept failed")
	}
	s.ShowSnackbar("Invitation accepted.", SeveritySuccess)
	return nil
}
