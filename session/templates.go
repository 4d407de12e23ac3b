package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/jober-app/go-alimtalk-client/api"
	tmpl "github.com/jober-app/go-alimtalk-client/templates"
)

// FetchTemplates loads the current space's templates. With no space selected
// the list is emptied and nothing is fetched. Failures are logged and empty
// the list rather than surfacing an error banner. A response that arrives
// after the current space changed identity is discarded.
func (s *Store) FetchTemplates(ctx context.Context) error {
	s.lock.Lock()
	if s.state.CurrentSpace == nil {
		s.state.Templates = []tmpl.Template{}
		s.lock.Unlock()
		return nil
	}
	spaceID := s.state.CurrentSpace.SpaceID
	s.state.TemplatesLoading = true
	s.lock.Unlock()

	list, err := s.backend.ListTemplates(ctx, spaceID)

	s.lock.Lock()
	defer func() {
		s.state.TemplatesLoading = false
		s.lock.Unlock()
	}()

	if s.state.CurrentSpace == nil || s.state.CurrentSpace.SpaceID != spaceID {
		s.logger.Debug().Int("spaceId", spaceID).Msg("discarding stale template response")
		return nil
	}

	if err != nil {
		if errors.Is(err, api.ErrSessionExpired) {
			return err
		}
		s.logger.Error().Err(err).Int("spaceId", spaceID).Msg("failed to fetch templates")
		s.state.Templates = []tmpl.Template{}
		return nil
	}

	s.state.Templates = list
	return nil
}

// SaveTemplate posts a template for the current space. On success it
// refetches the contact list, not the template list; that asymmetry ships in
// production today and is preserved until product confirms the intent.
// Callers that need the fresh template list call FetchTemplates themselves.
func (s *Store) SaveTemplate(ctx context.Context, payload tmpl.SavePayload) error {
	s.lock.Lock()
	if s.state.CurrentSpace == nil {
		s.lock.Unlock()
		return ErrNoActiveSpace
	}
	payload.SpaceID = s.state.CurrentSpace.SpaceID
	s.lock.Unlock()

	if err := s.backend.SaveTemplate(ctx, payload); err != nil {
		if errors.Is(err, api.ErrSessionExpired) {
			return err
		}
		return fmt.Errorf("save template: %w", err)
	}

	if err := s.FetchContacts(ctx); err != nil {
		s.logger.Error().Err(err).Msg("contact refetch after template save failed")
	}
	return nil
}

// DeleteTemplate removes a template from the current space and refetches the
// template list.
func (s *Store) DeleteTemplate(ctx context.Context, templateID int) error {
	s.lock.Lock()
	if s.state.CurrentSpace == nil {
		s.lock.Unlock()
		return ErrNoActiveSpace
	}
	s.lock.Unlock()

	if err := s.backend.DeleteTemplate(ctx, templateID); err != nil {
		return s.notifyErr("Failed to delete template.", err)
	}

	if err := s.FetchTemplates(ctx); err != nil {
		s.logger.Error().Err(err).Msg("template refetch after delete failed")
	}
	s.ShowSnackbar("Template deleted.", SeveritySuccess)
	return nil
}
