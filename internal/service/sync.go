package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/hirehive/hirehive/internal/apperror"
	"github.com/hirehive/hirehive/internal/model"
	"github.com/hirehive/hirehive/internal/repository"
	"github.com/hirehive/hirehive/internal/webhook"
)

// SyncService applies identity provider lifecycle events to the local user
// mirror. The provider retries deliveries and may reorder them, so every
// handler here is idempotent: replays and out-of-order events converge on
// the same final state instead of failing.
type SyncService struct {
	users  repository.UserRepository
	logger *slog.Logger
}

func NewSyncService(users repository.UserRepository, logger *slog.Logger) *SyncService {
	return &SyncService{users: users, logger: logger}
}

// HandleEvent dispatches one verified event. Unknown event types are
// acknowledged without action so the provider stops redelivering them.
func (s *SyncService) HandleEvent(ctx context.Context, evt *webhook.Event) error {
	switch evt.Type {
	case webhook.EventUserCreated:
		return s.userCreated(ctx, evt)
	case webhook.EventUserUpdated:
		return s.userUpdated(ctx, evt)
	case webhook.EventUserDeleted:
		return s.userDeleted(ctx, evt)
	default:
		s.logger.Debug("ignoring webhook event", "type", evt.Type)
		return nil
	}
}

func (s *SyncService) userCreated(ctx context.Context, evt *webhook.Event) error {
	data, err := evt.UserData()
	if err != nil {
		return err
	}

	user := &model.User{
		ID:        data.ID,
		Name:      data.DisplayName(),
		Email:     data.PrimaryEmail(),
		AvatarURL: data.ImageURL,
	}
	if err := s.users.Insert(ctx, user); err != nil {
		// Redelivered creation: the row is already there.
		if errors.Is(err, apperror.ErrConflict) {
			s.logger.Debug("user already exists, ignoring redelivery", "user_id", data.ID)
			return nil
		}
		return err
	}
	return nil
}

// userUpdated rewrites the profile fields only. The resume URL is owned by
// the local upload flow and must survive provider updates. An update for a
// user we never saw (creation event lost) falls back to inserting.
func (s *SyncService) userUpdated(ctx context.Context, evt *webhook.Event) error {
	data, err := evt.UserData()
	if err != nil {
		return err
	}

	err = s.users.UpdateProfile(ctx, data.ID, data.DisplayName(), data.PrimaryEmail(), data.ImageURL)
	if err != nil && errors.Is(err, apperror.ErrNotFound) {
		s.logger.Info("update for unknown user, inserting", "user_id", data.ID)
		return s.users.Insert(ctx, &model.User{
			ID:        data.ID,
			Name:      data.DisplayName(),
			Email:     data.PrimaryEmail(),
			AvatarURL: data.ImageURL,
		})
	}
	return err
}

func (s *SyncService) userDeleted(ctx context.Context, evt *webhook.Event) error {
	data, err := evt.UserData()
	if err != nil {
		return err
	}

	if err := s.users.Delete(ctx, data.ID); err != nil {
		// Redelivered or out-of-order deletion: already gone.
		if errors.Is(err, apperror.ErrNotFound) {
			s.logger.Debug("user already deleted, ignoring", "user_id", data.ID)
			return nil
		}
		return err
	}
	return nil
}
