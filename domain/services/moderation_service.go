package services

import (
	"context"
	"fmt"
	"time"

	"barkeep/domain/entities"
	"barkeep/domain/interfaces"
)

// Minimum and maximum auto-delete intervals accepted from commands.
const (
	MinAutoDeleteInterval = time.Minute
	MaxAutoDeleteInterval = 7 * 24 * time.Hour
)

// ModerationService owns moderation policy: who counts as a moderator, the
// auto-delete schedule, the allowlist and channel pins.
type ModerationService struct {
	moderation interfaces.ModerationRepository
}

// NewModerationService creates a moderation service.
func NewModerationService(moderation interfaces.ModerationRepository) *ModerationService {
	return &ModerationService{moderation: moderation}
}

// Authorize reports whether the user may run moderation commands: either a
// server permission grant or an allowlist entry suffices.
func (s *ModerationService) Authorize(ctx context.Context, userID int64, hasManageMessages bool) (bool, error) {
	if hasManageMessages {
		return true, nil
	}
	return s.moderation.IsAllowlisted(ctx, userID)
}

// ValidatePurgeCount bounds the purge count to [1, MaxPurgeCount].
func (s *ModerationService) ValidatePurgeCount(count int) error {
	if count < 1 || count > entities.MaxPurgeCount {
		return entities.NewValidationError("purge count must be between 1 and %d", entities.MaxPurgeCount)
	}
	return nil
}

// SetAutoDelete enables timed message deletion in a channel.
func (s *ModerationService) SetAutoDelete(ctx context.Context, channelID int64, interval time.Duration) error {
	if interval < MinAutoDeleteInterval || interval > MaxAutoDeleteInterval {
		return entities.NewValidationError("auto-delete interval must be between %s and %s",
			MinAutoDeleteInterval, MaxAutoDeleteInterval)
	}
	if err := s.moderation.SetAutoDelete(ctx, channelID, interval); err != nil {
		return fmt.Errorf("failed to set auto-delete: %w", err)
	}
	return nil
}

// DisableAutoDelete removes a channel's auto-delete policy; ErrNotFound when
// none was configured.
func (s *ModerationService) DisableAutoDelete(ctx context.Context, channelID int64) error {
	removed, err := s.moderation.RemoveAutoDelete(ctx, channelID)
	if err != nil {
		return err
	}
	if !removed {
		return entities.ErrNotFound
	}
	return nil
}

// AutoDeletePolicies lists the configured channels.
func (s *ModerationService) AutoDeletePolicies(ctx context.Context) ([]entities.AutoDeletePolicy, error) {
	return s.moderation.ListAutoDelete(ctx)
}

// Allow adds a user to the moderation allowlist; false when already present.
func (s *ModerationService) Allow(ctx context.Context, userID int64) (bool, error) {
	return s.moderation.AddToAllowlist(ctx, userID)
}

// Disallow removes a user from the allowlist; ErrNotFound when absent.
func (s *ModerationService) Disallow(ctx context.Context, userID int64) error {
	removed, err := s.moderation.RemoveFromAllowlist(ctx, userID)
	if err != nil {
		return err
	}
	if !removed {
		return entities.ErrNotFound
	}
	return nil
}

// Allowlist returns the allowlisted user ids.
func (s *ModerationService) Allowlist(ctx context.Context) ([]int64, error) {
	return s.moderation.Allowlist(ctx)
}

// SetPin stores a channel's sticky text.
func (s *ModerationService) SetPin(ctx context.Context, channelID int64, text string) error {
	if text == "" {
		return entities.NewValidationError("pin text cannot be empty")
	}
	return s.moderation.SetPin(ctx, channelID, text)
}

// Pin returns a channel's sticky text, or "" when unset.
func (s *ModerationService) Pin(ctx context.Context, channelID int64) (string, error) {
	return s.moderation.GetPin(ctx, channelID)
}

// ClearPin removes a channel's sticky text.
func (s *ModerationService) ClearPin(ctx context.Context, channelID int64) error {
	return s.moderation.ClearPin(ctx, channelID)
}
