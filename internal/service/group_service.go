package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/feralclo/release-engine/internal/domain"
	"github.com/feralclo/release-engine/internal/dto"
	"github.com/feralclo/release-engine/internal/release"
	"github.com/feralclo/release-engine/internal/repository"
	"github.com/feralclo/release-engine/pkg/logger"
)

// groupService implements the GroupService interface
type groupService struct {
	tierRepo     repository.TierRepository
	settingsRepo repository.SettingsRepository
	cache        AvailabilityCache
}

// NewGroupService creates a new GroupService. cache may be nil.
func NewGroupService(tierRepo repository.TierRepository, settingsRepo repository.SettingsRepository, cache AvailabilityCache) GroupService {
	return &groupService{
		tierRepo:     tierRepo,
		settingsRepo: settingsRepo,
		cache:        cache,
	}
}

// persist writes the session back and drops any cached availability payload.
// Group commands can also touch tier status (activation on switching to
// sequential release), so tiers are always written alongside the settings.
func (s *groupService) persist(ctx context.Context, eventID string, sess *release.Session) error {
	if err := s.tierRepo.SaveAll(ctx, eventID, sess.Tiers); err != nil {
		return err
	}
	if err := s.settingsRepo.Save(ctx, eventID, sess.Settings); err != nil {
		return err
	}
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, eventID); err != nil {
			logger.WarnCtx(ctx, "availability cache invalidation failed",
				zap.String("event_id", eventID), zap.Error(err))
		}
	}
	return nil
}

// ListGroups lists an event's group registry in order
func (s *groupService) ListGroups(ctx context.Context, eventID string) (*dto.GroupListResponse, error) {
	sess, err := loadSession(ctx, s.tierRepo, s.settingsRepo, eventID)
	if err != nil {
		return nil, err
	}

	groups := make([]*dto.GroupResponse, len(sess.Settings.TicketGroups))
	for i, name := range sess.Settings.TicketGroups {
		scope := domain.GroupScope(name)
		groups[i] = &dto.GroupResponse{
			Name:        name,
			Position:    i,
			ReleaseMode: sess.Settings.Mode(scope),
			TierCount:   len(sess.ScopeTiers(scope)),
		}
	}
	return &dto.GroupListResponse{
		Groups:        groups,
		UngroupedMode: sess.Settings.Mode(domain.Ungrouped),
	}, nil
}

// CreateGroup appends a new group with the default release mode
func (s *groupService) CreateGroup(ctx context.Context, eventID, name string) error {
	sess, err := loadSession(ctx, s.tierRepo, s.settingsRepo, eventID)
	if err != nil {
		return err
	}
	if err := sess.CreateGroup(name); err != nil {
		return err
	}
	if err := s.persist(ctx, eventID, sess); err != nil {
		return err
	}

	logger.InfoCtx(ctx, "ticket group created",
		zap.String("event_id", eventID), zap.String("group", name))
	return nil
}

// RenameGroup renames a group and propagates the change everywhere
func (s *groupService) RenameGroup(ctx context.Context, eventID, oldName, newName string) error {
	sess, err := loadSession(ctx, s.tierRepo, s.settingsRepo, eventID)
	if err != nil {
		return err
	}
	if err := sess.RenameGroup(oldName, newName); err != nil {
		return err
	}
	if err := s.persist(ctx, eventID, sess); err != nil {
		return err
	}

	logger.InfoCtx(ctx, "ticket group renamed",
		zap.String("event_id", eventID),
		zap.String("from", oldName),
		zap.String("to", newName))
	return nil
}

// DeleteGroup removes a group, sending its tiers back to ungrouped
func (s *groupService) DeleteGroup(ctx context.Context, eventID, name string) error {
	sess, err := loadSession(ctx, s.tierRepo, s.settingsRepo, eventID)
	if err != nil {
		return err
	}
	if err := sess.DeleteGroup(name); err != nil {
		return err
	}
	if err := s.persist(ctx, eventID, sess); err != nil {
		return err
	}

	logger.InfoCtx(ctx, "ticket group deleted",
		zap.String("event_id", eventID), zap.String("group", name))
	return nil
}

// MoveGroup swaps a group with its neighbor in the given direction
func (s *groupService) MoveGroup(ctx context.Context, eventID, name string, dir release.Direction) error {
	sess, err := loadSession(ctx, s.tierRepo, s.settingsRepo, eventID)
	if err != nil {
		return err
	}
	if err := sess.MoveGroup(name, dir); err != nil {
		return err
	}
	return s.persist(ctx, eventID, sess)
}

// SetReleaseMode sets the release mode for a group or the ungrouped pool
func (s *groupService) SetReleaseMode(ctx context.Context, eventID, scopeKey, mode string) error {
	sess, err := loadSession(ctx, s.tierRepo, s.settingsRepo, eventID)
	if err != nil {
		return err
	}
	if err := sess.SetReleaseMode(domain.ScopeFromKey(scopeKey), mode); err != nil {
		return err
	}
	if err := s.persist(ctx, eventID, sess); err != nil {
		return err
	}

	logger.InfoCtx(ctx, "release mode changed",
		zap.String("event_id", eventID),
		zap.String("scope", scopeKey),
		zap.String("mode", mode))
	return nil
}
