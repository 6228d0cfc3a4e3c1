package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/feralclo/release-engine/internal/domain"
	"github.com/feralclo/release-engine/internal/dto"
	"github.com/feralclo/release-engine/internal/release"
	"github.com/feralclo/release-engine/internal/repository"
	"github.com/feralclo/release-engine/pkg/logger"
)

// tierService implements the TierService interface
type tierService struct {
	tierRepo     repository.TierRepository
	settingsRepo repository.SettingsRepository
	cache        AvailabilityCache
}

// NewTierService creates a new TierService. cache may be nil.
func NewTierService(tierRepo repository.TierRepository, settingsRepo repository.SettingsRepository, cache AvailabilityCache) TierService {
	return &tierService{
		tierRepo:     tierRepo,
		settingsRepo: settingsRepo,
		cache:        cache,
	}
}

// loadSession builds an editing session from the stored snapshot
func loadSession(ctx context.Context, tierRepo repository.TierRepository, settingsRepo repository.SettingsRepository, eventID string) (*release.Session, error) {
	tiers, err := tierRepo.GetByEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	settings, err := settingsRepo.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return release.NewSession(tiers, settings), nil
}

// persist writes the session back and drops any cached availability payload
func (s *tierService) persist(ctx context.Context, eventID string, sess *release.Session) error {
	if err := s.tierRepo.SaveAll(ctx, eventID, sess.Tiers); err != nil {
		return err
	}
	if err := s.settingsRepo.Save(ctx, eventID, sess.Settings); err != nil {
		return err
	}
	s.invalidate(ctx, eventID)
	return nil
}

func (s *tierService) invalidate(ctx context.Context, eventID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, eventID); err != nil {
		logger.WarnCtx(ctx, "availability cache invalidation failed",
			zap.String("event_id", eventID), zap.Error(err))
	}
}

// ListTiers lists an event's tiers with derived gating state
func (s *tierService) ListTiers(ctx context.Context, eventID string) (*dto.TierListResponse, error) {
	sess, err := loadSession(ctx, s.tierRepo, s.settingsRepo, eventID)
	if err != nil {
		return nil, err
	}
	waiting := sess.Waiting()

	tiers := make([]*dto.TierResponse, len(sess.Tiers))
	for i, t := range sess.Tiers {
		tiers[i] = toTierResponse(t, sess.Settings, waiting)
	}
	return &dto.TierListResponse{
		EventID: eventID,
		Tiers:   tiers,
		Groups:  sess.Settings.TicketGroups,
	}, nil
}

// CreateTier creates a new tier for an event
func (s *tierService) CreateTier(ctx context.Context, eventID string, req *dto.CreateTierRequest) (*domain.Tier, error) {
	sess, err := loadSession(ctx, s.tierRepo, s.settingsRepo, eventID)
	if err != nil {
		return nil, err
	}

	tier := domain.Tier{
		ID:          uuid.New().String(),
		EventID:     eventID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Capacity:    req.Capacity,
		Status:      req.Status,
		MerchID:     req.MerchID,
	}
	if err := sess.AddTier(tier); err != nil {
		return nil, err
	}
	if err := s.persist(ctx, eventID, sess); err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "ticket tier created",
		zap.String("event_id", eventID),
		zap.String("tier_id", tier.ID),
		zap.String("name", tier.Name))

	created := sess.Tiers[len(sess.Tiers)-1]
	return &created, nil
}

// UpdateTier updates a tier's details
func (s *tierService) UpdateTier(ctx context.Context, eventID, tierID string, req *dto.UpdateTierRequest) (*domain.Tier, error) {
	sess, err := loadSession(ctx, s.tierRepo, s.settingsRepo, eventID)
	if err != nil {
		return nil, err
	}

	err = sess.UpdateTier(tierID, func(t *domain.Tier) {
		if req.Name != "" {
			t.Name = req.Name
		}
		if req.Description != nil {
			t.Description = *req.Description
		}
		if req.Price != nil {
			t.Price = *req.Price
		}
		if req.Capacity != nil {
			t.Capacity = req.Capacity
		}
		if req.ClearCapacity {
			t.Capacity = nil
		}
		if req.MerchID != nil {
			t.MerchID = req.MerchID
		}
	})
	if err != nil {
		return nil, err
	}
	if err := s.persist(ctx, eventID, sess); err != nil {
		return nil, err
	}
	return s.tierRepo.GetByID(ctx, tierID)
}

// SetTierStatus applies an operator status edit
func (s *tierService) SetTierStatus(ctx context.Context, eventID, tierID, status string) (*domain.Tier, error) {
	sess, err := loadSession(ctx, s.tierRepo, s.settingsRepo, eventID)
	if err != nil {
		return nil, err
	}
	if err := sess.SetTierStatus(tierID, status); err != nil {
		return nil, err
	}
	if err := s.persist(ctx, eventID, sess); err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "ticket tier status changed",
		zap.String("event_id", eventID),
		zap.String("tier_id", tierID),
		zap.String("status", status))

	return s.tierRepo.GetByID(ctx, tierID)
}

// AssignTierGroup reassigns a tier to a group, or nil for ungrouped
func (s *tierService) AssignTierGroup(ctx context.Context, eventID, tierID string, group *string) error {
	sess, err := loadSession(ctx, s.tierRepo, s.settingsRepo, eventID)
	if err != nil {
		return err
	}

	scope := domain.Ungrouped
	if group != nil {
		if !sess.Settings.HasGroup(*group) {
			return domain.ErrGroupNotFound
		}
		scope = domain.GroupScope(*group)
	}
	if err := sess.AssignTier(tierID, scope); err != nil {
		return err
	}
	return s.persist(ctx, eventID, sess)
}

// RemoveTier deletes a tier; tiers with sales require confirmation
func (s *tierService) RemoveTier(ctx context.Context, eventID, tierID string, confirmed bool) error {
	sess, err := loadSession(ctx, s.tierRepo, s.settingsRepo, eventID)
	if err != nil {
		return err
	}
	if err := sess.RemoveTier(tierID, confirmed); err != nil {
		return err
	}
	if err := s.tierRepo.Delete(ctx, tierID); err != nil {
		return err
	}
	if err := s.persist(ctx, eventID, sess); err != nil {
		return err
	}

	logger.InfoCtx(ctx, "ticket tier removed",
		zap.String("event_id", eventID),
		zap.String("tier_id", tierID),
		zap.Bool("confirmed", confirmed))
	return nil
}

// ReorderTier moves a tier within the flattened list
func (s *tierService) ReorderTier(ctx context.Context, eventID string, from, to int) error {
	sess, err := loadSession(ctx, s.tierRepo, s.settingsRepo, eventID)
	if err != nil {
		return err
	}
	if err := sess.ReorderTier(from, to); err != nil {
		return err
	}
	return s.persist(ctx, eventID, sess)
}

// GetAvailability returns the buyer-facing availability payload. Hidden and
// archived tiers are withheld; waiting tiers carry the name of the tier they
// are gated behind. The payload is served from cache when present.
func (s *tierService) GetAvailability(ctx context.Context, eventID string) (*dto.AvailabilityResponse, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, eventID)
		if err != nil {
			logger.WarnCtx(ctx, "availability cache read failed",
				zap.String("event_id", eventID), zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	sess, err := loadSession(ctx, s.tierRepo, s.settingsRepo, eventID)
	if err != nil {
		return nil, err
	}
	waiting := sess.Waiting()

	payload := &dto.AvailabilityResponse{EventID: eventID, Tiers: []*dto.AvailableTierResponse{}}
	for _, t := range sess.Tiers {
		if t.Status == domain.TierStatusHidden || t.Status == domain.TierStatusArchived {
			continue
		}
		resp := &dto.AvailableTierResponse{
			ID:        t.ID,
			Name:      t.Name,
			Price:     t.Price,
			Remaining: t.Remaining(),
		}
		if g := sess.Settings.TicketGroupMap[t.ID]; g != nil {
			resp.Group = g
		}
		if w, ok := waiting[t.ID]; ok {
			name := w
			resp.WaitingOn = &name
		}
		payload.Tiers = append(payload.Tiers, resp)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, eventID, payload); err != nil {
			logger.WarnCtx(ctx, "availability cache write failed",
				zap.String("event_id", eventID), zap.Error(err))
		}
	}
	return payload, nil
}

// toTierResponse maps a domain tier plus derived state into a response
func toTierResponse(t domain.Tier, settings *domain.Settings, waiting map[string]string) *dto.TierResponse {
	resp := &dto.TierResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Price:       t.Price,
		Capacity:    t.Capacity,
		Sold:        t.Sold,
		Status:      t.Status,
		SortOrder:   t.SortOrder,
		MerchID:     t.MerchID,
	}
	if g := settings.TicketGroupMap[t.ID]; g != nil {
		resp.Group = g
	}
	if w, ok := waiting[t.ID]; ok {
		name := w
		resp.WaitingOn = &name
	}
	return resp
}
