// Package release implements the ticket tier release engine: the in-session
// state an operator edits (tiers, groups, release modes) and the derivation
// of which tiers are gated behind an unsold-out predecessor.
package release

import (
	"sort"

	"github.com/feralclo/release-engine/internal/domain"
)

// Session owns one event's tier collection and release settings for the
// duration of an editing session. All commands are synchronous and there is
// exactly one writer, so no locking is done here; persistence happens outside
// through the repositories.
type Session struct {
	Tiers    []domain.Tier
	Settings *domain.Settings
}

// NewSession builds a session from a snapshot. Tiers are normalized into
// sort_order sequence and renumbered densely.
func NewSession(tiers []domain.Tier, settings *domain.Settings) *Session {
	if settings == nil {
		settings = domain.NewSettings()
	}
	if settings.TicketGroupMap == nil {
		settings.TicketGroupMap = map[string]*string{}
	}
	if settings.ReleaseModes == nil {
		settings.ReleaseModes = map[string]string{}
	}
	s := &Session{Tiers: tiers, Settings: settings}
	sort.SliceStable(s.Tiers, func(i, j int) bool {
		return s.Tiers[i].SortOrder < s.Tiers[j].SortOrder
	})
	s.renumber()
	return s
}

// renumber rewrites sort_order as a dense 0..n-1 sequence matching the
// current slice order.
func (s *Session) renumber() {
	for i := range s.Tiers {
		s.Tiers[i].SortOrder = i
	}
}

// findTier returns the index of the tier with the given id, or -1.
func (s *Session) findTier(id string) int {
	for i := range s.Tiers {
		if s.Tiers[i].ID == id {
			return i
		}
	}
	return -1
}

// AddTier appends a new tier to the collection: zero sold, status defaulting
// to active, sort order at the end of the list. The tier starts ungrouped.
func (s *Session) AddTier(t domain.Tier) error {
	if t.Status == "" {
		t.Status = domain.TierStatusActive
	}
	if !domain.ValidTierStatus(t.Status) {
		return domain.ErrInvalidTierStatus
	}
	t.Sold = 0
	t.SortOrder = len(s.Tiers)
	s.Tiers = append(s.Tiers, t)
	return nil
}

// UpdateTier applies fn to the tier with the given id. fn receives the live
// record, mirroring the updater-function shape the surrounding editor uses.
// Sold, Status and SortOrder changed by fn are kept as-is; callers that need
// validated status changes use SetTierStatus instead.
func (s *Session) UpdateTier(id string, fn func(*domain.Tier)) error {
	i := s.findTier(id)
	if i < 0 {
		return domain.ErrTierNotFound
	}
	fn(&s.Tiers[i])
	return nil
}

// SetTierStatus applies an operator status edit, validated against the tier
// status machine. The engine itself never flips a tier to sold_out from
// sales data; that signal stays derived.
func (s *Session) SetTierStatus(id, status string) error {
	if !domain.ValidTierStatus(status) {
		return domain.ErrInvalidTierStatus
	}
	i := s.findTier(id)
	if i < 0 {
		return domain.ErrTierNotFound
	}
	if !domain.CanTransition(s.Tiers[i].Status, status) {
		return domain.ErrInvalidTransition
	}
	s.Tiers[i].Status = status
	return nil
}

// RemoveTier deletes a tier from the session. Tiers with recorded sales
// require explicit confirmation; without it the state is left unchanged.
// The tier's group assignment entry is dropped along with the record.
func (s *Session) RemoveTier(id string, confirmed bool) error {
	i := s.findTier(id)
	if i < 0 {
		return domain.ErrTierNotFound
	}
	if s.Tiers[i].Sold > 0 && !confirmed {
		return domain.ErrConfirmRequired
	}
	s.Tiers = append(s.Tiers[:i], s.Tiers[i+1:]...)
	delete(s.Settings.TicketGroupMap, id)
	s.renumber()
	return nil
}

// AssignTier reassigns a tier to a scope. Reassignment is an explicit action
// separate from reordering; the tier keeps its relative position in the
// flattened list.
func (s *Session) AssignTier(id string, scope domain.Scope) error {
	if s.findTier(id) < 0 {
		return domain.ErrTierNotFound
	}
	if !scope.IsNamed() {
		s.Settings.TicketGroupMap[id] = nil
		return nil
	}
	name := scope.Name()
	s.Settings.TicketGroupMap[id] = &name
	return nil
}

// ReorderTier moves the tier at from to position to within the flattened
// list and renumbers the whole list densely. Group membership is unaffected:
// dragging a tier into a different visual section does not reassign it.
func (s *Session) ReorderTier(from, to int) error {
	n := len(s.Tiers)
	if from < 0 || from >= n || to < 0 || to >= n {
		return domain.ErrIndexOutOfRange
	}
	if from == to {
		return nil
	}
	t := s.Tiers[from]
	s.Tiers = append(s.Tiers[:from], s.Tiers[from+1:]...)
	s.Tiers = append(s.Tiers[:to], append([]domain.Tier{t}, s.Tiers[to:]...)...)
	s.renumber()
	return nil
}

// ScopeTiers returns the session's tiers belonging to scope, in sort order.
func (s *Session) ScopeTiers(scope domain.Scope) []domain.Tier {
	var out []domain.Tier
	for _, t := range s.Tiers {
		if s.Settings.ScopeOf(t.ID) == scope {
			out = append(out, t)
		}
	}
	return out
}

// Waiting derives the gating state for the session's current snapshot.
func (s *Session) Waiting() map[string]string {
	return ComputeWaiting(s.Tiers, s.Settings)
}
