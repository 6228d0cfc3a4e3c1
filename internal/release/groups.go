package release

import (
	"strings"

	"github.com/feralclo/release-engine/internal/domain"
)

// Direction is a group move direction.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// CreateGroup appends a new named group to the registry with the default
// release mode (all). Names are trimmed; empty, duplicate (case-sensitive
// exact match) and reserved names are rejected with no state change.
func (s *Session) CreateGroup(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.ErrGroupNameRequired
	}
	if domain.ReservedScopeKey(name) {
		return domain.ErrReservedGroupName
	}
	if s.Settings.HasGroup(name) {
		return domain.ErrGroupExists
	}
	s.Settings.TicketGroups = append(s.Settings.TicketGroups, name)
	return nil
}

// RenameGroup renames a group, propagating the new name atomically to the
// registry, every group map entry, and the release mode entry (mode value
// preserved). Renaming a group that does not exist is a no-op.
func (s *Session) RenameGroup(oldName, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return domain.ErrGroupNameRequired
	}
	if domain.ReservedScopeKey(newName) {
		return domain.ErrReservedGroupName
	}
	if newName != oldName && s.Settings.HasGroup(newName) {
		return domain.ErrGroupExists
	}
	if !s.Settings.HasGroup(oldName) || newName == oldName {
		return nil
	}
	for i, g := range s.Settings.TicketGroups {
		if g == oldName {
			s.Settings.TicketGroups[i] = newName
		}
	}
	for id, g := range s.Settings.TicketGroupMap {
		if g != nil && *g == oldName {
			n := newName
			s.Settings.TicketGroupMap[id] = &n
		}
	}
	if mode, ok := s.Settings.ReleaseModes[oldName]; ok {
		delete(s.Settings.ReleaseModes, oldName)
		s.Settings.ReleaseModes[newName] = mode
	}
	return nil
}

// DeleteGroup removes a group from the registry. Member tiers are never
// deleted: their group map entries are set to nil, sending them back to the
// ungrouped pool. The group's release mode entry is dropped. Deleting an
// unknown group is a no-op.
func (s *Session) DeleteGroup(name string) error {
	if !s.Settings.HasGroup(name) {
		return nil
	}
	groups := s.Settings.TicketGroups[:0]
	for _, g := range s.Settings.TicketGroups {
		if g != name {
			groups = append(groups, g)
		}
	}
	s.Settings.TicketGroups = groups
	for id, g := range s.Settings.TicketGroupMap {
		if g != nil && *g == name {
			s.Settings.TicketGroupMap[id] = nil
		}
	}
	delete(s.Settings.ReleaseModes, name)
	return nil
}

// MoveGroup swaps a group with its immediate neighbor in the given
// direction. Moves past either end of the registry are no-ops.
func (s *Session) MoveGroup(name string, dir Direction) error {
	idx := -1
	for i, g := range s.Settings.TicketGroups {
		if g == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}
	swap := idx - 1
	if dir == DirectionDown {
		swap = idx + 1
	}
	if swap < 0 || swap >= len(s.Settings.TicketGroups) {
		return nil
	}
	gs := s.Settings.TicketGroups
	gs[idx], gs[swap] = gs[swap], gs[idx]
	return nil
}

// SetReleaseMode sets a scope's release mode. Setting "all" removes the
// entry, since absence is the default. Setting "sequential" records the
// entry and synchronously activates any hidden tiers in the scope: a hidden
// tier can never become reachable under gating, so it must surface as a
// normal tier for sequencing to mean anything. A named scope missing from
// the registry is a no-op.
func (s *Session) SetReleaseMode(scope domain.Scope, mode string) error {
	if mode != domain.ReleaseModeAll && mode != domain.ReleaseModeSequential {
		return domain.ErrInvalidReleaseMode
	}
	if scope.IsNamed() && !s.Settings.HasGroup(scope.Name()) {
		return nil
	}
	if mode == domain.ReleaseModeAll {
		delete(s.Settings.ReleaseModes, scope.Key())
		return nil
	}
	s.Settings.ReleaseModes[scope.Key()] = domain.ReleaseModeSequential
	s.activateHiddenTiers(scope)
	return nil
}

// activateHiddenTiers flips every hidden tier in scope to active. Idempotent;
// runs only as part of switching a scope to sequential release.
func (s *Session) activateHiddenTiers(scope domain.Scope) {
	for i := range s.Tiers {
		if s.Settings.ScopeOf(s.Tiers[i].ID) != scope {
			continue
		}
		if s.Tiers[i].Status == domain.TierStatusHidden {
			s.Tiers[i].Status = domain.TierStatusActive
		}
	}
}
