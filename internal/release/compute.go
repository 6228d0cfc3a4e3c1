package release

import (
	"sort"

	"github.com/feralclo/release-engine/internal/domain"
)

// ComputeWaiting derives, for every tier, whether it is currently gated
// behind a predecessor in a sequential-release scope. The result maps tier
// id -> the name of the tier it is waiting on; tiers absent from the map are
// eligible. The function is pure: it never mutates tier status and never
// errors; malformed input (a group map entry pointing at a group missing
// from the registry) degrades to "not sequential" for that tier.
func ComputeWaiting(tiers []domain.Tier, settings *domain.Settings) map[string]string {
	waiting := make(map[string]string)
	if settings == nil || len(tiers) == 0 {
		return waiting
	}
	for _, scope := range sequentialScopes(settings) {
		members := membersOf(tiers, settings, scope)
		sort.SliceStable(members, func(i, j int) bool {
			return members[i].SortOrder < members[j].SortOrder
		})
		// The first tier of a scope never waits. Each later tier waits on
		// its predecessor until the predecessor has genuinely sold through
		// its capacity; the operator-set status field plays no part, since
		// archived or manually sold_out tiers still hold their place in the
		// sequence.
		for i := 1; i < len(members); i++ {
			prev := members[i-1]
			if !prev.SoldOut() {
				waiting[members[i].ID] = prev.Name
			}
		}
	}
	return waiting
}

// sequentialScopes returns the scopes whose release mode is sequential:
// registry groups plus, when flagged, the ungrouped pool. Mode entries for
// names no longer in the registry are ignored.
func sequentialScopes(settings *domain.Settings) []domain.Scope {
	var scopes []domain.Scope
	for _, name := range settings.TicketGroups {
		if settings.Mode(domain.GroupScope(name)) == domain.ReleaseModeSequential {
			scopes = append(scopes, domain.GroupScope(name))
		}
	}
	if settings.Mode(domain.Ungrouped) == domain.ReleaseModeSequential {
		scopes = append(scopes, domain.Ungrouped)
	}
	return scopes
}

// membersOf selects the tiers assigned to scope. Unassigned tiers fall into
// the ungrouped pool.
func membersOf(tiers []domain.Tier, settings *domain.Settings, scope domain.Scope) []domain.Tier {
	var members []domain.Tier
	for _, t := range tiers {
		if settings.ScopeOf(t.ID) == scope {
			members = append(members, t)
		}
	}
	return members
}
