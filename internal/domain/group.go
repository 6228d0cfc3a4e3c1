package domain

// ReleaseMode constants. Absence of a release-mode entry for a scope means
// ReleaseModeAll.
const (
	ReleaseModeAll        = "all"
	ReleaseModeSequential = "sequential"
)

// ungroupedKey is the storage/wire key for the ungrouped pool. It is never a
// selectable group name; CreateGroup rejects it.
const ungroupedKey = "ungrouped"

// Scope identifies a release scope: a named group or the ungrouped pool.
// It exists so that the ungrouped pool is a distinct value rather than a
// magic string an operator-chosen group name could collide with.
type Scope struct {
	name  string
	named bool
}

// Ungrouped is the scope of tiers with no group assignment.
var Ungrouped = Scope{}

// GroupScope returns the scope for a named group.
func GroupScope(name string) Scope {
	return Scope{name: name, named: true}
}

// ScopeFromKey parses a storage/wire key back into a Scope.
func ScopeFromKey(key string) Scope {
	if key == ungroupedKey {
		return Ungrouped
	}
	return GroupScope(key)
}

// IsNamed reports whether the scope is a named group.
func (s Scope) IsNamed() bool { return s.named }

// Name returns the group name; empty for the ungrouped pool.
func (s Scope) Name() string { return s.name }

// Key returns the storage/wire key for the scope.
func (s Scope) Key() string {
	if !s.named {
		return ungroupedKey
	}
	return s.name
}

// ReservedScopeKey reports whether name collides with the ungrouped pool key.
func ReservedScopeKey(name string) bool { return name == ungroupedKey }

// Settings is the per-event release settings bundle exchanged with the
// persistence layer. Wire keys match the stored structures exactly.
type Settings struct {
	// TicketGroups is the group registry in display/evaluation order.
	TicketGroups []string `json:"ticket_groups"`
	// TicketGroupMap assigns tier id -> group name; nil means ungrouped.
	TicketGroupMap map[string]*string `json:"ticket_group_map"`
	// ReleaseModes holds scope key -> "sequential"; absence means "all".
	ReleaseModes map[string]string `json:"ticket_group_release_mode"`
}

// NewSettings returns an empty settings bundle with allocated maps.
func NewSettings() *Settings {
	return &Settings{
		TicketGroups:   []string{},
		TicketGroupMap: map[string]*string{},
		ReleaseModes:   map[string]string{},
	}
}

// Clone returns a deep copy of the settings bundle.
func (s *Settings) Clone() *Settings {
	out := &Settings{
		TicketGroups:   make([]string, len(s.TicketGroups)),
		TicketGroupMap: make(map[string]*string, len(s.TicketGroupMap)),
		ReleaseModes:   make(map[string]string, len(s.ReleaseModes)),
	}
	copy(out.TicketGroups, s.TicketGroups)
	for id, name := range s.TicketGroupMap {
		if name == nil {
			out.TicketGroupMap[id] = nil
			continue
		}
		n := *name
		out.TicketGroupMap[id] = &n
	}
	for key, mode := range s.ReleaseModes {
		out.ReleaseModes[key] = mode
	}
	return out
}

// HasGroup reports whether name is in the group registry.
func (s *Settings) HasGroup(name string) bool {
	for _, g := range s.TicketGroups {
		if g == name {
			return true
		}
	}
	return false
}

// Mode returns the release mode for a scope, defaulting to ReleaseModeAll.
func (s *Settings) Mode(scope Scope) string {
	if s.ReleaseModes[scope.Key()] == ReleaseModeSequential {
		return ReleaseModeSequential
	}
	return ReleaseModeAll
}

// ScopeOf resolves the scope a tier belongs to. Unassigned tiers and entries
// explicitly set to nil both resolve to the ungrouped pool. An entry pointing
// at a group missing from the registry resolves to a named scope regardless;
// the release computer treats such dangling scopes as non-sequential.
func (s *Settings) ScopeOf(tierID string) Scope {
	name, ok := s.TicketGroupMap[tierID]
	if !ok || name == nil {
		return Ungrouped
	}
	return GroupScope(*name)
}
