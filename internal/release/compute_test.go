package release

import (
	"reflect"
	"testing"

	"github.com/feralclo/release-engine/internal/domain"
)

func intp(n int) *int { return &n }

func strp(s string) *string { return &s }

func tier(id, name string, capacity *int, sold, order int) domain.Tier {
	return domain.Tier{
		ID:        id,
		Name:      name,
		Capacity:  capacity,
		Sold:      sold,
		Status:    domain.TierStatusActive,
		SortOrder: order,
	}
}

func settingsWith(groups []string, groupMap map[string]*string, modes map[string]string) *domain.Settings {
	s := domain.NewSettings()
	s.TicketGroups = groups
	if groupMap != nil {
		s.TicketGroupMap = groupMap
	}
	if modes != nil {
		s.ReleaseModes = modes
	}
	return s
}

func TestComputeWaiting_GateOpenWhenPredecessorSoldOut(t *testing.T) {
	tiers := []domain.Tier{
		tier("a", "A", intp(50), 50, 0),
		tier("b", "B", nil, 0, 1),
	}
	settings := settingsWith(
		[]string{"Early Bird"},
		map[string]*string{"a": strp("Early Bird"), "b": strp("Early Bird")},
		map[string]string{"Early Bird": domain.ReleaseModeSequential},
	)

	waiting := ComputeWaiting(tiers, settings)

	if len(waiting) != 0 {
		t.Errorf("expected no waiting tiers, got %v", waiting)
	}
}

func TestComputeWaiting_WaitsOnUnsoldPredecessor(t *testing.T) {
	tiers := []domain.Tier{
		tier("a", "A", intp(50), 10, 0),
		tier("b", "B", nil, 0, 1),
	}
	settings := settingsWith(
		[]string{"Early Bird"},
		map[string]*string{"a": strp("Early Bird"), "b": strp("Early Bird")},
		map[string]string{"Early Bird": domain.ReleaseModeSequential},
	)

	waiting := ComputeWaiting(tiers, settings)

	if got := waiting["b"]; got != "A" {
		t.Errorf("expected tier b waiting on A, got %q", got)
	}
	if _, ok := waiting["a"]; ok {
		t.Error("first tier of a scope must never wait")
	}
}

func TestComputeWaiting_AllModeNeverWaits(t *testing.T) {
	tiers := []domain.Tier{
		tier("a", "A", intp(50), 0, 0),
		tier("b", "B", intp(50), 0, 1),
		tier("c", "C", intp(50), 0, 2),
	}
	settings := settingsWith(
		[]string{"GA"},
		map[string]*string{"a": strp("GA"), "b": strp("GA"), "c": strp("GA")},
		nil,
	)

	if waiting := ComputeWaiting(tiers, settings); len(waiting) != 0 {
		t.Errorf("all-mode scope produced waiting entries: %v", waiting)
	}
}

func TestComputeWaiting_ChainStopsAtFirstUnsoldGate(t *testing.T) {
	tiers := []domain.Tier{
		tier("a", "A", intp(10), 10, 0),
		tier("b", "B", intp(10), 3, 1),
		tier("c", "C", intp(10), 0, 2),
	}
	settings := settingsWith(
		[]string{"Presale"},
		map[string]*string{"a": strp("Presale"), "b": strp("Presale"), "c": strp("Presale")},
		map[string]string{"Presale": domain.ReleaseModeSequential},
	)

	waiting := ComputeWaiting(tiers, settings)

	if _, ok := waiting["b"]; ok {
		t.Error("tier b should be open: its predecessor sold out")
	}
	if got := waiting["c"]; got != "B" {
		t.Errorf("expected tier c waiting on B, got %q", got)
	}
}

func TestComputeWaiting_UngroupedScopeCanBeSequential(t *testing.T) {
	tiers := []domain.Tier{
		tier("a", "A", intp(5), 0, 0),
		tier("b", "B", nil, 0, 1),
	}
	settings := settingsWith(nil, nil, map[string]string{"ungrouped": domain.ReleaseModeSequential})

	waiting := ComputeWaiting(tiers, settings)

	if got := waiting["b"]; got != "A" {
		t.Errorf("expected tier b waiting on A in ungrouped scope, got %q", got)
	}
}

func TestComputeWaiting_StatusDoesNotOpenTheGate(t *testing.T) {
	// The predecessor is marked sold_out by the operator but has real units
	// left; the gate stays closed. An archived predecessor still blocks too.
	tiers := []domain.Tier{
		tier("a", "A", intp(100), 40, 0),
		tier("b", "B", nil, 0, 1),
		tier("c", "C", nil, 0, 2),
	}
	tiers[0].Status = domain.TierStatusSoldOut
	tiers[1].Status = domain.TierStatusArchived
	settings := settingsWith(
		[]string{"G"},
		map[string]*string{"a": strp("G"), "b": strp("G"), "c": strp("G")},
		map[string]string{"G": domain.ReleaseModeSequential},
	)

	waiting := ComputeWaiting(tiers, settings)

	if got := waiting["b"]; got != "A" {
		t.Errorf("manually flagged status must not open the gate, got %q", got)
	}
	if got := waiting["c"]; got != "B" {
		t.Errorf("archived predecessor still holds its place, got %q", got)
	}
}

func TestComputeWaiting_ZeroCapacityNeverOpens(t *testing.T) {
	tiers := []domain.Tier{
		tier("a", "A", intp(0), 0, 0),
		tier("b", "B", nil, 0, 1),
	}
	settings := settingsWith(
		[]string{"G"},
		map[string]*string{"a": strp("G"), "b": strp("G")},
		map[string]string{"G": domain.ReleaseModeSequential},
	)

	if got := ComputeWaiting(tiers, settings)["b"]; got != "A" {
		t.Errorf("zero-capacity predecessor must block, got %q", got)
	}
}

func TestComputeWaiting_UnlimitedPredecessorNeverOpens(t *testing.T) {
	tiers := []domain.Tier{
		tier("a", "A", nil, 9999, 0),
		tier("b", "B", nil, 0, 1),
	}
	settings := settingsWith(
		[]string{"G"},
		map[string]*string{"a": strp("G"), "b": strp("G")},
		map[string]string{"G": domain.ReleaseModeSequential},
	)

	if got := ComputeWaiting(tiers, settings)["b"]; got != "A" {
		t.Errorf("unlimited-capacity predecessor can never sell out, got %q", got)
	}
}

func TestComputeWaiting_SingleTierScopeHasNoEntries(t *testing.T) {
	tiers := []domain.Tier{tier("a", "A", intp(10), 0, 0)}
	settings := settingsWith(
		[]string{"G"},
		map[string]*string{"a": strp("G")},
		map[string]string{"G": domain.ReleaseModeSequential},
	)

	if waiting := ComputeWaiting(tiers, settings); len(waiting) != 0 {
		t.Errorf("scope with one tier produced entries: %v", waiting)
	}
}

func TestComputeWaiting_DanglingGroupEntryDegradesToNotSequential(t *testing.T) {
	tiers := []domain.Tier{
		tier("a", "A", intp(10), 0, 0),
		tier("b", "B", nil, 0, 1),
	}
	// Both tiers point at a group that was deleted from the registry but
	// whose mode entry lingers; they must not be gated.
	settings := settingsWith(
		nil,
		map[string]*string{"a": strp("Gone"), "b": strp("Gone")},
		map[string]string{"Gone": domain.ReleaseModeSequential},
	)

	if waiting := ComputeWaiting(tiers, settings); len(waiting) != 0 {
		t.Errorf("dangling group entries must degrade gracefully, got %v", waiting)
	}
}

func TestComputeWaiting_NilSettings(t *testing.T) {
	tiers := []domain.Tier{tier("a", "A", intp(10), 0, 0)}
	if waiting := ComputeWaiting(tiers, nil); len(waiting) != 0 {
		t.Errorf("nil settings should derive nothing, got %v", waiting)
	}
}

func TestComputeWaiting_Deterministic(t *testing.T) {
	tiers := []domain.Tier{
		tier("a", "A", intp(10), 2, 0),
		tier("b", "B", intp(10), 0, 1),
		tier("c", "C", nil, 0, 2),
	}
	settings := settingsWith(
		[]string{"G"},
		map[string]*string{"a": strp("G"), "b": strp("G"), "c": strp("G")},
		map[string]string{"G": domain.ReleaseModeSequential},
	)

	first := ComputeWaiting(tiers, settings)
	second := ComputeWaiting(tiers, settings)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("recomputation over the same snapshot diverged: %v vs %v", first, second)
	}
}
