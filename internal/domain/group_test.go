package domain

import "testing"

func TestScope_Keys(t *testing.T) {
	if Ungrouped.IsNamed() {
		t.Error("ungrouped scope must not be named")
	}
	if Ungrouped.Key() != "ungrouped" {
		t.Errorf("unexpected ungrouped key %q", Ungrouped.Key())
	}
	vip := GroupScope("VIP")
	if !vip.IsNamed() || vip.Name() != "VIP" || vip.Key() != "VIP" {
		t.Errorf("unexpected named scope %+v", vip)
	}
	if ScopeFromKey("ungrouped") != Ungrouped {
		t.Error("round trip of ungrouped key failed")
	}
	if ScopeFromKey("VIP") != vip {
		t.Error("round trip of named key failed")
	}
	if !ReservedScopeKey("ungrouped") || ReservedScopeKey("VIP") {
		t.Error("reserved key check is wrong")
	}
}

func TestSettings_ScopeOf(t *testing.T) {
	vip := "VIP"
	s := NewSettings()
	s.TicketGroups = []string{"VIP"}
	s.TicketGroupMap = map[string]*string{"a": &vip, "b": nil}

	if got := s.ScopeOf("a"); got != GroupScope("VIP") {
		t.Errorf("expected VIP scope, got %+v", got)
	}
	if got := s.ScopeOf("b"); got != Ungrouped {
		t.Errorf("explicit nil entry must be ungrouped, got %+v", got)
	}
	if got := s.ScopeOf("missing"); got != Ungrouped {
		t.Errorf("absent entry must be ungrouped, got %+v", got)
	}
}

func TestSettings_Mode(t *testing.T) {
	s := NewSettings()
	s.ReleaseModes["VIP"] = ReleaseModeSequential
	if s.Mode(GroupScope("VIP")) != ReleaseModeSequential {
		t.Error("expected sequential")
	}
	if s.Mode(GroupScope("GA")) != ReleaseModeAll {
		t.Error("absence must default to all")
	}
	s.ReleaseModes["GA"] = "garbage"
	if s.Mode(GroupScope("GA")) != ReleaseModeAll {
		t.Error("unknown mode values must degrade to all")
	}
}

func TestSettings_Clone(t *testing.T) {
	vip := "VIP"
	s := NewSettings()
	s.TicketGroups = []string{"VIP"}
	s.TicketGroupMap = map[string]*string{"a": &vip}
	s.ReleaseModes = map[string]string{"VIP": ReleaseModeSequential}

	c := s.Clone()
	c.TicketGroups[0] = "GA"
	*c.TicketGroupMap["a"] = "GA"
	c.ReleaseModes["VIP"] = ReleaseModeAll

	if s.TicketGroups[0] != "VIP" || *s.TicketGroupMap["a"] != "VIP" || s.ReleaseModes["VIP"] != ReleaseModeSequential {
		t.Error("clone must not share storage with the original")
	}
}
