package model

import (
	"errors"
	"fmt"
	"testing"
)

func TestDefaultAppConfigMatchesDefaultSettings(t *testing.T) {
	cfg := DefaultAppConfig()
	defaults := DefaultSettings()

	if cfg.DefaultMethod != defaults.Method {
		t.Errorf("Method mismatch: config=%s settings=%s", cfg.DefaultMethod, defaults.Method)
	}
	if cfg.DefaultMaxSteps != defaults.MaxSteps {
		t.Errorf("MaxSteps mismatch: config=%d settings=%d", cfg.DefaultMaxSteps, defaults.MaxSteps)
	}
	if cfg.DefaultDropInvalid != defaults.DropInvalid {
		t.Errorf("DropInvalid mismatch: config=%v settings=%v", cfg.DefaultDropInvalid, defaults.DropInvalid)
	}
	if cfg.Knife.Profile != "Generic" {
		t.Errorf("expected default knife profile Generic, got %s", cfg.Knife.Profile)
	}
	if cfg.RecentInputs == nil {
		t.Error("RecentInputs should not be nil")
	}
}

func TestApplyToSettings(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.DefaultMethod = MethodPointExpand
	cfg.DefaultMaxSteps = 42
	cfg.DefaultDropInvalid = true

	s := DefaultSettings()
	cfg.ApplyToSettings(&s)

	if s.Method != MethodPointExpand {
		t.Errorf("expected Method=point-expand, got %s", s.Method)
	}
	if s.MaxSteps != 42 {
		t.Errorf("expected MaxSteps=42, got %d", s.MaxSteps)
	}
	if !s.DropInvalid {
		t.Error("expected DropInvalid=true")
	}
}

func TestApplyToSettingsKeepsMethodWhenUnset(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.DefaultMethod = ""

	s := DefaultSettings()
	cfg.ApplyToSettings(&s)

	if s.Method != MethodCut {
		t.Errorf("expected Method=cut, got %s", s.Method)
	}
}

func TestAddRecentInput(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.AddRecentInput("a.in")
	cfg.AddRecentInput("b.in")
	cfg.AddRecentInput("a.in")

	if len(cfg.RecentInputs) != 2 {
		t.Fatalf("expected 2 recent inputs, got %d", len(cfg.RecentInputs))
	}
	if cfg.RecentInputs[0] != "a.in" || cfg.RecentInputs[1] != "b.in" {
		t.Errorf("unexpected order: %v", cfg.RecentInputs)
	}

	for i := 0; i < MaxRecentInputs+5; i++ {
		cfg.AddRecentInput(fmt.Sprintf("f%d.in", i))
	}
	if len(cfg.RecentInputs) != MaxRecentInputs {
		t.Errorf("expected list capped at %d, got %d", MaxRecentInputs, len(cfg.RecentInputs))
	}
}

func TestKnifeSettingsValidate(t *testing.T) {
	if err := DefaultKnifeSettings().Validate(); err != nil {
		t.Fatalf("default knife settings should be valid: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(k *KnifeSettings)
	}{
		{"zero cut depth", func(k *KnifeSettings) { k.CutDepth = 0 }},
		{"negative cut depth", func(k *KnifeSettings) { k.CutDepth = -3 }},
		{"zero cell size", func(k *KnifeSettings) { k.CellSize = 0 }},
		{"zero feed rate", func(k *KnifeSettings) { k.FeedRate = 0 }},
		{"zero plunge rate", func(k *KnifeSettings) { k.PlungeRate = 0 }},
		{"negative safe z", func(k *KnifeSettings) { k.SafeZ = -0.5 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := DefaultKnifeSettings()
			tt.mutate(&k)
			if err := k.Validate(); !errors.Is(err, ErrInvalidKnife) {
				t.Errorf("expected ErrInvalidKnife, got %v", err)
			}
		})
	}

	k := DefaultKnifeSettings()
	k.SafeZ = 0
	if err := k.Validate(); err != nil {
		t.Errorf("a retract height at the surface is allowed: %v", err)
	}
}
