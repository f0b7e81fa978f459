package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/slicecut/internal/model"
)

func TestSaveAndLoadCustomProfiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles", "profiles.json")

	profiles := []model.GCodeProfile{
		{
			Name:          "Dragknife",
			Description:   "Vinyl cutter style knife",
			StartCode:     []string{"G90", "G21"},
			RapidMove:     "G0",
			FeedMove:      "G1",
			EndCode:       []string{"G0 Z[SafeZ]", "M2"},
			CommentPrefix: ";",
			DecimalPlaces: 2,
		},
		{
			Name:          "Grbl",
			Description:   "Override of the built-in Grbl profile",
			StartCode:     []string{"G90", "G21", "G17", "G94"},
			RapidMove:     "G0",
			FeedMove:      "G1",
			EndCode:       []string{"M2"},
			CommentPrefix: "(",
			CommentSuffix: ")",
			DecimalPlaces: 1,
		},
	}

	if err := SaveCustomProfiles(path, profiles); err != nil {
		t.Fatalf("SaveCustomProfiles: %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("profiles file was not created")
	}

	loaded, err := LoadCustomProfiles(path)
	if err != nil {
		t.Fatalf("LoadCustomProfiles: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("expected 2 profiles, got %d", len(loaded))
	}
	if loaded[0].Name != "Dragknife" || loaded[0].DecimalPlaces != 2 {
		t.Errorf("unexpected first profile: %+v", loaded[0])
	}
	if loaded[1].CommentSuffix != ")" {
		t.Errorf("expected comment suffix ')', got %q", loaded[1].CommentSuffix)
	}
}

func TestLoadCustomProfiles_MissingFile(t *testing.T) {
	profiles, err := LoadCustomProfiles(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if profiles == nil || len(profiles) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", profiles)
	}
}

func TestLoadCustomProfiles_InvalidContent(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadCustomProfiles(bad); err == nil {
		t.Error("expected error for malformed JSON")
	}

	unnamed := filepath.Join(dir, "unnamed.json")
	if err := os.WriteFile(unnamed, []byte(`[{"name":"A"},{"description":"no name"}]`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadCustomProfiles(unnamed); err == nil {
		t.Error("expected error for a profile without a name")
	}
}

func TestResolveProfile(t *testing.T) {
	custom := []model.GCodeProfile{{Name: "Grbl", DecimalPlaces: 1}, {Name: "Dragknife"}}

	if p := ResolveProfile(custom, "Grbl"); p.DecimalPlaces != 1 {
		t.Errorf("expected the custom Grbl profile to win, got %+v", p)
	}
	if p := ResolveProfile(custom, "Dragknife"); p.Name != "Dragknife" {
		t.Errorf("expected Dragknife, got %q", p.Name)
	}
	if p := ResolveProfile(custom, "Fanuc"); p.CommentPrefix != "(" {
		t.Errorf("expected the built-in Fanuc profile, got %+v", p)
	}
	if p := ResolveProfile(nil, "Unknown"); p.Name != "Generic" {
		t.Errorf("expected Generic fallback, got %q", p.Name)
	}
}
