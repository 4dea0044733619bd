package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var fromYAML CricketConfig
	if err := yaml.Unmarshal(GetDefaultYAML("cricket"), &fromYAML); err != nil {
		t.Fatalf("embedded yaml does not parse: %v", err)
	}

	if fromYAML != DefaultCricketConfig() {
		t.Errorf("embedded defaults drifted from DefaultCricketConfig():\nyaml: %+v\ncode: %+v", fromYAML, DefaultCricketConfig())
	}
}

func TestLoadCricketCustomPathPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cricket.yaml")
	data := []byte("match:\n  attempts: 3\njudge:\n  hit_threshold: 0.3\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadCricket(path)
	if err != nil {
		t.Fatalf("LoadCricket() failed: %v", err)
	}

	if cfg.Match.Attempts != 3 {
		t.Errorf("Attempts = %d, expected 3", cfg.Match.Attempts)
	}
	if cfg.Judge.HitThreshold != 0.3 {
		t.Errorf("HitThreshold = %f, expected 0.3", cfg.Judge.HitThreshold)
	}
	// Untouched keys keep their defaults
	if cfg.Judge.BaseWindow != 80 || cfg.Pitch.ContactY != 660 {
		t.Errorf("partial file should inherit defaults, got %+v", cfg.Judge)
	}
}

func TestLoadCricketMissingCustomPath(t *testing.T) {
	_, err := LoadCricket(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing custom config")
	}
}

func TestLoadCricketBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("match: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadCricket(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidateRepairsValues(t *testing.T) {
	cfg := DefaultCricketConfig()
	cfg.Match.Attempts = 0
	cfg.Match.CooldownMinMs = 500
	cfg.Match.CooldownMaxMs = 100
	cfg.Match.HighScoreKey = ""
	cfg.Judge.BaseWindow = -5
	cfg.Pitch.PassY = cfg.Pitch.ContactY

	got := cfg.Validate()

	if got.Match.Attempts != 1 {
		t.Errorf("Attempts = %d, expected 1", got.Match.Attempts)
	}
	if got.Match.CooldownMaxMs != 500 {
		t.Errorf("CooldownMaxMs = %d, expected 500", got.Match.CooldownMaxMs)
	}
	if got.Match.HighScoreKey != "tapcricket_highscore" {
		t.Errorf("HighScoreKey = %q", got.Match.HighScoreKey)
	}
	if got.Judge.BaseWindow <= 0 {
		t.Errorf("BaseWindow should be positive, got %f", got.Judge.BaseWindow)
	}
	if got.Pitch.PassY <= got.Pitch.ContactY {
		t.Error("PassY should lie beyond ContactY")
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in      string
		want    DifficultyPreset
		wantErr bool
	}{
		{"", "", false},
		{"easy", DifficultyEasy, false},
		{" HARD ", DifficultyHard, false},
		{"fixed", DifficultyFixed, false},
		{"insane", "", true},
	}

	for _, tc := range tests {
		got, err := ParsePreset(tc.in)
		if tc.wantErr {
			if !errors.Is(err, ErrUnknownPreset) {
				t.Errorf("ParsePreset(%q) error = %v, expected ErrUnknownPreset", tc.in, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("ParsePreset(%q) = %q, %v", tc.in, got, err)
		}
	}
}

func TestApplyCricketPreset(t *testing.T) {
	cfg := DefaultCricketConfig()
	ApplyCricketPreset(&cfg, DifficultyHard)

	if cfg.Judge.HitThreshold != 0.3 || cfg.Judge.WindowScale >= 0 {
		t.Errorf("hard preset should select the strict judge, got %+v", cfg.Judge)
	}
	if !cfg.Difficulty.Enabled {
		t.Error("hard preset should enable progression")
	}

	cfg = DefaultCricketConfig()
	ApplyCricketPreset(&cfg, DifficultyEasy)
	if cfg.Match.Attempts <= DefaultCricketConfig().Match.Attempts {
		t.Error("easy preset should grant extra attempts")
	}
}

func TestDifficultyManagerPace(t *testing.T) {
	off := NewDifficultyManager(DefaultCricketConfig().Difficulty)
	if got := off.Pace(100, 100); got != 1.0 {
		t.Errorf("disabled Pace() = %f, expected 1.0", got)
	}

	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0,
		Progression:  ProgressionConfig{Type: "score", MaxAt: 20},
		Scaling:      ScalingConfig{SpeedMultiplier: 0.5},
	})

	if got := dm.Level(10, 0); got != 0.5 {
		t.Errorf("Level(10) = %f, expected 0.5", got)
	}
	if got := dm.Level(1000, 0); got != 1.0 {
		t.Errorf("Level should clamp at 1.0, got %f", got)
	}
	if got := dm.Pace(20, 0); got != 1.5 {
		t.Errorf("Pace at max = %f, expected 1.5", got)
	}
}
