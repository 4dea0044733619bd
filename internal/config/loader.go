package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnknownPreset is returned by ParsePreset for unrecognised names.
var ErrUnknownPreset = errors.New("config: unknown difficulty preset")

// LoadCricket loads TapCricket configuration.
// Search order: customPath -> ~/.tapcricket/configs/cricket.yaml -> ./configs/cricket.yaml -> embedded default.
// Files only need to mention the keys they override.
func LoadCricket(customPath string) (CricketConfig, error) {
	cfg, err := load("cricket.yaml", customPath, defaultCricketYAML, DefaultCricketConfig)
	if err != nil {
		return cfg, err
	}
	return cfg.Validate(), nil
}

// LoadPenalty loads penalty shootout configuration with the same search
// order as LoadCricket, using penalty.yaml.
func LoadPenalty(customPath string) (PenaltyConfig, error) {
	cfg, err := load("penalty.yaml", customPath, defaultPenaltyYAML, DefaultPenaltyConfig)
	if err != nil {
		return cfg, err
	}
	return cfg.Validate(), nil
}

// load resolves a config file through the search order, decoding over the
// hardcoded defaults so partial files inherit unspecified values.
func load[T any](filename, customPath string, embedded []byte, defaults func() T) (T, error) {
	// Try custom path first
	if customPath != "" {
		cfg := defaults()
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	candidates := []string{filepath.Join("configs", filename)}
	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		candidates = append([]string{userCfgPath}, candidates...)
	}
	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		cfg := defaults()
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
	}

	cfg := defaults()
	if err := yaml.Unmarshal(embedded, &cfg); err != nil {
		return defaults(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tapcricket", "configs", filename)
}

// ParsePreset converts a CLI value to a DifficultyPreset.
// The empty string means "use the config file as is".
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s))); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPreset, s)
	}
}

// ApplyCricketPreset modifies the config based on a difficulty preset.
//
// hard selects the strict tuning: a higher hit threshold, a window that
// narrows as deliveries get harder, and pace that builds with the score.
func ApplyCricketPreset(cfg *CricketConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Match.Attempts = 7
		cfg.Judge.BaseWindow = 100
		cfg.Difficulty.Enabled = false
	case DifficultyNormal:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
		cfg.Difficulty.Progression.Type = "deliveries"
	case DifficultyHard:
		cfg.Match.Attempts = 3
		cfg.Judge.HitThreshold = 0.3
		cfg.Judge.BaseWindow = 120
		cfg.Judge.WindowScale = -10
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
		cfg.Difficulty.Progression.Type = "score"
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}
