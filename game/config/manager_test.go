package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/wricardo/gridrace/game/engine"
)

func createTestConfigDir(t *testing.T) string {
	return t.TempDir()
}

func createValidConfig() *engine.RaceConfig {
	return &engine.RaceConfig{
		Name:        "Test Config",
		Description: "Test configuration",
		MaxPlayers:  2,
		Track: []string{
			"#######",
			"#.....#",
			"#.....#",
			"#__...#",
			"#######",
		},
		Players: []engine.PlayerSpec{
			{Type: "Human", Name: "you"},
			{Type: "EasyBot", Name: "eve"},
		},
		Messages: engine.Messages{
			Welcome:     "Welcome!",
			Winner:      "%s wins!",
			InvalidMove: "Can't move!",
			Collision:   "Crash!",
			RoundLimit:  "Too slow!",
		},
	}
}

func writeConfigFile(t *testing.T, dir, name string, config *engine.RaceConfig) {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal config: %v", err)
	}

	filename := name
	if filepath.Ext(filename) == "" {
		filename = name + ".json"
	}

	path := filepath.Join(dir, filename)
	err = os.WriteFile(path, data, 0644)
	if err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
}

const ovalHCL = `
name        = "Oval"
description = "A small oval written in HCL"
max_players = 3
max_rounds  = 40

collision_ends_game = true

track = [
  "########",
  "#......#",
  "#......#",
  "#__....#",
  "########",
]

player "Human" {
  name = "you"
}

player "HardBot" {
  name = "hal"
}

messages {
  welcome = "Welcome to the oval!"
}
`

func writeHCLFile(t *testing.T, dir, name, content string) {
	err := os.WriteFile(filepath.Join(dir, name+".hcl"), []byte(content), 0644)
	if err != nil {
		t.Fatalf("Failed to write HCL file: %v", err)
	}
}

func TestNewManager(t *testing.T) {
	t.Run("valid directory", func(t *testing.T) {
		dir := createTestConfigDir(t)

		// Create default config
		defaultConfig := createValidConfig()
		defaultConfig.Name = "Default"
		writeConfigFile(t, dir, "default", defaultConfig)

		manager, err := NewManager(dir)
		if err != nil {
			t.Fatalf("Failed to create manager: %v", err)
		}
		if manager == nil {
			t.Error("Expected manager to be non-nil")
		}
	})

	t.Run("non-existent directory", func(t *testing.T) {
		_, err := NewManager("/non/existent/path")
		if err == nil {
			t.Error("Expected error for non-existent directory")
		}
	})

	t.Run("missing default config", func(t *testing.T) {
		dir := createTestConfigDir(t)

		manager, err := NewManager(dir)
		if err != nil {
			t.Errorf("NewManager should succeed even without config files, got error: %v", err)
		}

		// Should have created a minimal default config
		if manager == nil {
			t.Fatal("Expected manager to be created")
		}

		defaultConfig := manager.GetDefault()
		if defaultConfig == nil {
			t.Fatal("Expected default config to be available")
		}
		if err := engine.ValidateRaceConfig(defaultConfig); err != nil {
			t.Errorf("Expected minimal config to be valid: %v", err)
		}
	})
}

func TestManager_LoadConfig(t *testing.T) {
	dir := createTestConfigDir(t)

	defaultConfig := createValidConfig()
	defaultConfig.Name = "Default"
	writeConfigFile(t, dir, "default", defaultConfig)

	sprintConfig := createValidConfig()
	sprintConfig.Name = "Sprint"
	sprintConfig.MaxRounds = 20
	writeConfigFile(t, dir, "sprint", sprintConfig)

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	t.Run("load existing config", func(t *testing.T) {
		config, err := manager.LoadConfig("sprint")
		if err != nil {
			t.Fatalf("Failed to load config: %v", err)
		}
		if config.Name != "Sprint" {
			t.Errorf("Expected config name 'Sprint', got '%s'", config.Name)
		}
		if config.MaxRounds != 20 {
			t.Errorf("Expected max rounds 20, got %d", config.MaxRounds)
		}
	})

	t.Run("load with .json extension", func(t *testing.T) {
		config, err := manager.LoadConfig("sprint.json")
		if err != nil {
			t.Fatalf("Failed to load config with extension: %v", err)
		}
		if config.Name != "Sprint" {
			t.Errorf("Expected config name 'Sprint', got '%s'", config.Name)
		}
	})

	t.Run("load from cache", func(t *testing.T) {
		config1, _ := manager.LoadConfig("sprint")

		config2, err := manager.LoadConfig("sprint")
		if err != nil {
			t.Fatalf("Failed to load config from cache: %v", err)
		}

		// Should be the same pointer (cached)
		if config1 != config2 {
			t.Error("Expected config to be loaded from cache")
		}
	})

	t.Run("load non-existent config", func(t *testing.T) {
		_, err := manager.LoadConfig("non-existent")
		if err != ErrConfigNotFound {
			t.Errorf("Expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("load invalid config", func(t *testing.T) {
		invalidData := []byte(`{"name": ""}`) // Missing required fields
		err := os.WriteFile(filepath.Join(dir, "invalid.json"), invalidData, 0644)
		if err != nil {
			t.Fatalf("Failed to write invalid config: %v", err)
		}

		_, err = manager.LoadConfig("invalid")
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("Expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("load malformed JSON", func(t *testing.T) {
		malformedData := []byte(`{"name": "Malformed", invalid json}`)
		err := os.WriteFile(filepath.Join(dir, "malformed.json"), malformedData, 0644)
		if err != nil {
			t.Fatalf("Failed to write malformed config: %v", err)
		}

		_, err = manager.LoadConfig("malformed")
		if err == nil {
			t.Error("Expected error for malformed JSON")
		}
	})

	t.Run("missing messages fall back to defaults", func(t *testing.T) {
		config := createValidConfig()
		config.Name = "Quiet"
		config.Messages = engine.Messages{}
		writeConfigFile(t, dir, "quiet", config)

		loaded, err := manager.LoadConfig("quiet")
		if err != nil {
			t.Fatalf("Failed to load config: %v", err)
		}
		if !strings.Contains(loaded.Messages.Winner, "%s") {
			t.Errorf("Expected default winner message, got %q", loaded.Messages.Winner)
		}
	})
}

func TestManager_LoadConfigStaysInDirectory(t *testing.T) {
	parent := t.TempDir()
	dir := filepath.Join(parent, "configs")
	if err := os.Mkdir(dir, 0755); err != nil {
		t.Fatalf("Failed to create config dir: %v", err)
	}
	outside := createValidConfig()
	outside.Name = "Outside"
	writeConfigFile(t, parent, "outside", outside)

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	for _, name := range []string{"../outside", "../outside.json", `..\outside`, "sub/outside", ".."} {
		t.Run(name, func(t *testing.T) {
			config, err := manager.LoadConfig(name)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
			if config != nil {
				t.Errorf("Expected no config, got %q", config.Name)
			}
		})
	}
}

func TestManager_LoadHCLConfig(t *testing.T) {
	dir := createTestConfigDir(t)
	writeHCLFile(t, dir, "oval", ovalHCL)

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	config, err := manager.LoadConfig("oval")
	if err != nil {
		t.Fatalf("Failed to load HCL config: %v", err)
	}

	if config.Name != "Oval" || config.MaxPlayers != 3 || config.MaxRounds != 40 {
		t.Errorf("Unexpected header fields: %+v", config)
	}
	if !config.CollisionEndsGame {
		t.Error("Expected collision_ends_game to be true")
	}
	if len(config.Track) != 5 || config.Track[3] != "#__....#" {
		t.Errorf("Unexpected track: %v", config.Track)
	}
	if len(config.Players) != 2 || config.Players[1].Type != "HardBot" || config.Players[1].Name != "hal" {
		t.Errorf("Unexpected players: %+v", config.Players)
	}
	if config.Messages.Welcome != "Welcome to the oval!" {
		t.Errorf("Expected welcome from HCL, got %q", config.Messages.Welcome)
	}
	if config.Messages.Winner == "" {
		t.Error("Expected default winner message for HCL config")
	}

	// the only config becomes the default
	if manager.GetDefault().Name != "Oval" {
		t.Errorf("Expected Oval as default, got %s", manager.GetDefault().Name)
	}
}

func TestManager_LoadHCLConfig_Errors(t *testing.T) {
	dir := createTestConfigDir(t)
	writeHCLFile(t, dir, "broken", `name = "Broken"
track = [`)
	writeHCLFile(t, dir, "numbers", `
name        = "Numbers"
description = "Track rows are not strings"
max_players = 1
track       = [1, 2, 3]
player "Human" {
  name = "you"
}
`)
	writeHCLFile(t, dir, "scalar", `
name        = "Scalar"
description = "Track is a single string"
max_players = 1
track       = "#####"
player "Human" {
  name = "you"
}
`)

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	if _, err := manager.LoadConfig("broken"); err == nil {
		t.Error("Expected parse error for broken HCL")
	}
	if _, err := manager.LoadConfig("numbers"); err == nil {
		t.Error("Expected error for numeric track rows")
	}
	if _, err := manager.LoadConfig("scalar"); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig for scalar track, got %v", err)
	}
}

func TestManager_GetDefault(t *testing.T) {
	dir := createTestConfigDir(t)

	other := createValidConfig()
	other.Name = "Another"
	writeConfigFile(t, dir, "another", other)

	classic := createValidConfig()
	classic.Name = "Classic Config"
	writeConfigFile(t, dir, DefaultConfigName, classic)

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	config := manager.GetDefault()
	if config == nil {
		t.Fatal("Expected default config to be non-nil")
	}
	if config.Name != "Classic Config" {
		t.Errorf("Expected default config name 'Classic Config', got '%s'", config.Name)
	}

	if err := manager.SetDefault("another"); err != nil {
		t.Fatalf("Failed to set default: %v", err)
	}
	if manager.GetDefault().Name != "Another" {
		t.Errorf("Expected default to switch to 'Another', got '%s'", manager.GetDefault().Name)
	}
}

func TestManager_ListConfigs(t *testing.T) {
	dir := createTestConfigDir(t)

	configs := []struct {
		filename string
		name     string
	}{
		{"default", "Default"},
		{"sprint", "Sprint"},
		{"maze", "Maze"},
	}

	for _, cfg := range configs {
		config := createValidConfig()
		config.Name = cfg.name
		writeConfigFile(t, dir, cfg.filename, config)
	}
	writeHCLFile(t, dir, "oval", ovalHCL)

	// A same-named HCL file is shadowed by the JSON one
	writeHCLFile(t, dir, "sprint", ovalHCL)

	// Also add a non-config file that should be ignored
	os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("readme"), 0644)

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	configList, err := manager.ListConfigs()
	if err != nil {
		t.Fatalf("Failed to list configs: %v", err)
	}
	if len(configList) != 4 {
		t.Fatalf("Expected 4 configs, got %d", len(configList))
	}

	byID := make(map[string]string)
	for _, info := range configList {
		byID[info.ConfigID] = info.Format
	}
	expected := map[string]string{"default": "json", "sprint": "json", "maze": "json", "oval": "hcl"}
	for id, format := range expected {
		if byID[id] != format {
			t.Errorf("Config '%s': expected format %q, got %q", id, format, byID[id])
		}
	}
	if configList[0].ConfigID != "default" {
		t.Errorf("Expected configs sorted by id, got %s first", configList[0].ConfigID)
	}
}

func TestManager_SaveConfig(t *testing.T) {
	dir := createTestConfigDir(t)

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	config := createValidConfig()
	config.Name = "Saved"
	if err := manager.SaveConfig("saved", config); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "saved.json")); err != nil {
		t.Errorf("Expected saved.json on disk: %v", err)
	}

	loaded, err := LoadFile(filepath.Join(dir, "saved.json"))
	if err != nil {
		t.Fatalf("Failed to load saved file: %v", err)
	}
	if loaded.Name != "Saved" {
		t.Errorf("Expected saved name, got %s", loaded.Name)
	}

	invalid := createValidConfig()
	invalid.Name = ""
	if err := manager.SaveConfig("invalid", invalid); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
	if err := manager.SaveConfig("../escape", config); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig for path name, got %v", err)
	}
}

func TestManager_ReloadConfig(t *testing.T) {
	dir := createTestConfigDir(t)

	config := createValidConfig()
	config.Name = "Changeable"
	config.MaxRounds = 10
	writeConfigFile(t, dir, "default", config)
	writeConfigFile(t, dir, "changeable", config)

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	loaded, _ := manager.LoadConfig("changeable")
	if loaded.MaxRounds != 10 {
		t.Errorf("Expected initial max rounds 10, got %d", loaded.MaxRounds)
	}

	config.MaxRounds = 20
	writeConfigFile(t, dir, "changeable", config)

	if err := manager.RefreshCache(); err != nil {
		t.Fatalf("Failed to refresh cache: %v", err)
	}

	reloaded, _ := manager.LoadConfig("changeable")
	if reloaded.MaxRounds != 20 {
		t.Errorf("Expected reloaded max rounds 20, got %d", reloaded.MaxRounds)
	}
}

func TestManager_ConcurrentAccess(t *testing.T) {
	dir := createTestConfigDir(t)

	writeConfigFile(t, dir, "default", createValidConfig())

	for i := 1; i <= 5; i++ {
		config := createValidConfig()
		config.Name = "Config" + string(rune('0'+i))
		writeConfigFile(t, dir, "config"+string(rune('0'+i)), config)
	}

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 50)

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			configName := "config" + string(rune('0'+((id%5)+1)))
			if _, err := manager.LoadConfig(configName); err != nil {
				errs <- err
			}
		}(i)
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("Unexpected error during concurrent access: %v", err)
	}

	if manager.Count() < 5 {
		t.Errorf("Expected at least 5 configs in cache, got %d", manager.Count())
	}
}

func TestManager_CachingBehavior(t *testing.T) {
	dir := createTestConfigDir(t)

	writeConfigFile(t, dir, "default", createValidConfig())

	testConfig := createValidConfig()
	testConfig.Name = "Test"
	writeConfigFile(t, dir, "test", testConfig)

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	for i := 0; i < 10; i++ {
		config, err := manager.LoadConfig("test")
		if err != nil {
			t.Fatalf("Failed to load config on iteration %d: %v", i, err)
		}
		if config.Name != "Test" {
			t.Errorf("Unexpected config name on iteration %d", i)
		}
	}

	// Both "default" (or first available) and "test" are cached
	if manager.Count() != 2 {
		t.Errorf("Expected 2 configs in cache, got %d", manager.Count())
	}
}

// Count is a test-only helper reporting the cache size
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.configs)
}
