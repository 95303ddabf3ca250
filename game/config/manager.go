package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/wricardo/gridrace/game/engine"
	"github.com/wricardo/gridrace/game/service"
)

var (
	ErrConfigNotFound = service.ErrConfigNotFound
	ErrInvalidConfig  = engine.ErrInvalidConfig
)

// DefaultConfigName is loaded as the default race when present
const DefaultConfigName = "classic"

// Supported race definition formats, in lookup order
var extensions = []string{".json", ".hcl"}

// Manager handles race configuration loading and caching
type Manager struct {
	configDir     string
	defaultConfig *engine.RaceConfig
	configs       map[string]*engine.RaceConfig
	mu            sync.RWMutex
}

// NewManager creates a new configuration manager
func NewManager(configDir string) (*Manager, error) {
	// Ensure config directory exists
	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("config directory does not exist: %s", configDir)
	}

	m := &Manager{
		configDir: configDir,
		configs:   make(map[string]*engine.RaceConfig),
	}

	// Load default config
	if err := m.loadDefaultConfig(); err != nil {
		return nil, fmt.Errorf("failed to load default config: %w", err)
	}

	return m, nil
}

// LoadConfig loads a configuration by name. The name may carry a .json or
// .hcl extension; without one both are tried in that order.
func (m *Manager) LoadConfig(name string) (*engine.RaceConfig, error) {
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return nil, fmt.Errorf("%w: invalid config name %q", ErrInvalidConfig, name)
	}
	id := configID(name)

	m.mu.RLock()
	// Check cache first
	if config, exists := m.configs[id]; exists {
		m.mu.RUnlock()
		return config, nil
	}
	m.mu.RUnlock()

	// Load from file
	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if config, exists := m.configs[id]; exists {
		return config, nil
	}

	path, err := m.resolve(name)
	if err != nil {
		return nil, err
	}

	config, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	// Cache the config
	m.configs[id] = config
	return config, nil
}

// resolve finds the file backing a config name
func (m *Manager) resolve(name string) (string, error) {
	if ext := filepath.Ext(name); isSupported(ext) {
		path := filepath.Join(m.configDir, name)
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				return "", ErrConfigNotFound
			}
			return "", fmt.Errorf("failed to read config file: %w", err)
		}
		return path, nil
	}

	for _, ext := range extensions {
		path := filepath.Join(m.configDir, name+ext)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", ErrConfigNotFound
}

// LoadFile reads, decodes and validates a single race definition file
func LoadFile(path string) (*engine.RaceConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config *engine.RaceConfig
	switch filepath.Ext(path) {
	case ".hcl":
		config, err = decodeHCL(data, filepath.Base(path))
	case ".json":
		config = &engine.RaceConfig{}
		if uerr := json.Unmarshal(data, config); uerr != nil {
			err = fmt.Errorf("failed to parse config: %w", uerr)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported config format %q", ErrInvalidConfig, filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}

	config.ApplyDefaults()

	// Validate config
	if err := engine.ValidateRaceConfig(config); err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return config, nil
}

// ListConfigs returns information about all available configurations
func (m *Manager) ListConfigs() ([]*service.ConfigInfo, error) {
	entries, err := os.ReadDir(m.configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read config directory: %w", err)
	}

	var configs []*service.ConfigInfo
	seen := make(map[string]bool)

	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || !isSupported(ext) {
			continue
		}

		// Remove extension for config name; .json wins over .hcl
		name := configID(entry.Name())
		if seen[name] {
			continue
		}
		if path, err := m.resolve(name); err != nil || filepath.Base(path) != entry.Name() {
			continue
		}

		// Try to load the config to get details
		config, err := m.LoadConfig(name)
		if err != nil {
			// Skip invalid configs
			continue
		}
		seen[name] = true

		configs = append(configs, &service.ConfigInfo{
			Filename:    entry.Name(),
			ConfigID:    name, // This is the identifier to use for session creation
			Name:        config.Name,
			Description: config.Description,
			Format:      strings.TrimPrefix(ext, "."),
			Rows:        len(config.Track),
			Columns:     len(config.Track[0]),
			MaxPlayers:  config.MaxPlayers,
			Racers:      len(config.Players),
		})
	}

	sort.Slice(configs, func(i, j int) bool {
		return configs[i].ConfigID < configs[j].ConfigID
	})
	return configs, nil
}

// GetDefault returns the default configuration
func (m *Manager) GetDefault() *engine.RaceConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultConfig
}

// SetDefault sets the default configuration by name
func (m *Manager) SetDefault(name string) error {
	config, err := m.LoadConfig(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultConfig = config
	return nil
}

// RefreshCache reloads all cached configurations from disk
func (m *Manager) RefreshCache() error {
	m.mu.Lock()
	// Clear cache
	m.configs = make(map[string]*engine.RaceConfig)
	m.mu.Unlock()

	// Reload default config
	return m.loadDefaultConfig()
}

// loadDefaultConfig loads the default configuration
func (m *Manager) loadDefaultConfig() error {
	config, err := m.LoadConfig(DefaultConfigName)
	if err != nil {
		// Try to load the first available config
		configs, listErr := m.ListConfigs()
		if listErr != nil || len(configs) == 0 {
			config = m.createMinimalConfig()
		} else if config, err = m.LoadConfig(configs[0].ConfigID); err != nil {
			config = m.createMinimalConfig()
		}
	}

	m.mu.Lock()
	m.defaultConfig = config
	m.mu.Unlock()
	return nil
}

// SaveConfig saves a configuration to disk as JSON
func (m *Manager) SaveConfig(name string, config *engine.RaceConfig) error {
	// Validate config before saving
	if err := engine.ValidateRaceConfig(config); err != nil {
		return err
	}

	id := configID(name)
	if id == "" || strings.ContainsAny(id, `/\`) {
		return fmt.Errorf("%w: invalid config name %q", ErrInvalidConfig, name)
	}

	configPath := filepath.Join(m.configDir, id+".json")

	// Marshal config to JSON with indentation
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write to file
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	// Update cache
	m.mu.Lock()
	m.configs[id] = config
	m.mu.Unlock()

	return nil
}

// createMinimalConfig creates a minimal valid configuration
func (m *Manager) createMinimalConfig() *engine.RaceConfig {
	config := engine.DefaultRaceConfig()
	config.Name = "default"
	config.Description = "Default minimal configuration"
	return config
}

func configID(name string) string {
	ext := filepath.Ext(name)
	if isSupported(ext) {
		return strings.TrimSuffix(name, ext)
	}
	return name
}

func isSupported(ext string) bool {
	for _, e := range extensions {
		if ext == e {
			return true
		}
	}
	return false
}
