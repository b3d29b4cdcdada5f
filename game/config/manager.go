package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/spf13/viper"

	"github.com/wricardo/strike-tactics/game/engine"
	"github.com/wricardo/strike-tactics/game/service"
)

var (
	ErrScenarioNotFound = errors.New("scenario not found")
	ErrInvalidScenario  = errors.New("invalid scenario")
)

// DefaultScenarioID is loaded as the default when present
const DefaultScenarioID = "skirmish"

// Extensions lists the scenario file formats, in lookup order
var Extensions = []string{".json", ".yaml", ".yml"}

// Manager handles scenario loading and caching
type Manager struct {
	configDir       string
	defaultScenario *engine.Scenario
	scenarios       map[string]*engine.Scenario
	mu              sync.RWMutex
}

// NewManager creates a new scenario manager
func NewManager(configDir string) (*Manager, error) {
	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("config directory does not exist: %s", configDir)
	}

	m := &Manager{
		configDir: configDir,
		scenarios: make(map[string]*engine.Scenario),
	}

	if err := m.loadDefaultScenario(); err != nil {
		return nil, fmt.Errorf("failed to load default scenario: %w", err)
	}

	return m, nil
}

// Dir returns the directory scenarios are read from
func (m *Manager) Dir() string {
	return m.configDir
}

// LoadScenario loads a scenario by ID (file name with or without extension)
func (m *Manager) LoadScenario(name string) (*engine.Scenario, error) {
	id := scenarioID(name)

	m.mu.RLock()
	if s, exists := m.scenarios[id]; exists {
		m.mu.RUnlock()
		return s, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	if s, exists := m.scenarios[id]; exists {
		return s, nil
	}

	path, err := m.locate(name)
	if err != nil {
		return nil, err
	}

	s, err := ReadScenario(path)
	if err != nil {
		return nil, err
	}

	m.scenarios[id] = s
	return s, nil
}

// ReadScenario reads and validates a single scenario file. The file name
// without extension is used when the scenario has no name.
func ReadScenario(path string) (*engine.Scenario, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var s engine.Scenario
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	if s.Name == "" {
		s.Name = scenarioID(filepath.Base(path))
	}

	if err := engine.ValidateScenario(&s); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidScenario, filepath.Base(path), err)
	}

	return &s, nil
}

// ListScenarios returns information about all valid scenario files
func (m *Manager) ListScenarios() ([]*service.ScenarioInfo, error) {
	entries, err := os.ReadDir(m.configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read config directory: %w", err)
	}

	var scenarios []*service.ScenarioInfo
	seen := make(map[string]bool)

	for _, entry := range entries {
		if entry.IsDir() || !hasScenarioExt(entry.Name()) {
			continue
		}

		id := scenarioID(entry.Name())
		if seen[id] {
			continue
		}

		s, err := m.LoadScenario(entry.Name())
		if err != nil {
			// Skip invalid scenarios
			continue
		}
		seen[id] = true

		scenarios = append(scenarios, service.NewScenarioInfo(id, entry.Name(), s))
	}

	sort.Slice(scenarios, func(i, j int) bool {
		return scenarios[i].ScenarioID < scenarios[j].ScenarioID
	})

	return scenarios, nil
}

// GetDefault returns the default scenario
func (m *Manager) GetDefault() *engine.Scenario {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultScenario
}

// SetDefault sets the default scenario by ID
func (m *Manager) SetDefault(name string) error {
	s, err := m.LoadScenario(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultScenario = s
	return nil
}

// RefreshCache drops all cached scenarios and reloads the default
func (m *Manager) RefreshCache() error {
	m.mu.Lock()
	m.scenarios = make(map[string]*engine.Scenario)
	m.mu.Unlock()

	return m.loadDefaultScenario()
}

// SaveScenario validates a scenario and writes it to the config directory.
// The format follows the extension of name and defaults to JSON.
func (m *Manager) SaveScenario(name string, s *engine.Scenario) error {
	if err := engine.ValidateScenario(s); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}

	filename := name
	if !hasScenarioExt(filename) {
		filename = name + ".json"
	}

	// viper writes maps; reuse the json tags for the keys
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal scenario: %w", err)
	}
	var values map[string]interface{}
	if err := json.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("failed to marshal scenario: %w", err)
	}

	v := viper.New()
	if err := v.MergeConfigMap(values); err != nil {
		return fmt.Errorf("failed to marshal scenario: %w", err)
	}
	if err := v.WriteConfigAs(filepath.Join(m.configDir, filename)); err != nil {
		return fmt.Errorf("failed to write scenario file: %w", err)
	}

	m.mu.Lock()
	m.scenarios[scenarioID(filename)] = s
	m.mu.Unlock()

	return nil
}

// loadDefaultScenario loads the default scenario
func (m *Manager) loadDefaultScenario() error {
	s, err := m.LoadScenario(DefaultScenarioID)
	if err != nil {
		// Try the first available scenario
		scenarios, listErr := m.ListScenarios()
		if listErr != nil || len(scenarios) == 0 {
			m.setDefault(engine.DefaultScenario())
			return nil
		}

		s, err = m.LoadScenario(scenarios[0].Filename)
		if err != nil {
			m.setDefault(engine.DefaultScenario())
			return nil
		}
	}

	m.setDefault(s)
	return nil
}

func (m *Manager) setDefault(s *engine.Scenario) {
	m.mu.Lock()
	m.defaultScenario = s
	m.mu.Unlock()
}

// locate finds the file for a scenario ID. Callers hold the write lock.
func (m *Manager) locate(name string) (string, error) {
	if hasScenarioExt(name) {
		path := filepath.Join(m.configDir, name)
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("%w: %s", ErrScenarioNotFound, name)
		}
		return path, nil
	}

	for _, ext := range Extensions {
		path := filepath.Join(m.configDir, name+ext)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrScenarioNotFound, name)
}

func hasScenarioExt(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// scenarioID strips a known extension from a file name
func scenarioID(name string) string {
	if hasScenarioExt(name) {
		return strings.TrimSuffix(name, filepath.Ext(name))
	}
	return name
}
