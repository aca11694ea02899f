package presets

import (
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/Ossianbb/WorkoutTimer/internal/workout"
)

// Preset is a named, saved workout configuration
type Preset struct {
	ID     string                `yaml:"id"`
	Name   string                `yaml:"name"`
	Config workout.WorkoutConfig `yaml:"config"`
}

type storeData struct {
	Presets map[string]Preset `yaml:"presets"`
}

// Store keeps named presets in a single YAML file. A missing or unreadable
// file reads as an empty store, never an error: presets are a convenience, not
// a source of truth.
type Store struct {
	filePath string
	data     storeData
	logger   *log.Logger
}

// NewStore loads the preset file at filePath, creating the store empty when
// the file is absent or malformed
func NewStore(filePath string, logger *log.Logger) *Store {
	if logger == nil {
		panic("Store: logger cannot be nil")
	}
	s := &Store{
		filePath: filePath,
		logger:   logger,
	}
	s.load()
	return s
}

// List returns all presets sorted by name
func (s *Store) List() []Preset {
	result := make([]Preset, 0, len(s.data.Presets))
	for _, p := range s.data.Presets {
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		return result[i].ID < result[j].ID
	})
	return result
}

// Get returns the preset with the given id
func (s *Store) Get(id string) (Preset, bool) {
	p, ok := s.data.Presets[id]
	return p, ok
}

// Save stores cfg under a freshly generated id and persists the file
func (s *Store) Save(name string, cfg workout.WorkoutConfig) Preset {
	p := Preset{
		ID:     uuid.NewString(),
		Name:   name,
		Config: cfg,
	}
	s.data.Presets[p.ID] = p
	s.persist()
	s.logger.Printf("Store: saved preset %q (%s)", name, p.ID)
	return p
}

// Delete removes the preset with the given id, if present
func (s *Store) Delete(id string) {
	if _, ok := s.data.Presets[id]; !ok {
		return
	}
	delete(s.data.Presets, id)
	s.persist()
	s.logger.Printf("Store: deleted preset %s", id)
}

func (s *Store) load() {
	s.data = storeData{Presets: make(map[string]Preset)}

	raw, err := os.ReadFile(s.filePath)
	if err != nil {
		s.logger.Printf("Store: load %s (no existing file)", s.filePath)
		return
	}
	if err := yaml.Unmarshal(raw, &s.data); err != nil {
		s.logger.Printf("Store: load %s failed to parse, starting empty: %v", s.filePath, err)
		s.data = storeData{Presets: make(map[string]Preset)}
		return
	}
	if s.data.Presets == nil {
		s.data.Presets = make(map[string]Preset)
	}
	s.logger.Printf("Store: load %s -> %d presets", s.filePath, len(s.data.Presets))
}

func (s *Store) persist() {
	if err := os.MkdirAll(filepath.Dir(s.filePath), 0755); err != nil {
		s.logger.Printf("Store: persist mkdir failed: %v", err)
		return
	}
	raw, err := yaml.Marshal(s.data)
	if err != nil {
		s.logger.Printf("Store: persist marshal failed: %v", err)
		return
	}
	if err := os.WriteFile(s.filePath, raw, 0644); err != nil {
		s.logger.Printf("Store: persist %s failed: %v", s.filePath, err)
		return
	}
}
