package reference

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/wricardo/campaign-keeper/game/engine"
	"github.com/wricardo/campaign-keeper/game/schema"
	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var defaults embed.FS

var ErrInvalidDataset = errors.New("invalid monster dataset")

// Manager serves the reference monster datasets. The embedded defaults are
// loaded first; files in the optional directory override them by name.
type Manager struct {
	dir      string
	logger   *slog.Logger
	monsters map[string]*engine.MonsterDefinition // keyed by normalized name
	mu       sync.RWMutex
}

// NewManager loads the embedded datasets plus every *.yaml file in dir.
// An empty dir serves the embedded datasets only.
func NewManager(dir string, logger *slog.Logger) (*Manager, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if dir != "" {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			return nil, fmt.Errorf("reference directory does not exist: %s", dir)
		}
	}

	m := &Manager{dir: dir, logger: logger}
	if err := m.Refresh(); err != nil {
		return nil, err
	}
	return m, nil
}

// Default returns a manager over the embedded datasets
func Default() (*Manager, error) {
	return NewManager("", nil)
}

// Refresh reloads every dataset. On error the previous datasets stay in place.
func (m *Manager) Refresh() error {
	monsters := make(map[string]*engine.MonsterDefinition)

	sub, err := fs.Sub(defaults, "data")
	if err != nil {
		return err
	}
	if err := loadDir(sub, monsters); err != nil {
		return fmt.Errorf("embedded datasets: %w", err)
	}
	if m.dir != "" {
		if err := loadDir(os.DirFS(m.dir), monsters); err != nil {
			return fmt.Errorf("%s: %w", m.dir, err)
		}
	}

	m.mu.Lock()
	m.monsters = monsters
	m.mu.Unlock()

	m.logger.Debug("reference datasets loaded", "monsters", len(monsters), "dir", m.dir)
	return nil
}

// Lookup returns a copy of the named monster. Names are matched case-insensitively.
func (m *Manager) Lookup(name string) (*engine.MonsterDefinition, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	def, ok := m.monsters[key(name)]
	if !ok {
		return nil, engine.NotFound("monster", name)
	}
	return copyDefinition(def), nil
}

// List returns copies of every monster, quarries first, then by name
func (m *Manager) List() []*engine.MonsterDefinition {
	m.mu.RLock()
	defer m.mu.RUnlock()

	list := make([]*engine.MonsterDefinition, 0, len(m.monsters))
	for _, def := range m.monsters {
		list = append(list, copyDefinition(def))
	}
	slices.SortFunc(list, func(a, b *engine.MonsterDefinition) int {
		if a.Type != b.Type {
			if a.Type == engine.MonsterTypeQuarry {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Name, b.Name)
	})
	return list
}

// LevelData returns the stats of a monster at level
func (m *Manager) LevelData(name string, level int) (engine.MonsterInstanceData, error) {
	def, err := m.Lookup(name)
	if err != nil {
		return engine.MonsterInstanceData{}, err
	}
	data, ok := def.Levels[level]
	if !ok {
		return engine.MonsterInstanceData{}, engine.NewValidationError(engine.ErrBounds, "monster", "level", level,
			"%s has no level %d", def.Name, level)
	}
	return data, nil
}

// SaveMonster validates def and writes it to the reference directory
func (m *Manager) SaveMonster(def *engine.MonsterDefinition) error {
	if m.dir == "" {
		return errors.New("no reference directory configured")
	}
	if err := schema.ValidateMonster(def); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDataset, err)
	}

	data, err := yaml.Marshal(toDocument(def))
	if err != nil {
		return fmt.Errorf("failed to marshal monster: %w", err)
	}
	path := filepath.Join(m.dir, fileName(def.Name))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write monster file: %w", err)
	}

	m.mu.Lock()
	m.monsters[key(def.Name)] = copyDefinition(def)
	m.mu.Unlock()
	return nil
}

// Decode parses and validates one YAML dataset. Unknown keys are rejected.
func Decode(data []byte) (*engine.MonsterDefinition, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var def engine.MonsterDefinition
	if err := dec.Decode(&def); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDataset, err)
	}
	if err := schema.ValidateMonster(&def); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDataset, err)
	}
	return &def, nil
}

func loadDir(fsys fs.FS, into map[string]*engine.MonsterDefinition) error {
	names, err := fs.Glob(fsys, "*.yaml")
	if err != nil {
		return err
	}
	for _, name := range names {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", name, err)
		}
		def, err := Decode(data)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		into[key(def.Name)] = def
	}
	return nil
}

func key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func fileName(name string) string {
	return strings.ReplaceAll(key(name), " ", "_") + ".yaml"
}

// document mirrors MonsterDefinition for encoding; the instance data is
// written as a mapping or a sequence depending on its shape.
type document struct {
	Name         string             `yaml:"name"`
	Type         engine.MonsterType `yaml:"type"`
	MultiMonster bool               `yaml:"multiMonster"`
	Description  string             `yaml:"description,omitempty"`
	Levels       map[int]any        `yaml:"levels"`
}

func toDocument(def *engine.MonsterDefinition) document {
	doc := document{
		Name:         def.Name,
		Type:         def.Type,
		MultiMonster: def.MultiMonster,
		Description:  def.Description,
		Levels:       make(map[int]any, len(def.Levels)),
	}
	for level, data := range def.Levels {
		if data.IsMulti() {
			doc.Levels[level] = data.Multi
		} else {
			doc.Levels[level] = data.Single
		}
	}
	return doc
}

func copyDefinition(def *engine.MonsterDefinition) *engine.MonsterDefinition {
	out := *def
	out.Levels = make(map[int]engine.MonsterInstanceData, len(def.Levels))
	for level, data := range def.Levels {
		switch {
		case data.IsMulti():
			out.Levels[level] = engine.MultiMonster(data.Multi)
		case data.Single != nil:
			out.Levels[level] = engine.SingleMonster(*data.Single)
		default:
			out.Levels[level] = data
		}
	}
	return &out
}
