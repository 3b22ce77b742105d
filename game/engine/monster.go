package engine

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

// MonsterDefinition is a reference dataset entry: a monster's stats per level
type MonsterDefinition struct {
	Name         string                      `json:"name" yaml:"name"`
	Type         MonsterType                 `json:"type" yaml:"type"`
	MultiMonster bool                        `json:"multiMonster" yaml:"multiMonster"`
	Description  string                      `json:"description,omitempty" yaml:"description"`
	Levels       map[int]MonsterInstanceData `json:"levels" yaml:"levels"`
}

// InstanceShape discriminates MonsterInstanceData
type InstanceShape string

const (
	ShapeNone   InstanceShape = ""
	ShapeSingle InstanceShape = "single"
	ShapeMulti  InstanceShape = "multi"
)

// MonsterInstanceData holds the stats of the monster in a showdown: either one
// stat block or one block per instance for multi-monster encounters.
//
// JSON encodes Single as an object and Multi as an array; decoding picks the
// shape from the payload and carries it explicitly afterwards.
type MonsterInstanceData struct {
	Shape  InstanceShape
	Single *MonsterStats
	Multi  []MonsterStats
}

// SingleMonster wraps one stat block
func SingleMonster(stats MonsterStats) MonsterInstanceData {
	return MonsterInstanceData{Shape: ShapeSingle, Single: &stats}
}

// MultiMonster wraps per-instance stat blocks
func MultiMonster(instances []MonsterStats) MonsterInstanceData {
	return MonsterInstanceData{Shape: ShapeMulti, Multi: slices.Clone(instances)}
}

// IsMulti reports whether the data holds per-instance blocks
func (m MonsterInstanceData) IsMulti() bool {
	return m.Shape == ShapeMulti
}

// Empty reports whether no stats were recorded
func (m MonsterInstanceData) Empty() bool {
	return m.Shape == ShapeNone
}

// All returns every stat block regardless of shape
func (m MonsterInstanceData) All() []MonsterStats {
	switch m.Shape {
	case ShapeSingle:
		if m.Single == nil {
			return nil
		}
		return []MonsterStats{*m.Single}
	case ShapeMulti:
		return slices.Clone(m.Multi)
	default:
		return nil
	}
}

// Instance returns the stat block of one monster instance. Single-monster
// data only has instance 0.
func (m *MonsterInstanceData) Instance(i int) (*MonsterStats, error) {
	switch {
	case m.Shape == ShapeSingle && m.Single != nil && i == 0:
		return m.Single, nil
	case m.Shape == ShapeMulti && i >= 0 && i < len(m.Multi):
		return &m.Multi[i], nil
	}
	return nil, NewValidationError(ErrBounds, "monster", "instance", i,
		"instance %d out of range [0,%d)", i, len(m.All()))
}

// DrawAICard takes one card off an instance's remaining AI deck. Monsters
// without recorded stats accept a draw for instance 0 and keep no count.
func (m *MonsterInstanceData) DrawAICard(instance int) error {
	if m.Empty() && instance == 0 {
		return nil
	}
	stats, err := m.Instance(instance)
	if err != nil {
		return err
	}
	if stats.AIDeckRemaining > 0 {
		stats.AIDeckRemaining--
	}
	return nil
}

func (m MonsterInstanceData) MarshalJSON() ([]byte, error) {
	switch m.Shape {
	case ShapeSingle:
		if m.Single == nil {
			return []byte("null"), nil
		}
		return json.Marshal(m.Single)
	case ShapeMulti:
		if m.Multi == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(m.Multi)
	case ShapeNone:
		return []byte("null"), nil
	default:
		return nil, fmt.Errorf("unknown monster shape %q", m.Shape)
	}
}

func (m *MonsterInstanceData) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*m = MonsterInstanceData{}
		return nil
	}

	switch data[0] {
	case '{':
		var stats MonsterStats
		if err := json.Unmarshal(data, &stats); err != nil {
			return fmt.Errorf("decode single monster: %w", err)
		}
		*m = MonsterInstanceData{Shape: ShapeSingle, Single: &stats}
	case '[':
		var list []MonsterStats
		if err := json.Unmarshal(data, &list); err != nil {
			return fmt.Errorf("decode multi monster: %w", err)
		}
		if list == nil {
			list = []MonsterStats{}
		}
		*m = MonsterInstanceData{Shape: ShapeMulti, Multi: list}
	default:
		return fmt.Errorf("monster data must be an object or an array")
	}
	return nil
}

func (m *MonsterInstanceData) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.MappingNode:
		var stats MonsterStats
		if err := node.Decode(&stats); err != nil {
			return fmt.Errorf("decode single monster: %w", err)
		}
		*m = MonsterInstanceData{Shape: ShapeSingle, Single: &stats}
	case yaml.SequenceNode:
		list := []MonsterStats{}
		if err := node.Decode(&list); err != nil {
			return fmt.Errorf("decode multi monster: %w", err)
		}
		*m = MonsterInstanceData{Shape: ShapeMulti, Multi: list}
	default:
		return fmt.Errorf("line %d: monster data must be a mapping or a sequence", node.Line)
	}
	return nil
}
