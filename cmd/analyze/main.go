// Command analyze prints quick, human-readable heuristics about the monster
// reference datasets. For every monster it summarizes each level (instances,
// combined toughness, fastest movement, AI deck size) and flags levels that
// are weaker than the level before them.
//
// Usage: analyze [reference-dir]
//
// Without a directory only the embedded datasets are analyzed.
package main

import (
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"github.com/wricardo/campaign-keeper/game/engine"
	"github.com/wricardo/campaign-keeper/game/reference"
)

// LevelSummary aggregates the stat blocks of one monster level
type LevelSummary struct {
	Level       int
	Instances   int
	Toughness   int
	MaxMovement int
	Deck        engine.AIDeck
}

// Analysis is the report for one monster
type Analysis struct {
	Name     string
	Type     engine.MonsterType
	Levels   []LevelSummary
	Warnings []string
}

func main() {
	dir := ""
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	catalog, err := reference.NewManager(dir, nil)
	if err != nil {
		fmt.Printf("Error loading datasets: %v\n", err)
		os.Exit(1)
	}

	for _, def := range catalog.List() {
		printAnalysis(os.Stdout, analyzeMonster(def))
	}
}

func summarize(level int, data engine.MonsterInstanceData) LevelSummary {
	s := LevelSummary{Level: level}
	for _, stats := range data.All() {
		s.Instances++
		s.Toughness += stats.Toughness
		s.MaxMovement = max(s.MaxMovement, stats.Movement)
		s.Deck.Basic += stats.AIDeck.Basic
		s.Deck.Advanced += stats.AIDeck.Advanced
		s.Deck.Legendary += stats.AIDeck.Legendary
		s.Deck.Overtone += stats.AIDeck.Overtone
	}
	return s
}

func analyzeMonster(def *engine.MonsterDefinition) Analysis {
	a := Analysis{Name: def.Name, Type: def.Type}

	for _, level := range slices.Sorted(maps.Keys(def.Levels)) {
		a.Levels = append(a.Levels, summarize(level, def.Levels[level]))
	}

	for i, s := range a.Levels {
		if s.Deck.Total() == 0 {
			a.Warnings = append(a.Warnings, fmt.Sprintf("level %d has an empty AI deck", s.Level))
		}
		if i == 0 {
			continue
		}
		prev := a.Levels[i-1]
		if s.Toughness < prev.Toughness {
			a.Warnings = append(a.Warnings, fmt.Sprintf("level %d toughness %d is below level %d (%d)",
				s.Level, s.Toughness, prev.Level, prev.Toughness))
		}
		if s.Deck.Total() < prev.Deck.Total() {
			a.Warnings = append(a.Warnings, fmt.Sprintf("level %d AI deck %d is smaller than level %d (%d)",
				s.Level, s.Deck.Total(), prev.Level, prev.Deck.Total()))
		}
		if s.Instances != prev.Instances {
			a.Warnings = append(a.Warnings, fmt.Sprintf("level %d has %d instances, level %d has %d",
				s.Level, s.Instances, prev.Level, prev.Instances))
		}
	}

	for level := engine.MinMonsterLevel; level <= 3; level++ {
		if _, ok := def.Levels[level]; !ok {
			a.Warnings = append(a.Warnings, fmt.Sprintf("level %d is missing", level))
		}
	}
	return a
}

func printAnalysis(w io.Writer, a Analysis) {
	fmt.Fprintf(w, "\n=== %s (%s) ===\n", a.Name, a.Type)
	for _, s := range a.Levels {
		fmt.Fprintf(w, "Level %d: %d instance(s), toughness %d, movement %d, AI deck %d (B%d A%d L%d O%d)\n",
			s.Level, s.Instances, s.Toughness, s.MaxMovement, s.Deck.Total(),
			s.Deck.Basic, s.Deck.Advanced, s.Deck.Legendary, s.Deck.Overtone)
	}

	if len(a.Warnings) == 0 {
		fmt.Fprintln(w, "✅ Levels scale up consistently")
		return
	}
	fmt.Fprintf(w, "⚠️  WARNING: %d issue(s)\n", len(a.Warnings))
	for _, warning := range a.Warnings {
		fmt.Fprintf(w, "   %s\n", warning)
	}
}
