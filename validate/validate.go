// Command validate provides a small CLI that validates the monster reference
// datasets (*.yaml) in a directory, ../game/reference/data by default. It checks:
//   - YAML structure with no unknown keys
//   - Dataset rules: name, type, level range, stat bounds and instance shape
//   - File name matches the monster name (white_lion.yaml for White Lion)
//   - Every level has a non-empty AI deck
//   - Multi-monster instances carry distinct names
//   - No two files define the same monster
package main

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/wricardo/campaign-keeper/game/engine"
	"github.com/wricardo/campaign-keeper/game/reference"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File    string
	Monster string
	Valid   bool
	Errors  []string
}

func (r *ValidationResult) fail(format string, args ...any) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// expectedFileName is the dataset file name for a monster
func expectedFileName(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_") + ".yaml"
}

// validateDataset loads and validates a single dataset file
func validateDataset(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.fail("Failed to read file: %v", err)
		return result
	}

	def, err := reference.Decode(data)
	if err != nil {
		if kind := engine.KindOf(err); kind != "" {
			result.fail("%s: %v", kind, err)
		} else {
			result.fail("%v", err)
		}
		return result
	}
	result.Monster = def.Name

	if want := expectedFileName(def.Name); result.File != want {
		result.fail("File name should be %s for %s", want, def.Name)
	}

	levels := slices.Sorted(maps.Keys(def.Levels))
	for _, level := range levels {
		stats := def.Levels[level].All()
		for i, s := range stats {
			if s.AIDeck.Total() == 0 {
				if def.MultiMonster {
					result.fail("Level %d instance %d has an empty AI deck", level, i+1)
				} else {
					result.fail("Level %d has an empty AI deck", level)
				}
			}
		}
		if def.MultiMonster {
			seen := make(map[string]bool, len(stats))
			for i, s := range stats {
				switch {
				case strings.TrimSpace(s.Name) == "":
					result.fail("Level %d instance %d has no name", level, i+1)
				case seen[s.Name]:
					result.fail("Level %d repeats instance name %q", level, s.Name)
				}
				seen[s.Name] = true
			}
		}
	}

	if result.Valid {
		names := make([]string, len(levels))
		for i, l := range levels {
			names[i] = fmt.Sprint(l)
		}
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Monster: %s (%s)", def.Name, def.Type))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Levels: %s", strings.Join(names, ", ")))
		if def.MultiMonster {
			result.Errors = append(result.Errors, fmt.Sprintf("✓ Instances: %d", len(def.Levels[levels[0]].All())))
		}
	}
	return result
}

// validateDir validates every dataset in dir and flags monsters defined twice
func validateDir(dir string) ([]ValidationResult, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}

	results := make([]ValidationResult, 0, len(files))
	owners := make(map[string]string)
	for _, file := range files {
		result := validateDataset(file)
		if result.Monster != "" {
			key := strings.ToLower(result.Monster)
			if owner, ok := owners[key]; ok {
				result.fail("Monster %s is already defined in %s", result.Monster, owner)
			} else {
				owners[key] = result.File
			}
		}
		results = append(results, result)
	}
	return results, nil
}

// main validates each dataset in the given directory, printing a concise
// report and exiting with non-zero status if any are invalid.
func main() {
	dir := "../game/reference/data"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	results, err := validateDir(dir)
	if err != nil {
		fmt.Printf("Error finding datasets: %v\n", err)
		os.Exit(1)
	}
	if len(results) == 0 {
		fmt.Printf("No datasets found in %s\n", dir)
		os.Exit(1)
	}

	allValid := true
	for _, result := range results {
		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All datasets are valid!")
	} else {
		fmt.Println("❌ Some datasets have errors")
		os.Exit(1)
	}
}
