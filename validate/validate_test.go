package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const whiteLion = `name: White Lion
type: quarry
multiMonster: false
levels:
  1:
    movement: 6
    toughness: 8
    aiDeck:
      basic: 7
      advanced: 3
  2:
    movement: 7
    toughness: 10
    aiDeck:
      basic: 8
      advanced: 4
`

const twinWardens = `name: Twin Wardens
type: nemesis
multiMonster: true
levels:
  1:
    - name: Left Warden
      movement: 5
      toughness: 8
      aiDeck:
        basic: 4
    - name: Right Warden
      movement: 6
      toughness: 7
      aiDeck:
        basic: 4
`

func writeDataset(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write dataset: %v", err)
	}
	return path
}

func hasError(result ValidationResult, substr string) bool {
	for _, e := range result.Errors {
		if strings.Contains(e, substr) {
			return true
		}
	}
	return false
}

func TestValidateDataset_Valid(t *testing.T) {
	path := writeDataset(t, t.TempDir(), "white_lion.yaml", whiteLion)

	result := validateDataset(path)
	if !result.Valid {
		t.Fatalf("Expected valid dataset, but got errors: %v", result.Errors)
	}
	if result.File != "white_lion.yaml" {
		t.Errorf("Expected file name white_lion.yaml, got %s", result.File)
	}
	if result.Monster != "White Lion" {
		t.Errorf("Expected monster White Lion, got %s", result.Monster)
	}
	if !hasError(result, "✓ Levels: 1, 2") {
		t.Errorf("Expected level summary, got %v", result.Errors)
	}
}

func TestValidateDataset_MultiMonster(t *testing.T) {
	path := writeDataset(t, t.TempDir(), "twin_wardens.yaml", twinWardens)

	result := validateDataset(path)
	if !result.Valid {
		t.Fatalf("Expected valid dataset, but got errors: %v", result.Errors)
	}
	if !hasError(result, "✓ Instances: 2") {
		t.Errorf("Expected instance summary, got %v", result.Errors)
	}
}

func TestValidateDataset_MissingFile(t *testing.T) {
	result := validateDataset(filepath.Join(t.TempDir(), "nope.yaml"))
	if result.Valid {
		t.Error("Expected missing file to be invalid")
	}
	if !hasError(result, "Failed to read file") {
		t.Errorf("Expected read error, got %v", result.Errors)
	}
}

func TestValidateDataset_UnknownKey(t *testing.T) {
	path := writeDataset(t, t.TempDir(), "white_lion.yaml", whiteLion+"color: white\n")

	result := validateDataset(path)
	if result.Valid {
		t.Error("Expected unknown key to be rejected")
	}
}

func TestValidateDataset_RuleViolations(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "empty name",
			content: strings.Replace(whiteLion, "name: White Lion", "name: \"\"", 1),
			want:    "EmptyNameError",
		},
		{
			name:    "bad type",
			content: strings.Replace(whiteLion, "type: quarry", "type: boss", 1),
			want:    "BoundsError",
		},
		{
			name:    "negative toughness",
			content: strings.Replace(whiteLion, "toughness: 8", "toughness: -1", 1),
			want:    "BoundsError",
		},
		{
			name:    "level out of range",
			content: strings.Replace(whiteLion, "  2:\n", "  9:\n", 1),
			want:    "BoundsError",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeDataset(t, t.TempDir(), "white_lion.yaml", tt.content)
			result := validateDataset(path)
			if result.Valid {
				t.Fatal("Expected dataset to be invalid")
			}
			if !hasError(result, tt.want) {
				t.Errorf("Expected %s, got %v", tt.want, result.Errors)
			}
		})
	}
}

func TestValidateDataset_FileName(t *testing.T) {
	path := writeDataset(t, t.TempDir(), "lion.yaml", whiteLion)

	result := validateDataset(path)
	if result.Valid {
		t.Error("Expected mismatched file name to be invalid")
	}
	if !hasError(result, "File name should be white_lion.yaml") {
		t.Errorf("Expected file name error, got %v", result.Errors)
	}
}

func TestValidateDataset_EmptyDeck(t *testing.T) {
	content := strings.Replace(whiteLion, "    aiDeck:\n      basic: 8\n      advanced: 4\n", "", 1)
	path := writeDataset(t, t.TempDir(), "white_lion.yaml", content)

	result := validateDataset(path)
	if result.Valid {
		t.Error("Expected empty AI deck to be invalid")
	}
	if !hasError(result, "Level 2 has an empty AI deck") {
		t.Errorf("Expected empty deck error, got %v", result.Errors)
	}
}

func TestValidateDataset_InstanceNames(t *testing.T) {
	content := strings.Replace(twinWardens, "Right Warden", "Left Warden", 1)
	path := writeDataset(t, t.TempDir(), "twin_wardens.yaml", content)

	result := validateDataset(path)
	if result.Valid {
		t.Error("Expected repeated instance name to be invalid")
	}
	if !hasError(result, `Level 1 repeats instance name "Left Warden"`) {
		t.Errorf("Expected repeated name error, got %v", result.Errors)
	}
}

func TestValidateDir(t *testing.T) {
	dir := t.TempDir()
	writeDataset(t, dir, "white_lion.yaml", whiteLion)
	writeDataset(t, dir, "twin_wardens.yaml", twinWardens)
	writeDataset(t, dir, "notes.txt", "ignored")

	results, err := validateDir(dir)
	if err != nil {
		t.Fatalf("validateDir failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	for _, r := range results {
		if !r.Valid {
			t.Errorf("%s: unexpected errors %v", r.File, r.Errors)
		}
	}
}

func TestValidateDir_Duplicates(t *testing.T) {
	dir := t.TempDir()
	writeDataset(t, dir, "white_lion.yaml", whiteLion)
	// same monster under a second file; sorts after white_lion.yaml
	writeDataset(t, dir, "zz_white_lion.yaml", whiteLion)

	results, err := validateDir(dir)
	if err != nil {
		t.Fatalf("validateDir failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	if !hasError(results[1], "Monster White Lion is already defined in white_lion.yaml") {
		t.Errorf("Expected duplicate error, got %v", results[1].Errors)
	}
}

func TestValidateDir_EmbeddedDatasets(t *testing.T) {
	results, err := validateDir(filepath.Join("..", "game", "reference", "data"))
	if err != nil {
		t.Fatalf("validateDir failed: %v", err)
	}
	if len(results) != 5 {
		t.Fatalf("Expected 5 datasets, got %d", len(results))
	}
	for _, r := range results {
		if !r.Valid {
			t.Errorf("%s: unexpected errors %v", r.File, r.Errors)
		}
	}
}
