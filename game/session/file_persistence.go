package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultFileName is the campaign file inside the data directory
const DefaultFileName = "campaign.json"

// FilePersistence implements CampaignPersistence using a single JSON file
type FilePersistence struct {
	path string
}

// NewFilePersistence creates a file-based persistence layer writing to path
func NewFilePersistence(path string) (*FilePersistence, error) {
	// Create data directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return &FilePersistence{path: path}, nil
}

// Path returns the campaign file path
func (fp *FilePersistence) Path() string {
	return fp.path
}

// Save writes the payload to a temporary file and renames it over the campaign file
func (fp *FilePersistence) Save(data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(fp.path), ".campaign-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write campaign file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close campaign file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("failed to set campaign file mode: %w", err)
	}
	if err := os.Rename(tmp.Name(), fp.path); err != nil {
		return fmt.Errorf("failed to replace campaign file: %w", err)
	}

	return nil
}

// Load reads the campaign file
func (fp *FilePersistence) Load() ([]byte, error) {
	data, err := os.ReadFile(fp.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrCampaignNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read campaign file: %w", err)
	}

	return data, nil
}

// Exists checks if the campaign file exists
func (fp *FilePersistence) Exists() bool {
	_, err := os.Stat(fp.path)
	return err == nil
}

// Close is a no-op for files
func (fp *FilePersistence) Close() error {
	return nil
}
