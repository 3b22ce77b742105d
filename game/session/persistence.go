package session

import "errors"

// ErrCampaignNotFound is returned by Load when nothing has been stored yet
var ErrCampaignNotFound = errors.New("campaign not found")

// CampaignPersistence defines the interface for persisting the campaign.
// Implementations store the serialized aggregate as an opaque payload.
type CampaignPersistence interface {
	// Save replaces the stored payload
	Save(data []byte) error

	// Load returns the stored payload or ErrCampaignNotFound
	Load() ([]byte, error)

	// Exists checks if a campaign has been stored
	Exists() bool

	// Close releases the underlying storage
	Close() error
}
