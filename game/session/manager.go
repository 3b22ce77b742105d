package session

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/wricardo/campaign-keeper/game/engine"
	"github.com/wricardo/campaign-keeper/game/schema"
	"github.com/wricardo/campaign-keeper/game/service"
)

// Manager owns the campaign aggregate. Callers only ever see deep copies.
type Manager struct {
	persistence CampaignPersistence
	logger      *slog.Logger

	mu        sync.RWMutex
	campaign  *engine.Campaign
	persisted []byte // last payload written or loaded
}

// NewManager creates a campaign manager without persistence
func NewManager() *Manager {
	return &Manager{
		campaign: engine.NewCampaign(),
		logger:   slog.Default(),
	}
}

// NewManagerWithPersistence creates a campaign manager backed by persistence
// and loads the stored campaign, if any.
func NewManagerWithPersistence(persistence CampaignPersistence, logger *slog.Logger) (*Manager, error) {
	if logger == nil {
		logger = slog.Default()
	}
	m := &Manager{
		persistence: persistence,
		logger:      logger,
		campaign:    engine.NewCampaign(),
	}

	data, err := persistence.Load()
	if errors.Is(err, ErrCampaignNotFound) {
		logger.Info("no stored campaign, starting empty")
		return m, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", engine.ErrPersistence, err)
	}

	c, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: stored campaign is unreadable: %v", engine.ErrPersistence, err)
	}
	service.NormalizeSelections(c)
	if err := schema.ValidateCampaign(c); err != nil {
		return nil, fmt.Errorf("stored campaign is invalid: %w", err)
	}
	m.campaign = c
	m.persisted = data
	logger.Info("campaign loaded",
		"settlements", len(c.Settlements),
		"survivors", len(c.Survivors),
		"hunts", len(c.Hunts),
		"showdowns", len(c.Showdowns))
	return m, nil
}

// Read returns a deep copy of the current campaign. Selections that point at
// missing entities are reported as empty.
func (m *Manager) Read() (*engine.Campaign, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, err := clone(m.campaign)
	if err != nil {
		return nil, err
	}
	service.NormalizeSelections(c)
	return c, nil
}

// Commit merges patch over the current campaign and persists the result.
// Identical payloads are not rewritten. When persistence fails the cached
// campaign is left untouched and the error wraps engine.ErrPersistence.
func (m *Manager) Commit(patch service.Patch) (*engine.Campaign, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := encode(patch.Apply(m.campaign))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", engine.ErrPersistence, err)
	}

	if !bytes.Equal(data, m.persisted) && m.persistence != nil {
		if err := m.persistence.Save(data); err != nil {
			return nil, fmt.Errorf("%w: %v", engine.ErrPersistence, err)
		}
		m.logger.Debug("campaign persisted", "bytes", len(data))
	}

	// Re-decode so the cache shares nothing with the caller's patch
	c, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", engine.ErrPersistence, err)
	}
	m.campaign = c
	m.persisted = data

	out, err := clone(c)
	if err != nil {
		return nil, err
	}
	service.NormalizeSelections(out)
	return out, nil
}

// Reload re-reads storage after an external edit. Invalid payloads are
// rejected and the current campaign kept. It reports whether anything changed.
func (m *Manager) Reload() (bool, error) {
	if m.persistence == nil {
		return false, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := m.persistence.Load()
	if err != nil {
		return false, fmt.Errorf("%w: %v", engine.ErrPersistence, err)
	}
	if bytes.Equal(data, m.persisted) {
		return false, nil
	}

	c, err := decode(data)
	if err != nil {
		return false, fmt.Errorf("%w: %v", engine.ErrPersistence, err)
	}
	service.NormalizeSelections(c)
	if err := schema.ValidateCampaign(c); err != nil {
		return false, fmt.Errorf("reloaded campaign rejected: %w", err)
	}

	m.campaign = c
	m.persisted = data
	m.logger.Info("campaign reloaded from storage")
	return true, nil
}

// Close releases the persistence layer
func (m *Manager) Close() error {
	if m.persistence == nil {
		return nil
	}
	return m.persistence.Close()
}

func encode(c *engine.Campaign) ([]byte, error) {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal campaign: %w", err)
	}
	return data, nil
}

func decode(data []byte) (*engine.Campaign, error) {
	c, err := service.DecodeCampaign(data)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func clone(c *engine.Campaign) (*engine.Campaign, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to copy campaign: %w", err)
	}
	return decode(data)
}
