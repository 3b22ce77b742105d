package session

import (
	"fmt"
	"log/slog"

	"github.com/wricardo/campaign-keeper/game/config"
)

// Open opens the persistence selected by settings and loads the stored campaign
func Open(settings *config.Settings, logger *slog.Logger) (*Manager, error) {
	var persistence CampaignPersistence
	switch settings.Store {
	case config.StoreBadger:
		cfg := DefaultBadgerConfig(settings.BadgerPath())
		cfg.Logger = logger
		bp, err := OpenBadger(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to open badger store: %w", err)
		}
		persistence = bp
	default:
		fp, err := NewFilePersistence(settings.CampaignPath())
		if err != nil {
			return nil, fmt.Errorf("failed to create campaign persistence: %w", err)
		}
		persistence = fp
	}

	m, err := NewManagerWithPersistence(persistence, logger)
	if err != nil {
		persistence.Close()
		return nil, fmt.Errorf("failed to load campaign: %w", err)
	}
	return m, nil
}
