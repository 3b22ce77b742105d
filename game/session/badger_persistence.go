package session

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/dgraph-io/badger/v4"
)

// campaignKey is the single key the aggregate is stored under
var campaignKey = []byte("campaign")

// BadgerConfig configures the badger-backed store
type BadgerConfig struct {
	// Path is the database directory. Ignored when InMemory is true.
	Path string

	// InMemory keeps everything in memory, for tests
	InMemory bool

	SyncWrites bool

	// Logger receives badger's internal logs. Nil disables them.
	Logger *slog.Logger
}

// DefaultBadgerConfig returns a durable configuration rooted at path
func DefaultBadgerConfig(path string) BadgerConfig {
	return BadgerConfig{Path: path, SyncWrites: true}
}

// InMemoryBadgerConfig returns a configuration without disk persistence
func InMemoryBadgerConfig() BadgerConfig {
	return BadgerConfig{InMemory: true}
}

// badgerLogger adapts slog to badger's logger interface
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

// BadgerPersistence implements CampaignPersistence on a badger key-value store
type BadgerPersistence struct {
	db *badger.DB
}

// OpenBadger opens (or creates) the badger store described by cfg
func OpenBadger(cfg BadgerConfig) (*BadgerPersistence, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("path is required for persistent database")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0750); err != nil {
			return nil, fmt.Errorf("create database directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithSyncWrites(cfg.SyncWrites).WithNumVersionsToKeep(1)

	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger database: %w", err)
	}
	return &BadgerPersistence{db: db}, nil
}

// Save stores the payload under the campaign key
func (bp *BadgerPersistence) Save(data []byte) error {
	err := bp.db.Update(func(txn *badger.Txn) error {
		return txn.Set(campaignKey, data)
	})
	if err != nil {
		return fmt.Errorf("failed to store campaign: %w", err)
	}
	return nil
}

// Load returns the stored payload
func (bp *BadgerPersistence) Load() ([]byte, error) {
	var data []byte
	err := bp.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(campaignKey)
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrCampaignNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load campaign: %w", err)
	}
	return data, nil
}

// Exists checks if a campaign has been stored
func (bp *BadgerPersistence) Exists() bool {
	_, err := bp.Load()
	return err == nil
}

// Close closes the database
func (bp *BadgerPersistence) Close() error {
	return bp.db.Close()
}
