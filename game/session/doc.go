// Package session provides the campaign store.
//
// The session package implements:
//   - The single-writer campaign Manager (read, commit, reload)
//   - File persistence (pretty JSON, atomic replace)
//   - Badger persistence (single key in an embedded key-value store)
//   - A file watcher that reloads external edits
//
// Core Types:
//
// Manager owns the campaign aggregate and implements service.Store. Read
// returns deep copies; Commit merges a patch shallowly, persists it and only
// then swaps the cached aggregate, so a failed write leaves the previous state
// in place. Committing an unchanged campaign does not touch storage.
//
// CampaignPersistence is the storage abstraction with FilePersistence and
// BadgerPersistence implementations.
//
// Concurrency:
//
// The manager is safe for concurrent use. The service layer serializes
// mutations so there is only ever one writer.
//
// Usage:
//
//	persistence, err := session.NewFilePersistence("data/campaign.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	manager, err := session.NewManagerWithPersistence(persistence, logger)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer manager.Close()
//
//	campaign, err := manager.Read()
package session
