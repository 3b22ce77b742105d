// Package service provides the campaign save/commit pipeline.
//
// The service package implements:
//   - Every campaign mutation as a pipeline run: read, compute candidate,
//     validate, commit, notify
//   - Settlement and survivor management
//   - Hunt and showdown lifecycles on top of the engine state machines
//   - Backup export and import
//
// Core Interfaces:
//
// CampaignService is the main service interface used by the HTTP, MCP and CLI
// adapters. Store is the single-writer campaign store implemented by
// session.Manager. Notifier receives each committed campaign; MonsterCatalog
// is implemented by reference.Manager.
//
// Architecture:
//
// Mutations are serialized by a mutex so there is exactly one writer. A
// failed validation or a storage error never escapes the pipeline: it is
// reported in the Result and the stored campaign is left unchanged.
//
// Usage:
//
//	persistence, _ := session.NewFilePersistence(path)
//	store, _ := session.NewManagerWithPersistence(persistence, logger)
//	svc := service.NewCampaignService(store,
//		service.WithMonsters(catalog),
//		service.WithNotifier(hub),
//	)
//
//	res := svc.CreateHunt(ctx, service.HuntRequest{
//		QuarryName:  "White Lion",
//		QuarryLevel: 1,
//		Survivors:   []string{a, b, c, d},
//	})
//	if !res.Success {
//		log.Println(res.ErrorKind, res.Error)
//	}
package service
