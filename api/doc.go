// Package api provides the HTTP REST API for the campaign engine.
//
// The api package implements:
//   - RESTful endpoints for every campaign operation
//   - Export and import of the campaign document
//   - Reference data (monsters, board layout)
//   - WebSocket upgrade handling and Prometheus metrics
//
// Endpoints:
//
// Campaign:
//   - GET  /api/campaign - Current campaign
//   - POST /api/campaign - Save a raw patch: {"settlements": [...], "message": "Saved."}
//   - GET  /api/campaign/export - Download the campaign document
//   - POST /api/campaign/import - Replace the campaign with an uploaded document
//   - PUT  /api/campaign/selection - Change selected ids and tab
//   - PUT  /api/campaign/toasts - {"disabled": true}
//
// Settlements and Survivors:
//   - POST /api/settlements, PUT/DELETE /api/settlements/{id}
//   - POST /api/survivors, PUT/DELETE /api/survivors/{id}
//
// Hunts:
//   - POST /api/hunts - Start a hunt
//   - POST /api/hunts/{id}/move - {"survivorPosition": 3, "quarryPosition": 6}
//   - POST /api/hunts/{id}/resolve, /api/hunts/{id}/abandon
//   - PUT  /api/hunts/{id}/survivors/{sid} - Hunt tokens for one survivor
//   - DELETE /api/hunts/{id}
//
// Showdowns:
//   - POST /api/showdowns - Start a showdown
//   - POST /api/showdowns/{id}/ai-card - {"instance": 1} picks the drawing monster (default 0)
//   - POST /api/showdowns/{id}/survivors/{sid}/{activation|movement}
//   - POST /api/showdowns/{id}/next-turn, /api/showdowns/{id}/end-round
//   - PUT  /api/showdowns/{id}/survivors/{sid} - Combat tokens for one survivor
//   - POST /api/showdowns/{id}/end - {"outcome": "victory"}
//   - DELETE /api/showdowns/{id}
//
// Reference:
//   - GET /api/monsters, GET /api/monsters/{name}
//   - GET /api/board
//
// Usage:
//
//	hub := websocket.NewHub(logger)
//	go hub.Run(ctx)
//	svc := service.NewCampaignService(store, service.WithNotifier(hub))
//	http.ListenAndServe(":8080", api.NewServer(svc, hub, logger))
//
// Error Handling:
//
// Mutations always answer with the pipeline result. Failures carry the error
// kind and map onto status codes: 400 for rule violations, 404 for missing
// entities, 409 for turn order and hunt state conflicts, 500 for storage
// failures.
//
//	{
//	  "success": false,
//	  "error": "hunt.survivors: party must have 1 to 4 survivors",
//	  "errorKind": "PartySizeError"
//	}
package api
