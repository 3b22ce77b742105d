// Package websocket pushes committed campaigns to connected clients.
//
// The websocket package implements:
//   - A Hub that fans out campaign updates to every connected client
//   - service.Notifier, so the hub can be registered with the pipeline
//   - Connection lifecycle management (ping/pong, slow client eviction)
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub goroutine owns
// the client set. Each connection has a read pump and a write pump. Notify
// only enqueues an encoded frame, so a commit never waits on the network.
//
// Message Protocol:
//
// Clients never send commands. The server sends one JSON text frame per
// commit:
//
//	{"event": "campaign_update", "campaign": {...}, "message": "Survivors moved."}
//
// The message is empty when toasts are disabled.
//
// Usage:
//
//	hub := websocket.NewHub(logger)
//	go hub.Run(ctx)
//
//	svc := service.NewCampaignService(store, service.WithNotifier(hub))
//	router.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
//		hub.ServeWS(w, r, nil)
//	})
package websocket
