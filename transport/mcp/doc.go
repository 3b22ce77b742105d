// Package mcp provides a Model Context Protocol server for the campaign engine.
//
// The mcp package implements:
//   - MCP tools for AI agent integration
//   - A thin client that proxies every tool to the REST API
//   - Text rendering of campaigns, hunt boards and showdown turns
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - get_campaign: Settlements, survivors, active hunts and showdowns
//   - list_monsters: Reference quarries and nemeses
//   - create_settlement, create_survivor: Build the roster
//   - create_hunt, move_hunt, resolve_hunt, abandon_hunt: Play the hunt board
//   - create_showdown, draw_ai_card, survivor_action, next_turn, end_round,
//     end_showdown: Run a showdown
//   - campaign_instructions: Board and turn rules
//
// Transport Modes:
//
// The server supports two transport modes:
//   - Stdio: Direct stdio communication for local MCP clients
//   - HTTP: POST /mcp on the campaign server
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
