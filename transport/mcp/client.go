package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/wricardo/campaign-keeper/game/engine"
	"github.com/wricardo/campaign-keeper/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Campaign Keeper",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Campaign Keeper - MCP Interface

This is a thin client that proxies all requests to the campaign REST API.

AVAILABLE TOOLS:
- get_campaign: Settlements, survivors, hunts and showdowns at a glance
- list_monsters: Quarries and nemeses with their levels
- create_settlement / create_survivor: Build the settlement roster
- create_hunt, move_hunt, resolve_hunt, abandon_hunt: Play the hunt board
- create_showdown, draw_ai_card, survivor_action, next_turn, end_round, end_showdown: Run a showdown
- campaign_instructions: Rules for the hunt board and showdown turns

Every mutation returns the message shown to players, or the error kind when a rule is broken.`),
	)

	c.registerTools()
}

func stringProp(description string) map[string]interface{} {
	return map[string]interface{}{"type": "string", "description": description}
}

func numberProp(description string) map[string]interface{} {
	return map[string]interface{}{"type": "number", "description": description}
}

func idListProp(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "array",
		"items":       map[string]interface{}{"type": "string"},
		"description": description,
	}
}

func showdownOnly(description string) mcp.ToolInputSchema {
	return mcp.ToolInputSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"showdown_id": stringProp(description),
		},
		Required: []string{"showdown_id"},
	}
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Campaign
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_campaign",
		Description: "Get the current campaign: settlements, survivors, active hunts and showdowns",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGetCampaign)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_monsters",
		Description: "List the reference quarries and nemeses with their available levels",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListMonsters)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "campaign_instructions",
		Description: "Get the rules for the hunt board and showdown turns",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleInstructions)

	// Settlements and survivors
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_settlement",
		Description: "Create a settlement and select it",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"name":          stringProp("Settlement name"),
				"survivor_type": map[string]interface{}{"type": "string", "enum": []string{"Core", "Arc"}, "description": "Survivor type (default Core)"},
				"uses_scouts":   map[string]interface{}{"type": "boolean", "description": "Whether hunts require a scout"},
			},
			Required: []string{"name"},
		},
	}, c.handleCreateSettlement)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_survivor",
		Description: "Add a survivor to a settlement",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"name":          stringProp("Survivor name"),
				"gender":        map[string]interface{}{"type": "string", "enum": []string{"M", "F"}},
				"settlement_id": stringProp("Settlement ID (defaults to the selected settlement)"),
			},
			Required: []string{"name"},
		},
	}, c.handleCreateSurvivor)

	// Hunts
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_hunt",
		Description: "Start a hunt with 1 to 4 survivors",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"quarry_name":   stringProp("Quarry to hunt, e.g. White Lion"),
				"quarry_level":  numberProp("Quarry level (1-4)"),
				"survivors":     idListProp("Survivor IDs in the party"),
				"scout":         stringProp("Scout survivor ID (settlements that use scouts)"),
				"settlement_id": stringProp("Settlement ID (defaults to the selected settlement)"),
			},
			Required: []string{"quarry_name", "quarry_level", "survivors"},
		},
	}, c.handleCreateHunt)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move_hunt",
		Description: "Move the survivor party and quarry tokens on the 13-space hunt board",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"hunt_id":           stringProp("Hunt ID"),
				"survivor_position": numberProp("New survivor position (0-12)"),
				"quarry_position":   numberProp("New quarry position (0-12)"),
			},
			Required: []string{"hunt_id", "survivor_position", "quarry_position"},
		},
	}, c.handleMoveHunt)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "resolve_hunt",
		Description: "Resolve a hunt whose tokens landed on an outcome; encounters start a showdown",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"hunt_id": stringProp("Hunt ID")},
			Required:   []string{"hunt_id"},
		},
	}, c.handleResolveHunt)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "abandon_hunt",
		Description: "End a hunt without a showdown",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"hunt_id": stringProp("Hunt ID")},
			Required:   []string{"hunt_id"},
		},
	}, c.handleAbandonHunt)

	// Showdowns
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_showdown",
		Description: "Start a showdown directly, or from a resolved hunt with hunt_id",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"hunt_id":       stringProp("Resolved hunt to continue (other fields are taken from it)"),
				"monster_name":  stringProp("Monster name"),
				"monster_level": numberProp("Monster level (1-4)"),
				"survivors":     idListProp("Survivor IDs in the party"),
				"scout":         stringProp("Scout survivor ID"),
				"ambush":        map[string]interface{}{"type": "boolean", "description": "Monster acts first"},
				"settlement_id": stringProp("Settlement ID (defaults to the selected settlement)"),
			},
		},
	}, c.handleCreateShowdown)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "draw_ai_card",
		Description: "Draw the monster's AI card for this turn",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"showdown_id": stringProp("Showdown ID"),
				"instance":    numberProp("Monster instance that draws, for multi-monster showdowns (default 0)"),
			},
			Required: []string{"showdown_id"},
		},
	}, c.handleDrawAICard)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "survivor_action",
		Description: "Spend a survivor's activation or movement during the survivors' turn",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"showdown_id": stringProp("Showdown ID"),
				"survivor_id": stringProp("Survivor ID"),
				"action":      map[string]interface{}{"type": "string", "enum": []string{"activation", "movement"}},
			},
			Required: []string{"showdown_id", "survivor_id", "action"},
		},
	}, c.handleSurvivorAction)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "next_turn",
		Description: "Pass the turn between the monster and the survivors",
		InputSchema: showdownOnly("Showdown ID"),
	}, c.handleNextTurn)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "end_round",
		Description: "End the round and reset turn state",
		InputSchema: showdownOnly("Showdown ID"),
	}, c.handleEndRound)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "end_showdown",
		Description: "End a showdown with an outcome",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"showdown_id": stringProp("Showdown ID"),
				"outcome":     map[string]interface{}{"type": "string", "enum": []string{"victory", "defeat", "retreat"}},
			},
			Required: []string{"showdown_id", "outcome"},
		},
	}, c.handleEndShowdown)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

// apiError is the error shape of every REST failure
type apiError struct {
	Error     string `json:"error"`
	ErrorKind string `json:"errorKind"`
}

func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		var errResp apiError
		if json.Unmarshal(data, &errResp) == nil && errResp.Error != "" {
			if errResp.ErrorKind != "" {
				return fmt.Errorf("%s: %s", errResp.ErrorKind, errResp.Error)
			}
			return fmt.Errorf("%s", errResp.Error)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.Unmarshal(data, result)
	}
	return nil
}

// mutate posts to a mutation endpoint and renders the pipeline result
func (c *Client) mutate(ctx context.Context, method, path string, body interface{}) (*mcp.CallToolResult, error) {
	var res service.Result
	if err := c.apiCall(ctx, method, path, body, &res); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatResult(&res)), nil
}

// Argument helpers. JSON numbers arrive as float64.

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	if args == nil {
		return map[string]interface{}{}
	}
	return args
}

func argString(args map[string]interface{}, key string) string {
	s, _ := args[key].(string)
	return s
}

func argInt(args map[string]interface{}, key string) (int, bool) {
	switch v := args[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	}
	return 0, false
}

func argStrings(args map[string]interface{}, key string) []string {
	raw, _ := args[key].([]interface{})
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func requireString(args map[string]interface{}, key string) (string, *mcp.CallToolResult) {
	s := argString(args, key)
	if s == "" {
		return "", mcp.NewToolResultError(key + " is required")
	}
	return s, nil
}

// Tool handlers

func (c *Client) handleGetCampaign(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var campaign engine.Campaign
	if err := c.apiCall(ctx, "GET", "/api/campaign", nil, &campaign); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatCampaign(&campaign)), nil
}

func (c *Client) handleListMonsters(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var monsters []engine.MonsterDefinition
	if err := c.apiCall(ctx, "GET", "/api/monsters", nil, &monsters); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatMonsters(monsters)), nil
}

func (c *Client) handleCreateSettlement(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	uses, _ := args["uses_scouts"].(bool)
	body := service.SettlementRequest{
		Name:         argString(args, "name"),
		SurvivorType: engine.SurvivorType(argString(args, "survivor_type")),
		UsesScouts:   uses,
	}
	return c.mutate(ctx, "POST", "/api/settlements", body)
}

func (c *Client) handleCreateSurvivor(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	body := engine.Survivor{
		Name:         argString(args, "name"),
		Gender:       engine.Gender(argString(args, "gender")),
		SettlementID: argString(args, "settlement_id"),
	}
	return c.mutate(ctx, "POST", "/api/survivors", body)
}

func (c *Client) handleCreateHunt(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	level, _ := argInt(args, "quarry_level")
	body := service.HuntRequest{
		SettlementID: argString(args, "settlement_id"),
		QuarryName:   argString(args, "quarry_name"),
		QuarryLevel:  level,
		Survivors:    argStrings(args, "survivors"),
		Scout:        argString(args, "scout"),
	}
	return c.mutate(ctx, "POST", "/api/hunts", body)
}

func (c *Client) handleMoveHunt(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	huntID, missing := requireString(args, "hunt_id")
	if missing != nil {
		return missing, nil
	}
	survivorPos, ok1 := argInt(args, "survivor_position")
	quarryPos, ok2 := argInt(args, "quarry_position")
	if !ok1 || !ok2 {
		return mcp.NewToolResultError("survivor_position and quarry_position are required"), nil
	}

	body := map[string]int{"survivorPosition": survivorPos, "quarryPosition": quarryPos}
	return c.mutate(ctx, "POST", "/api/hunts/"+url.PathEscape(huntID)+"/move", body)
}

func (c *Client) handleResolveHunt(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	huntID, missing := requireString(arguments(request), "hunt_id")
	if missing != nil {
		return missing, nil
	}
	return c.mutate(ctx, "POST", "/api/hunts/"+url.PathEscape(huntID)+"/resolve", nil)
}

func (c *Client) handleAbandonHunt(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	huntID, missing := requireString(arguments(request), "hunt_id")
	if missing != nil {
		return missing, nil
	}
	return c.mutate(ctx, "POST", "/api/hunts/"+url.PathEscape(huntID)+"/abandon", nil)
}

func (c *Client) handleCreateShowdown(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	level, _ := argInt(args, "monster_level")
	ambush, _ := args["ambush"].(bool)
	body := service.ShowdownRequest{
		HuntID:       argString(args, "hunt_id"),
		SettlementID: argString(args, "settlement_id"),
		MonsterName:  argString(args, "monster_name"),
		MonsterLevel: level,
		Survivors:    argStrings(args, "survivors"),
		Scout:        argString(args, "scout"),
		Ambush:       ambush,
	}
	return c.mutate(ctx, "POST", "/api/showdowns", body)
}

func (c *Client) showdownCall(ctx context.Context, request mcp.CallToolRequest, suffix string) (*mcp.CallToolResult, error) {
	id, missing := requireString(arguments(request), "showdown_id")
	if missing != nil {
		return missing, nil
	}
	return c.mutate(ctx, "POST", "/api/showdowns/"+url.PathEscape(id)+suffix, nil)
}

func (c *Client) handleDrawAICard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	showdownID, missing := requireString(args, "showdown_id")
	if missing != nil {
		return missing, nil
	}
	instance, _ := argInt(args, "instance")
	body := map[string]int{"instance": instance}
	return c.mutate(ctx, "POST", "/api/showdowns/"+url.PathEscape(showdownID)+"/ai-card", body)
}

func (c *Client) handleNextTurn(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return c.showdownCall(ctx, request, "/next-turn")
}

func (c *Client) handleEndRound(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return c.showdownCall(ctx, request, "/end-round")
}

func (c *Client) handleSurvivorAction(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	showdownID, missing := requireString(args, "showdown_id")
	if missing != nil {
		return missing, nil
	}
	survivorID, missing := requireString(args, "survivor_id")
	if missing != nil {
		return missing, nil
	}
	action, missing := requireString(args, "action")
	if missing != nil {
		return missing, nil
	}

	path := fmt.Sprintf("/api/showdowns/%s/survivors/%s/%s",
		url.PathEscape(showdownID), url.PathEscape(survivorID), url.PathEscape(action))
	return c.mutate(ctx, "POST", path, nil)
}

func (c *Client) handleEndShowdown(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	showdownID, missing := requireString(args, "showdown_id")
	if missing != nil {
		return missing, nil
	}
	body := map[string]string{"outcome": argString(args, "outcome")}
	return c.mutate(ctx, "POST", "/api/showdowns/"+url.PathEscape(showdownID)+"/end", body)
}

func (c *Client) handleInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(instructions), nil
}

const instructions = `Campaign Keeper - Instructions

HUNT BOARD:
The hunt board has 13 spaces, numbered 0 to 12.
  0      start, where the survivor party begins
  6      overwhelming darkness, the default quarry position
  12     starvation
Move tokens with move_hunt. Positions outside 0-12 are rejected.

RESOLVING A HUNT:
resolve_hunt checks the current positions, in this order:
  - the quarry moved onto the party: ambush, the monster acts first
  - party and quarry on one space: showdown begins
  - party on the starvation space: the hunt ends without a showdown
Ambushes and encounters create a showdown and select it.

SHOWDOWN TURNS:
Each round has a monster turn and a survivors' turn, starting with the monster.
  - Monster turn: draw_ai_card once per turn (pass instance to pick which monster draws in multi-monster showdowns)
  - Survivors' turn: each survivor may spend one activation and one movement
Use next_turn to pass to the other side and end_round to start a new round.

ERRORS:
Failures report a kind: EmptyNameError, BoundsError, PartySizeError,
EntityNotFoundError, ScoutError, TurnOrderError, HuntStateError or
PersistenceError. Nothing is saved when a rule is broken.`

// Formatting

func formatResult(res *service.Result) string {
	var b strings.Builder
	if res.Message != "" {
		b.WriteString(res.Message + "\n")
	} else {
		b.WriteString("Done.\n")
	}

	ids := []struct{ label, id string }{
		{"Settlement", res.SettlementID},
		{"Survivor", res.SurvivorID},
		{"Hunt", res.HuntID},
		{"Showdown", res.ShowdownID},
	}
	for _, e := range ids {
		if e.id != "" {
			fmt.Fprintf(&b, "%s ID: %s\n", e.label, e.id)
		}
	}
	if res.Outcome != "" {
		fmt.Fprintf(&b, "Outcome: %s\n", res.Outcome)
	}
	if res.Move != nil {
		fmt.Fprintf(&b, "Board: %s\n", formatBoard(res.Move.SurvivorPosition, res.Move.QuarryPosition))
		if res.Move.Pending != "" {
			fmt.Fprintf(&b, "Pending: %s (call resolve_hunt)\n", res.Move.Pending)
		}
	}
	return b.String()
}

// formatBoard renders the hunt board with S for the party, Q for the quarry
// and X when they share a space
func formatBoard(party, quarry int) string {
	cells := make([]string, engine.BoardSpaces)
	for i := range cells {
		switch {
		case i == party && i == quarry:
			cells[i] = "X"
		case i == party:
			cells[i] = "S"
		case i == quarry:
			cells[i] = "Q"
		default:
			cells[i] = "."
		}
	}
	return "[" + strings.Join(cells, " ") + "]"
}

func formatCampaign(c *engine.Campaign) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Settlements (%d):\n", len(c.Settlements))
	for _, s := range c.Settlements {
		marker := " "
		if s.ID == c.SelectedSettlementID {
			marker = "*"
		}
		fmt.Fprintf(&b, "%s %s %s (%s, year %d, population %d)\n",
			marker, s.ID, s.Name, s.SurvivorType, s.LanternYear, s.Population)
	}

	fmt.Fprintf(&b, "\nSurvivors (%d):\n", len(c.Survivors))
	for _, s := range c.Survivors {
		status := ""
		if s.Dead {
			status = " [dead]"
		} else if s.Retired {
			status = " [retired]"
		}
		fmt.Fprintf(&b, "  %s %s (%s)%s\n", s.ID, s.Name, s.Gender, status)
	}

	for _, h := range c.Hunts {
		if h.Status != engine.StatusActive {
			continue
		}
		fmt.Fprintf(&b, "\nHunt %s: %s level %d\n", h.ID, h.QuarryName, h.QuarryLevel)
		fmt.Fprintf(&b, "  Board: %s\n", formatBoard(h.SurvivorPosition, h.QuarryPosition))
		fmt.Fprintf(&b, "  Party: %s\n", strings.Join(h.Survivors, ", "))
	}

	for _, sd := range c.Showdowns {
		if sd.Status != engine.StatusActive {
			continue
		}
		fmt.Fprintf(&b, "\nShowdown %s: %s level %d\n", sd.ID, sd.MonsterName, sd.MonsterLevel)
		b.WriteString(formatTurn(&sd))
	}
	return b.String()
}

func formatTurn(sd *engine.Showdown) string {
	var b strings.Builder
	fmt.Fprintf(&b, "  Round %d, %s turn\n", sd.Turn.Round, sd.Turn.CurrentTurn)
	if sd.Turn.CurrentTurn == engine.TurnMonster {
		drawn := "not drawn"
		if sd.Turn.MonsterState.AICardDrawn {
			drawn = "drawn"
		}
		fmt.Fprintf(&b, "  AI card: %s\n", drawn)
	}
	for _, st := range sd.Turn.SurvivorStates {
		fmt.Fprintf(&b, "  %s activation used: %v, movement used: %v\n", st.SurvivorID, st.ActivationUsed, st.MovementUsed)
	}
	return b.String()
}

func formatMonsters(monsters []engine.MonsterDefinition) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Monsters (%d):\n", len(monsters))
	for _, m := range monsters {
		levels := make([]string, 0, len(m.Levels))
		for level := engine.MinMonsterLevel; level <= engine.MaxMonsterLevel; level++ {
			if _, ok := m.Levels[level]; ok {
				levels = append(levels, fmt.Sprint(level))
			}
		}
		fmt.Fprintf(&b, "- %s (%s) levels %s\n", m.Name, m.Type, strings.Join(levels, ", "))
	}
	return b.String()
}
