package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/wricardo/campaign-keeper/game/engine"
	"github.com/wricardo/campaign-keeper/game/service"
)

// Client drives the campaign REST API
type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type apiError struct {
	Error     string `json:"error"`
	ErrorKind string `json:"errorKind"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		var apiErr apiError
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			if apiErr.ErrorKind != "" {
				return fmt.Errorf("%s %s: %s: %s", method, path, apiErr.ErrorKind, apiErr.Error)
			}
			return fmt.Errorf("%s %s: %s", method, path, apiErr.Error)
		}
		return fmt.Errorf("%s %s failed: %s", method, path, resp.Status)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}

func (c *Client) mutate(ctx context.Context, method, path string, body any) (*service.Result, error) {
	var res service.Result
	if err := c.do(ctx, method, path, body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) Monsters(ctx context.Context) ([]engine.MonsterDefinition, error) {
	var list []engine.MonsterDefinition
	if err := c.do(ctx, http.MethodGet, "/api/monsters", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Client) Campaign(ctx context.Context) (*engine.Campaign, error) {
	var campaign engine.Campaign
	if err := c.do(ctx, http.MethodGet, "/api/campaign", nil, &campaign); err != nil {
		return nil, err
	}
	return &campaign, nil
}

func (c *Client) CreateSettlement(ctx context.Context, name string) (string, error) {
	res, err := c.mutate(ctx, http.MethodPost, "/api/settlements", service.SettlementRequest{Name: name})
	if err != nil {
		return "", err
	}
	return res.SettlementID, nil
}

func (c *Client) AddSurvivor(ctx context.Context, settlementID, name string, gender engine.Gender) (string, error) {
	res, err := c.mutate(ctx, http.MethodPost, "/api/survivors", engine.Survivor{
		SettlementID: settlementID,
		Name:         name,
		Gender:       gender,
	})
	if err != nil {
		return "", err
	}
	return res.SurvivorID, nil
}

func (c *Client) StartHunt(ctx context.Context, req service.HuntRequest) (*engine.Hunt, error) {
	res, err := c.mutate(ctx, http.MethodPost, "/api/hunts", req)
	if err != nil {
		return nil, err
	}
	return huntIn(res)
}

type moveRequest struct {
	SurvivorPosition int `json:"survivorPosition"`
	QuarryPosition   int `json:"quarryPosition"`
}

// Move updates the board and returns the hunt as committed
func (c *Client) Move(ctx context.Context, huntID string, survivorPos, quarryPos int) (*engine.Hunt, *engine.HuntMove, error) {
	res, err := c.mutate(ctx, http.MethodPost, "/api/hunts/"+huntID+"/move", moveRequest{survivorPos, quarryPos})
	if err != nil {
		return nil, nil, err
	}
	hunt, err := huntIn(res)
	if err != nil {
		return nil, nil, err
	}
	return hunt, res.Move, nil
}

func (c *Client) Resolve(ctx context.Context, huntID string) (*service.Result, error) {
	return c.mutate(ctx, http.MethodPost, "/api/hunts/"+huntID+"/resolve", nil)
}

func (c *Client) Abandon(ctx context.Context, huntID string) error {
	_, err := c.mutate(ctx, http.MethodPost, "/api/hunts/"+huntID+"/abandon", nil)
	return err
}

// DrawAICard draws for one monster instance and returns its remaining deck
func (c *Client) DrawAICard(ctx context.Context, showdownID string, instance int) (int, error) {
	body := struct {
		Instance int `json:"instance"`
	}{instance}
	res, err := c.mutate(ctx, http.MethodPost, "/api/showdowns/"+showdownID+"/ai-card", body)
	if err != nil {
		return 0, err
	}
	if res.Campaign == nil {
		return 0, nil
	}
	for _, sd := range res.Campaign.Showdowns {
		if sd.ID == showdownID {
			if stats, err := sd.Monster.Instance(instance); err == nil {
				return stats.AIDeckRemaining, nil
			}
		}
	}
	return 0, nil
}

func (c *Client) Act(ctx context.Context, showdownID, survivorID string, action engine.SurvivorAction) error {
	_, err := c.mutate(ctx, http.MethodPost,
		fmt.Sprintf("/api/showdowns/%s/survivors/%s/%s", showdownID, survivorID, action), nil)
	return err
}

func (c *Client) NextTurn(ctx context.Context, showdownID string) error {
	_, err := c.mutate(ctx, http.MethodPost, "/api/showdowns/"+showdownID+"/next-turn", nil)
	return err
}

func (c *Client) EndShowdown(ctx context.Context, showdownID string, outcome engine.ShowdownOutcome) error {
	body := struct {
		Outcome engine.ShowdownOutcome `json:"outcome"`
	}{outcome}
	_, err := c.mutate(ctx, http.MethodPost, "/api/showdowns/"+showdownID+"/end", body)
	return err
}

func huntIn(res *service.Result) (*engine.Hunt, error) {
	if res.Campaign == nil {
		return nil, fmt.Errorf("response for hunt %s carries no campaign", res.HuntID)
	}
	for i := range res.Campaign.Hunts {
		if res.Campaign.Hunts[i].ID == res.HuntID {
			return &res.Campaign.Hunts[i], nil
		}
	}
	return nil, fmt.Errorf("hunt %s missing from campaign", res.HuntID)
}
