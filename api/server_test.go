package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/wricardo/campaign-keeper/game/engine"
	"github.com/wricardo/campaign-keeper/game/reference"
	"github.com/wricardo/campaign-keeper/game/service"
	"github.com/wricardo/campaign-keeper/game/session"
)

// MockCampaignService implements service.CampaignService for testing
type MockCampaignService struct {
	GetCampaignFunc           func(ctx context.Context) (*engine.Campaign, error)
	SaveFunc                  func(ctx context.Context, patch service.Patch, msg string) *service.Result
	SelectFunc                func(ctx context.Context, sel service.Selection) *service.Result
	SetDisableToastsFunc      func(ctx context.Context, disabled bool) *service.Result
	ExportFunc                func(ctx context.Context) ([]byte, error)
	ImportFunc                func(ctx context.Context, data []byte) *service.Result
	CreateSettlementFunc      func(ctx context.Context, req service.SettlementRequest) *service.Result
	SaveSettlementFunc        func(ctx context.Context, s engine.Settlement) *service.Result
	DeleteSettlementFunc      func(ctx context.Context, id string) *service.Result
	SaveSurvivorFunc          func(ctx context.Context, s engine.Survivor) *service.Result
	DeleteSurvivorFunc        func(ctx context.Context, id string) *service.Result
	CreateHuntFunc            func(ctx context.Context, req service.HuntRequest) *service.Result
	MoveHuntFunc              func(ctx context.Context, id string, survivorPos, quarryPos int) *service.Result
	ResolveHuntFunc           func(ctx context.Context, id string) *service.Result
	AbandonHuntFunc           func(ctx context.Context, id string) *service.Result
	UpdateHuntDetailsFunc     func(ctx context.Context, id string, d engine.HuntSurvivorDetails) *service.Result
	DeleteHuntFunc            func(ctx context.Context, id string) *service.Result
	CreateShowdownFunc        func(ctx context.Context, req service.ShowdownRequest) *service.Result
	DrawAICardFunc            func(ctx context.Context, id string, instance int) *service.Result
	UseSurvivorActionFunc     func(ctx context.Context, id, survivorID string, action engine.SurvivorAction) *service.Result
	NextTurnFunc              func(ctx context.Context, id string) *service.Result
	EndRoundFunc              func(ctx context.Context, id string) *service.Result
	UpdateShowdownDetailsFunc func(ctx context.Context, id string, d engine.ShowdownSurvivorDetails) *service.Result
	EndShowdownFunc           func(ctx context.Context, id string, outcome engine.ShowdownOutcome) *service.Result
	DeleteShowdownFunc        func(ctx context.Context, id string) *service.Result
	ListMonstersFunc          func(ctx context.Context) ([]*engine.MonsterDefinition, error)
	GetMonsterFunc            func(ctx context.Context, name string) (*engine.MonsterDefinition, error)
}

func okResult() *service.Result { return &service.Result{Success: true} }

func (m *MockCampaignService) GetCampaign(ctx context.Context) (*engine.Campaign, error) {
	if m.GetCampaignFunc != nil {
		return m.GetCampaignFunc(ctx)
	}
	return engine.NewCampaign(), nil
}

func (m *MockCampaignService) Save(ctx context.Context, patch service.Patch, msg string) *service.Result {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, patch, msg)
	}
	return okResult()
}

func (m *MockCampaignService) Select(ctx context.Context, sel service.Selection) *service.Result {
	if m.SelectFunc != nil {
		return m.SelectFunc(ctx, sel)
	}
	return okResult()
}

func (m *MockCampaignService) SetDisableToasts(ctx context.Context, disabled bool) *service.Result {
	if m.SetDisableToastsFunc != nil {
		return m.SetDisableToastsFunc(ctx, disabled)
	}
	return okResult()
}

func (m *MockCampaignService) Export(ctx context.Context) ([]byte, error) {
	if m.ExportFunc != nil {
		return m.ExportFunc(ctx)
	}
	return []byte("{}"), nil
}

func (m *MockCampaignService) Import(ctx context.Context, data []byte) *service.Result {
	if m.ImportFunc != nil {
		return m.ImportFunc(ctx, data)
	}
	return okResult()
}

func (m *MockCampaignService) CreateSettlement(ctx context.Context, req service.SettlementRequest) *service.Result {
	if m.CreateSettlementFunc != nil {
		return m.CreateSettlementFunc(ctx, req)
	}
	return okResult()
}

func (m *MockCampaignService) SaveSettlement(ctx context.Context, s engine.Settlement) *service.Result {
	if m.SaveSettlementFunc != nil {
		return m.SaveSettlementFunc(ctx, s)
	}
	return okResult()
}

func (m *MockCampaignService) DeleteSettlement(ctx context.Context, id string) *service.Result {
	if m.DeleteSettlementFunc != nil {
		return m.DeleteSettlementFunc(ctx, id)
	}
	return okResult()
}

func (m *MockCampaignService) SaveSurvivor(ctx context.Context, s engine.Survivor) *service.Result {
	if m.SaveSurvivorFunc != nil {
		return m.SaveSurvivorFunc(ctx, s)
	}
	return okResult()
}

func (m *MockCampaignService) DeleteSurvivor(ctx context.Context, id string) *service.Result {
	if m.DeleteSurvivorFunc != nil {
		return m.DeleteSurvivorFunc(ctx, id)
	}
	return okResult()
}

func (m *MockCampaignService) CreateHunt(ctx context.Context, req service.HuntRequest) *service.Result {
	if m.CreateHuntFunc != nil {
		return m.CreateHuntFunc(ctx, req)
	}
	return okResult()
}

func (m *MockCampaignService) MoveHunt(ctx context.Context, id string, survivorPos, quarryPos int) *service.Result {
	if m.MoveHuntFunc != nil {
		return m.MoveHuntFunc(ctx, id, survivorPos, quarryPos)
	}
	return okResult()
}

func (m *MockCampaignService) ResolveHunt(ctx context.Context, id string) *service.Result {
	if m.ResolveHuntFunc != nil {
		return m.ResolveHuntFunc(ctx, id)
	}
	return okResult()
}

func (m *MockCampaignService) AbandonHunt(ctx context.Context, id string) *service.Result {
	if m.AbandonHuntFunc != nil {
		return m.AbandonHuntFunc(ctx, id)
	}
	return okResult()
}

func (m *MockCampaignService) UpdateHuntDetails(ctx context.Context, id string, d engine.HuntSurvivorDetails) *service.Result {
	if m.UpdateHuntDetailsFunc != nil {
		return m.UpdateHuntDetailsFunc(ctx, id, d)
	}
	return okResult()
}

func (m *MockCampaignService) DeleteHunt(ctx context.Context, id string) *service.Result {
	if m.DeleteHuntFunc != nil {
		return m.DeleteHuntFunc(ctx, id)
	}
	return okResult()
}

func (m *MockCampaignService) CreateShowdown(ctx context.Context, req service.ShowdownRequest) *service.Result {
	if m.CreateShowdownFunc != nil {
		return m.CreateShowdownFunc(ctx, req)
	}
	return okResult()
}

func (m *MockCampaignService) DrawAICard(ctx context.Context, id string, instance int) *service.Result {
	if m.DrawAICardFunc != nil {
		return m.DrawAICardFunc(ctx, id, instance)
	}
	return okResult()
}

func (m *MockCampaignService) UseSurvivorAction(ctx context.Context, id, survivorID string, action engine.SurvivorAction) *service.Result {
	if m.UseSurvivorActionFunc != nil {
		return m.UseSurvivorActionFunc(ctx, id, survivorID, action)
	}
	return okResult()
}

func (m *MockCampaignService) NextTurn(ctx context.Context, id string) *service.Result {
	if m.NextTurnFunc != nil {
		return m.NextTurnFunc(ctx, id)
	}
	return okResult()
}

func (m *MockCampaignService) EndRound(ctx context.Context, id string) *service.Result {
	if m.EndRoundFunc != nil {
		return m.EndRoundFunc(ctx, id)
	}
	return okResult()
}

func (m *MockCampaignService) UpdateShowdownDetails(ctx context.Context, id string, d engine.ShowdownSurvivorDetails) *service.Result {
	if m.UpdateShowdownDetailsFunc != nil {
		return m.UpdateShowdownDetailsFunc(ctx, id, d)
	}
	return okResult()
}

func (m *MockCampaignService) EndShowdown(ctx context.Context, id string, outcome engine.ShowdownOutcome) *service.Result {
	if m.EndShowdownFunc != nil {
		return m.EndShowdownFunc(ctx, id, outcome)
	}
	return okResult()
}

func (m *MockCampaignService) DeleteShowdown(ctx context.Context, id string) *service.Result {
	if m.DeleteShowdownFunc != nil {
		return m.DeleteShowdownFunc(ctx, id)
	}
	return okResult()
}

func (m *MockCampaignService) ListMonsters(ctx context.Context) ([]*engine.MonsterDefinition, error) {
	if m.ListMonstersFunc != nil {
		return m.ListMonstersFunc(ctx)
	}
	return []*engine.MonsterDefinition{}, nil
}

func (m *MockCampaignService) GetMonster(ctx context.Context, name string) (*engine.MonsterDefinition, error) {
	if m.GetMonsterFunc != nil {
		return m.GetMonsterFunc(ctx, name)
	}
	return nil, engine.NotFound("monster", name)
}

func failed(err error) *service.Result {
	return &service.Result{Error: err.Error(), ErrorKind: engine.KindOf(err), Err: err}
}

func doRequest(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func decodeResult(t *testing.T, w *httptest.ResponseRecorder) service.Result {
	t.Helper()
	var res service.Result
	if err := json.NewDecoder(w.Body).Decode(&res); err != nil {
		t.Fatalf("Failed to decode response: %v (body %q)", err, w.Body.String())
	}
	return res
}

func TestHealth(t *testing.T) {
	server := NewServer(&MockCampaignService{}, nil, nil)

	w := doRequest(t, server, "GET", "/api/health", "")
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"ok"`) {
		t.Errorf("Unexpected health body %s", w.Body.String())
	}
}

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"empty name", engine.NewValidationError(engine.ErrEmptyName, "hunt", "quarryName", "", "required"), http.StatusBadRequest},
		{"bounds", engine.NewValidationError(engine.ErrBounds, "hunt", "survivorPosition", 13, "out of range"), http.StatusBadRequest},
		{"party size", engine.NewValidationError(engine.ErrPartySize, "hunt", "survivors", 5, "too many"), http.StatusBadRequest},
		{"scout", engine.NewValidationError(engine.ErrScout, "hunt", "scout", "", "required"), http.StatusBadRequest},
		{"not found", engine.NotFound("hunt", "h1"), http.StatusNotFound},
		{"turn order", engine.NewValidationError(engine.ErrTurnOrder, "showdown", "turn", nil, "already drawn"), http.StatusConflict},
		{"hunt state", engine.NewValidationError(engine.ErrHuntState, "hunt", "status", nil, "resolved"), http.StatusConflict},
		{"persistence", engine.ErrPersistence, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &MockCampaignService{
				ResolveHuntFunc: func(ctx context.Context, id string) *service.Result {
					return failed(tt.err)
				},
			}
			w := doRequest(t, NewServer(mock, nil, nil), "POST", "/api/hunts/h1/resolve", "")
			if w.Code != tt.expected {
				t.Errorf("Expected status %d, got %d", tt.expected, w.Code)
			}
			res := decodeResult(t, w)
			if res.Success || res.ErrorKind != engine.KindOf(tt.err) {
				t.Errorf("Unexpected result %+v", res)
			}
		})
	}
}

func TestMoveHunt(t *testing.T) {
	var gotID string
	var gotSurvivor, gotQuarry int
	mock := &MockCampaignService{
		MoveHuntFunc: func(ctx context.Context, id string, survivorPos, quarryPos int) *service.Result {
			gotID, gotSurvivor, gotQuarry = id, survivorPos, quarryPos
			return &service.Result{Success: true, Message: "Survivors moved.", Move: &engine.HuntMove{SurvivorPosition: survivorPos, QuarryPosition: quarryPos}}
		},
	}
	server := NewServer(mock, nil, nil)

	t.Run("positions forwarded", func(t *testing.T) {
		w := doRequest(t, server, "POST", "/api/hunts/h1/move", `{"survivorPosition": 0, "quarryPosition": 5}`)
		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}
		if gotID != "h1" || gotSurvivor != 0 || gotQuarry != 5 {
			t.Errorf("Unexpected call: %s %d %d", gotID, gotSurvivor, gotQuarry)
		}
		res := decodeResult(t, w)
		if res.Move == nil || res.Move.QuarryPosition != 5 {
			t.Errorf("Expected move in response, got %+v", res)
		}
	})

	t.Run("missing position", func(t *testing.T) {
		w := doRequest(t, server, "POST", "/api/hunts/h1/move", `{"survivorPosition": 1}`)
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		w := doRequest(t, server, "POST", "/api/hunts/h1/move", `{"survivorPosition":`)
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})
}

func TestSurvivorAction(t *testing.T) {
	var got engine.SurvivorAction
	mock := &MockCampaignService{
		UseSurvivorActionFunc: func(ctx context.Context, id, survivorID string, action engine.SurvivorAction) *service.Result {
			if id != "sd1" || survivorID != "s2" {
				t.Errorf("Unexpected ids %s %s", id, survivorID)
			}
			got = action
			return okResult()
		},
	}
	server := NewServer(mock, nil, nil)

	w := doRequest(t, server, "POST", "/api/showdowns/sd1/survivors/s2/movement", "")
	if w.Code != http.StatusOK || got != engine.ActionMovement {
		t.Errorf("Expected movement action, got status %d action %q", w.Code, got)
	}

	w = doRequest(t, server, "POST", "/api/showdowns/sd1/survivors/s2/dodge", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for unknown action, got %d", w.Code)
	}
}

func TestPathIDsOverrideBody(t *testing.T) {
	var settlement engine.Settlement
	var details engine.ShowdownSurvivorDetails
	mock := &MockCampaignService{
		SaveSettlementFunc: func(ctx context.Context, s engine.Settlement) *service.Result {
			settlement = s
			return okResult()
		},
		UpdateShowdownDetailsFunc: func(ctx context.Context, id string, d engine.ShowdownSurvivorDetails) *service.Result {
			details = d
			return okResult()
		},
	}
	server := NewServer(mock, nil, nil)

	doRequest(t, server, "PUT", "/api/settlements/s1", `{"id": "other", "name": "Lantern Hoard"}`)
	if settlement.ID != "s1" || settlement.Name != "Lantern Hoard" {
		t.Errorf("Unexpected settlement %+v", settlement)
	}

	doRequest(t, server, "PUT", "/api/showdowns/sd1/survivors/v2", `{"bleedingTokens": 2, "knockedDown": true}`)
	if details.SurvivorID != "v2" || details.BleedingTokens != 2 || !details.KnockedDown {
		t.Errorf("Unexpected details %+v", details)
	}
}

func TestSaveCampaign(t *testing.T) {
	var gotPatch service.Patch
	var gotMessage string
	mock := &MockCampaignService{
		SaveFunc: func(ctx context.Context, patch service.Patch, msg string) *service.Result {
			gotPatch, gotMessage = patch, msg
			return okResult()
		},
	}
	server := NewServer(mock, nil, nil)

	w := doRequest(t, server, "POST", "/api/campaign", `{"selectedTab": "hunt", "message": "Saved."}`)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if gotPatch.SelectedTab == nil || *gotPatch.SelectedTab != "hunt" || gotMessage != "Saved." {
		t.Errorf("Unexpected patch %+v message %q", gotPatch, gotMessage)
	}
	if gotPatch.Settlements != nil {
		t.Error("Fields absent from the body must stay nil")
	}
}

func TestMonsters(t *testing.T) {
	catalog, err := reference.Default()
	if err != nil {
		t.Fatal(err)
	}
	server := NewServer(service.NewCampaignService(session.NewManager(), service.WithMonsters(catalog)), nil, nil)

	w := doRequest(t, server, "GET", "/api/monsters", "")
	var list []engine.MonsterDefinition
	if err := json.NewDecoder(w.Body).Decode(&list); err != nil {
		t.Fatalf("Failed to decode monsters: %v", err)
	}
	if len(list) != 5 {
		t.Errorf("Expected 5 monsters, got %d", len(list))
	}

	w = doRequest(t, server, "GET", "/api/monsters/white%20lion", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "White Lion") {
		t.Errorf("Expected White Lion, got %d %s", w.Code, w.Body.String())
	}

	w = doRequest(t, server, "GET", "/api/monsters/Phoenix", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestBoard(t *testing.T) {
	w := doRequest(t, NewServer(&MockCampaignService{}, nil, nil), "GET", "/api/board", "")
	var spaces []engine.Space
	if err := json.NewDecoder(w.Body).Decode(&spaces); err != nil {
		t.Fatal(err)
	}
	if len(spaces) != engine.BoardSpaces {
		t.Errorf("Expected %d spaces, got %d", engine.BoardSpaces, len(spaces))
	}
}

func TestExportImport(t *testing.T) {
	var imported []byte
	mock := &MockCampaignService{
		ExportFunc: func(ctx context.Context) ([]byte, error) {
			return []byte(`{"settlements":[]}`), nil
		},
		ImportFunc: func(ctx context.Context, data []byte) *service.Result {
			imported = data
			return failed(engine.NewValidationError(engine.ErrBounds, "campaign", "", nil, "unreadable"))
		},
	}
	server := NewServer(mock, nil, nil)

	w := doRequest(t, server, "GET", "/api/campaign/export", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Header().Get("Content-Disposition"), "campaign.json") {
		t.Errorf("Unexpected export response %d %v", w.Code, w.Header())
	}

	w = doRequest(t, server, "POST", "/api/campaign/import", `not json`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
	if string(imported) != "not json" {
		t.Errorf("Expected raw body to be forwarded, got %q", imported)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	w := doRequest(t, NewServer(&MockCampaignService{}, nil, nil), "GET", "/api/hunts/h1/move", "")
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected status 405, got %d", w.Code)
	}
}

// TestHuntFlow drives a real service through the HTTP surface
func TestHuntFlow(t *testing.T) {
	catalog, err := reference.Default()
	if err != nil {
		t.Fatal(err)
	}
	server := NewServer(service.NewCampaignService(session.NewManager(), service.WithMonsters(catalog)), nil, nil)

	w := doRequest(t, server, "POST", "/api/settlements", `{"name": "People of the Stars", "survivorType": "Core"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("CreateSettlement: status %d %s", w.Code, w.Body.String())
	}
	settlementID := decodeResult(t, w).SettlementID

	var party []string
	for _, name := range []string{"Adam", "Anna", "Paul", "Zoe"} {
		w := doRequest(t, server, "POST", "/api/survivors", `{"name": "`+name+`", "gender": "F", "settlementId": "`+settlementID+`"}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("SaveSurvivor: status %d %s", w.Code, w.Body.String())
		}
		party = append(party, decodeResult(t, w).SurvivorID)
	}

	body, _ := json.Marshal(service.HuntRequest{SettlementID: settlementID, QuarryName: "White Lion", QuarryLevel: 1, Survivors: party})
	w = doRequest(t, server, "POST", "/api/hunts", string(body))
	if w.Code != http.StatusCreated {
		t.Fatalf("CreateHunt: status %d %s", w.Code, w.Body.String())
	}
	huntID := decodeResult(t, w).HuntID

	w = doRequest(t, server, "POST", "/api/hunts/"+huntID+"/move", `{"survivorPosition": 13, "quarryPosition": 6}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected out of range move to fail with 400, got %d", w.Code)
	}

	w = doRequest(t, server, "POST", "/api/hunts/"+huntID+"/move", `{"survivorPosition": 6, "quarryPosition": 6}`)
	res := decodeResult(t, w)
	if !res.Success || res.Move == nil || !res.Move.Overlap {
		t.Fatalf("Expected overlapping move, got %+v", res)
	}

	w = doRequest(t, server, "POST", "/api/hunts/"+huntID+"/resolve", "")
	res = decodeResult(t, w)
	if !res.Success || res.ShowdownID == "" {
		t.Fatalf("Expected showdown from resolved hunt, got %+v", res)
	}

	w = doRequest(t, server, "POST", "/api/showdowns/"+res.ShowdownID+"/ai-card", "")
	if w.Code != http.StatusOK {
		t.Errorf("DrawAICard: status %d", w.Code)
	}
	w = doRequest(t, server, "POST", "/api/showdowns/"+res.ShowdownID+"/ai-card", "")
	if w.Code != http.StatusConflict {
		t.Errorf("Expected second draw to conflict, got %d", w.Code)
	}

	w = doRequest(t, server, "GET", "/api/campaign", "")
	var campaign engine.Campaign
	if err := json.NewDecoder(w.Body).Decode(&campaign); err != nil {
		t.Fatal(err)
	}
	if campaign.SelectedShowdownID != res.ShowdownID || len(campaign.Showdowns) != 1 {
		t.Errorf("Expected the new showdown to be selected, got %+v", campaign)
	}
}

func TestShowdownFlow_MultiMonster(t *testing.T) {
	catalog, err := reference.Default()
	if err != nil {
		t.Fatal(err)
	}
	server := NewServer(service.NewCampaignService(session.NewManager(), service.WithMonsters(catalog)), nil, nil)

	w := doRequest(t, server, "POST", "/api/settlements", `{"name": "People of the Sun", "survivorType": "Core"}`)
	settlementID := decodeResult(t, w).SettlementID
	var party []string
	for _, name := range []string{"Adam", "Anna"} {
		w := doRequest(t, server, "POST", "/api/survivors", `{"name": "`+name+`", "gender": "M", "settlementId": "`+settlementID+`"}`)
		party = append(party, decodeResult(t, w).SurvivorID)
	}

	body, _ := json.Marshal(service.ShowdownRequest{SettlementID: settlementID, MonsterName: "Twin Wardens", MonsterLevel: 1, Survivors: party})
	w = doRequest(t, server, "POST", "/api/showdowns", string(body))
	if w.Code != http.StatusCreated {
		t.Fatalf("CreateShowdown: status %d %s", w.Code, w.Body.String())
	}
	showdownID := decodeResult(t, w).ShowdownID

	w = doRequest(t, server, "POST", "/api/showdowns/"+showdownID+"/ai-card", `{"instance": 2}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected out of range instance to fail with 400, got %d", w.Code)
	}

	w = doRequest(t, server, "POST", "/api/showdowns/"+showdownID+"/ai-card", `{"instance": 1}`)
	res := decodeResult(t, w)
	if !res.Success {
		t.Fatalf("DrawAICard failed: %s", res.Error)
	}
	monster := res.Campaign.Showdowns[0].Monster
	if !monster.IsMulti() || len(monster.Multi) != 2 {
		t.Fatalf("Expected two monster instances, got %+v", monster)
	}
	if monster.Multi[0].AIDeckRemaining != 4 || monster.Multi[1].AIDeckRemaining != 3 {
		t.Errorf("Expected remaining 4/3, got %d/%d", monster.Multi[0].AIDeckRemaining, monster.Multi[1].AIDeckRemaining)
	}
}
