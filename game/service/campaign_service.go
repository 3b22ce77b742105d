package service

import (
	"context"

	"github.com/wricardo/campaign-keeper/game/engine"
)

// CampaignService defines every campaign operation exposed to callers.
// Mutating operations never return an error: failures are reported in the Result.
type CampaignService interface {
	// Campaign
	GetCampaign(ctx context.Context) (*engine.Campaign, error)
	Save(ctx context.Context, patch Patch, successMessage string) *Result
	Select(ctx context.Context, sel Selection) *Result
	SetDisableToasts(ctx context.Context, disabled bool) *Result
	Export(ctx context.Context) ([]byte, error)
	Import(ctx context.Context, data []byte) *Result

	// Settlements and survivors
	CreateSettlement(ctx context.Context, req SettlementRequest) *Result
	SaveSettlement(ctx context.Context, settlement engine.Settlement) *Result
	DeleteSettlement(ctx context.Context, id string) *Result
	SaveSurvivor(ctx context.Context, survivor engine.Survivor) *Result
	DeleteSurvivor(ctx context.Context, id string) *Result

	// Hunts
	CreateHunt(ctx context.Context, req HuntRequest) *Result
	MoveHunt(ctx context.Context, huntID string, survivorPosition, quarryPosition int) *Result
	ResolveHunt(ctx context.Context, huntID string) *Result
	AbandonHunt(ctx context.Context, huntID string) *Result
	UpdateHuntDetails(ctx context.Context, huntID string, details engine.HuntSurvivorDetails) *Result
	DeleteHunt(ctx context.Context, huntID string) *Result

	// Showdowns
	CreateShowdown(ctx context.Context, req ShowdownRequest) *Result
	DrawAICard(ctx context.Context, showdownID string, instance int) *Result
	UseSurvivorAction(ctx context.Context, showdownID, survivorID string, action engine.SurvivorAction) *Result
	NextTurn(ctx context.Context, showdownID string) *Result
	EndRound(ctx context.Context, showdownID string) *Result
	UpdateShowdownDetails(ctx context.Context, showdownID string, details engine.ShowdownSurvivorDetails) *Result
	EndShowdown(ctx context.Context, showdownID string, outcome engine.ShowdownOutcome) *Result
	DeleteShowdown(ctx context.Context, showdownID string) *Result

	// Reference data
	ListMonsters(ctx context.Context) ([]*engine.MonsterDefinition, error)
	GetMonster(ctx context.Context, name string) (*engine.MonsterDefinition, error)
}

// Store is the single-writer campaign store
type Store interface {
	// Read returns a deep copy of the current campaign, or an empty one
	Read() (*engine.Campaign, error)

	// Commit merges patch over the current campaign and persists the result.
	// On failure the stored campaign is unchanged.
	Commit(patch Patch) (*engine.Campaign, error)
}

// Notifier receives every committed campaign with its display message
type Notifier interface {
	Notify(campaign *engine.Campaign, message string)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(campaign *engine.Campaign, message string)

func (f NotifierFunc) Notify(campaign *engine.Campaign, message string) {
	f(campaign, message)
}

// MonsterCatalog provides read-only reference monster data
type MonsterCatalog interface {
	Lookup(name string) (*engine.MonsterDefinition, error)
	List() []*engine.MonsterDefinition
	LevelData(name string, level int) (engine.MonsterInstanceData, error)
}
