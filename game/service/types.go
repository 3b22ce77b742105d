package service

import (
	"github.com/wricardo/campaign-keeper/game/engine"
)

// Patch is a partial campaign. Non-nil fields replace the matching top-level
// field entirely; nested collections must already be merged by the caller.
type Patch struct {
	Settlements          *[]engine.Settlement `json:"settlements,omitempty"`
	Survivors            *[]engine.Survivor   `json:"survivors,omitempty"`
	Hunts                *[]engine.Hunt       `json:"hunts,omitempty"`
	Showdowns            *[]engine.Showdown   `json:"showdowns,omitempty"`
	SelectedHuntID       *string              `json:"selectedHuntId,omitempty"`
	SelectedShowdownID   *string              `json:"selectedShowdownId,omitempty"`
	SelectedSettlementID *string              `json:"selectedSettlementId,omitempty"`
	SelectedSurvivorID   *string              `json:"selectedSurvivorId,omitempty"`
	SelectedTab          *string              `json:"selectedTab,omitempty"`
	DisableToasts        *bool                `json:"disableToasts,omitempty"`
}

// FullPatch returns a patch that replaces every field with c's
func FullPatch(c *engine.Campaign) Patch {
	return Patch{
		Settlements:          &c.Settlements,
		Survivors:            &c.Survivors,
		Hunts:                &c.Hunts,
		Showdowns:            &c.Showdowns,
		SelectedHuntID:       &c.SelectedHuntID,
		SelectedShowdownID:   &c.SelectedShowdownID,
		SelectedSettlementID: &c.SelectedSettlementID,
		SelectedSurvivorID:   &c.SelectedSurvivorID,
		SelectedTab:          &c.SelectedTab,
		DisableToasts:        &c.DisableToasts,
	}
}

// Apply returns a shallow copy of c with the patch fields replaced
func (p Patch) Apply(c *engine.Campaign) *engine.Campaign {
	merged := *c
	if p.Settlements != nil {
		merged.Settlements = *p.Settlements
	}
	if p.Survivors != nil {
		merged.Survivors = *p.Survivors
	}
	if p.Hunts != nil {
		merged.Hunts = *p.Hunts
	}
	if p.Showdowns != nil {
		merged.Showdowns = *p.Showdowns
	}
	if p.SelectedHuntID != nil {
		merged.SelectedHuntID = *p.SelectedHuntID
	}
	if p.SelectedShowdownID != nil {
		merged.SelectedShowdownID = *p.SelectedShowdownID
	}
	if p.SelectedSettlementID != nil {
		merged.SelectedSettlementID = *p.SelectedSettlementID
	}
	if p.SelectedSurvivorID != nil {
		merged.SelectedSurvivorID = *p.SelectedSurvivorID
	}
	if p.SelectedTab != nil {
		merged.SelectedTab = *p.SelectedTab
	}
	if p.DisableToasts != nil {
		merged.DisableToasts = *p.DisableToasts
	}
	return &merged
}

// Empty reports whether the patch changes nothing
func (p Patch) Empty() bool {
	return p == Patch{}
}

// Selection updates the selected ids. Nil fields are left alone; an empty
// string clears the selection.
type Selection struct {
	SettlementID *string `json:"selectedSettlementId,omitempty"`
	SurvivorID   *string `json:"selectedSurvivorId,omitempty"`
	HuntID       *string `json:"selectedHuntId,omitempty"`
	ShowdownID   *string `json:"selectedShowdownId,omitempty"`
	Tab          *string `json:"selectedTab,omitempty"`
}

// SettlementRequest creates a new settlement
type SettlementRequest struct {
	Name         string              `json:"name"`
	SurvivorType engine.SurvivorType `json:"survivorType"`
	UsesScouts   bool                `json:"usesScouts"`
}

// HuntRequest starts a hunt. An empty SettlementID uses the selected settlement.
type HuntRequest struct {
	SettlementID string   `json:"settlementId"`
	QuarryName   string   `json:"quarryName"`
	QuarryLevel  int      `json:"quarryLevel"`
	Survivors    []string `json:"survivors"`
	Scout        string   `json:"scout,omitempty"`
}

// ShowdownRequest starts a showdown, either from a resolved hunt (HuntID) or directly
type ShowdownRequest struct {
	HuntID       string             `json:"huntId,omitempty"`
	SettlementID string             `json:"settlementId"`
	MonsterName  string             `json:"monsterName"`
	MonsterLevel int                `json:"monsterLevel"`
	Type         engine.MonsterType `json:"type,omitempty"`
	Survivors    []string           `json:"survivors"`
	Scout        string             `json:"scout,omitempty"`
	Ambush       bool               `json:"ambush"`
}

// Result is the outcome of a pipeline run
type Result struct {
	Success      bool             `json:"success"`
	Message      string           `json:"message,omitempty"`
	Error        string           `json:"error,omitempty"`
	ErrorKind    string           `json:"errorKind,omitempty"`
	Campaign     *engine.Campaign `json:"campaign,omitempty"`
	Move         *engine.HuntMove `json:"move,omitempty"`
	Outcome      string           `json:"outcome,omitempty"`
	SettlementID string           `json:"settlementId,omitempty"`
	SurvivorID   string           `json:"survivorId,omitempty"`
	HuntID       string           `json:"huntId,omitempty"`
	ShowdownID   string           `json:"showdownId,omitempty"`
	Err          error            `json:"-"`
}

// Upsert replaces the entity with item's id in place, or appends item
func Upsert[T engine.Identified](list []T, item T) []T {
	if i := Find(list, item.EntityID()); i >= 0 {
		list[i] = item
		return list
	}
	return append(list, item)
}

// Remove drops the entity with the given id, reporting whether it existed
func Remove[T engine.Identified](list []T, id string) ([]T, bool) {
	i := Find(list, id)
	if i < 0 {
		return list, false
	}
	return append(list[:i], list[i+1:]...), true
}

// Find returns the index of the entity with the given id, or -1
func Find[T engine.Identified](list []T, id string) int {
	for i := range list {
		if list[i].EntityID() == id {
			return i
		}
	}
	return -1
}
