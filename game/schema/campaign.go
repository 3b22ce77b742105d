package schema

import (
	"fmt"

	"github.com/wricardo/campaign-keeper/game/engine"
)

// ValidateCampaign checks every entity of the aggregate and the references
// between them. Selected ids must point at existing entities.
func ValidateCampaign(c *engine.Campaign) error {
	if c == nil {
		return missing(KindCampaign)
	}

	settlements := make(map[string]*engine.Settlement, len(c.Settlements))
	for i := range c.Settlements {
		s := &c.Settlements[i]
		if err := ValidateSettlement(s); err != nil {
			return err
		}
		if err := unique("settlement", s.ID, settlements); err != nil {
			return err
		}
		settlements[s.ID] = s
	}

	survivors := make(map[string]*engine.Survivor, len(c.Survivors))
	for i := range c.Survivors {
		s := &c.Survivors[i]
		if err := ValidateSurvivor(s); err != nil {
			return err
		}
		if err := unique("survivor", s.ID, survivors); err != nil {
			return err
		}
		if _, ok := settlements[s.SettlementID]; !ok {
			return engine.NewValidationError(engine.ErrEntityNotFound, "survivor", "settlementId", s.SettlementID,
				"settlement %q not found", s.SettlementID)
		}
		survivors[s.ID] = s
	}

	hunts := make(map[string]*engine.Hunt, len(c.Hunts))
	for i := range c.Hunts {
		h := &c.Hunts[i]
		if err := ValidateHunt(h); err != nil {
			return err
		}
		if err := unique("hunt", h.ID, hunts); err != nil {
			return err
		}
		if h.Status == engine.StatusActive {
			if err := checkReferences("hunt", h.SettlementID, h.Survivors, h.Scout, settlements, survivors); err != nil {
				return err
			}
		}
		hunts[h.ID] = h
	}

	showdowns := make(map[string]*engine.Showdown, len(c.Showdowns))
	for i := range c.Showdowns {
		s := &c.Showdowns[i]
		if err := ValidateShowdown(s); err != nil {
			return err
		}
		if err := unique("showdown", s.ID, showdowns); err != nil {
			return err
		}
		if s.Status == engine.StatusActive {
			if err := checkReferences("showdown", s.SettlementID, s.Survivors, s.Scout, settlements, survivors); err != nil {
				return err
			}
		}
		showdowns[s.ID] = s
	}

	selections := []struct {
		field  string
		entity string
		id     string
		exists func(string) bool
	}{
		{"selectedSettlementId", "settlement", c.SelectedSettlementID, has(settlements)},
		{"selectedSurvivorId", "survivor", c.SelectedSurvivorID, has(survivors)},
		{"selectedHuntId", "hunt", c.SelectedHuntID, has(hunts)},
		{"selectedShowdownId", "showdown", c.SelectedShowdownID, has(showdowns)},
	}
	for _, sel := range selections {
		if sel.id != "" && !sel.exists(sel.id) {
			return engine.NewValidationError(engine.ErrEntityNotFound, "campaign", sel.field, sel.id,
				"%s %q not found", sel.entity, sel.id)
		}
	}
	return nil
}

// checkReferences verifies that an ongoing activity points at live entities
func checkReferences(entity, settlementID string, party []string, scout string,
	settlements map[string]*engine.Settlement, survivors map[string]*engine.Survivor) error {

	var settlement *engine.Settlement
	if settlementID != "" {
		var ok bool
		if settlement, ok = settlements[settlementID]; !ok {
			return engine.NewValidationError(engine.ErrEntityNotFound, entity, "settlementId", settlementID,
				"settlement %q not found", settlementID)
		}
	}
	for i, id := range party {
		if _, ok := survivors[id]; !ok {
			return engine.NewValidationError(engine.ErrEntityNotFound, entity, fmt.Sprintf("survivors[%d]", i), id,
				"survivor %q not found", id)
		}
	}
	if scout == "" {
		return nil
	}
	if _, ok := survivors[scout]; !ok {
		return engine.NewValidationError(engine.ErrEntityNotFound, entity, "scout", scout, "survivor %q not found", scout)
	}
	if settlement != nil && !settlement.UsesScouts {
		return engine.NewValidationError(engine.ErrScout, entity, "scout", scout,
			"settlement %q does not use scouts", settlement.Name)
	}
	return nil
}

func unique[T any](entity, id string, seen map[string]T) error {
	if _, dup := seen[id]; dup {
		return engine.NewValidationError(engine.ErrBounds, entity, "id", id, "duplicate %s id %q", entity, id)
	}
	return nil
}

func has[T any](m map[string]T) func(string) bool {
	return func(id string) bool {
		_, ok := m[id]
		return ok
	}
}
