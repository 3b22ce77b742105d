package schema

import (
	"fmt"
	"slices"

	"github.com/wricardo/campaign-keeper/game/engine"
)

var settlementRules = []rule[engine.Settlement]{
	{"id", "nonblank", engine.ErrEmptyName, "id must not be empty",
		func(s *engine.Settlement) any { return s.ID }},
	{"name", "nonblank", engine.ErrEmptyName, "name must not be empty",
		func(s *engine.Settlement) any { return s.Name }},
	{"survivorType", "oneof=Core Arc", engine.ErrBounds, "survivor type must be Core or Arc",
		func(s *engine.Settlement) any { return s.SurvivorType }},
	{"lanternYear", "gte=0", engine.ErrBounds, "lantern year must be >= 0",
		func(s *engine.Settlement) any { return s.LanternYear }},
	{"survivalLimit", "gte=1", engine.ErrBounds, "survival limit must be >= 1",
		func(s *engine.Settlement) any { return s.SurvivalLimit }},
	{"population", "gte=0", engine.ErrBounds, "population must be >= 0",
		func(s *engine.Settlement) any { return s.Population }},
	{"deathCount", "gte=0", engine.ErrBounds, "death count must be >= 0",
		func(s *engine.Settlement) any { return s.DeathCount }},
}

var survivorRules = []rule[engine.Survivor]{
	{"id", "nonblank", engine.ErrEmptyName, "id must not be empty",
		func(s *engine.Survivor) any { return s.ID }},
	{"name", "nonblank", engine.ErrEmptyName, "name must not be empty",
		func(s *engine.Survivor) any { return s.Name }},
	{"settlementId", "nonblank", engine.ErrEntityNotFound, "survivor must belong to a settlement",
		func(s *engine.Survivor) any { return s.SettlementID }},
	{"gender", "oneof=M F", engine.ErrBounds, "gender must be M or F",
		func(s *engine.Survivor) any { return s.Gender }},
	{"huntXP", "gte=0", engine.ErrBounds, "hunt XP must be >= 0",
		func(s *engine.Survivor) any { return s.HuntXP }},
	{"survival", "gte=0", engine.ErrBounds, "survival must be >= 0",
		func(s *engine.Survivor) any { return s.Survival }},
	{"movement", "gte=0", engine.ErrBounds, "movement must be >= 0",
		func(s *engine.Survivor) any { return s.Movement }},
	{"insanity", "gte=0", engine.ErrBounds, "insanity must be >= 0",
		func(s *engine.Survivor) any { return s.Insanity }},
	{"courage", "gte=0", engine.ErrBounds, "courage must be >= 0",
		func(s *engine.Survivor) any { return s.Courage }},
	{"understanding", "gte=0", engine.ErrBounds, "understanding must be >= 0",
		func(s *engine.Survivor) any { return s.Understanding }},
	{"systemicPressure", "gte=0", engine.ErrBounds, "systemic pressure must be >= 0",
		func(s *engine.Survivor) any { return s.SystemicPressure }},
	{"torment", "gte=0", engine.ErrBounds, "torment must be >= 0",
		func(s *engine.Survivor) any { return s.Torment }},
	{"lumi", "gte=0", engine.ErrBounds, "lumi must be >= 0",
		func(s *engine.Survivor) any { return s.Lumi }},
}

var huntRules = []rule[engine.Hunt]{
	{"id", "nonblank", engine.ErrEmptyName, "id must not be empty",
		func(h *engine.Hunt) any { return h.ID }},
	{"quarryName", "nonblank", engine.ErrEmptyName, "quarry name must not be empty",
		func(h *engine.Hunt) any { return h.QuarryName }},
	{"quarryLevel", "oneof=1 2 3 4", engine.ErrBounds, "quarry level must be 1-4",
		func(h *engine.Hunt) any { return h.QuarryLevel }},
	{"survivors", "min=1,max=4", engine.ErrPartySize, "party must have between 1 and 4 survivors",
		func(h *engine.Hunt) any { return h.Survivors }},
	{"survivorPosition", "gte=0,lte=12", engine.ErrBounds, "survivor position must be on the board",
		func(h *engine.Hunt) any { return h.SurvivorPosition }},
	{"quarryPosition", "gte=0,lte=12", engine.ErrBounds, "quarry position must be on the board",
		func(h *engine.Hunt) any { return h.QuarryPosition }},
	{"status", "oneof=active resolved", engine.ErrBounds, "status must be active or resolved",
		func(h *engine.Hunt) any { return h.Status }},
}

var showdownRules = []rule[engine.Showdown]{
	{"id", "nonblank", engine.ErrEmptyName, "id must not be empty",
		func(s *engine.Showdown) any { return s.ID }},
	{"monsterName", "nonblank", engine.ErrEmptyName, "monster name must not be empty",
		func(s *engine.Showdown) any { return s.MonsterName }},
	{"monsterLevel", "oneof=1 2 3 4", engine.ErrBounds, "monster level must be 1-4",
		func(s *engine.Showdown) any { return s.MonsterLevel }},
	{"type", "oneof=quarry nemesis", engine.ErrBounds, "type must be quarry or nemesis",
		func(s *engine.Showdown) any { return s.Type }},
	{"survivors", "min=1,max=4", engine.ErrPartySize, "party must have between 1 and 4 survivors",
		func(s *engine.Showdown) any { return s.Survivors }},
	{"status", "oneof=active ended", engine.ErrBounds, "status must be active or ended",
		func(s *engine.Showdown) any { return s.Status }},
	{"turn.currentTurn", "oneof=MONSTER SURVIVORS", engine.ErrBounds, "current turn must be MONSTER or SURVIVORS",
		func(s *engine.Showdown) any { return s.Turn.CurrentTurn }},
	{"turn.round", "gte=1", engine.ErrBounds, "round must be >= 1",
		func(s *engine.Showdown) any { return s.Turn.Round }},
}

var combatDetailRules = []rule[engine.ShowdownSurvivorDetails]{
	{"bleedingTokens", "gte=0", engine.ErrBounds, "bleeding tokens must be >= 0",
		func(d *engine.ShowdownSurvivorDetails) any { return d.BleedingTokens }},
	{"blockTokens", "gte=0", engine.ErrBounds, "block tokens must be >= 0",
		func(d *engine.ShowdownSurvivorDetails) any { return d.BlockTokens }},
	{"deflectTokens", "gte=0", engine.ErrBounds, "deflect tokens must be >= 0",
		func(d *engine.ShowdownSurvivorDetails) any { return d.DeflectTokens }},
}

// ValidateSettlement checks a settlement and its nested records
func ValidateSettlement(s *engine.Settlement) error {
	if s == nil {
		return missing(KindSettlement)
	}
	if err := check("settlement", "", s, settlementRules); err != nil {
		return err
	}

	for i, q := range s.Quarries {
		if err := nonBlank("settlement", fmt.Sprintf("quarries[%d].name", i), q.Name); err != nil {
			return err
		}
	}
	for i, n := range s.Nemeses {
		if err := nonBlank("settlement", fmt.Sprintf("nemeses[%d].name", i), n.Name); err != nil {
			return err
		}
	}
	for i, m := range s.Milestones {
		if err := nonBlank("settlement", fmt.Sprintf("milestones[%d].name", i), m.Name); err != nil {
			return err
		}
	}
	for i, p := range s.Principles {
		if err := validate.Var(p.Selected, "oneof=0 1 2"); err != nil {
			return engine.NewValidationError(engine.ErrBounds, "settlement", fmt.Sprintf("principles[%d].selected", i),
				p.Selected, "principle selection must be 0, 1 or 2")
		}
	}
	for i, r := range s.Resources {
		if err := nonBlank("settlement", fmt.Sprintf("resources[%d].name", i), r.Name); err != nil {
			return err
		}
		if r.Amount < 0 {
			return engine.NewValidationError(engine.ErrBounds, "settlement", fmt.Sprintf("resources[%d].amount", i),
				r.Amount, "resource amount must be >= 0")
		}
	}
	return nil
}

// ValidateSurvivor checks a survivor in isolation. Whether its settlement exists
// is checked by ValidateCampaign.
func ValidateSurvivor(s *engine.Survivor) error {
	if s == nil {
		return missing(KindSurvivor)
	}
	return check("survivor", "", s, survivorRules)
}

// ValidateHunt checks a hunt, its party and its per-survivor details
func ValidateHunt(h *engine.Hunt) error {
	if h == nil {
		return missing(KindHunt)
	}
	if err := check("hunt", "", h, huntRules); err != nil {
		return err
	}
	if err := checkParty("hunt", h.Survivors, h.Scout); err != nil {
		return err
	}
	for i, d := range h.SurvivorDetails {
		if !slices.Contains(h.Survivors, d.SurvivorID) {
			return engine.NewValidationError(engine.ErrEntityNotFound, "hunt", fmt.Sprintf("survivorDetails[%d].survivorId", i),
				d.SurvivorID, "survivor %q is not in the party", d.SurvivorID)
		}
	}
	return nil
}

// ValidateShowdown checks a showdown, its turn state and its monster stats
func ValidateShowdown(s *engine.Showdown) error {
	if s == nil {
		return missing(KindShowdown)
	}
	if err := check("showdown", "", s, showdownRules); err != nil {
		return err
	}
	if err := checkParty("showdown", s.Survivors, s.Scout); err != nil {
		return err
	}
	if err := checkTurnStates(s); err != nil {
		return err
	}
	for i := range s.SurvivorDetails {
		d := &s.SurvivorDetails[i]
		prefix := fmt.Sprintf("survivorDetails[%d].", i)
		if !slices.Contains(s.Survivors, d.SurvivorID) {
			return engine.NewValidationError(engine.ErrEntityNotFound, "showdown", prefix+"survivorId",
				d.SurvivorID, "survivor %q is not in the showdown", d.SurvivorID)
		}
		if err := check("showdown", prefix, d, combatDetailRules); err != nil {
			return err
		}
	}
	if !s.Monster.Empty() {
		if err := ValidateMonsterInstance(s.Monster.IsMulti(), s.Monster); err != nil {
			return err
		}
	}
	return nil
}

// checkTurnStates requires exactly one turn state per party member
func checkTurnStates(s *engine.Showdown) error {
	seen := make(map[string]bool, len(s.Turn.SurvivorStates))
	for i, st := range s.Turn.SurvivorStates {
		field := fmt.Sprintf("turn.survivorStates[%d].survivorId", i)
		if !slices.Contains(s.Survivors, st.SurvivorID) {
			return engine.NewValidationError(engine.ErrEntityNotFound, "showdown", field,
				st.SurvivorID, "survivor %q is not in the showdown", st.SurvivorID)
		}
		if seen[st.SurvivorID] {
			return engine.NewValidationError(engine.ErrTurnOrder, "showdown", field,
				st.SurvivorID, "survivor %q has more than one turn state", st.SurvivorID)
		}
		seen[st.SurvivorID] = true
	}
	for _, id := range s.Survivors {
		if !seen[id] {
			return engine.NewValidationError(engine.ErrTurnOrder, "showdown", "turn.survivorStates",
				id, "survivor %q has no turn state", id)
		}
	}
	return nil
}

// checkParty rejects duplicate members and a scout who is also in the party
func checkParty(entity string, survivors []string, scout string) error {
	seen := make(map[string]bool, len(survivors))
	for i, id := range survivors {
		if err := nonBlank(entity, fmt.Sprintf("survivors[%d]", i), id); err != nil {
			return err
		}
		if seen[id] {
			return engine.NewValidationError(engine.ErrPartySize, entity, "survivors", id,
				"survivor %q appears twice in the party", id)
		}
		seen[id] = true
	}
	if scout != "" && seen[scout] {
		return engine.NewValidationError(engine.ErrScout, entity, "scout", scout,
			"scout %q is also in the party", scout)
	}
	return nil
}

func nonBlank(entity, field, value string) error {
	if err := validate.Var(value, "nonblank"); err != nil {
		return engine.NewValidationError(engine.ErrEmptyName, entity, field, value, "name must not be empty")
	}
	return nil
}
