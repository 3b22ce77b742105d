package engine

import (
	"slices"
	"strings"
)

// HuntPhase is the lifecycle state of a hunt
type HuntPhase string

const (
	HuntNotStarted HuntPhase = "not_started"
	HuntActive     HuntPhase = "active"
	HuntResolved   HuntPhase = "resolved"
)

// HuntOutcome records how a hunt ended
type HuntOutcome string

const (
	OutcomeNone       HuntOutcome = ""
	OutcomeShowdown   HuntOutcome = "showdown"
	OutcomeAmbush     HuntOutcome = "ambush"
	OutcomeStarvation HuntOutcome = "starvation"
	OutcomeAbandoned  HuntOutcome = "abandoned"
)

// StartsShowdown reports whether the outcome leads into a showdown
func (o HuntOutcome) StartsShowdown() bool {
	return o == OutcomeShowdown || o == OutcomeAmbush
}

// Mover records which token changed in the last position update
type Mover string

const (
	MoverSurvivors Mover = "survivors"
	MoverQuarry    Mover = "quarry"
)

const (
	NoteSurvivorsMoved = "Survivors moved."
	NoteQuarryMoved    = "Quarry moved."
)

// HuntParams are the selections needed to start a hunt
type HuntParams struct {
	SettlementID string
	QuarryName   string
	QuarryLevel  int
	Survivors    []string
	Scout        string
	UsesScouts   bool // whether the owning settlement plays with scouts
}

// HuntMove is the result of a position update
type HuntMove struct {
	Note             string      `json:"note"`
	SurvivorsMoved   bool        `json:"survivorsMoved"`
	QuarryMoved      bool        `json:"quarryMoved"`
	SurvivorPosition int         `json:"survivorPosition"`
	QuarryPosition   int         `json:"quarryPosition"`
	Overlap          bool        `json:"overlap"`
	Pending          HuntOutcome `json:"pending,omitempty"`
}

// SpaceRule decides whether a hunt resolves in its current position.
// Scenario-specific rules (the hazard space, story events) are supplied by callers.
type SpaceRule interface {
	Evaluate(h *Hunt) (HuntOutcome, bool)
}

// SpaceRuleFunc adapts a function to SpaceRule
type SpaceRuleFunc func(h *Hunt) (HuntOutcome, bool)

func (f SpaceRuleFunc) Evaluate(h *Hunt) (HuntOutcome, bool) {
	return f(h)
}

var (
	// AmbushRule fires when the quarry moved onto the party
	AmbushRule = SpaceRuleFunc(func(h *Hunt) (HuntOutcome, bool) {
		if Overlap(h.SurvivorPosition, h.QuarryPosition) && h.LastMoved == MoverQuarry {
			return OutcomeAmbush, true
		}
		return OutcomeNone, false
	})

	// EncounterRule fires when the party reaches the quarry
	EncounterRule = SpaceRuleFunc(func(h *Hunt) (HuntOutcome, bool) {
		if Overlap(h.SurvivorPosition, h.QuarryPosition) {
			return OutcomeShowdown, true
		}
		return OutcomeNone, false
	})

	// StarvationRule fires when the party reaches the last space without meeting the quarry
	StarvationRule = SpaceRuleFunc(func(h *Hunt) (HuntOutcome, bool) {
		if h.SurvivorPosition == StarvationSpace {
			return OutcomeStarvation, true
		}
		return OutcomeNone, false
	})
)

// DefaultSpaceRules returns the built-in resolution rules in evaluation order
func DefaultSpaceRules() []SpaceRule {
	return []SpaceRule{AmbushRule, EncounterRule, StarvationRule}
}

// StartHunt moves a hunt from NotStarted to Active
func StartHunt(id string, p HuntParams) (*Hunt, error) {
	if err := checkQuarry("hunt", "quarryName", p.QuarryName, p.QuarryLevel); err != nil {
		return nil, err
	}
	if err := checkParty("hunt", p.Survivors, p.Scout, p.UsesScouts); err != nil {
		return nil, err
	}

	details := make([]HuntSurvivorDetails, 0, len(p.Survivors))
	for _, sid := range p.Survivors {
		details = append(details, HuntSurvivorDetails{SurvivorID: sid})
	}

	return &Hunt{
		ID:               id,
		SettlementID:     p.SettlementID,
		QuarryName:       p.QuarryName,
		QuarryLevel:      p.QuarryLevel,
		Survivors:        slices.Clone(p.Survivors),
		Scout:            p.Scout,
		SurvivorPosition: DefaultSurvivorPosition,
		QuarryPosition:   DefaultQuarryPosition,
		Ambush:           false,
		Status:           StatusActive,
		SurvivorDetails:  details,
	}, nil
}

// Phase returns the lifecycle state of the hunt
func (h *Hunt) Phase() HuntPhase {
	if h == nil {
		return HuntNotStarted
	}
	switch h.Status {
	case StatusActive:
		return HuntActive
	case StatusResolved:
		return HuntResolved
	default:
		return HuntNotStarted
	}
}

// Move applies a board position update. Only active hunts accept moves.
//
// A hunt leaves Active only through Resolve or Abandon. Move reports the
// outcome the default rules would give in Pending but does not resolve, so
// moves stay legal after an overlap and a misplaced token can be moved back
// before the caller resolves. Pending is recomputed from scratch every move.
func (h *Hunt) Move(survivorPos, quarryPos int) (*HuntMove, error) {
	if h.Phase() != HuntActive {
		return nil, NewValidationError(ErrHuntState, "hunt", "status", h.Status,
			"hunt %q is not active", h.ID)
	}
	if err := CheckPositions(survivorPos, quarryPos); err != nil {
		return nil, err
	}

	move := &HuntMove{
		SurvivorsMoved:   survivorPos != h.SurvivorPosition,
		QuarryMoved:      quarryPos != h.QuarryPosition,
		SurvivorPosition: survivorPos,
		QuarryPosition:   quarryPos,
		Overlap:          Overlap(survivorPos, quarryPos),
	}

	move.Note = NoteQuarryMoved
	if move.SurvivorsMoved {
		move.Note = NoteSurvivorsMoved
	}

	switch {
	case move.SurvivorsMoved:
		h.LastMoved = MoverSurvivors
	case move.QuarryMoved:
		h.LastMoved = MoverQuarry
	}
	h.SurvivorPosition = survivorPos
	h.QuarryPosition = quarryPos

	move.Pending, _ = h.evaluate(DefaultSpaceRules())
	return move, nil
}

// Resolve ends an active hunt using the first rule that fires. With no rules
// the defaults are used.
func (h *Hunt) Resolve(rules ...SpaceRule) (HuntOutcome, error) {
	if h.Phase() != HuntActive {
		return OutcomeNone, NewValidationError(ErrHuntState, "hunt", "status", h.Status,
			"hunt %q is not active", h.ID)
	}
	if len(rules) == 0 {
		rules = DefaultSpaceRules()
	}

	outcome, ok := h.evaluate(rules)
	if !ok {
		return OutcomeNone, NewValidationError(ErrHuntState, "hunt", "survivorPosition", h.SurvivorPosition,
			"hunt cannot resolve with survivors on %s and quarry on %s",
			describeSpace(h.SurvivorPosition), describeSpace(h.QuarryPosition))
	}

	h.finish(outcome)
	return outcome, nil
}

// Abandon resolves an active hunt without a showdown
func (h *Hunt) Abandon() error {
	if h.Phase() != HuntActive {
		return NewValidationError(ErrHuntState, "hunt", "status", h.Status,
			"hunt %q is not active", h.ID)
	}
	h.finish(OutcomeAbandoned)
	return nil
}

// Details returns the hunt details for a survivor in the party
func (h *Hunt) Details(survivorID string) *HuntSurvivorDetails {
	for i := range h.SurvivorDetails {
		if h.SurvivorDetails[i].SurvivorID == survivorID {
			return &h.SurvivorDetails[i]
		}
	}
	return nil
}

// SeedShowdown builds the showdown that follows a resolved hunt
func (h *Hunt) SeedShowdown(id string, monster MonsterInstanceData) (*Showdown, error) {
	if h.Phase() != HuntResolved || !h.Outcome.StartsShowdown() {
		return nil, NewValidationError(ErrHuntState, "hunt", "outcome", h.Outcome,
			"hunt %q did not end in a showdown", h.ID)
	}
	return StartShowdown(id, ShowdownParams{
		HuntID:       h.ID,
		SettlementID: h.SettlementID,
		MonsterName:  h.QuarryName,
		MonsterLevel: h.QuarryLevel,
		Type:         MonsterTypeQuarry,
		Survivors:    h.Survivors,
		Scout:        h.Scout,
		UsesScouts:   h.Scout != "",
		Ambush:       h.Ambush,
		Monster:      monster,
	})
}

func (h *Hunt) evaluate(rules []SpaceRule) (HuntOutcome, bool) {
	for _, rule := range rules {
		if outcome, ok := rule.Evaluate(h); ok {
			return outcome, true
		}
	}
	return OutcomeNone, false
}

// finish records the outcome and drops hunt-only state
func (h *Hunt) finish(outcome HuntOutcome) {
	h.Status = StatusResolved
	h.Outcome = outcome
	h.Ambush = outcome == OutcomeAmbush
	h.SurvivorDetails = []HuntSurvivorDetails{}
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func checkQuarry(entity, field, name string, level int) error {
	if isBlank(name) {
		return NewValidationError(ErrEmptyName, entity, field, name, "name must not be empty")
	}
	if level < MinMonsterLevel || level > MaxMonsterLevel {
		field = "quarryLevel"
		if entity == "showdown" {
			field = "monsterLevel"
		}
		return NewValidationError(ErrBounds, entity, field, level,
			"level %d out of range [%d,%d]", level, MinMonsterLevel, MaxMonsterLevel)
	}
	return nil
}

func checkParty(entity string, survivors []string, scout string, usesScouts bool) error {
	if len(survivors) < MinPartySize || len(survivors) > MaxPartySize {
		return NewValidationError(ErrPartySize, entity, "survivors", len(survivors),
			"party must have between %d and %d survivors, got %d", MinPartySize, MaxPartySize, len(survivors))
	}
	seen := make(map[string]bool, len(survivors))
	for _, sid := range survivors {
		if isBlank(sid) {
			return NewValidationError(ErrPartySize, entity, "survivors", sid, "party contains an empty survivor id")
		}
		if seen[sid] {
			return NewValidationError(ErrPartySize, entity, "survivors", sid, "survivor %q selected twice", sid)
		}
		seen[sid] = true
	}
	if scout == "" {
		return nil
	}
	if !usesScouts {
		return NewValidationError(ErrScout, entity, "scout", scout, "settlement does not use scouts")
	}
	if seen[scout] {
		return NewValidationError(ErrScout, entity, "scout", scout, "scout %q is also in the party", scout)
	}
	return nil
}
