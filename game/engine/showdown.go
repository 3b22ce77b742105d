package engine

import "slices"

// TurnOwner is the side allowed to act
type TurnOwner string

const (
	TurnMonster   TurnOwner = "MONSTER"
	TurnSurvivors TurnOwner = "SURVIVORS"
)

// ShowdownOutcome records how a showdown ended
type ShowdownOutcome string

const (
	ShowdownVictory ShowdownOutcome = "victory"
	ShowdownDefeat  ShowdownOutcome = "defeat"
	ShowdownRetreat ShowdownOutcome = "retreat"
)

// Valid reports whether o is a known outcome
func (o ShowdownOutcome) Valid() bool {
	switch o {
	case ShowdownVictory, ShowdownDefeat, ShowdownRetreat:
		return true
	}
	return false
}

// SurvivorAction is a once-per-turn survivor resource
type SurvivorAction string

const (
	ActionActivation SurvivorAction = "activation"
	ActionMovement   SurvivorAction = "movement"
)

type MonsterTurnState struct {
	AICardDrawn bool `json:"aiCardDrawn"`
}

type SurvivorTurnState struct {
	SurvivorID     string `json:"survivorId"`
	ActivationUsed bool   `json:"activationUsed"`
	MovementUsed   bool   `json:"movementUsed"`
}

// ShowdownTurn is the alternating turn machine of a showdown.
// Round starts at 1 and increases each time the monster turn begins again.
type ShowdownTurn struct {
	CurrentTurn    TurnOwner           `json:"currentTurn"`
	Round          int                 `json:"round"`
	MonsterState   MonsterTurnState    `json:"monsterState"`
	SurvivorStates []SurvivorTurnState `json:"survivorStates"`
}

// NewShowdownTurn opens round one on the monster's turn
func NewShowdownTurn(survivorIDs []string) ShowdownTurn {
	states := make([]SurvivorTurnState, 0, len(survivorIDs))
	for _, id := range survivorIDs {
		states = append(states, SurvivorTurnState{SurvivorID: id})
	}
	return ShowdownTurn{
		CurrentTurn:    TurnMonster,
		Round:          1,
		SurvivorStates: states,
	}
}

// DrawAICard marks the monster's AI card for this turn
func (t *ShowdownTurn) DrawAICard() error {
	if t.CurrentTurn != TurnMonster {
		return turnError("currentTurn", t.CurrentTurn, "AI cards are drawn on the monster turn")
	}
	if t.MonsterState.AICardDrawn {
		return turnError("monsterState.aiCardDrawn", true, "AI card already drawn this turn")
	}
	t.MonsterState.AICardDrawn = true
	return nil
}

// Use consumes a survivor's activation or movement for the current turn
func (t *ShowdownTurn) Use(survivorID string, action SurvivorAction) error {
	if t.CurrentTurn != TurnSurvivors {
		return turnError("currentTurn", t.CurrentTurn, "survivors act on the survivors turn")
	}
	state := t.state(survivorID)
	if state == nil {
		return NotFound("survivor", survivorID)
	}

	var flag *bool
	switch action {
	case ActionActivation:
		flag = &state.ActivationUsed
	case ActionMovement:
		flag = &state.MovementUsed
	default:
		return NewValidationError(ErrTurnOrder, "showdown", "action", action, "unknown survivor action %q", action)
	}
	if *flag {
		return turnError("survivorStates", survivorID, "survivor %s already used its %s", survivorID, action)
	}
	*flag = true
	return nil
}

func (t *ShowdownTurn) UseActivation(survivorID string) error {
	return t.Use(survivorID, ActionActivation)
}

func (t *ShowdownTurn) UseMovement(survivorID string) error {
	return t.Use(survivorID, ActionMovement)
}

// SurvivorsDone reports whether every survivor has spent both resources
func (t *ShowdownTurn) SurvivorsDone() bool {
	for _, s := range t.SurvivorStates {
		if !s.ActivationUsed || !s.MovementUsed {
			return false
		}
	}
	return true
}

// CanAdvance reports whether NextTurn would succeed
func (t *ShowdownTurn) CanAdvance() bool {
	if t.CurrentTurn == TurnMonster {
		return t.MonsterState.AICardDrawn
	}
	return t.SurvivorsDone()
}

// NextTurn hands the turn to the other side. The monster must have drawn its
// AI card, and survivors must have spent all their resources.
func (t *ShowdownTurn) NextTurn() error {
	switch t.CurrentTurn {
	case TurnMonster:
		if !t.MonsterState.AICardDrawn {
			return turnError("monsterState.aiCardDrawn", false, "monster has not drawn an AI card")
		}
		t.CurrentTurn = TurnSurvivors
		return nil
	case TurnSurvivors:
		if !t.SurvivorsDone() {
			return turnError("survivorStates", t.pending(), "survivors still have actions to take")
		}
		t.startRound()
		return nil
	default:
		return turnError("currentTurn", t.CurrentTurn, "unknown turn owner %q", t.CurrentTurn)
	}
}

// EndRound ends the survivors turn early, forfeiting unspent resources
func (t *ShowdownTurn) EndRound() error {
	if t.CurrentTurn != TurnSurvivors {
		return turnError("currentTurn", t.CurrentTurn, "round ends on the survivors turn")
	}
	t.startRound()
	return nil
}

func (t *ShowdownTurn) startRound() {
	t.Round++
	t.CurrentTurn = TurnMonster
	t.MonsterState = MonsterTurnState{}
	for i := range t.SurvivorStates {
		t.SurvivorStates[i].ActivationUsed = false
		t.SurvivorStates[i].MovementUsed = false
	}
}

func (t *ShowdownTurn) state(survivorID string) *SurvivorTurnState {
	for i := range t.SurvivorStates {
		if t.SurvivorStates[i].SurvivorID == survivorID {
			return &t.SurvivorStates[i]
		}
	}
	return nil
}

// pending lists survivors with unspent resources
func (t *ShowdownTurn) pending() []string {
	var ids []string
	for _, s := range t.SurvivorStates {
		if !s.ActivationUsed || !s.MovementUsed {
			ids = append(ids, s.SurvivorID)
		}
	}
	return ids
}

func turnError(field string, value any, format string, args ...any) error {
	return NewValidationError(ErrTurnOrder, "showdown", field, value, format, args...)
}

// ShowdownParams are the selections needed to start a showdown
type ShowdownParams struct {
	HuntID       string
	SettlementID string
	MonsterName  string
	MonsterLevel int
	Type         MonsterType
	Survivors    []string
	Scout        string
	UsesScouts   bool
	Ambush       bool
	Monster      MonsterInstanceData
}

// StartShowdown creates an active showdown on round one
func StartShowdown(id string, p ShowdownParams) (*Showdown, error) {
	if err := checkQuarry("showdown", "monsterName", p.MonsterName, p.MonsterLevel); err != nil {
		return nil, err
	}
	if p.Type == "" {
		p.Type = MonsterTypeQuarry
	}
	if p.Type != MonsterTypeQuarry && p.Type != MonsterTypeNemesis {
		return nil, NewValidationError(ErrBounds, "showdown", "type", p.Type, "type must be quarry or nemesis")
	}
	if err := checkParty("showdown", p.Survivors, p.Scout, p.UsesScouts); err != nil {
		return nil, err
	}

	details := make([]ShowdownSurvivorDetails, 0, len(p.Survivors))
	for _, sid := range p.Survivors {
		details = append(details, ShowdownSurvivorDetails{SurvivorID: sid})
	}

	return &Showdown{
		ID:              id,
		HuntID:          p.HuntID,
		SettlementID:    p.SettlementID,
		MonsterName:     p.MonsterName,
		MonsterLevel:    p.MonsterLevel,
		Type:            p.Type,
		Survivors:       slices.Clone(p.Survivors),
		Scout:           p.Scout,
		Ambush:          p.Ambush,
		Monster:         p.Monster,
		Turn:            NewShowdownTurn(p.Survivors),
		SurvivorDetails: details,
		Status:          StatusActive,
	}, nil
}

// Active reports whether the showdown is still being played
func (s *Showdown) Active() bool {
	return s != nil && s.Status == StatusActive
}

// RequireActive fails with ErrTurnOrder once the showdown has ended
func (s *Showdown) RequireActive() error {
	if !s.Active() {
		return turnError("status", s.Status, "showdown %q has ended", s.ID)
	}
	return nil
}

// End closes the showdown with an outcome and drops combat-only state
func (s *Showdown) End(outcome ShowdownOutcome) error {
	if err := s.RequireActive(); err != nil {
		return err
	}
	if !outcome.Valid() {
		return NewValidationError(ErrBounds, "showdown", "outcome", outcome, "unknown outcome %q", outcome)
	}
	s.Status = StatusEnded
	s.Outcome = outcome
	s.SurvivorDetails = []ShowdownSurvivorDetails{}
	return nil
}

// Details returns the combat details for a survivor in the showdown
func (s *Showdown) Details(survivorID string) *ShowdownSurvivorDetails {
	for i := range s.SurvivorDetails {
		if s.SurvivorDetails[i].SurvivorID == survivorID {
			return &s.SurvivorDetails[i]
		}
	}
	return nil
}
