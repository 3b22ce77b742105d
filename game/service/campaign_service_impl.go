package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/wricardo/campaign-keeper/game/engine"
	"github.com/wricardo/campaign-keeper/game/schema"
)

// campaignServiceImpl implements the CampaignService interface
type campaignServiceImpl struct {
	store    Store
	monsters MonsterCatalog
	notifier Notifier
	rules    []engine.SpaceRule
	newID    func() string
	logger   *slog.Logger
	mu       sync.Mutex
}

// Option configures the campaign service
type Option func(*campaignServiceImpl)

// WithNotifier registers the subscriber told about every commit
func WithNotifier(n Notifier) Option {
	return func(s *campaignServiceImpl) { s.notifier = n }
}

// WithMonsters sets the reference catalog used to seed monster stats
func WithMonsters(c MonsterCatalog) Option {
	return func(s *campaignServiceImpl) { s.monsters = c }
}

// WithSpaceRules adds hunt resolution rules evaluated before the defaults
func WithSpaceRules(rules ...engine.SpaceRule) Option {
	return func(s *campaignServiceImpl) { s.rules = append(s.rules, rules...) }
}

// WithIDGenerator replaces the uuid generator, for tests
func WithIDGenerator(fn func() string) Option {
	return func(s *campaignServiceImpl) { s.newID = fn }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *campaignServiceImpl) { s.logger = l }
}

// NewCampaignService creates a new campaign service over store
func NewCampaignService(store Store, opts ...Option) CampaignService {
	s := &campaignServiceImpl{
		store:  store,
		newID:  uuid.NewString,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// mutation computes a change on a private copy of the campaign. It returns the
// patch to commit and the success message.
type mutation func(c *engine.Campaign, res *Result) (Patch, string, error)

// run executes the pipeline: read, compute candidate, validate, commit, notify.
// Every failure is recovered into the result and leaves the store untouched.
func (s *campaignServiceImpl) run(op string, m mutation) *Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := &Result{}
	current, err := s.store.Read()
	if err != nil {
		return s.fail(op, err)
	}

	patch, message, err := m(current, res)
	if err != nil {
		return s.fail(op, err)
	}

	if err := schema.ValidateCampaign(patch.Apply(current)); err != nil {
		return s.fail(op, err)
	}

	committed, err := s.store.Commit(patch)
	if err != nil {
		return s.fail(op, err)
	}
	commitsTotal.WithLabelValues(op, "success").Inc()

	if committed.DisableToasts {
		message = ""
	}
	res.Success = true
	res.Message = message
	res.Campaign = committed

	s.logger.Debug("campaign committed", "operation", op, "message", message)
	if s.notifier != nil {
		s.notifier.Notify(committed, message)
	}
	return res
}

func (s *campaignServiceImpl) fail(op string, err error) *Result {
	label := "error"
	if engine.IsValidation(err) {
		label = "invalid"
		s.logger.Info("campaign change rejected", "operation", op, "kind", engine.KindOf(err), "error", err)
	} else {
		s.logger.Warn("campaign change failed", "operation", op, "error", err)
	}
	commitsTotal.WithLabelValues(op, label).Inc()

	return &Result{
		Success:   false,
		Error:     err.Error(),
		ErrorKind: engine.KindOf(err),
		Err:       err,
	}
}

// GetCampaign returns the current campaign
func (s *campaignServiceImpl) GetCampaign(ctx context.Context) (*engine.Campaign, error) {
	return s.store.Read()
}

// Save runs an arbitrary patch through the pipeline
func (s *campaignServiceImpl) Save(ctx context.Context, patch Patch, successMessage string) *Result {
	return s.run("save", func(c *engine.Campaign, res *Result) (Patch, string, error) {
		return patch, successMessage, nil
	})
}

// Select updates the selected entities and tab
func (s *campaignServiceImpl) Select(ctx context.Context, sel Selection) *Result {
	return s.run("select", func(c *engine.Campaign, res *Result) (Patch, string, error) {
		return Patch{
			SelectedSettlementID: sel.SettlementID,
			SelectedSurvivorID:   sel.SurvivorID,
			SelectedHuntID:       sel.HuntID,
			SelectedShowdownID:   sel.ShowdownID,
			SelectedTab:          sel.Tab,
		}, "", nil
	})
}

// SetDisableToasts turns success messages off or on
func (s *campaignServiceImpl) SetDisableToasts(ctx context.Context, disabled bool) *Result {
	return s.run("toasts", func(c *engine.Campaign, res *Result) (Patch, string, error) {
		return Patch{DisableToasts: &disabled}, "Notifications enabled.", nil
	})
}

// Export returns the campaign as pretty-printed JSON
func (s *campaignServiceImpl) Export(ctx context.Context) ([]byte, error) {
	c, err := s.store.Read()
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal campaign: %w", err)
	}
	return data, nil
}

// Import replaces the whole campaign with a backup after validating it
func (s *campaignServiceImpl) Import(ctx context.Context, data []byte) *Result {
	return s.run("import", func(c *engine.Campaign, res *Result) (Patch, string, error) {
		imported, err := DecodeCampaign(data)
		if err != nil {
			return Patch{}, "", err
		}
		return FullPatch(imported), "Campaign imported.", nil
	})
}

// DecodeCampaign parses a backup. Missing collections decode as empty.
func DecodeCampaign(data []byte) (*engine.Campaign, error) {
	c := engine.NewCampaign()
	if err := json.Unmarshal(data, c); err != nil {
		return nil, engine.NewValidationError(engine.ErrBounds, "campaign", "", nil, "invalid backup: %v", err)
	}
	if c.Settlements == nil {
		c.Settlements = []engine.Settlement{}
	}
	if c.Survivors == nil {
		c.Survivors = []engine.Survivor{}
	}
	if c.Hunts == nil {
		c.Hunts = []engine.Hunt{}
	}
	if c.Showdowns == nil {
		c.Showdowns = []engine.Showdown{}
	}
	return c, nil
}

// CreateSettlement adds a settlement seeded with the known quarries and nemeses
func (s *campaignServiceImpl) CreateSettlement(ctx context.Context, req SettlementRequest) *Result {
	return s.run("create_settlement", func(c *engine.Campaign, res *Result) (Patch, string, error) {
		if req.SurvivorType == "" {
			req.SurvivorType = engine.SurvivorTypeCore
		}
		settlement := engine.Settlement{
			ID:            s.newID(),
			Name:          req.Name,
			SurvivorType:  req.SurvivorType,
			UsesScouts:    req.UsesScouts,
			SurvivalLimit: 1,
			Quarries:      []engine.Quarry{},
			Nemeses:       []engine.Nemesis{},
			Milestones:    []engine.Milestone{},
			Principles:    []engine.Principle{},
			Resources:     []engine.Resource{},
			Timeline:      []engine.TimelineYear{},
		}
		if s.monsters != nil {
			for _, def := range s.monsters.List() {
				switch def.Type {
				case engine.MonsterTypeQuarry:
					settlement.Quarries = append(settlement.Quarries, engine.Quarry{Name: def.Name})
				case engine.MonsterTypeNemesis:
					settlement.Nemeses = append(settlement.Nemeses, engine.Nemesis{Name: def.Name})
				}
			}
		}

		c.Settlements = append(c.Settlements, settlement)
		c.SelectedSettlementID = settlement.ID
		res.SettlementID = settlement.ID
		return Patch{Settlements: &c.Settlements, SelectedSettlementID: &c.SelectedSettlementID},
			fmt.Sprintf("Settlement %s created.", settlement.Name), nil
	})
}

// SaveSettlement upserts a settlement; an empty id creates one
func (s *campaignServiceImpl) SaveSettlement(ctx context.Context, settlement engine.Settlement) *Result {
	return s.run("save_settlement", func(c *engine.Campaign, res *Result) (Patch, string, error) {
		if settlement.ID == "" {
			settlement.ID = s.newID()
		}
		c.Settlements = Upsert(c.Settlements, settlement)
		res.SettlementID = settlement.ID
		return Patch{Settlements: &c.Settlements}, fmt.Sprintf("Settlement %s saved.", settlement.Name), nil
	})
}

// DeleteSettlement removes a settlement with its survivors, hunts and showdowns
func (s *campaignServiceImpl) DeleteSettlement(ctx context.Context, id string) *Result {
	return s.run("delete_settlement", func(c *engine.Campaign, res *Result) (Patch, string, error) {
		var ok bool
		if c.Settlements, ok = Remove(c.Settlements, id); !ok {
			return Patch{}, "", engine.NotFound("settlement", id)
		}
		c.Survivors = slices.DeleteFunc(c.Survivors, func(sv engine.Survivor) bool { return sv.SettlementID == id })
		c.Hunts = slices.DeleteFunc(c.Hunts, func(h engine.Hunt) bool { return h.SettlementID == id })
		c.Showdowns = slices.DeleteFunc(c.Showdowns, func(sd engine.Showdown) bool { return sd.SettlementID == id })
		NormalizeSelections(c)
		res.SettlementID = id
		return FullPatch(c), "Settlement deleted.", nil
	})
}

// SaveSurvivor upserts a survivor. An empty id creates one and an empty
// settlement id uses the selected settlement.
func (s *campaignServiceImpl) SaveSurvivor(ctx context.Context, survivor engine.Survivor) *Result {
	return s.run("save_survivor", func(c *engine.Campaign, res *Result) (Patch, string, error) {
		if survivor.ID == "" {
			survivor.ID = s.newID()
		}
		if survivor.SettlementID == "" {
			survivor.SettlementID = c.SelectedSettlementID
		}
		c.Survivors = Upsert(c.Survivors, survivor)
		res.SurvivorID = survivor.ID
		return Patch{Survivors: &c.Survivors}, fmt.Sprintf("Survivor %s saved.", survivor.Name), nil
	})
}

// DeleteSurvivor removes a survivor. Survivors taking part in an active hunt
// or showdown cannot be removed.
func (s *campaignServiceImpl) DeleteSurvivor(ctx context.Context, id string) *Result {
	return s.run("delete_survivor", func(c *engine.Campaign, res *Result) (Patch, string, error) {
		var ok bool
		if c.Survivors, ok = Remove(c.Survivors, id); !ok {
			return Patch{}, "", engine.NotFound("survivor", id)
		}
		if c.SelectedSurvivorID == id {
			c.SelectedSurvivorID = ""
		}
		res.SurvivorID = id
		return Patch{Survivors: &c.Survivors, SelectedSurvivorID: &c.SelectedSurvivorID}, "Survivor deleted.", nil
	})
}

// CreateHunt starts a hunt and selects it
func (s *campaignServiceImpl) CreateHunt(ctx context.Context, req HuntRequest) *Result {
	return s.run("create_hunt", func(c *engine.Campaign, res *Result) (Patch, string, error) {
		settlement, err := settlementFor(c, req.SettlementID)
		if err != nil {
			return Patch{}, "", err
		}

		hunt, err := engine.StartHunt(s.newID(), engine.HuntParams{
			SettlementID: settlement.ID,
			QuarryName:   req.QuarryName,
			QuarryLevel:  req.QuarryLevel,
			Survivors:    req.Survivors,
			Scout:        req.Scout,
			UsesScouts:   settlement.UsesScouts,
		})
		if err != nil {
			return Patch{}, "", err
		}
		if err := checkHunters(c, "hunt", hunt.Survivors, hunt.Scout); err != nil {
			return Patch{}, "", err
		}

		c.Hunts = Upsert(c.Hunts, *hunt)
		c.SelectedHuntID = hunt.ID
		res.HuntID = hunt.ID
		return Patch{Hunts: &c.Hunts, SelectedHuntID: &c.SelectedHuntID},
			fmt.Sprintf("Hunt for %s (level %d) begins.", hunt.QuarryName, hunt.QuarryLevel), nil
	})
}

// MoveHunt applies a board position update
func (s *campaignServiceImpl) MoveHunt(ctx context.Context, huntID string, survivorPosition, quarryPosition int) *Result {
	return s.run("move_hunt", func(c *engine.Campaign, res *Result) (Patch, string, error) {
		hunt, err := findHunt(c, huntID)
		if err != nil {
			return Patch{}, "", err
		}
		move, err := hunt.Move(survivorPosition, quarryPosition)
		if err != nil {
			return Patch{}, "", err
		}
		res.Move = move
		res.HuntID = hunt.ID
		return Patch{Hunts: &c.Hunts}, move.Note, nil
	})
}

// ResolveHunt ends a hunt with the first matching space rule. Encounters and
// ambushes open the follow-up showdown and select it.
func (s *campaignServiceImpl) ResolveHunt(ctx context.Context, huntID string) *Result {
	return s.run("resolve_hunt", func(c *engine.Campaign, res *Result) (Patch, string, error) {
		hunt, err := findHunt(c, huntID)
		if err != nil {
			return Patch{}, "", err
		}

		rules := append(slices.Clone(s.rules), engine.DefaultSpaceRules()...)
		outcome, err := hunt.Resolve(rules...)
		if err != nil {
			return Patch{}, "", err
		}
		res.HuntID = hunt.ID
		res.Outcome = string(outcome)

		if !outcome.StartsShowdown() {
			return Patch{Hunts: &c.Hunts}, resolutionMessage(hunt), nil
		}

		showdown, err := hunt.SeedShowdown(s.newID(), s.monsterData(hunt.QuarryName, hunt.QuarryLevel))
		if err != nil {
			return Patch{}, "", err
		}
		c.Showdowns = Upsert(c.Showdowns, *showdown)
		c.SelectedShowdownID = showdown.ID
		c.SelectedHuntID = ""
		res.ShowdownID = showdown.ID
		return Patch{
			Hunts:              &c.Hunts,
			Showdowns:          &c.Showdowns,
			SelectedShowdownID: &c.SelectedShowdownID,
			SelectedHuntID:     &c.SelectedHuntID,
		}, resolutionMessage(hunt), nil
	})
}

func resolutionMessage(h *engine.Hunt) string {
	switch h.Outcome {
	case engine.OutcomeAmbush:
		return fmt.Sprintf("Ambush! The %s strikes first.", h.QuarryName)
	case engine.OutcomeShowdown:
		return fmt.Sprintf("The survivors find the %s. Showdown begins.", h.QuarryName)
	case engine.OutcomeStarvation:
		return "The survivors starve before finding their quarry."
	default:
		return fmt.Sprintf("Hunt resolved: %s.", h.Outcome)
	}
}

// AbandonHunt ends a hunt without a showdown
func (s *campaignServiceImpl) AbandonHunt(ctx context.Context, huntID string) *Result {
	return s.run("abandon_hunt", func(c *engine.Campaign, res *Result) (Patch, string, error) {
		hunt, err := findHunt(c, huntID)
		if err != nil {
			return Patch{}, "", err
		}
		if err := hunt.Abandon(); err != nil {
			return Patch{}, "", err
		}
		res.HuntID = hunt.ID
		res.Outcome = string(hunt.Outcome)
		return Patch{Hunts: &c.Hunts}, "Hunt abandoned.", nil
	})
}

// UpdateHuntDetails replaces one survivor's hunt tokens and notes
func (s *campaignServiceImpl) UpdateHuntDetails(ctx context.Context, huntID string, details engine.HuntSurvivorDetails) *Result {
	return s.run("hunt_details", func(c *engine.Campaign, res *Result) (Patch, string, error) {
		hunt, err := findHunt(c, huntID)
		if err != nil {
			return Patch{}, "", err
		}
		if hunt.Phase() != engine.HuntActive {
			return Patch{}, "", engine.NewValidationError(engine.ErrHuntState, "hunt", "status", hunt.Status,
				"hunt %q is not active", hunt.ID)
		}
		current := hunt.Details(details.SurvivorID)
		if current == nil {
			return Patch{}, "", engine.NotFound("survivor", details.SurvivorID)
		}
		*current = details
		res.HuntID = hunt.ID
		res.SurvivorID = details.SurvivorID
		return Patch{Hunts: &c.Hunts}, "Hunt details saved.", nil
	})
}

// DeleteHunt removes a hunt in any state
func (s *campaignServiceImpl) DeleteHunt(ctx context.Context, huntID string) *Result {
	return s.run("delete_hunt", func(c *engine.Campaign, res *Result) (Patch, string, error) {
		var ok bool
		if c.Hunts, ok = Remove(c.Hunts, huntID); !ok {
			return Patch{}, "", engine.NotFound("hunt", huntID)
		}
		if c.SelectedHuntID == huntID {
			c.SelectedHuntID = ""
		}
		res.HuntID = huntID
		return Patch{Hunts: &c.Hunts, SelectedHuntID: &c.SelectedHuntID}, "Hunt deleted.", nil
	})
}

// CreateShowdown starts a showdown from a resolved hunt or directly, and selects it
func (s *campaignServiceImpl) CreateShowdown(ctx context.Context, req ShowdownRequest) *Result {
	return s.run("create_showdown", func(c *engine.Campaign, res *Result) (Patch, string, error) {
		var (
			showdown *engine.Showdown
			err      error
		)
		if req.HuntID != "" {
			showdown, err = s.showdownFromHunt(c, req.HuntID)
		} else {
			showdown, err = s.directShowdown(c, req)
		}
		if err != nil {
			return Patch{}, "", err
		}

		c.Showdowns = Upsert(c.Showdowns, *showdown)
		c.SelectedShowdownID = showdown.ID
		res.ShowdownID = showdown.ID
		res.HuntID = showdown.HuntID
		return Patch{Showdowns: &c.Showdowns, SelectedShowdownID: &c.SelectedShowdownID},
			fmt.Sprintf("Showdown against %s (level %d) begins.", showdown.MonsterName, showdown.MonsterLevel), nil
	})
}

func (s *campaignServiceImpl) showdownFromHunt(c *engine.Campaign, huntID string) (*engine.Showdown, error) {
	hunt, err := findHunt(c, huntID)
	if err != nil {
		return nil, err
	}
	for _, sd := range c.Showdowns {
		if sd.HuntID == huntID && sd.Active() {
			return nil, engine.NewValidationError(engine.ErrHuntState, "hunt", "id", huntID,
				"hunt %q already has showdown %q", huntID, sd.ID)
		}
	}
	return hunt.SeedShowdown(s.newID(), s.monsterData(hunt.QuarryName, hunt.QuarryLevel))
}

func (s *campaignServiceImpl) directShowdown(c *engine.Campaign, req ShowdownRequest) (*engine.Showdown, error) {
	settlement, err := settlementFor(c, req.SettlementID)
	if err != nil {
		return nil, err
	}
	if req.Type == "" && s.monsters != nil {
		if def, err := s.monsters.Lookup(req.MonsterName); err == nil {
			req.Type = def.Type
		}
	}

	showdown, err := engine.StartShowdown(s.newID(), engine.ShowdownParams{
		SettlementID: settlement.ID,
		MonsterName:  req.MonsterName,
		MonsterLevel: req.MonsterLevel,
		Type:         req.Type,
		Survivors:    req.Survivors,
		Scout:        req.Scout,
		UsesScouts:   settlement.UsesScouts,
		Ambush:       req.Ambush,
		Monster:      s.monsterData(req.MonsterName, req.MonsterLevel),
	})
	if err != nil {
		return nil, err
	}
	if err := checkHunters(c, "showdown", showdown.Survivors, showdown.Scout); err != nil {
		return nil, err
	}
	return showdown, nil
}

// monsterData seeds showdown stats from the catalog with a full AI deck.
// Unknown monsters start without stats.
func (s *campaignServiceImpl) monsterData(name string, level int) engine.MonsterInstanceData {
	if s.monsters == nil {
		return engine.MonsterInstanceData{}
	}
	data, err := s.monsters.LevelData(name, level)
	if err != nil {
		s.logger.Debug("no reference stats for monster", "monster", name, "level", level, "error", err)
		return engine.MonsterInstanceData{}
	}

	stats := data.All()
	for i := range stats {
		if stats[i].AIDeckRemaining == 0 {
			stats[i].AIDeckRemaining = stats[i].AIDeck.Total()
		}
	}
	if data.IsMulti() {
		return engine.MultiMonster(stats)
	}
	return engine.SingleMonster(stats[0])
}

// DrawAICard marks the monster's AI card as drawn for this turn and takes
// the card from the given instance's deck
func (s *campaignServiceImpl) DrawAICard(ctx context.Context, showdownID string, instance int) *Result {
	return s.turn("draw_ai_card", showdownID, func(c *engine.Campaign, sd *engine.Showdown) (string, error) {
		if err := sd.Turn.DrawAICard(); err != nil {
			return "", err
		}
		if err := sd.Monster.DrawAICard(instance); err != nil {
			return "", err
		}
		if stats, err := sd.Monster.Instance(instance); err == nil {
			return fmt.Sprintf("AI card drawn, %d of %d left.", stats.AIDeckRemaining, stats.AIDeck.Total()), nil
		}
		return "AI card drawn.", nil
	})
}

// UseSurvivorAction spends a survivor's activation or movement
func (s *campaignServiceImpl) UseSurvivorAction(ctx context.Context, showdownID, survivorID string, action engine.SurvivorAction) *Result {
	return s.turn("survivor_action", showdownID, func(c *engine.Campaign, sd *engine.Showdown) (string, error) {
		if err := sd.Turn.Use(survivorID, action); err != nil {
			return "", err
		}
		name := survivorID
		if i := Find(c.Survivors, survivorID); i >= 0 {
			name = c.Survivors[i].Name
		}
		return fmt.Sprintf("%s used %s.", name, action), nil
	})
}

// NextTurn hands the turn to the other side
func (s *campaignServiceImpl) NextTurn(ctx context.Context, showdownID string) *Result {
	return s.turn("next_turn", showdownID, func(c *engine.Campaign, sd *engine.Showdown) (string, error) {
		if err := sd.Turn.NextTurn(); err != nil {
			return "", err
		}
		if sd.Turn.CurrentTurn == engine.TurnSurvivors {
			return "Survivors' turn.", nil
		}
		return fmt.Sprintf("Round %d: monster's turn.", sd.Turn.Round), nil
	})
}

// EndRound ends the survivors turn and starts the next round
func (s *campaignServiceImpl) EndRound(ctx context.Context, showdownID string) *Result {
	return s.turn("end_round", showdownID, func(c *engine.Campaign, sd *engine.Showdown) (string, error) {
		if err := sd.Turn.EndRound(); err != nil {
			return "", err
		}
		return fmt.Sprintf("Round %d begins.", sd.Turn.Round), nil
	})
}

// UpdateShowdownDetails replaces one survivor's combat tokens and notes
func (s *campaignServiceImpl) UpdateShowdownDetails(ctx context.Context, showdownID string, details engine.ShowdownSurvivorDetails) *Result {
	return s.turn("showdown_details", showdownID, func(c *engine.Campaign, sd *engine.Showdown) (string, error) {
		current := sd.Details(details.SurvivorID)
		if current == nil {
			return "", engine.NotFound("survivor", details.SurvivorID)
		}
		*current = details
		return "Showdown details saved.", nil
	})
}

// EndShowdown closes a showdown with an outcome
func (s *campaignServiceImpl) EndShowdown(ctx context.Context, showdownID string, outcome engine.ShowdownOutcome) *Result {
	return s.run("end_showdown", func(c *engine.Campaign, res *Result) (Patch, string, error) {
		sd, err := findShowdown(c, showdownID)
		if err != nil {
			return Patch{}, "", err
		}
		if err := sd.End(outcome); err != nil {
			return Patch{}, "", err
		}
		res.ShowdownID = sd.ID
		res.Outcome = string(outcome)
		return Patch{Showdowns: &c.Showdowns}, fmt.Sprintf("Showdown ended in %s.", outcome), nil
	})
}

// DeleteShowdown removes a showdown in any state
func (s *campaignServiceImpl) DeleteShowdown(ctx context.Context, showdownID string) *Result {
	return s.run("delete_showdown", func(c *engine.Campaign, res *Result) (Patch, string, error) {
		var ok bool
		if c.Showdowns, ok = Remove(c.Showdowns, showdownID); !ok {
			return Patch{}, "", engine.NotFound("showdown", showdownID)
		}
		if c.SelectedShowdownID == showdownID {
			c.SelectedShowdownID = ""
		}
		res.ShowdownID = showdownID
		return Patch{Showdowns: &c.Showdowns, SelectedShowdownID: &c.SelectedShowdownID}, "Showdown deleted.", nil
	})
}

// turn runs a change against an active showdown
func (s *campaignServiceImpl) turn(op, showdownID string, fn func(c *engine.Campaign, sd *engine.Showdown) (string, error)) *Result {
	return s.run(op, func(c *engine.Campaign, res *Result) (Patch, string, error) {
		sd, err := findShowdown(c, showdownID)
		if err != nil {
			return Patch{}, "", err
		}
		if err := sd.RequireActive(); err != nil {
			return Patch{}, "", err
		}
		message, err := fn(c, sd)
		if err != nil {
			return Patch{}, "", err
		}
		res.ShowdownID = sd.ID
		return Patch{Showdowns: &c.Showdowns}, message, nil
	})
}

// ListMonsters returns the reference monsters
func (s *campaignServiceImpl) ListMonsters(ctx context.Context) ([]*engine.MonsterDefinition, error) {
	if s.monsters == nil {
		return []*engine.MonsterDefinition{}, nil
	}
	return s.monsters.List(), nil
}

// GetMonster returns one reference monster by name
func (s *campaignServiceImpl) GetMonster(ctx context.Context, name string) (*engine.MonsterDefinition, error) {
	if s.monsters == nil {
		return nil, engine.NotFound("monster", name)
	}
	return s.monsters.Lookup(name)
}

func findHunt(c *engine.Campaign, id string) (*engine.Hunt, error) {
	if i := Find(c.Hunts, id); i >= 0 {
		return &c.Hunts[i], nil
	}
	return nil, engine.NotFound("hunt", id)
}

func findShowdown(c *engine.Campaign, id string) (*engine.Showdown, error) {
	if i := Find(c.Showdowns, id); i >= 0 {
		return &c.Showdowns[i], nil
	}
	return nil, engine.NotFound("showdown", id)
}

// settlementFor returns the settlement with id, or the selected one when id is empty
func settlementFor(c *engine.Campaign, id string) (*engine.Settlement, error) {
	if id == "" {
		id = c.SelectedSettlementID
	}
	if i := Find(c.Settlements, id); i >= 0 {
		return &c.Settlements[i], nil
	}
	return nil, engine.NotFound("settlement", id)
}

// checkHunters verifies that every party member and the scout exist and are alive
func checkHunters(c *engine.Campaign, entity string, party []string, scout string) error {
	ids := party
	if scout != "" {
		ids = append(slices.Clone(party), scout)
	}
	for _, id := range ids {
		i := Find(c.Survivors, id)
		if i < 0 {
			return engine.NotFound("survivor", id)
		}
		if c.Survivors[i].Dead {
			return engine.NewValidationError(engine.ErrBounds, entity, "survivors", id,
				"survivor %s is dead", c.Survivors[i].Name)
		}
	}
	return nil
}

// NormalizeSelections empties selected ids whose entity no longer exists
func NormalizeSelections(c *engine.Campaign) {
	if Find(c.Settlements, c.SelectedSettlementID) < 0 {
		c.SelectedSettlementID = ""
	}
	if Find(c.Survivors, c.SelectedSurvivorID) < 0 {
		c.SelectedSurvivorID = ""
	}
	if Find(c.Hunts, c.SelectedHuntID) < 0 {
		c.SelectedHuntID = ""
	}
	if Find(c.Showdowns, c.SelectedShowdownID) < 0 {
		c.SelectedShowdownID = ""
	}
}
