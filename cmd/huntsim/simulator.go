package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wricardo/campaign-keeper/game/engine"
	"github.com/wricardo/campaign-keeper/game/service"
)

// Options tune a simulation run
type Options struct {
	Hunts         int
	Level         int
	MaxMoves      int
	Rounds        int
	Seed          uint64
	StalkChance   float64
	RetreatChance float64
	VictoryChance float64
}

// Report tallies the outcomes of a run
type Report struct {
	Hunts       int
	Moves       int
	Encounters  int
	Ambushes    int
	Starvations int
	Abandoned   int
	Showdowns   int
	Rounds      int
	Victories   int
	Defeats     int
}

func (r Report) String() string {
	return fmt.Sprintf("hunts=%d moves=%d encounters=%d ambushes=%d starvations=%d abandoned=%d showdowns=%d rounds=%d victories=%d defeats=%d",
		r.Hunts, r.Moves, r.Encounters, r.Ambushes, r.Starvations, r.Abandoned, r.Showdowns, r.Rounds, r.Victories, r.Defeats)
}

// Simulator plays hunts and showdowns against a running server
type Simulator struct {
	client   *Client
	opts     Options
	strategy *HuntStrategy
	logger   *slog.Logger

	settlementID string
	party        []string
	instances    map[string]int // monster instances per quarry at the run level
}

func NewSimulator(client *Client, opts Options, logger *slog.Logger) *Simulator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Simulator{
		client:   client,
		opts:     opts,
		strategy: NewHuntStrategy(opts.Seed, opts.StalkChance, opts.RetreatChance),
		logger:   logger,
	}
}

// Run creates a settlement with a full party and plays opts.Hunts hunts,
// cycling through the quarries the server knows.
func (s *Simulator) Run(ctx context.Context) (Report, error) {
	var report Report

	monsters, err := s.client.Monsters(ctx)
	if err != nil {
		return report, err
	}
	var quarries []string
	s.instances = make(map[string]int)
	for _, m := range monsters {
		if m.Type == engine.MonsterTypeQuarry {
			if data, ok := m.Levels[s.opts.Level]; ok {
				quarries = append(quarries, m.Name)
				s.instances[m.Name] = max(1, len(data.All()))
			}
		}
	}
	if len(quarries) == 0 {
		return report, fmt.Errorf("no quarry has level %d", s.opts.Level)
	}

	if err := s.setup(ctx); err != nil {
		return report, err
	}

	for i := 0; i < s.opts.Hunts; i++ {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		quarry := quarries[i%len(quarries)]
		if err := s.hunt(ctx, quarry, &report); err != nil {
			return report, fmt.Errorf("hunt %d (%s): %w", i+1, quarry, err)
		}
	}
	return report, nil
}

func (s *Simulator) setup(ctx context.Context) error {
	id, err := s.client.CreateSettlement(ctx, "Simulation")
	if err != nil {
		return err
	}
	s.settlementID = id

	names := []string{"Allister", "Erza", "Lucy", "Zachary"}
	s.party = s.party[:0]
	for i, name := range names {
		gender := engine.GenderMale
		if i%2 == 1 {
			gender = engine.GenderFemale
		}
		sid, err := s.client.AddSurvivor(ctx, id, name, gender)
		if err != nil {
			return err
		}
		s.party = append(s.party, sid)
	}
	s.logger.Info("settlement ready", "settlement", id, "survivors", len(s.party))
	return nil
}

func (s *Simulator) hunt(ctx context.Context, quarry string, report *Report) error {
	hunt, err := s.client.StartHunt(ctx, service.HuntRequest{
		SettlementID: s.settlementID,
		QuarryName:   quarry,
		QuarryLevel:  s.opts.Level,
		Survivors:    s.party,
	})
	if err != nil {
		return err
	}
	report.Hunts++

	pending := false
	for moves := 0; !pending && moves < s.opts.MaxMoves; moves++ {
		survivorPos, quarryPos := s.strategy.NextMove(hunt)
		var move *engine.HuntMove
		hunt, move, err = s.client.Move(ctx, hunt.ID, survivorPos, quarryPos)
		if err != nil {
			return err
		}
		report.Moves++
		s.logger.Debug("hunt move", "hunt", hunt.ID, "survivors", survivorPos, "quarry", quarryPos, "note", move.Note)
		pending = move.Pending != engine.OutcomeNone
	}

	if !pending {
		s.logger.Warn("hunt did not resolve, abandoning", "hunt", hunt.ID, "moves", s.opts.MaxMoves)
		report.Abandoned++
		return s.client.Abandon(ctx, hunt.ID)
	}

	res, err := s.client.Resolve(ctx, hunt.ID)
	if err != nil {
		return err
	}
	s.logger.Info("hunt resolved", "quarry", quarry, "outcome", res.Outcome)

	switch engine.HuntOutcome(res.Outcome) {
	case engine.OutcomeShowdown:
		report.Encounters++
	case engine.OutcomeAmbush:
		report.Ambushes++
	case engine.OutcomeStarvation:
		report.Starvations++
	}
	if res.ShowdownID == "" {
		return nil
	}
	return s.showdown(ctx, res.ShowdownID, s.instances[quarry], report)
}

// showdown plays full rounds, then ends the showdown with a random outcome.
// Monster instances take turns drawing AI cards.
func (s *Simulator) showdown(ctx context.Context, showdownID string, instances int, report *Report) error {
	report.Showdowns++
	instances = max(1, instances)

	for round := 0; round < s.opts.Rounds; round++ {
		instance := round % instances
		remaining, err := s.client.DrawAICard(ctx, showdownID, instance)
		if err != nil {
			return err
		}
		s.logger.Debug("AI card drawn", "showdown", showdownID, "instance", instance, "remaining", remaining)
		if err := s.client.NextTurn(ctx, showdownID); err != nil {
			return err
		}
		for _, sid := range s.party {
			if err := s.client.Act(ctx, showdownID, sid, engine.ActionMovement); err != nil {
				return err
			}
			if err := s.client.Act(ctx, showdownID, sid, engine.ActionActivation); err != nil {
				return err
			}
		}
		if err := s.client.NextTurn(ctx, showdownID); err != nil {
			return err
		}
		report.Rounds++
	}

	outcome := engine.ShowdownDefeat
	if s.strategy.Chance(s.opts.VictoryChance) {
		outcome = engine.ShowdownVictory
		report.Victories++
	} else {
		report.Defeats++
	}
	s.logger.Info("showdown ended", "showdown", showdownID, "outcome", outcome)
	return s.client.EndShowdown(ctx, showdownID, outcome)
}
