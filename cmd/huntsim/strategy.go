package main

import (
	"math/rand/v2"

	"github.com/wricardo/campaign-keeper/game/engine"
)

// HuntStrategy plays both tokens of a hunt one space at a time. The party
// always advances; on its turn the quarry either stalks toward the party,
// flees toward the starvation space, or holds still.
type HuntStrategy struct {
	rng           *rand.Rand
	stalkChance   float64
	retreatChance float64
}

func NewHuntStrategy(seed uint64, stalkChance, retreatChance float64) *HuntStrategy {
	return &HuntStrategy{
		rng:           rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		stalkChance:   stalkChance,
		retreatChance: retreatChance,
	}
}

// NextMove returns the next board positions. Exactly one token changes per
// move so the server can tell who moved onto whom.
func (s *HuntStrategy) NextMove(h *engine.Hunt) (survivorPos, quarryPos int) {
	party, quarry := h.SurvivorPosition, h.QuarryPosition

	if h.LastMoved == engine.MoverSurvivors {
		roll := s.rng.Float64()
		switch {
		case roll < s.stalkChance && quarry > party:
			return party, quarry - 1
		case roll < s.stalkChance+s.retreatChance && quarry < engine.StarvationSpace:
			return party, quarry + 1
		}
	}
	return engine.Clamp(party + 1), quarry
}

// Chance reports true with probability p
func (s *HuntStrategy) Chance(p float64) bool {
	return s.rng.Float64() < p
}
