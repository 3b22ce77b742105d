package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wricardo/campaign-keeper/game/engine"
)

func testSettlement() engine.Settlement {
	return engine.Settlement{
		ID:            "set1",
		Name:          "Lantern Hoard",
		SurvivorType:  engine.SurvivorTypeCore,
		UsesScouts:    true,
		SurvivalLimit: 1,
		Quarries:      []engine.Quarry{{Name: "White Lion", Unlocked: true}},
		Resources:     []engine.Resource{{Name: "Bone", Category: "basic", Amount: 2}},
	}
}

func testSurvivor(id string) engine.Survivor {
	return engine.Survivor{ID: id, SettlementID: "set1", Name: "Survivor " + id, Gender: engine.GenderFemale, Movement: 5}
}

func testHunt(t *testing.T) engine.Hunt {
	t.Helper()
	h, err := engine.StartHunt("h1", engine.HuntParams{
		SettlementID: "set1",
		QuarryName:   "Flower Knight",
		QuarryLevel:  1,
		Survivors:    []string{"a", "b", "c", "d"},
	})
	require.NoError(t, err)
	return *h
}

func testCampaign(t *testing.T) *engine.Campaign {
	t.Helper()
	c := engine.NewCampaign()
	c.Settlements = append(c.Settlements, testSettlement())
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		c.Survivors = append(c.Survivors, testSurvivor(id))
	}
	c.Hunts = append(c.Hunts, testHunt(t))
	c.SelectedSettlementID = "set1"
	c.SelectedHuntID = "h1"
	return c
}

func TestValidateSettlement(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *engine.Settlement)
		kind   error
		field  string
	}{
		{"valid", func(s *engine.Settlement) {}, nil, ""},
		{"blank name", func(s *engine.Settlement) { s.Name = " \t" }, engine.ErrEmptyName, "name"},
		{"bad survivor type", func(s *engine.Settlement) { s.SurvivorType = "Elder" }, engine.ErrBounds, "survivorType"},
		{"negative lantern year", func(s *engine.Settlement) { s.LanternYear = -1 }, engine.ErrBounds, "lanternYear"},
		{"zero survival limit", func(s *engine.Settlement) { s.SurvivalLimit = 0 }, engine.ErrBounds, "survivalLimit"},
		{"blank quarry", func(s *engine.Settlement) { s.Quarries[0].Name = "" }, engine.ErrEmptyName, "quarries[0].name"},
		{"negative resource", func(s *engine.Settlement) { s.Resources[0].Amount = -3 }, engine.ErrBounds, "resources[0].amount"},
		{"bad principle", func(s *engine.Settlement) {
			s.Principles = []engine.Principle{{Name: "Death", Selected: 3}}
		}, engine.ErrBounds, "principles[0].selected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testSettlement()
			tt.mutate(&s)
			err := ValidateSettlement(&s)
			if tt.kind == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.kind)
			var verr *engine.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestValidateSurvivor(t *testing.T) {
	s := testSurvivor("a")
	assert.NoError(t, ValidateSurvivor(&s))

	s.Name = ""
	assert.ErrorIs(t, ValidateSurvivor(&s), engine.ErrEmptyName)

	s = testSurvivor("a")
	s.Gender = "X"
	assert.ErrorIs(t, ValidateSurvivor(&s), engine.ErrBounds)

	s = testSurvivor("a")
	s.Insanity = -1
	assert.ErrorIs(t, ValidateSurvivor(&s), engine.ErrBounds)

	// combat stats may be negative
	s = testSurvivor("a")
	s.Accuracy, s.Evasion, s.Luck = -2, -1, -1
	assert.NoError(t, ValidateSurvivor(&s))
}

func TestValidateHunt(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(h *engine.Hunt)
		kind   error
	}{
		{"valid", func(h *engine.Hunt) {}, nil},
		{"five survivors", func(h *engine.Hunt) { h.Survivors = append(h.Survivors, "e") }, engine.ErrPartySize},
		{"no survivors", func(h *engine.Hunt) { h.Survivors = nil }, engine.ErrPartySize},
		{"duplicate survivor", func(h *engine.Hunt) { h.Survivors[1] = "a" }, engine.ErrPartySize},
		{"level five", func(h *engine.Hunt) { h.QuarryLevel = 5 }, engine.ErrBounds},
		{"position off board", func(h *engine.Hunt) { h.SurvivorPosition = 13 }, engine.ErrBounds},
		{"quarry off board", func(h *engine.Hunt) { h.QuarryPosition = -1 }, engine.ErrBounds},
		{"blank quarry", func(h *engine.Hunt) { h.QuarryName = "" }, engine.ErrEmptyName},
		{"scout in party", func(h *engine.Hunt) { h.Scout = "a" }, engine.ErrScout},
		{"stray details", func(h *engine.Hunt) {
			h.SurvivorDetails = append(h.SurvivorDetails, engine.HuntSurvivorDetails{SurvivorID: "z"})
		}, engine.ErrEntityNotFound},
		{"negative tokens allowed", func(h *engine.Hunt) { h.SurvivorDetails[0].StrengthTokens = -2 }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := testHunt(t)
			tt.mutate(&h)
			err := ValidateHunt(&h)
			if tt.kind == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.kind)
		})
	}
}

func TestValidateShowdown(t *testing.T) {
	start := func(t *testing.T) engine.Showdown {
		t.Helper()
		sd, err := engine.StartShowdown("sd1", engine.ShowdownParams{
			MonsterName:  "White Lion",
			MonsterLevel: 1,
			Survivors:    []string{"a", "b"},
			Monster:      engine.SingleMonster(engine.MonsterStats{Movement: 6, Toughness: 8, AIDeck: engine.AIDeck{Basic: 7}}),
		})
		require.NoError(t, err)
		return *sd
	}

	sd := start(t)
	assert.NoError(t, ValidateShowdown(&sd))

	sd = start(t)
	sd.Turn.Round = 0
	assert.ErrorIs(t, ValidateShowdown(&sd), engine.ErrBounds)

	sd = start(t)
	sd.Turn.CurrentTurn = "NOBODY"
	assert.ErrorIs(t, ValidateShowdown(&sd), engine.ErrBounds)

	sd = start(t)
	sd.SurvivorDetails[0].BleedingTokens = -1
	assert.ErrorIs(t, ValidateShowdown(&sd), engine.ErrBounds)

	sd = start(t)
	sd.Turn.SurvivorStates[0].SurvivorID = "ghost"
	assert.ErrorIs(t, ValidateShowdown(&sd), engine.ErrEntityNotFound)

	// every party member needs exactly one turn state
	sd = start(t)
	sd.Turn.SurvivorStates = []engine.SurvivorTurnState{}
	assert.ErrorIs(t, ValidateShowdown(&sd), engine.ErrTurnOrder)

	sd = start(t)
	sd.Turn.SurvivorStates[1].SurvivorID = "a"
	assert.ErrorIs(t, ValidateShowdown(&sd), engine.ErrTurnOrder)

	sd = start(t)
	sd.Monster.Single.AIDeckRemaining = 9
	assert.ErrorIs(t, ValidateShowdown(&sd), engine.ErrBounds)
}

func TestValidateMonsterInstance(t *testing.T) {
	single := engine.SingleMonster(engine.MonsterStats{Movement: 5})
	multi := engine.MultiMonster([]engine.MonsterStats{{Movement: 5}, {Movement: 6}})

	assert.NoError(t, ValidateMonsterInstance(false, single))
	assert.NoError(t, ValidateMonsterInstance(true, multi))
	assert.ErrorIs(t, ValidateMonsterInstance(true, single), engine.ErrBounds)
	assert.ErrorIs(t, ValidateMonsterInstance(false, multi), engine.ErrBounds)
	assert.ErrorIs(t, ValidateMonsterInstance(false, engine.MonsterInstanceData{}), engine.ErrBounds)

	bad := engine.MultiMonster([]engine.MonsterStats{{Movement: 5}, {Wounds: -1}})
	err := ValidateMonsterInstance(true, bad)
	var verr *engine.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "[1].wounds", verr.Field)
}

func TestValidateMonster(t *testing.T) {
	def := &engine.MonsterDefinition{
		Name: "White Lion",
		Type: engine.MonsterTypeQuarry,
		Levels: map[int]engine.MonsterInstanceData{
			1: engine.SingleMonster(engine.MonsterStats{Movement: 6, Toughness: 8}),
		},
	}
	assert.NoError(t, ValidateMonster(def))

	def.Levels[5] = engine.SingleMonster(engine.MonsterStats{})
	assert.ErrorIs(t, ValidateMonster(def), engine.ErrBounds)
	delete(def.Levels, 5)

	def.Type = "boss"
	assert.ErrorIs(t, ValidateMonster(def), engine.ErrBounds)

	assert.ErrorIs(t, ValidateMonster(nil), engine.ErrEntityNotFound)
}

func TestValidateCampaign(t *testing.T) {
	c := testCampaign(t)
	require.NoError(t, ValidateCampaign(c))

	t.Run("missing settlement for survivor", func(t *testing.T) {
		c := testCampaign(t)
		c.Survivors[0].SettlementID = "nowhere"
		assert.ErrorIs(t, ValidateCampaign(c), engine.ErrEntityNotFound)
	})

	t.Run("dangling selection", func(t *testing.T) {
		c := testCampaign(t)
		c.SelectedShowdownID = "missing"
		err := ValidateCampaign(c)
		assert.ErrorIs(t, err, engine.ErrEntityNotFound)
		var verr *engine.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "selectedShowdownId", verr.Field)
	})

	t.Run("active hunt with deleted survivor", func(t *testing.T) {
		c := testCampaign(t)
		c.Survivors = c.Survivors[1:]
		assert.ErrorIs(t, ValidateCampaign(c), engine.ErrEntityNotFound)
	})

	t.Run("resolved hunt keeps history", func(t *testing.T) {
		c := testCampaign(t)
		require.NoError(t, c.Hunts[0].Abandon())
		c.Survivors = c.Survivors[1:]
		assert.NoError(t, ValidateCampaign(c))
	})

	t.Run("scout without scouting settlement", func(t *testing.T) {
		c := testCampaign(t)
		c.Settlements[0].UsesScouts = false
		c.Hunts[0].Scout = "e"
		assert.ErrorIs(t, ValidateCampaign(c), engine.ErrScout)
	})

	t.Run("duplicate ids", func(t *testing.T) {
		c := testCampaign(t)
		c.Survivors = append(c.Survivors, testSurvivor("a"))
		assert.ErrorIs(t, ValidateCampaign(c), engine.ErrBounds)
	})
}

func TestValidate_Dispatch(t *testing.T) {
	s := testSettlement()
	assert.NoError(t, Validate(KindSettlement, s))
	assert.NoError(t, Validate(KindSettlement, &s))

	assert.ErrorIs(t, Validate(KindHunt, nil), engine.ErrEntityNotFound)
	assert.ErrorIs(t, Validate(KindHunt, (*engine.Hunt)(nil)), engine.ErrEntityNotFound)
	assert.ErrorIs(t, Validate(KindHunt, s), engine.ErrBounds)
	assert.ErrorIs(t, Validate("dragon", s), engine.ErrBounds)
}

func TestValidate_DoesNotMutate(t *testing.T) {
	c := testCampaign(t)
	before := *c
	before.Hunts = append([]engine.Hunt(nil), c.Hunts...)

	_ = ValidateCampaign(c)
	assert.Equal(t, before.Hunts, c.Hunts)
}
