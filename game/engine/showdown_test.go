package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShowdownTurn(t *testing.T) {
	turn := NewShowdownTurn([]string{"a", "b"})

	assert.Equal(t, TurnMonster, turn.CurrentTurn)
	assert.Equal(t, 1, turn.Round)
	assert.False(t, turn.MonsterState.AICardDrawn)
	require.Len(t, turn.SurvivorStates, 2)
	assert.Equal(t, SurvivorTurnState{SurvivorID: "b"}, turn.SurvivorStates[1])
}

func TestShowdownTurn_Alternation(t *testing.T) {
	turn := NewShowdownTurn([]string{"a", "b"})

	// monster cannot pass before drawing
	assert.ErrorIs(t, turn.NextTurn(), ErrTurnOrder)
	assert.ErrorIs(t, turn.UseActivation("a"), ErrTurnOrder)

	require.NoError(t, turn.DrawAICard())
	assert.ErrorIs(t, turn.DrawAICard(), ErrTurnOrder)
	assert.True(t, turn.CanAdvance())
	require.NoError(t, turn.NextTurn())
	assert.Equal(t, TurnSurvivors, turn.CurrentTurn)
	assert.Equal(t, 1, turn.Round)

	assert.ErrorIs(t, turn.DrawAICard(), ErrTurnOrder)

	require.NoError(t, turn.UseActivation("a"))
	require.NoError(t, turn.UseMovement("a"))
	assert.ErrorIs(t, turn.UseMovement("a"), ErrTurnOrder)
	assert.False(t, turn.SurvivorsDone())
	assert.ErrorIs(t, turn.NextTurn(), ErrTurnOrder)

	require.NoError(t, turn.UseActivation("b"))
	require.NoError(t, turn.UseMovement("b"))
	assert.True(t, turn.SurvivorsDone())
	require.NoError(t, turn.NextTurn())

	assert.Equal(t, TurnMonster, turn.CurrentTurn)
	assert.Equal(t, 2, turn.Round)
	assert.False(t, turn.MonsterState.AICardDrawn)
	for _, s := range turn.SurvivorStates {
		assert.False(t, s.ActivationUsed, s.SurvivorID)
		assert.False(t, s.MovementUsed, s.SurvivorID)
	}
}

func TestShowdownTurn_EndRound(t *testing.T) {
	turn := NewShowdownTurn([]string{"a"})

	assert.ErrorIs(t, turn.EndRound(), ErrTurnOrder)

	require.NoError(t, turn.DrawAICard())
	require.NoError(t, turn.NextTurn())
	require.NoError(t, turn.UseActivation("a"))
	require.NoError(t, turn.EndRound())

	assert.Equal(t, TurnMonster, turn.CurrentTurn)
	assert.Equal(t, 2, turn.Round)
	assert.False(t, turn.SurvivorStates[0].ActivationUsed)
}

func TestShowdownTurn_UnknownSurvivor(t *testing.T) {
	turn := NewShowdownTurn([]string{"a"})
	require.NoError(t, turn.DrawAICard())
	require.NoError(t, turn.NextTurn())

	assert.ErrorIs(t, turn.UseActivation("ghost"), ErrEntityNotFound)
	assert.ErrorIs(t, turn.Use("a", SurvivorAction("dance")), ErrTurnOrder)
}

func TestStartShowdown(t *testing.T) {
	sd, err := StartShowdown("sd1", ShowdownParams{
		MonsterName:  "Butcher",
		MonsterLevel: 2,
		Type:         MonsterTypeNemesis,
		Survivors:    []string{"a", "b", "c"},
	})
	require.NoError(t, err)
	assert.True(t, sd.Active())
	assert.Equal(t, TurnMonster, sd.Turn.CurrentTurn)
	assert.Len(t, sd.SurvivorDetails, 3)
	assert.Len(t, sd.Turn.SurvivorStates, 3)
}

func TestStartShowdown_Guards(t *testing.T) {
	valid := func() ShowdownParams {
		return ShowdownParams{MonsterName: "White Lion", MonsterLevel: 1, Survivors: []string{"a"}}
	}

	tests := []struct {
		name   string
		mutate func(p *ShowdownParams)
		kind   error
	}{
		{"blank monster", func(p *ShowdownParams) { p.MonsterName = "" }, ErrEmptyName},
		{"level", func(p *ShowdownParams) { p.MonsterLevel = 9 }, ErrBounds},
		{"type", func(p *ShowdownParams) { p.Type = "dragon" }, ErrBounds},
		{"party", func(p *ShowdownParams) { p.Survivors = []string{"a", "b", "c", "d", "e"} }, ErrPartySize},
		{"scout", func(p *ShowdownParams) { p.Scout = "a"; p.UsesScouts = true }, ErrScout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid()
			tt.mutate(&p)
			_, err := StartShowdown("sd1", p)
			assert.ErrorIs(t, err, tt.kind)
		})
	}

	sd, err := StartShowdown("sd1", valid())
	require.NoError(t, err)
	assert.Equal(t, MonsterTypeQuarry, sd.Type)
}

func TestShowdownEnd(t *testing.T) {
	sd, err := StartShowdown("sd1", ShowdownParams{MonsterName: "White Lion", MonsterLevel: 1, Survivors: []string{"a"}})
	require.NoError(t, err)

	assert.ErrorIs(t, sd.End("draw"), ErrBounds)
	require.NoError(t, sd.End(ShowdownVictory))

	assert.Equal(t, StatusEnded, sd.Status)
	assert.Equal(t, ShowdownVictory, sd.Outcome)
	assert.Empty(t, sd.SurvivorDetails)
	assert.ErrorIs(t, sd.End(ShowdownDefeat), ErrTurnOrder)
	assert.ErrorIs(t, sd.RequireActive(), ErrTurnOrder)
}
