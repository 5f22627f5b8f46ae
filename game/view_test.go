package game

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mschmiedel/impostor-game/models"
)

func viewFixture(status models.GameStatus, turns []models.Turn) *models.Game {
	return &models.Game{
		ID:       "game-1",
		JoinCode: "1234",
		Status:   status,
		Language: "de-DE",
		Players: []models.Player{
			{ID: "p0", Name: "Alice", Secret: "s0", Role: models.RoleHost, IsReady: true},
			{ID: "p1", Name: "Bob", Secret: "s1", Role: models.RolePlayer, IsReady: true},
			{ID: "p2", Name: "Carol", Secret: "s2", Role: models.RolePlayer, IsReady: true},
			{ID: "p3", Name: "Dave", Secret: "s3", Role: models.RolePlayer, IsReady: true},
		},
		Turns: turns,
	}
}

func turnFixture() models.Turn {
	return models.Turn{
		Word:      "Kiwi",
		Category:  "Obst",
		Impostors: []string{"p1"},
		Civilians: []string{"p0", "p2", "p3"},
	}
}

func TestProject_UnknownSecret(t *testing.T) {
	g := viewFixture(models.StatusJoining, nil)

	_, err := Project(g, "wrong")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = Project(g, "")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestProject_PlayersAndJoinCode(t *testing.T) {
	g := viewFixture(models.StatusJoining, nil)

	view, err := Project(g, "s1")
	require.NoError(t, err)

	assert.Equal(t, "1234", view.JoinCode, "join code visible while joining")
	require.Len(t, view.Players, 4)
	assert.Equal(t, models.RoleHost, view.Players[0].Role)
	assert.False(t, view.Players[0].IsMe)
	assert.True(t, view.Players[1].IsMe)

	// Defense in depth: even a record that still carries its code does
	// not expose it once the game left JOINING.
	g.Status = models.StatusStarted
	view, err = Project(g, "s1")
	require.NoError(t, err)
	assert.Empty(t, view.JoinCode)
}

func TestProject_NeverLeaksSecrets(t *testing.T) {
	g := viewFixture(models.StatusStarted, []models.Turn{turnFixture()})

	view, err := Project(g, "s0")
	require.NoError(t, err)

	data, err := json.Marshal(view)
	require.NoError(t, err)
	for _, p := range g.Players {
		assert.NotContains(t, string(data), p.Secret)
	}
}

func TestProject_CurrentTurnVisibility(t *testing.T) {
	g := viewFixture(models.StatusStarted, []models.Turn{turnFixture()})

	t.Run("civilian sees word and category", func(t *testing.T) {
		view, err := Project(g, "s2")
		require.NoError(t, err)
		require.Len(t, view.Turns, 1)

		tv := view.Turns[0]
		assert.True(t, tv.IsCurrent)
		assert.False(t, tv.Revealed)
		assert.Equal(t, TurnRoleCivilian, tv.Role)
		require.NotNil(t, tv.Word)
		assert.Equal(t, "Kiwi", *tv.Word)
		require.NotNil(t, tv.Category)
		assert.Equal(t, "Obst", *tv.Category)
		assert.Nil(t, tv.Impostors)
		assert.Nil(t, tv.Civilians)
	})

	t.Run("impostor sees neither word nor role lists", func(t *testing.T) {
		view, err := Project(g, "s1")
		require.NoError(t, err)

		tv := view.Turns[0]
		assert.Equal(t, TurnRoleImpostor, tv.Role)
		assert.Nil(t, tv.Word)
		assert.Nil(t, tv.Category, "no category clue for a 4 player turn")
		assert.Nil(t, tv.Impostors)
		assert.Nil(t, tv.Civilians)
	})

	t.Run("late joiner has unknown role", func(t *testing.T) {
		late := viewFixture(models.StatusStarted, []models.Turn{turnFixture()})
		late.Players = append(late.Players, models.Player{
			ID: "p4", Name: "Eve", Secret: "s4", Role: models.RolePlayer,
		})

		view, err := Project(late, "s4")
		require.NoError(t, err)

		tv := view.Turns[0]
		assert.Equal(t, TurnRoleUnknown, tv.Role)
		assert.Nil(t, tv.Word)
		assert.Nil(t, tv.Category)
	})
}

func TestProject_CategoryHandicapForSmallRoster(t *testing.T) {
	g := viewFixture(models.StatusStarted, []models.Turn{{
		Word:      "Kiwi",
		Category:  "Obst",
		Impostors: []string{"p1"},
		Civilians: []string{"p0", "p2"},
	}})

	view, err := Project(g, "s1")
	require.NoError(t, err)

	tv := view.Turns[0]
	assert.Equal(t, TurnRoleImpostor, tv.Role)
	assert.Nil(t, tv.Word, "the word stays hidden even with the handicap")
	require.NotNil(t, tv.Category, "3 player turns give the impostor the category")
	assert.Equal(t, "Obst", *tv.Category)
}

func TestProject_PastTurnsAlwaysRevealed(t *testing.T) {
	past := turnFixture()
	current := models.Turn{
		Word:      "Dachs",
		Category:  "Tiere",
		Impostors: []string{"p2"},
		Civilians: []string{"p0", "p1", "p3"},
	}
	g := viewFixture(models.StatusStarted, []models.Turn{past, current})

	// Even the player who was impostor in the past turn sees it fully.
	view, err := Project(g, "s1")
	require.NoError(t, err)
	require.Len(t, view.Turns, 2)

	first := view.Turns[0]
	assert.True(t, first.Revealed)
	assert.False(t, first.IsCurrent)
	require.NotNil(t, first.Word)
	assert.Equal(t, "Kiwi", *first.Word)
	require.NotNil(t, first.Category)
	assert.Equal(t, []string{"p1"}, first.Impostors)
	assert.Equal(t, []string{"p0", "p2", "p3"}, first.Civilians)

	second := view.Turns[1]
	assert.False(t, second.Revealed)
	assert.True(t, second.IsCurrent)
}

func TestProject_FinishedGameRevealsEverything(t *testing.T) {
	g := viewFixture(models.StatusFinished, []models.Turn{turnFixture()})

	for _, secret := range []string{"s0", "s1", "s2"} {
		view, err := Project(g, secret)
		require.NoError(t, err)
		require.Len(t, view.Turns, 1)

		tv := view.Turns[0]
		assert.True(t, tv.Revealed)
		assert.False(t, tv.IsCurrent, "a finished game has no current turn")
		require.NotNil(t, tv.Word)
		assert.Equal(t, "Kiwi", *tv.Word)
		assert.Equal(t, []string{"p1"}, tv.Impostors)
		assert.Equal(t, []string{"p0", "p2", "p3"}, tv.Civilians)
	}
}
