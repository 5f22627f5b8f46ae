package game

import (
	"github.com/mschmiedel/impostor-game/models"
)

// TurnRole is the caller's role within a single turn. Unknown covers a
// player who joined after the turn was generated.
type TurnRole string

const (
	TurnRoleCivilian TurnRole = "CIVILIAN"
	TurnRoleImpostor TurnRole = "IMPOSTOR"
	TurnRoleUnknown  TurnRole = "UNKNOWN"
)

// categoryClueMax is the largest turn roster for which the impostor still
// gets the category as a handicap clue.
const categoryClueMax = 3

type PlayerView struct {
	ID      string            `json:"id"`
	Name    string            `json:"name"`
	Role    models.PlayerRole `json:"role"`
	IsReady bool              `json:"isReady"`
	IsMe    bool              `json:"isMe"`
}

// TurnView is the tagged per-turn result: either fully revealed (word,
// category and both role lists) or hidden (only what the caller's role
// entitles them to). Hidden turns omit the role lists entirely so nothing
// can be inferred from list sizes.
type TurnView struct {
	IsCurrent bool     `json:"isCurrent"`
	Revealed  bool     `json:"revealed"`
	Role      TurnRole `json:"role,omitempty"`
	Word      *string  `json:"word"`
	Category  *string  `json:"category,omitempty"`
	Impostors []string `json:"impostors,omitempty"`
	Civilians []string `json:"civilians,omitempty"`
}

type GameView struct {
	GameID              string            `json:"gameId"`
	Status              models.GameStatus `json:"status"`
	JoinCode            string            `json:"joinCode,omitempty"`
	Language            string            `json:"language"`
	AgeOfYoungestPlayer int               `json:"ageOfYoungestPlayer"`
	Players             []PlayerView      `json:"players"`
	Turns               []TurnView        `json:"turns"`
}

// Project derives the requesting player's view of the game. It is a pure
// function of the record and the caller's secret; secrets never appear in
// the output and the join code is only exposed while the game is joinable.
func Project(g *models.Game, playerSecret string) (*GameView, error) {
	me := g.PlayerBySecret(playerSecret)
	if me == nil {
		return nil, ErrUnauthorized
	}

	view := &GameView{
		GameID:              g.ID,
		Status:              g.Status,
		Language:            g.Language,
		AgeOfYoungestPlayer: g.AgeOfYoungestPlayer,
		Players:             make([]PlayerView, 0, len(g.Players)),
		Turns:               make([]TurnView, 0, len(g.Turns)),
	}
	if g.Status == models.StatusJoining {
		view.JoinCode = g.JoinCode
	}

	for _, p := range g.Players {
		view.Players = append(view.Players, PlayerView{
			ID:      p.ID,
			Name:    p.Name,
			Role:    p.Role,
			IsReady: p.IsReady,
			IsMe:    p.ID == me.ID,
		})
	}

	for i, t := range g.Turns {
		isLast := i == len(g.Turns)-1
		view.Turns = append(view.Turns, projectTurn(t, me.ID, isLast, g.Status))
	}

	return view, nil
}

func projectTurn(t models.Turn, viewerID string, isLast bool, status models.GameStatus) TurnView {
	tv := TurnView{
		IsCurrent: isLast && status == models.StatusStarted,
	}

	// Every turn except the live last one is history, and a finished
	// game has no secrets left.
	if status == models.StatusFinished || !isLast {
		word := t.Word
		category := t.Category
		tv.Revealed = true
		tv.Word = &word
		tv.Category = &category
		tv.Impostors = t.Impostors
		tv.Civilians = t.Civilians
		return tv
	}

	tv.Role = turnRole(t, viewerID)
	switch tv.Role {
	case TurnRoleCivilian:
		word := t.Word
		category := t.Category
		tv.Word = &word
		tv.Category = &category
	case TurnRoleImpostor:
		// Handicap for tiny rosters: the impostor at least learns the
		// category, though the word stays hidden.
		if len(t.Impostors)+len(t.Civilians) <= categoryClueMax {
			category := t.Category
			tv.Category = &category
		}
	}
	return tv
}

func turnRole(t models.Turn, viewerID string) TurnRole {
	for _, id := range t.Impostors {
		if id == viewerID {
			return TurnRoleImpostor
		}
	}
	for _, id := range t.Civilians {
		if id == viewerID {
			return TurnRoleCivilian
		}
	}
	return TurnRoleUnknown
}
