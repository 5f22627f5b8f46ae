package models

// GameStatus drives authorization and visibility for every operation.
type GameStatus string

const (
	StatusJoining  GameStatus = "JOINING"
	StatusStarted  GameStatus = "STARTED"
	StatusFinished GameStatus = "FINISHED"
)

// PlayerRole separates the single privileged host from regular players.
type PlayerRole string

const (
	RoleHost   PlayerRole = "HOST"
	RolePlayer PlayerRole = "PLAYER"
)

// Player is embedded in a Game record. The secret is the player's only
// credential and must never leave the server.
type Player struct {
	ID      string     `json:"id"`
	Name    string     `json:"name"`
	Secret  string     `json:"secret"`
	Role    PlayerRole `json:"role"`
	IsReady bool       `json:"isReady"`
}

// Turn holds one round's word and role assignment. Impostors and civilians
// partition the roster as it existed when the turn was generated.
type Turn struct {
	Word      string   `json:"word"`
	Category  string   `json:"category"`
	Impostors []string `json:"impostors"`
	Civilians []string `json:"civilians"`
}

// Game is the aggregate persisted as a single record.
type Game struct {
	ID                  string     `json:"gameId"`
	JoinCode            string     `json:"joinCode,omitempty"`
	Status              GameStatus `json:"status"`
	AgeOfYoungestPlayer int        `json:"ageOfYoungestPlayer"`
	Language            string     `json:"language"`
	Players             []Player   `json:"players"`
	Turns               []Turn     `json:"turns"`
	CreatedAt           int64      `json:"createdAt"`
}

// PlayerByID returns a pointer into the roster, or nil.
func (g *Game) PlayerByID(id string) *Player {
	for i := range g.Players {
		if g.Players[i].ID == id {
			return &g.Players[i]
		}
	}
	return nil
}

// PlayerBySecret resolves the caller from their bearer secret, or nil.
func (g *Game) PlayerBySecret(secret string) *Player {
	if secret == "" {
		return nil
	}
	for i := range g.Players {
		if g.Players[i].Secret == secret {
			return &g.Players[i]
		}
	}
	return nil
}

// Host returns the game's host. Every game has exactly one.
func (g *Game) Host() *Player {
	for i := range g.Players {
		if g.Players[i].Role == RoleHost {
			return &g.Players[i]
		}
	}
	return nil
}

// ReadyCount counts players that confirmed they are ready to start.
func (g *Game) ReadyCount() int {
	n := 0
	for i := range g.Players {
		if g.Players[i].IsReady {
			n++
		}
	}
	return n
}

// UsedWords collects every word drawn in prior turns, in turn order.
func (g *Game) UsedWords() []string {
	words := make([]string, 0, len(g.Turns))
	for _, t := range g.Turns {
		words = append(words, t.Word)
	}
	return words
}
