package game

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/mschmiedel/impostor-game/models"
)

// fakeStore mirrors the Redis store's semantics in memory: records are
// stored by value, the join-code mapping is registered once (never
// refreshed) and removed when a saved game has left JOINING.
type fakeStore struct {
	games   map[string]*models.Game
	codes   map[string]string
	saveErr error
	saves   int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		games: make(map[string]*models.Game),
		codes: make(map[string]string),
	}
}

func copyGame(g *models.Game) *models.Game {
	data, err := json.Marshal(g)
	if err != nil {
		panic(err)
	}
	var c models.Game
	if err := json.Unmarshal(data, &c); err != nil {
		panic(err)
	}
	return &c
}

func (s *fakeStore) Save(_ context.Context, g *models.Game) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves++
	s.games[g.ID] = copyGame(g)

	if g.Status == models.StatusJoining && g.JoinCode != "" {
		if _, taken := s.codes[g.JoinCode]; !taken {
			s.codes[g.JoinCode] = g.ID
		}
	}
	if g.Status != models.StatusJoining && g.JoinCode != "" {
		delete(s.codes, g.JoinCode)
	}
	return nil
}

func (s *fakeStore) FindByID(_ context.Context, id string) (*models.Game, error) {
	g, ok := s.games[id]
	if !ok {
		return nil, nil
	}
	return copyGame(g), nil
}

func (s *fakeStore) FindByJoinCode(ctx context.Context, code string) (*models.Game, error) {
	id, ok := s.codes[code]
	if !ok {
		return nil, nil
	}
	return s.FindByID(ctx, id)
}

func (s *fakeStore) DeleteJoinCode(_ context.Context, code string) error {
	delete(s.codes, code)
	return nil
}

// fakeWords hands out a scripted sequence of words and records the
// previousWords it was asked to avoid.
type fakeWords struct {
	words []Word
	err   error
	calls [][]string
	next  int
}

var errSourceDown = errors.New("word source down")

func (f *fakeWords) GenerateWord(_ context.Context, _ int, _ string, previousWords []string) (Word, error) {
	f.calls = append(f.calls, append([]string(nil), previousWords...))
	if f.err != nil {
		return Word{}, f.err
	}
	if len(f.words) == 0 {
		return Word{Category: "Obst", Word: "Apfel"}, nil
	}
	w := f.words[f.next%len(f.words)]
	f.next++
	return w, nil
}
