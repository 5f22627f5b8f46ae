package game

import (
	"context"

	"go.uber.org/zap"

	"github.com/mschmiedel/impostor-game/models"
)

// Word is one candidate drawn from the word source.
type Word struct {
	Category string
	Word     string
}

// WordSource supplies the secret word for a turn. Implementations must
// avoid words in previousWords while any unused candidate remains.
type WordSource interface {
	GenerateWord(ctx context.Context, age int, language string, previousWords []string) (Word, error)
}

// A turn must never fail just because the word source is down, so the
// composer falls back to a fixed pair instead of surfacing the error.
const (
	FallbackWord     = "Wassermelone"
	FallbackCategory = "Obst"
)

// ImpostorCount returns how many impostors a roster of the given size
// gets: max(1, playerCount/3).
func ImpostorCount(playerCount int) int {
	if n := playerCount / 3; n > 1 {
		return n
	}
	return 1
}

// composeTurn assigns roles with a uniform shuffle and a prefix split,
// then draws a word avoiding everything used earlier in this game.
func (e *Engine) composeTurn(ctx context.Context, g *models.Game) models.Turn {
	ids := make([]string, len(g.Players))
	for i := range g.Players {
		ids[i] = g.Players[i].ID
	}
	e.shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })

	k := ImpostorCount(len(ids))
	impostors := ids[:k]
	civilians := ids[k:]

	w, err := e.words.GenerateWord(ctx, g.AgeOfYoungestPlayer, g.Language, g.UsedWords())
	if err != nil {
		e.logger.Warn("word source unavailable, using fallback word",
			zap.String("gameId", g.ID), zap.Error(err))
		w = Word{Category: FallbackCategory, Word: FallbackWord}
	}

	return models.Turn{
		Word:      w.Word,
		Category:  w.Category,
		Impostors: impostors,
		Civilians: civilians,
	}
}
