package words

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mschmiedel/impostor-game/game"
)

// poolSize is how many category/word pairs one generateContent call asks
// for. A single fetch then serves a whole day of games per language.
const poolSize = 40

var errNoAPIKey = errors.New("GOOGLE_API_KEY is not set")

// Generator implements game.WordSource on top of the Gemini API, caching
// one pool of candidate words per (day, language). Words already used by
// the requesting game are skipped until the pool is exhausted; only then
// may a word repeat.
type Generator struct {
	apiKey string
	model  string
	logger *zap.Logger

	now     func() time.Time
	randIdx func(n int) int
	fetch   func(ctx context.Context, age int, language string) ([]game.Word, error)

	mu    sync.RWMutex
	pools map[string][]game.Word
}

func NewGenerator(apiKey string, logger *zap.Logger) *Generator {
	g := &Generator{
		apiKey:  apiKey,
		model:   "gemini-flash-lite-latest",
		logger:  logger,
		now:     time.Now,
		randIdx: rand.Intn,
		pools:   make(map[string][]game.Word),
	}
	g.fetch = g.fetchPool
	return g
}

// GenerateWord returns a candidate word for a turn, avoiding
// previousWords while any unused pool entry remains.
func (g *Generator) GenerateWord(ctx context.Context, age int, language string, previousWords []string) (game.Word, error) {
	if language == "" {
		language = "de-DE"
	}

	pool, err := g.pool(ctx, age, language)
	if err != nil {
		return game.Word{}, err
	}

	unused := make([]game.Word, 0, len(pool))
	for _, w := range pool {
		if !containsWord(previousWords, w.Word) {
			unused = append(unused, w)
		}
	}
	if len(unused) == 0 {
		// Pool exhausted for this game; reuse is allowed now.
		unused = pool
	}

	return unused[g.randIdx(len(unused))], nil
}

func (g *Generator) poolKey(language string) string {
	return g.now().Format("2006-01-02") + "|" + language
}

func (g *Generator) pool(ctx context.Context, age int, language string) ([]game.Word, error) {
	key := g.poolKey(language)

	g.mu.RLock()
	pool, ok := g.pools[key]
	g.mu.RUnlock()
	if ok {
		return pool, nil
	}

	pool, err := g.fetch(ctx, age, language)
	if err != nil {
		return nil, err
	}
	if len(pool) == 0 {
		return nil, fmt.Errorf("word pool for %s came back empty", language)
	}

	g.mu.Lock()
	g.pools[key] = pool
	g.mu.Unlock()

	g.logger.Info("word pool cached",
		zap.String("language", language),
		zap.Int("words", len(pool)),
	)
	return pool, nil
}

// EvictStalePools drops every cached pool that is not from today and
// returns how many survive. Wired to the daily cron job.
func (g *Generator) EvictStalePools() int {
	today := g.now().Format("2006-01-02")

	g.mu.Lock()
	defer g.mu.Unlock()
	for key := range g.pools {
		if !strings.HasPrefix(key, today+"|") {
			delete(g.pools, key)
		}
	}
	return len(g.pools)
}

func containsWord(words []string, w string) bool {
	for _, prev := range words {
		if strings.EqualFold(prev, w) {
			return true
		}
	}
	return false
}
