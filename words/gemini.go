package words

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mschmiedel/impostor-game/game"
)

var httpClient = &http.Client{Timeout: 20 * time.Second}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// fetchPool asks Gemini for a whole day's worth of category/word pairs in
// one call.
func (g *Generator) fetchPool(ctx context.Context, age int, language string) ([]game.Word, error) {
	if g.apiKey == "" {
		return nil, errNoAPIKey
	}

	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{
			Parts: []geminiPart{{Text: poolPrompt(age, language)}},
		}},
	})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf(
		"https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s",
		g.model, g.apiKey,
	)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gemini api returned %s", resp.Status)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var parsed geminiResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("decoding gemini response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("gemini response contained no candidates")
	}

	pool, err := extractPool(parsed.Candidates[0].Content.Parts[0].Text)
	if err != nil {
		g.logger.Error("failed to parse word pool", zap.Error(err))
		return nil, err
	}
	return pool, nil
}

// extractPool pulls the JSON array out of the model's answer, which may
// be wrapped in markdown fences or prose.
func extractPool(text string) ([]game.Word, error) {
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON array in model output")
	}

	var entries []struct {
		Category string `json:"category"`
		Word     string `json:"word"`
	}
	if err := json.Unmarshal([]byte(text[start:end+1]), &entries); err != nil {
		return nil, err
	}

	pool := make([]game.Word, 0, len(entries))
	for _, e := range entries {
		w := strings.TrimSpace(e.Word)
		if w == "" {
			continue
		}
		pool = append(pool, game.Word{Category: strings.TrimSpace(e.Category), Word: w})
	}
	return pool, nil
}

func poolPrompt(age int, language string) string {
	return strings.TrimSpace(fmt.Sprintf(`
Aufgabe: Erstelle einen Pool von %d geheimen Wörtern für das "Impostor"-Spiel (Variante: Mr. White).

Parameter:
- Zielgruppe: Alter %d
- Sprache: %s

Regeln für die Auswahl (WICHTIG!):
1. Wähle für jedes Wort eine zufällige, spezifische Kategorie; nutze viele verschiedene Kategorien.
2. Jedes Wort muss in der Sprache %s geliefert werden.
3. Konkretisierung: Wähle ausschließlich KONKRETE SUBSTANTIVE. Keine Verben und keine abstrakten Begriffe (wie "Liebe", "Mut").
4. Die Wörter sollten thematisch und von der Schwierigkeit zum Alter %d passen. Reduziere die Wahrscheinlichkeit, zu typische Wörter vom Alltag zu nehmen (Haus, Katze, usw); bei so einfachen Wörtern eher zusammengesetzte Wörter nehmen (Schäferhund z.B.).
5. Keine zwei Wörter im Pool dürfen gleich oder thematisch zu nah beieinander sein.
6. Jedes Wort muss für eine Person im Alter von %d Jahren leicht verständlich und bildlich vorstellbar sein.

Antworte ausschließlich als JSON-Array:
[
  {"category": "Name der Kategorie", "word": "Das geheime Wort"}
]
`, poolSize, age, language, language, age, age))
}
