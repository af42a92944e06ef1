package game

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Card is an immutable catalog fact. Level state lives in the player's
// proficiency ledger, not here; BaseLevel is only the seed value.
type Card struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Category    string `yaml:"category"`
	Cost        int    `yaml:"cost"`
	BaseLevel   int    `yaml:"base_level"`
	Difficulty  int    `yaml:"difficulty"`
	Popularity  int    `yaml:"popularity"`
	Performance int    `yaml:"performance"`
}

type Catalog struct {
	cards []Card
	byID  map[string]Card
	rnd   *rand.Rand
}

func NewCatalog(cards []Card) *Catalog {
	byID := make(map[string]Card, len(cards))
	for _, c := range cards {
		byID[c.ID] = c
	}
	return &Catalog{
		cards: cards,
		byID:  byID,
		rnd:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func DefaultCatalog() *Catalog {
	return NewCatalog([]Card{
		{ID: "react", Name: "React", Category: "frontend", Cost: 2, BaseLevel: 1, Difficulty: 2, Popularity: 5, Performance: 3},
		{ID: "vue", Name: "Vue.js", Category: "frontend", Cost: 1, BaseLevel: 1, Difficulty: 1, Popularity: 4, Performance: 3},
		{ID: "express", Name: "Express.js", Category: "backend", Cost: 1, BaseLevel: 1, Difficulty: 1, Popularity: 4, Performance: 2},
		{ID: "django", Name: "Django", Category: "backend", Cost: 2, BaseLevel: 1, Difficulty: 2, Popularity: 3, Performance: 3},
		{ID: "tensorflow", Name: "TensorFlow", Category: "ml", Cost: 3, BaseLevel: 1, Difficulty: 4, Popularity: 4, Performance: 5},
		{ID: "pytorch", Name: "PyTorch", Category: "ml", Cost: 3, BaseLevel: 1, Difficulty: 4, Popularity: 4, Performance: 5},
		{ID: "fastapi", Name: "FastAPI", Category: "backend", Cost: 2, BaseLevel: 1, Difficulty: 2, Popularity: 3, Performance: 4},
		{ID: "jwt", Name: "JWT", Category: "auth", Cost: 1, BaseLevel: 1, Difficulty: 1, Popularity: 4, Performance: 2},
		{ID: "redis", Name: "Redis", Category: "infra", Cost: 2, BaseLevel: 1, Difficulty: 2, Popularity: 4, Performance: 5},
		{ID: "oauth", Name: "OAuth", Category: "auth", Cost: 2, BaseLevel: 1, Difficulty: 3, Popularity: 4, Performance: 2},
		{ID: "nextjs", Name: "Next.js", Category: "frontend", Cost: 3, BaseLevel: 1, Difficulty: 3, Popularity: 5, Performance: 4},
		{ID: "threejs", Name: "Three.js", Category: "frontend", Cost: 2, BaseLevel: 1, Difficulty: 3, Popularity: 3, Performance: 3},
		{ID: "websocket", Name: "WebSocket", Category: "infra", Cost: 2, BaseLevel: 1, Difficulty: 2, Popularity: 4, Performance: 4},
	})
}

type catalogFile struct {
	Cards []Card `yaml:"cards"`
}

// LoadCatalog reads a YAML catalog file.
func LoadCatalog(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f catalogFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	if len(f.Cards) == 0 {
		return nil, fmt.Errorf("catalog %s has no cards", path)
	}
	for i, c := range f.Cards {
		if c.ID == "" || c.Name == "" {
			return nil, fmt.Errorf("catalog %s: card %d missing id or name", path, i)
		}
		if c.BaseLevel < 1 {
			f.Cards[i].BaseLevel = 1
		}
	}
	return NewCatalog(f.Cards), nil
}

func (c *Catalog) Size() int { return len(c.cards) }

func (c *Catalog) Get(id string) (Card, bool) {
	card, ok := c.byID[id]
	return card, ok
}

// Sample draws n distinct cards uniformly at random, no duplicates within
// the sample. n is capped at the catalog size.
func (c *Catalog) Sample(n int) []Card {
	if n > len(c.cards) {
		n = len(c.cards)
	}
	if n <= 0 {
		return nil
	}
	idx := c.rnd.Perm(len(c.cards))
	out := make([]Card, 0, n)
	for _, i := range idx[:n] {
		out = append(out, c.cards[i])
	}
	return out
}
