package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vytor/packdex/internal/logger"
	"github.com/vytor/packdex/internal/models"
	"github.com/vytor/packdex/internal/quiz"
)

// PackInfo describes one openable pack and the pool file backing it.
type PackInfo struct {
	Key        string `json:"key"`
	Name       string `json:"name"`
	Image      string `json:"image"`
	Background string `json:"background"`
	PoolFile   string `json:"-"`
}

// Packs is the pack registry, keyed by pack type.
var Packs = map[string]PackInfo{
	"prismatic": {Key: "prismatic", Name: "Prismatic Evolutions", Image: "prismatic_evolutions_art.png", Background: "prismatic_bg.png", PoolFile: "cards.json"},
	"twilight":  {Key: "twilight", Name: "Twilight Masquerade", Image: "twilight_masquerade_art.png", Background: "yellow.png", PoolFile: "twilightcards.json"},
	"sv151":     {Key: "sv151", Name: "Scarlet & Violet 151", Image: "pokemon_151_art.png", Background: "blue.png", PoolFile: "151cards.json"},
}

// Categories lists the quiz categories; each maps to <category>.json.
var Categories = []string{"biology", "chemistry", "physics", "accounting", "econs"}

// Catalog loads card pools and quiz question sets from a Source.
type Catalog struct {
	src Source
}

func New(src Source) *Catalog {
	return &Catalog{src: src}
}

// Pack resolves a pack key, tolerating pool file names the way the legacy
// client did ("twilightcards.json" selects the twilight pack).
func Pack(keyOrFile string) (PackInfo, bool) {
	if p, ok := Packs[keyOrFile]; ok {
		return p, true
	}
	for _, p := range Packs {
		if p.PoolFile == keyOrFile {
			return p, true
		}
	}
	return PackInfo{}, false
}

// HasCategory reports whether a quiz category is known.
func HasCategory(cat string) bool {
	for _, c := range Categories {
		if c == cat {
			return true
		}
	}
	return false
}

// Cards loads the full card list for a pack, including cards with invalid or
// zero drop rates (those stay visible in the dex but out of the draw pool).
func (c *Catalog) Cards(ctx context.Context, packKey string) ([]models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("catalog")

	info, ok := Pack(packKey)
	if !ok {
		return nil, fmt.Errorf("unknown pack: %s", packKey)
	}

	data, err := c.src.Fetch(ctx, info.PoolFile)
	if err != nil {
		log.Error("failed to fetch pool %s: %v", info.PoolFile, err)
		return nil, err
	}

	items, err := decodePayload(data)
	if err != nil {
		log.Error("failed to decode pool %s: %v", info.PoolFile, err)
		return nil, err
	}

	cards := make([]models.Card, 0, len(items))
	for _, raw := range items {
		var rc struct {
			ID       string          `json:"id"`
			Name     string          `json:"name"`
			Img      string          `json:"img"`
			DropRate json.RawMessage `json:"dropRate"`
		}
		if err := json.Unmarshal(raw, &rc); err != nil {
			log.Warn("skipping malformed card entry in %s: %v", info.PoolFile, err)
			continue
		}
		card := models.Card{ID: rc.ID, Name: rc.Name, Img: rc.Img}
		if w, ok := asFloat(rc.DropRate); ok {
			card.DropRate = w
		}
		if card.Key() == "" {
			log.Warn("skipping card without name or id in %s", info.PoolFile)
			continue
		}
		cards = append(cards, card)
	}

	log.Debug("loaded %d cards from %s", len(cards), info.PoolFile)
	return cards, nil
}

// Questions loads a quiz category, normalizing the duck-typed answer field
// into a canonical accepted-answer list and defaulting points to 1.
// Questions with no usable answer are dropped.
func (c *Catalog) Questions(ctx context.Context, category string) ([]models.Question, error) {
	log := logger.FromContext(ctx).WithPrefix("catalog")

	if !HasCategory(category) {
		return nil, fmt.Errorf("unknown quiz category: %s", category)
	}

	data, err := c.src.Fetch(ctx, category+".json")
	if err != nil {
		log.Error("failed to fetch questions for %s: %v", category, err)
		return nil, err
	}

	items, err := decodePayload(data)
	if err != nil {
		log.Error("failed to decode questions for %s: %v", category, err)
		return nil, err
	}

	questions := make([]models.Question, 0, len(items))
	for _, raw := range items {
		var rq struct {
			Question string          `json:"question"`
			Image    string          `json:"image"`
			Options  []string        `json:"options"`
			Answer   json.RawMessage `json:"answer"`
			Points   json.RawMessage `json:"points"`
		}
		if err := json.Unmarshal(raw, &rq); err != nil {
			log.Warn("skipping malformed question in %s: %v", category, err)
			continue
		}

		q := models.Question{
			Prompt:  rq.Question,
			Image:   rq.Image,
			Options: rq.Options,
			Answers: quiz.NormalizeAnswers(rq.Answer),
			Points:  1,
		}
		if p, ok := asFloat(rq.Points); ok && p > 0 {
			q.Points = int(p)
		}
		if len(q.Answers) == 0 {
			log.Warn("skipping question without answers in %s: %q", category, rq.Question)
			continue
		}
		questions = append(questions, q)
	}

	log.Debug("loaded %d questions for %s", len(questions), category)
	return questions, nil
}
