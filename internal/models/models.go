package models

import (
	"strconv"
	"time"
)

// Profile is the per-player game state. Unique-card sets are not stored:
// they are derived from inventory counts on read, so the counts stay the
// single source of truth.
type Profile struct {
	ID          int64     `json:"id"`
	UID         string    `json:"uid,omitempty"`
	Name        string    `json:"name"`
	Coins       int64     `json:"coins"`
	PacksOpened int       `json:"packs_opened"`
	QuizScore   int       `json:"quiz_score"`
	TotalCards  int       `json:"total_cards"`
	Avatar      string    `json:"avatar,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Identity returns the identifier used to mark listings and leaderboard
// entries: the auth UID when signed in, else a local fallback.
func (p *Profile) Identity() string {
	if p.UID != "" {
		return p.UID
	}
	return LocalIdentity(p.ID)
}

// LocalIdentity builds the anonymous identity for a profile row.
func LocalIdentity(id int64) string {
	return "local-" + strconv.FormatInt(id, 10)
}

// ProfileSnapshot is the denormalized view pushed to the remote store and the
// local leaderboard cache on every profile update.
type ProfileSnapshot struct {
	Identity    string `json:"identity"`
	Name        string `json:"name"`
	UniqueCards int    `json:"unique_cards"`
	Coins       int64  `json:"coins"`
	PacksOpened int    `json:"packs_opened"`
	TotalCards  int    `json:"total_cards"`
	QuizScore   int    `json:"quiz_score"`
	Avatar      string `json:"avatar,omitempty"`
}

// Card is one entry of a pack's card pool, loaded from static JSON.
// DropRate <= 0 keeps the card visible in the dex but out of the draw pool.
type Card struct {
	ID       string  `json:"id,omitempty"`
	Name     string  `json:"name"`
	Img      string  `json:"img,omitempty"`
	DropRate float64 `json:"dropRate"`
}

// Key returns the identifier cards are tracked under in inventories:
// the name when present, else the raw id.
func (c Card) Key() string {
	if c.Name != "" {
		return c.Name
	}
	return c.ID
}

// Question is a quiz question with answers normalized at load time to a
// lowercase, trimmed, non-empty list.
type Question struct {
	Prompt  string   `json:"question"`
	Image   string   `json:"image,omitempty"`
	Options []string `json:"options,omitempty"`
	Answers []string `json:"-"`
	Points  int      `json:"points"`
}

// Listing is a marketplace offer to sell one card for a price.
// Reserved listings removed one unit from the seller's inventory at creation
// time; the unit comes back only on cancellation.
type Listing struct {
	ID         string    `json:"id"`
	Pack       string    `json:"pack"`
	CardID     string    `json:"card_id"`
	Price      int64     `json:"price"`
	SellerName string    `json:"seller_name"`
	SellerID   string    `json:"seller_id"`
	Reserved   bool      `json:"reserved"`
	CreatedAt  time.Time `json:"created_at"`
}

// ListingFilter narrows marketplace queries. Zero values mean no filter.
type ListingFilter struct {
	Pack     string
	SellerID string
	Limit    int
	Offset   int
}

// LeaderboardEntry ranks players by unique-card count.
type LeaderboardEntry struct {
	Identity    string `json:"identity,omitempty"`
	Name        string `json:"name"`
	UniqueCards int    `json:"unique_cards"`
}

// DexEntry is a card joined with the viewer's owned count.
type DexEntry struct {
	Card
	Owned int `json:"owned"`
}
