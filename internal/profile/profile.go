// Package profile keeps anglers' coins, tackle inventory and match record.
package profile

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"fishing-clash/internal/match"
	"fishing-clash/internal/tackle"
)

var (
	ErrNotFound    = errors.New("profile not found")
	ErrInvalidName = errors.New("profile name is required")
	ErrNotOwned    = errors.New("tackle not owned")
)

type Stats struct {
	Matches     int     `json:"matches"`
	LiveMatches int     `json:"liveMatches"`
	Wins        int     `json:"wins"`
	Podiums     int     `json:"podiums"`
	BestWeight  float64 `json:"bestWeight"`
	TotalWeight float64 `json:"totalWeight"`
}

type Profile struct {
	ID        string                        `json:"id"`
	Name      string                        `json:"name"`
	Country   string                        `json:"country,omitempty"`
	Avatar    string                        `json:"avatar,omitempty"`
	Coins     int                           `json:"coins"`
	Inventory map[tackle.Dimension][]string `json:"inventory"`
	Stats     Stats                         `json:"stats"`
}

func (p *Profile) clone() Profile {
	out := *p
	out.Inventory = make(map[tackle.Dimension][]string, len(p.Inventory))
	for d, vs := range p.Inventory {
		out.Inventory[d] = slices.Clone(vs)
	}
	return out
}

// Player converts the profile into a match player carrying l.
func (p Profile) Player(l tackle.Loadout) match.Player {
	return match.Player{ID: p.ID, Name: p.Name, Country: p.Country, Avatar: p.Avatar, Loadout: l}
}

// Repository is an in-memory profile store.
type Repository struct {
	profiles      map[string]*Profile
	startingCoins int
	starter       tackle.Catalog
	mu            sync.RWMutex
}

func NewRepository(startingCoins int) *Repository {
	return &Repository{
		profiles:      make(map[string]*Profile),
		startingCoins: startingCoins,
		starter:       tackle.Starter(),
	}
}

// Create registers a new angler with the starting coins and the starter kit.
func (r *Repository) Create(name, country, avatar string) (Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Profile{}, ErrInvalidName
	}
	p := &Profile{
		ID:        uuid.NewString(),
		Name:      name,
		Country:   strings.ToUpper(strings.TrimSpace(country)),
		Avatar:    avatar,
		Coins:     r.startingCoins,
		Inventory: make(map[tackle.Dimension][]string, len(tackle.Dimensions)),
	}
	for _, d := range tackle.Dimensions {
		p.Inventory[d] = r.starter.Values(d)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[p.ID] = p
	return p.clone(), nil
}

func (r *Repository) Get(id string) (Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.profiles[id]
	if !ok {
		return Profile{}, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	return p.clone(), nil
}

// ApplyResult credits the reward and updates the angler's record.
func (r *Repository) ApplyResult(id string, res match.Result) (Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[id]
	if !ok {
		return Profile{}, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	p.Coins += res.Reward
	p.Stats.Matches++
	if res.Live {
		p.Stats.LiveMatches++
	}
	switch {
	case res.Rank == 1:
		p.Stats.Wins++
		p.Stats.Podiums++
	case res.Rank >= 2 && res.Rank <= 3:
		p.Stats.Podiums++
	}
	if res.PlayerWeight > p.Stats.BestWeight {
		p.Stats.BestWeight = res.PlayerWeight
	}
	p.Stats.TotalWeight = math.Round((p.Stats.TotalWeight+res.PlayerWeight)*100) / 100
	return p.clone(), nil
}

// Owns returns an ErrNotOwned error naming the first item of l missing from
// the angler's inventory.
func (r *Repository) Owns(id string, l tackle.Loadout) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.profiles[id]
	if !ok {
		return fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	for _, d := range tackle.Dimensions {
		v := l.Get(d)
		if !slices.Contains(p.Inventory[d], v) {
			return fmt.Errorf("%s %q: %w", d, v, ErrNotOwned)
		}
	}
	return nil
}

// DefaultLoadout picks the first owned item in every dimension.
func (r *Repository) DefaultLoadout(id string) (tackle.Loadout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.profiles[id]
	if !ok {
		return tackle.Loadout{}, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	var l tackle.Loadout
	for _, d := range tackle.Dimensions {
		if vs := p.Inventory[d]; len(vs) > 0 {
			l = l.With(d, vs[0])
		}
	}
	return l, nil
}
