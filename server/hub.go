package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"fishing-clash/internal/config"
	"fishing-clash/internal/lobby"
	"fishing-clash/internal/match"
	"fishing-clash/internal/notify"
	"fishing-clash/internal/profile"
	"fishing-clash/internal/scoring"
	"fishing-clash/internal/species"
	"fishing-clash/internal/tackle"
)

var (
	errNoProfile = errors.New("say hello before playing")
	errInMatch   = errors.New("already in a match")
	errNoMatch   = errors.New("not in a match")
	errNoLoadout = errors.New("loadout is required")
)

type HubOptions struct {
	Match     config.Match
	LobbySlot string
	Profiles  *profile.Repository
	Species   *species.Catalog
	Notifier  notify.Notifier
	Clock     clockwork.Clock
	Logger    *slog.Logger
}

// Hub owns every running match, the live lobby and the connected clients
// waiting in it.
type Hub struct {
	rooms     map[string]*Room   // by match id
	byProfile map[string]*Room   // profile id to its current room
	waiting   map[string]*Client // profile id to a client queued for a live slot

	settings config.Match
	lobby    *lobby.Lobby
	profiles *profile.Repository
	species  *species.Catalog
	shop     tackle.Catalog
	notifier notify.Notifier
	clock    clockwork.Clock
	logger   *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.RWMutex
}

// Room is one running match and the connection of its player, if any.
type Room struct {
	session *match.Session
	clients map[string]*Client // by participant id
	mu      sync.RWMutex
}

func NewHub(opts HubOptions) (*Hub, error) {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Species == nil {
		opts.Species = species.Default()
	}
	if opts.Notifier == nil {
		opts.Notifier = notify.Nop{}
	}

	ctx, cancel := context.WithCancel(context.Background())
	h := &Hub{
		rooms:     make(map[string]*Room),
		byProfile: make(map[string]*Room),
		waiting:   make(map[string]*Client),
		settings:  opts.Match,
		profiles:  opts.Profiles,
		species:   opts.Species,
		shop:      tackle.Standard(),
		notifier:  opts.Notifier,
		clock:     opts.Clock,
		logger:    opts.Logger,
		ctx:       ctx,
		cancel:    cancel,
	}

	l, err := lobby.New(opts.LobbySlot, opts.Clock, h.LaunchLive, opts.Logger)
	if err != nil {
		cancel()
		return nil, err
	}
	h.lobby = l
	return h, nil
}

// Start opens the live lobby.
func (h *Hub) Start() error {
	return h.lobby.Start()
}

// Shutdown closes the lobby, aborts every running match and waits for their
// results to settle.
func (h *Hub) Shutdown() error {
	err := h.lobby.Stop()
	h.cancel()
	h.wg.Wait()
	return err
}

// Sessions reports how many matches are running.
func (h *Hub) Sessions() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms)
}

func (h *Hub) LobbyStatus(joined bool) LobbyPayload {
	return LobbyPayload{NextSlot: h.lobby.NextSlot(), Waiting: h.lobby.Waiting(), Joined: joined}
}

// StartPractice runs a match against bots for the client's profile.
func (h *Hub) StartPractice(c *Client, requested *tackle.Loadout) error {
	pid := c.ProfileID()
	if pid == "" {
		return errNoProfile
	}
	p, err := h.profiles.Get(pid)
	if err != nil {
		return err
	}
	l, err := h.resolveLoadout(pid, requested, true)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if _, busy := h.byProfile[pid]; busy {
		return errInMatch
	}
	if _, queued := h.waiting[pid]; queued {
		return errInMatch
	}

	room := &Room{clients: map[string]*Client{pid: c}}
	session, err := match.NewSession(match.Options{
		Mode:         match.Practice,
		Player:       p.Player(l),
		BotCount:     h.settings.PracticeBots,
		Duration:     h.settings.Duration,
		TickInterval: h.settings.PracticeTick,
		Species:      h.species,
		Tackle:       h.shop,
		Clock:        h.clock,
		Logger:       h.logger,
		OnCatch:      room.onCatch,
		OnEnd:        func(r match.Result) { h.settle(room, r) },
	})
	if err != nil {
		return fmt.Errorf("failed to set up practice match: %w", err)
	}
	room.session = session
	h.rooms[session.ID()] = room
	h.byProfile[pid] = room

	h.launch(room)
	return nil
}

// JoinLive queues the client's profile for the next live slot.
func (h *Hub) JoinLive(c *Client, requested *tackle.Loadout) error {
	pid := c.ProfileID()
	if pid == "" {
		return errNoProfile
	}
	p, err := h.profiles.Get(pid)
	if err != nil {
		return err
	}
	l, err := h.resolveLoadout(pid, requested, true)
	if err != nil {
		return err
	}

	h.mu.Lock()
	if _, busy := h.byProfile[pid]; busy {
		h.mu.Unlock()
		return errInMatch
	}
	slot, err := h.lobby.Join(match.Entrant{ID: pid, Name: p.Name, Country: p.Country, Avatar: p.Avatar, Loadout: &l})
	if err != nil {
		h.mu.Unlock()
		return err
	}
	h.waiting[pid] = c
	h.mu.Unlock()

	h.logger.Info("Joined live lobby", "profile", pid, "slot", slot)
	c.SendMessage(ServerMessage{Type: MsgLobby, Payload: h.LobbyStatus(true)})
	return nil
}

// LeaveLive drops the client from the lobby queue.
func (h *Hub) LeaveLive(c *Client) {
	pid := c.ProfileID()
	h.mu.Lock()
	delete(h.waiting, pid)
	h.mu.Unlock()
	h.lobby.Leave(pid)
	c.SendMessage(ServerMessage{Type: MsgLobby, Payload: h.LobbyStatus(false)})
}

// LaunchLive starts a lobby slot. Every entrant gets an independent
// simulation at the same venue, with the other entrants as rivals.
func (h *Hub) LaunchLive(slot time.Time, entrants []match.Entrant) {
	h.mu.Lock()
	var venue *match.Venue
	for i, e := range entrants {
		rivals := append(slices.Clone(entrants[:i]), entrants[i+1:]...)
		player := match.Player{ID: e.ID, Name: e.Name, Country: e.Country, Avatar: e.Avatar}
		if e.Loadout != nil {
			player.Loadout = *e.Loadout
		}

		room := &Room{clients: make(map[string]*Client)}
		session, err := match.NewSession(match.Options{
			Mode:         match.Live,
			Player:       player,
			Entrants:     rivals,
			Venue:        venue,
			Duration:     h.settings.Duration,
			TickInterval: h.settings.LiveTick,
			Species:      h.species,
			Tackle:       h.shop,
			Clock:        h.clock,
			Logger:       h.logger,
			OnCatch:      room.onCatch,
			OnEnd:        func(r match.Result) { h.settle(room, r) },
		})
		if err != nil {
			h.logger.Error("Failed to set up live match", "slot", slot, "profile", e.ID, "error", err)
			continue
		}
		if venue == nil {
			v := session.Venue()
			venue = &v
		}
		room.session = session
		if c, ok := h.waiting[e.ID]; ok {
			room.clients[e.ID] = c
			delete(h.waiting, e.ID)
		}
		h.rooms[session.ID()] = room
		h.byProfile[e.ID] = room
		h.launch(room)
	}
	h.mu.Unlock()

	if venue != nil {
		notify.Announce(h.notifier, notify.SlotMessage(slot, *venue, entrants))
	}
}

// ChangeLoadout swaps the client's tackle in its running match.
func (h *Hub) ChangeLoadout(c *Client, requested *tackle.Loadout) error {
	pid := c.ProfileID()
	if pid == "" {
		return errNoProfile
	}
	if requested == nil {
		return errNoLoadout
	}
	l, err := h.resolveLoadout(pid, requested, false)
	if err != nil {
		return err
	}

	h.mu.RLock()
	room, ok := h.byProfile[pid]
	h.mu.RUnlock()
	if !ok {
		return errNoMatch
	}
	if err := room.session.SetLoadout(pid, l); err != nil {
		return err
	}
	c.SendMessage(ServerMessage{Type: MsgMatchState, Payload: room.session.Snapshot()})
	c.SendMessage(ServerMessage{Type: MsgHints, Payload: h.hints(l, room.session.Venue())})
	return nil
}

// hints scores l against the venue. An unknown dominant species yields
// neutral efficiency and no per-dimension detail.
func (h *Hub) hints(l tackle.Loadout, venue match.Venue) HintsPayload {
	dominant, _ := h.species.Lookup(venue.Dominant)
	return HintsPayload{
		Efficiency: scoring.EfficiencyFor(l, h.species, venue.Dominant),
		Dimensions: scoring.Breakdown(l, dominant),
	}
}

// Disconnect removes the client from the lobby and from its match. A
// practice match ends with its only human; a live match plays on.
func (h *Hub) Disconnect(c *Client) {
	pid := c.ProfileID()
	if pid == "" {
		return
	}
	h.lobby.Leave(pid)

	h.mu.Lock()
	if h.waiting[pid] == c {
		delete(h.waiting, pid)
	}
	room, ok := h.byProfile[pid]
	h.mu.Unlock()
	if !ok {
		return
	}

	room.mu.Lock()
	if room.clients[pid] == c {
		delete(room.clients, pid)
	}
	room.mu.Unlock()

	if room.session.Mode() == match.Practice {
		room.session.Abort()
	}
}

// resolveLoadout validates the requested tackle against the shop and the
// angler's inventory. A nil request falls back to the profile's default
// when allowed.
func (h *Hub) resolveLoadout(pid string, requested *tackle.Loadout, fallback bool) (tackle.Loadout, error) {
	if requested == nil {
		if !fallback {
			return tackle.Loadout{}, errNoLoadout
		}
		return h.profiles.DefaultLoadout(pid)
	}
	l := *requested
	if err := h.shop.Validate(l); err != nil {
		return tackle.Loadout{}, err
	}
	if err := h.profiles.Owns(pid, l); err != nil {
		return tackle.Loadout{}, err
	}
	return l, nil
}

// launch starts the runner and the snapshot broadcaster for room. Callers
// hold h.mu.
func (h *Hub) launch(room *Room) {
	s := room.session
	started := MatchStartedPayload{
		MatchID:  s.ID(),
		Mode:     s.Mode(),
		Venue:    s.Venue(),
		Duration: h.settings.Duration.Seconds(),
	}
	snap := s.Snapshot()
	for _, st := range snap.Standings {
		started.Anglers = append(started.Anglers, AnglerInfo{
			ID: st.ID, Name: st.Name, IsBot: st.IsBot, Country: st.Country, Avatar: st.Avatar,
		})
	}

	room.mu.RLock()
	for id, c := range room.clients {
		payload := started
		l, _ := s.Loadout(id)
		payload.Loadout = l
		c.SendMessage(ServerMessage{Type: MsgMatchStarted, Payload: payload})
		c.SendMessage(ServerMessage{Type: MsgHints, Payload: h.hints(l, payload.Venue)})
	}
	room.mu.RUnlock()

	h.wg.Add(2)
	go func() {
		defer h.wg.Done()
		if _, err := match.NewRunner(s).Run(h.ctx); err != nil && !errors.Is(err, context.Canceled) {
			h.logger.Error("Match runner stopped", "match", s.ID(), "error", err)
		}
	}()
	go h.broadcastLoop(room)
}

func (h *Hub) broadcastLoop(room *Room) {
	defer h.wg.Done()
	ticker := h.clock.NewTicker(BroadcastInterval)
	defer ticker.Stop()

	for {
		select {
		case <-room.session.Done():
			return
		case <-ticker.Chan():
			room.broadcast(ServerMessage{Type: MsgMatchState, Payload: room.session.Snapshot()})
		}
	}
}

// settle retires the room, applies the result to the player's profile and
// reports it if they are still connected.
func (h *Hub) settle(room *Room, res match.Result) {
	h.mu.Lock()
	delete(h.rooms, res.MatchID)
	if h.byProfile[res.PlayerID] == room {
		delete(h.byProfile, res.PlayerID)
	}
	h.mu.Unlock()

	prof, err := h.profiles.ApplyResult(res.PlayerID, res)
	if err != nil {
		h.logger.Error("Failed to apply match result", "match", res.MatchID, "profile", res.PlayerID, "error", err)
	} else {
		h.logger.Info("Profile updated", "profile", res.PlayerID, "coins", prof.Coins, "reward", res.Reward)
	}
	room.send(res.PlayerID, ServerMessage{Type: MsgMatchResult, Payload: ResultPayload{Result: res, Profile: prof}})

	if res.Live {
		notify.Announce(h.notifier, notify.ResultMessage(res))
	}
}

func (r *Room) onCatch(e match.CatchEvent) {
	r.broadcast(ServerMessage{Type: MsgCatch, Payload: e})
}

func (r *Room) broadcast(msg ServerMessage) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.clients {
		c.SendMessage(msg)
	}
}

func (r *Room) send(id string, msg ServerMessage) {
	r.mu.RLock()
	c, ok := r.clients[id]
	r.mu.RUnlock()
	if ok {
		c.SendMessage(msg)
	}
}

// errorPayload maps an error to the code a client can act on.
func errorPayload(err error) ErrorPayload {
	var ve *tackle.ValueError
	switch {
	case errors.As(err, &ve):
		return ErrorPayload{Code: ErrCodeBadTackle, Message: ve.Error(), Suggestion: ve.Suggestion}
	case errors.Is(err, profile.ErrNotOwned):
		return ErrorPayload{Code: ErrCodeNotOwned, Message: err.Error()}
	case errors.Is(err, errNoProfile), errors.Is(err, profile.ErrNotFound):
		return ErrorPayload{Code: ErrCodeNoProfile, Message: err.Error()}
	case errors.Is(err, errInMatch):
		return ErrorPayload{Code: ErrCodeInMatch, Message: err.Error()}
	case errors.Is(err, errNoMatch), errors.Is(err, match.ErrMatchEnded):
		return ErrorPayload{Code: ErrCodeNoMatch, Message: err.Error()}
	case errors.Is(err, lobby.ErrFull):
		return ErrorPayload{Code: ErrCodeLobbyFull, Message: err.Error()}
	case errors.Is(err, errNoLoadout), errors.Is(err, profile.ErrInvalidName):
		return ErrorPayload{Code: ErrCodeBadRequest, Message: err.Error()}
	default:
		return ErrorPayload{Code: ErrCodeInternal, Message: err.Error()}
	}
}
