package main

import (
	"time"

	"fishing-clash/internal/match"
	"fishing-clash/internal/profile"
	"fishing-clash/internal/scoring"
	"fishing-clash/internal/tackle"
)

// Client message types
const (
	MsgHello    = "hello"
	MsgPractice = "practice"
	MsgJoinLive = "joinLive"
	MsgLeave    = "leaveLive"
	MsgLoadout  = "loadout"
	MsgPing     = "ping"
)

// Server message types
const (
	MsgWelcome      = "welcome"
	MsgLobby        = "lobby"
	MsgMatchStarted = "matchStarted"
	MsgMatchState   = "matchState"
	MsgCatch        = "catch"
	MsgHints        = "hints"
	MsgMatchResult  = "matchResult"
	MsgError        = "error"
	MsgPong         = "pong"
)

// ClientMessage is every message a client can send; Type selects which
// fields are read.
type ClientMessage struct {
	Type      string          `json:"type"`
	ProfileID string          `json:"profileId,omitempty"`
	Name      string          `json:"name,omitempty"`
	Country   string          `json:"country,omitempty"`
	Avatar    string          `json:"avatar,omitempty"`
	Loadout   *tackle.Loadout `json:"loadout,omitempty"`
	Seq       uint32          `json:"seq,omitempty"`
}

// ServerMessage wraps every outgoing payload.
type ServerMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

type WelcomePayload struct {
	ClientID string          `json:"clientId"`
	Profile  profile.Profile `json:"profile"`
	Loadout  tackle.Loadout  `json:"loadout"`
}

type LobbyPayload struct {
	NextSlot time.Time `json:"nextSlot"`
	Waiting  int       `json:"waiting"`
	Joined   bool      `json:"joined"`
}

type MatchStartedPayload struct {
	MatchID  string         `json:"matchId"`
	Mode     match.Mode     `json:"mode"`
	Venue    match.Venue    `json:"venue"`
	Duration float64        `json:"duration"`
	Loadout  tackle.Loadout `json:"loadout"`
	Anglers  []AnglerInfo   `json:"anglers"`
}

// AnglerInfo is the public identity of a participant.
type AnglerInfo struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	IsBot   bool   `json:"isBot"`
	Country string `json:"country,omitempty"`
	Avatar  string `json:"avatar,omitempty"`
}

// HintsPayload tells an angler which of their tackle choices suit the venue.
type HintsPayload struct {
	Efficiency float64                  `json:"efficiency"`
	Dimensions []scoring.DimensionScore `json:"dimensions"`
}

type ResultPayload struct {
	match.Result
	Profile profile.Profile `json:"profile"`
}

// Error codes
const (
	ErrCodeBadRequest = "bad_request"
	ErrCodeNoProfile  = "no_profile"
	ErrCodeBadTackle  = "bad_tackle"
	ErrCodeNotOwned   = "not_owned"
	ErrCodeInMatch    = "in_match"
	ErrCodeNoMatch    = "no_match"
	ErrCodeLobbyFull  = "lobby_full"
	ErrCodeInternal   = "internal"
)

type ErrorPayload struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

type PongPayload struct {
	Seq  uint32    `json:"seq,omitempty"`
	Time time.Time `json:"time"`
}
