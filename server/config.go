package main

import "time"

const (
	// Network
	WriteChannelSize = 256
	PingInterval     = 54 * time.Second
	PongWait         = 60 * time.Second
	WriteWait        = 10 * time.Second
	MaxMessageSize   = 4096
	MaxPlayerNameLen = 20

	// BroadcastInterval paces matchState snapshots to every client in a room.
	BroadcastInterval = 500 * time.Millisecond

	DefaultPlayerName = "Angler"
)
