package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server   Server
	Match    Match
	Lobby    Lobby
	Profile  Profile
	Telegram Telegram
}

type Server struct {
	Port      string `envconfig:"PORT" default:"8080"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`
}

type Match struct {
	Duration     time.Duration `envconfig:"MATCH_DURATION" default:"3m"`
	LiveTick     time.Duration `envconfig:"LIVE_TICK" default:"1200ms"`
	PracticeTick time.Duration `envconfig:"PRACTICE_TICK" default:"2500ms"`
	PracticeBots int           `envconfig:"PRACTICE_BOTS" default:"6"`
}

type Lobby struct {
	// Slot is a standard five-field cron spec.
	Slot string `envconfig:"LOBBY_SLOT" default:"*/15 * * * *"`
}

type Profile struct {
	StartingCoins int `envconfig:"STARTING_COINS" default:"250"`
}

// Telegram announcements are disabled when Token is empty.
type Telegram struct {
	Token  string `envconfig:"TELEGRAM_TOKEN"`
	ChatID int64  `envconfig:"TELEGRAM_CHAT_ID"`
}

func New() (*Config, error) {
	var c Config
	err := envconfig.Process("", &c)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
