package main

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

// Client represents a connected WebSocket client
type Client struct {
	ID   string
	Conn *websocket.Conn
	Send chan []byte
	Hub  *Hub

	profileID string
	closed    bool
	mu        sync.Mutex
}

// NewClient creates a new client
func NewClient(id string, conn *websocket.Conn, hub *Hub) *Client {
	return &Client{
		ID:   id,
		Conn: conn,
		Send: make(chan []byte, WriteChannelSize),
		Hub:  hub,
	}
}

// ProfileID is empty until the client says hello.
func (c *Client) ProfileID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.profileID
}

func (c *Client) setProfileID(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.profileID = id
}

// HandleWebSocket upgrades the request and starts the client's pumps
func HandleWebSocket(hub *Hub) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
		if err != nil {
			hub.logger.Error("WebSocket upgrade error", "error", err)
			return
		}

		client := NewClient(uuid.NewString(), conn, hub)
		hub.logger.Info("Client connected", "client", client.ID)

		go client.WritePump()
		go client.ReadPump()
	}
}

// ReadPump reads messages from the WebSocket connection
func (c *Client) ReadPump() {
	defer func() {
		c.Disconnect()
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(MaxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(PongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(PongWait))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.logger.Warn("WebSocket error", "client", c.ID, "error", err)
			}
			break
		}

		var msg ClientMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			c.SendError(ErrorPayload{Code: ErrCodeBadRequest, Message: "malformed message"})
			continue
		}

		c.HandleMessage(msg)
	}
}

// WritePump sends queued messages to the WebSocket connection, one JSON
// document per frame
func (c *Client) WritePump() {
	ticker := time.NewTicker(PingInterval)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(WriteWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.Hub.logger.Warn("Error writing message", "client", c.ID, "error", err)
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(WriteWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// HandleMessage processes incoming client messages
func (c *Client) HandleMessage(msg ClientMessage) {
	switch msg.Type {
	case MsgHello:
		c.HandleHello(msg)
	case MsgPractice:
		if err := c.Hub.StartPractice(c, msg.Loadout); err != nil {
			c.SendError(errorPayload(err))
		}
	case MsgJoinLive:
		if err := c.Hub.JoinLive(c, msg.Loadout); err != nil {
			c.SendError(errorPayload(err))
		}
	case MsgLeave:
		c.Hub.LeaveLive(c)
	case MsgLoadout:
		if err := c.Hub.ChangeLoadout(c, msg.Loadout); err != nil {
			c.SendError(errorPayload(err))
		}
	case MsgPing:
		c.SendMessage(ServerMessage{Type: MsgPong, Payload: PongPayload{Seq: msg.Seq, Time: c.Hub.clock.Now()}})
	default:
		c.SendError(ErrorPayload{Code: ErrCodeBadRequest, Message: "unknown message type " + msg.Type})
	}
}

// truncateName cuts name to MaxPlayerNameLen characters.
func truncateName(name string) string {
	if utf8.RuneCountInString(name) <= MaxPlayerNameLen {
		return name
	}
	return string([]rune(name)[:MaxPlayerNameLen])
}

// HandleHello binds the client to an existing profile, or creates one
func (c *Client) HandleHello(msg ClientMessage) {
	profiles := c.Hub.profiles
	if msg.ProfileID != "" {
		p, err := profiles.Get(msg.ProfileID)
		if err != nil {
			c.SendError(errorPayload(err))
			return
		}
		c.welcome(p.ID)
		return
	}

	name := truncateName(strings.TrimSpace(msg.Name))
	if name == "" {
		name = DefaultPlayerName
	}
	p, err := profiles.Create(name, msg.Country, msg.Avatar)
	if err != nil {
		c.SendError(errorPayload(err))
		return
	}
	c.Hub.logger.Info("Profile created", "profile", p.ID, "name", p.Name)
	c.welcome(p.ID)
}

func (c *Client) welcome(profileID string) {
	p, err := c.Hub.profiles.Get(profileID)
	if err != nil {
		c.SendError(errorPayload(err))
		return
	}
	l, err := c.Hub.profiles.DefaultLoadout(profileID)
	if err != nil {
		c.SendError(errorPayload(err))
		return
	}
	c.setProfileID(profileID)

	c.SendMessage(ServerMessage{
		Type:    MsgWelcome,
		Payload: WelcomePayload{ClientID: c.ID, Profile: p, Loadout: l},
	})
	c.SendMessage(ServerMessage{Type: MsgLobby, Payload: c.Hub.LobbyStatus(false)})
	c.Hub.logger.Debug("Client bound to profile", "client", c.ID, "profile", profileID)
}

// SendMessage queues a message for the client. Messages to a slow client are
// dropped.
func (c *Client) SendMessage(msg ServerMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		c.Hub.logger.Error("Error marshaling message", "type", msg.Type, "error", err)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.Send <- data:
	default:
		c.Hub.logger.Warn("Client send channel full, dropping message", "client", c.ID, "type", msg.Type)
	}
}

func (c *Client) SendError(p ErrorPayload) {
	c.SendMessage(ServerMessage{Type: MsgError, Payload: p})
}

// Disconnect detaches the client from the hub and closes its send queue
func (c *Client) Disconnect() {
	c.Hub.Disconnect(c)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.Send)
	c.Hub.logger.Info("Client disconnected", "client", c.ID)
}
