// Package ws is the WebSocket gateway: it upgrades connections, pumps
// frames, decodes protocol envelopes, and dispatches them to the registry
// and duel services. Errors go back to the originating connection only.
package ws

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/duelcode-game/duelcode/internal/model"
	"github.com/duelcode-game/duelcode/internal/protocol"
	"github.com/duelcode-game/duelcode/internal/services/duel"
	"github.com/duelcode-game/duelcode/internal/services/registry"
)

// Gateway bridges WebSocket connections to the game services
type Gateway struct {
	registry *registry.Service
	duel     *duel.Controller
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewGateway creates the WebSocket gateway
func NewGateway(reg *registry.Service, duelController *duel.Controller, logger *slog.Logger) *Gateway {
	return &Gateway{
		registry: reg,
		duel:     duelController,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Game clients connect from arbitrary origins
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger.With(slog.String("component", "ws")),
	}
}

// ServeHTTP upgrades the request and starts the connection's pumps
func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.Error("websocket upgrade failed", slog.Any("error", err))
		return
	}

	c := newClient(g, conn)
	go c.writePump()
	go c.readPump()

	g.logger.Info("connection established", slog.String("remote", conn.RemoteAddr().String()))
}

// handleMessage decodes one inbound envelope and dispatches it. A failed
// operation is reported to the sender and never touches anyone else.
func (g *Gateway) handleMessage(c *client, data []byte) {
	ctx := context.Background()

	msg, err := protocol.DecodeClient(data)
	if err != nil {
		g.logger.Warn("dropping malformed message", slog.Any("error", err))
		c.Send(protocol.ErrorFrom(err))
		return
	}

	switch m := msg.(type) {
	case *protocol.CreateRoom:
		player, err := g.registry.CreateRoom(c, m.PlayerName)
		if err != nil {
			c.Send(protocol.ErrorFrom(err))
			return
		}
		c.Send(protocol.RoomCreated{
			Type:     protocol.TypeRoomCreated,
			RoomID:   player.RoomID,
			PlayerID: player.ID,
		})

	case *protocol.JoinRoom:
		player, roster, err := g.registry.JoinRoom(c, m.RoomID, m.PlayerName)
		if err != nil {
			c.Send(protocol.ErrorFrom(err))
			return
		}
		c.Send(protocol.RoomJoined{
			Type:     protocol.TypeRoomJoined,
			RoomID:   player.RoomID,
			PlayerID: player.ID,
			Players:  roster,
		})

	case *protocol.ChallengePlayer:
		g.withPlayer(c, func(player *model.Player) error {
			return g.registry.Challenge(player, m.OpponentID)
		})

	case *protocol.AcceptChallenge:
		g.withPlayer(c, func(player *model.Player) error {
			return g.registry.AcceptChallenge(player, m.OpponentID)
		})

	case *protocol.SetSecretCode:
		g.withPlayer(c, func(player *model.Player) error {
			if _, err := g.registry.Roommate(player.ID, m.OpponentID); err != nil {
				return err
			}
			return g.duel.SubmitSecret(ctx, player, m.OpponentID, m.Code)
		})

	case *protocol.SubmitGuess:
		g.withPlayer(c, func(player *model.Player) error {
			return g.duel.SubmitGuess(ctx, player.ID, m.OpponentID, m.Guess)
		})

	case *protocol.RequestRematch:
		g.withPlayer(c, func(player *model.Player) error {
			if _, err := g.registry.Roommate(player.ID, m.OpponentID); err != nil {
				return err
			}
			g.duel.RequestRematch(ctx, player, m.OpponentID)
			return nil
		})

	case *protocol.AcceptRematch:
		g.withPlayer(c, func(player *model.Player) error {
			if _, err := g.registry.Roommate(player.ID, m.OpponentID); err != nil {
				return err
			}
			g.duel.AcceptRematch(ctx, player.ID, m.OpponentID)
			return nil
		})

	case *protocol.Quit:
		// The player abandons in-progress duels but stays in the room
		g.withPlayer(c, func(player *model.Player) error {
			g.duel.ForfeitAll(ctx, player)
			return nil
		})

	default:
		c.Send(protocol.ErrorFrom(model.ErrMalformedMessage))
	}
}

// withPlayer resolves the connection's player and reports any failure of
// the wrapped operation back to the sender
func (g *Gateway) withPlayer(c *client, fn func(player *model.Player) error) {
	player, err := g.registry.PlayerByConn(c)
	if err == nil {
		err = fn(player)
	}
	if err != nil {
		c.Send(protocol.ErrorFrom(err))
	}
}

// disconnect forfeits the departing player's duels while the opponents are
// still registered, then removes the player from its room
func (g *Gateway) disconnect(c *client) {
	player, err := g.registry.PlayerByConn(c)
	if err == nil {
		g.duel.ForfeitAll(context.Background(), player)
	}
	g.registry.RemoveConn(c)
	g.logger.Info("connection closed", slog.String("remote", c.conn.RemoteAddr().String()))
}
