// Package registry owns the live connection, player, and room mappings.
//
// It is the only component that knows which transport connection belongs to
// which player; everything downstream addresses players by id. The challenge
// handshake is relayed here too: the server keeps no pending-challenge state,
// a duel session only comes into existence when secret codes arrive.
package registry

import (
	"log/slog"
	"sync"

	"github.com/duelcode-game/duelcode/internal/dependencies/random"
	"github.com/duelcode-game/duelcode/internal/model"
	"github.com/duelcode-game/duelcode/internal/protocol"
)

const (
	// RoomIDLength is the length of generated room codes
	RoomIDLength = 6
	// RoomIDAlphabet is the characters used in room codes (avoid confusing chars)
	RoomIDAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

	// PlayerIDLength is the length of generated player ids
	PlayerIDLength = 12
	// PlayerIDAlphabet is the characters used in player ids
	PlayerIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
)

// Conn is the transport-facing side of a connected player. Send must not
// block; slow consumers are the transport's problem, not the registry's.
type Conn interface {
	Send(msg any)
}

// member pairs a player with its exclusively-owned connection
type member struct {
	player *model.Player
	conn   Conn
}

// room tracks ordered membership
type room struct {
	id      model.RoomID
	members []*member
}

func (r *room) roster() []model.PlayerInfo {
	roster := make([]model.PlayerInfo, 0, len(r.members))
	for _, m := range r.members {
		roster = append(roster, m.player.Info())
	}
	return roster
}

// Service is the connection and room registry
type Service struct {
	mu      sync.RWMutex
	rooms   map[model.RoomID]*room
	players map[model.PlayerID]*member
	byConn  map[Conn]*member

	random random.Random
	logger *slog.Logger
}

// New creates a new registry service
func New(random random.Random, logger *slog.Logger) *Service {
	return &Service{
		rooms:   make(map[model.RoomID]*room),
		players: make(map[model.PlayerID]*member),
		byConn:  make(map[Conn]*member),
		random:  random,
		logger:  logger.With(slog.String("component", "registry")),
	}
}

// CreateRoom creates a room with the connection's player as its first member
func (s *Service) CreateRoom(conn Conn, playerName string) (*model.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	roomID := s.newRoomID()
	player := &model.Player{
		ID:     s.newPlayerID(),
		Name:   playerName,
		RoomID: roomID,
	}

	m := &member{player: player, conn: conn}
	s.rooms[roomID] = &room{id: roomID, members: []*member{m}}
	s.players[player.ID] = m
	s.byConn[conn] = m

	s.logger.Info("room created",
		slog.String("room_id", string(roomID)),
		slog.String("player_id", string(player.ID)),
	)

	return player, nil
}

// JoinRoom adds the connection's player to an existing room and broadcasts
// the updated roster to the other members. The returned roster includes the
// joining player.
func (s *Service) JoinRoom(conn Conn, roomID model.RoomID, playerName string) (*model.Player, []model.PlayerInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rooms[roomID]
	if !ok {
		return nil, nil, model.ErrRoomNotFound
	}
	if len(r.members) >= model.MaxRoomMembers {
		return nil, nil, model.ErrRoomFull
	}

	player := &model.Player{
		ID:     s.newPlayerID(),
		Name:   playerName,
		RoomID: roomID,
	}
	m := &member{player: player, conn: conn}
	r.members = append(r.members, m)
	s.players[player.ID] = m
	s.byConn[conn] = m

	roster := r.roster()

	// Existing members learn about the newcomer; the joiner gets the roster
	// in its room_joined reply instead
	s.broadcastLocked(r, protocol.PlayersUpdated{
		Type:    protocol.TypePlayersUpdated,
		Players: roster,
	}, conn)

	s.logger.Info("player joined room",
		slog.String("room_id", string(roomID)),
		slog.String("player_id", string(player.ID)),
		slog.Int("members", len(r.members)),
	)

	return player, roster, nil
}

// RemoveConn removes the connection's player from its room. The room is
// deleted when its last member leaves; otherwise the remaining members
// receive the updated roster. Returns the removed player, or nil if the
// connection was never registered.
func (s *Service) RemoveConn(conn Conn) *model.Player {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.byConn[conn]
	if !ok {
		return nil
	}

	delete(s.byConn, conn)
	delete(s.players, m.player.ID)

	r, ok := s.rooms[m.player.RoomID]
	if ok {
		for i, rm := range r.members {
			if rm.player.ID == m.player.ID {
				r.members = append(r.members[:i], r.members[i+1:]...)
				break
			}
		}

		if len(r.members) == 0 {
			delete(s.rooms, r.id)
			s.logger.Info("room deleted", slog.String("room_id", string(r.id)))
		} else {
			s.broadcastLocked(r, protocol.PlayersUpdated{
				Type:    protocol.TypePlayersUpdated,
				Players: r.roster(),
			}, nil)
		}
	}

	s.logger.Info("player removed",
		slog.String("room_id", string(m.player.RoomID)),
		slog.String("player_id", string(m.player.ID)),
	)

	return m.player
}

// PlayerByConn resolves the player owning a connection
func (s *Service) PlayerByConn(conn Conn) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.byConn[conn]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return m.player, nil
}

// Roommate resolves an opponent id, requiring both players to share a room
func (s *Service) Roommate(playerID, opponentID model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.players[playerID]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	opp, ok := s.players[opponentID]
	if !ok || opp.player.RoomID != m.player.RoomID || opponentID == playerID {
		return nil, model.ErrUnknownOpponent
	}
	return opp.player, nil
}

// Roster returns the current member list of a room
func (s *Service) Roster(roomID model.RoomID) ([]model.PlayerInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.rooms[roomID]
	if !ok {
		return nil, model.ErrRoomNotFound
	}
	return r.roster(), nil
}

// RoomExists reports whether a room id is currently registered
func (s *Service) RoomExists(roomID model.RoomID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.rooms[roomID]
	return ok
}

// Notify delivers a message to one player. Messages to departed players
// are dropped silently.
func (s *Service) Notify(playerID model.PlayerID, msg any) {
	s.mu.RLock()
	m, ok := s.players[playerID]
	s.mu.RUnlock()

	if ok {
		m.conn.Send(msg)
	}
}

// Challenge relays a duel challenge to a member of the same room
func (s *Service) Challenge(from *model.Player, opponentID model.PlayerID) error {
	opp, err := s.Roommate(from.ID, opponentID)
	if err != nil {
		return err
	}

	s.Notify(opp.ID, protocol.ChallengeReceived{
		Type:           protocol.TypeChallengeReceived,
		FromPlayerID:   from.ID,
		FromPlayerName: from.Name,
	})
	return nil
}

// AcceptChallenge relays challenge acceptance back to the challenger
func (s *Service) AcceptChallenge(from *model.Player, opponentID model.PlayerID) error {
	opp, err := s.Roommate(from.ID, opponentID)
	if err != nil {
		return err
	}

	s.Notify(opp.ID, protocol.ChallengeAccepted{
		Type: protocol.TypeChallengeAccepted,
	})
	return nil
}

// broadcastLocked sends to every room member except the excluded connection.
// Caller must hold at least the read lock.
func (s *Service) broadcastLocked(r *room, msg any, exclude Conn) {
	for _, m := range r.members {
		if m.conn != exclude {
			m.conn.Send(msg)
		}
	}
}

// newRoomID generates a room id unused by any live room.
// Caller must hold the write lock.
func (s *Service) newRoomID() model.RoomID {
	for {
		id := model.RoomID(s.random.String(RoomIDLength, RoomIDAlphabet))
		if _, exists := s.rooms[id]; !exists {
			return id
		}
	}
}

// newPlayerID generates a globally unused player id.
// Caller must hold the write lock.
func (s *Service) newPlayerID() model.PlayerID {
	for {
		id := model.PlayerID(s.random.String(PlayerIDLength, PlayerIDAlphabet))
		if _, exists := s.players[id]; !exists {
			return id
		}
	}
}
