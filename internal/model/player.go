package model

// PlayerID uniquely identifies a player across the system.
// It is server-generated, opaque, and scoped to a single connection:
// a reconnecting player receives a fresh id.
type PlayerID string

// Player represents a connected participant
type Player struct {
	ID     PlayerID
	Name   string // user-supplied display name, not unique
	RoomID RoomID
}

// PlayerInfo is the roster entry shared with room members
type PlayerInfo struct {
	ID   PlayerID `json:"id"`
	Name string   `json:"name"`
}

// Info returns the player's public roster entry
func (p *Player) Info() PlayerInfo {
	return PlayerInfo{ID: p.ID, Name: p.Name}
}
