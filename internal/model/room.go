package model

import "sort"

// RoomID is a short human-shareable code for joining rooms
type RoomID string

// MaxRoomMembers is the maximum number of players in a single room
const MaxRoomMembers = 4

// SessionKey identifies a duel by its two participants, regardless of
// which side initiated. Keys are built from the sorted player id pair so
// both players resolve to the same session.
type SessionKey string

// NewSessionKey builds the canonical key for a player pair
func NewSessionKey(a, b PlayerID) SessionKey {
	ids := []string{string(a), string(b)}
	sort.Strings(ids)
	return SessionKey(ids[0] + "-" + ids[1])
}
