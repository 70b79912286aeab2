package redis

import "github.com/duelcode-game/duelcode/internal/model"

const keyPrefix = "duelcode:"

// matchLogKey is the global match log, newest first
func matchLogKey() string {
	return keyPrefix + "matches"
}

// roomLogKey is the per-room match log, newest first
func roomLogKey(roomID model.RoomID) string {
	return keyPrefix + "matches:room:" + string(roomID)
}
