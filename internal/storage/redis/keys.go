package redis

import "github.com/dicehall/dicehall/internal/storage"

// Key prefix for all persisted data
const keyPrefix = "dicehall"

// The layout deliberately mirrors the three-key scheme of the original
// store: each collection is one JSON blob under a single key.

// usersKey returns the Redis key for the whole user collection
func usersKey() string {
	return keyPrefix + ":" + storage.KeyUsers
}

// sessionKey returns the Redis key for the session pointer
func sessionKey() string {
	return keyPrefix + ":" + storage.KeyCurrentUser
}

// leaderboardKey returns the Redis key for the leaderboard entry collection
func leaderboardKey() string {
	return keyPrefix + ":" + storage.KeyLeaderboard
}

// eventsChannel returns the pub/sub channel carrying change notifications
func eventsChannel() string {
	return keyPrefix + ":events"
}
