package redis

import (
	"encoding/json"
	"math"
	"strconv"
	"time"

	"github.com/dicehall/dicehall/internal/model"
)

// Tolerant decoding for persisted blobs. Other writers of the same store
// may omit numeric fields or leave garbage behind; readers coerce anything
// malformed to a default in this one place instead of surfacing an error.

// wireUser is the persisted shape of a user record with every field optional
type wireUser struct {
	ID             model.UserID    `json:"id"`
	Username       string          `json:"username"`
	FirstName      string          `json:"firstName"`
	LastName       string          `json:"lastName"`
	Password       string          `json:"password"`
	Cash           json.RawMessage `json:"cash"`
	Score          json.RawMessage `json:"score"`
	TopScore       json.RawMessage `json:"topScore"`
	Created        string          `json:"created"`
	LastLoggedInAt string          `json:"lastLoggedInAt"`
}

// decodeUsers parses the user collection blob. Malformed input yields an
// empty collection, and missing or malformed numeric fields fall back to
// their defaults (cash 100, score and topScore 0).
func decodeUsers(data []byte) []*model.User {
	var wire []wireUser
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil
	}

	users := make([]*model.User, 0, len(wire))
	for _, w := range wire {
		users = append(users, &model.User{
			ID:             w.ID,
			Username:       w.Username,
			FirstName:      w.FirstName,
			LastName:       w.LastName,
			Password:       w.Password,
			Cash:           numOr(w.Cash, model.DefaultCash),
			Score:          numOr(w.Score, 0),
			TopScore:       numOr(w.TopScore, 0),
			Created:        timeOr(w.Created),
			LastLoggedInAt: timeOr(w.LastLoggedInAt),
		})
	}
	return users
}

// wireEntry is the persisted shape of a leaderboard entry
type wireEntry struct {
	Username string          `json:"username"`
	Score    json.RawMessage `json:"score"`
}

// decodeLeaderboard parses the leaderboard blob, defaulting to an empty
// collection on malformed input
func decodeLeaderboard(data []byte) []model.LeaderboardEntry {
	var wire []wireEntry
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil
	}

	entries := make([]model.LeaderboardEntry, 0, len(wire))
	for _, w := range wire {
		entries = append(entries, model.LeaderboardEntry{
			Username: w.Username,
			Score:    numOr(w.Score, 0),
		})
	}
	return entries
}

// numOr extracts a finite integer from a raw JSON value, accepting numbers
// and numeric strings, and falling back otherwise
func numOr(raw json.RawMessage, fallback int) int {
	if len(raw) == 0 {
		return fallback
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return fallback
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fallback
		}
		f = parsed
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fallback
	}
	return int(f)
}

// timeOr parses an ISO-8601 timestamp, returning the zero time on failure
func timeOr(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
