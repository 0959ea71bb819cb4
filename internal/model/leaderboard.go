package model

// LeaderboardEntry is one best-score record, keyed by normalized display
// name rather than by user ID. Entries can drift from the user table if
// names collide or change; that is a deliberate property of the index.
type LeaderboardEntry struct {
	Username string `json:"username"`
	Score    int    `json:"score"`
}

// RankedEntry is a leaderboard entry with its competition rank assigned.
// Tied scores share a rank and the next distinct score resumes at its
// position in sort order, so ranks can skip: 1, 1, 3 rather than 1, 1, 2.
type RankedEntry struct {
	Rank     int    `json:"rank"`
	Username string `json:"username"`
	Score    int    `json:"score"`
}
