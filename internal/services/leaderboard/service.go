package leaderboard

import (
	"context"
	"log/slog"
	"math"
	"sort"

	"github.com/dicehall/dicehall/internal/model"
	"github.com/dicehall/dicehall/internal/storage"
)

// Service maintains the best-score index. Entries are keyed by normalized
// display name rather than user ID, so the index can drift from the user
// table when names collide; that is accepted behavior, not a bug. The
// service holds no state of its own and recomputes the ranked view from
// the persisted entries on every read.
type Service struct {
	storage storage.Storage
	logger  *slog.Logger
}

// New creates a new leaderboard service
func New(storage storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// Upsert records a score for a display name, keeping the maximum score seen
// per normalized name. Empty names and non-finite scores are ignored.
func (s *Service) Upsert(ctx context.Context, name string, score float64) error {
	norm := model.NormalizeName(name)
	if norm == "" {
		return nil
	}
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return nil
	}
	candidate := int(score)

	entries, err := s.storage.GetLeaderboard(ctx)
	if err != nil {
		return err
	}

	key := model.FoldName(norm)
	found := false
	for i := range entries {
		if model.FoldName(entries[i].Username) == key {
			if candidate > entries[i].Score {
				entries[i].Score = candidate
			}
			found = true
			break
		}
	}
	if !found {
		entries = append(entries, model.LeaderboardEntry{Username: norm, Score: candidate})
	}

	if err := s.storage.SaveLeaderboard(ctx, entries); err != nil {
		return err
	}

	s.logger.Info("leaderboard updated",
		slog.String("name", norm),
		slog.Int("score", candidate),
	)
	return nil
}

// RankedView returns all entries sorted by score descending with name
// ascending (case-insensitive) as tie-break, and competition ranks
// assigned: tied scores share a rank and the next distinct score resumes
// at its position in sort order.
func (s *Service) RankedView(ctx context.Context) ([]model.RankedEntry, error) {
	entries, err := s.storage.GetLeaderboard(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return model.FoldName(entries[i].Username) < model.FoldName(entries[j].Username)
	})

	ranked := make([]model.RankedEntry, len(entries))
	rank := 0
	prevScore := 0
	for i, e := range entries {
		if i == 0 || e.Score != prevScore {
			rank = i + 1
			prevScore = e.Score
		}
		ranked[i] = model.RankedEntry{
			Rank:     rank,
			Username: model.NormalizeName(e.Username),
			Score:    e.Score,
		}
	}
	return ranked, nil
}

// Clear wipes all entries
func (s *Service) Clear(ctx context.Context) error {
	return s.storage.ClearLeaderboard(ctx)
}
