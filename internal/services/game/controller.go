package game

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/dicehall/dicehall/internal/dependencies/random"
	"github.com/dicehall/dicehall/internal/model"
	"github.com/dicehall/dicehall/internal/services/account"
	"github.com/dicehall/dicehall/internal/services/leaderboard"
)

// Config holds configuration for the game controller
type Config struct {
	// Bet is the fixed stake per resolved roll for every session
	Bet int
}

// DefaultConfig returns default game configuration
func DefaultConfig() Config {
	return Config{
		Bet: DefaultBet,
	}
}

// Controller drives play sessions against the account store. It owns at
// most one live hand per user, seeded from the user's persisted bankroll
// and score, and writes cash and score changes back through the account
// service after every resolved roll.
type Controller struct {
	accounts    *account.Service
	leaderboard *leaderboard.Service
	random      random.Random
	logger      *slog.Logger
	cfg         Config

	mu    sync.Mutex
	hands map[model.UserID]*liveHand
}

// liveHand pairs a hand with the login that seeded it. Login resets the
// persisted score, so a hand seeded under an earlier login is stale and
// must be discarded rather than allowed to write its old score back.
type liveHand struct {
	*Hand
	loggedInAt time.Time
}

// NewController creates a new game controller
func NewController(
	accounts *account.Service,
	leaderboard *leaderboard.Service,
	rnd random.Random,
	cfg Config,
	logger *slog.Logger,
) *Controller {
	if cfg.Bet == 0 {
		cfg.Bet = DefaultConfig().Bet
	}
	return &Controller{
		accounts:    accounts,
		leaderboard: leaderboard,
		random:      rnd,
		logger:      logger,
		cfg:         cfg,
		hands:       make(map[model.UserID]*liveHand),
	}
}

// RollReport describes one roll: the dice thrown, the outcome of applying
// their sum, and the hand state afterwards
type RollReport struct {
	Dice    [2]int
	Sum     int
	Outcome model.RollOutcome
	Hand    State
}

// ExitReport summarises a finished play session
type ExitReport struct {
	Name   string
	Score  int
	Wins   int
	Losses int
	Cash   int
}

// Roll throws two dice for the current user's hand and applies the sum.
// A hand is started on first use, seeded from the persisted record. Once
// the bankroll is exhausted further rolls fail with ErrGameOver and the
// hand no longer changes.
func (c *Controller) Roll(ctx context.Context) (*RollReport, error) {
	session, hand, err := c.currentHand(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if hand.GameOver {
		return nil, model.ErrGameOver
	}

	a, b := c.random.Die(), c.random.Die()
	sum := a + b
	outcome := hand.ApplyRoll(sum)

	if outcome.Kind == model.RollResolve {
		if err := c.accounts.PersistCash(ctx, session.ID, hand.Cash); err != nil {
			return nil, err
		}
		if outcome.Result == model.ResultWin {
			if err := c.accounts.PersistScore(ctx, session.ID, hand.Score); err != nil {
				return nil, err
			}
			if err := c.accounts.PersistScoreIfHigher(ctx, session.ID, hand.Score); err != nil {
				return nil, err
			}
		}
	}

	c.logger.Info("roll applied",
		slog.String("user_id", string(session.ID)),
		slog.Int("sum", sum),
		slog.String("kind", string(outcome.Kind)),
	)

	return &RollReport{
		Dice:    [2]int{a, b},
		Sum:     sum,
		Outcome: outcome,
		Hand:    hand.State(),
	}, nil
}

// State returns the current user's hand state, starting a hand if none is
// live yet
func (c *Controller) State(ctx context.Context) (State, error) {
	_, hand, err := c.currentHand(ctx)
	if err != nil {
		return State{}, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return hand.State(), nil
}

// Exit ends the current user's play session: the final score is recorded
// on the leaderboard under the player's display name (keeping the maximum
// per name) and the hand is discarded.
func (c *Controller) Exit(ctx context.Context) (*ExitReport, error) {
	session, err := c.accounts.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	hand, ok := c.hands[session.ID]
	if ok {
		delete(c.hands, session.ID)
		// A hand from a previous login is discarded, not scored.
		if !hand.loggedInAt.Equal(session.LoggedInAt) {
			ok = false
		}
	}
	c.mu.Unlock()

	if !ok {
		return nil, model.ErrNoActiveHand
	}

	name := session.DisplayName()
	if err := c.leaderboard.Upsert(ctx, name, float64(hand.Score)); err != nil {
		return nil, err
	}

	c.logger.Info("session exited",
		slog.String("user_id", string(session.ID)),
		slog.String("name", name),
		slog.Int("score", hand.Score),
	)

	return &ExitReport{
		Name:   name,
		Score:  hand.Score,
		Wins:   hand.Wins,
		Losses: hand.Losses,
		Cash:   hand.Cash,
	}, nil
}

// currentHand resolves the logged-in user and returns their live hand,
// creating one seeded from the persisted record when none exists. A hand
// seeded under a previous login is treated as absent: the record it was
// seeded from no longer reflects the store after login's score reset.
func (c *Controller) currentHand(ctx context.Context) (*model.SessionView, *liveHand, error) {
	session, err := c.accounts.CurrentUser(ctx)
	if err != nil {
		return nil, nil, err
	}

	c.mu.Lock()
	if lh, ok := c.hands[session.ID]; ok {
		if lh.loggedInAt.Equal(session.LoggedInAt) {
			c.mu.Unlock()
			return session, lh, nil
		}
		delete(c.hands, session.ID)
		c.logger.Info("stale hand discarded",
			slog.String("user_id", string(session.ID)),
		)
	}
	c.mu.Unlock()

	cash := model.DefaultCash
	score := 0
	user, err := c.accounts.GetUser(ctx, session.ID)
	switch {
	case err == nil:
		cash = user.Cash
		score = user.Score
	case errors.Is(err, model.ErrUserNotFound):
		// Session pointer outlived the record; seed defaults
	default:
		return nil, nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if lh, ok := c.hands[session.ID]; ok && lh.loggedInAt.Equal(session.LoggedInAt) {
		return session, lh, nil
	}
	lh := &liveHand{Hand: NewHand(cash, c.cfg.Bet, score), loggedInAt: session.LoggedInAt}
	c.hands[session.ID] = lh

	c.logger.Info("hand started",
		slog.String("user_id", string(session.ID)),
		slog.Int("cash", cash),
		slog.Int("bet", c.cfg.Bet),
	)

	return session, lh, nil
}
