package response

import (
	"time"

	"github.com/dicehall/dicehall/internal/model"
	"github.com/dicehall/dicehall/internal/services/game"
)

// User represents a registered user in API responses. The stored
// credential is never echoed back.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	FirstName string    `json:"first_name,omitempty"`
	LastName  string    `json:"last_name,omitempty"`
	Cash      int       `json:"cash"`
	Score     int       `json:"score"`
	TopScore  int       `json:"top_score"`
	Created   time.Time `json:"created"`
}

// UserFromModel converts a model.User to a response User
func UserFromModel(u *model.User) User {
	return User{
		ID:        string(u.ID),
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Cash:      u.Cash,
		Score:     u.Score,
		TopScore:  u.TopScore,
		Created:   u.Created,
	}
}

// Session represents the logged-in user pointer
type Session struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	LoggedInAt  time.Time `json:"logged_in_at"`
}

// SessionFromModel converts a model.SessionView to a response Session
func SessionFromModel(s *model.SessionView) Session {
	return Session{
		ID:          string(s.ID),
		Username:    s.Username,
		DisplayName: s.DisplayName(),
		LoggedInAt:  s.LoggedInAt,
	}
}

// Roll is the response for a dice roll
type Roll struct {
	Dice    [2]int            `json:"dice"`
	Sum     int               `json:"sum"`
	Outcome model.RollOutcome `json:"outcome"`
	Hand    game.State        `json:"hand"`
}

// RollFromReport converts a game.RollReport to a response Roll
func RollFromReport(r *game.RollReport) Roll {
	return Roll{
		Dice:    r.Dice,
		Sum:     r.Sum,
		Outcome: r.Outcome,
		Hand:    r.Hand,
	}
}

// Exit is the response for ending a play session
type Exit struct {
	Name   string `json:"name"`
	Score  int    `json:"score"`
	Wins   int    `json:"wins"`
	Losses int    `json:"losses"`
	Cash   int    `json:"cash"`
}

// ExitFromReport converts a game.ExitReport to a response Exit
func ExitFromReport(r *game.ExitReport) Exit {
	return Exit{
		Name:   r.Name,
		Score:  r.Score,
		Wins:   r.Wins,
		Losses: r.Losses,
		Cash:   r.Cash,
	}
}

// Leaderboard is the ranked leaderboard response
type Leaderboard struct {
	Entries []model.RankedEntry `json:"entries"`
}
