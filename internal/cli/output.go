package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case User:
		o.printUser(v)
	case Session:
		o.printSession(v)
	case RollResult:
		o.printRollResult(v)
	case HandState:
		o.printHandState(v)
	case ExitResult:
		o.printExitResult(v)
	case LeaderboardResult:
		o.printLeaderboard(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// User response type (matches API)
type User struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Cash      int    `json:"cash"`
	Score     int    `json:"score"`
	TopScore  int    `json:"top_score"`
}

// Session response type
type Session struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	LoggedInAt  time.Time `json:"logged_in_at"`
}

// Outcome response type
type Outcome struct {
	Kind    string `json:"kind"`
	Phase   string `json:"phase,omitempty"`
	Result  string `json:"outcome,omitempty"`
	Reason  string `json:"reason,omitempty"`
	Message string `json:"message,omitempty"`
	Point   int    `json:"point,omitempty"`
}

// HandState response type
type HandState struct {
	Cash     int  `json:"cash"`
	Bet      int  `json:"bet"`
	Point    int  `json:"point"`
	Wins     int  `json:"wins"`
	Losses   int  `json:"losses"`
	Score    int  `json:"score"`
	GameOver bool `json:"game_over"`
}

// RollResult response type
type RollResult struct {
	Dice    [2]int    `json:"dice"`
	Sum     int       `json:"sum"`
	Outcome Outcome   `json:"outcome"`
	Hand    HandState `json:"hand"`
}

// ExitResult response type
type ExitResult struct {
	Name   string `json:"name"`
	Score  int    `json:"score"`
	Wins   int    `json:"wins"`
	Losses int    `json:"losses"`
	Cash   int    `json:"cash"`
}

// RankedRow response type
type RankedRow struct {
	Rank     int    `json:"rank"`
	Username string `json:"username"`
	Score    int    `json:"score"`
}

// LeaderboardResult response type
type LeaderboardResult struct {
	Entries []RankedRow `json:"entries"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printUser(u User) {
	fmt.Printf("User: %s (%s)\n", u.Username, u.ID)
	if u.FirstName != "" || u.LastName != "" {
		fmt.Printf("Name: %s %s\n", u.FirstName, u.LastName)
	}
	fmt.Printf("Cash: %d\n", u.Cash)
	fmt.Printf("Score: %d (best %d)\n", u.Score, u.TopScore)
}

func (o *Output) printSession(s Session) {
	fmt.Printf("Logged in as: %s (%s)\n", s.DisplayName, s.ID)
	if !s.LoggedInAt.IsZero() {
		fmt.Printf("Since: %s\n", s.LoggedInAt.Format("2006-01-02 15:04:05"))
	}
}

func (o *Output) printRollResult(r RollResult) {
	fmt.Printf("Dice: %d + %d = %d\n", r.Dice[0], r.Dice[1], r.Sum)

	switch r.Outcome.Kind {
	case "resolve":
		verdict := "You lose."
		if r.Outcome.Result == "win" {
			verdict = "You win!"
		}
		fmt.Printf("%s %s\n", verdict, r.Outcome.Reason)
	default:
		fmt.Println(r.Outcome.Message)
	}

	o.printHandState(r.Hand)
}

func (o *Output) printHandState(h HandState) {
	fmt.Printf("Cash: %d (bet %d)\n", h.Cash, h.Bet)
	if h.Point != 0 {
		fmt.Printf("Point: %d\n", h.Point)
	}
	fmt.Printf("Record: %d wins, %d losses\n", h.Wins, h.Losses)
	fmt.Printf("Score: %d\n", h.Score)
	if h.GameOver {
		fmt.Println("No cash left. Game over.")
	}
}

func (o *Output) printExitResult(e ExitResult) {
	fmt.Printf("Session over for %s\n", e.Name)
	fmt.Printf("Final score: %d (%d wins, %d losses)\n", e.Score, e.Wins, e.Losses)
	fmt.Printf("Cash: %d\n", e.Cash)
}

func (o *Output) printLeaderboard(l LeaderboardResult) {
	if len(l.Entries) == 0 {
		fmt.Println("Leaderboard is empty")
		return
	}
	fmt.Printf("%-5s %-20s %s\n", "Rank", "Name", "Score")
	for _, e := range l.Entries {
		fmt.Printf("%-5d %-20s %d\n", e.Rank, e.Username, e.Score)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
