package model

// GameStatus tracks the execution of a single game
type GameStatus string

const (
	GameStatusIdle         GameStatus = "IDLE"
	GameStatusExecuting    GameStatus = "EXECUTING"
	GameStatusExecuted     GameStatus = "EXECUTED"
	GameStatusExecuteError GameStatus = "EXECUTE_ERROR"
)

// Game is one round of a match, played on a single map
type Game struct {
	ID      int        `json:"id"`
	MatchID int        `json:"match_id"`
	MapID   int        `json:"map_id"`
	Points1 int        `json:"points_1"`
	Points2 int        `json:"points_2"`
	Verdict Verdict    `json:"verdict"`
	Status  GameStatus `json:"status"`
}

// GameSummary is the part of a game embedded in a MatchResponse
type GameSummary struct {
	ID      int        `json:"id"`
	MapID   int        `json:"map_id"`
	Points1 int        `json:"points_1"`
	Points2 int        `json:"points_2"`
	Verdict Verdict    `json:"verdict"`
	Status  GameStatus `json:"status"`
}

// Summary strips the owning match id
func (g *Game) Summary() GameSummary {
	return GameSummary{
		ID:      g.ID,
		MapID:   g.MapID,
		Points1: g.Points1,
		Points2: g.Points2,
		Verdict: g.Verdict,
		Status:  g.Status,
	}
}

// LogDetails holds the simulator output and both players' debug logs for a game
type LogDetails struct {
	GameLog    string `json:"game_log"`
	Player1Log string `json:"player_1_log"`
	Player2Log string `json:"player_2_log"`
}

// Validate validates an uploaded log
func (l *LogDetails) Validate() []FieldError {
	if l.GameLog == "" {
		return []FieldError{{Field: "game_log", Message: "game_log is required"}}
	}
	return nil
}

// GameResultRequest is reported by the executor once a game has run
type GameResultRequest struct {
	Points1 int        `json:"points_1"`
	Points2 int        `json:"points_2"`
	Status  GameStatus `json:"status"`
}

// Validate validates the game result request
func (r *GameResultRequest) Validate() []FieldError {
	var errors []FieldError
	if r.Points1 < 0 {
		errors = append(errors, FieldError{Field: "points_1", Message: "points_1 cannot be negative"})
	}
	if r.Points2 < 0 {
		errors = append(errors, FieldError{Field: "points_2", Message: "points_2 cannot be negative"})
	}
	switch r.Status {
	case GameStatusExecuting, GameStatusExecuted, GameStatusExecuteError:
	default:
		errors = append(errors, FieldError{Field: "status", Message: "status must be EXECUTING, EXECUTED, or EXECUTE_ERROR"})
	}
	return errors
}
