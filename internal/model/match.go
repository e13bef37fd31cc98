package model

import (
	"fmt"
	"time"
)

// Verdict is the outcome of a match or game
type Verdict string

const (
	VerdictTie     Verdict = "TIE"
	VerdictPlayer1 Verdict = "PLAYER_1"
	VerdictPlayer2 Verdict = "PLAYER_2"
)

// VerdictFromScores picks the winner by comparing scores; equal scores tie
func VerdictFromScores(score1, score2 int) Verdict {
	switch {
	case score1 > score2:
		return VerdictPlayer1
	case score2 > score1:
		return VerdictPlayer2
	default:
		return VerdictTie
	}
}

// MatchStatus tracks a match through IDLE -> RUNNING -> FINISHED
type MatchStatus string

const (
	MatchStatusIdle     MatchStatus = "IDLE"
	MatchStatusRunning  MatchStatus = "RUNNING"
	MatchStatusFinished MatchStatus = "FINISHED"
)

// CanTransitionTo reports whether moving from s to next is a legal step.
// The only legal steps are IDLE -> RUNNING and RUNNING -> FINISHED.
func (s MatchStatus) CanTransitionTo(next MatchStatus) bool {
	switch s {
	case MatchStatusIdle:
		return next == MatchStatusRunning
	case MatchStatusRunning:
		return next == MatchStatusFinished
	}
	return false
}

// MatchMode says whether the match was scheduled automatically or challenged manually
type MatchMode string

const (
	MatchModeAuto   MatchMode = "AUTO"
	MatchModeManual MatchMode = "MANUAL"
)

// IsValid reports whether m is a known match mode
func (m MatchMode) IsValid() bool {
	return m == MatchModeAuto || m == MatchModeManual
}

// Match is a contest between two players, made up of one or more games
type Match struct {
	ID        int         `json:"id"`
	PlayerID1 int         `json:"player_id_1"`
	PlayerID2 int         `json:"player_id_2"`
	Verdict   Verdict     `json:"verdict"`
	Status    MatchStatus `json:"status"`
	Score1    int         `json:"score_1"`
	Score2    int         `json:"score_2"`
	MatchMode MatchMode   `json:"match_mode"`
	CreatedAt time.Time   `json:"created_at"`
}

// NewMatch returns a match between two players with every field defaulted
func NewMatch(id, playerID1, playerID2 int, mode MatchMode) *Match {
	if mode == "" {
		mode = MatchModeAuto
	}
	return &Match{
		ID:        id,
		PlayerID1: playerID1,
		PlayerID2: playerID2,
		Verdict:   VerdictTie,
		Status:    MatchStatusIdle,
		MatchMode: mode,
		CreatedAt: time.Now().UTC(),
	}
}

// TotalScore is the ranking key for top matches
func (m *Match) TotalScore() int {
	return m.Score1 + m.Score2
}

// IsFinished returns true once the verdict has settled
func (m *Match) IsFinished() bool {
	return m.Status == MatchStatusFinished
}

// MaxGamesPerMatch caps map_ids on a create request
const MaxGamesPerMatch = 10

// CreateMatchRequest represents a request to set up a match
type CreateMatchRequest struct {
	PlayerID1 int       `json:"player_id_1"`
	PlayerID2 int       `json:"player_id_2"`
	MatchMode MatchMode `json:"match_mode,omitempty"`
	MapIDs    []int     `json:"map_ids,omitempty"` // one game per map
}

// Validate validates the create match request
func (r *CreateMatchRequest) Validate() []FieldError {
	var errors []FieldError

	if r.PlayerID1 <= 0 {
		errors = append(errors, FieldError{Field: "player_id_1", Message: "player_id_1 must be a positive integer"})
	}
	if r.PlayerID2 <= 0 {
		errors = append(errors, FieldError{Field: "player_id_2", Message: "player_id_2 must be a positive integer"})
	}
	if r.PlayerID1 > 0 && r.PlayerID1 == r.PlayerID2 {
		errors = append(errors, FieldError{Field: "player_id_2", Message: "a player cannot be matched against themselves"})
	}
	if r.MatchMode != "" && !r.MatchMode.IsValid() {
		errors = append(errors, FieldError{Field: "match_mode", Message: "match_mode must be AUTO or MANUAL"})
	}
	if len(r.MapIDs) > MaxGamesPerMatch {
		errors = append(errors, FieldError{Field: "map_ids", Message: fmt.Sprintf("at most %d map ids per match", MaxGamesPerMatch)})
	}
	for _, mapID := range r.MapIDs {
		if mapID <= 0 {
			errors = append(errors, FieldError{Field: "map_ids", Message: "map ids must be positive integers"})
			break
		}
	}

	return errors
}

// FinishMatchRequest carries the final scores of a running match
type FinishMatchRequest struct {
	Score1 int `json:"score_1"`
	Score2 int `json:"score_2"`
}

// Validate validates the finish match request
func (r *FinishMatchRequest) Validate() []FieldError {
	var errors []FieldError
	if r.Score1 < 0 {
		errors = append(errors, FieldError{Field: "score_1", Message: "score_1 cannot be negative"})
	}
	if r.Score2 < 0 {
		errors = append(errors, FieldError{Field: "score_2", Message: "score_2 cannot be negative"})
	}
	return errors
}

// MatchResponse is a match as shown on the leaderboard of top matches
type MatchResponse struct {
	ID        int           `json:"id"`
	Player1   PlayerSummary `json:"player_1"`
	Player2   PlayerSummary `json:"player_2"`
	Verdict   Verdict       `json:"verdict"`
	Score1    int           `json:"score_1"`
	Score2    int           `json:"score_2"`
	MatchMode MatchMode     `json:"match_mode"`
	CreatedAt time.Time     `json:"created_at"`
	Games     []GameSummary `json:"games"`
}

// PlayerSummary identifies a player without exposing account details
type PlayerSummary struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
}
