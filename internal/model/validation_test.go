package model

import (
	"strings"
	"testing"
)

// ============================================================================
// CreateNotificationRequest Tests
// ============================================================================

func TestCreateNotificationRequest_Validate_Valid(t *testing.T) {
	t.Parallel()

	req := &CreateNotificationRequest{UserID: 42, Title: "Match ready", Content: "Your match vs bob finished", Type: NotificationTypeMatch}

	if errs := req.Validate(); len(errs) > 0 {
		t.Errorf("expected no errors, got %v", errs)
	}
}

func TestCreateNotificationRequest_Validate_EmptyContentAllowed(t *testing.T) {
	t.Parallel()

	req := &CreateNotificationRequest{UserID: 1, Title: "Hi", Type: NotificationTypeInfo}

	if errs := req.Validate(); len(errs) > 0 {
		t.Errorf("expected no errors, got %v", errs)
	}
}

func TestCreateNotificationRequest_Validate_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		req   CreateNotificationRequest
		field string
	}{
		{"zero user", CreateNotificationRequest{Title: "t", Type: NotificationTypeInfo}, "user_id"},
		{"negative user", CreateNotificationRequest{UserID: -3, Title: "t", Type: NotificationTypeInfo}, "user_id"},
		{"blank title", CreateNotificationRequest{UserID: 1, Title: "   ", Type: NotificationTypeInfo}, "title"},
		{"long title", CreateNotificationRequest{UserID: 1, Title: strings.Repeat("a", 201), Type: NotificationTypeInfo}, "title"},
		{"long content", CreateNotificationRequest{UserID: 1, Title: "t", Content: strings.Repeat("a", 2001), Type: NotificationTypeInfo}, "content"},
		{"missing type", CreateNotificationRequest{UserID: 1, Title: "t"}, "type"},
		{"unknown type", CreateNotificationRequest{UserID: 1, Title: "t", Type: "SPAM"}, "type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			errs := tt.req.Validate()
			if len(errs) != 1 || errs[0].Field != tt.field {
				t.Errorf("expected a single %s error, got %v", tt.field, errs)
			}
		})
	}
}

func TestParseNotificationType(t *testing.T) {
	t.Parallel()

	if got, ok := ParseNotificationType("promo"); !ok || got != NotificationTypePromo {
		t.Errorf("ParseNotificationType(promo) = %q, %v", got, ok)
	}
	if _, ok := ParseNotificationType("newsletter"); ok {
		t.Error("expected newsletter to be rejected")
	}
}

// ============================================================================
// Match Tests
// ============================================================================

func TestNewMatch_Defaults(t *testing.T) {
	t.Parallel()

	m := NewMatch(1, 10, 20, "")

	if m.Verdict != VerdictTie || m.Status != MatchStatusIdle || m.MatchMode != MatchModeAuto {
		t.Errorf("unexpected defaults: %+v", m)
	}
	if m.Score1 != 0 || m.Score2 != 0 {
		t.Errorf("expected zero scores, got %d/%d", m.Score1, m.Score2)
	}
	if m.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}
}

func TestMatchStatus_CanTransitionTo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		from, to MatchStatus
		want     bool
	}{
		{MatchStatusIdle, MatchStatusRunning, true},
		{MatchStatusRunning, MatchStatusFinished, true},
		{MatchStatusIdle, MatchStatusFinished, false},
		{MatchStatusRunning, MatchStatusIdle, false},
		{MatchStatusFinished, MatchStatusRunning, false},
		{MatchStatusFinished, MatchStatusFinished, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
			t.Errorf("%s -> %s = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestVerdictFromScores(t *testing.T) {
	t.Parallel()

	if v := VerdictFromScores(3, 1); v != VerdictPlayer1 {
		t.Errorf("3-1 = %s", v)
	}
	if v := VerdictFromScores(0, 2); v != VerdictPlayer2 {
		t.Errorf("0-2 = %s", v)
	}
	if v := VerdictFromScores(5, 5); v != VerdictTie {
		t.Errorf("5-5 = %s", v)
	}
}

func TestCreateMatchRequest_Validate(t *testing.T) {
	t.Parallel()

	valid := &CreateMatchRequest{PlayerID1: 1, PlayerID2: 2, MatchMode: MatchModeManual, MapIDs: []int{1, 2}}
	if errs := valid.Validate(); len(errs) > 0 {
		t.Errorf("expected no errors, got %v", errs)
	}

	same := &CreateMatchRequest{PlayerID1: 4, PlayerID2: 4}
	if errs := same.Validate(); len(errs) != 1 || errs[0].Field != "player_id_2" {
		t.Errorf("expected self-match error, got %v", errs)
	}

	bad := &CreateMatchRequest{PlayerID1: 0, PlayerID2: -1, MatchMode: "RANKED", MapIDs: []int{0}}
	if errs := bad.Validate(); len(errs) != 4 {
		t.Errorf("expected 4 errors, got %v", errs)
	}

	full := &CreateMatchRequest{PlayerID1: 1, PlayerID2: 2, MapIDs: make([]int, MaxGamesPerMatch)}
	for i := range full.MapIDs {
		full.MapIDs[i] = i + 1
	}
	if errs := full.Validate(); len(errs) > 0 {
		t.Errorf("expected %d maps to be accepted, got %v", MaxGamesPerMatch, errs)
	}

	full.MapIDs = append(full.MapIDs, MaxGamesPerMatch+1)
	if errs := full.Validate(); len(errs) != 1 || errs[0].Field != "map_ids" {
		t.Errorf("expected map_ids cap error, got %v", errs)
	}
}

func TestFinishMatchRequest_Validate_NegativeScores(t *testing.T) {
	t.Parallel()

	req := &FinishMatchRequest{Score1: -1, Score2: -2}
	if errs := req.Validate(); len(errs) != 2 {
		t.Errorf("expected 2 errors, got %v", errs)
	}
}

// ============================================================================
// Page Tests
// ============================================================================

func TestPage_Math(t *testing.T) {
	t.Parallel()

	p := &Page[int]{Items: []int{5, 4}, Number: 1, Size: 2, TotalItems: 5}
	if p.TotalPages() != 3 {
		t.Errorf("TotalPages = %d, want 3", p.TotalPages())
	}
	if !p.HasMore() {
		t.Error("expected more pages")
	}

	last := &Page[int]{Items: []int{1}, Number: 3, Size: 2, TotalItems: 5}
	if last.HasMore() {
		t.Error("last page should not have more")
	}

	empty := EmptyPage[int](1, 0, 5)
	if empty.TotalPages() != 0 || empty.HasMore() || len(empty.Items) != 0 {
		t.Errorf("unexpected empty page: %+v", empty)
	}
}

func TestOffset(t *testing.T) {
	t.Parallel()

	if Offset(1, 10) != 0 || Offset(3, 10) != 20 || Offset(0, 10) != 0 {
		t.Error("unexpected offsets")
	}
}
