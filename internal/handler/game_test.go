package handler

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/delta/codecharacter/api/internal/model"
	"github.com/delta/codecharacter/api/internal/service"
)

func gameLogService() *mockGameService {
	return &mockGameService{
		getLogFunc: func(ctx context.Context, gameID int) (*model.LogDetails, error) {
			switch gameID {
			case 1:
				return &model.LogDetails{GameLog: "TURN 1", Player1Log: "dbg"}, nil
			case 2:
				return nil, service.ErrGameLogNotFound
			}
			return nil, service.ErrGameNotFound
		},
	}
}

func TestGetGameLog(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t, testServices{games: gameLogService()})

	rr := do(t, router, http.MethodGet, "/game/log/game/1", playerToken, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"game_log":"TURN 1","player_1_log":"dbg","player_2_log":""}`, rr.Body.String())

	tests := []struct {
		name   string
		target string
		token  string
		want   int
		detail string
	}{
		{"no token", "/game/log/game/1", "", http.StatusUnauthorized, ""},
		{"log missing", "/game/log/game/2", playerToken, http.StatusNotFound, "game log not found"},
		{"game missing", "/game/log/game/3", playerToken, http.StatusNotFound, "game not found"},
		{"bad id", "/game/log/game/-1", playerToken, http.StatusBadRequest, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, router, http.MethodGet, tt.target, tt.token, "")
			assert.Equal(t, tt.want, rr.Code)
			if tt.detail != "" {
				assert.Equal(t, tt.detail, decodeBody[model.ProblemDetails](t, rr).Detail)
			}
		})
	}
}

func TestGetGameLog_Gzip(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t, testServices{games: gameLogService()})

	req := httptest.NewRequest(http.MethodGet, "/game/log/game/1", nil)
	req.Header.Set("Authorization", "Bearer "+playerToken)
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "gzip", rr.Header().Get("Content-Encoding"))
	gz, err := gzip.NewReader(rr.Body)
	require.NoError(t, err)
	var details model.LogDetails
	require.NoError(t, json.NewDecoder(gz).Decode(&details))
	assert.Equal(t, "TURN 1", details.GameLog)
}

func TestPutGameLog(t *testing.T) {
	t.Parallel()
	var stored *model.LogDetails
	svc := &mockGameService{
		storeLogFunc: func(ctx context.Context, gameID int, details *model.LogDetails) error {
			if gameID != 4 {
				return service.ErrGameNotFound
			}
			stored = details
			return nil
		},
	}
	router := newTestRouter(t, testServices{games: svc})
	body := `{"game_log":"L","player_1_log":"a","player_2_log":"b"}`

	assert.Equal(t, http.StatusForbidden, do(t, router, http.MethodPut, "/game/log/game/4", playerToken, body).Code)
	assert.Equal(t, http.StatusNotFound, do(t, router, http.MethodPut, "/game/log/game/5", adminToken, body).Code)

	rr := do(t, router, http.MethodPut, "/game/log/game/4", adminToken, body)
	require.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, &model.LogDetails{GameLog: "L", Player1Log: "a", Player2Log: "b"}, stored)
}

func TestPutGameResult(t *testing.T) {
	t.Parallel()
	svc := &mockGameService{
		resultFunc: func(ctx context.Context, gameID int, req *model.GameResultRequest) (*model.Game, error) {
			return &model.Game{ID: gameID, Points1: req.Points1, Points2: req.Points2, Status: req.Status,
				Verdict: model.VerdictFromScores(req.Points1, req.Points2)}, nil
		},
	}
	router := newTestRouter(t, testServices{games: svc})

	rr := do(t, router, http.MethodPut, "/game/8/result", adminToken, `{"points_1":1,"points_2":9,"status":"EXECUTED"}`)

	require.Equal(t, http.StatusOK, rr.Code)
	got := decodeBody[dataEnvelope[model.Game]](t, rr)
	assert.Equal(t, model.VerdictPlayer2, got.Data.Verdict)
}

func TestHealth(t *testing.T) {
	t.Parallel()

	ok := newTestRouter(t, testServices{pings: map[string]Pinger{
		"database": pingFunc(func(ctx context.Context) error { return nil }),
		"logstore": pingFunc(func(ctx context.Context) error { return nil }),
	}})
	rr := do(t, ok, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok","database":"ok","logstore":"ok"}`, rr.Body.String())

	degraded := newTestRouter(t, testServices{pings: map[string]Pinger{
		"database": pingFunc(func(ctx context.Context) error { return errors.New("refused") }),
	}})
	rr = do(t, degraded, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.JSONEq(t, `{"status":"degraded","database":"unavailable"}`, rr.Body.String())
}
