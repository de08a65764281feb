package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/isaacjstriker/notris/games/tetris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type serverMessage struct {
	Type    string           `json:"type"`
	Session string           `json:"session"`
	State   tetris.GameState `json:"state"`
	Score   int              `json:"score"`
	Lines   int              `json:"lines"`
	Level   int              `json:"level"`
	Saved   bool             `json:"saved"`
}

func dialGame(t *testing.T, h http.Handler, query string) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/game" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readUntil(t *testing.T, conn *websocket.Conn, match func(serverMessage) bool) serverMessage {
	t.Helper()
	deadline := time.Now().Add(10 * time.Second)
	require.NoError(t, conn.SetReadDeadline(deadline))
	for {
		var msg serverMessage
		_, data, err := conn.ReadMessage()
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(data, &msg))
		if match(msg) {
			return msg
		}
	}
}

func sendKey(t *testing.T, conn *websocket.Conn, key string) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(clientMessage{Type: "input", Key: key}))
}

func TestGameStreamsState(t *testing.T) {
	_, h := newTestServer(t)
	conn := dialGame(t, h, "?seed=7")

	msg := readUntil(t, conn, func(m serverMessage) bool { return m.Type == "state" })
	require.NotNil(t, msg.State.Current)
	require.NotNil(t, msg.State.Ghost)
	assert.Len(t, msg.State.Board, tetris.BoardHeight)
	assert.Len(t, msg.State.Board[0], tetris.BoardWidth)
	assert.False(t, msg.State.GameOver)

	sendKey(t, conn, "pause")
	msg = readUntil(t, conn, func(m serverMessage) bool { return m.Type == "state" && m.State.Paused })
	assert.True(t, msg.State.Paused)

	sendKey(t, conn, "pause")
	readUntil(t, conn, func(m serverMessage) bool { return m.Type == "state" && !m.State.Paused })
}

func TestGameHardDropScores(t *testing.T) {
	_, h := newTestServer(t)
	conn := dialGame(t, h, "?seed=3")

	sendKey(t, conn, "bogus")
	sendKey(t, conn, "drop")
	msg := readUntil(t, conn, func(m serverMessage) bool { return m.Type == "state" && m.State.Score > 0 })
	assert.Greater(t, msg.State.Score, 0)
	filled := 0
	for _, code := range msg.State.Board[tetris.BoardHeight-1] {
		if code != 0 {
			filled++
		}
	}
	assert.Greater(t, filled, 0)
}

func TestGameOverSavesScoreAndResets(t *testing.T) {
	s, h := newTestServer(t)
	token := registerAndLogin(t, h, "alice")
	conn := dialGame(t, h, "?seed=11&token="+token)

	readUntil(t, conn, func(m serverMessage) bool { return m.Type == "state" })
	for i := 0; i < 60; i++ {
		sendKey(t, conn, "drop")
	}

	over := readUntil(t, conn, func(m serverMessage) bool { return m.Type == "gameOver" })
	assert.Greater(t, over.Score, 0)
	assert.True(t, over.Saved)
	_, err := uuid.Parse(over.Session)
	require.NoError(t, err)

	games, err := s.db.GetRecentGames(tetris.GameType, 5)
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, over.Session, games[0].Metadata["session"])
	assert.Equal(t, over.Score, games[0].Score)
	assert.Equal(t, "alice", games[0].Username)
	assert.Equal(t, "web", games[0].Metadata["source"])

	sendKey(t, conn, "reset")
	fresh := readUntil(t, conn, func(m serverMessage) bool { return m.Type == "state" && !m.State.GameOver })
	assert.Equal(t, 0, fresh.State.Score)
	assert.NotNil(t, fresh.State.Current)
}

func TestGameGuestIsNotSaved(t *testing.T) {
	s, h := newTestServer(t)
	conn := dialGame(t, h, "?seed=5")

	readUntil(t, conn, func(m serverMessage) bool { return m.Type == "state" })
	for i := 0; i < 60; i++ {
		sendKey(t, conn, "drop")
	}

	over := readUntil(t, conn, func(m serverMessage) bool { return m.Type == "gameOver" })
	assert.False(t, over.Saved)

	games, err := s.db.GetRecentGames(tetris.GameType, 5)
	require.NoError(t, err)
	assert.Empty(t, games)
}

func TestGameRejectsBadQuery(t *testing.T) {
	_, h := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/ws/game?token=nope", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, h, http.MethodGet, "/ws/game?seed=abc", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSendFailsOnClosedConnection(t *testing.T) {
	_, h := newTestServer(t)
	conn := dialGame(t, h, "")
	gs := &gameSession{conn: conn}

	require.NoError(t, gs.send(clientMessage{Type: "input", Key: "pause"}))

	require.NoError(t, conn.Close())
	assert.Error(t, gs.send(clientMessage{Type: "input", Key: "pause"}))
}
