package api

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/isaacjstriker/notris/games/tetris"
)

const (
	maxMessageSize = 512
	writeWait      = 5 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// clientMessage is what the browser sends, e.g. {"type":"input","key":"left"}.
type clientMessage struct {
	Type string `json:"type"`
	Key  string `json:"key"`
}

type stateMessage struct {
	Type  string           `json:"type"`
	State tetris.GameState `json:"state"`
}

type gameOverMessage struct {
	Type    string `json:"type"`
	Session string `json:"session"`
	Score   int    `json:"score"`
	Lines   int    `json:"lines"`
	Level   int    `json:"level"`
	Saved   bool   `json:"saved"`
}

// gameSession is one connection's private engine.
type gameSession struct {
	id        string
	conn      *websocket.Conn
	game      *tetris.Tetris
	user      *UserInfo
	frameRate int
	startedAt time.Time
}

// handleGameConnection upgrades to a WebSocket and runs a game for this
// connection alone. An optional ?token= identifies the player whose score is
// saved at game over; ?seed= fixes the piece sequence.
func (s *APIServer) handleGameConnection(w http.ResponseWriter, r *http.Request) {
	var user *UserInfo
	if token := r.URL.Query().Get("token"); token != "" {
		info, err := s.validateJWT(token)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, apiError{Error: "invalid token"})
			return
		}
		user = info
	}

	var seed int64
	if raw := r.URL.Query().Get("seed"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, apiError{Error: "seed must be an integer"})
			return
		}
		seed = parsed
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("[WARN] Failed to upgrade connection:", err)
		return
	}
	defer conn.Close()

	session := &gameSession{
		id:        uuid.NewString(),
		conn:      conn,
		game:      tetris.NewTetrisWithSeed(seed),
		user:      user,
		frameRate: s.config.FrameRate,
		startedAt: time.Now(),
	}
	log.Printf("[DEBUG] Game session %s started", session.id)
	session.run(s)
	log.Printf("[DEBUG] Game session %s ended", session.id)
}

// readInputs forwards input messages until the client goes away.
func (gs *gameSession) readInputs(inputs chan<- tetris.Action, done <-chan struct{}) {
	defer close(inputs)
	gs.conn.SetReadLimit(maxMessageSize)
	for {
		var msg clientMessage
		if err := gs.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[DEBUG] Game session %s closed: %v", gs.id, err)
			}
			return
		}
		if msg.Type != "input" {
			continue
		}
		select {
		case inputs <- tetris.Action(msg.Key):
		case <-done:
			return
		}
	}
}

func (gs *gameSession) send(v any) error {
	if err := gs.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return gs.conn.WriteJSON(v)
}

// run is the game loop: inputs are applied as they arrive and the engine
// ticks once per frame, pushing a snapshot after each tick.
func (gs *gameSession) run(s *APIServer) {
	ticker := time.NewTicker(time.Second / time.Duration(gs.frameRate))
	defer ticker.Stop()

	inputs := make(chan tetris.Action, 16)
	done := make(chan struct{})
	defer close(done)
	go gs.readInputs(inputs, done)

	reported := false
	for {
		select {
		case action, ok := <-inputs:
			if !ok {
				return
			}
			if action == tetris.ActionReset {
				gs.startedAt = time.Now()
				reported = false
			}
			if !gs.game.Apply(action) {
				log.Printf("[DEBUG] Game session %s: ignoring unknown input %q", gs.id, action)
			}

		case <-ticker.C:
			gs.game.Tick()

			if err := gs.send(stateMessage{Type: "state", State: gs.game.GetState()}); err != nil {
				return
			}

			if gs.game.IsGameOver() && !reported {
				reported = true
				saved := gs.saveScore(s)
				err := gs.send(gameOverMessage{
					Type:    "gameOver",
					Session: gs.id,
					Score:   gs.game.Score(),
					Lines:   gs.game.Lines(),
					Level:   gs.game.Level(),
					Saved:   saved,
				})
				if err != nil {
					return
				}
			}
		}
	}
}

func (gs *gameSession) saveScore(s *APIServer) bool {
	if gs.user == nil || s.db == nil {
		return false
	}

	metadata := map[string]interface{}{
		"lines":     gs.game.Lines(),
		"level":     gs.game.Level(),
		"game_time": time.Since(gs.startedAt).Seconds(),
		"source":    "web",
		"session":   gs.id,
	}
	if err := s.db.SaveGameScore(gs.user.UserID, tetris.GameType, gs.game.Score(), metadata); err != nil {
		log.Printf("[WARN] Game session %s: failed to save score for %s: %v", gs.id, gs.user.Username, err)
		return false
	}
	return true
}
