package tetris

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetState(t *testing.T) {
	game := newTestGame(KindO, KindL)
	game.board[19][0] = KindZ
	game.SoftDrop()

	state := game.GetState()

	require.NotNil(t, state.Current)
	require.NotNil(t, state.Ghost)
	assert.Equal(t, 1, state.Current.Y)
	assert.Equal(t, BoardHeight-2, state.Ghost.Y)
	assert.Equal(t, KindL, state.Next.Kind)
	assert.Equal(t, int(KindZ), state.Board[19][0])
	assert.Equal(t, 0, state.Board[1][3], "current piece is not drawn into the board")
	assert.Equal(t, 1, state.Score)
	assert.False(t, state.GameOver)
}

func TestGetStateAfterGameOver(t *testing.T) {
	game := newTestGame(KindO)
	fillSpawnArea(game)
	game.lockPiece()

	state := game.GetState()
	assert.True(t, state.GameOver)
	assert.Nil(t, state.Current)
	assert.Nil(t, state.Ghost)

	data, err := json.Marshal(state)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"gameOver":true`)
	assert.NotContains(t, string(data), `"current"`)
}

func TestGetStateIsASnapshot(t *testing.T) {
	game := newTestGame(KindT)
	state := game.GetState()
	state.Board[0][0] = 9
	state.Current.Shape[0][0] = true

	assert.Equal(t, Empty, game.Board()[0][0])
	current, _ := game.CurrentPiece()
	assert.False(t, current.Shape[0][0])
}
