package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/isaacjstriker/notris/games/tetris"
	"github.com/isaacjstriker/notris/internal/database"
)

func (a *app) printLeaderboard(limit int) error {
	entries, err := a.db.GetLeaderboard(tetris.GameType, limit)
	if err != nil {
		return err
	}
	writeLeaderboard(os.Stdout, entries)
	return nil
}

func (a *app) printRecent(limit int) error {
	games, err := a.db.GetRecentGames(tetris.GameType, limit)
	if err != nil {
		return err
	}
	writeRecent(os.Stdout, games)
	return nil
}

func writeLeaderboard(out io.Writer, entries []database.LeaderboardEntry) {
	fmt.Fprintln(out, "\nTetris Leaderboard")
	if len(entries) == 0 {
		fmt.Fprintln(out, "No scores yet. Be the first!")
		return
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tPlayer\tBest\tAverage\tGames\tLast Played")
	for i, e := range entries {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%.0f\t%d\t%s\n",
			i+1, e.Username, e.BestScore, e.AvgScore, e.GamesPlayed, formatWhen(e.LastPlayed))
	}
	tw.Flush()
}

func writeRecent(out io.Writer, games []database.GameScore) {
	fmt.Fprintln(out, "\nRecent Tetris Games")
	if len(games) == 0 {
		fmt.Fprintln(out, "No games played yet.")
		return
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Player\tScore\tLines\tLevel\tPlayed")
	for _, g := range games {
		fmt.Fprintf(tw, "%s\t%d\t%v\t%v\t%s\n",
			g.Username, g.Score, metaOr(g.Metadata, "lines"), metaOr(g.Metadata, "level"), formatWhen(g.PlayedAt))
	}
	tw.Flush()
}

func metaOr(metadata map[string]interface{}, key string) interface{} {
	if v, ok := metadata[key]; ok {
		return v
	}
	return "-"
}

func formatWhen(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}
