package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/isaacjstriker/notris/games"
	"github.com/isaacjstriker/notris/games/tetris"
	"github.com/isaacjstriker/notris/internal/api"
	"github.com/isaacjstriker/notris/internal/auth"
	"github.com/isaacjstriker/notris/internal/config"
	"github.com/isaacjstriker/notris/internal/database"
	"github.com/isaacjstriker/notris/ui"
)

const usage = `Usage: notris [command]

Commands:
  (none)               open the main menu
  play                 play Tetris in the terminal
  serve                start the HTTP and WebSocket server
  leaderboard [limit]  print the Tetris leaderboard
  recent [limit]       print the latest Tetris games
  stats                print your own Tetris record
  account              login, register or logout
  seed                 fill an empty database with sample players
  dbcheck              check the database connection
`

type app struct {
	cfg     *config.Config
	db      *database.DB
	cliAuth *auth.CLIAuth
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("[ERROR] %v", err)
	}
	defer db.Close()

	if err := db.CreateTables(); err != nil {
		log.Fatalf("[ERROR] %v", err)
	}

	a := &app{
		cfg:     cfg,
		db:      db,
		cliAuth: auth.NewCLIAuth(db, nil),
	}

	args := os.Args[1:]
	if len(args) == 0 {
		a.mainMenu()
		return
	}

	if err := a.run(args[0], args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		db.Close()
		os.Exit(1)
	}
}

func (a *app) run(command string, args []string) error {
	switch command {
	case "play":
		a.play()
	case "serve":
		server := api.NewAPIServer(a.cfg.ListenAddr(), a.db, a.cfg)
		return server.Start()
	case "leaderboard":
		return a.printLeaderboard(limitArg(args, 10))
	case "recent":
		return a.printRecent(limitArg(args, 10))
	case "stats":
		a.cliAuth.ShowStats(tetris.GameType)
	case "account":
		a.cliAuth.ShowAuthMenu()
	case "seed":
		seeded, err := a.db.SeedSampleData(tetris.GameType)
		if err != nil {
			return err
		}
		if !seeded {
			fmt.Println("Database already has users; nothing seeded.")
			return nil
		}
		fmt.Println("Sample data created.")
	case "dbcheck":
		version, err := a.db.ServerVersion()
		if err != nil {
			return err
		}
		fmt.Printf("Connected to %s: %s\n", a.db.Type(), version)
	case "help", "-h", "--help":
		fmt.Print(usage)
	default:
		fmt.Print(usage)
		return fmt.Errorf("unknown command %q", command)
	}
	return nil
}

func limitArg(args []string, def int) int {
	if len(args) == 0 {
		return def
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func (a *app) mainMenu() {
	for {
		subtitle := "Not logged in"
		if a.cliAuth.GetSession().IsLoggedIn() {
			subtitle = a.cliAuth.GetSession().GetUserInfo()
		}

		menu := ui.NewMenu(a.cfg.AppName, []ui.MenuItem{
			{Label: "Play Tetris", Value: "play"},
			{Label: "Leaderboard", Value: "leaderboard"},
			{Label: "Recent Games", Value: "recent"},
			{Label: "My Stats", Value: "stats"},
			{Label: "Account", Value: "account"},
			{Label: "Quit", Value: "exit"},
		})
		menu.Subtitle = subtitle

		choice := menu.Show()
		switch choice {
		case "exit", "":
			fmt.Println("Goodbye!")
			return
		case "leaderboard", "recent":
			if err := a.run(choice, nil); err != nil {
				fmt.Printf("Error: %v\n", err)
			}
			fmt.Println("Press Enter to continue...")
			fmt.Scanln()
		default:
			if err := a.run(choice, nil); err != nil {
				fmt.Printf("Error: %v\n", err)
			}
		}
	}
}

func (a *app) play() {
	game, ok := games.NewGame(tetris.GameType)
	if !ok {
		fmt.Println("Tetris is not available")
		return
	}

	a.cliAuth.RequireAuth()
	result := game.Play(a.db, a.cliAuth)
	if result == nil || result.Score < 0 {
		return
	}

	if a.cliAuth.GetSession().IsLoggedIn() {
		if err := a.printLeaderboard(5); err != nil {
			log.Printf("[WARN] %v", err)
		}
	}
	fmt.Println("Press Enter to continue...")
	fmt.Scanln()
}
