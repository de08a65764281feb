package auth

import (
	"fmt"
	"time"

	"github.com/isaacjstriker/notris/internal/database"
	"github.com/isaacjstriker/notris/ui"
)

// CLIAuth handles authentication through the terminal menus.
type CLIAuth struct {
	db      *database.DB
	session *SessionManager
}

// NewCLIAuth creates a CLI authentication handler. A nil session uses the
// default session file.
func NewCLIAuth(db *database.DB, session *SessionManager) *CLIAuth {
	if session == nil {
		session = NewSessionManager()
	}
	return &CLIAuth{
		db:      db,
		session: session,
	}
}

// GetSession returns the current session manager
func (auth *CLIAuth) GetSession() *SessionManager {
	return auth.session
}

func pause() {
	fmt.Println("Press Enter to continue...")
	fmt.Scanln()
}

// ShowAuthMenu displays the account menu until the player backs out.
func (auth *CLIAuth) ShowAuthMenu() {
	for {
		var menuItems []ui.MenuItem

		if auth.session.IsLoggedIn() {
			menuItems = []ui.MenuItem{
				{Label: auth.session.GetUserInfo(), Value: "info"},
				{Label: "Switch Account", Value: "switch"},
				{Label: "Logout", Value: "logout"},
				{Label: "Back to Main Menu", Value: "back"},
			}
		} else {
			menuItems = []ui.MenuItem{
				{Label: "Login", Value: "login"},
				{Label: "Register New Account", Value: "register"},
				{Label: "Continue as Guest", Value: "guest"},
				{Label: "Back to Main Menu", Value: "back"},
			}
		}

		choice := ui.NewMenu("Account", menuItems).Show()

		switch choice {
		case "login":
			auth.handleLogin()
		case "register":
			auth.handleRegister()
		case "guest":
			fmt.Println("\nContinuing as guest. Your scores won't be saved!")
			pause()
			return
		case "switch":
			if err := auth.session.ClearSession(); err != nil {
				fmt.Printf("Error clearing session: %v\n", err)
			}
			auth.handleLogin()
		case "logout":
			auth.handleLogout()
		case "info":
			fmt.Printf("\n%s\n", auth.session.GetUserInfo())
			pause()
		case "back", "exit", "":
			return
		}
	}
}

func (auth *CLIAuth) handleLogin() {
	fmt.Println("\nLogin to Your Account")
	fmt.Println("=====================")

	username, err := ReadInput("Username: ")
	if err != nil {
		fmt.Printf("Error reading username: %v\n", err)
		return
	}

	password, err := ReadPassword("Password: ")
	if err != nil {
		fmt.Printf("Error reading password: %v\n", err)
		return
	}

	user, err := Authenticate(auth.db, username, password)
	if err != nil {
		fmt.Println("Invalid username or password")
		pause()
		return
	}

	if err := auth.db.UpdateLastLogin(user.ID); err != nil {
		fmt.Printf("Warning: %v\n", err)
	}

	if err := auth.session.SaveSession(user.ID, user.Username, user.Email); err != nil {
		fmt.Printf("Error saving session: %v\n", err)
		return
	}

	fmt.Printf("Welcome back, %s!\n", user.Username)
	pause()
}

func (auth *CLIAuth) handleRegister() {
	fmt.Println("\nCreate New Account")
	fmt.Println("==================")

	username, err := ReadInput("Username (3-50 characters): ")
	if err != nil {
		fmt.Printf("Error reading username: %v\n", err)
		return
	}

	email, err := ReadInput("Email: ")
	if err != nil {
		fmt.Printf("Error reading email: %v\n", err)
		return
	}

	password, err := ReadPassword("Password (8+ characters): ")
	if err != nil {
		fmt.Printf("Error reading password: %v\n", err)
		return
	}

	confirmPassword, err := ReadPassword("Confirm Password: ")
	if err != nil {
		fmt.Printf("Error reading confirmation: %v\n", err)
		return
	}

	if password != confirmPassword {
		fmt.Println("Passwords do not match")
		pause()
		return
	}

	user, err := Register(auth.db, username, email, password)
	if err != nil {
		if database.IsUniqueViolation(err) {
			fmt.Println("Username or email is already taken")
		} else {
			fmt.Printf("Failed to create account: %v\n", err)
		}
		pause()
		return
	}

	if err := auth.session.SaveSession(user.ID, user.Username, user.Email); err != nil {
		fmt.Printf("Error saving session: %v\n", err)
		return
	}

	fmt.Printf("Account created successfully! Welcome, %s!\n", user.Username)
	pause()
}

func (auth *CLIAuth) handleLogout() {
	var username string
	if session := auth.session.GetCurrentSession(); session != nil {
		username = session.Username
	}

	if err := auth.session.ClearSession(); err != nil {
		fmt.Printf("Error clearing session: %v\n", err)
		return
	}

	if username != "" {
		fmt.Printf("Goodbye, %s! You have been logged out.\n", username)
	} else {
		fmt.Println("You have been logged out.")
	}
	pause()
}

// ShowStats prints the logged-in player's record for gameType.
func (auth *CLIAuth) ShowStats(gameType string) {
	session := auth.session.GetCurrentSession()
	if session == nil {
		fmt.Println("\nLog in to see your stats.")
		pause()
		return
	}

	stats, err := auth.db.GetUserStats(session.UserID, gameType)
	if err != nil {
		fmt.Printf("Error loading stats: %v\n", err)
		pause()
		return
	}

	fmt.Print(FormatStats(stats))
	pause()
}

// FormatStats renders a stats block for the terminal.
func FormatStats(stats *database.LeaderboardEntry) string {
	if stats.GamesPlayed == 0 {
		return fmt.Sprintf("\n%s has not played %s yet.\n", stats.Username, stats.GameType)
	}
	return fmt.Sprintf("\n%s - %s\n  Best score:   %d\n  Average:      %.1f\n  Games played: %d\n  Last played:  %s\n",
		stats.Username, stats.GameType, stats.BestScore, stats.AvgScore,
		stats.GamesPlayed, stats.LastPlayed.Local().Format(time.DateTime))
}

// RequireAuth ensures the player is logged in, offering to log in or register.
// It returns false when the player continues as a guest.
func (auth *CLIAuth) RequireAuth() bool {
	if auth.session.IsLoggedIn() {
		return true
	}

	fmt.Println("\nYou need to be logged in to save your scores!")

	menu := ui.NewMenu("Authentication Required", []ui.MenuItem{
		{Label: "Login Now", Value: "login"},
		{Label: "Create Account", Value: "register"},
		{Label: "Continue as Guest (no scores saved)", Value: "guest"},
	})

	switch menu.Show() {
	case "login":
		auth.handleLogin()
	case "register":
		auth.handleRegister()
	}
	return auth.session.IsLoggedIn()
}
