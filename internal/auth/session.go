package auth

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

const sessionFileName = ".notris_session"

// Session is the logged-in player persisted between runs.
type Session struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// SessionManager handles user sessions
type SessionManager struct {
	sessionFile string
	current     *Session
}

// DefaultSessionPath is ~/.notris_session, or the working directory when
// the home directory is unknown.
func DefaultSessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return sessionFileName
	}
	return filepath.Join(home, sessionFileName)
}

// NewSessionManager creates a session manager backed by DefaultSessionPath.
func NewSessionManager() *SessionManager {
	return NewSessionManagerAt(DefaultSessionPath())
}

// NewSessionManagerAt creates a session manager backed by path and loads
// any session already stored there.
func NewSessionManagerAt(path string) *SessionManager {
	sm := &SessionManager{sessionFile: path}
	if err := sm.LoadSession(); err != nil {
		log.Printf("[DEBUG] No previous session found or failed to load: %v", err)
	}
	return sm
}

// SaveSession saves the current session to disk
func (sm *SessionManager) SaveSession(userID int, username, email string) error {
	sm.current = &Session{
		UserID:   userID,
		Username: username,
		Email:    email,
	}

	data, err := json.Marshal(sm.current)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := os.WriteFile(sm.sessionFile, data, 0600); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// LoadSession loads a session from disk. A missing file is not an error.
func (sm *SessionManager) LoadSession() error {
	data, err := os.ReadFile(sm.sessionFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read session file: %w", err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return fmt.Errorf("failed to unmarshal session: %w", err)
	}

	sm.current = &session
	return nil
}

func (sm *SessionManager) GetCurrentSession() *Session {
	return sm.current
}

func (sm *SessionManager) IsLoggedIn() bool {
	return sm.current != nil
}

// ClearSession forgets the current session and removes the session file.
func (sm *SessionManager) ClearSession() error {
	sm.current = nil

	if err := os.Remove(sm.sessionFile); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}

	return nil
}

// GetUserInfo returns formatted user information
func (sm *SessionManager) GetUserInfo() string {
	if sm.current == nil {
		return "Not logged in"
	}
	return fmt.Sprintf("Logged in as: %s (%s)", sm.current.Username, sm.current.Email)
}
