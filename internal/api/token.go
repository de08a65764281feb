package api

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenLifetime = 7 * 24 * time.Hour

// UserInfo is the identity carried by a token.
type UserInfo struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
}

// createJWT generates a new JWT for a given user
func createJWT(userID int, username, secret string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"exp":      jwt.NewNumericDate(now.Add(tokenLifetime)),
		"iat":      jwt.NewNumericDate(now),
		"userID":   userID,
		"username": username,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// validateJWT checks the signature and expiry and extracts the user.
func (s *APIServer) validateJWT(tokenString string) (*UserInfo, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.config.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	userID, ok := claims["userID"].(float64)
	if !ok {
		return nil, errors.New("token is missing userID")
	}
	username, ok := claims["username"].(string)
	if !ok || username == "" {
		return nil, errors.New("token is missing username")
	}

	return &UserInfo{UserID: int(userID), Username: username}, nil
}
