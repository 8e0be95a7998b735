package models

import "github.com/golang-jwt/jwt/v5"

// Token storage keys, one pair per browser session
const (
	AccessTokenKey  = "access_token"
	RefreshTokenKey = "refresh_token"
)

// LoginRequest carries the credentials typed on the login page
type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// TokenResponse is returned by POST /auth/login
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// User is the authenticated profile returned by GET /auth/me
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Nome     string `json:"nome"`
	Cognome  string `json:"cognome"`
	Ruolo    string `json:"ruolo"`
}

// FullName joins first and last name
func (u *User) FullName() string {
	return joinName(u.Nome, u.Cognome)
}

// Tecnico is an entry of GET /auth/tecnici
type Tecnico struct {
	ID      int64  `json:"id"`
	Nome    string `json:"nome"`
	Cognome string `json:"cognome"`
	Email   string `json:"email"`
	Ruolo   string `json:"ruolo"`
}

// FullName joins first and last name
func (t *Tecnico) FullName() string {
	return joinName(t.Nome, t.Cognome)
}

// SessionState is the externally visible state of a browser session
type SessionState struct {
	User            *User `json:"user"`
	IsAuthenticated bool  `json:"is_authenticated"`
	IsLoading       bool  `json:"is_loading"`
}

// SessionClaims is the payload of the signed browser-session cookie
type SessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

func joinName(nome, cognome string) string {
	switch {
	case nome == "":
		return cognome
	case cognome == "":
		return nome
	}
	return nome + " " + cognome
}
