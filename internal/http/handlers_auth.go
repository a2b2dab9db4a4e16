package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"saldo/internal/core"
	applog "saldo/internal/log"
	"saldo/internal/services"
)

type userResponse struct {
	ID              string `json:"id"`
	FullName        string `json:"fullName"`
	Email           string `json:"email"`
	ProfileImageURL string `json:"profileImageUrl,omitempty"`
	CreatedAt       string `json:"createdAt"`
}

type sessionResponse struct {
	Token     string       `json:"token"`
	ExpiresAt string       `json:"expiresAt"`
	User      userResponse `json:"user"`
}

func newUserResponse(u core.User) userResponse {
	return userResponse{
		ID:              u.ID,
		FullName:        u.FullName,
		Email:           u.Email,
		ProfileImageURL: u.ProfileImageURL,
		CreatedAt:       u.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func newSessionResponse(s services.Session) sessionResponse {
	return sessionResponse{
		Token:     s.Token,
		ExpiresAt: s.ExpiresAt.UTC().Format(time.RFC3339),
		User:      newUserResponse(s.User),
	}
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FullName        string `json:"fullName"`
		Email           string `json:"email"`
		Password        string `json:"password"`
		ProfileImageURL string `json:"profileImageUrl"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, applog.OpRegister, err)
		return
	}
	if strings.TrimSpace(req.FullName) == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		writeError(w, r, applog.OpRegister, badRequest("All fields are required", nil))
		return
	}

	session, err := s.auth.Register(r.Context(), core.NewUserInput{
		FullName:        sanitizeInput(req.FullName),
		Email:           req.Email,
		Password:        req.Password,
		ProfileImageURL: sanitizeInput(req.ProfileImageURL),
	})
	if err != nil {
		writeError(w, r, applog.OpRegister, err)
		return
	}
	Created(newSessionResponse(session)).Write(w)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, applog.OpLogin, err)
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		writeError(w, r, applog.OpLogin, badRequest("All fields are required", nil))
		return
	}

	session, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, applog.OpLogin, err)
		return
	}
	OK(newSessionResponse(session)).Write(w)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	u, err := s.auth.User(r.Context(), ownerID(r))
	if errors.Is(err, core.ErrNotFound) {
		NotFoundError("User not found").Write(w)
		return
	}
	if err != nil {
		writeError(w, r, applog.OpGetUser, err)
		return
	}
	OK(newUserResponse(u)).Write(w)
}
