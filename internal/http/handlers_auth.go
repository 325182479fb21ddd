package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/helderruiz/controle-mensal/internal/log"
	"github.com/helderruiz/controle-mensal/internal/session"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if s.auth == nil {
		writeError(w, http.StatusServiceUnavailable, "auth service not configured")
		return
	}

	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		writeError(w, http.StatusUnprocessableEntity, "email and password are required")
		return
	}

	sess, err := s.auth.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeAuthError(w, r, "Sign in failed", err)
		return
	}

	s.sessions.Set(sess)
	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	if s.auth == nil {
		writeError(w, http.StatusServiceUnavailable, "auth service not configured")
		return
	}

	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		writeError(w, http.StatusUnprocessableEntity, "email and password are required")
		return
	}

	sess, err := s.auth.SignUp(r.Context(), req.Email, req.Password, strings.TrimSpace(req.Name))
	if err != nil {
		s.writeAuthError(w, r, "Sign up failed", err)
		return
	}

	s.sessions.Set(sess)
	writeJSON(w, http.StatusCreated, sess)
}

// handleLogout signs the current session out remotely and marks the local
// state inactive. The local state flips even if the remote call fails.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	_, current := s.sessions.Current()
	if current != nil && s.auth != nil {
		if err := s.auth.SignOut(r.Context(), current.AccessToken); err != nil {
			s.logger.WarnContext(r.Context(), "Remote sign out failed", log.FieldError, err.Error())
		}
	}
	s.sessions.Set(nil)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	status, sess := s.sessions.Current()
	body := map[string]any{"status": status.String()}
	if sess != nil {
		body["session"] = sess
	}
	writeJSON(w, http.StatusOK, body)
}

func (s *Server) writeAuthError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	var authErr *session.AuthError
	if errors.As(err, &authErr) {
		s.logger.WarnContext(r.Context(), msg, "code", authErr.Code, log.FieldStatusCode, authErr.Status)
		if authErr.Code == session.ErrInvalidCredentials {
			writeError(w, http.StatusUnauthorized, session.ErrInvalidCredentials)
			return
		}
		status := authErr.Status
		if status < 400 || status > 599 {
			status = http.StatusBadGateway
		}
		writeJSON(w, status, map[string]string{"error": authErr.Code, "message": authErr.Message})
		return
	}
	s.logger.ErrorContext(r.Context(), msg, log.FieldError, err.Error())
	writeError(w, http.StatusBadGateway, "auth service unreachable")
}
