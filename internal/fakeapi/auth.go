package fakeapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/thenoetrevino/agency/internal/api"
	"github.com/thenoetrevino/agency/internal/models"
	"github.com/thenoetrevino/agency/internal/types"
)

type contextKey string

const userKey contextKey = "user"

func currentUser(r *http.Request) models.User {
	u, _ := r.Context().Value(userKey).(models.User)
	return u
}

// parseToken validates signature and expiry and returns the subject user ID
func (s *Server) parseToken(raw string) (types.UserID, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return 0, err
	}

	sub, err := token.Claims.GetSubject()
	if err != nil {
		return 0, err
	}
	id, err := strconv.Atoi(sub)
	if err != nil {
		return 0, err
	}
	return types.UserID(id), nil
}

// requireUser resolves the bearer token the way the backend's dependency
// chain does: missing → 401, undecodable → 403, unknown → 404, inactive → 400
func (s *Server) requireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			writeDetail(w, http.StatusUnauthorized, "Not authenticated")
			return
		}

		userID, err := s.parseToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			writeDetail(w, http.StatusForbidden, api.InvalidCredentials)
			return
		}

		s.mu.Lock()
		acc, ok := s.accounts[userID]
		var user models.User
		if ok {
			user = acc.user
		}
		s.mu.Unlock()

		if !ok {
			writeDetail(w, http.StatusNotFound, "User not found")
			return
		}
		if !user.IsActive {
			writeDetail(w, http.StatusBadRequest, "Inactive user")
			return
		}

		next(w, r.WithContext(context.WithValue(r.Context(), userKey, user)))
	}
}

// requireRole wraps requireUser with a minimum role
func (s *Server) requireRole(min models.Role, next http.HandlerFunc) http.HandlerFunc {
	return s.requireUser(func(w http.ResponseWriter, r *http.Request) {
		if !currentUser(r).Role.Includes(min) {
			writeDetail(w, http.StatusBadRequest, "The user doesn't have enough privileges")
			return
		}
		next(w, r)
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid form body")
		return
	}
	empID := r.PostForm.Get("username")
	password := r.PostForm.Get("password")

	s.mu.Lock()
	var found *account
	for _, id := range s.userOrder {
		if acc := s.accounts[id]; acc.user.EmpID == empID {
			found = acc
			break
		}
	}
	s.mu.Unlock()

	if found == nil || found.password != password {
		writeDetail(w, http.StatusBadRequest, "Incorrect employee ID or password")
		return
	}
	if !found.user.IsActive {
		writeDetail(w, http.StatusBadRequest, "Inactive user")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"access_token": s.IssueToken(found.user.ID, s.tokenTTL),
		"token_type":   "bearer",
	})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, currentUser(r))
}
