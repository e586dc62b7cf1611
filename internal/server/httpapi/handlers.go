package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/pdfdrop/internal/common"
	"github.com/dmitrijs2005/pdfdrop/internal/server/auth"
	"github.com/dmitrijs2005/pdfdrop/internal/server/storage"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type hashRequest struct {
	Password string `json:"password"`
}

type hashResponse struct {
	Hash string `json:"hash"`
}

type presignRequest struct {
	Filename string `json:"filename"`
}

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// hashPasswordFn is swapped in tests to avoid cost-12 bcrypt.
var hashPasswordFn = auth.HashPassword

func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "ok",
		Timestamp: s.now().UTC().Format(time.RFC3339Nano),
	})
}

func (s *HTTPServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	token, err := s.auth.Login(r.Context(), req.Username, req.Password)
	switch {
	case err == nil:
		s.observeLogin("success")
		s.logger.Info(r.Context(), "Logged in", "username", req.Username)
		writeJSON(w, http.StatusOK, loginResponse{Token: token})
	case errors.Is(err, auth.ErrMissingCredentials):
		s.observeLogin("invalid")
		writeError(w, http.StatusBadRequest, msgCredsRequired)
	case errors.Is(err, common.ErrorUnauthorized):
		s.observeLogin("invalid")
		s.logger.Warn(r.Context(), "Login rejected", "username", req.Username)
		writeError(w, http.StatusUnauthorized, msgBadCredentials)
	default:
		s.observeLogin("error")
		s.logger.Error(r.Context(), "Login error", "error", err)
		writeError(w, http.StatusInternalServerError, msgInternal)
	}
}

func (s *HTTPServer) handleHashPassword(w http.ResponseWriter, r *http.Request) {
	if !s.hashPassword {
		writeError(w, http.StatusNotFound, msgNotFound)
		return
	}

	var req hashRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}
	if req.Password == "" {
		writeError(w, http.StatusBadRequest, msgPasswordNeeded)
		return
	}

	hash, err := hashPasswordFn(req.Password)
	if err != nil {
		s.logger.Error(r.Context(), "hash password", "error", err)
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	writeJSON(w, http.StatusOK, hashResponse{Hash: hash})
}

func (s *HTTPServer) handlePresignedURL(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, msgTokenRequired)
		return
	}

	var req presignRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	authz, err := s.issuer.Issue(r.Context(), req.Filename, principal)
	if err != nil {
		var ve *storage.ValidationError
		if errors.As(err, &ve) {
			writeError(w, http.StatusBadRequest, ve.Reason)
			return
		}
		s.logger.Error(r.Context(), "Presigned URL error", "error", err)
		writeError(w, http.StatusInternalServerError, msgUploadURL)
		return
	}

	writeJSON(w, http.StatusOK, authz)
}

func (s *HTTPServer) observeLogin(outcome string) {
	if s.observer != nil {
		s.observer.ObserveLogin(outcome)
	}
}
