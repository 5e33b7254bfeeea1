package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/getfondo/fondod/pkg/fund"
	"github.com/getfondo/fondod/pkg/service"
)

// ErrorResponse is the JSON body of every error reply.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string `json:"status"`
	Uptime int64  `json:"uptime"`
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, errCode, message string) {
	writeJSON(w, status, ErrorResponse{Error: errCode, Message: message})
}

// writeServiceError maps a domain error to its HTTP reply. Errors that
// carry no status code are internal.
func writeServiceError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	var sce service.StatusCodeError
	if errors.As(err, &sce) {
		status = sce.StatusCode()
	}
	writeError(w, status, errorCode(err), err.Error())
}

// errorCode names the error class for machine consumption.
func errorCode(err error) string {
	switch err.(type) {
	case *service.InvalidCredentialsError:
		return "invalid_credentials"
	case *service.NotFoundError:
		return "not_found"
	case *service.ValidationError:
		return "invalid_request"
	case *service.MinimumAmountError:
		return "below_minimum"
	case *service.InsufficientBalanceError:
		return "insufficient_balance"
	case *service.AlreadySubscribedError:
		return "already_subscribed"
	case *service.NotSubscribedError:
		return "not_subscribed"
	default:
		return "internal_error"
	}
}

// handleHealth handles GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Uptime: s.Uptime()})
}

// handleStateReset handles POST /state/reset: the document is rewritten
// from the seed dataset.
func (s *Server) handleStateReset(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Reset(); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"reset":   true,
		"message": "State reset to seed data",
	})
}

// handleLogin handles POST /login.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body is not valid JSON")
		return
	}

	u, err := s.svc.Login(req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// handleListUsers handles GET /users.
func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.svc.ListUsers()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// handleEditUser handles PUT /users/{id}. Only name, email, and phone are
// editable; the path ID wins over any ID in the body.
func (s *Server) handleEditUser(w http.ResponseWriter, r *http.Request) {
	var u fund.User
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body is not valid JSON")
		return
	}
	u.ID = r.PathValue("id")

	if err := s.svc.EditUser(u); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// handleChangePassword handles POST /users/{id}/password.
func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		NewPassword string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body is not valid JSON")
		return
	}

	if err := s.svc.ChangePassword(r.PathValue("id"), req.NewPassword); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// handleListFunds handles GET /funds.
func (s *Server) handleListFunds(w http.ResponseWriter, r *http.Request) {
	funds, err := s.svc.ListFunds()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, funds)
}

// handleSubscribe handles POST /users/{id}/subscriptions. On success the
// recorded notification is dispatched in the background; delivery
// failures are logged, never surfaced.
func (s *Server) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FundID       string `json:"fundId"`
		Amount       int64  `json:"amount"`
		NotifyMethod string `json:"notifyMethod"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body is not valid JSON")
		return
	}

	res, err := s.svc.Subscribe(r.PathValue("id"), req.FundID, req.Amount, req.NotifyMethod)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	s.dispatchNotification()
	writeJSON(w, http.StatusOK, res)
}

// handleUnsubscribe handles DELETE /users/{id}/subscriptions/{fundId}.
func (s *Server) handleUnsubscribe(w http.ResponseWriter, r *http.Request) {
	res, err := s.svc.Unsubscribe(r.PathValue("id"), r.PathValue("fundId"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// handleTransactions handles GET /users/{id}/transactions. page and limit
// query parameters that are missing or unparseable fall back to their
// defaults; the service normalizes out-of-range values.
func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", service.DefaultPageLimit)

	res, err := s.svc.TransactionsForUser(r.PathValue("id"), page, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// queryInt reads an integer query parameter, falling back on absence or
// garbage.
func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

// dispatchNotification sends the most recent subscription notification
// through the notifier, fire-and-forget.
func (s *Server) dispatchNotification() {
	n, err := s.svc.LastNotification()
	if err != nil || n == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := s.notifier.Send(ctx, n.To, "Confirmación de suscripción", n.Message); err != nil {
			s.log.Warn("notification dispatch failed", "to", n.To, "method", n.Method, "error", err)
		}
	}()
}
