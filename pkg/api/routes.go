// Route registration for the REST API.

package api

import "net/http"

// registerRoutes sets up all API routes.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// Health and state management
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /state/reset", s.handleStateReset)

	// Authentication
	mux.HandleFunc("POST /login", s.handleLogin)

	// User administration
	mux.HandleFunc("GET /users", s.handleListUsers)
	mux.HandleFunc("PUT /users/{id}", s.handleEditUser)
	mux.HandleFunc("POST /users/{id}/password", s.handleChangePassword)

	// Funds and subscriptions
	mux.HandleFunc("GET /funds", s.handleListFunds)
	mux.HandleFunc("POST /users/{id}/subscriptions", s.handleSubscribe)
	mux.HandleFunc("DELETE /users/{id}/subscriptions/{fundId}", s.handleUnsubscribe)

	// Transaction history
	mux.HandleFunc("GET /users/{id}/transactions", s.handleTransactions)
}
