// Package dashboard is the companion web admin surface: a password
// login behind a rolling cookie session, and JSON routes mirroring the
// bot's admin operations.
package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/crypto/bcrypt"

	"github.com/Saucepai/BotinBlackDashboard/internal/config"
	"github.com/Saucepai/BotinBlackDashboard/internal/economy"
)

const sessionCookie = "bot-dashboard"

// Store is the slice of the economy service the dashboard drives.
type Store interface {
	GetAccount(ctx context.Context, userID string) (*economy.Account, error)
	AdjustBalance(ctx context.Context, actor economy.Actor, command, userID, field string, delta int64) (economy.BalanceChange, error)
	UpdateInventory(ctx context.Context, actor economy.Actor, userID, column, item, action string, qty int) (string, int, error)
	GiveProperty(ctx context.Context, actor economy.Actor, userID, name, adminTag string) (*economy.Property, error)
	RemoveProperty(ctx context.Context, actor economy.Actor, userID, name string) (*economy.Property, error)
	DeleteProperty(ctx context.Context, actor economy.Actor, name string) error
}

// Server is the dashboard HTTP surface.
type Server struct {
	cfg      config.Dashboard
	log      *slog.Logger
	store    Store
	sessions *SessionStore
	mux      *chi.Mux
}

func New(cfg config.Dashboard, logger *slog.Logger, store Store) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		cfg:      cfg,
		log:      logger,
		store:    store,
		sessions: NewSessionStore(cfg.SessionSecret, SessionTTL),
	}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	r.Post("/login", s.handleLogin)
	r.Post("/logout", s.handleLogout)

	r.Group(func(r chi.Router) {
		r.Use(s.requireSession)
		r.Post("/api/inventory", s.handleInventory)
		r.Post("/api/admin-inventory-search", s.handleInventorySearch)
		r.Post("/api/users/balance", s.handleBalance)
		r.Post("/api/properties/give", s.handlePropertyGive)
		r.Post("/api/properties/remove", s.handlePropertyRemove)
		r.Post("/api/properties/delete", s.handlePropertyDelete)
		r.Post("/inventory/update", s.handleInventoryUpdate)
	})

	s.mux = r
}

func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(sessionCookie)
		if err != nil || !s.sessions.Validate(c.Value) {
			writeFailure(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		// Validate rolled the server-side deadline; push the browser's
		// copy out too or it drops the cookie mid-session.
		s.setSessionCookie(w, c.Value)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) setSessionCookie(w http.ResponseWriter, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(SessionTTL / time.Second),
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeFailure(w, http.StatusBadRequest, err.Error())
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(s.cfg.PasswordHash), []byte(in.Password)) != nil {
		writeFailure(w, http.StatusUnauthorized, "Invalid password")
		return
	}
	s.setSessionCookie(w, s.sessions.Issue())
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(sessionCookie); err == nil {
		s.sessions.Revoke(c.Value)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) handleInventory(w http.ResponseWriter, r *http.Request) {
	var in struct {
		UserID string `json:"userId"`
	}
	if err := decodeJSON(r, &in); err != nil || strings.TrimSpace(in.UserID) == "" {
		writeFailure(w, http.StatusBadRequest, "Missing userId")
		return
	}
	a, err := s.store.GetAccount(r.Context(), in.UserID)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"inventory": inventoryPayload(economy.BuildInventoryView(a)),
	})
}

func (s *Server) handleInventorySearch(w http.ResponseWriter, r *http.Request) {
	var in struct {
		UserID string `json:"userId"`
	}
	if err := decodeJSON(r, &in); err != nil || strings.TrimSpace(in.UserID) == "" {
		writeFailure(w, http.StatusBadRequest, "Missing userId")
		return
	}
	a, err := s.store.GetAccount(r.Context(), in.UserID)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"user":    accountPayload(a),
	})
}

func (s *Server) handleBalance(w http.ResponseWriter, r *http.Request) {
	var in struct {
		UserID string `json:"userId"`
		Field  string `json:"field"`
		Amount int64  `json:"amount"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeFailure(w, http.StatusBadRequest, err.Error())
		return
	}
	change, err := s.store.AdjustBalance(r.Context(), dashboardActor(), "update-balance", in.UserID, in.Field, in.Amount)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"newBalance": change.After,
	})
}

func (s *Server) handlePropertyGive(w http.ResponseWriter, r *http.Request) {
	var in struct {
		UserID       string `json:"userId"`
		PropertyName string `json:"propertyName"`
		AdminTag     string `json:"adminTag"`
	}
	if err := decodeJSON(r, &in); err != nil || in.UserID == "" || in.PropertyName == "" {
		writeFailure(w, http.StatusBadRequest, "Missing userId or propertyName")
		return
	}
	p, err := s.store.GiveProperty(r.Context(), dashboardActor(), in.UserID, in.PropertyName, in.AdminTag)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Property \"" + p.Name + "\" given to user " + in.UserID,
	})
}

func (s *Server) handlePropertyRemove(w http.ResponseWriter, r *http.Request) {
	var in struct {
		UserID       string `json:"userId"`
		PropertyName string `json:"propertyName"`
	}
	if err := decodeJSON(r, &in); err != nil || in.UserID == "" || in.PropertyName == "" {
		writeFailure(w, http.StatusBadRequest, "Missing userId or propertyName")
		return
	}
	p, err := s.store.RemoveProperty(r.Context(), dashboardActor(), in.UserID, in.PropertyName)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Property \"" + p.Name + "\" removed from user " + in.UserID,
	})
}

func (s *Server) handlePropertyDelete(w http.ResponseWriter, r *http.Request) {
	var in struct {
		PropertyName string `json:"propertyName"`
	}
	if err := decodeJSON(r, &in); err != nil || in.PropertyName == "" {
		writeFailure(w, http.StatusBadRequest, "Missing propertyName")
		return
	}
	if err := s.store.DeleteProperty(r.Context(), dashboardActor(), in.PropertyName); err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Property \"" + in.PropertyName + "\" deleted",
	})
}

func (s *Server) handleInventoryUpdate(w http.ResponseWriter, r *http.Request) {
	var in struct {
		UserID   string `json:"userId"`
		Column   string `json:"column"`
		Item     string `json:"item"`
		Action   string `json:"action"`
		Quantity int    `json:"quantity"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeFailure(w, http.StatusBadRequest, err.Error())
		return
	}
	if in.UserID == "" || in.Column == "" || in.Item == "" || in.Action == "" {
		writeFailure(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	if in.Quantity == 0 {
		in.Quantity = 1
	}
	updated, _, err := s.store.UpdateInventory(r.Context(), dashboardActor(), in.UserID, in.Column, in.Item, in.Action, in.Quantity)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"column":  in.Column,
		"value":   updated,
	})
}

func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, economy.ErrUserNotFound),
		errors.Is(err, economy.ErrPropertyNotFound),
		errors.Is(err, economy.ErrItemNotFound):
		writeFailure(w, http.StatusNotFound, err.Error())
	case errors.Is(err, economy.ErrInsufficientFunds),
		errors.Is(err, economy.ErrInsufficientFines),
		errors.Is(err, economy.ErrInsufficientItems),
		errors.Is(err, economy.ErrAlreadyOwned),
		errors.Is(err, economy.ErrNotOwner),
		errors.Is(err, economy.ErrStillOwned),
		errors.Is(err, economy.ErrLimitExceeded),
		errors.Is(err, economy.ErrInvalidField),
		errors.Is(err, economy.ErrInvalidColumn):
		writeFailure(w, http.StatusBadRequest, err.Error())
	default:
		s.log.Error("dashboard request failed", "err", err)
		writeFailure(w, http.StatusInternalServerError, "Something went wrong")
	}
}

func dashboardActor() economy.Actor {
	return economy.Actor{
		ID:       "dashboard",
		Username: "Dashboard Admin",
		Source:   "Dashboard",
	}
}

func decodeJSON(r *http.Request, out any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(out)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeFailure(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"success": false, "message": message})
}
