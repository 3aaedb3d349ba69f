package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Saucepai/BotinBlackDashboard/internal/config"
	"github.com/Saucepai/BotinBlackDashboard/internal/economy"
)

type fakeStore struct {
	accounts map[string]*economy.Account

	balanceErr error
	lastField  string
	lastDelta  int64
}

func (f *fakeStore) GetAccount(_ context.Context, userID string) (*economy.Account, error) {
	a, ok := f.accounts[userID]
	if !ok {
		return nil, economy.ErrUserNotFound
	}
	return a, nil
}

func (f *fakeStore) AdjustBalance(_ context.Context, _ economy.Actor, _, userID, field string, delta int64) (economy.BalanceChange, error) {
	if f.balanceErr != nil {
		return economy.BalanceChange{}, f.balanceErr
	}
	a, ok := f.accounts[userID]
	if !ok {
		return economy.BalanceChange{}, economy.ErrUserNotFound
	}
	f.lastField, f.lastDelta = field, delta
	before := a.Cash
	a.Cash += delta
	return economy.BalanceChange{Field: field, Before: before, After: a.Cash}, nil
}

func (f *fakeStore) UpdateInventory(_ context.Context, _ economy.Actor, userID, column, item, action string, qty int) (string, int, error) {
	a, ok := f.accounts[userID]
	if !ok {
		return "", 0, economy.ErrUserNotFound
	}
	raw := a.InventoryColumn(column)
	if action == "remove" {
		updated, removed := economy.RemoveItems(raw, item, qty)
		return updated, removed, nil
	}
	return economy.AddItems(raw, item, qty), qty, nil
}

func (f *fakeStore) GiveProperty(_ context.Context, _ economy.Actor, userID, name, _ string) (*economy.Property, error) {
	if _, ok := f.accounts[userID]; !ok {
		return nil, economy.ErrUserNotFound
	}
	return &economy.Property{Name: name, UserID: userID}, nil
}

func (f *fakeStore) RemoveProperty(_ context.Context, _ economy.Actor, userID, name string) (*economy.Property, error) {
	if _, ok := f.accounts[userID]; !ok {
		return nil, economy.ErrUserNotFound
	}
	return &economy.Property{Name: name}, nil
}

func (f *fakeStore) DeleteProperty(_ context.Context, _ economy.Actor, name string) error {
	if name == "occupied" {
		return economy.ErrStillOwned
	}
	return nil
}

func newTestServer(t *testing.T, store Store) *Server {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	cfg := config.Dashboard{
		SessionSecret: "test-secret",
		PasswordHash:  string(hash),
	}
	return New(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)), store)
}

func login(t *testing.T, srv *Server) *http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(`{"password":"hunter2"}`))
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, want 200; body %s", rec.Code, rec.Body)
	}
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookie {
			return c
		}
	}
	t.Fatalf("login set no session cookie")
	return nil
}

func postJSON(srv *Server, path, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	if cookie != nil {
		req.AddCookie(cookie)
	}
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body, err)
	}
	return out
}

func TestLoginWrongPassword(t *testing.T) {
	srv := newTestServer(t, &fakeStore{})
	rec := postJSON(srv, "/login", `{"password":"wrong"}`, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["success"] != false {
		t.Fatalf("success = %v, want false", body["success"])
	}
}

func TestAuthedRoutesRejectMissingSession(t *testing.T) {
	srv := newTestServer(t, &fakeStore{})
	for _, path := range []string{
		"/api/inventory",
		"/api/admin-inventory-search",
		"/api/users/balance",
		"/api/properties/give",
		"/api/properties/remove",
		"/api/properties/delete",
		"/inventory/update",
	} {
		rec := postJSON(srv, path, `{}`, nil)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s without session: status = %d, want 401", path, rec.Code)
		}
	}
}

func TestBalanceUpdate(t *testing.T) {
	store := &fakeStore{accounts: map[string]*economy.Account{
		"42": {UserID: "42", Cash: 100},
	}}
	srv := newTestServer(t, store)
	cookie := login(t, srv)

	rec := postJSON(srv, "/api/users/balance", `{"userId":"42","field":"Cash","amount":50}`, cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body)
	}
	body := decodeBody(t, rec)
	if body["newBalance"] != float64(150) {
		t.Fatalf("newBalance = %v, want 150", body["newBalance"])
	}
	if store.lastField != "Cash" || store.lastDelta != 50 {
		t.Fatalf("store saw field=%q delta=%d", store.lastField, store.lastDelta)
	}
}

func TestBalanceUpdateUnknownUser(t *testing.T) {
	srv := newTestServer(t, &fakeStore{accounts: map[string]*economy.Account{}})
	cookie := login(t, srv)

	rec := postJSON(srv, "/api/users/balance", `{"userId":"missing","field":"Cash","amount":5}`, cookie)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestBalanceUpdateInvalidField(t *testing.T) {
	store := &fakeStore{
		accounts:   map[string]*economy.Account{"42": {UserID: "42"}},
		balanceErr: economy.ErrInvalidField,
	}
	srv := newTestServer(t, store)
	cookie := login(t, srv)

	rec := postJSON(srv, "/api/users/balance", `{"userId":"42","field":"Luck","amount":5}`, cookie)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestInventoryFetch(t *testing.T) {
	store := &fakeStore{accounts: map[string]*economy.Account{
		"42": {UserID: "42", Cash: 10, Bank: 20, Stash: 5, Horses: "Mustang, Mustang"},
	}}
	srv := newTestServer(t, store)
	cookie := login(t, srv)

	rec := postJSON(srv, "/api/inventory", `{"userId":"42"}`, cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body)
	}
	body := decodeBody(t, rec)
	inv, ok := body["inventory"].(map[string]any)
	if !ok {
		t.Fatalf("missing inventory payload in %s", rec.Body)
	}
	if inv["total"] != float64(35) {
		t.Fatalf("total = %v, want 35", inv["total"])
	}
	horses, ok := inv["horses"].([]any)
	if !ok || len(horses) != 1 {
		t.Fatalf("horses = %v, want one grouped entry", inv["horses"])
	}
}

func TestInventoryUpdateRemove(t *testing.T) {
	store := &fakeStore{accounts: map[string]*economy.Account{
		"42": {UserID: "42", Food: "Bread, Apple, Bread"},
	}}
	srv := newTestServer(t, store)
	cookie := login(t, srv)

	rec := postJSON(srv, "/inventory/update",
		`{"userId":"42","column":"Food","item":"Bread","action":"remove","quantity":1}`, cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body)
	}
	body := decodeBody(t, rec)
	if body["value"] != "Bread, Apple" {
		t.Fatalf("value = %v, want trailing duplicate removed first", body["value"])
	}
}

func TestPropertyDeleteStillOwned(t *testing.T) {
	srv := newTestServer(t, &fakeStore{accounts: map[string]*economy.Account{}})
	cookie := login(t, srv)

	rec := postJSON(srv, "/api/properties/delete", `{"propertyName":"occupied"}`, cookie)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestAuthedRequestRefreshesCookie(t *testing.T) {
	store := &fakeStore{accounts: map[string]*economy.Account{"42": {UserID: "42"}}}
	srv := newTestServer(t, store)
	cookie := login(t, srv)

	rec := postJSON(srv, "/api/inventory", `{"userId":"42"}`, cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var refreshed *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookie {
			refreshed = c
		}
	}
	if refreshed == nil {
		t.Fatalf("authed request did not re-issue the session cookie")
	}
	if refreshed.Value != cookie.Value {
		t.Fatalf("re-issued cookie changed value: %q vs %q", refreshed.Value, cookie.Value)
	}
	if refreshed.MaxAge != int(SessionTTL/time.Second) {
		t.Fatalf("re-issued MaxAge = %d, want %d", refreshed.MaxAge, int(SessionTTL/time.Second))
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	store := &fakeStore{accounts: map[string]*economy.Account{"42": {UserID: "42"}}}
	srv := newTestServer(t, store)
	cookie := login(t, srv)

	rec := postJSON(srv, "/logout", ``, cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("logout status = %d, want 200", rec.Code)
	}
	rec = postJSON(srv, "/api/inventory", `{"userId":"42"}`, cookie)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status after logout = %d, want 401", rec.Code)
	}
}
