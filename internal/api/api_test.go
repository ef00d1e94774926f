package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/splatcrew/splattrack/internal/auth"
	"github.com/splatcrew/splattrack/internal/models"
	"github.com/splatcrew/splattrack/internal/notify"
	"github.com/splatcrew/splattrack/internal/storage/sqlite"
)

type testServer struct {
	router http.Handler
	store  *sqlite.SQLiteStore
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	authenticator := auth.NewPasswordAuthenticator(store)
	jwtManager := auth.NewJWTManager("test-secret-at-least-32-characters!!", time.Hour)
	dispatcher := notify.NewDispatcher(nil, slog.Default())

	h := NewHandler(store, authenticator, jwtManager, dispatcher, "http://localhost:8080")
	return &testServer{
		router: NewRouter(h, jwtManager, store),
		store:  store,
	}
}

func (ts *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
}

// register creates an account through the API and returns its token.
func (ts *testServer) register(t *testing.T, email, name string) string {
	t.Helper()

	rec := ts.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":        email,
		"display_name": name,
		"password":     "correct-horse",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register %s: got status %d, body %s", email, rec.Code, rec.Body.String())
	}

	var resp struct {
		Token string `json:"token"`
	}
	decodeBody(t, rec, &resp)
	return resp.Token
}

// rosterAdmin registers an account and puts the same email on the roster
// with the admin flag, returning the token.
func (ts *testServer) rosterAdmin(t *testing.T, email, name string) string {
	t.Helper()

	token := ts.register(t, email, name)
	err := ts.store.CreatePlayer(t.Context(), &models.Player{
		Name:    name,
		Email:   email,
		IsAdmin: true,
	})
	if err != nil {
		t.Fatalf("failed to roster admin: %v", err)
	}
	return token
}

func TestAuthGating(t *testing.T) {
	ts := newTestServer(t)
	adminToken := ts.rosterAdmin(t, "admin@example.com", "Admin")

	t.Run("no token", func(t *testing.T) {
		rec := ts.do(t, http.MethodGet, "/api/players", "", nil)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("got status %d, want %d", rec.Code, http.StatusUnauthorized)
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		rec := ts.do(t, http.MethodGet, "/api/players", "not.a.token", nil)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("got status %d, want %d", rec.Code, http.StatusUnauthorized)
		}
	})

	t.Run("account not on roster", func(t *testing.T) {
		token := ts.register(t, "stranger@example.com", "Stranger")
		rec := ts.do(t, http.MethodGet, "/api/players", token, nil)
		if rec.Code != http.StatusForbidden {
			t.Errorf("got status %d, want %d", rec.Code, http.StatusForbidden)
		}
	})

	t.Run("roster member can read", func(t *testing.T) {
		token := ts.register(t, "member@example.com", "Member")
		createRec := ts.do(t, http.MethodPost, "/api/players", adminToken, map[string]any{
			"name":  "Member",
			"email": "member@example.com",
		})
		if createRec.Code != http.StatusCreated {
			t.Fatalf("create player: got status %d, body %s", createRec.Code, createRec.Body.String())
		}

		rec := ts.do(t, http.MethodGet, "/api/players", token, nil)
		if rec.Code != http.StatusOK {
			t.Errorf("got status %d, want %d", rec.Code, http.StatusOK)
		}
	})

	t.Run("non-admin cannot write", func(t *testing.T) {
		token := ts.register(t, "grunt@example.com", "Grunt")
		createRec := ts.do(t, http.MethodPost, "/api/players", adminToken, map[string]any{
			"name":  "Grunt",
			"email": "grunt@example.com",
		})
		if createRec.Code != http.StatusCreated {
			t.Fatalf("create player: got status %d", createRec.Code)
		}

		rec := ts.do(t, http.MethodPost, "/api/events", token, map[string]any{
			"type":      "practice",
			"date":      "2026-03-01",
			"cost":      40.0,
			"attendees": []string{"someone"},
		})
		if rec.Code != http.StatusForbidden {
			t.Errorf("got status %d, want %d", rec.Code, http.StatusForbidden)
		}
	})
}

func TestRegisterValidation(t *testing.T) {
	ts := newTestServer(t)

	t.Run("weak password", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
			"email":        "weak@example.com",
			"display_name": "Weak",
			"password":     "short",
		})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("got status %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		ts.register(t, "dupe@example.com", "First")
		rec := ts.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
			"email":        "dupe@example.com",
			"display_name": "Second",
			"password":     "correct-horse",
		})
		if rec.Code != http.StatusConflict {
			t.Errorf("got status %d, want %d", rec.Code, http.StatusConflict)
		}
	})

	t.Run("wrong password on login", func(t *testing.T) {
		ts.register(t, "login@example.com", "Login")
		rec := ts.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
			"email":    "login@example.com",
			"password": "wrong-horse",
		})
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("got status %d, want %d", rec.Code, http.StatusUnauthorized)
		}
	})
}

func TestEventLifecycle(t *testing.T) {
	ts := newTestServer(t)
	token := ts.rosterAdmin(t, "admin@example.com", "Admin")

	t.Run("empty attendees rejected", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/events", token, map[string]any{
			"type":      "practice",
			"date":      "2026-03-01",
			"cost":      40.0,
			"attendees": []string{},
		})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("got status %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})

	t.Run("negative cost rejected", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/events", token, map[string]any{
			"type":      "practice",
			"date":      "2026-03-01",
			"cost":      -5.0,
			"attendees": []string{"p1"},
		})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("got status %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})

	var eventID string
	t.Run("create", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/events", token, map[string]any{
			"type":      "tournament",
			"date":      "2026-03-07",
			"cost":      120.0,
			"attendees": []string{"p1", "p2", "p3"},
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("got status %d, body %s", rec.Code, rec.Body.String())
		}

		var event eventJSON
		decodeBody(t, rec, &event)
		if event.ID == "" {
			t.Error("expected generated event ID")
		}
		if event.Type != "tournament" || len(event.Attendees) != 3 {
			t.Errorf("unexpected event: %+v", event)
		}
		eventID = event.ID
	})

	t.Run("list", func(t *testing.T) {
		rec := ts.do(t, http.MethodGet, "/api/events", token, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("got status %d", rec.Code)
		}

		var resp struct {
			Events []eventJSON `json:"events"`
		}
		decodeBody(t, rec, &resp)
		if len(resp.Events) != 1 || resp.Events[0].ID != eventID {
			t.Errorf("unexpected event list: %+v", resp.Events)
		}
	})

	t.Run("delete", func(t *testing.T) {
		rec := ts.do(t, http.MethodDelete, "/api/events/"+eventID, token, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("got status %d", rec.Code)
		}

		rec = ts.do(t, http.MethodDelete, "/api/events/"+eventID, token, nil)
		if rec.Code != http.StatusNotFound {
			t.Errorf("second delete: got status %d, want %d", rec.Code, http.StatusNotFound)
		}
	})
}

func TestPaymentFlow(t *testing.T) {
	ts := newTestServer(t)
	token := ts.rosterAdmin(t, "admin@example.com", "Admin")

	rec := ts.do(t, http.MethodPost, "/api/players", token, map[string]any{
		"name": "Payer",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create player: got status %d, body %s", rec.Code, rec.Body.String())
	}
	var player playerJSON
	decodeBody(t, rec, &player)

	pay := func(amount float64) *httptest.ResponseRecorder {
		return ts.do(t, http.MethodPost,
			fmt.Sprintf("/api/players/%s/payments", player.ID), token,
			map[string]float64{"amount": amount})
	}

	t.Run("payments accumulate", func(t *testing.T) {
		rec := pay(25)
		if rec.Code != http.StatusOK {
			t.Fatalf("got status %d, body %s", rec.Code, rec.Body.String())
		}
		rec = pay(10.50)
		if rec.Code != http.StatusOK {
			t.Fatalf("got status %d", rec.Code)
		}

		var updated playerJSON
		decodeBody(t, rec, &updated)
		if math.Abs(updated.Paid-35.50) > 1e-9 {
			t.Errorf("got paid %v, want 35.50", updated.Paid)
		}
	})

	t.Run("non-positive amount rejected", func(t *testing.T) {
		for _, amount := range []float64{0, -5} {
			if rec := pay(amount); rec.Code != http.StatusBadRequest {
				t.Errorf("amount %v: got status %d, want %d", amount, rec.Code, http.StatusBadRequest)
			}
		}
	})

	t.Run("unknown player", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/players/nope/payments", token,
			map[string]float64{"amount": 5})
		if rec.Code != http.StatusNotFound {
			t.Errorf("got status %d, want %d", rec.Code, http.StatusNotFound)
		}
	})
}

func TestDraftLifecycle(t *testing.T) {
	ts := newTestServer(t)
	token := ts.rosterAdmin(t, "admin@example.com", "Admin")

	t.Run("no draft yet", func(t *testing.T) {
		rec := ts.do(t, http.MethodGet, "/api/gear/draft", token, nil)
		if rec.Code != http.StatusNotFound {
			t.Errorf("got status %d, want %d", rec.Code, http.StatusNotFound)
		}
	})

	t.Run("commit without draft", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/gear/draft/commit", token, nil)
		if rec.Code != http.StatusNotFound {
			t.Errorf("got status %d, want %d", rec.Code, http.StatusNotFound)
		}
	})

	t.Run("open and stage items", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/gear/draft", token, map[string]string{
			"description": "Spring gear order",
			"date":        "2026-03-10",
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("open draft: got status %d, body %s", rec.Code, rec.Body.String())
		}

		rec = ts.do(t, http.MethodPost, "/api/gear/draft/items", token, map[string]any{
			"description": "Jerseys",
			"cost":        90.0,
			"purchasers":  []string{"p1", "p2", "p3"},
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("append item: got status %d, body %s", rec.Code, rec.Body.String())
		}

		rec = ts.do(t, http.MethodPost, "/api/gear/draft/items", token, map[string]any{
			"description": "Pods",
			"cost":        30.0,
			"purchasers":  []string{"p1"},
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("append item: got status %d", rec.Code)
		}

		var draft draftJSON
		decodeBody(t, rec, &draft)
		if len(draft.LineItems) != 2 {
			t.Fatalf("got %d staged items, want 2", len(draft.LineItems))
		}
	})

	t.Run("invalid item leaves draft intact", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/gear/draft/items", token, map[string]any{
			"description": "Mystery",
			"cost":        10.0,
			"purchasers":  []string{},
		})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("got status %d, want %d", rec.Code, http.StatusBadRequest)
		}

		rec = ts.do(t, http.MethodGet, "/api/gear/draft", token, nil)
		var draft draftJSON
		decodeBody(t, rec, &draft)
		if len(draft.LineItems) != 2 {
			t.Errorf("got %d staged items after rejected append, want 2", len(draft.LineItems))
		}
	})

	t.Run("commit persists as one order", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/gear/draft/commit", token, nil)
		if rec.Code != http.StatusCreated {
			t.Fatalf("commit: got status %d, body %s", rec.Code, rec.Body.String())
		}

		var order gearOrderJSON
		decodeBody(t, rec, &order)
		if math.Abs(order.Total-120.0) > 1e-9 {
			t.Errorf("got total %v, want 120", order.Total)
		}
		if len(order.LineItems) != 2 {
			t.Errorf("got %d items, want 2", len(order.LineItems))
		}

		// The draft is consumed.
		rec = ts.do(t, http.MethodGet, "/api/gear/draft", token, nil)
		if rec.Code != http.StatusNotFound {
			t.Errorf("draft after commit: got status %d, want %d", rec.Code, http.StatusNotFound)
		}

		rec = ts.do(t, http.MethodGet, "/api/gear", token, nil)
		var resp struct {
			Orders []gearOrderJSON `json:"orders"`
		}
		decodeBody(t, rec, &resp)
		if len(resp.Orders) != 1 || resp.Orders[0].ID != order.ID {
			t.Errorf("unexpected order list: %+v", resp.Orders)
		}
	})

	t.Run("discard", func(t *testing.T) {
		ts.do(t, http.MethodPost, "/api/gear/draft", token, map[string]string{
			"description": "Scrapped order",
			"date":        "2026-03-11",
		})
		rec := ts.do(t, http.MethodDelete, "/api/gear/draft", token, nil)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("discard: got status %d", rec.Code)
		}

		rec = ts.do(t, http.MethodGet, "/api/gear/draft", token, nil)
		if rec.Code != http.StatusNotFound {
			t.Errorf("draft after discard: got status %d, want %d", rec.Code, http.StatusNotFound)
		}
	})
}

func TestSummary(t *testing.T) {
	ts := newTestServer(t)
	token := ts.rosterAdmin(t, "admin@example.com", "Admin")

	createPlayer := func(name string) playerJSON {
		rec := ts.do(t, http.MethodPost, "/api/players", token, map[string]any{"name": name})
		if rec.Code != http.StatusCreated {
			t.Fatalf("create player %s: got status %d", name, rec.Code)
		}
		var p playerJSON
		decodeBody(t, rec, &p)
		return p
	}
	alice := createPlayer("Alice")
	bob := createPlayer("Bob")

	// Event split two ways, gear item carried by Alice alone.
	rec := ts.do(t, http.MethodPost, "/api/events", token, map[string]any{
		"type":      "practice",
		"date":      "2026-04-04",
		"cost":      50.0,
		"attendees": []string{alice.ID, bob.ID},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create event: got status %d", rec.Code)
	}

	ts.do(t, http.MethodPost, "/api/gear/draft", token, map[string]string{
		"description": "Barrel swap", "date": "2026-04-05",
	})
	ts.do(t, http.MethodPost, "/api/gear/draft/items", token, map[string]any{
		"description": "Barrel", "cost": 30.0, "purchasers": []string{alice.ID},
	})
	if rec := ts.do(t, http.MethodPost, "/api/gear/draft/commit", token, nil); rec.Code != http.StatusCreated {
		t.Fatalf("commit draft: got status %d", rec.Code)
	}

	if rec := ts.do(t, http.MethodPost,
		fmt.Sprintf("/api/players/%s/payments", alice.ID), token,
		map[string]float64{"amount": 55}); rec.Code != http.StatusOK {
		t.Fatalf("record payment: got status %d", rec.Code)
	}

	rec = ts.do(t, http.MethodGet, "/api/summary", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("summary: got status %d, body %s", rec.Code, rec.Body.String())
	}

	var resp summaryResponse
	decodeBody(t, rec, &resp)

	rows := make(map[string]summaryRowJSON)
	for _, row := range resp.Players {
		rows[row.PlayerID] = row
	}

	aliceRow := rows[alice.ID]
	if math.Abs(aliceRow.Share-55) > 1e-9 || math.Abs(aliceRow.Balance-0) > 1e-9 {
		t.Errorf("alice: got share %v balance %v, want 55 and 0", aliceRow.Share, aliceRow.Balance)
	}
	if aliceRow.Status != "Paid" {
		t.Errorf("alice: got status %q, want %q", aliceRow.Status, "Paid")
	}

	bobRow := rows[bob.ID]
	if math.Abs(bobRow.Share-25) > 1e-9 || math.Abs(bobRow.Balance-25) > 1e-9 {
		t.Errorf("bob: got share %v balance %v, want 25 and 25", bobRow.Share, bobRow.Balance)
	}
	if bobRow.Status != "Owes $25.00" {
		t.Errorf("bob: got status %q, want %q", bobRow.Status, "Owes $25.00")
	}

	if math.Abs(resp.TotalExpenses-80) > 1e-9 {
		t.Errorf("got total expenses %v, want 80", resp.TotalExpenses)
	}
	if math.Abs(resp.TotalCollected-55) > 1e-9 {
		t.Errorf("got total collected %v, want 55", resp.TotalCollected)
	}
	if math.Abs(resp.TotalOutstanding-25) > 1e-9 {
		t.Errorf("got total outstanding %v, want 25", resp.TotalOutstanding)
	}
}
