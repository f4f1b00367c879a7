package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/matchday-tickets/internal/auth"
	"github.com/iliyamo/matchday-tickets/internal/booking"
	"github.com/iliyamo/matchday-tickets/internal/catalog"
	"github.com/iliyamo/matchday-tickets/internal/clock"
	"github.com/iliyamo/matchday-tickets/internal/config"
	"github.com/iliyamo/matchday-tickets/internal/handler"
	"github.com/iliyamo/matchday-tickets/internal/kv"
	"github.com/iliyamo/matchday-tickets/internal/middleware"
	"github.com/iliyamo/matchday-tickets/internal/model"
	"github.com/iliyamo/matchday-tickets/internal/queue"
	"github.com/iliyamo/matchday-tickets/internal/session"
	"github.com/iliyamo/matchday-tickets/internal/utils"
)

type recordingNotifier struct {
	events chan queue.BookingConfirmedEvent
}

func (n *recordingNotifier) PublishBookingConfirmed(_ context.Context, ev queue.BookingConfirmedEvent) error {
	n.events <- ev
	return nil
}

type testApp struct {
	e        *echo.Echo
	deps     Deps
	notifier *recordingNotifier
	devices  map[string]string // token -> device it signed in on
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	now := clock.NewFixed(time.Date(2026, 2, 18, 12, 0, 0, 0, time.UTC))
	notifier := &recordingNotifier{events: make(chan queue.BookingConfirmedEvent, 4)}
	deps := Deps{
		Users:       kv.NewMemory(),
		Events:      catalog.NewEvents(catalog.MockEvents()),
		Layouts:     catalog.NewLayouts(catalog.DefaultSections()),
		Menu:        catalog.NewMenu(catalog.MockMenu()),
		Sessions:    session.NewRegistry(booking.WithClock(now)),
		AuthOpts:    []auth.Option{auth.WithBcryptCost(4)},
		BookingOpts: []handler.BookingOption{handler.WithHandlerClock(now), handler.WithNotifier(notifier)},
	}
	cfg := config.Config{Env: "test", JWTSecret: "test-secret", AccessTTLMin: 5, BcryptCost: 4}
	return &testApp{e: New(cfg, deps), deps: deps, notifier: notifier, devices: map[string]string{}}
}

func (a *testApp) do(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	req.Header.Set(middleware.DeviceHeader, a.devices[token])
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) login(t *testing.T, device, email string) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", strings.NewReader(`{"email":"`+email+`","password":"pw"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(middleware.DeviceHeader, device)
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("login %s: status %d: %s", email, rec.Code, rec.Body.String())
	}
	var resp struct {
		User   model.User `json:"user"`
		Access struct {
			Token string `json:"token"`
		} `json:"access"`
	}
	decode(t, rec, &resp)
	if resp.User.Email != email || resp.Access.Token == "" {
		t.Fatalf("unexpected login response %s", rec.Body.String())
	}
	a.devices[resp.Access.Token] = device
	return resp.Access.Token
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d: %s", rec.Code, want, rec.Body.String())
	}
}

func TestPublicCatalog(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	rec := httptest.NewRecorder()
	app.e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	expectStatus(t, rec, http.StatusOK)

	tests := []struct {
		path  string
		count int
	}{
		{"/v1/events", 5},
		{"/v1/events?category=football", 3},
		{"/v1/events?q=garden", 1},
		{"/v1/events/featured", 3},
		{"/v1/menu", 10},
		{"/v1/menu?category=drinks", 3},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		app.e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
		expectStatus(t, rec, http.StatusOK)
		var body struct {
			Count int `json:"count"`
		}
		decode(t, rec, &body)
		if body.Count != tt.count {
			t.Fatalf("%s: count = %d, want %d", tt.path, body.Count, tt.count)
		}
	}

	rec = httptest.NewRecorder()
	app.e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/events/3/seats", nil))
	expectStatus(t, rec, http.StatusOK)
	var seats struct {
		Rows  []catalog.Row `json:"rows"`
		Total int           `json:"total"`
	}
	decode(t, rec, &seats)
	if seats.Total != 185 || len(seats.Rows) != 13 || seats.Rows[0].Label != "A" {
		t.Fatalf("unexpected seat map: total=%d rows=%d", seats.Total, len(seats.Rows))
	}

	rec = httptest.NewRecorder()
	app.e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/events/nope", nil))
	expectStatus(t, rec, http.StatusNotFound)
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	for _, path := range []string{"/v1/me", "/v1/session", "/v1/bookings", "/v1/admin/dashboard"} {
		rec := httptest.NewRecorder()
		app.e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		expectStatus(t, rec, http.StatusUnauthorized)
	}

	// A valid token without an open session must sign in again.
	tok, err := utils.NewAccessToken("test-secret", "ghost", model.RoleUser, 5)
	if err != nil {
		t.Fatal(err)
	}
	expectStatus(t, app.do(t, http.MethodGet, "/v1/session", "", tok.Token), http.StatusUnauthorized)
}

func availableSeats(layout []model.Seat, booked bool) []model.Seat {
	var out []model.Seat
	for _, s := range layout {
		if s.Available() != booked {
			out = append(out, s)
		}
	}
	return out
}

func TestBookingFlow(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)
	tok := app.login(t, "phone-1", "fan@arena.io")

	// Seats cannot be picked before an event.
	expectStatus(t, app.do(t, http.MethodPost, "/v1/session/seats/A1/toggle", "", tok), http.StatusConflict)
	expectStatus(t, app.do(t, http.MethodPost, "/v1/session/event", `{"event_id":"404"}`, tok), http.StatusNotFound)
	expectStatus(t, app.do(t, http.MethodPost, "/v1/session/event", `{"event_id":"2"}`, tok), http.StatusOK)

	layout := app.deps.Layouts.For("2")
	free := availableSeats(layout, false)
	taken := availableSeats(layout, true)
	if len(free) < booking.MaxSeats+1 || len(taken) == 0 {
		t.Fatalf("layout too skewed for the test: %d free, %d booked", len(free), len(taken))
	}

	expectStatus(t, app.do(t, http.MethodPost, "/v1/session/seats/"+taken[0].ID+"/toggle", "", tok), http.StatusConflict)
	expectStatus(t, app.do(t, http.MethodPost, "/v1/session/seats/Z99/toggle", "", tok), http.StatusNotFound)

	for _, s := range free[:booking.MaxSeats] {
		expectStatus(t, app.do(t, http.MethodPost, "/v1/session/seats/"+s.ID+"/toggle", "", tok), http.StatusOK)
	}
	expectStatus(t, app.do(t, http.MethodPost, "/v1/session/seats/"+free[booking.MaxSeats].ID+"/toggle", "", tok), http.StatusConflict)

	// Deselecting works at the limit.
	rec := app.do(t, http.MethodPost, "/v1/session/seats/"+free[0].ID+"/toggle", "", tok)
	expectStatus(t, rec, http.StatusOK)
	var toggled struct {
		Selected bool `json:"selected"`
	}
	decode(t, rec, &toggled)
	if toggled.Selected {
		t.Fatal("expected seat to be deselected")
	}

	expectStatus(t, app.do(t, http.MethodDelete, "/v1/session/seats", "", tok), http.StatusOK)
	rec = app.do(t, http.MethodPost, "/v1/session/seats/random", "", tok)
	expectStatus(t, rec, http.StatusOK)
	var view struct {
		Seats []model.Seat `json:"seats"`
	}
	decode(t, rec, &view)
	if len(view.Seats) != catalog.RandomPickSize {
		t.Fatalf("random pick gave %d seats", len(view.Seats))
	}
	for _, s := range view.Seats {
		if !s.Available() {
			t.Fatalf("random pick chose booked seat %s", s.ID)
		}
	}

	expectStatus(t, app.do(t, http.MethodDelete, "/v1/session/seats", "", tok), http.StatusOK)
	expectStatus(t, app.do(t, http.MethodPost, "/v1/session/seats/"+free[0].ID+"/toggle", "", tok), http.StatusOK)
	expectStatus(t, app.do(t, http.MethodPost, "/v1/session/seats/"+free[1].ID+"/toggle", "", tok), http.StatusOK)

	expectStatus(t, app.do(t, http.MethodPost, "/v1/session/food", `{"item_id":"1","quantity":2}`, tok), http.StatusOK)
	expectStatus(t, app.do(t, http.MethodPost, "/v1/session/food", `{"item_id":"5"}`, tok), http.StatusOK)
	expectStatus(t, app.do(t, http.MethodPost, "/v1/session/food", `{"item_id":"99"}`, tok), http.StatusNotFound)
	expectStatus(t, app.do(t, http.MethodPut, "/v1/session/food/1", `{"quantity":3}`, tok), http.StatusOK)
	expectStatus(t, app.do(t, http.MethodDelete, "/v1/session/food/5", "", tok), http.StatusOK)

	rec = app.do(t, http.MethodGet, "/v1/session/summary", "", tok)
	expectStatus(t, rec, http.StatusOK)
	var sum booking.Summary
	decode(t, rec, &sum)
	wantTotal := free[0].PriceCents + free[1].PriceCents + 3*1299
	if sum.SeatCount != 2 || sum.TotalCents != wantTotal || sum.GrandTotalCents != wantTotal+booking.ServiceFee(wantTotal) {
		t.Fatalf("unexpected summary %+v, want total %d", sum, wantTotal)
	}

	rec = app.do(t, http.MethodPost, "/v1/session/confirm", "", tok)
	expectStatus(t, rec, http.StatusCreated)
	var confirmed model.Booking
	decode(t, rec, &confirmed)
	if confirmed.TotalCents != wantTotal || confirmed.Status != model.BookingConfirmed || len(confirmed.FoodOrders) != 1 {
		t.Fatalf("unexpected booking %+v", confirmed)
	}

	select {
	case ev := <-app.notifier.events:
		if ev.BookingID != confirmed.ID || ev.EventID != "2" {
			t.Fatalf("unexpected published event %+v", ev)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("booking was not published")
	}

	// The session is reset after confirming.
	expectStatus(t, app.do(t, http.MethodPost, "/v1/session/confirm", "", tok), http.StatusBadRequest)

	countTab := func(tab string) int {
		rec := app.do(t, http.MethodGet, "/v1/bookings?tab="+tab, "", tok)
		expectStatus(t, rec, http.StatusOK)
		var body struct {
			Count int `json:"count"`
		}
		decode(t, rec, &body)
		return body.Count
	}
	if countTab("upcoming") != 1 || countTab("past") != 0 || countTab("cancelled") != 0 {
		t.Fatal("unexpected tab counts before cancel")
	}
	expectStatus(t, app.do(t, http.MethodGet, "/v1/bookings?tab=soon", "", tok), http.StatusBadRequest)

	rec = app.do(t, http.MethodGet, "/v1/bookings/"+confirmed.ID+"/ticket.pdf", "", tok)
	expectStatus(t, rec, http.StatusOK)
	if ct := rec.Header().Get(echo.HeaderContentType); ct != "application/pdf" {
		t.Fatalf("content type = %q", ct)
	}

	expectStatus(t, app.do(t, http.MethodPost, "/v1/bookings/"+confirmed.ID+"/cancel", "", tok), http.StatusOK)
	expectStatus(t, app.do(t, http.MethodPost, "/v1/bookings/unknown/cancel", "", tok), http.StatusNotFound)
	if countTab("upcoming") != 0 || countTab("cancelled") != 1 {
		t.Fatal("unexpected tab counts after cancel")
	}

	expectStatus(t, app.do(t, http.MethodGet, "/v1/admin/dashboard", "", tok), http.StatusForbidden)

	admin := app.login(t, "tablet-1", "admin@arena.io")
	rec = app.do(t, http.MethodGet, "/v1/admin/dashboard", "", admin)
	expectStatus(t, rec, http.StatusOK)
	var stats session.Stats
	decode(t, rec, &stats)
	if stats.TotalBookings != 1 || stats.Cancellations != 1 || stats.RevenueCents != 0 || stats.OpenSessions != 2 || stats.ActiveEvents != 5 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	if len(stats.RecentBookings) != 1 || stats.RecentBookings[0].Booking.ID != confirmed.ID || stats.RecentBookings[0].Booking.Status != model.BookingCancelled {
		t.Fatalf("unexpected recent bookings %+v", stats.RecentBookings)
	}

	expectStatus(t, app.do(t, http.MethodPost, "/v1/auth/logout", "", tok), http.StatusNoContent)
	expectStatus(t, app.do(t, http.MethodGet, "/v1/session", "", tok), http.StatusUnauthorized)
}

func TestAdminEvents(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)
	admin := app.login(t, "tablet-1", "admin@arena.io")

	rec := app.do(t, http.MethodPost, "/v1/admin/events",
		`{"title":"Cup Final","venue":"Wembley","starts_at":"2026-05-20T19:00:00Z","category":"Football","min_price_cents":4500,"max_price_cents":25000}`, admin)
	expectStatus(t, rec, http.StatusCreated)
	var ev model.Event
	decode(t, rec, &ev)
	if ev.ID == "" || ev.Status != model.EventDraft {
		t.Fatalf("unexpected created event %+v", ev)
	}

	expectStatus(t, app.do(t, http.MethodPost, "/v1/admin/events", `{"title":"No venue"}`, admin), http.StatusBadRequest)
	expectStatus(t, app.do(t, http.MethodGet, "/v1/admin/events?status=bogus", "", admin), http.StatusBadRequest)

	rec = app.do(t, http.MethodGet, "/v1/admin/events?status=draft", "", admin)
	expectStatus(t, rec, http.StatusOK)
	var list struct {
		Count int `json:"count"`
	}
	decode(t, rec, &list)
	if list.Count != 1 {
		t.Fatalf("draft count = %d, want 1", list.Count)
	}

	// Drafts are not public and cannot be booked.
	rec = httptest.NewRecorder()
	app.e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/events?q=wembley", nil))
	decode(t, rec, &list)
	if list.Count != 0 {
		t.Fatal("draft event leaked into the public list")
	}
	expectStatus(t, app.do(t, http.MethodPost, "/v1/session/event", `{"event_id":"`+ev.ID+`"}`, admin), http.StatusConflict)

	expectStatus(t, app.do(t, http.MethodDelete, "/v1/admin/events/"+ev.ID, "", admin), http.StatusNoContent)
	expectStatus(t, app.do(t, http.MethodDelete, "/v1/admin/events/"+ev.ID, "", admin), http.StatusNotFound)
}

func TestProfile(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/register",
		strings.NewReader(`{"name":"Jane Fan","email":"jane@arena.io","password":"s3cret","phone":"+1 555 0100"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(middleware.DeviceHeader, "phone-9")
	rec := httptest.NewRecorder()
	app.e.ServeHTTP(rec, req)
	expectStatus(t, rec, http.StatusCreated)
	if strings.Contains(rec.Body.String(), "password_hash") {
		t.Fatal("password hash leaked in register response")
	}
	var reg struct {
		Access struct {
			Token string `json:"token"`
		} `json:"access"`
	}
	decode(t, rec, &reg)

	call := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+reg.Access.Token)
		req.Header.Set(middleware.DeviceHeader, "phone-9")
		rec := httptest.NewRecorder()
		app.e.ServeHTTP(rec, req)
		return rec
	}

	rec = call(http.MethodPatch, "/v1/me", `{"name":"Jane Q. Fan"}`)
	expectStatus(t, rec, http.StatusOK)
	rec = call(http.MethodGet, "/v1/me", "")
	expectStatus(t, rec, http.StatusOK)
	var me model.User
	decode(t, rec, &me)
	if me.Name != "Jane Q. Fan" || me.Phone == nil || *me.Phone != "+1 555 0100" || me.PasswordHash != "" {
		t.Fatalf("unexpected profile %+v", me)
	}

	// Wrong password for the registered email on this device.
	req = httptest.NewRequest(http.MethodPost, "/v1/auth/login", strings.NewReader(`{"email":"jane@arena.io","password":"nope"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(middleware.DeviceHeader, "phone-9")
	rec = httptest.NewRecorder()
	app.e.ServeHTTP(rec, req)
	expectStatus(t, rec, http.StatusUnauthorized)
}

func TestRepeatedLoginKeepsSession(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	me := func(tok string) model.User {
		t.Helper()
		rec := app.do(t, http.MethodGet, "/v1/me", "", tok)
		expectStatus(t, rec, http.StatusOK)
		var u model.User
		decode(t, rec, &u)
		return u
	}

	first := app.login(t, "phone-1", "fan@arena.io")
	firstID := me(first).ID
	expectStatus(t, app.do(t, http.MethodPost, "/v1/session/event", `{"event_id":"2"}`, first), http.StatusOK)

	again := app.login(t, "phone-1", "fan@arena.io")
	if id := me(again).ID; id != firstID {
		t.Fatalf("expected the same user id on a repeated login, got %s and %s", firstID, id)
	}
	rec := app.do(t, http.MethodGet, "/v1/session", "", again)
	expectStatus(t, rec, http.StatusOK)
	var view struct {
		Event *model.Event `json:"event"`
	}
	decode(t, rec, &view)
	if view.Event == nil || view.Event.ID != "2" {
		t.Fatalf("expected the open session to survive, got %s", rec.Body.String())
	}
	if n := len(app.deps.Sessions.All()); n != 1 {
		t.Fatalf("expected 1 open session, got %d", n)
	}

	// Another email on the same device replaces the record and closes
	// the previous user's session.
	other := app.login(t, "phone-1", "bob@arena.io")
	if me(other).ID == firstID {
		t.Fatal("expected a new user id for a different email")
	}
	if _, ok := app.deps.Sessions.Get(firstID); ok {
		t.Fatal("expected the replaced user's session to be closed")
	}
	if n := len(app.deps.Sessions.All()); n != 1 {
		t.Fatalf("expected 1 open session, got %d", n)
	}
}
