package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/crewapp/crew-scheduler/internal/dateutil"
	domain "github.com/crewapp/crew-scheduler/internal/domain/dayoff"
	"github.com/crewapp/crew-scheduler/internal/models"
)

func TestCreateDayOffWireFormat(t *testing.T) {
	var got DayOffPayload
	var gotAuth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/user/dayoff" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode body: %v", err)
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.DayOff{ID: 42, InitHour: got.InitHour, EndHour: got.EndHour})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok123", zap.NewNop())

	init, err := dateutil.CombineLocal("2024-03-15", "08:00")
	if err != nil {
		t.Fatalf("CombineLocal: %v", err)
	}
	end, err := dateutil.CombineLocal("2024-03-15", "18:00")
	if err != nil {
		t.Fatalf("CombineLocal: %v", err)
	}

	created, err := c.CreateDayOff(DayOffPayload{InitHour: init, EndHour: end})
	if err != nil {
		t.Fatalf("CreateDayOff: %v", err)
	}
	if created.ID != 42 {
		t.Errorf("created ID = %d, want 42", created.ID)
	}
	if gotAuth != "Bearer tok123" {
		t.Errorf("auth header = %q, want Bearer tok123", gotAuth)
	}

	// The instant must decode back to the same local wall clock the user
	// picked, whatever offset the wire carried.
	if local := got.InitHour.In(time.Local); local.Hour() != 8 || local.Day() != 15 {
		t.Errorf("init = %v, want local 15th 08:00", local)
	}
	if local := got.EndHour.In(time.Local); local.Hour() != 18 {
		t.Errorf("end = %v, want local 18:00", local)
	}
}

func TestDeleteFutureThenRefetchMonth(t *testing.T) {
	var requests []string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, r.Method+" "+r.URL.String())

		switch r.Method {
		case http.MethodDelete:
			if r.URL.Query().Get("mode") != "future" {
				t.Errorf("mode = %q, want future", r.URL.Query().Get("mode"))
			}
			json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
		case http.MethodGet:
			json.NewEncoder(w).Encode([]models.DayOff{})
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok123", zap.NewNop())

	if err := c.DeleteDayOff(7, domain.ScopeFuture); err != nil {
		t.Fatalf("DeleteDayOff: %v", err)
	}
	if _, err := c.MonthDayOffs(2024, time.March); err != nil {
		t.Fatalf("MonthDayOffs: %v", err)
	}

	want := []string{
		"DELETE /api/user/dayoff/7?mode=future",
		"GET /api/user/dayoff?filter_type=month&year=2024&month=3",
	}
	if len(requests) != len(want) {
		t.Fatalf("requests = %v, want %v", requests, want)
	}
	for i := range want {
		if requests[i] != want[i] {
			t.Errorf("request[%d] = %q, want %q", i, requests[i], want[i])
		}
	}
}

func TestLoginStoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/login" {
			t.Errorf("path = %s, want /api/auth/login", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"token": "fresh-token",
			"user":  map[string]any{"id": 1, "email": "ana@example.com"},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", zap.NewNop())

	user, err := c.Login("ana@example.com", "secret1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.Email != "ana@example.com" {
		t.Errorf("email = %q", user.Email)
	}
	if c.Token() != "fresh-token" {
		t.Errorf("token = %q, want fresh-token", c.Token())
	}
}

func TestErrorStatusSurfacesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "invalid_time_range"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok", zap.NewNop())

	_, err := c.CreateDayOff(DayOffPayload{})
	if err == nil {
		t.Fatal("expected error for 400 response")
	}
}
