package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"ecocharge/internal/http/middleware"
	"ecocharge/internal/models"
	"ecocharge/internal/service"
)

func newBookFixture() http.HandlerFunc {
	store := &fakeReservationStore{stationStatus: map[int64]string{
		1: models.StationStatusActive,
		2: models.StationStatusInactive,
	}}
	vehicles := &fakeVehicleRepo{vehicles: map[int64]models.Vehicle{
		10: {ID: 10, UserID: 100},
	}}
	booking := service.NewBookingService(store, vehicles, 24*time.Hour, zap.NewNop())
	return NewBookHandler(booking)
}

func postBook(handler http.HandlerFunc, session *models.Session, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/book", strings.NewReader(body))
	if session != nil {
		req = req.WithContext(middleware.WithSession(req.Context(), session))
	}
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func userSession() *models.Session {
	return &models.Session{Token: "tok", UserID: 100, Role: models.RoleUser}
}

func TestBookHandlerSuccess(t *testing.T) {
	handler := newBookFixture()

	rec := postBook(handler, userSession(), `{"station_id":1,"vehicle_id":10,"duration":60}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Success   bool   `json:"success"`
		StartTime string `json:"start_time"`
		EndTime   string `json:"end_time"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success {
		t.Fatal("expected success")
	}

	start, err := time.Parse(time.RFC3339, resp.StartTime)
	if err != nil {
		t.Fatalf("start_time not RFC3339: %v", err)
	}
	end, err := time.Parse(time.RFC3339, resp.EndTime)
	if err != nil {
		t.Fatalf("end_time not RFC3339: %v", err)
	}
	if got := end.Sub(start); got != time.Hour {
		t.Fatalf("expected one hour window, got %v", got)
	}
}

func TestBookHandlerOccupied(t *testing.T) {
	handler := newBookFixture()

	if rec := postBook(handler, userSession(), `{"station_id":1,"vehicle_id":10,"duration":60}`); rec.Code != http.StatusOK {
		t.Fatalf("first booking: %d", rec.Code)
	}
	rec := postBook(handler, userSession(), `{"station_id":1,"vehicle_id":10,"duration":30}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "station occupied") {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestBookHandlerRejections(t *testing.T) {
	handler := newBookFixture()

	cases := []struct {
		name   string
		body   string
		status int
	}{
		{"invalid duration", `{"station_id":1,"vehicle_id":10,"duration":0}`, http.StatusBadRequest},
		{"inactive station", `{"station_id":2,"vehicle_id":10,"duration":30}`, http.StatusBadRequest},
		{"unknown station", `{"station_id":99,"vehicle_id":10,"duration":30}`, http.StatusNotFound},
		{"unknown vehicle", `{"station_id":1,"vehicle_id":99,"duration":30}`, http.StatusBadRequest},
		{"bad json", `oops`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		rec := postBook(handler, userSession(), tc.body)
		if rec.Code != tc.status {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.status, rec.Code)
		}
	}
}

func TestBookHandlerRequiresSession(t *testing.T) {
	handler := newBookFixture()

	rec := postBook(handler, nil, `{"station_id":1,"vehicle_id":10,"duration":30}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
