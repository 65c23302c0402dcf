package booking_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/parkeasy/parkeasy-api/internal/domain/booking"
	"github.com/parkeasy/parkeasy-api/internal/domain/lot"
	"github.com/parkeasy/parkeasy-api/internal/middleware"
	"github.com/parkeasy/parkeasy-api/internal/pkg/session"
)

func newTestRouter(repo booking.Repository, lots lot.Repository, sessions *session.Service) chi.Router {
	svc := booking.NewService(repo, lots, 24)
	h := booking.NewHandler(svc)

	r := chi.NewRouter()
	r.Use(middleware.Auth(sessions))
	h.UserRoutes(r)
	return r
}

func userToken(t *testing.T, sessions *session.Service) string {
	t.Helper()
	token, err := sessions.Issue(context.Background(), uuid.New(), false)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	return token
}

func TestReserveRequiresLogin(t *testing.T) {
	sessions := session.NewService("test-secret", time.Hour, nil)
	router := newTestRouter(&fakeBookingRepo{}, newFakeLotRepo(), sessions)

	req := httptest.NewRequest(http.MethodPost, "/book/"+uuid.NewString(), strings.NewReader("{}"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestReserveHappyPath(t *testing.T) {
	sessions := session.NewService("test-secret", time.Hour, nil)
	lots := newFakeLotRepo()
	l := seedLot(t, lots, 5.00, 1)
	slots, _ := lots.ListAvailableSlots(context.Background(), l.ID)
	router := newTestRouter(&fakeBookingRepo{}, lots, sessions)

	body := fmt.Sprintf(`{"slot_id":%q,"vehicle_number":"KZ123ABC","vehicle_type":"car","hours":3}`, slots[0].ID)
	req := httptest.NewRequest(http.MethodPost, "/book/"+l.ID.String(), strings.NewReader(body))
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: userToken(t, sessions)})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Success bool            `json:"success"`
		Data    booking.Booking `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !resp.Success {
		t.Fatal("expected success envelope")
	}
	if resp.Data.TotalCost != 15.00 {
		t.Fatalf("expected cost 15.00, got %v", resp.Data.TotalCost)
	}
}

func TestReserveValidationFailure(t *testing.T) {
	sessions := session.NewService("test-secret", time.Hour, nil)
	lots := newFakeLotRepo()
	l := seedLot(t, lots, 5.00, 1)
	router := newTestRouter(&fakeBookingRepo{}, lots, sessions)

	body := fmt.Sprintf(`{"slot_id":%q,"vehicle_number":"KZ123ABC","vehicle_type":"spaceship","hours":3}`, uuid.New())
	req := httptest.NewRequest(http.MethodPost, "/book/"+l.ID.String(), strings.NewReader(body))
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: userToken(t, sessions)})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "vehicle_type") {
		t.Fatalf("expected vehicle_type detail, got %s", rec.Body.String())
	}
}

func TestReserveSlotConflict(t *testing.T) {
	sessions := session.NewService("test-secret", time.Hour, nil)
	lots := newFakeLotRepo()
	l := seedLot(t, lots, 5.00, 1)
	repo := &fakeBookingRepo{reserveErr: booking.ErrSlotUnavailable}
	router := newTestRouter(repo, lots, sessions)

	body := fmt.Sprintf(`{"slot_id":%q,"vehicle_number":"KZ123ABC","vehicle_type":"car","hours":1}`, uuid.New())
	req := httptest.NewRequest(http.MethodPost, "/book/"+l.ID.String(), strings.NewReader(body))
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: userToken(t, sessions)})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestBookingFormUnknownLot(t *testing.T) {
	sessions := session.NewService("test-secret", time.Hour, nil)
	router := newTestRouter(&fakeBookingRepo{}, newFakeLotRepo(), sessions)

	req := httptest.NewRequest(http.MethodGet, "/book/"+uuid.NewString(), nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: userToken(t, sessions)})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestCancelInvalidID(t *testing.T) {
	sessions := session.NewService("test-secret", time.Hour, nil)
	router := newTestRouter(&fakeBookingRepo{}, newFakeLotRepo(), sessions)

	req := httptest.NewRequest(http.MethodGet, "/cancel-booking/not-a-uuid", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: userToken(t, sessions)})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
