package place_booking

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonbook/SalonBook-BookingService/internal/api/middleware"
	placeBooking "github.com/salonbook/SalonBook-BookingService/internal/usecase/place_booking"
)

type fakeUseCase struct {
	resp    *placeBooking.Response
	err     error
	lastReq *placeBooking.Request
}

func (f *fakeUseCase) Execute(ctx context.Context, req *placeBooking.Request) (*placeBooking.Response, error) {
	f.lastReq = req
	return f.resp, f.err
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func newTestRouter(uc *fakeUseCase) *mux.Router {
	h := NewHandler(uc, nopLogger{})
	r := mux.NewRouter()
	protected := r.PathPrefix("/api/v1").Subrouter()
	protected.Use(middleware.Auth)
	protected.HandleFunc("/bookings", h.Handle).Methods(http.MethodPost)
	return r
}

func doRequest(t *testing.T, router *mux.Router, body any, userID string) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", bytes.NewReader(raw))
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func validBody() PlaceBookingRequest {
	return PlaceBookingRequest{
		SalonID:     1,
		ServiceID:   5,
		BookingDate: "2026-03-02",
		BookingTime: "10:00",
	}
}

func TestHandleCreated(t *testing.T) {
	uc := &fakeUseCase{resp: &placeBooking.Response{
		ID:            101,
		UserID:        42,
		SalonID:       1,
		ServiceID:     5,
		Date:          time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		StartTime:     "17:30",
		Status:        "upcoming",
		PaymentStatus: "pending",
		PaymentMethod: "pay_at_salon",
		ServiceName:   "Haircut",
		ServicePrice:  200,
	}}
	router := newTestRouter(uc)

	rec := doRequest(t, router, validBody(), "42")
	assert.Equal(t, http.StatusCreated, rec.Code)

	// Authenticated user comes from the header, not the body
	require.NotNil(t, uc.lastReq)
	assert.EqualValues(t, 42, uc.lastReq.UserID)

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.EqualValues(t, 101, resp.ID)
	assert.Equal(t, "2026-03-02", resp.BookingDate)
	assert.Equal(t, "17:30", resp.BookingTime)
	assert.Equal(t, "5:30 PM", resp.DisplayTime)
	assert.Equal(t, "upcoming", resp.Status)
}

func TestHandleUnauthenticated(t *testing.T) {
	router := newTestRouter(&fakeUseCase{})

	rec := doRequest(t, router, validBody(), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandleBadPayload(t *testing.T) {
	uc := &fakeUseCase{}
	router := newTestRouter(uc)

	body := validBody()
	body.BookingDate = "03/02/2026"
	rec := doRequest(t, router, body, "42")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body = validBody()
	body.BookingTime = "25:99"
	rec = doRequest(t, router, body, "42")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Use case never reached
	assert.Nil(t, uc.lastReq)
}

func TestHandleErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{placeBooking.ErrSalonNotFound, http.StatusNotFound},
		{placeBooking.ErrInvalidDate, http.StatusBadRequest},
		{placeBooking.ErrInvalidTimeSlot, http.StatusBadRequest},
		{placeBooking.ErrBookingLimitExceeded, http.StatusConflict},
		{placeBooking.ErrSlotTaken, http.StatusConflict},
		{placeBooking.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		router := newTestRouter(&fakeUseCase{err: tt.err})
		rec := doRequest(t, router, validBody(), "42")
		assert.Equal(t, tt.code, rec.Code, "error %v", tt.err)

		// Every error body carries a message
		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.NotEmpty(t, body["error"])
	}
}
