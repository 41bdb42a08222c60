package create_reservation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LoungeService/internal/api/middleware"
	createReservation "github.com/m04kA/SMC-LoungeService/internal/usecase/create_reservation"
)

type fakeUseCase struct {
	resp *createReservation.Response
	err  error

	gotReq *createReservation.Request
}

func (f *fakeUseCase) Execute(_ context.Context, req *createReservation.Request) (*createReservation.Response, error) {
	f.gotReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newRouter(uc CreateReservationUseCase) *mux.Router {
	h := NewHandler(uc, nopLogger{})
	r := mux.NewRouter()
	protected := r.PathPrefix("/api/v1").Subrouter()
	protected.Use(middleware.Auth)
	protected.HandleFunc("/reservations", h.Handle).Methods(http.MethodPost)
	return r
}

func doRequest(t *testing.T, router *mux.Router, body string, withAuth bool) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(body))
	if withAuth {
		req.Header.Set("X-User-ID", "101")
		req.Header.Set("X-User-Name", "20301 Ким")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	start := time.Date(2025, time.October, 13, 22, 0, 0, 0, time.UTC)
	uc := &fakeUseCase{
		resp: &createReservation.Response{
			ID:           7,
			LoungeID:     1,
			LoungeNumber: 1,
			UserID:       101,
			UserName:     "20301 Ким",
			StartTime:    start,
			EndTime:      start.Add(30 * time.Minute),
			CreatedAt:    start,
		},
	}

	rec := doRequest(t, newRouter(uc),
		`{"loungeId": 1, "startTime": "2025-10-13 22:00:00"}`, true)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp ReservationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, "2025-10-13 22:00:00", resp.StartTime)
	assert.Equal(t, "2025-10-13 22:30:00", resp.EndTime)

	// Principal берётся из заголовков, а не из тела
	require.NotNil(t, uc.gotReq)
	assert.Equal(t, int64(101), uc.gotReq.Principal.ID)
	assert.Equal(t, "20301 Ким", uc.gotReq.Principal.DisplayName)
}

func TestHandle_Unauthorized(t *testing.T) {
	uc := &fakeUseCase{}

	rec := doRequest(t, newRouter(uc),
		`{"loungeId": 1, "startTime": "2025-10-13 22:00:00"}`, false)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, uc.gotReq, "use case must not be called without principal")
}

func TestHandle_InvalidBody(t *testing.T) {
	rec := doRequest(t, newRouter(&fakeUseCase{}), `{not json`, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_UseCaseErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid input", createReservation.ErrInvalidInput, http.StatusBadRequest},
		{"lounge not found", createReservation.ErrLoungeNotFound, http.StatusNotFound},
		{"not an allowed slot", createReservation.ErrNotAnAllowedSlot, http.StatusBadRequest},
		{"slot in past", createReservation.ErrSlotInPast, http.StatusBadRequest},
		{"slot taken", createReservation.ErrSlotTaken, http.StatusConflict},
		{"owner double booked", createReservation.ErrOwnerDoubleBooked, http.StatusConflict},
		{"internal", createReservation.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, newRouter(&fakeUseCase{err: tt.err}),
				`{"loungeId": 1, "startTime": "2025-10-13 22:00:00"}`, true)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
