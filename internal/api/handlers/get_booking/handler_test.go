package get_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	"github.com/m04kA/SMC-ClinicBooking/internal/infra/memory"
	"github.com/m04kA/SMC-ClinicBooking/internal/service/bookings"
	"github.com/m04kA/SMC-ClinicBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-ClinicBooking/pkg/logger"
)

func TestHandler_Handle(t *testing.T) {
	ledger := memory.NewBookingLedger()
	require.NoError(t, ledger.Append(context.Background(), &domain.Booking{
		ID:          "b-1",
		PatientID:   "P-100",
		PatientName: "Jane Roe",
		ProviderID:  "dr-1",
		Date:        time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		StartTime:   "09:00",
		EndTime:     "10:00",
		Location:    "Main Clinic",
		VisitKind:   domain.VisitNew,
		Status:      domain.StatusConfirmed,
		CreatedAt:   time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}))

	h := NewHandler(bookings.NewService(ledger, logger.NewNop()), logger.NewNop())
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/bookings/{bookingId}", h.Handle).Methods(http.MethodGet)

	t.Run("found", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/bookings/b-1", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var body models.BookingResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "b-1", body.ID)
		assert.Equal(t, "CONFIRMED", body.Status)
		assert.Equal(t, "2025-03-10", body.Date)
		assert.Equal(t, 60, body.DurationMinutes)
	})

	t.Run("not found", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/bookings/missing", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
