package get_booking_communications

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
	"github.com/m04kA/SMC-ClinicBooking/internal/service/communications"
	commModels "github.com/m04kA/SMC-ClinicBooking/internal/service/communications/models"
	"github.com/m04kA/SMC-ClinicBooking/pkg/logger"
)

func TestHandler_Handle(t *testing.T) {
	ctx := context.Background()

	// визит далеко в будущем: все напоминания планируются
	booking := &domain.Booking{
		ID:         "b-1",
		PatientID:  "P-100",
		ProviderID: "dr-1",
		Date:       time.Now().AddDate(0, 0, 30),
		StartTime:  "09:00",
		EndTime:    "09:30",
		VisitKind:  domain.VisitReturning,
		Status:     domain.StatusConfirmed,
	}

	ledger := memory.NewBookingLedger()
	require.NoError(t, ledger.Append(ctx, booking))
	require.NoError(t, ledger.Append(ctx, &domain.Booking{ID: "b-2", ProviderID: "dr-1", Date: booking.Date}))

	commSvc := communications.NewService(memory.NewCommunicationLog(), time.UTC, nil, logger.NewNop())
	_, err := commSvc.NotifyBooked(ctx, booking, commModels.Contact{Email: "jane@example.com"})
	require.NoError(t, err)

	h := NewHandler(bookings.NewService(ledger, logger.NewNop()), commSvc, logger.NewNop())
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/bookings/{bookingId}/communications", h.Handle).Methods(http.MethodGet)

	get := func(url string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))
		return rec
	}

	t.Run("logged messages", func(t *testing.T) {
		rec := get("/api/v1/bookings/b-1/communications")
		require.Equal(t, http.StatusOK, rec.Code)

		var body []commModels.CommunicationResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Len(t, body, 6)
		for _, c := range body {
			assert.Equal(t, "b-1", c.BookingID)
		}
	})

	t.Run("booking without messages", func(t *testing.T) {
		rec := get("/api/v1/bookings/b-2/communications")
		require.Equal(t, http.StatusOK, rec.Code)

		var body []commModels.CommunicationResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Empty(t, body)
	})

	t.Run("unknown booking", func(t *testing.T) {
		rec := get("/api/v1/bookings/missing/communications")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
