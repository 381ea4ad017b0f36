package create_booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	"github.com/m04kA/SMC-ClinicBooking/internal/infra/memory"
	"github.com/m04kA/SMC-ClinicBooking/internal/usecase/search_slots"
	"github.com/m04kA/SMC-ClinicBooking/pkg/logger"
	"github.com/m04kA/SMC-ClinicBooking/pkg/txmanager"
	"github.com/m04kA/SMC-ClinicBooking/pkg/types"
)

var (
	testDate = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	testNow  = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type failingLedger struct{}

func (failingLedger) Append(ctx context.Context, b *domain.Booking) error {
	return errors.New("disk full")
}

type serializationFailureTx struct{}

func (serializationFailureTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fmt.Errorf("%w: could not serialize access", txmanager.ErrSerializationFailure)
}

type outcomeCounter struct {
	mu     sync.Mutex
	counts map[string]int
}

func (c *outcomeCounter) RecordBookingOutcome(outcome string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.counts == nil {
		c.counts = make(map[string]int)
	}
	c.counts[outcome]++
}

type fixture struct {
	slots  *memory.SlotStore
	ledger *memory.BookingLedger
	uc     *UseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	slots := memory.NewSlotStore()
	var seed []*domain.BaseSlot
	for _, s := range []struct{ start, end, location string }{
		{"09:00", "09:30", "Main Clinic"},
		{"09:30", "10:00", "Main Clinic"},
		{"10:00", "10:30", "Main Clinic"},
		{"11:00", "11:30", "Main Clinic"},
		{"11:30", "12:00", "Annex"},
	} {
		seed = append(seed, &domain.BaseSlot{
			ProviderID: "dr-1",
			Date:       testDate,
			StartTime:  types.TimeString(s.start),
			EndTime:    types.TimeString(s.end),
			Location:   s.location,
		})
	}
	require.NoError(t, slots.CreateSlots(context.Background(), seed))

	providers := memory.NewProviderStore(domain.Provider{
		ID:        "dr-1",
		Name:      "Dr. Ada Smith",
		Specialty: "Allergy",
		Location:  "Main Clinic",
	})
	ledger := memory.NewBookingLedger()

	uc := NewUseCase(slots, ledger, providers, memory.NewTransactionManager(), nil, logger.NewNop())
	uc.timeProvider = fixedTime{now: testNow}

	return &fixture{slots: slots, ledger: ledger, uc: uc}
}

func validRequest(start string, kind domain.VisitKind) *Request {
	return &Request{
		PatientID:   "P-100",
		PatientName: "Jane Roe",
		ProviderID:  "dr-1",
		Date:        testDate,
		StartTime:   types.TimeString(start),
		VisitKind:   kind,
		Insurance:   domain.Insurance{Carrier: "Aetna", MemberID: "M-1", Group: "G-1"},
		Notes:       "seasonal allergies",
	}
}

func freeStarts(t *testing.T, f *fixture) []string {
	t.Helper()

	free, err := f.slots.ListFree(context.Background(), "dr-1", testDate)
	require.NoError(t, err)
	result := make([]string, 0, len(free))
	for _, s := range free {
		result = append(result, s.StartTime.String())
	}
	return result
}

func TestUseCase_Execute_Success(t *testing.T) {
	t.Run("returning patient takes one slot", func(t *testing.T) {
		f := newFixture(t)

		resp, err := f.uc.Execute(context.Background(), validRequest("09:00", domain.VisitReturning))
		require.NoError(t, err)

		assert.NotEmpty(t, resp.ID)
		assert.Equal(t, "CONFIRMED", resp.Status)
		assert.Equal(t, "Dr. Ada Smith", resp.ProviderName)
		assert.Equal(t, types.TimeString("09:00"), resp.StartTime)
		assert.Equal(t, types.TimeString("09:30"), resp.EndTime)
		assert.Equal(t, "Main Clinic", resp.Location)
		assert.Equal(t, testNow, resp.CreatedAt)
		assert.Equal(t, []string{"09:30", "10:00", "11:00", "11:30"}, freeStarts(t, f))

		all, err := f.ledger.ListAll(context.Background())
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, resp.ID, all[0].ID)
	})

	t.Run("new patient takes two adjacent slots", func(t *testing.T) {
		f := newFixture(t)

		resp, err := f.uc.Execute(context.Background(), validRequest("09:30", domain.VisitNew))
		require.NoError(t, err)

		assert.Equal(t, types.TimeString("10:30"), resp.EndTime)
		assert.Equal(t, 60, resp.ToDomain().DurationMinutes())
		assert.Equal(t, []string{"09:00", "11:00", "11:30"}, freeStarts(t, f))
	})

	t.Run("explicit end time matching the visit", func(t *testing.T) {
		f := newFixture(t)

		req := validRequest("09:00", domain.VisitNew)
		req.EndTime = "10:00"
		_, err := f.uc.Execute(context.Background(), req)
		require.NoError(t, err)
	})
}

func TestUseCase_Execute_InvalidWindow(t *testing.T) {
	tests := []struct {
		name  string
		build func() *Request
	}{
		{
			name:  "start not on a slot boundary",
			build: func() *Request { return validRequest("09:15", domain.VisitReturning) },
		},
		{
			name:  "window spans a gap",
			build: func() *Request { return validRequest("10:00", domain.VisitNew) },
		},
		{
			name:  "window spans two locations",
			build: func() *Request { return validRequest("11:00", domain.VisitNew) },
		},
		{
			name:  "window runs past the calendar",
			build: func() *Request { return validRequest("11:30", domain.VisitNew) },
		},
		{
			name: "end time does not match visit duration",
			build: func() *Request {
				req := validRequest("09:00", domain.VisitReturning)
				req.EndTime = "10:00"
				return req
			},
		},
		{
			name: "unknown provider",
			build: func() *Request {
				req := validRequest("09:00", domain.VisitReturning)
				req.ProviderID = "dr-404"
				return req
			},
		},
		{
			name: "date without calendar",
			build: func() *Request {
				req := validRequest("09:00", domain.VisitReturning)
				req.Date = testDate.AddDate(0, 0, 1)
				return req
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			_, err := f.uc.Execute(context.Background(), tt.build())
			assert.ErrorIs(t, err, ErrInvalidWindow)
			assert.Len(t, freeStarts(t, f), 5)
		})
	}
}

func TestUseCase_Execute_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *Request)
	}{
		{name: "missing patient id", mutate: func(r *Request) { r.PatientID = " " }},
		{name: "missing patient name", mutate: func(r *Request) { r.PatientName = "" }},
		{name: "missing provider", mutate: func(r *Request) { r.ProviderID = "" }},
		{name: "zero date", mutate: func(r *Request) { r.Date = time.Time{} }},
		{name: "missing start", mutate: func(r *Request) { r.StartTime = "" }},
		{name: "malformed start", mutate: func(r *Request) { r.StartTime = "nine" }},
		{name: "malformed end", mutate: func(r *Request) { r.EndTime = "25:00" }},
		{name: "unknown visit kind", mutate: func(r *Request) { r.VisitKind = "walk-in" }},
		{name: "notes too long", mutate: func(r *Request) { r.Notes = string(make([]byte, domain.MaxNotesLength+1)) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			req := validRequest("09:00", domain.VisitReturning)
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestUseCase_Execute_ConflictPath(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), validRequest("09:30", domain.VisitReturning))
	require.NoError(t, err)

	// 09:00-10:00 overlaps the booked 09:30 slot
	_, err = f.uc.Execute(context.Background(), validRequest("09:00", domain.VisitNew))
	assert.ErrorIs(t, err, ErrSlotUnavailable)

	all, err := f.ledger.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
	assert.Contains(t, freeStarts(t, f), "09:00")
}

func TestUseCase_Execute_LedgerFailureReleasesSlots(t *testing.T) {
	f := newFixture(t)
	providers := memory.NewProviderStore(domain.Provider{ID: "dr-1", Name: "Dr. Ada Smith"})
	uc := NewUseCase(f.slots, failingLedger{}, providers, memory.NewTransactionManager(), nil, logger.NewNop())

	_, err := uc.Execute(context.Background(), validRequest("09:00", domain.VisitNew))
	assert.ErrorIs(t, err, ErrLedgerWriteFailed)
	assert.Len(t, freeStarts(t, f), 5)
}

func TestUseCase_Execute_SerializationFailure(t *testing.T) {
	f := newFixture(t)
	providers := memory.NewProviderStore(domain.Provider{ID: "dr-1", Name: "Dr. Ada Smith"})
	uc := NewUseCase(f.slots, f.ledger, providers, serializationFailureTx{}, nil, logger.NewNop())

	_, err := uc.Execute(context.Background(), validRequest("09:00", domain.VisitReturning))
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestUseCase_Execute_UniqueIDs(t *testing.T) {
	f := newFixture(t)

	ids := make(map[string]struct{})
	for _, start := range []string{"09:00", "09:30", "10:00", "11:00", "11:30"} {
		resp, err := f.uc.Execute(context.Background(), validRequest(start, domain.VisitReturning))
		require.NoError(t, err)
		ids[resp.ID] = struct{}{}
	}
	assert.Len(t, ids, 5)
}

func TestUseCase_Execute_DuplicateIDFailsLedgerWrite(t *testing.T) {
	f := newFixture(t)
	f.uc.newID = func() string { return "fixed-id" }

	_, err := f.uc.Execute(context.Background(), validRequest("09:00", domain.VisitReturning))
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), validRequest("10:00", domain.VisitReturning))
	assert.ErrorIs(t, err, ErrLedgerWriteFailed)
	assert.Contains(t, freeStarts(t, f), "10:00")
}

func TestUseCase_Execute_ConcurrentSameWindow(t *testing.T) {
	f := newFixture(t)
	outcomes := &outcomeCounter{}
	f.uc.outcomes = outcomes

	const callers = 40
	var wg sync.WaitGroup
	results := make([]error, callers)
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func(i int) {
			defer wg.Done()
			// every request overlaps 09:30
			start, kind := "09:00", domain.VisitNew
			switch i % 3 {
			case 1:
				start, kind = "09:30", domain.VisitNew
			case 2:
				start, kind = "09:30", domain.VisitReturning
			}
			_, results[i] = f.uc.Execute(context.Background(), validRequest(start, kind))
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range results {
		if err == nil {
			wins++
			continue
		}
		assert.ErrorIs(t, err, ErrSlotUnavailable)
	}
	assert.Equal(t, 1, wins)

	all, err := f.ledger.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
	assert.Equal(t, 1, outcomes.counts[OutcomeConfirmed])
	assert.Equal(t, callers-1, outcomes.counts[OutcomeSlotUnavailable])
}

func TestUseCase_Execute_SearchedWindowCommits(t *testing.T) {
	for _, kind := range []domain.VisitKind{domain.VisitNew, domain.VisitReturning} {
		t.Run(string(kind), func(t *testing.T) {
			search := search_slots.NewUseCase(newFixture(t).slots, logger.NewNop())
			found, err := search.Execute(context.Background(), &search_slots.Request{
				ProviderID: "dr-1",
				Date:       testDate,
				VisitKind:  kind,
			})
			require.NoError(t, err)
			require.NotEmpty(t, found.Windows)

			// on a quiet calendar every offered window can be committed
			for _, w := range found.Windows {
				f := newFixture(t)
				req := validRequest(w.StartTime.String(), kind)
				req.EndTime = w.EndTime

				resp, err := f.uc.Execute(context.Background(), req)
				require.NoError(t, err, "window %s-%s", w.StartTime, w.EndTime)
				assert.Equal(t, kind.DurationMinutes(), resp.ToDomain().DurationMinutes())
				assert.Equal(t, w.Location, resp.Location)
			}
		})
	}
}
