package main

import (
	"context"
	"database/sql"
	"time"

	bookingsService "github.com/m04kA/SMC-ClinicBooking/internal/service/bookings"
	calendarService "github.com/m04kA/SMC-ClinicBooking/internal/service/calendar"
	communicationsService "github.com/m04kA/SMC-ClinicBooking/internal/service/communications"
	createBookingUC "github.com/m04kA/SMC-ClinicBooking/internal/usecase/create_booking"
	searchSlotsUC "github.com/m04kA/SMC-ClinicBooking/internal/usecase/search_slots"

	"github.com/m04kA/SMC-ClinicBooking/internal/infra/memory"
	bookingRepo "github.com/m04kA/SMC-ClinicBooking/internal/infra/storage/booking"
	communicationRepo "github.com/m04kA/SMC-ClinicBooking/internal/infra/storage/communication"
	providerRepo "github.com/m04kA/SMC-ClinicBooking/internal/infra/storage/provider"
	slotRepo "github.com/m04kA/SMC-ClinicBooking/internal/infra/storage/slot"
	"github.com/m04kA/SMC-ClinicBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-ClinicBooking/pkg/txmanager"
)

type slotStore interface {
	searchSlotsUC.SlotStore
	createBookingUC.SlotStore
	calendarService.SlotStore
}

type bookingLedger interface {
	createBookingUC.BookingLedger
	bookingsService.BookingLedger
}

type providerRepository interface {
	createBookingUC.ProviderRepository
	calendarService.ProviderRepository
}

type transactionManager interface {
	createBookingUC.TransactionManager
	calendarService.TransactionManager
}

// backend хранилища одного драйвера (postgres или memory)
type backend struct {
	slots          slotStore
	ledger         bookingLedger
	providers      providerRepository
	communications communicationsService.CommunicationLog
	txManager      transactionManager
}

func newPostgresBackend(db dbmetrics.DBExecutor, txBeginner txmanager.TxBeginner) *backend {
	return &backend{
		slots:          slotRepo.NewRepository(db),
		ledger:         bookingRepo.NewRepository(db),
		providers:      providerRepo.NewRepository(db),
		communications: communicationRepo.NewRepository(db),
		txManager:      txmanager.NewTransactionManager(txBeginner),
	}
}

func newMemoryBackend() *backend {
	return &backend{
		slots:          memory.NewSlotStore(),
		ledger:         memory.NewBookingLedger(),
		providers:      memory.NewProviderStore(),
		communications: memory.NewCommunicationLog(),
		txManager:      memory.NewTransactionManager(),
	}
}

// configurePool настраивает connection pool
func configurePool(db *sql.DB, maxOpen, maxIdle, lifetimeSec int) {
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(time.Duration(lifetimeSec) * time.Second)
}

// seedCalendars заполняет календари демо-врачей из конфига
func seedCalendars(ctx context.Context, svc *calendarService.Service, req []*calendarService.SeedRequest) (int, error) {
	total := 0
	for _, r := range req {
		n, err := svc.Seed(ctx, r)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}
