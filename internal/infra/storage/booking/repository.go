package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	"github.com/m04kA/SMC-ClinicBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-ClinicBooking/pkg/psqlbuilder"
)

const tableBookings = "bookings"

// uniqueViolation SQLSTATE 23505
const uniqueViolation = "23505"

var bookingColumns = []string{
	"booking_id",
	"patient_id",
	"patient_name",
	"provider_id",
	"provider_name",
	"booking_date",
	"start_time",
	"end_time",
	"location",
	"visit_kind",
	"insurance_carrier",
	"insurance_member_id",
	"insurance_group",
	"status",
	"notes",
	"created_at",
}

// Repository журнал подтвержденных бронирований (только добавление)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Append добавляет бронирование в журнал.
// Если в контексте передана активная транзакция, запись попадает в неё вместе
// с резервированием слотов - либо сохраняется всё, либо ничего.
func (r *Repository) Append(ctx context.Context, booking *domain.Booking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableBookings).
		Columns(bookingColumns...).
		Values(
			booking.ID,
			booking.PatientID,
			booking.PatientName,
			booking.ProviderID,
			booking.ProviderName,
			domain.NormalizeDate(booking.Date),
			booking.StartTime,
			booking.EndTime,
			booking.Location,
			booking.VisitKind,
			booking.Insurance.Carrier,
			booking.Insurance.MemberID,
			booking.Insurance.Group,
			booking.Status,
			booking.Notes,
			booking.CreatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Append - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return fmt.Errorf("%w: %s: %w", ErrDuplicateID, booking.ID, err)
		}
		return fmt.Errorf("%w: Append - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"booking_id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return booking, nil
}

// ListAll возвращает весь журнал в порядке добавления (совпадает с порядком created_at)
func (r *Repository) ListAll(ctx context.Context) ([]*domain.Booking, error) {
	query, args, err := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		OrderBy("seq ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListAll - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, "ListAll", query, args)
}

// ListByProviderAndDate возвращает бронирования врача на дату, отсортированные по времени начала
func (r *Repository) ListByProviderAndDate(ctx context.Context, providerID string, date time.Time) ([]*domain.Booking, error) {
	query, args, err := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{
			"provider_id":  providerID,
			"booking_date": domain.NormalizeDate(date),
		}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByProviderAndDate - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, "ListByProviderAndDate", query, args)
}

func (r *Repository) query(ctx context.Context, op, query string, args []interface{}) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %w", ErrScanRow, op, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, op, err)
	}

	return bookings, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking сканирует строку в бронирование (порядок колонок - bookingColumns)
func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	err := row.Scan(
		&b.ID,
		&b.PatientID,
		&b.PatientName,
		&b.ProviderID,
		&b.ProviderName,
		&b.Date,
		&b.StartTime,
		&b.EndTime,
		&b.Location,
		&b.VisitKind,
		&b.Insurance.Carrier,
		&b.Insurance.MemberID,
		&b.Insurance.Group,
		&b.Status,
		&b.Notes,
		&b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	b.Date = domain.NormalizeDate(b.Date)
	return &b, nil
}
